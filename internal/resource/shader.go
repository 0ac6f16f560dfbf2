package resource

import (
	"fmt"
	"strings"
)

const includeDirective = "#include"

// AssembleShader loads a shader source and recursively inlines its
// #include directives. Includes are resolved relative to the including
// file and each file is inlined at most once, which also breaks include
// cycles.
func AssembleShader(p Path) (string, error) {
	var sb strings.Builder
	included := map[string]struct{}{}
	if err := assemble(p, &sb, included); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func assemble(p Path, sb *strings.Builder, included map[string]struct{}) error {
	key := p.String()
	if _, ok := included[key]; ok {
		return nil
	}
	included[key] = struct{}{}

	src, err := p.LoadString()
	if err != nil {
		return err
	}

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, includeDirective) {
			sb.WriteString(line)
			sb.WriteByte('\n')
			continue
		}

		name := strings.TrimSpace(strings.TrimPrefix(trimmed, includeDirective))
		name = strings.Trim(name, `"`)
		if name == "" {
			return fmt.Errorf("malformed include in %v: %q", p, line)
		}

		// "..": includes are relative to the including file's directory.
		if err := assemble(p.Resolve("..", name), sb, included); err != nil {
			return err
		}
	}
	return nil
}
