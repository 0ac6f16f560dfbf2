// Package resource locates, loads and watches renderer resources on the
// file system: configuration JSON, shader sources, and anything else
// addressed by a slash-separated resource path.
package resource

import (
	"os"
	"path/filepath"
	"strings"
)

// Path is a normalized, forward-slash resource path, optionally anchored
// to a root directory. The zero value is the current directory.
type Path struct {
	root string // OS directory the path is anchored to, empty for bare paths
	path string // normalized forward-slash path
}

// New creates a path from parts, normalizing separators and collapsing
// "." and ".." segments.
func New(parts ...string) Path {
	return Path{path: normalize("", parts)}
}

// Root creates a path anchored to an OS directory. Children resolved from
// it stay under the same root.
func Root(dir string, parts ...string) Path {
	return Path{root: dir, path: normalize("", parts)}
}

// Resolve returns a new path with parts appended and normalized. An
// absolute part replaces the current path.
func (p Path) Resolve(parts ...string) Path {
	return Path{root: p.root, path: normalize(p.path, parts)}
}

// Filename returns the last path segment.
func (p Path) Filename() string {
	if i := strings.LastIndexByte(p.path, '/'); i != -1 {
		return p.path[i+1:]
	}
	return p.path
}

// Extension returns the filename's last extension, without the dot.
func (p Path) Extension() string {
	return p.ExtensionN(0)
}

// ExtensionN returns the nth-last extension of the filename, so
// ExtensionN(1) of "model.json.gz" is "json". When the filename has no
// further extension, the remaining stem is returned for n == 0 and ""
// otherwise.
func (p Path) ExtensionN(nthLast int) string {
	filename := p.Filename()
	ext := ""
	for ; nthLast >= 0; nthLast-- {
		i := strings.LastIndexByte(filename, '.')
		if i == -1 {
			if nthLast > 0 {
				return ""
			}
			return filename
		}
		ext = filename[i+1:]
		filename = filename[:i]
	}
	return ext
}

// SetExtension replaces the filename's last extension. An empty ext
// strips the extension.
func (p Path) SetExtension(ext string) Path {
	path := p.path
	if i := strings.LastIndexByte(path, '.'); i != -1 && i > strings.LastIndexByte(path, '/') {
		path = path[:i]
	}
	if ext != "" {
		path += "." + ext
	}
	return Path{root: p.root, path: path}
}

func (p Path) String() string {
	if p.path == "" {
		return "."
	}
	return p.path
}

// OSPath returns the path in the platform's native form, joined with its
// root when anchored.
func (p Path) OSPath() string {
	rel := strings.TrimPrefix(p.path, "/")
	if p.root != "" {
		return filepath.Join(p.root, filepath.FromSlash(rel))
	}
	if p.path == "" {
		return "."
	}
	return filepath.FromSlash(p.path)
}

// Exists reports whether the path points at an existing file or
// directory.
func (p Path) Exists() bool {
	_, err := os.Stat(p.OSPath())
	return err == nil
}

// MkdirAll creates the directory the path points at, including parents.
func (p Path) MkdirAll() error {
	return os.MkdirAll(p.OSPath(), 0o755)
}

// normalize joins base and parts into a single forward-slash path,
// accepting Windows separators and collapsing "." and ".." segments. An
// absolute part discards everything resolved before it.
func normalize(base string, parts []string) string {
	var stack []string
	if base != "" && base != "." {
		stack = strings.Split(toSlash(base), "/")
	}

	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		part = toSlash(part)

		if strings.HasPrefix(part, "/") {
			// Keep a leading empty segment so the result stays absolute.
			stack = append(stack[:0], "")
			part = part[1:]
		}

		for _, seg := range strings.Split(part, "/") {
			switch {
			case seg == "" || seg == ".":
				// Skip.
			case seg == "..":
				switch {
				case len(stack) > 0 && last(stack) == "":
					// ".." at an absolute root resolves to the root.
				case len(stack) > 0 && last(stack) != "..":
					stack = stack[:len(stack)-1]
				default:
					stack = append(stack, seg)
				}
			default:
				stack = append(stack, seg)
			}
		}
	}
	return strings.Join(stack, "/")
}

func toSlash(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

func last(stack []string) string {
	return stack[len(stack)-1]
}
