package resource

import (
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		parts []string
		want  string
	}{
		{"joins parts", []string{"shaders", "vert.glsl"}, "shaders/vert.glsl"},
		{"skips empty and dot parts", []string{"", ".", "a", "", "b"}, "a/b"},
		{"collapses dot segments", []string{"a/./b"}, "a/b"},
		{"collapses parent segments", []string{"a/b/../c"}, "a/c"},
		{"keeps leading parent segments", []string{"../a"}, "../a"},
		{"absolute part resets the path", []string{"a/b", "/etc/shaders"}, "/etc/shaders"},
		{"parent does not escape an absolute root", []string{"/a", "../../b"}, "/b"},
		{"accepts backslash separators", []string{`a\b`, "c"}, "a/b/c"},
		{"empty input is the current directory", nil, "."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := New(c.parts...).String(); got != c.want {
				t.Errorf("New(%q) = %q, want %q", c.parts, got, c.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	p := New("shaders", "lib")
	if got := p.Resolve("..", "vert.glsl").String(); got != "shaders/vert.glsl" {
		t.Errorf("Resolve = %q, want %q", got, "shaders/vert.glsl")
	}
	if got := p.String(); got != "shaders/lib" {
		t.Errorf("Resolve mutated the receiver: %q", got)
	}
}

func TestFilenameAndExtension(t *testing.T) {
	cases := []struct {
		path     string
		filename string
		ext      string
	}{
		{"shaders/vert.glsl", "vert.glsl", "glsl"},
		{"a/b/archive.tar.gz", "archive.tar.gz", "gz"},
		{"noext", "noext", "noext"},
		{"a/.hidden", ".hidden", "hidden"},
	}
	for _, c := range cases {
		p := New(c.path)
		if got := p.Filename(); got != c.filename {
			t.Errorf("Filename(%q) = %q, want %q", c.path, got, c.filename)
		}
		if got := p.Extension(); got != c.ext {
			t.Errorf("Extension(%q) = %q, want %q", c.path, got, c.ext)
		}
	}

	p := New("a/b/archive.tar.gz")
	if got := p.ExtensionN(1); got != "tar" {
		t.Errorf("ExtensionN(1) = %q, want %q", got, "tar")
	}
	if got := New("noext").ExtensionN(1); got != "" {
		t.Errorf("ExtensionN(1) of extensionless path = %q, want empty", got)
	}
}

func TestSetExtension(t *testing.T) {
	cases := []struct {
		path string
		ext  string
		want string
	}{
		{"shaders/vert.glsl", "frag", "shaders/vert.frag"},
		{"shaders/vert", "glsl", "shaders/vert.glsl"},
		{"shaders/vert.glsl", "", "shaders/vert"},
		{"dir.d/file", "txt", "dir.d/file.txt"},
	}
	for _, c := range cases {
		if got := New(c.path).SetExtension(c.ext).String(); got != c.want {
			t.Errorf("SetExtension(%q, %q) = %q, want %q", c.path, c.ext, got, c.want)
		}
	}
}

func TestRootedPaths(t *testing.T) {
	dir := t.TempDir()
	p := Root(dir, "configs", "materials.json")

	want := filepath.Join(dir, "configs", "materials.json")
	if got := p.OSPath(); got != want {
		t.Errorf("OSPath() = %q, want %q", got, want)
	}
	if p.Exists() {
		t.Error("expected path to not exist yet")
	}

	if err := Root(dir, "configs").MkdirAll(); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if !Root(dir, "configs").Exists() {
		t.Error("expected created directory to exist")
	}
}
