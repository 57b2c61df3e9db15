package loader

import (
	"errors"
	"io/fs"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestForPath(t *testing.T) {
	memfs := NewMemFS()
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"/a/strata.toml", "toml", false},
		{"/a/strata.yaml", "yaml", false},
		{"/a/strata.YML", "yaml", false},
		{"/a/strata.json", "", true},
		{"/a/strata", "", true},
	}
	for _, tt := range tests {
		l, err := ForPath(memfs, tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ForPath(%q) failed: %v", tt.path, err)
		}
		var got string
		switch l.(type) {
		case *TOMLLoader:
			got = "toml"
		case *YAMLLoader:
			got = "yaml"
		}
		if got != tt.want {
			t.Errorf("ForPath(%q) = %T, want %s", tt.path, l, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"tabSize": int64(8), "lineWrap": true},
		"theme":  map[string]any{"name": "default"},
	}
	src := map[string]any{
		"editor":  map[string]any{"tabSize": int64(4)},
		"logging": map[string]any{"level": "debug"},
		"theme":   "flat",
	}

	got := DeepMerge(dst, src)

	if v, _ := GetByPath(got, "editor.tabSize"); v != int64(4) {
		t.Errorf("editor.tabSize = %v, want 4", v)
	}
	if v, _ := GetByPath(got, "editor.lineWrap"); v != true {
		t.Errorf("editor.lineWrap = %v, want true", v)
	}
	if v, _ := GetByPath(got, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}
	if got["theme"] != "flat" {
		t.Errorf("non-map source value should replace the map, got %v", got["theme"])
	}

	if m := DeepMerge(nil, nil); m == nil || len(m) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v, want empty map", m)
	}
}

func TestGetSetByPath(t *testing.T) {
	data := map[string]any{}
	SetByPath(data, "view.colorMode", "256")
	SetByPath(data, "view.scrollbar", false)
	SetByPath(data, "top", int64(1))

	if v, ok := GetByPath(data, "view.colorMode"); !ok || v != "256" {
		t.Errorf("view.colorMode = %v, %v", v, ok)
	}
	if v, ok := GetByPath(data, "view.scrollbar"); !ok || v != false {
		t.Errorf("view.scrollbar = %v, %v", v, ok)
	}
	if _, ok := GetByPath(data, "top.child"); ok {
		t.Error("path through a scalar should not resolve")
	}
	if _, ok := GetByPath(data, "missing"); ok {
		t.Error("missing key should not resolve")
	}
	if _, ok := GetByPath(nil, "view"); ok {
		t.Error("nil map should not resolve")
	}

	// A scalar on the way is replaced by a map.
	SetByPath(data, "top.child", "x")
	if v, ok := GetByPath(data, "top.child"); !ok || v != "x" {
		t.Errorf("top.child = %v, %v", v, ok)
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"view": map[string]any{"colorMode": "16"},
		"list": []any{map[string]any{"a": int64(1)}},
	}
	dst := Clone(src)
	SetByPath(dst, "view.colorMode", "none")
	dst["list"].([]any)[0].(map[string]any)["a"] = int64(2)

	if v, _ := GetByPath(src, "view.colorMode"); v != "16" {
		t.Errorf("clone shares nested map: %v", v)
	}
	if v := src["list"].([]any)[0].(map[string]any)["a"]; v != int64(1) {
		t.Errorf("clone shares slice element: %v", v)
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestParseErrorMessage(t *testing.T) {
	inner := errors.New("boom")
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 3, Column: 7, Message: "bad"}, "parse error in a.toml at line 3, column 7: bad"},
		{&ParseError{Path: "a.yaml", Line: 2, Message: "bad"}, "parse error in a.yaml at line 2: bad"},
		{&ParseError{Path: "a.toml", Message: "bad", Err: inner}, "parse error in a.toml: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if !errors.Is(tests[2].err, inner) {
		t.Error("ParseError should unwrap to the cause")
	}
}
