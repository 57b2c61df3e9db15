package renderer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/strata/internal/config"
	"github.com/dshills/strata/internal/renderer/gutter"
	"github.com/dshills/strata/internal/renderer/highlight"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.New(config.WithEnvPrefix(""))
	settings := map[string]any{
		"editor.tabSize":        int64(4),
		"editor.lineWrap":       false,
		"editor.lineNumbers":    "relative",
		"editor.showWhitespace": true,
		"view.composeWidth":     int64(80),
		"view.scrollbar":        false,
		"view.separator":        "|",
	}
	for path, v := range settings {
		if err := cfg.Set(path, v); err != nil {
			t.Fatalf("Set(%s): %v", path, err)
		}
	}

	opts := OptionsFromConfig(cfg)
	if opts.TabSize != 4 || opts.LineWrap || !opts.ShowTabs {
		t.Errorf("editor options = %+v", opts)
	}
	if !opts.ShowLineNumbers || opts.LineNumberMode != gutter.LineNumberRelative {
		t.Errorf("line numbers = %v %v", opts.ShowLineNumbers, opts.LineNumberMode)
	}
	if opts.ComposeWidth != 80 || opts.Scrollbar || opts.Separator != "|" {
		t.Errorf("view options = %+v", opts)
	}

	if err := cfg.Set("editor.lineNumbers", "off"); err != nil {
		t.Fatal(err)
	}
	if OptionsFromConfig(cfg).ShowLineNumbers {
		t.Error(`lineNumbers "off" should hide the gutter`)
	}
}

func TestLoadTheme(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"default", "Default Dark"},
		{"Monokai", "Monokai"},
		{"light", "Light"},
		{"dracula", "dracula"},
	}
	for _, tt := range tests {
		theme, err := LoadTheme(config.ThemeConfig{Name: tt.name})
		if err != nil {
			t.Errorf("LoadTheme(%q): %v", tt.name, err)
			continue
		}
		if theme.Name != tt.want {
			t.Errorf("LoadTheme(%q).Name = %q, want %q", tt.name, theme.Name, tt.want)
		}
	}

	if _, err := LoadTheme(config.ThemeConfig{Name: "no-such-theme"}); !errors.Is(err, highlight.ErrThemeNotFound) {
		t.Errorf("unknown theme error = %v, want ErrThemeNotFound", err)
	}
	if got := LoadThemeOrDefault(config.ThemeConfig{Name: "no-such-theme"}); got.Name != "Default Dark" {
		t.Errorf("fallback theme = %q", got.Name)
	}
}

func TestLoadThemeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte(`{"name": "Mine"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	theme, err := LoadTheme(config.ThemeConfig{Name: "monokai", Path: path})
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if theme.Name != "Mine" {
		t.Errorf("a theme file should win over the name, got %q", theme.Name)
	}

	if _, err := LoadTheme(config.ThemeConfig{Path: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("missing theme file should fail")
	}
}
