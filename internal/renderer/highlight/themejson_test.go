package highlight

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/strata/internal/renderer/core"
)

func TestLoadThemeJSON(t *testing.T) {
	data := []byte(`{
		"name": "Paper",
		"base": "Light",
		"ui": {"editor_fg": "#101010", "selection_bg": "#abc"},
		"diff": {"add_bg": "#00ff00"},
		"syntax": {
			"keyword": {"fg": "#0000ff", "bold": true},
			"comment": "#888888",
			"entity.name.tag": {"fg": "#aa0000", "underline": true}
		}
	}`)

	theme, err := LoadThemeJSON(data)
	require.NoError(t, err)

	require.Equal(t, "Paper", theme.Name)
	require.Equal(t, core.ColorFromRGB(0x10, 0x10, 0x10), theme.UI.EditorFg)
	require.Equal(t, core.ColorFromRGB(0xaa, 0xbb, 0xcc), theme.UI.SelectionBg)
	require.Equal(t, core.ColorFromRGB(0, 0xff, 0), theme.UI.DiffAddBg)
	// Untouched keys come from the base theme.
	require.Equal(t, LightTheme().UI.EditorBg, theme.UI.EditorBg)

	kw := theme.TokenStyles[TokenKeyword]
	require.Equal(t, core.ColorFromRGB(0, 0, 0xff), kw.Foreground)
	require.True(t, kw.Attributes.Has(core.AttrBold))
	require.Equal(t, core.NewStyle(core.ColorFromRGB(0x88, 0x88, 0x88)), theme.TokenStyles[TokenComment])

	tag := theme.StyleForScope("entity.name.tag.html")
	require.Equal(t, core.ColorFromRGB(0xaa, 0, 0), tag.Foreground)
	require.True(t, tag.Attributes.Has(core.AttrUnderline))
}

func TestLoadThemeJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"ui": `},
		{"unknown key", `{"ui": {"nope": "#fff"}}`},
		{"bad color", `{"ui": {"editor_fg": "#zzzzzz"}}`},
		{"bad syntax color", `{"syntax": {"keyword": {"fg": "blue-ish"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadThemeJSON([]byte(tt.data))
			if !errors.Is(err, ErrInvalidTheme) {
				t.Errorf("LoadThemeJSON error = %v, want ErrInvalidTheme", err)
			}
		})
	}

	_, err := LoadThemeJSON([]byte(`{"base": "Solarized"}`))
	if !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("unknown base error = %v, want ErrThemeNotFound", err)
	}
}

func TestLoadThemeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "File"}`), 0o644))

	theme, err := LoadThemeFile(path)
	require.NoError(t, err)
	require.Equal(t, "File", theme.Name)

	_, err = LoadThemeFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
