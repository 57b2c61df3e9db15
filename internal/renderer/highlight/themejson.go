package highlight

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/dshills/strata/internal/renderer/core"
)

// ErrInvalidTheme is returned for theme files that are not valid JSON or
// carry unusable values.
var ErrInvalidTheme = errors.New("invalid theme")

// LoadThemeJSON reads a theme from a JSON document of the form
//
//	{
//	  "name": "My Theme",
//	  "base": "Default Dark",
//	  "ui": {"editor_fg": "#d4d4d4", "selection_bg": "#404080"},
//	  "diff": {"add_bg": "#234023"},
//	  "diagnostic": {"error_fg": "#ff0000"},
//	  "syntax": {"keyword": {"fg": "#569cd6", "bold": true}}
//	}
//
// Keys that are absent keep the value of the base theme (DefaultTheme
// unless "base" names another built-in theme).
func LoadThemeJSON(data []byte) (*Theme, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidTheme)
	}
	doc := gjson.ParseBytes(data)

	theme := DefaultTheme()
	if base := doc.Get("base"); base.Exists() {
		t, err := NewThemeRegistry().Get(base.String())
		if err != nil {
			return nil, fmt.Errorf("theme base: %w", err)
		}
		theme = t
	}
	theme.ScopeStyles = make(map[string]core.Style)
	if name := doc.Get("name"); name.Exists() {
		theme.Name = name.String()
	}

	keys := theme.keys()
	var errs []error
	for _, section := range []string{"ui", "diff", "diagnostic"} {
		doc.Get(section).ForEach(func(k, v gjson.Result) bool {
			key := section + "." + k.String()
			field, ok := keys[key]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: unknown key %q", ErrInvalidTheme, key))
				return true
			}
			c, err := core.ColorFromHex(v.String())
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidTheme, key, err))
				return true
			}
			*field = c
			return true
		})
	}

	doc.Get("syntax").ForEach(func(k, v gjson.Result) bool {
		scope := k.String()
		st, err := parseStyle(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: syntax.%s: %w", ErrInvalidTheme, scope, err))
			return true
		}
		if tt := TokenTypeFromString(scope); tt != TokenNone && tt.String() == scope {
			theme.TokenStyles[tt] = st
		} else {
			theme.ScopeStyles[scope] = st
		}
		return true
	})

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return theme, nil
}

// LoadThemeFile reads a JSON theme from path.
func LoadThemeFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	t, err := LoadThemeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("load theme %s: %w", path, err)
	}
	return t, nil
}

// parseStyle accepts either a color string or an object with fg, bg and
// attribute flags.
func parseStyle(v gjson.Result) (core.Style, error) {
	if v.Type == gjson.String {
		c, err := core.ColorFromHex(v.String())
		if err != nil {
			return core.Style{}, err
		}
		return core.NewStyle(c), nil
	}

	var st core.Style
	if fg := v.Get("fg"); fg.Exists() {
		c, err := core.ColorFromHex(fg.String())
		if err != nil {
			return core.Style{}, err
		}
		st.Foreground = c
	}
	if bg := v.Get("bg"); bg.Exists() {
		c, err := core.ColorFromHex(bg.String())
		if err != nil {
			return core.Style{}, err
		}
		st.Background = c
	}
	attrs := []struct {
		name string
		attr core.Attribute
	}{
		{"bold", core.AttrBold},
		{"italic", core.AttrItalic},
		{"underline", core.AttrUnderline},
		{"strikethrough", core.AttrStrikethrough},
		{"dim", core.AttrDim},
	}
	for _, a := range attrs {
		if v.Get(a.name).Bool() {
			st.Attributes |= a.attr
		}
	}
	return st, nil
}
