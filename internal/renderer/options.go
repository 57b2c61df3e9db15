package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/strata/internal/config"
	"github.com/dshills/strata/internal/logging"
	"github.com/dshills/strata/internal/renderer/gutter"
	"github.com/dshills/strata/internal/renderer/highlight"
)

// OptionsFromConfig builds pane options from the editor and view settings.
func OptionsFromConfig(cfg *config.Config) Options {
	editor := cfg.Editor()
	view := cfg.View()

	opts := DefaultOptions()
	opts.TabSize = editor.TabSize
	opts.LineWrap = editor.LineWrap
	opts.MaxSafeLineWidth = editor.MaxSafeLineWidth
	opts.LargeFileThreshold = editor.LargeFileThreshold
	opts.ShowTabs = editor.ShowWhitespace
	opts.RevealCodes = editor.RevealCodes

	switch editor.LineNumbers {
	case "off":
		opts.ShowLineNumbers = false
	case "relative":
		opts.LineNumberMode = gutter.LineNumberRelative
	default:
		opts.LineNumberMode = gutter.LineNumberAbsolute
	}

	opts.Scrollbar = view.Scrollbar
	opts.ComposeWidth = view.ComposeWidth
	opts.Separator = view.Separator
	opts.ScrollMargin = view.ScrollMargin
	return opts
}

// themeAliases maps lowercase config names to registered theme names.
var themeAliases = map[string]string{
	"default": "Default Dark",
	"dark":    "Default Dark",
	"monokai": "Monokai",
	"light":   "Light",
}

// LoadTheme resolves the theme settings. A theme file wins over a name;
// names are looked up among the built-in themes, then among chroma's
// styles.
func LoadTheme(tc config.ThemeConfig) (*highlight.Theme, error) {
	if tc.Path != "" {
		t, err := highlight.LoadThemeFile(tc.Path)
		if err != nil {
			return nil, fmt.Errorf("loading theme file: %w", err)
		}
		return t, nil
	}

	reg := highlight.NewThemeRegistry()
	name := tc.Name
	if alias, ok := themeAliases[strings.ToLower(name)]; ok {
		name = alias
	}
	if t, err := reg.Get(name); err == nil {
		return t, nil
	}
	return highlight.ThemeFromChroma(tc.Name)
}

// LoadThemeOrDefault is LoadTheme falling back to the default theme with
// a logged warning.
func LoadThemeOrDefault(tc config.ThemeConfig) *highlight.Theme {
	t, err := LoadTheme(tc)
	if err == nil {
		return t
	}
	log := logging.Get().WithComponent("theme")
	if errors.Is(err, highlight.ErrThemeNotFound) {
		log.Warn("unknown theme %q, using the default", tc.Name)
	} else {
		log.Warn("theme: %v, using the default", err)
	}
	return highlight.DefaultTheme()
}
