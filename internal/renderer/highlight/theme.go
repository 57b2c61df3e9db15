package highlight

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/strata/internal/renderer/core"
)

// ErrThemeNotFound is returned when a theme name is not registered.
var ErrThemeNotFound = errors.New("theme not found")

// UI holds the colors the renderer draws chrome and decorations with.
type UI struct {
	EditorFg          core.Color
	EditorBg          core.Color
	SelectionBg       core.Color
	InactiveCursor    core.Color
	LineNumberFg      core.Color
	CurrentLineBg     core.Color
	SplitSeparatorFg  core.Color
	ComposeMarginBg   core.Color
	TabActiveFg       core.Color
	TabActiveBg       core.Color
	TabInactiveFg     core.Color
	TabInactiveBg     core.Color
	ScrollbarTrack    core.Color
	ScrollbarThumb    core.Color
	DiffAddBg         core.Color
	DiffRemoveBg      core.Color
	DiffModifyBg      core.Color
	DiffAddHighlight  core.Color
	DiffRemHighlight  core.Color
	DiagnosticError   core.Color
	DiagnosticWarning core.Color
	DiagnosticInfo    core.Color
	DiagnosticHint    core.Color
}

// Theme defines the UI colors and the syntax token styles.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	UI UI

	// TokenStyles maps token types to their styles.
	TokenStyles map[TokenType]core.Style

	// ScopeStyles maps scope strings to styles (for custom scopes).
	ScopeStyles map[string]core.Style
}

// keys returns the resolvable UI color keys and the fields behind them.
func (t *Theme) keys() map[string]*core.Color {
	u := &t.UI
	return map[string]*core.Color{
		"ui.editor_fg":             &u.EditorFg,
		"ui.editor_bg":             &u.EditorBg,
		"ui.selection_bg":          &u.SelectionBg,
		"ui.inactive_cursor":       &u.InactiveCursor,
		"ui.line_number_fg":        &u.LineNumberFg,
		"ui.current_line_bg":       &u.CurrentLineBg,
		"ui.split_separator_fg":    &u.SplitSeparatorFg,
		"ui.compose_margin_bg":     &u.ComposeMarginBg,
		"ui.tab_active_fg":         &u.TabActiveFg,
		"ui.tab_active_bg":         &u.TabActiveBg,
		"ui.tab_inactive_fg":       &u.TabInactiveFg,
		"ui.tab_inactive_bg":       &u.TabInactiveBg,
		"ui.scrollbar_track":       &u.ScrollbarTrack,
		"ui.scrollbar_thumb":       &u.ScrollbarThumb,
		"diff.add_bg":              &u.DiffAddBg,
		"diff.remove_bg":           &u.DiffRemoveBg,
		"diff.modify_bg":           &u.DiffModifyBg,
		"diff.add_highlight_bg":    &u.DiffAddHighlight,
		"diff.remove_highlight_bg": &u.DiffRemHighlight,
		"diagnostic.error_fg":      &u.DiagnosticError,
		"diagnostic.warning_fg":    &u.DiagnosticWarning,
		"diagnostic.info_fg":       &u.DiagnosticInfo,
		"diagnostic.hint_fg":       &u.DiagnosticHint,
	}
}

// ResolveKey looks up a color by key. UI keys are "ui.selection_bg",
// "diff.add_bg", "diagnostic.error_fg" and so on; a key without a section
// is tried under "ui.". "syntax.<scope>" resolves to the foreground of
// the scope's style.
func (t *Theme) ResolveKey(key string) (core.Color, bool) {
	if scope, ok := strings.CutPrefix(key, "syntax."); ok {
		if st, ok := t.scopeStyle(scope); ok && st.Foreground.IsSet() {
			return st.Foreground, true
		}
		return core.Color{}, false
	}

	keys := t.keys()
	if !strings.Contains(key, ".") {
		key = "ui." + key
	}
	if c, ok := keys[key]; ok && c.IsSet() {
		return *c, true
	}
	return core.Color{}, false
}

// Keys returns every UI color key, sorted.
func (t *Theme) Keys() []string {
	keys := t.keys()
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// StyleForToken returns the style for a given token type.
func (t *Theme) StyleForToken(tokenType TokenType) core.Style {
	if style, ok := t.TokenStyles[tokenType]; ok {
		return style
	}
	return core.NewStyle(t.UI.EditorFg)
}

// StyleForScope returns the style for a scope string, trying exact custom
// scopes, then token types, then parent scopes.
func (t *Theme) StyleForScope(scope string) core.Style {
	if st, ok := t.scopeStyle(scope); ok {
		return st
	}
	return core.NewStyle(t.UI.EditorFg)
}

func (t *Theme) scopeStyle(scope string) (core.Style, bool) {
	for s := scope; s != ""; {
		if style, ok := t.ScopeStyles[s]; ok {
			return style, true
		}
		i := strings.LastIndexByte(s, '.')
		if i < 0 {
			break
		}
		s = s[:i]
	}
	if tt := TokenTypeFromString(scope); tt != TokenNone {
		if style, ok := t.TokenStyles[tt]; ok {
			return style, true
		}
	}
	return core.Style{}, false
}

// palette names the colors a token style table is built from.
type palette struct {
	comment, str, escape, number, keyword, operator core.Color
	variable, constant, function, typ, invalid      core.Color
	italicComments                                  bool
}

// tokenStyles expands a palette into a token style table.
func tokenStyles(p palette) map[TokenType]core.Style {
	comment := core.NewStyle(p.comment)
	if p.italicComments {
		comment = comment.Italic()
	}
	m := map[TokenType]core.Style{
		TokenStringEscape:      core.NewStyle(p.escape),
		TokenConstant:          core.NewStyle(p.constant),
		TokenConstantLanguage:  core.NewStyle(p.keyword),
		TokenInvalid:           core.NewStyle(p.invalid),
		TokenInvalidDeprecated: core.NewStyle(p.invalid).Strikethrough(),
		TokenInvalidIllegal:    core.NewStyle(p.invalid).Bold(),
		TokenMarkupHeading:     core.NewStyle(p.keyword).Bold(),
		TokenMarkupBold:        core.DefaultStyle().Bold(),
		TokenMarkupItalic:      core.DefaultStyle().Italic(),
		TokenMarkupCode:        core.NewStyle(p.str),
		TokenMarkupLink:        core.NewStyle(p.typ).Underline(),
		TokenTag:               core.NewStyle(p.keyword),
		TokenAttribute:         core.NewStyle(p.variable),
		TokenNamespace:         core.NewStyle(p.typ),
		TokenMeta:              core.NewStyle(p.comment),
	}
	ranges := []struct {
		from, to TokenType
		style    core.Style
	}{
		{TokenComment, TokenCommentDoc, comment},
		{TokenString, TokenStringRegexp, core.NewStyle(p.str)},
		{TokenNumber, TokenNumberBinary, core.NewStyle(p.number)},
		{TokenKeyword, TokenKeywordDeclaration, core.NewStyle(p.keyword)},
		{TokenOperator, TokenPunctuationDelimiter, core.NewStyle(p.operator)},
		{TokenIdentifier, TokenVariableOther, core.NewStyle(p.variable)},
		{TokenFunction, TokenFunctionBuiltin, core.NewStyle(p.function)},
		{TokenTypeName, TokenTypeParameter, core.NewStyle(p.typ)},
		{TokenStorage, TokenStorageModifier, core.NewStyle(p.keyword)},
		{TokenSupport, TokenSupportVariable, core.NewStyle(p.function)},
	}
	for _, r := range ranges {
		for tt := r.from; tt <= r.to; tt++ {
			m[tt] = r.style
		}
	}
	return m
}

// darkChrome fills the chrome, diff and diagnostic colors shared by the
// dark themes.
func darkChrome(u *UI) {
	u.InactiveCursor = core.ColorFromRGB(70, 70, 70)
	u.SplitSeparatorFg = core.ColorFromRGB(80, 80, 80)
	u.ComposeMarginBg = core.ColorFromRGB(18, 18, 18)
	u.TabInactiveFg = core.ColorFromRGB(150, 150, 150)
	u.TabInactiveBg = core.ColorFromRGB(45, 45, 45)
	u.ScrollbarTrack = core.ColorFromRGB(40, 40, 40)
	u.ScrollbarThumb = core.ColorFromRGB(100, 100, 100)
	u.DiffAddBg = core.ColorFromRGB(35, 60, 35)
	u.DiffRemoveBg = core.ColorFromRGB(70, 35, 35)
	u.DiffModifyBg = core.ColorFromRGB(40, 45, 70)
	u.DiffAddHighlight = core.ColorFromRGB(50, 110, 50)
	u.DiffRemHighlight = core.ColorFromRGB(130, 50, 50)
	u.DiagnosticError = core.ColorRed
	u.DiagnosticWarning = core.ColorYellow
	u.DiagnosticInfo = core.ColorBlue
	u.DiagnosticHint = core.ColorGray
}

// DefaultTheme returns the default dark theme.
func DefaultTheme() *Theme {
	t := &Theme{
		Name: "Default Dark",
		UI: UI{
			EditorFg:      core.ColorFromRGB(212, 212, 212),
			EditorBg:      core.ColorFromRGB(30, 30, 30),
			SelectionBg:   core.ColorFromRGB(64, 64, 128),
			LineNumberFg:  core.ColorFromRGB(133, 133, 133),
			CurrentLineBg: core.ColorFromRGB(40, 40, 40),
			TabActiveFg:   core.ColorWhite,
			TabActiveBg:   core.ColorFromRGB(60, 60, 90),
		},
		TokenStyles: tokenStyles(palette{
			comment:        core.ColorFromRGB(106, 153, 85),
			str:            core.ColorFromRGB(206, 145, 120),
			escape:         core.ColorFromRGB(215, 186, 125),
			number:         core.ColorFromRGB(181, 206, 168),
			keyword:        core.ColorFromRGB(86, 156, 214),
			operator:       core.ColorFromRGB(212, 212, 212),
			variable:       core.ColorFromRGB(156, 220, 254),
			constant:       core.ColorFromRGB(79, 193, 255),
			function:       core.ColorFromRGB(220, 220, 170),
			typ:            core.ColorFromRGB(78, 201, 176),
			invalid:        core.ColorFromRGB(244, 71, 71),
			italicComments: true,
		}),
		ScopeStyles: make(map[string]core.Style),
	}
	darkChrome(&t.UI)
	return t
}

// MonokaiTheme returns a Monokai-inspired theme.
func MonokaiTheme() *Theme {
	t := &Theme{
		Name: "Monokai",
		UI: UI{
			EditorFg:      core.ColorFromRGB(248, 248, 242),
			EditorBg:      core.ColorFromRGB(39, 40, 34),
			SelectionBg:   core.ColorFromRGB(73, 72, 62),
			LineNumberFg:  core.ColorFromRGB(144, 144, 138),
			CurrentLineBg: core.ColorFromRGB(62, 61, 50),
			TabActiveFg:   core.ColorFromRGB(248, 248, 242),
			TabActiveBg:   core.ColorFromRGB(73, 72, 62),
		},
		TokenStyles: tokenStyles(palette{
			comment:  core.ColorFromRGB(117, 113, 94),
			str:      core.ColorFromRGB(230, 219, 116),
			escape:   core.ColorFromRGB(174, 129, 255),
			number:   core.ColorFromRGB(174, 129, 255),
			keyword:  core.ColorFromRGB(249, 38, 114),
			operator: core.ColorFromRGB(249, 38, 114),
			variable: core.ColorFromRGB(248, 248, 242),
			constant: core.ColorFromRGB(174, 129, 255),
			function: core.ColorFromRGB(166, 226, 46),
			typ:      core.ColorFromRGB(102, 217, 239),
			invalid:  core.ColorFromRGB(249, 38, 114),
		}),
		ScopeStyles: make(map[string]core.Style),
	}
	darkChrome(&t.UI)
	t.TokenStyles[TokenVariableParameter] = core.NewStyle(core.ColorFromRGB(253, 151, 31)).Italic()
	return t
}

// LightTheme returns a light theme.
func LightTheme() *Theme {
	return &Theme{
		Name: "Light",
		UI: UI{
			EditorFg:          core.ColorBlack,
			EditorBg:          core.ColorWhite,
			SelectionBg:       core.ColorFromRGB(173, 214, 255),
			InactiveCursor:    core.ColorFromRGB(200, 200, 200),
			LineNumberFg:      core.ColorFromRGB(140, 140, 140),
			CurrentLineBg:     core.ColorFromRGB(245, 245, 245),
			SplitSeparatorFg:  core.ColorFromRGB(190, 190, 190),
			ComposeMarginBg:   core.ColorFromRGB(225, 225, 225),
			TabActiveFg:       core.ColorBlack,
			TabActiveBg:       core.ColorFromRGB(220, 220, 240),
			TabInactiveFg:     core.ColorFromRGB(100, 100, 100),
			TabInactiveBg:     core.ColorFromRGB(235, 235, 235),
			ScrollbarTrack:    core.ColorFromRGB(230, 230, 230),
			ScrollbarThumb:    core.ColorFromRGB(170, 170, 170),
			DiffAddBg:         core.ColorFromRGB(220, 255, 220),
			DiffRemoveBg:      core.ColorFromRGB(255, 225, 225),
			DiffModifyBg:      core.ColorFromRGB(225, 230, 255),
			DiffAddHighlight:  core.ColorFromRGB(170, 240, 170),
			DiffRemHighlight:  core.ColorFromRGB(255, 180, 180),
			DiagnosticError:   core.ColorFromRGB(205, 49, 49),
			DiagnosticWarning: core.ColorFromRGB(191, 136, 3),
			DiagnosticInfo:    core.ColorFromRGB(26, 133, 255),
			DiagnosticHint:    core.ColorFromRGB(110, 110, 110),
		},
		TokenStyles: tokenStyles(palette{
			comment:        core.ColorFromRGB(0, 128, 0),
			str:            core.ColorFromRGB(163, 21, 21),
			escape:         core.ColorFromRGB(205, 49, 49),
			number:         core.ColorFromRGB(9, 134, 88),
			keyword:        core.ColorFromRGB(0, 0, 255),
			operator:       core.ColorBlack,
			variable:       core.ColorFromRGB(0, 16, 128),
			constant:       core.ColorFromRGB(0, 112, 193),
			function:       core.ColorFromRGB(121, 94, 38),
			typ:            core.ColorFromRGB(38, 127, 153),
			invalid:        core.ColorFromRGB(205, 49, 49),
			italicComments: true,
		}),
		ScopeStyles: make(map[string]core.Style),
	}
}

// ThemeRegistry holds available themes.
type ThemeRegistry struct {
	themes  map[string]*Theme
	current *Theme
}

// NewThemeRegistry creates a new theme registry with built-in themes.
func NewThemeRegistry() *ThemeRegistry {
	r := &ThemeRegistry{
		themes: make(map[string]*Theme),
	}
	r.Register(DefaultTheme())
	r.Register(MonokaiTheme())
	r.Register(LightTheme())
	r.current = r.themes["Default Dark"]
	return r
}

// Register adds a theme to the registry.
func (r *ThemeRegistry) Register(theme *Theme) {
	r.themes[theme.Name] = theme
}

// Get returns a theme by name.
func (r *ThemeRegistry) Get(name string) (*Theme, error) {
	t, ok := r.themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return t, nil
}

// Current returns the current theme.
func (r *ThemeRegistry) Current() *Theme {
	return r.current
}

// SetCurrent sets the current theme by name.
func (r *ThemeRegistry) SetCurrent(name string) error {
	t, err := r.Get(name)
	if err != nil {
		return err
	}
	r.current = t
	return nil
}

// Names returns all registered theme names, sorted.
func (r *ThemeRegistry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
