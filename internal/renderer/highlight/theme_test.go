package highlight

import (
	"errors"
	"testing"

	"github.com/dshills/strata/internal/renderer/core"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	if theme.Name != "Default Dark" {
		t.Errorf("DefaultTheme().Name = %q, want %q", theme.Name, "Default Dark")
	}
	if !theme.UI.EditorBg.IsSet() {
		t.Error("DefaultTheme().UI.EditorBg should be set")
	}
	if !theme.UI.EditorFg.IsSet() {
		t.Error("DefaultTheme().UI.EditorFg should be set")
	}

	tokensToCheck := []TokenType{
		TokenComment,
		TokenString,
		TokenKeyword,
		TokenFunction,
		TokenTypeName,
	}
	for _, tt := range tokensToCheck {
		if _, ok := theme.TokenStyles[tt]; !ok {
			t.Errorf("DefaultTheme() missing style for %v", tt)
		}
	}
}

func TestBuiltinThemesSetEveryKey(t *testing.T) {
	for _, theme := range []*Theme{DefaultTheme(), MonokaiTheme(), LightTheme()} {
		for _, key := range theme.Keys() {
			if _, ok := theme.ResolveKey(key); !ok {
				t.Errorf("%s: key %q is unset", theme.Name, key)
			}
		}
	}
}

func TestThemeStyleForToken(t *testing.T) {
	theme := DefaultTheme()

	style := theme.StyleForToken(TokenComment)
	if !style.Foreground.IsSet() || style.Foreground == theme.UI.EditorFg {
		t.Error("StyleForToken(TokenComment) should return a distinct foreground")
	}
	if !style.Attributes.Has(core.AttrItalic) {
		t.Error("default theme comments should be italic")
	}

	style = theme.StyleForToken(TokenNone)
	if style.Foreground != theme.UI.EditorFg {
		t.Errorf("StyleForToken(TokenNone).Foreground = %v, want editor fg", style.Foreground)
	}
}

func TestThemeStyleForScope(t *testing.T) {
	theme := DefaultTheme()
	custom := core.NewStyle(core.ColorFromRGB(1, 2, 3))
	theme.ScopeStyles["entity.name.special"] = custom

	tests := []struct {
		scope string
		want  core.Style
	}{
		{"entity.name.special", custom},
		{"entity.name.special.go", custom},
		{"keyword.control.go", theme.TokenStyles[TokenKeyword]},
		{"nothing.here", core.NewStyle(theme.UI.EditorFg)},
	}
	for _, tt := range tests {
		if got := theme.StyleForScope(tt.scope); got != tt.want {
			t.Errorf("StyleForScope(%q) = %+v, want %+v", tt.scope, got, tt.want)
		}
	}
}

func TestThemeResolveKey(t *testing.T) {
	theme := DefaultTheme()

	tests := []struct {
		key    string
		want   core.Color
		wantOK bool
	}{
		{"ui.selection_bg", theme.UI.SelectionBg, true},
		{"selection_bg", theme.UI.SelectionBg, true},
		{"diff.add_bg", theme.UI.DiffAddBg, true},
		{"diagnostic.error_fg", theme.UI.DiagnosticError, true},
		{"syntax.keyword", theme.TokenStyles[TokenKeyword].Foreground, true},
		{"syntax.markup.bold", core.Color{}, false},
		{"ui.nope", core.Color{}, false},
	}
	for _, tt := range tests {
		got, ok := theme.ResolveKey(tt.key)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ResolveKey(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		want      string
	}{
		{TokenNone, "none"},
		{TokenComment, "comment"},
		{TokenCommentLine, "comment.line"},
		{TokenString, "string"},
		{TokenKeyword, "keyword"},
		{TokenKeywordDeclaration, "keyword.declaration"},
		{TokenFunction, "function"},
		{TokenTypeName, "type"},
		{tokenTypeCount, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.tokenType.String(); got != tt.want {
			t.Errorf("TokenType(%d).String() = %q, want %q", tt.tokenType, got, tt.want)
		}
	}
}

func TestTokenTypeFromString(t *testing.T) {
	tests := []struct {
		scope string
		want  TokenType
	}{
		{"comment", TokenComment},
		{"comment.line", TokenCommentLine},
		{"comment.line.double-slash.go", TokenCommentLine},
		{"keyword.control.go", TokenKeyword},
		{"string.quoted.double", TokenStringQuoted},
		{"unknown.scope", TokenNone},
		{"", TokenNone},
	}
	for _, tt := range tests {
		if got := TokenTypeFromString(tt.scope); got != tt.want {
			t.Errorf("TokenTypeFromString(%q) = %v, want %v", tt.scope, got, tt.want)
		}
	}
}

func TestThemeRegistry(t *testing.T) {
	registry := NewThemeRegistry()

	if registry.Current().Name != "Default Dark" {
		t.Errorf("Current().Name = %q, want %q", registry.Current().Name, "Default Dark")
	}

	names := registry.Names()
	want := []string{"Default Dark", "Light", "Monokai"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if err := registry.SetCurrent("Monokai"); err != nil {
		t.Fatalf("SetCurrent(Monokai): %v", err)
	}
	if registry.Current().Name != "Monokai" {
		t.Errorf("Current().Name = %q after SetCurrent", registry.Current().Name)
	}

	err := registry.SetCurrent("NonExistent")
	if !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("SetCurrent(NonExistent) error = %v, want ErrThemeNotFound", err)
	}
	if registry.Current().Name != "Monokai" {
		t.Error("failed SetCurrent should keep the current theme")
	}
}

func TestRegisterCustomTheme(t *testing.T) {
	registry := NewThemeRegistry()
	custom := &Theme{Name: "Custom", TokenStyles: map[TokenType]core.Style{}}
	registry.Register(custom)

	got, err := registry.Get("Custom")
	if err != nil {
		t.Fatalf("Get(Custom): %v", err)
	}
	if got != custom {
		t.Error("Get should return the registered theme")
	}
}
