package style

import (
	"testing"

	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/overlay"
)

var (
	syntaxRed = core.ColorFromRGB(200, 0, 0)
	semBlue   = core.ColorFromRGB(0, 0, 200)
	ansiGreen = core.ColorFromRGB(0, 200, 0)
	ansiBg    = core.ColorFromRGB(10, 10, 10)
)

func ctxAt(pos int) CharContext {
	return CharContext{
		Pos:        pos,
		HasPos:     true,
		Highlights: highlight.Spans{{Start: 0, End: 10, Color: syntaxRed}},
		Theme:      highlight.DefaultTheme(),
		Primary:    -1,
		Active:     true,
	}
}

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer    Layer
		expected string
	}{
		{LayerToken, "token"},
		{LayerANSI, "ansi"},
		{LayerSyntax, "syntax"},
		{LayerSemantic, "semantic"},
		{LayerOverlay, "overlay"},
		{LayerSelection, "selection"},
		{LayerCursor, "cursor"},
		{Layer(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.layer.String(); got != tt.expected {
			t.Errorf("%d.String() = %q, want %q", tt.layer, got, tt.expected)
		}
	}
}

func TestNewResolver(t *testing.T) {
	r := NewResolver()
	for layer := LayerToken; layer < LayerCount; layer++ {
		if !r.IsLayerEnabled(layer) {
			t.Errorf("Layer %s should be enabled by default", layer)
		}
	}

	r.SetLayerEnabled(LayerSyntax, false)
	if r.IsLayerEnabled(LayerSyntax) {
		t.Error("LayerSyntax should be disabled")
	}
	if r.IsLayerEnabled(LayerCount + 1) {
		t.Error("Invalid layer should return false")
	}
}

func TestResolveBase(t *testing.T) {
	theme := highlight.DefaultTheme()
	fg := theme.UI.EditorFg
	tokenStyle := core.NewStyle(core.ColorWhite).WithBackground(core.ColorBlack).Bold()
	unsetFg := core.DefaultStyle().Italic()

	tests := []struct {
		name string
		edit func(*CharContext)
		want core.Style
	}{
		{"syntax", func(c *CharContext) {}, core.NewStyle(syntaxRed)},
		{"theme default", func(c *CharContext) { c.Pos = 20 }, core.NewStyle(fg)},
		{"no position", func(c *CharContext) { c.HasPos = false }, core.NewStyle(fg)},
		{"token wins", func(c *CharContext) { c.TokenStyle = &tokenStyle }, tokenStyle},
		{"token without fg", func(c *CharContext) { c.TokenStyle = &unsetFg }, core.NewStyle(fg).Italic()},
		{"ansi fg beats syntax", func(c *CharContext) { c.ANSI = core.NewStyle(ansiGreen) }, core.NewStyle(ansiGreen)},
		{
			"ansi bg keeps syntax fg",
			func(c *CharContext) { c.ANSI = core.DefaultStyle().WithBackground(ansiBg) },
			core.NewStyle(syntaxRed).WithBackground(ansiBg),
		},
		{
			"ansi attrs keep syntax fg",
			func(c *CharContext) { c.ANSI = core.DefaultStyle().Bold() },
			core.NewStyle(syntaxRed).Bold(),
		},
		{
			"ansi bg without syntax",
			func(c *CharContext) { c.Pos = 20; c.ANSI = core.DefaultStyle().WithBackground(ansiBg) },
			core.NewStyle(fg).WithBackground(ansiBg),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ctxAt(3)
			ctx.Active = false
			tt.edit(&ctx)
			if got := Resolve(ctx).Style; got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveSemantic(t *testing.T) {
	ctx := ctxAt(3)
	ctx.Semantic = highlight.Spans{{Start: 2, End: 5, Color: semBlue}}
	if got := Resolve(ctx).Style.Foreground; got != semBlue {
		t.Errorf("semantic fg = %v, want %v", got, semBlue)
	}

	tokenStyle := core.NewStyle(core.ColorWhite)
	ctx.TokenStyle = &tokenStyle
	if got := Resolve(ctx).Style.Foreground; got != core.ColorWhite {
		t.Errorf("semantic should not override token style, got %v", got)
	}
}

func TestResolveOverlays(t *testing.T) {
	theme := highlight.DefaultTheme()
	under := core.ColorFromRGB(255, 0, 0)
	bg := core.ColorFromRGB(1, 1, 1)

	tests := []struct {
		name     string
		overlays []overlay.Overlay
		want     core.Style
	}{
		{
			"underline sets fg",
			[]overlay.Overlay{{Start: 0, End: 5, Face: overlay.Underline(under)}},
			core.NewStyle(under).Underline(),
		},
		{
			"background",
			[]overlay.Overlay{{Start: 0, End: 5, Face: overlay.Background(bg)}},
			core.NewStyle(syntaxRed).WithBackground(bg),
		},
		{
			"query order, later wins",
			[]overlay.Overlay{
				{Start: 0, End: 5, Face: overlay.Foreground(core.ColorGreen)},
				{Start: 0, End: 5, Face: overlay.Foreground(core.ColorBlue)},
			},
			core.NewStyle(core.ColorBlue),
		},
		{
			"not covering",
			[]overlay.Overlay{{Start: 4, End: 5, Face: overlay.Background(bg)}},
			core.NewStyle(syntaxRed),
		},
		{
			"style patch",
			[]overlay.Overlay{{Start: 0, End: 5, Face: overlay.StyleFace(core.DefaultStyle().Bold())}},
			core.NewStyle(syntaxRed).Bold(),
		},
		{
			"themed key",
			[]overlay.Overlay{{Start: 0, End: 5, Face: overlay.Themed(core.NewStyle(core.ColorWhite), "", "ui.selection_bg")}},
			core.NewStyle(core.ColorWhite).WithBackground(theme.UI.SelectionBg),
		},
		{
			"themed unknown key falls back",
			[]overlay.Overlay{{Start: 0, End: 5, Face: overlay.Themed(core.DefaultStyle().WithBackground(bg), "", "ui.nope")}},
			core.NewStyle(syntaxRed).WithBackground(bg),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ctxAt(3)
			ctx.Overlays = tt.overlays
			if got := Resolve(ctx).Style; got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveSelectionAndCursor(t *testing.T) {
	theme := highlight.DefaultTheme()
	selected := core.Style{Foreground: theme.UI.EditorFg, Background: theme.UI.SelectionBg}

	ctx := ctxAt(3)
	ctx.Selected = true
	ctx.Overlays = []overlay.Overlay{{Start: 0, End: 5, Face: overlay.StyleFace(core.DefaultStyle().Bold())}}
	if got := Resolve(ctx); got.Style != selected || got.SecondaryCursor {
		t.Errorf("selection = %+v, want %+v", got, selected)
	}

	ctx.Cursor = true
	ctx.Primary = 3
	got := Resolve(ctx)
	if got.Style != selected.Reverse() {
		t.Errorf("active cursor = %+v, want reversed selection", got.Style)
	}
	if got.SecondaryCursor {
		t.Error("cursor at primary should not be secondary")
	}

	ctx.Primary = 7
	if !Resolve(ctx).SecondaryCursor {
		t.Error("cursor away from primary should be secondary")
	}

	ctx.Active = false
	got = Resolve(ctx)
	want := core.Style{Foreground: theme.UI.EditorFg, Background: theme.UI.InactiveCursor}
	if got.Style != want {
		t.Errorf("inactive cursor = %+v, want %+v", got.Style, want)
	}
}

func TestResolverDisabledLayers(t *testing.T) {
	r := NewResolver()
	r.SetLayerEnabled(LayerSyntax, false)
	r.SetLayerEnabled(LayerCursor, false)

	ctx := ctxAt(3)
	ctx.Cursor = true
	got := r.Resolve(ctx).Style
	if got != core.NewStyle(ctx.Theme.UI.EditorFg) {
		t.Errorf("Resolve() with syntax and cursor off = %+v", got)
	}
}

func TestFaceBackground(t *testing.T) {
	theme := highlight.DefaultTheme()
	tests := []struct {
		face   overlay.Face
		want   core.Color
		wantOK bool
	}{
		{overlay.Background(core.ColorRed), core.ColorRed, true},
		{overlay.StyleFace(core.DefaultStyle().WithBackground(core.ColorBlue)), core.ColorBlue, true},
		{overlay.StyleFace(core.NewStyle(core.ColorBlue)), core.Color{}, false},
		{overlay.Themed(core.DefaultStyle(), "", "diff.add_bg"), theme.UI.DiffAddBg, true},
		{overlay.Underline(core.ColorRed), core.Color{}, false},
	}
	for _, tt := range tests {
		got, ok := FaceBackground(tt.face, theme)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("FaceBackground(%v) = %v, %v; want %v, %v", tt.face.Kind, got, ok, tt.want, tt.wantOK)
		}
	}
}
