package gutter

import (
	"testing"

	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
)

func spansText(spans []core.Span) string {
	return core.NewLine(spans...).Text()
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Enabled {
		t.Error("Enabled should be true by default")
	}
	if cfg.MinWidth != 4 {
		t.Errorf("expected MinWidth 4, got %d", cfg.MinWidth)
	}
	if !cfg.ShowSeparator || cfg.Separator != "│" {
		t.Errorf("unexpected separator config %+v", cfg)
	}
	if cfg.Mode != LineNumberAbsolute {
		t.Errorf("expected absolute numbering, got %v", cfg.Mode)
	}
}

func TestGutterWidth(t *testing.T) {
	g := New(DefaultConfig())
	// indicator + 4 digits + separator
	if w := g.Width(); w != 6 {
		t.Errorf("expected initial width 6, got %d", w)
	}

	g.SetLineCount(123456)
	if w := g.Width(); w != 8 {
		t.Errorf("expected width 8 for 123456 lines, got %d", w)
	}
	if w := g.NumberWidth(); w != 6 {
		t.Errorf("expected number width 6, got %d", w)
	}

	cfg := DefaultConfig()
	cfg.Width = 2
	cfg.ShowSeparator = false
	g.SetConfig(cfg)
	if w := g.Width(); w != 3 {
		t.Errorf("expected fixed width 3, got %d", w)
	}

	cfg.Enabled = false
	g.SetConfig(cfg)
	if w := g.Width(); w != 0 {
		t.Errorf("disabled gutter width = %d, want 0", w)
	}
	if spans := g.Render(Row{}, Marks{}, nil); spans != nil {
		t.Errorf("disabled gutter rendered %v", spans)
	}
}

func TestGutterRender(t *testing.T) {
	theme := highlight.DefaultTheme()
	inds := NewIndicators()
	inds.SetSign(2, SignGitAdded)
	inds.SetSign(4, SignGitModified)
	marks := Marks{Diagnostics: map[int]bool{4: true}, Indicators: inds}

	tests := []struct {
		name string
		row  Row
		want string
	}{
		{"plain", Row{Line: 0}, "    1│"},
		{"indicator", Row{Line: 2}, "+   3│"},
		{"diagnostic beats indicator", Row{Line: 4}, "●   5│"},
		{"continuation", Row{Line: 4, Continuation: true}, "     │"},
	}
	g := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := g.Render(tt.row, marks, theme)
			if got := spansText(spans); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if w := core.NewLine(spans...).Width(); w != g.Width() {
				t.Errorf("rendered width %d, want %d", w, g.Width())
			}
		})
	}

	spans := g.Render(Row{Line: 4}, marks, theme)
	if spans[0].Style.Foreground != theme.UI.DiagnosticError {
		t.Errorf("diagnostic glyph color = %v", spans[0].Style.Foreground)
	}
	if spans[1].Style.Foreground != theme.UI.LineNumberFg {
		t.Errorf("number color = %v", spans[1].Style.Foreground)
	}
}

func TestGutterRenderHybrid(t *testing.T) {
	theme := highlight.DefaultTheme()
	cfg := DefaultConfig()
	cfg.Mode = LineNumberHybrid
	g := New(cfg)

	cur := g.Render(Row{Line: 5, CursorLine: 5}, Marks{}, theme)
	if got := spansText(cur); got != "    6│" {
		t.Errorf("cursor line = %q", got)
	}
	if cur[1].Style.Foreground != theme.UI.EditorFg {
		t.Error("cursor line number should use the editor foreground")
	}

	other := g.Render(Row{Line: 2, CursorLine: 5}, Marks{}, theme)
	if got := spansText(other); got != "    3│" {
		t.Errorf("other line = %q", got)
	}
	if other[1].Style.Foreground != theme.UI.LineNumberFg {
		t.Error("other line number should use the line number color")
	}
}

func TestIndicatorsPriority(t *testing.T) {
	inds := NewIndicators()
	inds.SetSign(1, SignGitAdded)
	inds.SetSign(1, SignError)
	inds.SetSign(1, SignWarning)

	got, ok := inds.Get(1)
	if !ok || got.Symbol != "E" {
		t.Errorf("Get(1) = %+v, want error sign", got)
	}
	if inds.Len() != 1 {
		t.Errorf("Len() = %d, want 1", inds.Len())
	}

	inds.Remove(1)
	if _, ok := inds.Get(1); ok {
		t.Error("Remove should clear the line")
	}

	var none *Indicators
	if _, ok := none.Get(0); ok {
		t.Error("nil indicators should be empty")
	}
}

func TestLineNumberFormatter(t *testing.T) {
	tests := []struct {
		mode    LineNumberMode
		line    int
		current int
		want    string
	}{
		{LineNumberAbsolute, 0, 5, "   1"},
		{LineNumberAbsolute, 9, 5, "  10"},
		{LineNumberRelative, 5, 5, "   0"},
		{LineNumberRelative, 2, 5, "   3"},
		{LineNumberRelative, 8, 5, "   3"},
		{LineNumberHybrid, 5, 5, "   6"},
		{LineNumberHybrid, 7, 5, "   2"},
	}
	for _, tt := range tests {
		f := NewLineNumberFormatter(tt.mode, 4)
		f.SetCurrentLine(tt.current)
		if got := f.Format(tt.line); got != tt.want {
			t.Errorf("%v Format(%d) cursor %d = %q, want %q", tt.mode, tt.line, tt.current, got, tt.want)
		}
	}
}

func TestParseLineNumberMode(t *testing.T) {
	for _, mode := range []LineNumberMode{LineNumberAbsolute, LineNumberRelative, LineNumberHybrid} {
		got, ok := ParseLineNumberMode(mode.String())
		if !ok || got != mode {
			t.Errorf("ParseLineNumberMode(%q) = %v, %v", mode.String(), got, ok)
		}
	}
	if _, ok := ParseLineNumberMode("roman"); ok {
		t.Error("unknown mode should not parse")
	}
}

func TestCalculateWidth(t *testing.T) {
	tests := []struct {
		lines, min, want int
	}{
		{0, 1, 1},
		{9, 1, 1},
		{10, 1, 2},
		{99999, 3, 5},
		{5, 4, 4},
	}
	for _, tt := range tests {
		if got := CalculateWidth(tt.lines, tt.min); got != tt.want {
			t.Errorf("CalculateWidth(%d, %d) = %d, want %d", tt.lines, tt.min, got, tt.want)
		}
	}
}
