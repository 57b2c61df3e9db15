package viewport

import (
	"strings"
	"testing"

	"github.com/dshills/strata/internal/document"
	"github.com/dshills/strata/internal/renderer/core"
)

// hundredLines has 100 five-byte lines plus the empty line after the
// final newline.
func hundredLines() *document.Document {
	return document.FromString(strings.Repeat("line\n", 100))
}

func TestNew(t *testing.T) {
	v := New(80, 24)
	if v.Width != 80 || v.Height != 24 {
		t.Errorf("expected 80x24, got %dx%d", v.Width, v.Height)
	}
	if v.TopByte != 0 || v.LeftColumn != 0 {
		t.Errorf("expected origin, got top %d left %d", v.TopByte, v.LeftColumn)
	}
	if v.Margins != DefaultMargins() {
		t.Errorf("expected default margins, got %+v", v.Margins)
	}

	v = New(0, -3)
	if v.Width != 1 || v.Height != 1 {
		t.Errorf("expected clamped 1x1, got %dx%d", v.Width, v.Height)
	}
}

func TestResize(t *testing.T) {
	v := New(80, 24)
	v.Resize(120, 0)
	if v.Width != 120 || v.Height != 1 {
		t.Errorf("expected 120x1, got %dx%d", v.Width, v.Height)
	}
}

func TestSetTopLine(t *testing.T) {
	doc := hundredLines()
	tests := []struct {
		line    int
		topByte int
	}{
		{10, 50},
		{0, 0},
		{-5, 0},
		{100, 500},
		{200, 500},
	}
	for _, tt := range tests {
		v := New(80, 24)
		v.SetTopLine(doc, tt.line)
		if v.TopByte != tt.topByte {
			t.Errorf("SetTopLine(%d): TopByte = %d, want %d", tt.line, v.TopByte, tt.topByte)
		}
	}
}

func TestScrolling(t *testing.T) {
	doc := hundredLines()
	v := New(80, 24)

	v.SetTopLine(doc, 10)
	v.ScrollBy(doc, 3)
	if got := v.TopLine(doc); got != 13 {
		t.Errorf("ScrollBy: top line %d, want 13", got)
	}

	v.ScrollToTop()
	v.PageDown(doc)
	if got := v.TopLine(doc); got != 24 {
		t.Errorf("PageDown: top line %d, want 24", got)
	}
	v.HalfPageUp(doc)
	if got := v.TopLine(doc); got != 12 {
		t.Errorf("HalfPageUp: top line %d, want 12", got)
	}
	v.HalfPageDown(doc)
	v.PageUp(doc)
	if got := v.TopLine(doc); got != 0 {
		t.Errorf("PageUp: top line %d, want 0", got)
	}

	v.ScrollToBottom(doc)
	if got := v.TopLine(doc); got != 77 {
		t.Errorf("ScrollToBottom: top line %d, want 77", got)
	}

	v.CenterOn(doc, 50*5)
	if got := v.TopLine(doc); got != 38 {
		t.Errorf("CenterOn: top line %d, want 38", got)
	}
}

func TestScrollToRevealVertical(t *testing.T) {
	doc := hundredLines()
	v := New(80, 24)

	if v.ScrollToReveal(doc, 0, 0) {
		t.Error("revealing the first line should not scroll")
	}
	if !v.ScrollToReveal(doc, 30*5, 0) {
		t.Fatal("revealing line 30 should scroll")
	}
	if got := v.TopLine(doc); got != 12 {
		t.Errorf("top line %d, want 12", got)
	}
	if !v.ScrollToReveal(doc, 12*5, 0) {
		t.Fatal("revealing line 12 should scroll up into the margin")
	}
	if got := v.TopLine(doc); got != 7 {
		t.Errorf("top line %d, want 7", got)
	}
}

func TestScrollToRevealHorizontal(t *testing.T) {
	doc := document.FromString(strings.Repeat("x", 40))
	v := New(10, 5)
	v.Margins = NoMargins()

	if !v.ScrollToReveal(doc, 15, 15) {
		t.Fatal("expected scroll right")
	}
	if v.LeftColumn != 6 {
		t.Errorf("LeftColumn = %d, want 6", v.LeftColumn)
	}
	if !v.IsColumnVisible(15) || v.IsColumnVisible(16) {
		t.Error("column 15 should be the last visible column")
	}

	if !v.ScrollToReveal(doc, 3, 3) {
		t.Fatal("expected scroll left")
	}
	if v.LeftColumn != 3 {
		t.Errorf("LeftColumn = %d, want 3", v.LeftColumn)
	}

	v.SetLineWrap(true)
	if v.LeftColumn != 0 {
		t.Errorf("wrapping should reset LeftColumn, got %d", v.LeftColumn)
	}
	if v.ScrollToReveal(doc, 30, 30) {
		t.Error("wrapped views should not scroll horizontally")
	}
	if !v.IsColumnVisible(30) {
		t.Error("every column is visible while wrapping")
	}
}

func TestScrollHorizontalBy(t *testing.T) {
	v := New(10, 5)
	v.ScrollHorizontalBy(-5)
	if v.LeftColumn != 0 {
		t.Errorf("LeftColumn = %d, want 0", v.LeftColumn)
	}
	v.ScrollHorizontalBy(7)
	if v.LeftColumn != 7 {
		t.Errorf("LeftColumn = %d, want 7", v.LeftColumn)
	}
	v.SetLineWrap(true)
	v.ScrollHorizontalBy(3)
	if v.LeftColumn != 0 {
		t.Errorf("LeftColumn = %d, want 0 while wrapping", v.LeftColumn)
	}
}

func TestScrollPercent(t *testing.T) {
	doc := hundredLines()
	v := New(80, 24)
	if p := v.ScrollPercent(doc); p != 0 {
		t.Errorf("ScrollPercent = %v, want 0", p)
	}

	v.ScrollToPercent(doc, 0.5)
	if got := v.TopLine(doc); got != 39 {
		t.Errorf("top line %d, want 39", got)
	}
	if p := v.ScrollPercent(doc); p != 39.0/77.0 {
		t.Errorf("ScrollPercent = %v, want %v", p, 39.0/77.0)
	}

	v.ScrollToPercent(doc, 2)
	if p := v.ScrollPercent(doc); p != 1 {
		t.Errorf("ScrollPercent = %v, want 1", p)
	}

	short := document.FromString("a\nb\n")
	if p := v.ScrollPercent(short); p != 0 {
		t.Errorf("short document ScrollPercent = %v, want 0", p)
	}
}

func TestClone(t *testing.T) {
	v := New(80, 24)
	c := v.Clone()
	c.TopByte = 42
	c.Margins.Top = 1
	if v.TopByte != 0 || v.Margins.Top != 5 {
		t.Error("clone shares state with the original")
	}
}

func TestCompose(t *testing.T) {
	area := core.NewRect(0, 0, 100, 10)
	tests := []struct {
		name                 string
		target               int
		left, content, right core.Rect
	}{
		{"centered", 80, core.NewRect(0, 0, 10, 10), core.NewRect(10, 0, 80, 10), core.NewRect(90, 0, 10, 10)},
		{"odd padding", 81, core.NewRect(0, 0, 9, 10), core.NewRect(9, 0, 81, 10), core.NewRect(90, 0, 10, 10)},
		{"unset", 0, core.Rect{}, area, core.Rect{}},
		{"wider than area", 200, core.Rect{}, area, core.Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(area, tt.target)
			if got.Left != tt.left || got.Content != tt.content || got.Right != tt.right {
				t.Errorf("Compose(%d) = %+v, want left %+v content %+v right %+v",
					tt.target, got, tt.left, tt.content, tt.right)
			}
		})
	}
}
