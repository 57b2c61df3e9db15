package backend

import (
	"testing"

	"github.com/dshills/strata/internal/renderer/core"
)

func TestNewScreenBuffer(t *testing.T) {
	sb := NewScreenBuffer(80, 24)

	w, h := sb.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
	if !sb.IsDirty() {
		t.Error("a new buffer needs a full redraw")
	}
}

func TestScreenBufferSetCell(t *testing.T) {
	sb := NewScreenBuffer(80, 24)

	cell := core.NewStyledCell('A', core.NewStyle(core.ColorBlue))
	sb.SetCell(10, 5, cell)
	if got := sb.Cell(10, 5); !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds
	sb.SetCell(-1, 0, cell)
	sb.SetCell(100, 0, cell)
	if !sb.Cell(-1, 0).Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestScreenBufferFill(t *testing.T) {
	sb := NewScreenBuffer(20, 10)
	cell := core.NewStyledCell('#', core.DefaultStyle())
	sb.Fill(core.NewRect(5, 2, 4, 3), cell)

	if !sb.Cell(5, 2).Equals(cell) || !sb.Cell(8, 4).Equals(cell) {
		t.Error("cells inside rect should be filled")
	}
	if sb.Cell(9, 2).Equals(cell) || sb.Cell(5, 5).Equals(cell) {
		t.Error("cells outside rect should not be filled")
	}

	sb.Clear()
	if !sb.Cell(5, 2).Equals(core.EmptyCell()) {
		t.Error("Clear should blank the buffer")
	}
}

func TestDrawLine(t *testing.T) {
	red := core.Style{Background: core.ColorRed}
	var line core.Line
	line.Push("ab", core.DefaultStyle())
	line.Push("c", red)

	sb := NewScreenBuffer(10, 1)
	sb.DrawLine(1, 0, 6, line)

	want := " abc    "
	for x, r := range want {
		if got := sb.Cell(x, 0).Rune; got != r {
			t.Errorf("cell %d = %q, want %q", x, got, r)
		}
	}
	// Padding continues the last background.
	if got := sb.Cell(5, 0).Style.Background; got != core.ColorRed {
		t.Errorf("padding background = %v, want red", got)
	}
	if got := sb.Cell(7, 0).Rune; got != ' ' {
		t.Errorf("cell past the clip width changed: %q", got)
	}
}

func TestDrawLineClipsWideCharacter(t *testing.T) {
	var line core.Line
	line.Push("a世", core.DefaultStyle())

	sb := NewScreenBuffer(4, 1)
	sb.DrawLine(0, 0, 2, line)

	if got := sb.Cell(0, 0).Rune; got != 'a' {
		t.Errorf("cell 0 = %q, want 'a'", got)
	}
	if got := sb.Cell(1, 0); got.Rune != ' ' || got.Width != 1 {
		t.Errorf("straddling wide character should become a blank, got %+v", got)
	}
}

func TestDrawLines(t *testing.T) {
	var first core.Line
	first.Push("one", core.DefaultStyle())

	sb := NewScreenBuffer(5, 3)
	sb.Fill(core.NewRect(0, 0, 5, 3), core.NewStyledCell('x', core.DefaultStyle()))
	sb.DrawLines(core.NewRect(0, 0, 4, 2), []core.Line{first})

	if got := sb.Cell(0, 0).Rune; got != 'o' {
		t.Errorf("row 0 = %q, want 'o'", got)
	}
	if got := sb.Cell(0, 1).Rune; got != ' ' {
		t.Errorf("missing line should be blank, got %q", got)
	}
	if got := sb.Cell(4, 0).Rune; got != 'x' {
		t.Errorf("outside the area should be untouched, got %q", got)
	}
	if got := sb.Cell(0, 2).Rune; got != 'x' {
		t.Errorf("below the area should be untouched, got %q", got)
	}
}

func TestScreenBufferDiff(t *testing.T) {
	sb := NewScreenBuffer(4, 2)
	if n := len(sb.ComputeDiff()); n != 8 {
		t.Errorf("full redraw diff = %d cells, want 8", n)
	}
	sb.Sync()
	if sb.IsDirty() {
		t.Error("buffer should be clean after Sync")
	}

	sb.SetCell(1, 1, core.NewStyledCell('z', core.DefaultStyle()))
	sb.SetCell(0, 0, core.EmptyCell())
	changes := sb.ComputeDiff()
	if len(changes) != 1 || changes[0].X != 1 || changes[0].Y != 1 {
		t.Errorf("diff = %+v, want only (1, 1)", changes)
	}

	sb.Sync()
	sb.MarkFullRedraw()
	if n := len(sb.ComputeDiff()); n != 8 {
		t.Errorf("forced redraw diff = %d cells, want 8", n)
	}
}

func TestScreenBufferResize(t *testing.T) {
	sb := NewScreenBuffer(4, 2)
	cell := core.NewStyledCell('k', core.DefaultStyle())
	sb.SetCell(1, 1, cell)
	sb.Sync()

	sb.Resize(8, 3)
	w, h := sb.Size()
	if w != 8 || h != 3 {
		t.Errorf("size after resize = (%d, %d)", w, h)
	}
	if !sb.Cell(1, 1).Equals(cell) {
		t.Error("resize should keep content")
	}
	if !sb.IsDirty() {
		t.Error("resize should force a redraw")
	}
}

func TestScreenFlush(t *testing.T) {
	nb := NewNullBackend(6, 2)
	if err := nb.Init(); err != nil {
		t.Fatal(err)
	}
	s := NewScreen(nb)

	var line core.Line
	line.Push("hi", core.DefaultStyle())
	s.Buffer().DrawLines(core.NewRect(0, 0, 6, 2), []core.Line{line})
	s.SetCursor(&core.ScreenPos{X: 2, Y: 0})

	if n := s.Flush(); n != 12 {
		t.Errorf("first flush sent %d cells, want 12", n)
	}
	if got := nb.Row(0); got != "hi    " {
		t.Errorf("row 0 = %q", got)
	}
	if x, y, visible := nb.CursorPosition(); !visible || x != 2 || y != 0 {
		t.Errorf("cursor = (%d, %d, %v)", x, y, visible)
	}

	s.Buffer().SetCell(0, 1, core.NewStyledCell('!', core.DefaultStyle()))
	s.SetCursor(nil)
	if n := s.Flush(); n != 1 {
		t.Errorf("second flush sent %d cells, want 1", n)
	}
	if _, _, visible := nb.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}
	if nb.Shows() != 2 {
		t.Errorf("Show called %d times, want 2", nb.Shows())
	}
}
