package core

import "testing"

func TestLinePushMergesEqualStyles(t *testing.T) {
	var l Line
	s := NewStyle(ColorRed)
	l.Push("ab", s)
	l.Push("cd", s)
	l.Push("", NewStyle(ColorBlue))
	l.Push("e", NewStyle(ColorBlue))

	if len(l.Spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(l.Spans))
	}
	if l.Spans[0].Text != "abcd" {
		t.Errorf("first span = %q, want %q", l.Spans[0].Text, "abcd")
	}
	if l.Text() != "abcde" {
		t.Errorf("Text() = %q", l.Text())
	}
}

func TestLineWidthAndCells(t *testing.T) {
	l := NewLine(Span{Text: "a世"}, Span{Text: "e\u0301"})
	if got := l.Width(); got != 4 {
		t.Errorf("Width() = %d, want 4", got)
	}

	cells := l.Cells()
	if len(cells) != 4 {
		t.Fatalf("Cells() len = %d, want 4", len(cells))
	}
	if !cells[2].IsContinuation() {
		t.Error("cell after wide rune should be a continuation")
	}
	if cells[3].Rune != 'e' || len(cells[3].Combining) != 1 {
		t.Errorf("combining mark should attach to 'e', got %+v", cells[3])
	}
}

func TestCellEquals(t *testing.T) {
	a := NewStyledCell('x', NewStyle(ColorRed))
	b := NewStyledCell('x', NewStyle(ColorRed))
	if !a.Equals(b) {
		t.Error("identical cells should be equal")
	}
	b.Combining = []rune{0x301}
	if a.Equals(b) {
		t.Error("cells with different combining runes should differ")
	}
	if EmptyCell().Rune != ' ' {
		t.Error("EmptyCell should be a space")
	}
}
