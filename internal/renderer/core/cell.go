package core

import "strings"

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the base character to display.
	Rune rune

	// Combining holds zero-width runes drawn on top of Rune.
	Combining []rune

	// Width is the display width of this cell (0 for the trailing half of a
	// double-width character).
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// IsContinuation reports whether this is the trailing half of a wide cell.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	if c.Rune != other.Rune || c.Width != other.Width || c.Style != other.Style {
		return false
	}
	if len(c.Combining) != len(other.Combining) {
		return false
	}
	for i := range c.Combining {
		if c.Combining[i] != other.Combining[i] {
			return false
		}
	}
	return true
}

// Span is a run of text drawn with one style.
type Span struct {
	Text  string
	Style Style
}

// Width returns the display width of the span's text.
func (s Span) Width() int {
	return StringWidth(s.Text)
}

// Line is one rendered screen row as a sequence of styled spans.
type Line struct {
	Spans []Span
}

// NewLine builds a line from spans.
func NewLine(spans ...Span) Line {
	return Line{Spans: spans}
}

// Push appends a span, merging it into the previous span when the styles
// are equal.
func (l *Line) Push(text string, style Style) {
	if text == "" {
		return
	}
	if n := len(l.Spans); n > 0 && l.Spans[n-1].Style == style {
		l.Spans[n-1].Text += text
		return
	}
	l.Spans = append(l.Spans, Span{Text: text, Style: style})
}

// Text returns the concatenated text of all spans.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Width returns the total display width of the line.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Spans {
		w += s.Width()
	}
	return w
}

// Cells expands the line into terminal cells. Wide characters are followed
// by a continuation cell and zero-width runes attach to the preceding cell.
func (l Line) Cells() []Cell {
	cells := make([]Cell, 0, l.Width())
	for _, s := range l.Spans {
		for _, r := range s.Text {
			w := RuneWidth(r)
			if w == 0 {
				if n := len(cells); n > 0 {
					cells[n-1].Combining = append(cells[n-1].Combining, r)
				}
				continue
			}
			cells = append(cells, Cell{Rune: r, Width: w, Style: s.Style})
			if w == 2 {
				cells = append(cells, Cell{Style: s.Style})
			}
		}
	}
	return cells
}
