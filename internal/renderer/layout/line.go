// Package layout assembles view tokens into display lines: one entry per
// screen row, each character carrying its source byte, style and visual
// column so that screen positions and document bytes map both ways in
// constant time.
package layout

import (
	"strings"

	"github.com/dshills/strata/internal/renderer/core"
)

// NoSource marks a character that does not come from the document.
const NoSource = -1

// LineStart records what ended the previous display line.
type LineStart uint8

const (
	// Beginning is the first line of the view.
	Beginning LineStart = iota
	// AfterSourceNewline follows a newline that exists in the document.
	AfterSourceNewline
	// AfterInjectedNewline follows a newline that does not.
	AfterInjectedNewline
	// AfterBreak continues a wrapped line.
	AfterBreak
)

// String returns the start kind name.
func (s LineStart) String() string {
	switch s {
	case Beginning:
		return "beginning"
	case AfterSourceNewline:
		return "after-newline"
	case AfterInjectedNewline:
		return "after-injected"
	case AfterBreak:
		return "after-break"
	default:
		return "unknown"
	}
}

// IsContinuation reports whether the line continues a wrapped line.
func (s LineStart) IsContinuation() bool {
	return s == AfterBreak
}

// DisplayLine is one visual row. The per-character slices Text, Sources,
// Styles and Cols always have equal length; VisualToChar has one entry
// per visual column.
type DisplayLine struct {
	Text    []rune
	Sources []int
	Styles  []*core.Style
	Cols    []int

	// VisualToChar maps each visual column to the character drawn there.
	// Double-width characters own two columns, zero-width characters none.
	VisualToChar []int

	// TabStarts holds the character index of the first space of each
	// expanded tab.
	TabStarts map[int]bool

	Start           LineStart
	EndsWithNewline bool
}

// add appends one character and its mappings.
func (l *DisplayLine) add(r rune, src int, style *core.Style, width int) {
	idx := len(l.Text)
	l.Text = append(l.Text, r)
	l.Sources = append(l.Sources, src)
	l.Styles = append(l.Styles, style)
	l.Cols = append(l.Cols, len(l.VisualToChar))
	for i := 0; i < width; i++ {
		l.VisualToChar = append(l.VisualToChar, idx)
	}
}

func (l *DisplayLine) markTab(idx int) {
	if l.TabStarts == nil {
		l.TabStarts = make(map[int]bool)
	}
	l.TabStarts[idx] = true
}

// Len returns the number of characters.
func (l *DisplayLine) Len() int {
	return len(l.Text)
}

// Width returns the number of visual columns.
func (l *DisplayLine) Width() int {
	return len(l.VisualToChar)
}

// String returns the display text.
func (l *DisplayLine) String() string {
	return string(l.Text)
}

// SourceAt returns the document byte behind character i.
func (l *DisplayLine) SourceAt(i int) (int, bool) {
	if i < 0 || i >= len(l.Sources) || l.Sources[i] == NoSource {
		return 0, false
	}
	return l.Sources[i], true
}

// CharAtCol returns the character index drawn at visual column col.
// Columns past the end map to the last character.
func (l *DisplayLine) CharAtCol(col int) int {
	if col >= 0 && col < len(l.VisualToChar) {
		return l.VisualToChar[col]
	}
	return max(len(l.Text)-1, 0)
}

// SourceAtCol returns the document byte drawn at visual column col.
func (l *DisplayLine) SourceAtCol(col int) (int, bool) {
	return l.SourceAt(l.CharAtCol(col))
}

// ColAt returns the visual column where character i starts.
func (l *DisplayLine) ColAt(i int) int {
	if i < 0 || i >= len(l.Cols) {
		return 0
	}
	return l.Cols[i]
}

// IsTabStart reports whether character i is the first space of a tab.
func (l *DisplayLine) IsTabStart(i int) bool {
	return l.TabStarts[i]
}

// FirstSource returns the first document byte on the line.
func (l *DisplayLine) FirstSource() (int, bool) {
	for _, s := range l.Sources {
		if s != NoSource {
			return s, true
		}
	}
	return 0, false
}

// LastSource returns the last document byte on the line.
func (l *DisplayLine) LastSource() (int, bool) {
	for i := len(l.Sources) - 1; i >= 0; i-- {
		if l.Sources[i] != NoSource {
			return l.Sources[i], true
		}
	}
	return 0, false
}

// HasSource reports whether any character comes from the document.
func (l *DisplayLine) HasSource() bool {
	_, ok := l.FirstSource()
	return ok
}

// ContainsEscape reports whether the line text holds an escape character.
func (l *DisplayLine) ContainsEscape() bool {
	return strings.ContainsRune(string(l.Text), 0x1b)
}

// ShouldShowLineNumber reports whether the gutter numbers this line.
// Wrapped continuations and injected lines are not numbered; an empty
// line is numbered only when it starts the view or follows a document
// newline.
func ShouldShowLineNumber(l *DisplayLine) bool {
	if l.Start.IsContinuation() {
		return false
	}
	if len(l.Sources) == 0 {
		return l.Start == Beginning || l.Start == AfterSourceNewline
	}
	return l.Sources[0] != NoSource
}
