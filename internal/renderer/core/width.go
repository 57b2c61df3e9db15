package core

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabSize is the tab stop interval used when none is configured.
const DefaultTabSize = 8

var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// RuneWidth returns the display width of a rune: 0 for control and
// combining characters, 2 for wide East Asian characters, 1 otherwise.
func RuneWidth(r rune) int {
	if r < 0x20 || (r >= 0x7F && r < 0xA0) {
		return 0
	}
	return widthCond.RuneWidth(r)
}

// StringWidth returns the sum of RuneWidth over s.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// TabWidth returns how many columns a tab occupies when it starts at col.
func TabWidth(col, tabSize int) int {
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	return tabSize - col%tabSize
}

// VisualWidth returns the columns s occupies when drawn starting at
// startCol. Tabs expand to the next stop; escape sequences take no space.
func VisualWidth(s string, startCol, tabSize int) int {
	if strings.IndexByte(s, 0x1b) >= 0 {
		s = ansi.Strip(s)
	}
	col := startCol
	for _, r := range s {
		if r == '\t' {
			col += TabWidth(col, tabSize)
			continue
		}
		col += RuneWidth(r)
	}
	return col - startCol
}

// Graphemes splits s into extended grapheme clusters.
func Graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// GraphemeWidth returns the display width of one grapheme cluster at col.
func GraphemeWidth(g string, col, tabSize int) int {
	if g == "\t" {
		return TabWidth(col, tabSize)
	}
	return StringWidth(g)
}

// Truncate cuts s to at most width columns without splitting a character.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := 0
	for i, r := range s {
		rw := RuneWidth(r)
		if w+rw > width {
			return s[:i]
		}
		w += rw
	}
	return s
}

// PadRight pads s with spaces to width columns, truncating if it is wider.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if w := StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
