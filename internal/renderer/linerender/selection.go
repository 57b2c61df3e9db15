package linerender

import (
	"github.com/dshills/strata/internal/renderer/gutter"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/overlay"
)

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Contains reports whether pos lies in the range.
func (r Range) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// BlockRect is a rectangular selection in source lines and byte columns,
// inclusive on both ends.
type BlockRect struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Contains reports whether the byte column col of source line line lies
// in the block.
func (b BlockRect) Contains(line, col int) bool {
	return line >= b.StartLine && line <= b.EndLine && col >= b.StartCol && col <= b.EndCol
}

// Selection is the cursor and selection state of one pane.
type Selection struct {
	Ranges  []Range
	Blocks  []BlockRect
	Cursors []int
	Primary int
}

// NewSelection returns a selection with a single cursor at pos.
func NewSelection(pos int) Selection {
	return Selection{Cursors: []int{pos}, Primary: pos}
}

func (s *Selection) inRange(pos int) bool {
	for _, r := range s.Ranges {
		if r.Contains(pos) {
			return true
		}
	}
	return false
}

func (s *Selection) inBlock(line, col int) bool {
	for _, b := range s.Blocks {
		if b.Contains(line, col) {
			return true
		}
	}
	return false
}

func (s *Selection) cursorSet() map[int]bool {
	set := make(map[int]bool, len(s.Cursors)+1)
	for _, c := range s.Cursors {
		set[c] = true
	}
	set[s.Primary] = true
	return set
}

// Decorations are the per-frame decoration snapshots of the visible range.
type Decorations struct {
	Highlights highlight.Spans
	Semantic   highlight.Spans

	// Overlays are the overlays overlapping the viewport in query order.
	Overlays []overlay.Overlay

	// Inline holds BeforeChar and AfterChar virtual text by anchor.
	Inline overlay.Inline

	// Diagnostics holds the 0-based source lines that carry a diagnostic.
	Diagnostics map[int]bool
	Indicators  *gutter.Indicators
}
