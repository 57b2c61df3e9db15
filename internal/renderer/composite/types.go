// Package composite renders several aligned documents side by side, the
// way a diff view shows an old and a new file. Each pane has its own
// horizontal scroll offset; rows scroll together.
package composite

import (
	"math"

	"github.com/dshills/strata/internal/document"
	"github.com/dshills/strata/internal/renderer/highlight"
)

// RowType classifies an aligned row.
type RowType uint8

const (
	Context RowType = iota
	Addition
	Deletion
	Modification
	HunkHeader
)

// String returns the row type name.
func (t RowType) String() string {
	switch t {
	case Context:
		return "context"
	case Addition:
		return "addition"
	case Deletion:
		return "deletion"
	case Modification:
		return "modification"
	case HunkHeader:
		return "hunk"
	default:
		return "unknown"
	}
}

// LineRef points at a 0-based source line of one pane, or at nothing.
type LineRef struct {
	Line  int
	Valid bool
}

// Ref returns a reference to line.
func Ref(line int) LineRef {
	return LineRef{Line: line, Valid: true}
}

// None is the absent line reference.
var None = LineRef{}

// Row is one aligned row across all panes.
type Row struct {
	Type  RowType
	Lines []LineRef

	// Header is the text of a hunk header row.
	Header string
}

// Line returns the reference of pane p.
func (r Row) Line(p int) LineRef {
	if p < 0 || p >= len(r.Lines) {
		return None
	}
	return r.Lines[p]
}

// Alignment is the ordered list of aligned rows.
type Alignment struct {
	Rows []Row
}

// Len returns the number of rows.
func (a *Alignment) Len() int {
	return len(a.Rows)
}

// Source is one document shown in a pane.
type Source struct {
	Label      string
	Doc        *document.Document
	Highlights highlight.Spans
}

// Layout controls pane geometry.
type Layout struct {
	// Ratios are the pane width fractions. Missing entries default to an
	// equal share.
	Ratios        []float64
	ShowSeparator bool
}

// Composite is a set of aligned sources.
type Composite struct {
	Sources   []Source
	Layout    Layout
	Alignment Alignment
}

// RowSelection is a selection in row and visual column coordinates.
// The end column is exclusive.
type RowSelection struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// normalized returns the selection with its start before its end.
func (s RowSelection) normalized() RowSelection {
	if s.StartRow > s.EndRow || (s.StartRow == s.EndRow && s.StartCol > s.EndCol) {
		return RowSelection{StartRow: s.EndRow, StartCol: s.EndCol, EndRow: s.StartRow, EndCol: s.StartCol}
	}
	return s
}

// Columns returns the selected column range of row. Rows strictly inside
// the selection are selected to the end of the line.
func (s RowSelection) Columns(row int) (start, end int, ok bool) {
	n := s.normalized()
	switch {
	case row < n.StartRow || row > n.EndRow:
		return 0, 0, false
	case row == n.StartRow && row == n.EndRow:
		return n.StartCol, n.EndCol, n.StartCol < n.EndCol
	case row == n.StartRow:
		return n.StartCol, math.MaxInt, true
	case row == n.EndRow:
		return 0, n.EndCol, true
	default:
		return 0, math.MaxInt, true
	}
}

// ViewState is the scroll, cursor and selection state of a composite view.
type ViewState struct {
	ScrollRow    int
	CursorRow    int
	CursorColumn int
	FocusedPane  int

	// PaneLeft holds the horizontal scroll offset of each pane.
	PaneLeft  []int
	Selection *RowSelection
}

func (v *ViewState) left(p int) int {
	if p < len(v.PaneLeft) {
		return max(v.PaneLeft[p], 0)
	}
	return 0
}

// selected returns the selected columns of row in pane p. Only the
// focused pane shows the selection.
func (v *ViewState) selected(p, row int) (start, end int, ok bool) {
	if v.Selection == nil || p != v.FocusedPane {
		return 0, 0, false
	}
	return v.Selection.Columns(row)
}
