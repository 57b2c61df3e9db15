package renderer

import (
	"strings"
	"sync"

	"github.com/dshills/strata/internal/document"
	"github.com/dshills/strata/internal/renderer/composite"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/scrollbar"
)

// DiffOptions configures a diff pane.
type DiffOptions struct {
	TabSize   int
	Headers   bool // Insert a hunk header row before every change
	Scrollbar bool
	Ratios    []float64
}

// DefaultDiffOptions returns the options strata diff starts with.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{TabSize: core.DefaultTabSize, Headers: true, Scrollbar: true}
}

// DiffFrame is one rendered diff pane.
type DiffFrame struct {
	Lines          []core.Line
	Cursor         *core.ScreenPos
	ScrollbarStart int
	ScrollbarEnd   int
}

// DiffPane shows two documents side by side with their lines aligned.
type DiffPane struct {
	mu    sync.Mutex
	opts  DiffOptions
	comp  *composite.Composite
	view  composite.ViewState
	theme *highlight.Theme

	// height is the number of aligned rows the last frame showed.
	height int
}

// DiffSide is one document of a diff.
type DiffSide struct {
	Label string
	Doc   *document.Document

	// Highlighter colors the side; nil leaves it plain.
	Highlighter highlight.Provider
}

// NewDiffPane aligns the lines of two documents.
func NewDiffPane(before, after DiffSide, opts DiffOptions) *DiffPane {
	if opts.TabSize <= 0 {
		opts.TabSize = core.DefaultTabSize
	}
	sides := []DiffSide{before, after}
	sources := make([]composite.Source, len(sides))
	for i, s := range sides {
		if s.Doc == nil {
			s.Doc = document.New(nil)
		}
		sources[i] = composite.Source{Label: s.Label, Doc: s.Doc}
		if s.Highlighter != nil {
			sources[i].Highlights = s.Highlighter.Highlight(s.Doc.Bytes(), 0, s.Doc.Len())
		}
	}
	align := composite.Align(string(sources[0].Doc.Bytes()), string(sources[1].Doc.Bytes()), opts.Headers)
	return &DiffPane{
		opts: opts,
		comp: &composite.Composite{
			Sources:   sources,
			Layout:    composite.Layout{Ratios: opts.Ratios, ShowSeparator: true},
			Alignment: align,
		},
		view:  composite.ViewState{PaneLeft: make([]int, len(sources))},
		theme: highlight.DefaultTheme(),
	}
}

// SetTheme changes the theme.
func (d *DiffPane) SetTheme(theme *highlight.Theme) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	d.theme = theme
}

// Rows returns the number of aligned rows.
func (d *DiffPane) Rows() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.comp.Alignment.Len()
}

// Changes counts the rows that are not context or headers.
func (d *DiffPane) Changes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, r := range d.comp.Alignment.Rows {
		if r.Type != composite.Context && r.Type != composite.HunkHeader {
			n++
		}
	}
	return n
}

// View returns the scroll and cursor state.
func (d *DiffPane) View() composite.ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Render draws the diff into area. With the scrollbar on, the rightmost
// column holds the track beside the aligned rows.
func (d *DiffPane) Render(area core.Rect) *DiffFrame {
	d.mu.Lock()
	defer d.mu.Unlock()

	f := &DiffFrame{}
	if area.IsEmpty() {
		return f
	}
	barW := 0
	if d.opts.Scrollbar && area.Width > 1 {
		barW = 1
	}
	d.height = max(area.Height-1, 0)

	out := composite.Render(composite.Input{
		Composite: d.comp,
		View:      d.view,
		Area:      core.NewRect(area.X, area.Y, area.Width-barW, area.Height),
		Theme:     d.theme,
		TabSize:   d.opts.TabSize,
	})
	f.Lines = out.Lines
	if out.Cursor != nil {
		c := core.ScreenPos{X: area.X + out.Cursor.X, Y: area.Y + out.Cursor.Y}
		f.Cursor = &c
	}
	if barW == 0 || len(f.Lines) == 0 {
		return f
	}

	f.ScrollbarStart, f.ScrollbarEnd = scrollbar.ForRows(d.comp.Alignment.Len(), d.view.ScrollRow, d.height, d.height)
	track := scrollbar.RenderTrack(d.height, f.ScrollbarStart, f.ScrollbarEnd, scrollbar.ThemeColors(d.theme))
	f.Lines[0].Push(" ", core.Style{Background: d.theme.UI.TabInactiveBg})
	for y := 1; y < len(f.Lines); y++ {
		if y-1 < len(track) {
			appendLine(&f.Lines[y], track[y-1])
		} else {
			f.Lines[y].Push(strings.Repeat(" ", barW), core.Style{Background: d.theme.UI.EditorBg})
		}
	}
	return f
}

// maxScroll must be called with the lock held.
func (d *DiffPane) maxScroll() int {
	return max(d.comp.Alignment.Len()-max(d.height, 1), 0)
}

// ScrollBy scrolls the rows of both panes by delta.
func (d *DiffPane) ScrollBy(delta int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view.ScrollRow = min(max(d.view.ScrollRow+delta, 0), d.maxScroll())
}

// ScrollHorizontalBy scrolls the focused pane by delta columns.
func (d *DiffPane) ScrollHorizontalBy(delta int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.view.FocusedPane
	d.view.PaneLeft[p] = max(d.view.PaneLeft[p]+delta, 0)
}

// MoveCursor moves the cursor by rows and columns, scrolling to keep it
// visible.
func (d *DiffPane) MoveCursor(rows, cols int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	last := max(d.comp.Alignment.Len()-1, 0)
	d.view.CursorRow = min(max(d.view.CursorRow+rows, 0), last)
	d.view.CursorColumn = max(d.view.CursorColumn+cols, 0)

	h := max(d.height, 1)
	switch {
	case d.view.CursorRow < d.view.ScrollRow:
		d.view.ScrollRow = d.view.CursorRow
	case d.view.CursorRow >= d.view.ScrollRow+h:
		d.view.ScrollRow = d.view.CursorRow - h + 1
	}
}

// NextHunk moves the cursor to the start of the next change below it.
// Reports whether there was one.
func (d *DiffPane) NextHunk() bool {
	d.mu.Lock()
	rows := d.comp.Alignment.Rows
	from := d.view.CursorRow
	d.mu.Unlock()

	inChange := from < len(rows) && rows[from].Type != composite.Context
	for i := from + 1; i < len(rows); i++ {
		changed := rows[i].Type != composite.Context
		if changed && !inChange {
			d.MoveCursor(i-from, 0)
			return true
		}
		inChange = changed
	}
	return false
}

// SwitchFocus moves focus to the other pane.
func (d *DiffPane) SwitchFocus() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view.FocusedPane = (d.view.FocusedPane + 1) % len(d.comp.Sources)
}
