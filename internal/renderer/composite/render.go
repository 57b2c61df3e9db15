package composite

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshills/strata/internal/document"
	"github.com/dshills/strata/internal/logging"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/layout"
	"github.com/dshills/strata/internal/renderer/token"
)

// GutterWidth is the width of a pane's line-number column.
const GutterWidth = 4

// Separator is drawn between panes.
const Separator = "│"

// Input is everything one composite frame needs.
type Input struct {
	Composite *Composite
	View      ViewState
	Area      core.Rect
	Theme     *highlight.Theme
	TabSize   int
}

// Output is the rendered frame.
type Output struct {
	// Lines holds one line per area row, the header first.
	Lines []core.Line

	// Cursor is the area-relative cursor cell, if one was drawn.
	Cursor *core.ScreenPos

	// PaneWidths are the widths the panes were laid out with.
	PaneWidths []int
}

// PaneWidths splits width among n panes by ratio after reserving sep
// columns between neighbours. The last pane absorbs rounding.
func PaneWidths(width, n, sep int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	avail := max(width-(n-1)*sep, 0)
	widths := make([]int, n)
	used := 0
	for i := 0; i < n-1; i++ {
		ratio := 1 / float64(n)
		if i < len(ratios) && ratios[i] > 0 {
			ratio = ratios[i]
		}
		widths[i] = min(int(math.Round(float64(avail)*ratio)), avail-used)
		used += widths[i]
	}
	widths[n-1] = avail - used
	return widths
}

// paneView holds the display lines of one pane keyed by source line.
type paneView struct {
	src   *Source
	lines map[int]*layout.DisplayLine
}

// buildPaneView lays out the source lines pane p references in the
// visible rows.
func buildPaneView(src *Source, rows []Row, p, tabSize int) paneView {
	pv := paneView{src: src, lines: make(map[int]*layout.DisplayLine)}
	if src.Doc == nil {
		return pv
	}
	first, last := -1, -1
	for _, r := range rows {
		ref := r.Line(p)
		if !ref.Valid {
			continue
		}
		if first < 0 || ref.Line < first {
			first = ref.Line
		}
		last = max(last, ref.Line)
	}
	if first < 0 {
		return pv
	}

	indexLines(src.Doc, last+1)
	top, err := src.Doc.LineStart(first)
	if err != nil {
		return pv
	}
	tokens := token.Build(src.Doc, top, last-first+1, token.Options{})
	display := layout.Collect(tokens, layout.Options{TabSize: tabSize})

	line := first - 1
	for i := range display {
		if !layout.ShouldShowLineNumber(&display[i]) {
			continue
		}
		line++
		if line > last {
			break
		}
		pv.lines[line] = &display[i]
	}
	return pv
}

// indexLines extends the document's line index until it knows line n or
// the whole document.
func indexLines(doc *document.Document, n int) {
	const chunk = 64 * 1024
	for doc.IndexedLineCount() <= n && doc.IndexedTo() < doc.Len() {
		doc.Index(doc.IndexedTo() + chunk)
	}
}

// frame carries the per-render state.
type frame struct {
	in     *Input
	ui     highlight.UI
	widths []int
	sep    int
	views  []paneView
	cursor *core.ScreenPos
	log    *logging.Logger
}

// Render draws the header row and the aligned rows of a composite.
func Render(in Input) Output {
	c := in.Composite
	if c == nil || len(c.Sources) == 0 || in.Area.Width <= 0 || in.Area.Height <= 0 {
		return Output{}
	}
	theme := in.Theme
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	f := &frame{
		in:  &in,
		ui:  theme.UI,
		log: logging.Get().WithComponent("composite"),
	}
	if c.Layout.ShowSeparator {
		f.sep = 1
	}
	n := len(c.Sources)
	f.widths = PaneWidths(in.Area.Width, n, f.sep, c.Layout.Ratios)

	contentHeight := in.Area.Height - 1
	rows := c.Alignment.Rows
	scroll := max(in.View.ScrollRow, 0)
	var visible []Row
	if scroll < len(rows) {
		visible = rows[scroll:min(scroll+contentHeight, len(rows))]
	}
	f.views = make([]paneView, n)
	for p := range c.Sources {
		f.views[p] = buildPaneView(&c.Sources[p], visible, p, in.TabSize)
	}

	out := Output{Lines: make([]core.Line, 0, in.Area.Height), PaneWidths: f.widths}
	out.Lines = append(out.Lines, f.header())
	for y := 0; y < contentHeight; y++ {
		idx := scroll + y
		if idx >= len(rows) {
			out.Lines = append(out.Lines, f.tildeRow())
			continue
		}
		out.Lines = append(out.Lines, f.row(rows[idx], idx, y+1))
	}
	out.Cursor = f.cursor
	return out
}

func (f *frame) separator(line *core.Line) {
	if f.sep == 0 {
		return
	}
	line.Push(Separator, core.Style{Foreground: f.ui.SplitSeparatorFg, Background: f.ui.EditorBg})
}

func (f *frame) header() core.Line {
	var line core.Line
	for p, src := range f.in.Composite.Sources {
		if p > 0 {
			f.separator(&line)
		}
		st := core.Style{Foreground: f.ui.TabInactiveFg, Background: f.ui.TabInactiveBg}
		if p == f.in.View.FocusedPane {
			st = core.Style{Foreground: f.ui.TabActiveFg, Background: f.ui.TabActiveBg}
		}
		label := core.Truncate(" "+src.Label+" ", f.widths[p])
		line.Push(core.PadRight(label, f.widths[p]), st)
	}
	return line
}

func (f *frame) tildeRow() core.Line {
	var line core.Line
	st := core.Style{Foreground: f.ui.LineNumberFg, Background: f.ui.EditorBg}
	for p, w := range f.widths {
		if p > 0 {
			f.separator(&line)
		}
		if w > 0 {
			line.Push(core.PadRight("~", w), st)
		}
	}
	return line
}

// rowBackground returns the background of a row in pane p.
func (f *frame) rowBackground(r Row, idx, p int) core.Color {
	if p == f.in.View.FocusedPane && idx == f.in.View.CursorRow {
		return f.ui.CurrentLineBg
	}
	switch r.Type {
	case Addition:
		return f.ui.DiffAddBg
	case Deletion:
		return f.ui.DiffRemoveBg
	case Modification:
		return f.ui.DiffModifyBg
	case HunkHeader:
		return f.ui.CurrentLineBg
	default:
		return f.ui.EditorBg
	}
}

// inlineChanges returns the changed spans of a Modification row in the
// first two panes.
func (f *frame) inlineChanges(r Row) ([]span, bool) {
	if r.Type != Modification || len(f.views) < 2 {
		return nil, false
	}
	a, b := r.Line(0), r.Line(1)
	if !a.Valid || !b.Valid || f.views[0].src.Doc == nil || f.views[1].src.Doc == nil {
		return nil, false
	}
	oldText, err1 := f.views[0].src.Doc.Line(a.Line)
	newText, err2 := f.views[1].src.Doc.Line(b.Line)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	os, oe, ns, ne, changed := InlineDiff(string(oldText), string(newText))
	if !changed {
		return nil, false
	}
	return []span{{os, oe}, {ns, ne}}, true
}

func (f *frame) row(r Row, idx, y int) core.Line {
	var line core.Line
	inline, hasInline := f.inlineChanges(r)
	x := 0
	for p := range f.views {
		if p > 0 {
			f.separator(&line)
			x += f.sep
		}
		bg := f.rowBackground(r, idx, p)
		pl := paneLine{f: f, p: p, idx: idx, x: x, y: y, width: f.widths[p], bg: bg}
		if hasInline && p < len(inline) {
			pl.inline = &inline[p]
			pl.highlight = f.ui.DiffAddHighlight
			if p == 0 {
				pl.highlight = f.ui.DiffRemHighlight
			}
		}
		if ref := r.Line(p); ref.Valid {
			pl.content(&line, ref.Line)
		} else {
			pl.empty(&line, r)
		}
		x += f.widths[p]
	}
	return line
}

// paneLine renders one pane's part of a row.
type paneLine struct {
	f         *frame
	p         int
	idx       int
	x, y      int
	width     int
	bg        core.Color
	highlight core.Color
	inline    *span
}

func (pl *paneLine) focusedCursorRow() bool {
	v := &pl.f.in.View
	return pl.p == v.FocusedPane && pl.idx == v.CursorRow
}

func (pl *paneLine) cursorStyle() core.Style {
	return core.Style{Foreground: pl.f.ui.EditorBg, Background: pl.f.ui.EditorFg}
}

func (pl *paneLine) markCursor(x int) {
	pl.f.cursor = &core.ScreenPos{X: x, Y: pl.y}
}

func (pl *paneLine) content(line *core.Line, lineNum int) {
	ui := pl.f.ui
	gutter := core.Truncate(fmt.Sprintf("%3d ", lineNum+1), pl.width)
	line.Push(gutter, core.Style{Foreground: ui.LineNumberFg, Background: pl.bg})
	maxWidth := max(pl.width-GutterWidth, 0)
	if maxWidth == 0 {
		line.Push(strings.Repeat(" ", pl.width-core.StringWidth(gutter)), core.Style{Background: pl.bg})
		return
	}

	view := pl.f.views[pl.p]
	dl, ok := view.lines[lineNum]
	if !ok {
		pl.f.log.WithFields(map[string]any{"pane": pl.p, "line": lineNum}).
			Warn("no display line for pane %d line %d", pl.p, lineNum)
		line.Push(strings.Repeat(" ", maxWidth), core.Style{Foreground: ui.EditorFg, Background: ui.EditorBg})
		return
	}

	lineStart, _ := view.src.Doc.LineStart(lineNum)
	left := pl.f.in.View.left(pl.p)
	selStart, selEnd, hasSel := pl.f.in.View.selected(pl.p, pl.idx)
	cursorRow := pl.focusedCursorRow()
	cursorCol := pl.f.in.View.CursorColumn
	contentX := pl.x + GutterWidth

	written := 0
	drawn := false
	for i, ch := range dl.Text {
		if ch == '\n' {
			continue
		}
		col := dl.ColAt(i)
		if col < left {
			continue
		}
		w := core.RuneWidth(ch)
		if written+w > maxWidth {
			break
		}

		src, sourced := dl.SourceAt(i)
		st := core.Style{Foreground: ui.EditorFg, Background: pl.bg}
		if sourced {
			if c, ok := view.src.Highlights.ColorAt(src); ok {
				st.Foreground = c
			}
		}
		switch {
		case hasSel && col >= selStart && col < selEnd:
			st.Background = ui.SelectionBg
		case pl.inline != nil && sourced && pl.inline.contains(src-lineStart):
			st.Background = pl.highlight
		}
		if cursorRow && col == cursorCol {
			st = pl.cursorStyle()
			pl.markCursor(contentX + written)
			drawn = true
		}
		line.Push(string(ch), st)
		written += w
	}

	pad := maxWidth - written
	if pad <= 0 {
		return
	}
	fill := core.Style{Background: pl.bg}
	at := cursorCol - left - written
	if cursorRow && !drawn && at >= 0 && at < pad {
		line.Push(strings.Repeat(" ", at), fill)
		line.Push(" ", pl.cursorStyle())
		pl.markCursor(contentX + written + at)
		line.Push(strings.Repeat(" ", pad-at-1), fill)
		return
	}
	line.Push(strings.Repeat(" ", pad), fill)
}

// empty renders a pane that has no line in this row.
func (pl *paneLine) empty(line *core.Line, r Row) {
	if pl.width <= 0 {
		return
	}
	ui := pl.f.ui
	bg := pl.bg
	if start, end, ok := pl.f.in.View.selected(pl.p, pl.idx); ok && start == 0 && end == math.MaxInt {
		bg = ui.SelectionBg
	}
	fill := core.Style{Background: bg}

	if pl.focusedCursorRow() && pl.f.in.View.CursorColumn == 0 && pl.width > GutterWidth {
		line.Push(strings.Repeat(" ", GutterWidth), fill)
		line.Push(" ", pl.cursorStyle())
		pl.markCursor(pl.x + GutterWidth)
		line.Push(strings.Repeat(" ", pl.width-GutterWidth-1), fill)
		return
	}
	if r.Type == HunkHeader && pl.p == 0 && r.Header != "" {
		text := core.Truncate(r.Header, pl.width)
		line.Push(core.PadRight(text, pl.width), core.Style{Foreground: ui.LineNumberFg, Background: bg})
		return
	}
	line.Push(strings.Repeat(" ", pl.width), fill)
}
