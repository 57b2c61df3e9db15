// Package viewport tracks the visible window of a pane. The window is
// anchored at a document byte rather than a line number so that it stays
// valid while the line index is still being built.
package viewport

// Document is the line index a viewport scrolls through.
type Document interface {
	Len() int
	Index(upTo int)
	IndexedTo() int
	IndexedLineCount() int
	LineNumber(offset int) (int, error)
	LineStart(line int) (int, error)
}

// Viewport is the visible window of one pane.
type Viewport struct {
	// TopByte is the document byte at the start of the first visible line.
	TopByte int

	// LeftColumn is the first visible visual column. It stays 0 while
	// LineWrap is on.
	LeftColumn int

	Width  int
	Height int

	LineWrap bool

	// Margins keep the cursor this far from the edges when revealing it.
	Margins MarginConfig
}

// New creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	return &Viewport{
		Width:   max(width, 1),
		Height:  max(height, 1),
		Margins: DefaultMargins(),
	}
}

// Resize updates the viewport size.
// Width and height are clamped to a minimum of 1.
func (v *Viewport) Resize(width, height int) {
	v.Width = max(width, 1)
	v.Height = max(height, 1)
}

// SetLineWrap toggles wrapping. Wrapped views never scroll horizontally.
func (v *Viewport) SetLineWrap(on bool) {
	v.LineWrap = on
	if on {
		v.LeftColumn = 0
	}
}

// lineCount indexes doc completely and returns its line count.
func lineCount(doc Document) int {
	doc.Index(doc.Len())
	return max(doc.IndexedLineCount(), 1)
}

// lineOf returns the line holding pos, indexing doc as far as needed.
func lineOf(doc Document, pos int) int {
	pos = min(max(pos, 0), doc.Len())
	if pos > doc.IndexedTo() {
		doc.Index(pos)
	}
	line, err := doc.LineNumber(pos)
	if err != nil {
		return 0
	}
	return line
}

// TopLine returns the 0-based line of TopByte.
func (v *Viewport) TopLine(doc Document) int {
	return lineOf(doc, v.TopByte)
}

// SetTopLine anchors the viewport at the start of line, clamped to the
// document.
func (v *Viewport) SetTopLine(doc Document, line int) {
	line = min(max(line, 0), lineCount(doc)-1)
	start, err := doc.LineStart(line)
	if err != nil {
		start = 0
	}
	v.TopByte = start
}

// ScrollBy moves the viewport by delta lines.
func (v *Viewport) ScrollBy(doc Document, delta int) {
	v.SetTopLine(doc, v.TopLine(doc)+delta)
}

// ScrollHorizontalBy moves the viewport by delta columns.
func (v *Viewport) ScrollHorizontalBy(delta int) {
	if v.LineWrap {
		return
	}
	v.LeftColumn = max(v.LeftColumn+delta, 0)
}

// PageUp scrolls up one screen.
func (v *Viewport) PageUp(doc Document) {
	v.ScrollBy(doc, -v.Height)
}

// PageDown scrolls down one screen.
func (v *Viewport) PageDown(doc Document) {
	v.ScrollBy(doc, v.Height)
}

// HalfPageUp scrolls up half a screen.
func (v *Viewport) HalfPageUp(doc Document) {
	v.ScrollBy(doc, -max(v.Height/2, 1))
}

// HalfPageDown scrolls down half a screen.
func (v *Viewport) HalfPageDown(doc Document) {
	v.ScrollBy(doc, max(v.Height/2, 1))
}

// ScrollToTop shows the first line.
func (v *Viewport) ScrollToTop() {
	v.TopByte = 0
}

// ScrollToBottom shows the last screen of the document.
func (v *Viewport) ScrollToBottom(doc Document) {
	v.SetTopLine(doc, lineCount(doc)-v.Height)
}

// CenterOn puts the line holding pos in the middle of the viewport.
func (v *Viewport) CenterOn(doc Document, pos int) {
	v.SetTopLine(doc, lineOf(doc, pos)-v.Height/2)
}

// ScrollToReveal scrolls minimally so that byte pos at visual column col
// sits inside the margins. Reports whether the viewport moved.
func (v *Viewport) ScrollToReveal(doc Document, pos, col int) bool {
	m := v.EffectiveMargins()
	line := lineOf(doc, pos)
	top := v.TopLine(doc)
	oldTop, oldLeft := v.TopByte, v.LeftColumn

	switch {
	case line < top+m.Top:
		v.SetTopLine(doc, line-m.Top)
	case line > top+v.Height-1-m.Bottom:
		v.SetTopLine(doc, line-v.Height+m.Bottom+1)
	}

	if !v.LineWrap {
		screenCol := col - v.LeftColumn
		switch {
		case screenCol < m.Left:
			v.LeftColumn = max(col-m.Left, 0)
		case screenCol >= v.Width-m.Right:
			v.LeftColumn = col - v.Width + m.Right + 1
		}
	}
	return v.TopByte != oldTop || v.LeftColumn != oldLeft
}

// IsColumnVisible reports whether visual column col is on screen.
func (v *Viewport) IsColumnVisible(col int) bool {
	if v.LineWrap {
		return true
	}
	return col >= v.LeftColumn && col < v.LeftColumn+v.Width
}

// Clone returns a copy of the viewport.
func (v *Viewport) Clone() *Viewport {
	c := *v
	return &c
}
