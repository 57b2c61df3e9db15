package renderer

import (
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/layout"
	"github.com/dshills/strata/internal/renderer/linerender"
)

// TopByte returns the document byte at the start of the first visible
// line.
func (p *Pane) TopByte() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.vp.TopByte
}

// LeftColumn returns the horizontal scroll offset.
func (p *Pane) LeftColumn() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.vp.LeftColumn
}

// TopLine returns the 0-based source line at the top of the pane.
func (p *Pane) TopLine() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vp.TopLine(p.doc)
}

// ScrollPercent returns how far the pane is scrolled as a fraction in
// [0, 1].
func (p *Pane) ScrollPercent() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vp.ScrollPercent(p.doc)
}

// ScrollToPercent scrolls to a fraction of the scrollable range.
func (p *Pane) ScrollToPercent(percent float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vp.ScrollToPercent(p.doc, percent)
}

// ScrollBy scrolls by delta source lines.
func (p *Pane) ScrollBy(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vp.ScrollBy(p.doc, delta)
}

// ScrollHorizontalBy scrolls by delta columns. Wrapped panes ignore it.
func (p *Pane) ScrollHorizontalBy(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vp.ScrollHorizontalBy(delta)
}

// PageUp scrolls up one screen.
func (p *Pane) PageUp() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vp.PageUp(p.doc)
}

// PageDown scrolls down one screen.
func (p *Pane) PageDown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vp.PageDown(p.doc)
}

// HalfPageUp scrolls up half a screen.
func (p *Pane) HalfPageUp() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vp.HalfPageUp(p.doc)
}

// HalfPageDown scrolls down half a screen.
func (p *Pane) HalfPageDown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vp.HalfPageDown(p.doc)
}

// ScrollToTop shows the first line.
func (p *Pane) ScrollToTop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vp.ScrollToTop()
}

// ScrollToBottom shows the last screen of the document.
func (p *Pane) ScrollToBottom() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vp.ScrollToBottom(p.doc)
}

// CenterOnCursor puts the primary cursor line in the middle of the pane.
func (p *Pane) CenterOnCursor() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vp.CenterOn(p.doc, p.selection.Primary)
}

// EnsureCursorVisible scrolls minimally so that the primary cursor lies
// inside the scroll margins. Reports whether the pane scrolled.
func (p *Pane) EnsureCursorVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pos := p.selection.Primary
	start := p.doc.LineStartBefore(pos)
	col := core.VisualWidth(string(p.doc.Slice(start, pos)), 0, p.opts.TabSize)
	return p.vp.ScrollToReveal(p.doc, pos, col)
}

// ScreenToByte maps a screen cell of the last frame to a document byte.
// Cells on the gutter resolve to the start of the row.
func (p *Pane) ScreenToByte(x, y int) (int, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f := p.last
	if f == nil || !f.Content.Contains(core.ScreenPos{X: x, Y: y}) {
		return 0, false
	}
	col := max(x-f.Content.X-f.GutterWidth, 0)
	return linerender.ScreenToByte(f.Mappings, col, y-f.Content.Y)
}

// ByteToScreen returns the screen cell of byte pos in the last frame.
func (p *Pane) ByteToScreen(pos int) (core.ScreenPos, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f := p.last
	if f == nil {
		return core.ScreenPos{}, false
	}
	textX := f.Content.X + f.GutterWidth
	for row, m := range f.Mappings {
		for col, s := range m.Sources {
			if s == pos {
				return core.ScreenPos{X: textX + col, Y: f.Content.Y + row}, true
			}
		}
	}

	// Bytes without a drawn cell, such as newlines or text scrolled off to
	// the side, fall back to the layout position.
	if f.Anchor >= len(f.Display) {
		return core.ScreenPos{}, false
	}
	visible := f.Display[f.Anchor:]
	start, end, ok := sourceRange(visible)
	if !ok || pos < start || pos > end {
		return core.ScreenPos{}, false
	}
	lay := layout.BuildLayout(visible, start, end)
	line, col, ok := lay.SourceToView(pos)
	if !ok || line >= len(f.Mappings) {
		return core.ScreenPos{}, false
	}
	x := col - p.vp.LeftColumn
	if x < 0 || x >= f.Content.Width-f.GutterWidth {
		return core.ScreenPos{}, false
	}
	return core.ScreenPos{X: textX + x, Y: f.Content.Y + line}, true
}

// DocumentRows returns how many rows the whole document needs in a pane
// of the given width, counting the empty row after a trailing newline.
// It does not move the view.
func (p *Pane) DocumentRows(width int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if width <= 0 {
		return 0
	}
	_, _, _, textW := p.geometryLocked(core.NewRect(0, 0, width, 1))
	lines := p.buildDisplay(0, textW, p.lineCountLocked())
	rows := len(lines)
	if p.doc.EndsWithNewline() {
		rows++
	}
	return rows
}
