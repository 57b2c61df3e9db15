package main

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/dshills/strata/internal/document"
	"github.com/dshills/strata/internal/renderer"
	"github.com/dshills/strata/internal/renderer/backend"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/gutter"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/statusline"
)

// docSurface shows one document with a movable cursor.
type docSurface struct {
	pane *renderer.Pane
	name string

	// goal is the display column vertical moves aim for; -1 when unset.
	goal int
}

func newDocSurface(pane *renderer.Pane, name string) *docSurface {
	doc := pane.Document()
	doc.Index(doc.Len())
	return &docSurface{pane: pane, name: name, goal: -1}
}

func (s *docSurface) handleKey(ev backend.Event) {
	p := s.pane
	switch ev.Key {
	case backend.KeyUp:
		s.moveLines(-1)
	case backend.KeyDown:
		s.moveLines(1)
	case backend.KeyLeft:
		s.moveColumns(-1)
	case backend.KeyRight:
		s.moveColumns(1)
	case backend.KeyPageUp:
		p.PageUp()
		s.cursorToTop()
	case backend.KeyPageDown:
		p.PageDown()
		s.cursorToTop()
	case backend.KeyHome:
		s.jump(0)
	case backend.KeyEnd:
		s.jump(p.Document().Len())
	case backend.KeyRune:
		s.handleRune(ev.Rune)
	}
}

func (s *docSurface) handleRune(r rune) {
	p := s.pane
	switch r {
	case 'k':
		s.moveLines(-1)
	case 'j':
		s.moveLines(1)
	case 'h':
		s.moveColumns(-1)
	case 'l':
		s.moveColumns(1)
	case 'u':
		p.HalfPageUp()
		s.cursorToTop()
	case 'd':
		p.HalfPageDown()
		s.cursorToTop()
	case 'g':
		s.jump(0)
	case 'G':
		s.jump(p.Document().Len())
	case 'z':
		p.CenterOnCursor()
	case 'w':
		opts := p.Options()
		opts.LineWrap = !opts.LineWrap
		p.SetOptions(opts)
		p.EnsureCursorVisible()
	case 'n':
		opts := p.Options()
		opts.ShowLineNumbers = !opts.ShowLineNumbers
		p.SetOptions(opts)
	case 'r':
		opts := p.Options()
		if opts.LineNumberMode == gutter.LineNumberRelative {
			opts.LineNumberMode = gutter.LineNumberAbsolute
		} else {
			opts.LineNumberMode = gutter.LineNumberRelative
		}
		p.SetOptions(opts)
	case 'c':
		opts := p.Options()
		opts.RevealCodes = !opts.RevealCodes
		p.SetOptions(opts)
	}
}

func (s *docSurface) handleMouse(ev backend.Event) {
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		s.pane.ScrollBy(-wheelLines)
	case backend.MouseWheelDown:
		s.pane.ScrollBy(wheelLines)
	case backend.MouseLeft:
		if pos, ok := s.pane.ScreenToByte(ev.MouseX, ev.MouseY); ok {
			s.pane.SetCursor(pos)
			s.goal = -1
		}
	}
}

func (s *docSurface) draw(screen *backend.Screen, area core.Rect) {
	s.pane.Draw(screen, area)
}

func (s *docSurface) setTheme(theme *highlight.Theme) {
	s.pane.SetTheme(theme)
}

func (s *docSurface) updateStatus(st *statusline.StatusLine) {
	doc := s.pane.Document()
	line, col := s.position()
	total := doc.IndexedLineCount()
	if doc.EndsWithNewline() {
		total--
	}
	st.SetFilename(s.name)
	st.SetPosition(line+1, col+1)
	st.SetTotalLines(max(total, 1))
	st.SetScrollPercent(int(math.Round(s.pane.ScrollPercent() * 100)))
}

// position returns the cursor line and display column, 0-based.
func (s *docSurface) position() (line, col int) {
	doc := s.pane.Document()
	pos := s.pane.Selection().Primary
	doc.Index(pos)
	line, err := doc.LineNumber(pos)
	if err != nil {
		return 0, 0
	}
	start := doc.LineStartBefore(pos)
	return line, core.VisualWidth(string(doc.Slice(start, pos)), 0, s.pane.Options().TabSize)
}

// moveLines moves the cursor delta lines, keeping the goal column.
func (s *docSurface) moveLines(delta int) {
	doc := s.pane.Document()
	line, col := s.position()
	if s.goal < 0 {
		s.goal = col
	}
	target := min(max(line+delta, 0), max(doc.IndexedLineCount()-1, 0))
	start, err := doc.LineStart(target)
	if err != nil {
		return
	}
	text, err := doc.Line(target)
	if err != nil {
		return
	}
	s.pane.SetCursor(start + byteAtColumn(text, s.goal, s.pane.Options().TabSize))
	s.pane.EnsureCursorVisible()
}

// moveColumns moves the cursor delta characters within its line.
func (s *docSurface) moveColumns(delta int) {
	doc := s.pane.Document()
	pos := s.pane.Selection().Primary
	start := doc.LineStartBefore(pos)
	for ; delta < 0 && pos > start; delta++ {
		_, size := utf8.DecodeLastRune(doc.Slice(start, pos))
		pos -= size
	}
	for ; delta > 0 && pos < doc.Len(); delta-- {
		rest := doc.Slice(pos, min(pos+utf8.UTFMax, doc.Len()))
		if rest[0] == '\n' || (rest[0] == '\r' && len(rest) > 1 && rest[1] == '\n') {
			break
		}
		_, size := utf8.DecodeRune(rest)
		pos += size
	}
	s.goal = -1
	s.pane.SetCursor(pos)
	s.pane.EnsureCursorVisible()
}

// gotoLine puts the cursor on a 0-based line and centers it.
func (s *docSurface) gotoLine(line int) {
	doc := s.pane.Document()
	line = min(max(line, 0), max(doc.IndexedLineCount()-1, 0))
	if start, err := doc.LineStart(line); err == nil {
		s.pane.SetCursor(start)
		s.pane.CenterOnCursor()
	}
}

func (s *docSurface) jump(pos int) {
	s.goal = -1
	s.pane.SetCursor(pos)
	s.pane.EnsureCursorVisible()
}

// cursorToTop moves the cursor to the first visible line after a page
// scroll.
func (s *docSurface) cursorToTop() {
	s.goal = -1
	s.pane.SetCursor(s.pane.TopByte())
}

// replaceDocument swaps in a reloaded document, keeping the cursor and
// the scroll line where they still fit.
func (s *docSurface) replaceDocument(doc *document.Document, h highlight.Provider) {
	top := s.pane.TopLine()
	pos := s.pane.Selection().Primary
	doc.Index(doc.Len())
	s.pane.SetDocument(doc)
	s.pane.SetHighlighter(h)
	s.pane.ScrollBy(top)
	s.pane.SetCursor(pos)
}

// byteAtColumn returns the offset in text of the character covering
// display column col, or len(text) past the end.
func byteAtColumn(text []byte, col, tabSize int) int {
	w := 0
	for i, r := range string(text) {
		rw := core.RuneWidth(r)
		if r == '\t' {
			rw = core.TabWidth(w, tabSize)
		}
		if w+rw > col {
			return i
		}
		w += rw
	}
	return len(text)
}

// diffSurface shows a side-by-side diff.
type diffSurface struct {
	diff   *renderer.DiffPane
	name   string
	height int
}

func newDiffSurface(d *renderer.DiffPane, before, after string) *diffSurface {
	return &diffSurface{diff: d, name: fmt.Sprintf("%s ↔ %s", before, after)}
}

func (s *diffSurface) handleKey(ev backend.Event) {
	d := s.diff
	page := max(s.height-1, 1)
	switch ev.Key {
	case backend.KeyUp:
		d.MoveCursor(-1, 0)
	case backend.KeyDown:
		d.MoveCursor(1, 0)
	case backend.KeyLeft:
		d.MoveCursor(0, -1)
	case backend.KeyRight:
		d.MoveCursor(0, 1)
	case backend.KeyPageUp:
		d.ScrollBy(-page)
	case backend.KeyPageDown:
		d.ScrollBy(page)
	case backend.KeyTab, backend.KeyBacktab:
		d.SwitchFocus()
	case backend.KeyRune:
		switch ev.Rune {
		case 'k':
			d.MoveCursor(-1, 0)
		case 'j':
			d.MoveCursor(1, 0)
		case 'h':
			d.MoveCursor(0, -1)
		case 'l':
			d.MoveCursor(0, 1)
		case 'n':
			d.NextHunk()
		case '<':
			d.ScrollHorizontalBy(-4)
		case '>':
			d.ScrollHorizontalBy(4)
		}
	}
}

func (s *diffSurface) handleMouse(ev backend.Event) {
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		s.diff.ScrollBy(-wheelLines)
	case backend.MouseWheelDown:
		s.diff.ScrollBy(wheelLines)
	}
}

func (s *diffSurface) draw(screen *backend.Screen, area core.Rect) {
	s.height = area.Height
	f := s.diff.Render(area)
	screen.Buffer().DrawLines(area, f.Lines)
	screen.SetCursor(f.Cursor)
}

func (s *diffSurface) setTheme(theme *highlight.Theme) {
	s.diff.SetTheme(theme)
}

func (s *diffSurface) updateStatus(st *statusline.StatusLine) {
	v := s.diff.View()
	st.SetFilename(s.name)
	st.SetPosition(v.CursorRow+1, v.CursorColumn+1)
	st.SetTotalLines(s.diff.Rows())
	scrollable := s.diff.Rows() - max(s.height-1, 1)
	if scrollable <= 0 {
		st.SetScrollPercent(0)
		return
	}
	st.SetScrollPercent(v.ScrollRow * 100 / scrollable)
}
