// Package linerender turns display lines into styled screen lines for one
// pane. Besides the cells it computes where the hardware cursor goes and,
// for every rendered row, which document byte sits in each column.
package linerender

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/strata/internal/renderer/ansi"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/gutter"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/layout"
	"github.com/dshills/strata/internal/renderer/overlay"
	"github.com/dshills/strata/internal/renderer/style"
)

// LSPWaitingGlyph replaces the cursor character while a language server
// request is pending.
const LSPWaitingGlyph = "⋯"

// TabArrow marks the first column of an expanded tab when tabs are shown.
const TabArrow = "→"

// Flags switch optional rendering behavior.
type Flags struct {
	// Active is true for the focused pane.
	Active bool

	// Wrap is true when line wrapping is on. Without wrapping, overlays
	// that extend to the line end fill the rest of the row.
	Wrap bool

	LSPWaiting bool

	// RevealCodes shows highlight and overlay boundaries, source offsets
	// and line terminators inline.
	RevealCodes bool

	ShowTabs bool
}

// Input is everything one render pass of a pane needs.
type Input struct {
	Lines []layout.DisplayLine

	// Anchor is the index of the first display line to draw.
	Anchor int

	Area core.Rect

	// Gutter draws the left margin; nil means no margin.
	Gutter *gutter.Gutter

	Theme       *highlight.Theme
	Selection   Selection
	Decorations Decorations

	// StartLine is the 0-based source line of the first drawn line and
	// CursorLine the line holding the primary cursor.
	StartLine  int
	CursorLine int

	// Visible is the number of rows available for content.
	Visible int

	LeftColumn int
	BufferLen  int
	Flags      Flags

	// Resolver overrides the default style resolver.
	Resolver *style.Resolver
}

// LastLineEnd is the screen position just past the last rendered
// character and whether that line ended with a newline.
type LastLineEnd struct {
	Pos     core.ScreenPos
	Newline bool
}

// LineMapping maps the content columns of one rendered row back to
// document bytes. Sources has one entry per column right of the gutter,
// layout.NoSource for columns that show no document byte.
type LineMapping struct {
	Sources     []int
	LineEndByte int
}

// Output is the result of a render pass. Cursor is relative to the area.
type Output struct {
	Lines                []core.Line
	Cursor               *core.ScreenPos
	LastLineEnd          *LastLineEnd
	ContentLinesRendered int
	Mappings             []LineMapping
}

// terminator is how the last rendered line ended.
type terminator uint8

const (
	termNone terminator = iota
	termNewline
	termBreak
)

// lineBuilder collects the spans of one row together with the source byte
// of every column.
type lineBuilder struct {
	line    core.Line
	sources []int
}

func (b *lineBuilder) push(text string, st core.Style, src int) {
	if text == "" {
		return
	}
	for _, r := range text {
		for range core.RuneWidth(r) {
			b.sources = append(b.sources, src)
		}
	}
	b.line.Push(text, st)
}

func (b *lineBuilder) empty() bool {
	return len(b.line.Spans) == 0
}

type pass struct {
	in       Input
	theme    *highlight.Theme
	resolver *style.Resolver
	cursors  map[int]bool
	gutterW  int

	out        Output
	lineNum    int
	prevSource bool
	rendered   int
	lastTerm   terminator

	cursor       core.ScreenPos
	haveCursor   bool
	lastVisibleX int
}

// Render draws the display lines from in.Anchor into at most in.Visible
// content rows, then pads the area with "~" rows.
func Render(in Input) Output {
	p := &pass{
		in:       in,
		theme:    in.Theme,
		resolver: in.Resolver,
		cursors:  in.Selection.cursorSet(),
		lineNum:  in.StartLine,
	}
	if p.theme == nil {
		p.theme = highlight.DefaultTheme()
	}
	if p.resolver == nil {
		p.resolver = style.NewResolver()
	}
	if in.Gutter != nil {
		p.gutterW = in.Gutter.Width()
	}

	var blank layout.DisplayLine
	idx := max(in.Anchor, 0)
	for {
		var dl *layout.DisplayLine
		switch {
		case idx < len(in.Lines):
			dl = &in.Lines[idx]
		case in.BufferLen == 0 && p.rendered == 0:
			dl = &blank
		}
		if dl == nil || p.rendered >= in.Visible {
			break
		}
		idx++
		p.renderLine(dl)
	}

	p.renderImplicitLine()
	p.fillTildes()

	p.out.ContentLinesRendered = p.rendered
	if p.haveCursor {
		c := p.cursor
		p.out.Cursor = &c
	}
	return p.out
}

func (p *pass) setCursor(x, y int) {
	p.cursor = core.ScreenPos{X: x, Y: y}
	p.haveCursor = true
}

// cursorCellStyle is the style of the blank cell drawn for a cursor that
// has no character under it.
func (p *pass) cursorCellStyle() core.Style {
	ui := p.theme.UI
	if p.in.Flags.Active {
		return core.Style{Foreground: ui.EditorFg, Background: ui.EditorBg, Attributes: core.AttrReverse}
	}
	return core.Style{Foreground: ui.EditorFg, Background: ui.InactiveCursor}
}

func (p *pass) renderMargin(b *lineBuilder, row gutter.Row) {
	if p.in.Gutter == nil {
		return
	}
	marks := gutter.Marks{Diagnostics: p.in.Decorations.Diagnostics, Indicators: p.in.Decorations.Indicators}
	for _, s := range p.in.Gutter.Render(row, marks, p.theme) {
		b.push(s.Text, s.Style, layout.NoSource)
	}
}

func (p *pass) renderLine(dl *layout.DisplayLine) {
	in := &p.in
	primary := in.Selection.Primary
	left := in.LeftColumn

	show := layout.ShouldShowLineNumber(dl)
	if show && p.prevSource {
		p.lineNum++
	}
	if show {
		p.prevSource = true
	}
	p.rendered++

	var b lineBuilder
	p.renderMargin(&b, gutter.Row{Line: p.lineNum, Continuation: !show, CursorLine: in.CursorLine})

	remaining := max(in.Visible-p.rendered, 1)
	budget := in.Area.Width + 100
	if in.Flags.Wrap {
		budget = in.Area.Width*remaining + 200
	}
	limit := left + budget

	var parser *ansi.Parser
	if dl.ContainsEscape() {
		parser = ansi.NewParser()
	}
	var reveal *revealTracker
	if in.Flags.RevealCodes {
		reveal = &revealTracker{}
	}

	byteIdx, col, visible := 0, 0, 0
	first, last := layout.NoSource, layout.NoSource

	for i, ch := range dl.Text {
		src := sourceOf(dl, i)
		if src != layout.NoSource {
			if first == layout.NoSource {
				first = src
			}
			last = src
		}

		var ansiStyle core.Style
		if parser != nil {
			st, ok := parser.Parse(ch)
			if !ok {
				if src != layout.NoSource && src == primary && !p.haveCursor {
					p.setCursor(p.gutterW+max(col-left, 0), p.rendered-1)
				}
				byteIdx += utf8.RuneLen(ch)
				continue
			}
			ansiStyle = st
		}

		if visible > limit {
			break
		}

		if col >= left {
			p.renderChar(&b, dl, i, ch, src, byteIdx, col, ansiStyle, reveal)
		}

		w := core.RuneWidth(ch)
		byteIdx += utf8.RuneLen(ch)
		col += w
		visible += w
	}

	y := len(p.out.Lines)
	n := len(dl.Text)

	if !dl.EndsWithNewline {
		expected := 0
		if n > 0 {
			if s, ok := dl.SourceAt(n - 1); ok {
				expected = s + 1
			}
		}
		atEnd := false
		for c := range p.cursors {
			if c == expected {
				atEnd = true
				break
			}
		}
		if atEnd {
			primaryAtEnd := primary >= in.BufferLen
			if primaryAtEnd {
				x := p.gutterW
				if n > 0 {
					x += max(col-left, 0)
				}
				p.setCursor(x, y)
			}
			if !in.Flags.Active || !primaryAtEnd {
				b.push(" ", p.cursorCellStyle(), layout.NoSource)
			}
		}
	}

	if !b.empty() {
		for x, s := range b.sources {
			if s == layout.NoSource {
				continue
			}
			if s == primary && !p.haveCursor {
				p.setCursor(x, y)
			}
			p.lastVisibleX = x
		}
	}

	if !in.Flags.Wrap && first != layout.NoSource {
		fill := max(in.Area.Width-p.gutterW-visible, 0)
		if fill > 0 {
			if bg, ok := p.extendFill(first, last); ok {
				b.push(strings.Repeat(" ", fill), core.Style{Foreground: bg, Background: bg}, layout.NoSource)
			}
		}
	}

	var mapping LineMapping
	if len(b.sources) >= p.gutterW {
		mapping.Sources = append([]int(nil), b.sources[p.gutterW:]...)
	}
	mapping.LineEndByte = lineEndByte(dl)
	p.out.Mappings = append(p.out.Mappings, mapping)

	wasEmpty := b.empty()
	p.out.Lines = append(p.out.Lines, b.line)

	endX := p.gutterW
	if !wasEmpty {
		endX = p.lastVisibleX + 1
	}
	p.out.LastLineEnd = &LastLineEnd{Pos: core.ScreenPos{X: endX, Y: y}, Newline: dl.EndsWithNewline}

	p.lastTerm = termNone
	if dl.EndsWithNewline && n > 0 && dl.Text[n-1] == '\n' {
		p.lastTerm = termBreak
		if s, ok := dl.SourceAt(n - 1); ok {
			p.lastTerm = termNewline
			if s == primary {
				x := endX
				if n == 1 {
					x = p.gutterW
				}
				p.setCursor(x, y)
			}
		}
	}
}

func (p *pass) renderChar(b *lineBuilder, dl *layout.DisplayLine, i int, ch rune, src, byteIdx, col int, ansiStyle core.Style, reveal *revealTracker) {
	in := &p.in
	sel := &in.Selection
	dec := &in.Decorations
	primary := sel.Primary
	hasPos := src != layout.NoSource

	isCursor := false
	if hasPos && p.cursors[src] && src < in.BufferLen {
		prev, ok := dl.SourceAt(i - 1)
		isCursor = i == 0 || !ok || prev != src
	}
	// Cursor cells are never drawn as selected.
	selected := !isCursor && ((hasPos && sel.inRange(src)) || sel.inBlock(p.lineNum, byteIdx))

	var tokenStyle *core.Style
	if i < len(dl.Styles) {
		tokenStyle = dl.Styles[i]
	}
	out := p.resolver.Resolve(style.CharContext{
		Pos:        src,
		HasPos:     hasPos,
		TokenStyle: tokenStyle,
		ANSI:       ansiStyle,
		Highlights: dec.Highlights,
		Semantic:   dec.Semantic,
		Overlays:   dec.Overlays,
		Theme:      p.theme,
		Selected:   selected,
		Cursor:     isCursor,
		Primary:    primary,
		Active:     in.Flags.Active,
	})

	var disp string
	switch {
	case isCursor && in.Flags.LSPWaiting && in.Flags.Active:
		disp = LSPWaitingGlyph
	case reveal != nil && ch == '\r':
		disp = `\r`
	case reveal != nil && ch == '\n':
		disp = `\n`
	case ch == '\n':
		disp = ""
	case dl.IsTabStart(i) && in.Flags.ShowTabs:
		disp = TabArrow
	default:
		disp = string(ch)
	}

	if hasPos {
		for _, vt := range dec.Inline.At(src, overlay.BeforeChar) {
			text := vt.Text + " "
			if ch == '\n' {
				text = " " + text
			}
			b.push(text, vt.Style, layout.NoSource)
		}
	}

	if disp != "" {
		if reveal != nil {
			for _, tag := range reveal.open(src, dec.Highlights, dec.Overlays) {
				b.push(tag, tagStyle, layout.NoSource)
			}
			if hasPos {
				b.push(fmt.Sprintf("[%d]", src), tagStyle, layout.NoSource)
			}
		}
		b.push(disp, out.Style, src)
		if reveal != nil && hasPos {
			for _, tag := range reveal.close(src + utf8.RuneLen(ch)) {
				b.push(tag, tagStyle, layout.NoSource)
			}
		}
	}

	if !p.haveCursor && hasPos && src == primary && core.RuneWidth(ch) == 0 {
		p.setCursor(p.gutterW+max(col-in.LeftColumn, 0), len(p.out.Lines))
	}

	if hasPos {
		for _, vt := range dec.Inline.At(src, overlay.AfterChar) {
			b.push(" "+vt.Text, vt.Style, layout.NoSource)
		}
	}

	if isCursor && ch == '\n' && (!in.Flags.Active || out.SecondaryCursor) {
		b.push(" ", p.cursorCellStyle(), src)
	}
}

// extendFill returns the background of the highest-priority overlay that
// extends to the line end and touches [first, last].
func (p *pass) extendFill(first, last int) (core.Color, bool) {
	found := false
	var best int
	for i, o := range p.in.Decorations.Overlays {
		if !o.ExtendToLineEnd || o.Start > last || o.End < first {
			continue
		}
		if !found || o.Priority >= p.in.Decorations.Overlays[best].Priority {
			best = i
			found = true
		}
	}
	if !found {
		return core.Color{}, false
	}
	return style.FaceBackground(p.in.Decorations.Overlays[best].Face, p.theme)
}

// renderImplicitLine draws the empty row after a trailing newline, where
// a cursor at the end of the buffer lives.
func (p *pass) renderImplicitLine() {
	end := p.out.LastLineEnd
	if end == nil || !end.Newline || p.lastTerm == termNone || p.rendered >= p.in.Visible {
		return
	}
	var b lineBuilder
	p.renderMargin(&b, gutter.Row{
		Line:         p.lineNum + 1,
		Continuation: p.lastTerm == termBreak,
		CursorLine:   p.in.CursorLine,
	})
	y := len(p.out.Lines)
	p.out.Lines = append(p.out.Lines, b.line)
	p.rendered++
	p.out.Mappings = append(p.out.Mappings, LineMapping{LineEndByte: p.in.BufferLen})

	if p.in.Selection.Primary == p.in.BufferLen && !p.haveCursor {
		p.setCursor(p.gutterW, y)
	}
}

func (p *pass) fillTildes() {
	st := core.NewStyle(p.theme.UI.LineNumberFg.Dimmed())
	text := "~" + strings.Repeat(" ", max(p.in.Area.Width-1, 0))
	for len(p.out.Lines) < p.in.Area.Height {
		p.out.Lines = append(p.out.Lines, core.NewLine(core.Span{Text: text, Style: st}))
	}
}

func sourceOf(dl *layout.DisplayLine, i int) int {
	if s, ok := dl.SourceAt(i); ok {
		return s
	}
	return layout.NoSource
}

// lineEndByte is the byte a click past the end of the row moves to: the
// newline itself, or the byte after the last character.
func lineEndByte(dl *layout.DisplayLine) int {
	for i := len(dl.Text) - 1; i >= 0; i-- {
		s, ok := dl.SourceAt(i)
		if !ok {
			continue
		}
		if dl.EndsWithNewline {
			return s
		}
		return s + utf8.RuneLen(dl.Text[i])
	}
	return 0
}
