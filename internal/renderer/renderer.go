package renderer

import (
	"strings"
	"sync"

	"github.com/dshills/strata/internal/document"
	"github.com/dshills/strata/internal/logging"
	"github.com/dshills/strata/internal/renderer/backend"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/gutter"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/layout"
	"github.com/dshills/strata/internal/renderer/linerender"
	"github.com/dshills/strata/internal/renderer/overlay"
	"github.com/dshills/strata/internal/renderer/scrollbar"
	"github.com/dshills/strata/internal/renderer/token"
	"github.com/dshills/strata/internal/renderer/viewport"
	"github.com/dshills/strata/internal/renderer/wrap"
)

// Options configures a pane.
type Options struct {
	// Layout
	TabSize          int  // Tab stop interval
	LineWrap         bool // Wrap long lines at the text width
	MaxSafeLineWidth int  // Characters after which a line is force-broken

	// Gutter
	ShowLineNumbers bool                  // Draw the left margin
	LineNumberMode  gutter.LineNumberMode // Absolute or relative numbers
	Separator       string                // Drawn after the line numbers

	// Presentation
	ShowTabs     bool // Draw an arrow at the start of every tab
	RevealCodes  bool // Show decoration boundaries and offsets inline
	ComposeWidth int  // Center a column of this width (0 = full width)

	// Scrollbar
	Scrollbar          bool // Draw a one-column track on the right
	LargeFileThreshold int  // Byte length above which the track is estimated

	// ScrollMargin keeps the cursor this many lines from the top and
	// bottom edges.
	ScrollMargin int
}

// DefaultOptions returns the options strata starts with.
func DefaultOptions() Options {
	return Options{
		TabSize:            core.DefaultTabSize,
		LineWrap:           true,
		MaxSafeLineWidth:   token.MaxSafeLineWidth,
		ShowLineNumbers:    true,
		LineNumberMode:     gutter.LineNumberAbsolute,
		Separator:          "│",
		Scrollbar:          true,
		LargeFileThreshold: scrollbar.LargeFileThreshold,
		ScrollMargin:       5,
	}
}

// layoutCacheSize is the number of frames of display lines a pane keeps.
const layoutCacheSize = 8

// Frame is one rendered pane.
type Frame struct {
	// Area is the screen rectangle the frame was rendered for.
	Area core.Rect

	// Content is the text column inside Area, gutter included.
	Content core.Rect

	// GutterWidth is the width of the left margin inside Content.
	GutterWidth int

	// Lines holds one full-width line per row of Area: compose padding,
	// gutter, text and scrollbar.
	Lines []core.Line

	// Cursor is the hardware cursor in screen coordinates, nil when the
	// pane is not focused or the cursor is off screen.
	Cursor *core.ScreenPos

	// Mappings map content columns right of the gutter to document bytes,
	// one entry per rendered row.
	Mappings []linerender.LineMapping

	// ScrollbarStart and ScrollbarEnd are the thumb rows.
	ScrollbarStart int
	ScrollbarEnd   int

	// Anchor is the index of the first drawn display line and Display
	// the display lines the frame was drawn from.
	Anchor  int
	Display []layout.DisplayLine
}

// Pane renders one document into a rectangle of the screen. It owns the
// viewport and the cursor state; decorations are kept in managers that
// other components may update concurrently.
type Pane struct {
	mu sync.RWMutex

	opts  Options
	doc   *document.Document
	theme *highlight.Theme

	highlighter highlight.Provider
	semantic    highlight.Spans
	overlays    *overlay.Manager
	virtual     *overlay.VirtualTexts
	indicators  *gutter.Indicators
	diagnostics map[int]bool

	selection  linerender.Selection
	focused    bool
	lspWaiting bool

	vp     *viewport.Viewport
	gutter *gutter.Gutter
	cache  *layout.Cache

	// generation changes whenever the display lines of a frame would.
	generation uint64

	last *Frame
	log  *logging.Logger
}

// NewPane creates a pane showing doc.
func NewPane(doc *document.Document, opts Options) *Pane {
	if doc == nil {
		doc = document.New(nil)
	}
	p := &Pane{
		doc:         doc,
		theme:       highlight.DefaultTheme(),
		overlays:    overlay.NewManager(),
		virtual:     overlay.NewVirtualTexts(),
		indicators:  gutter.NewIndicators(),
		diagnostics: make(map[int]bool),
		selection:   linerender.NewSelection(0),
		focused:     true,
		vp:          viewport.New(1, 1),
		gutter:      gutter.New(gutter.DefaultConfig()),
		cache:       layout.NewCache(layoutCacheSize),
		log:         logging.Get().WithComponent("pane"),
	}
	p.applyOptions(opts)
	return p
}

// applyOptions must be called with the write lock held or before the pane
// is shared.
func (p *Pane) applyOptions(opts Options) {
	if opts.TabSize <= 0 {
		opts.TabSize = core.DefaultTabSize
	}
	if opts.Separator == "" {
		opts.Separator = "│"
	}
	p.opts = opts

	cfg := p.gutter.Config()
	cfg.Enabled = opts.ShowLineNumbers
	cfg.Mode = opts.LineNumberMode
	cfg.Separator = opts.Separator
	p.gutter.SetConfig(cfg)

	p.vp.SetLineWrap(opts.LineWrap)
	p.vp.Margins.Top = max(opts.ScrollMargin, 0)
	p.vp.Margins.Bottom = max(opts.ScrollMargin, 0)
	p.generation++
}

// Options returns the current options.
func (p *Pane) Options() Options {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.opts
}

// SetOptions replaces the options.
func (p *Pane) SetOptions(opts Options) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyOptions(opts)
}

// Document returns the document shown in the pane.
func (p *Pane) Document() *document.Document {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.doc
}

// SetDocument replaces the document. The viewport returns to the top and
// the cursor to the first byte.
func (p *Pane) SetDocument(doc *document.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if doc == nil {
		doc = document.New(nil)
	}
	p.doc = doc
	p.vp.ScrollToTop()
	p.vp.LeftColumn = 0
	p.selection = linerender.NewSelection(0)
	p.invalidateLocked()
}

// SetTheme changes the theme.
func (p *Pane) SetTheme(theme *highlight.Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	p.theme = theme
}

// Theme returns the current theme.
func (p *Pane) Theme() *highlight.Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// SetHighlighter sets the syntax span provider; nil disables syntax
// highlighting.
func (p *Pane) SetHighlighter(h highlight.Provider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.highlighter = h
}

// SetSemanticHighlights sets the language server highlight spans.
func (p *Pane) SetSemanticHighlights(spans highlight.Spans) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.semantic = spans
}

// Overlays returns the overlay manager of the pane.
func (p *Pane) Overlays() *overlay.Manager {
	return p.overlays
}

// Indicators returns the gutter indicators of the pane.
func (p *Pane) Indicators() *gutter.Indicators {
	return p.indicators
}

// AddVirtualText adds virtual text and returns its handle.
func (p *Pane) AddVirtualText(vt overlay.VirtualText) string {
	id := p.virtual.Add(vt)
	p.Invalidate()
	return id
}

// RemoveVirtualText removes virtual text by handle.
func (p *Pane) RemoveVirtualText(id string) bool {
	ok := p.virtual.Remove(id)
	if ok {
		p.Invalidate()
	}
	return ok
}

// SetDiagnostics marks the 0-based source lines that carry a diagnostic.
func (p *Pane) SetDiagnostics(lines []int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.diagnostics = make(map[int]bool, len(lines))
	for _, l := range lines {
		p.diagnostics[l] = true
	}
}

// SetFocused marks the pane as the one holding input focus.
func (p *Pane) SetFocused(focused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.focused = focused
}

// SetLSPWaiting shows the waiting glyph in place of the cursor.
func (p *Pane) SetLSPWaiting(waiting bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lspWaiting = waiting
}

// Selection returns the cursor and selection state.
func (p *Pane) Selection() linerender.Selection {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selection
}

// SetSelection replaces the cursor and selection state. Positions are
// clamped to the document.
func (p *Pane) SetSelection(sel linerender.Selection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.doc.Len()
	sel.Primary = min(max(sel.Primary, 0), n)
	for i, c := range sel.Cursors {
		sel.Cursors[i] = min(max(c, 0), n)
	}
	p.selection = sel
}

// SetCursor moves the primary cursor to pos and drops every selection.
func (p *Pane) SetCursor(pos int) {
	p.SetSelection(linerender.NewSelection(pos))
}

// Invalidate drops cached display lines. Call it after the document
// changes in place.
func (p *Pane) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invalidateLocked()
}

func (p *Pane) invalidateLocked() {
	p.generation++
	p.cache.InvalidateBefore(p.generation)
	p.last = nil
}

// LastFrame returns the most recent frame, or nil.
func (p *Pane) LastFrame() *Frame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// Render draws the pane into area.
func (p *Pane) Render(area core.Rect) *Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	f := &Frame{Area: area}
	if area.IsEmpty() {
		p.last = f
		return f
	}
	doc := p.doc
	ui := p.theme.UI

	barW, comp, gutterW, textW := p.geometryLocked(area)
	f.Content = comp.Content
	f.GutterWidth = gutterW
	p.vp.Resize(textW, area.Height)

	top := min(p.vp.TopByte, doc.Len())
	key := layout.CacheKey{
		TopByte:    top,
		Width:      textW,
		Height:     area.Height,
		TabSize:    p.opts.TabSize,
		Wrap:       p.opts.LineWrap,
		Generation: p.generation,
	}
	lines := p.cache.Get(key, func() []layout.DisplayLine {
		return p.buildDisplay(top, textW, area.Height)
	})
	anchor := layout.ViewAnchor(lines, top)
	f.Anchor = anchor
	f.Display = lines

	dec := p.decorationsLocked(lines[anchor:])

	startLine := p.lineOfLocked(top)
	cursorLine := p.lineOfLocked(p.selection.Primary)

	var g *gutter.Gutter
	if gutterW > 0 {
		g = p.gutter
	}
	out := linerender.Render(linerender.Input{
		Lines:       lines,
		Anchor:      anchor,
		Area:        core.NewRect(0, 0, comp.Content.Width, area.Height),
		Gutter:      g,
		Theme:       p.theme,
		Selection:   p.selection,
		Decorations: dec,
		StartLine:   startLine,
		CursorLine:  cursorLine,
		Visible:     area.Height,
		LeftColumn:  p.vp.LeftColumn,
		BufferLen:   doc.Len(),
		Flags: linerender.Flags{
			Active:      p.focused,
			Wrap:        p.opts.LineWrap,
			LSPWaiting:  p.lspWaiting,
			RevealCodes: p.opts.RevealCodes,
			ShowTabs:    p.opts.ShowTabs,
		},
	})
	cur := linerender.ResolveCursorFallback(out.Cursor, p.selection.Primary, doc.Len(),
		doc.EndsWithNewline(), out.LastLineEnd, out.ContentLinesRendered, gutterW)
	f.Mappings = out.Mappings

	if p.focused && cur != nil && cur.X < comp.Content.Width {
		pos := linerender.ClampCursor(*cur, comp.Content)
		f.Cursor = &pos
	}

	var track []core.Line
	if barW > 0 {
		f.ScrollbarStart, f.ScrollbarEnd = scrollbar.ForDocumentThreshold(doc, top, area.Height, area.Height, p.opts.LargeFileThreshold)
		track = scrollbar.RenderTrack(area.Height, f.ScrollbarStart, f.ScrollbarEnd, scrollbar.ThemeColors(p.theme))
	}

	marginStyle := core.Style{Background: ui.ComposeMarginBg.Or(ui.EditorBg)}
	fill := core.Style{Background: ui.EditorBg}
	f.Lines = make([]core.Line, area.Height)
	for y := range f.Lines {
		var line core.Line
		if comp.Left.Width > 0 {
			line.Push(strings.Repeat(" ", comp.Left.Width), marginStyle)
		}
		var content core.Line
		if y < len(out.Lines) {
			content = out.Lines[y]
		}
		appendLine(&line, fitLine(content, comp.Content.Width, fill))
		if comp.Right.Width > 0 {
			line.Push(strings.Repeat(" ", comp.Right.Width), marginStyle)
		}
		if y < len(track) {
			appendLine(&line, track[y])
		}
		f.Lines[y] = line
	}

	p.last = f
	return f
}

// geometryLocked splits area into the scrollbar column, the compose
// layout, the gutter and the text width.
func (p *Pane) geometryLocked(area core.Rect) (barW int, comp viewport.ComposeLayout, gutterW, textW int) {
	if p.opts.Scrollbar && area.Width > 1 {
		barW = 1
	}
	inner := core.NewRect(area.X, area.Y, area.Width-barW, area.Height)
	comp = viewport.Compose(inner, p.opts.ComposeWidth)

	p.gutter.SetLineCount(p.lineCountLocked())
	gutterW = p.gutter.Width()
	if gutterW >= comp.Content.Width {
		gutterW = 0
	}
	textW = max(comp.Content.Width-gutterW, 1)
	return barW, comp, gutterW, textW
}

// buildDisplay runs the token, wrap and assembly stages for a frame.
func (p *Pane) buildDisplay(top, width, height int) []layout.DisplayLine {
	tokens := token.Build(p.doc, top, height, token.Options{MaxLineChars: p.opts.MaxSafeLineWidth})
	if p.opts.LineWrap {
		tokens = wrap.Apply(tokens, width, p.opts.TabSize)
	}
	lines := layout.Collect(tokens, layout.Options{
		Binary:    p.doc.IsBinary(),
		ANSIAware: !p.doc.IsBinary(),
		TabSize:   p.opts.TabSize,
	})
	lines = layout.InjectVirtualLines(lines, p.virtual)
	if len(lines) == 0 {
		lines = []layout.DisplayLine{{}}
	}
	return lines
}

// decorationsLocked snapshots the decorations of the source range the
// drawn lines cover.
func (p *Pane) decorationsLocked(lines []layout.DisplayLine) linerender.Decorations {
	dec := linerender.Decorations{
		Semantic:    p.semantic,
		Diagnostics: p.diagnostics,
		Indicators:  p.indicators,
	}
	start, end, ok := sourceRange(lines)
	if !ok {
		return dec
	}
	if p.highlighter != nil {
		dec.Highlights = p.highlighter.Highlight(p.doc.Bytes(), start, end)
	}
	dec.Overlays = p.overlays.Query(start, end)
	dec.Inline = overlay.IndexInline(p.virtual.InlineInRange(start, end))
	return dec
}

// lineCountLocked is the line count the gutter is sized for. Documents
// above the large-file threshold are only counted as far as they have
// been indexed.
func (p *Pane) lineCountLocked() int {
	if p.doc.Len() <= p.largeFileThreshold() {
		p.doc.Index(p.doc.Len())
	}
	return max(p.doc.IndexedLineCount(), 1)
}

func (p *Pane) largeFileThreshold() int {
	if p.opts.LargeFileThreshold > 0 {
		return p.opts.LargeFileThreshold
	}
	return scrollbar.LargeFileThreshold
}

// lineOfLocked returns the 0-based line of pos, indexing as needed.
func (p *Pane) lineOfLocked(pos int) int {
	pos = min(max(pos, 0), p.doc.Len())
	if pos > p.doc.IndexedTo() {
		p.doc.Index(pos)
	}
	line, err := p.doc.LineNumber(pos)
	if err != nil {
		p.log.Debug("line lookup at %d: %v", pos, err)
		return 0
	}
	return line
}

// Draw renders the pane into area of screen and positions the cursor,
// hiding it when the frame has none.
func (p *Pane) Draw(screen *backend.Screen, area core.Rect) *Frame {
	f := p.Render(area)
	screen.Buffer().DrawLines(area, f.Lines)
	screen.SetCursor(f.Cursor)
	return f
}

// sourceRange returns [first, last+1) over the source bytes of lines.
func sourceRange(lines []layout.DisplayLine) (start, end int, ok bool) {
	for i := range lines {
		if s, found := lines[i].FirstSource(); found {
			start, ok = s, true
			break
		}
	}
	if !ok {
		return 0, 0, false
	}
	end = start
	for i := range lines {
		if s, found := lines[i].LastSource(); found {
			end = max(end, s+1)
		}
	}
	return start, end, true
}

// fitLine cuts or pads l to exactly width columns. Padding uses fill.
func fitLine(l core.Line, width int, fill core.Style) core.Line {
	var out core.Line
	used := 0
	for _, s := range l.Spans {
		if used >= width {
			break
		}
		w := s.Width()
		if used+w > width {
			t := core.Truncate(s.Text, width-used)
			out.Push(t, s.Style)
			used += core.StringWidth(t)
			break
		}
		out.Push(s.Text, s.Style)
		used += w
	}
	if used < width {
		out.Push(strings.Repeat(" ", width-used), fill)
	}
	return out
}

func appendLine(dst *core.Line, src core.Line) {
	for _, s := range src.Spans {
		dst.Push(s.Text, s.Style)
	}
}
