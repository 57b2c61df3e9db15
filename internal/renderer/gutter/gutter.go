// Package gutter renders the left margin of a pane: an indicator column
// (diagnostics, git marks, breakpoints), right-aligned line numbers and a
// separator.
package gutter

import (
	"strings"
	"sync"

	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
)

// DiagnosticGlyph marks lines that carry a diagnostic.
const DiagnosticGlyph = "●"

// Config holds gutter configuration.
type Config struct {
	// Enabled turns the whole margin on or off.
	Enabled bool

	// Width is the fixed width for line numbers (0 = auto).
	Width int

	// MinWidth is the minimum width for auto-calculated widths.
	MinWidth int

	// ShowSeparator draws Separator after the numbers.
	ShowSeparator bool
	Separator     string

	// Mode selects absolute or relative numbering.
	Mode LineNumberMode
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		MinWidth:      4,
		ShowSeparator: true,
		Separator:     "│",
		Mode:          LineNumberAbsolute,
	}
}

// SignType is a kind of mark shown in the indicator column.
type SignType uint8

const (
	SignNone SignType = iota
	SignError
	SignWarning
	SignInfo
	SignBreakpoint
	SignBookmark
	SignGitAdded
	SignGitModified
	SignGitDeleted
)

// Indicator is one glyph in the indicator column.
type Indicator struct {
	Symbol   string
	Color    core.Color
	Priority int
}

// SignIndicator returns the preset indicator for a sign type.
func SignIndicator(st SignType) Indicator {
	switch st {
	case SignError:
		return Indicator{Symbol: "E", Color: core.ColorRed, Priority: 100}
	case SignBreakpoint:
		return Indicator{Symbol: "*", Color: core.ColorRed, Priority: 90}
	case SignWarning:
		return Indicator{Symbol: "W", Color: core.ColorYellow, Priority: 80}
	case SignInfo:
		return Indicator{Symbol: "I", Color: core.ColorBlue, Priority: 70}
	case SignBookmark:
		return Indicator{Symbol: "#", Color: core.ColorBlue, Priority: 60}
	case SignGitDeleted:
		return Indicator{Symbol: "-", Color: core.ColorRed, Priority: 50}
	case SignGitModified:
		return Indicator{Symbol: "~", Color: core.ColorYellow, Priority: 40}
	case SignGitAdded:
		return Indicator{Symbol: "+", Color: core.ColorGreen, Priority: 30}
	default:
		return Indicator{Symbol: " "}
	}
}

// Indicators maps 0-based line numbers to the indicator shown there.
// When several indicators land on one line the highest priority wins.
type Indicators struct {
	mu     sync.RWMutex
	byLine map[int]Indicator
}

// NewIndicators creates an empty indicator set.
func NewIndicators() *Indicators {
	return &Indicators{byLine: make(map[int]Indicator)}
}

// Set places ind on line unless a higher-priority indicator is there.
func (s *Indicators) Set(line int, ind Indicator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.byLine[line]; ok && cur.Priority > ind.Priority {
		return
	}
	s.byLine[line] = ind
}

// SetSign places a preset sign on line.
func (s *Indicators) SetSign(line int, st SignType) {
	s.Set(line, SignIndicator(st))
}

// Get returns the indicator on line.
func (s *Indicators) Get(line int) (Indicator, bool) {
	if s == nil {
		return Indicator{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ind, ok := s.byLine[line]
	return ind, ok
}

// Remove clears line.
func (s *Indicators) Remove(line int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byLine, line)
}

// Len returns the number of marked lines.
func (s *Indicators) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byLine)
}

// Row describes the display line a margin is rendered for.
type Row struct {
	// Line is the 0-based source line number.
	Line int

	// Continuation is true for wrapped and injected rows, which get a
	// blank margin.
	Continuation bool

	// CursorLine is the line holding the primary cursor.
	CursorLine int
}

// Marks are the per-line decorations of the indicator column.
type Marks struct {
	Diagnostics map[int]bool
	Indicators  *Indicators
}

// Gutter lays out and renders the left margin.
type Gutter struct {
	mu sync.RWMutex

	config    Config
	lineCount int
	width     int
}

// New creates a new gutter with the given configuration.
func New(config Config) *Gutter {
	g := &Gutter{config: config, lineCount: 1}
	g.width = calculateWidth(config, 1)
	return g
}

// Width returns the total margin width in columns.
func (g *Gutter) Width() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width
}

// Config returns the current configuration.
func (g *Gutter) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the gutter configuration.
func (g *Gutter) SetConfig(config Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = config
	g.width = calculateWidth(config, g.lineCount)
}

// SetLineCount updates the total line count (affects width calculation).
func (g *Gutter) SetLineCount(count int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lineCount = count
	g.width = calculateWidth(g.config, count)
}

// NumberWidth returns the width of the line number field.
func (g *Gutter) NumberWidth() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return numberWidth(g.config, g.lineCount)
}

// Render returns the margin spans for one row. The spans cover exactly
// Width() columns.
func (g *Gutter) Render(row Row, marks Marks, theme *highlight.Theme) []core.Span {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.config.Enabled {
		return nil
	}
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	numStyle := core.NewStyle(theme.UI.LineNumberFg)
	spans := make([]core.Span, 0, 3)

	switch {
	case row.Continuation:
		spans = append(spans, core.Span{Text: " "})
	case marks.Diagnostics[row.Line]:
		spans = append(spans, core.Span{
			Text:  DiagnosticGlyph,
			Style: core.NewStyle(theme.UI.DiagnosticError.Or(core.ColorRed)),
		})
	default:
		if ind, ok := marks.Indicators.Get(row.Line); ok {
			spans = append(spans, core.Span{Text: core.PadRight(core.Truncate(ind.Symbol, 1), 1), Style: core.NewStyle(ind.Color)})
		} else {
			spans = append(spans, core.Span{Text: " "})
		}
	}

	width := numberWidth(g.config, g.lineCount)
	if row.Continuation {
		spans = append(spans, core.Span{Text: strings.Repeat(" ", width), Style: numStyle})
	} else {
		f := LineNumberFormatter{mode: g.config.Mode, width: width, currentLine: row.CursorLine}
		text, current := f.FormatWithHighlight(row.Line)
		st := numStyle
		if current && g.config.Mode != LineNumberAbsolute {
			st = core.NewStyle(theme.UI.EditorFg)
		}
		spans = append(spans, core.Span{Text: text, Style: st})
	}

	if g.config.ShowSeparator {
		spans = append(spans, core.Span{Text: g.config.Separator, Style: numStyle})
	}
	return spans
}

// numberWidth returns the width for line numbers.
func numberWidth(config Config, lineCount int) int {
	if config.Width > 0 {
		return config.Width
	}
	return CalculateWidth(lineCount, config.MinWidth)
}

// calculateWidth calculates the total gutter width.
func calculateWidth(config Config, lineCount int) int {
	if !config.Enabled {
		return 0
	}
	width := 1 + numberWidth(config, lineCount)
	if config.ShowSeparator {
		width += core.StringWidth(config.Separator)
	}
	return width
}
