// Package statusline draws the one-row status bar under a strata view.
package statusline

import (
	"strconv"
	"strings"

	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine holds what the bar shows. The zero value is not usable; call
// New.
type StatusLine struct {
	mode     string // e.g. "VIEW", "DIFF"
	filename string
	watching bool

	line       int // 1-based
	col        int // 1-based display column
	totalLines int
	percent    int // -1 until set

	message     string
	messageType MessageType
}

// New creates a status line showing mode.
func New(mode string) *StatusLine {
	return &StatusLine{mode: mode, percent: -1}
}

// SetMode updates the displayed mode.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetWatching marks the file as followed for changes.
func (s *StatusLine) SetWatching(watching bool) {
	s.watching = watching
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetTotalLines updates the total line count.
func (s *StatusLine) SetTotalLines(total int) {
	s.totalLines = total
}

// SetScrollPercent updates the scroll position, 0 to 100.
func (s *StatusLine) SetScrollPercent(percent int) {
	s.percent = min(max(percent, 0), 100)
}

// SetMessage replaces the bar with a message until ClearMessage.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message, if any.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Render returns the bar as a line of exactly width columns.
func (s *StatusLine) Render(width int, theme *highlight.Theme) core.Line {
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	ui := theme.UI
	var l core.Line
	if width <= 0 {
		return l
	}

	if s.message != "" {
		st := core.Style{Foreground: ui.EditorFg, Background: ui.EditorBg}
		switch s.messageType {
		case MessageError:
			st = st.WithForeground(ui.DiagnosticError).Bold()
		case MessageWarning:
			st = st.WithForeground(ui.DiagnosticWarning)
		}
		l.Push(core.PadRight(core.Truncate(s.message, width), width), st)
		return l
	}

	modeStyle := core.Style{Foreground: ui.TabActiveFg, Background: ui.TabActiveBg}.Bold()
	barStyle := core.Style{Foreground: ui.TabInactiveFg, Background: ui.TabInactiveBg}

	mode := core.Truncate(" "+s.mode+" ", width)
	l.Push(mode, modeStyle)
	used := core.StringWidth(mode)
	if used >= width {
		return l
	}

	pos := s.formatPosition() + " "
	posW := core.StringWidth(pos)
	nameW := width - used - posW
	if nameW < 2 {
		// No room for the position; give the name what is left.
		pos, posW, nameW = "", 0, width-used
	}
	l.Push(core.PadRight(core.Truncate(" "+s.describeFile(), nameW), nameW), barStyle)
	if posW > 0 {
		l.Push(pos, barStyle)
	}
	return l
}

func (s *StatusLine) describeFile() string {
	name := s.filename
	if name == "" {
		name = "[No Name]"
	}
	if s.watching {
		name += " [watch]"
	}
	return name
}

// formatPosition formats the right side, e.g. "Ln 12/300, Col 4 | 40%".
func (s *StatusLine) formatPosition() string {
	line := max(s.line, 1)
	col := max(s.col, 1)

	var b strings.Builder
	b.WriteString("Ln ")
	b.WriteString(strconv.Itoa(line))
	if s.totalLines > 0 {
		b.WriteString("/")
		b.WriteString(strconv.Itoa(s.totalLines))
	}
	b.WriteString(", Col ")
	b.WriteString(strconv.Itoa(col))

	switch {
	case s.percent < 0:
	case s.percent == 0:
		b.WriteString(" | Top")
	case s.percent >= 100:
		b.WriteString(" | Bot")
	default:
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(s.percent))
		b.WriteString("%")
	}
	return b.String()
}
