package backend

import (
	"bufio"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dshills/strata/internal/renderer/core"
)

// ParseProfile maps a color mode name to a termenv profile.
func ParseProfile(name string) (termenv.Profile, bool) {
	switch name {
	case "truecolor", "24bit":
		return termenv.TrueColor, true
	case "256", "ansi256":
		return termenv.ANSI256, true
	case "16", "ansi":
		return termenv.ANSI, true
	case "none", "ascii", "plain":
		return termenv.Ascii, true
	default:
		return termenv.Ascii, false
	}
}

// lipglossColor converts a color for lipgloss. Unset and default colors
// leave the terminal's own color in place.
func lipglossColor(c core.Color) lipgloss.TerminalColor {
	switch c.Kind {
	case core.ColorRGB:
		return lipgloss.Color(c.ToHex())
	case core.ColorIndexed:
		return lipgloss.Color(strconv.Itoa(int(c.Index)))
	default:
		return lipgloss.NoColor{}
	}
}

// ANSIWriter writes rendered lines as text with escape sequences for the
// given color profile.
type ANSIWriter struct {
	renderer *lipgloss.Renderer
	out      *bufio.Writer
}

// NewANSIWriter creates a writer that encodes for profile.
func NewANSIWriter(w io.Writer, profile termenv.Profile) *ANSIWriter {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return &ANSIWriter{renderer: r, out: bufio.NewWriter(w)}
}

func (a *ANSIWriter) style(s core.Style) lipgloss.Style {
	attrs := s.Attributes
	return a.renderer.NewStyle().
		Foreground(lipglossColor(s.Foreground)).
		Background(lipglossColor(s.Background)).
		Bold(attrs.Has(core.AttrBold)).
		Faint(attrs.Has(core.AttrDim)).
		Italic(attrs.Has(core.AttrItalic)).
		Underline(attrs.Has(core.AttrUnderline)).
		Blink(attrs.Has(core.AttrBlink)).
		Reverse(attrs.Has(core.AttrReverse)).
		Strikethrough(attrs.Has(core.AttrStrikethrough))
}

// WriteLine writes one line followed by a newline.
func (a *ANSIWriter) WriteLine(line core.Line) error {
	for _, span := range line.Spans {
		if _, err := a.out.WriteString(a.style(span.Style).Render(span.Text)); err != nil {
			return err
		}
	}
	return a.out.WriteByte('\n')
}

// WriteLines writes every line and flushes.
func (a *ANSIWriter) WriteLines(lines []core.Line) error {
	for _, l := range lines {
		if err := a.WriteLine(l); err != nil {
			return err
		}
	}
	return a.out.Flush()
}
