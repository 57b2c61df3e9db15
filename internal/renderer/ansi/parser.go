// Package ansi tracks SGR escape sequences embedded in document text so
// that terminal output captured in a file can be drawn with its colors.
package ansi

import (
	"strconv"
	"strings"

	"github.com/dshills/strata/internal/renderer/core"
)

// ESC starts every escape sequence.
const ESC = '\x1b'

// ContainsEscape reports whether s contains an escape character.
func ContainsEscape(s string) bool {
	return strings.IndexByte(s, ESC) >= 0
}

type state uint8

const (
	stateGround state = iota
	stateEscape       // saw ESC
	stateCSI          // ESC [ ... waiting for final byte
	stateOSC          // ESC ] ... waiting for BEL or ST
	stateOSCEscape    // ESC inside OSC, expecting '\'
)

// Parser is a per-character SGR state machine. It is fed one rune at a time
// and remembers the style selected by the last complete SGR sequence.
type Parser struct {
	state  state
	params strings.Builder
	style  core.Style
}

// NewParser creates a parser in the ground state with an empty style.
func NewParser() *Parser {
	return &Parser{}
}

// Style returns the style selected so far.
func (p *Parser) Style() core.Style {
	return p.style
}

// InSequence reports whether the parser is inside an escape sequence.
func (p *Parser) InSequence() bool {
	return p.state != stateGround
}

// Parse feeds one rune. It returns the current style and true when r is a
// visible character, or false when r was consumed as part of an escape
// sequence.
func (p *Parser) Parse(r rune) (core.Style, bool) {
	switch p.state {
	case stateGround:
		if r == ESC {
			p.state = stateEscape
			return core.Style{}, false
		}
		return p.style, true

	case stateEscape:
		switch r {
		case '[':
			p.state = stateCSI
			p.params.Reset()
		case ']':
			p.state = stateOSC
		default:
			// Two-character sequence such as ESC 7 or ESC =.
			p.state = stateGround
		}
		return core.Style{}, false

	case stateCSI:
		if r >= 0x40 && r <= 0x7E {
			if r == 'm' {
				p.applySGR(p.params.String())
			}
			p.state = stateGround
			return core.Style{}, false
		}
		p.params.WriteRune(r)
		return core.Style{}, false

	case stateOSC:
		switch r {
		case '\a':
			p.state = stateGround
		case ESC:
			p.state = stateOSCEscape
		}
		return core.Style{}, false

	case stateOSCEscape:
		p.state = stateGround
		return core.Style{}, false
	}
	return p.style, true
}

// Reset returns the parser to the ground state with an empty style.
func (p *Parser) Reset() {
	p.state = stateGround
	p.params.Reset()
	p.style = core.Style{}
}

func (p *Parser) applySGR(raw string) {
	if raw == "" {
		p.style = core.Style{}
		return
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ':' })
	codes := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			n = 0
		}
		codes = append(codes, n)
	}

	for i := 0; i < len(codes); i++ {
		c := codes[i]
		switch {
		case c == 0:
			p.style = core.Style{}
		case c == 1:
			p.style.Attributes |= core.AttrBold
		case c == 2:
			p.style.Attributes |= core.AttrDim
		case c == 3:
			p.style.Attributes |= core.AttrItalic
		case c == 4:
			p.style.Attributes |= core.AttrUnderline
		case c == 5 || c == 6:
			p.style.Attributes |= core.AttrBlink
		case c == 7:
			p.style.Attributes |= core.AttrReverse
		case c == 8:
			p.style.Attributes |= core.AttrHidden
		case c == 9:
			p.style.Attributes |= core.AttrStrikethrough
		case c == 22:
			p.style.Attributes &^= core.AttrBold | core.AttrDim
		case c == 23:
			p.style.Attributes &^= core.AttrItalic
		case c == 24:
			p.style.Attributes &^= core.AttrUnderline
		case c == 25:
			p.style.Attributes &^= core.AttrBlink
		case c == 27:
			p.style.Attributes &^= core.AttrReverse
		case c == 28:
			p.style.Attributes &^= core.AttrHidden
		case c == 29:
			p.style.Attributes &^= core.AttrStrikethrough
		case c >= 30 && c <= 37:
			p.style.Foreground = core.ColorFromIndex(uint8(c - 30))
		case c == 38:
			col, n := extendedColor(codes[i+1:])
			if col.IsSet() {
				p.style.Foreground = col
			}
			i += n
		case c == 39:
			p.style.Foreground = core.Color{}
		case c >= 40 && c <= 47:
			p.style.Background = core.ColorFromIndex(uint8(c - 40))
		case c == 48:
			col, n := extendedColor(codes[i+1:])
			if col.IsSet() {
				p.style.Background = col
			}
			i += n
		case c == 49:
			p.style.Background = core.Color{}
		case c >= 90 && c <= 97:
			p.style.Foreground = core.ColorFromIndex(uint8(c - 90 + 8))
		case c >= 100 && c <= 107:
			p.style.Background = core.ColorFromIndex(uint8(c - 100 + 8))
		}
	}
}

// extendedColor decodes the arguments after 38/48 and returns the color and
// the number of arguments consumed.
func extendedColor(args []int) (core.Color, int) {
	if len(args) == 0 {
		return core.Color{}, 0
	}
	switch args[0] {
	case 5:
		if len(args) < 2 {
			return core.Color{}, len(args)
		}
		return core.ColorFromIndex(clampByte(args[1])), 2
	case 2:
		if len(args) < 4 {
			return core.Color{}, len(args)
		}
		return core.ColorFromRGB(clampByte(args[1]), clampByte(args[2]), clampByte(args[3])), 4
	}
	return core.Color{}, 1
}

func clampByte(n int) uint8 {
	return uint8(min(max(n, 0), 255))
}
