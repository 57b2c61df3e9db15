// Package token turns the visible window of a document into a flat stream
// of view tokens, the first stage of the view pipeline.
package token

import (
	"fmt"

	"github.com/dshills/strata/internal/renderer/core"
)

// Kind identifies what a token represents.
type Kind uint8

const (
	// Text is a run of non-space, non-newline characters.
	Text Kind = iota
	// Space is a single ' '.
	Space
	// Newline ends a source line. A CRLF pair folds into one Newline at
	// the '\r' offset.
	Newline
	// Break is a soft line break inserted by wrapping or the line-width
	// ceiling. It never has a source offset.
	Break
	// BinaryByte is a byte drawn as a <XX> hex escape.
	BinaryByte
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case Space:
		return "Space"
	case Newline:
		return "Newline"
	case Break:
		return "Break"
	case BinaryByte:
		return "BinaryByte"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Token is one element of the view token stream.
type Token struct {
	// Offset is the document byte the token starts at. Only meaningful
	// when HasOffset is true.
	Offset    int
	HasOffset bool

	Kind Kind

	// Text holds the raw bytes of a Text token. It may contain invalid
	// UTF-8, which later stages decode one byte at a time.
	Text string

	// Byte is the value of a BinaryByte token.
	Byte byte

	// Style is an optional style carried by injected tokens.
	Style *core.Style
}

// NewText creates a Text token at offset.
func NewText(offset int, text string) Token {
	return Token{Offset: offset, HasOffset: true, Kind: Text, Text: text}
}

// NewSpace creates a Space token at offset.
func NewSpace(offset int) Token {
	return Token{Offset: offset, HasOffset: true, Kind: Space}
}

// NewNewline creates a Newline token at offset.
func NewNewline(offset int) Token {
	return Token{Offset: offset, HasOffset: true, Kind: Newline}
}

// NewBreak creates a soft Break token.
func NewBreak() Token {
	return Token{Kind: Break}
}

// NewBinaryByte creates a BinaryByte token at offset.
func NewBinaryByte(offset int, b byte) Token {
	return Token{Offset: offset, HasOffset: true, Kind: BinaryByte, Byte: b}
}

// String renders the token for debugging and test failure output.
func (t Token) String() string {
	off := "-"
	if t.HasOffset {
		off = fmt.Sprint(t.Offset)
	}
	switch t.Kind {
	case Text:
		return fmt.Sprintf("Text(%s,%q)", off, t.Text)
	case BinaryByte:
		return fmt.Sprintf("Byte(%s,%02X)", off, t.Byte)
	default:
		return fmt.Sprintf("%s(%s)", t.Kind, off)
	}
}
