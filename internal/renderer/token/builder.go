package token

import (
	"unicode/utf8"

	"github.com/dshills/strata/internal/document"
)

// MaxSafeLineWidth is the number of characters after which a single source
// line is forcibly broken. It bounds memory on minified or generated files
// whose lines run to megabytes.
const MaxSafeLineWidth = 10000

// DefaultEstimatedLineLength sizes the raw read window for binary content.
const DefaultEstimatedLineLength = 80

// extraLines is how many lines past the visible count are tokenized so that
// scrolling by a few lines does not need a rebuild.
const extraLines = 4

// Source is the document interface the builder reads from.
type Source interface {
	Len() int
	Slice(start, end int) []byte
	Lines(start int) *document.LineIter
	IsBinary() bool
	LineEnding() document.LineEnding
}

// Options tunes the builder.
type Options struct {
	// MaxLineChars overrides MaxSafeLineWidth when positive.
	MaxLineChars int

	// EstimatedLineLength overrides DefaultEstimatedLineLength when positive.
	EstimatedLineLength int
}

func (o Options) maxLineChars() int {
	if o.MaxLineChars > 0 {
		return o.MaxLineChars
	}
	return MaxSafeLineWidth
}

func (o Options) estimatedLineLength() int {
	if o.EstimatedLineLength > 0 {
		return o.EstimatedLineLength
	}
	return DefaultEstimatedLineLength
}

// Build tokenizes the lines of src starting with the line that contains
// topByte. It reads at most visibleCount+4 lines and always returns at
// least one token.
func Build(src Source, topByte, visibleCount int, opts Options) []Token {
	if src.IsBinary() {
		return buildBinary(src, topByte, visibleCount, opts)
	}

	var tokens []Token
	maxLines := max(visibleCount, 0) + extraLines
	maxChars := opts.maxLineChars()
	crlf := src.LineEnding() == document.LineEndingCRLF

	it := src.Lines(topByte)
	linesSeen := 0
	for linesSeen < maxLines {
		lineStart, line, ok := it.Next()
		if !ok {
			break
		}

		chars := 0
		for i := 0; i < len(line); {
			if chars >= maxChars {
				tokens = append(tokens, NewBreak())
				chars = 0
				linesSeen++
				if linesSeen >= maxLines {
					break
				}
			}
			chars++

			r, size := utf8.DecodeRune(line[i:])
			offset := lineStart + i

			switch {
			case r == '\r':
				if crlf && i+1 < len(line) && line[i+1] == '\n' {
					tokens = append(tokens, NewNewline(offset))
					i += 2
					continue
				}
				tokens = append(tokens, NewBinaryByte(offset, '\r'))
			case r == '\n':
				tokens = append(tokens, NewNewline(offset))
			case r == ' ':
				tokens = append(tokens, NewSpace(offset))
			case r == '\t':
				tokens = append(tokens, NewText(offset, "\t"))
			case isControlChar(r):
				tokens = append(tokens, NewBinaryByte(offset, byte(r)))
			default:
				raw := string(line[i : i+size])
				if n := len(tokens); n > 0 {
					last := &tokens[n-1]
					if last.Kind == Text && last.HasOffset && last.Offset+len(last.Text) == offset {
						last.Text += raw
						i += size
						continue
					}
				}
				tokens = append(tokens, NewText(offset, raw))
			}
			i += size
		}
		linesSeen++
	}

	if len(tokens) == 0 {
		tokens = append(tokens, NewText(topByte, ""))
	}
	return tokens
}

func buildBinary(src Source, topByte, visibleCount int, opts Options) []Token {
	length := src.Len()
	if topByte >= length {
		return []Token{NewText(topByte, "")}
	}

	maxLines := max(visibleCount, 0) + extraLines
	toRead := min(opts.estimatedLineLength()*maxLines*2, length-topByte)
	raw := src.Slice(topByte, topByte+toRead)

	var tokens []Token
	textStart := -1
	flush := func(end int) {
		if textStart >= 0 {
			tokens = append(tokens, NewText(topByte+textStart, string(raw[textStart:end])))
			textStart = -1
		}
	}

	linesSeen := 0
	i := 0
	for ; i < len(raw) && linesSeen < maxLines; i++ {
		b := raw[i]
		offset := topByte + i
		switch {
		case b == '\n':
			flush(i)
			tokens = append(tokens, NewNewline(offset))
			linesSeen++
		case b == ' ':
			flush(i)
			tokens = append(tokens, NewSpace(offset))
		case IsBinaryUnprintable(b):
			flush(i)
			tokens = append(tokens, NewBinaryByte(offset, b))
		default:
			if textStart < 0 {
				textStart = i
			}
		}
	}
	flush(i)

	if len(tokens) == 0 {
		tokens = append(tokens, NewText(topByte, ""))
	}
	return tokens
}

// IsBinaryUnprintable reports whether b is drawn as <XX> in binary mode.
// Only tab and LF are let through among the control bytes; everything at
// or above 0x80 is escaped.
func IsBinaryUnprintable(b byte) bool {
	if b == '\t' || b == '\n' {
		return false
	}
	return b < 0x20 || b >= 0x7f
}

// isControlChar reports whether an ASCII rune would move the terminal
// cursor or otherwise corrupt the display. Tab, LF and ESC are allowed.
func isControlChar(r rune) bool {
	if r >= 0x80 {
		return false
	}
	if r == '\t' || r == '\n' || r == 0x1b {
		return false
	}
	return r < 0x20 || r == 0x7f
}
