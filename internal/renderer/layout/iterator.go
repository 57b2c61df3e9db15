package layout

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/strata/internal/renderer/ansi"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/token"
)

// Options controls how tokens become characters.
type Options struct {
	// Binary escapes unprintable and invalid bytes as <XX>.
	Binary bool

	// ANSIAware gives characters inside escape sequences zero width.
	ANSIAware bool

	// TabSize is the tab stop interval. Zero means core.DefaultTabSize.
	TabSize int
}

// Iterator lazily converts a token stream into display lines. It is
// finite and can be restarted with Reset.
type Iterator struct {
	tokens []token.Token
	opts   Options
	idx    int
	next   LineStart
}

// NewIterator creates an iterator over tokens.
func NewIterator(tokens []token.Token, opts Options) *Iterator {
	if opts.TabSize <= 0 {
		opts.TabSize = core.DefaultTabSize
	}
	return &Iterator{tokens: tokens, opts: opts}
}

// Reset rewinds the iterator to the first token.
func (it *Iterator) Reset() {
	it.idx = 0
	it.next = Beginning
}

// Collect returns every display line of tokens.
func Collect(tokens []token.Token, opts Options) []DisplayLine {
	it := NewIterator(tokens, opts)
	var lines []DisplayLine
	for {
		l, ok := it.Next()
		if !ok {
			return lines
		}
		lines = append(lines, l)
	}
}

// Next returns the next display line. An empty line at the very end of
// the stream is not returned.
func (it *Iterator) Next() (DisplayLine, bool) {
	if it.idx >= len(it.tokens) {
		return DisplayLine{}, false
	}

	line := DisplayLine{Start: it.next}
	var parser *ansi.Parser
	if it.opts.ANSIAware {
		parser = ansi.NewParser()
	}

loop:
	for it.idx < len(it.tokens) {
		t := it.tokens[it.idx]
		it.idx++

		src := NoSource
		if t.HasOffset {
			src = t.Offset
		}

		switch t.Kind {
		case token.Text:
			it.addText(&line, t, parser)

		case token.Space:
			line.add(' ', src, t.Style, 1)

		case token.Newline:
			line.add('\n', src, t.Style, 1)
			line.EndsWithNewline = true
			if t.HasOffset {
				it.next = AfterSourceNewline
			} else {
				it.next = AfterInjectedNewline
			}
			break loop

		case token.Break:
			line.add('\n', NoSource, nil, 1)
			line.EndsWithNewline = true
			it.next = AfterBreak
			break loop

		case token.BinaryByte:
			addHex(&line, t.Byte, src, t.Style)
		}
	}

	if len(line.Text) == 0 && it.idx >= len(it.tokens) {
		return DisplayLine{}, false
	}
	return line, true
}

func (it *Iterator) addText(line *DisplayLine, t token.Token, parser *ansi.Parser) {
	text := t.Text
	for i := 0; i < len(text); {
		src := NoSource
		if t.HasOffset {
			src = t.Offset + i
		}
		b := text[i]

		if it.opts.Binary && isUnprintableByte(b) {
			addHex(line, b, src, t.Style)
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			if it.opts.Binary {
				addHex(line, b, src, t.Style)
			} else {
				line.add(utf8.RuneError, src, t.Style, 1)
			}
			i++
			continue
		}
		i += size

		if r == '\t' {
			col := line.Width()
			line.markTab(line.Len())
			for n := core.TabWidth(col, it.opts.TabSize); n > 0; n-- {
				line.add(' ', src, t.Style, 1)
			}
			continue
		}

		width := core.RuneWidth(r)
		if parser != nil {
			if _, visible := parser.Parse(r); !visible {
				width = 0
			}
		}
		line.add(r, src, t.Style, width)
	}
}

// addHex appends the four characters of <XX>, all mapped to src.
func addHex(line *DisplayLine, b byte, src int, style *core.Style) {
	for _, r := range fmt.Sprintf("<%02X>", b) {
		line.add(r, src, style, 1)
	}
}

// isUnprintableByte reports whether b is escaped inside binary text.
func isUnprintableByte(b byte) bool {
	if b == '\t' || b == '\n' {
		return false
	}
	return b < 0x20 || b == 0x7f
}
