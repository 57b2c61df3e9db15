package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/strata/internal/document"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

// reassemble rebuilds document bytes from a token stream.
func reassemble(doc *document.Document, tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t.Kind {
		case Text:
			b.WriteString(t.Text)
		case Space:
			b.WriteByte(' ')
		case Newline:
			if c, _ := doc.ByteAt(t.Offset); c == '\r' {
				b.WriteString("\r\n")
			} else {
				b.WriteByte('\n')
			}
		case BinaryByte:
			b.WriteByte(t.Byte)
		}
	}
	return b.String()
}

func TestBuildBasic(t *testing.T) {
	doc := document.FromString("ab cd\nx")
	got := Build(doc, 0, 10, Options{})

	want := []Token{
		NewText(0, "ab"),
		NewSpace(2),
		NewText(3, "cd"),
		NewNewline(5),
		NewText(6, "x"),
	}
	require.Equal(t, want, got)
}

func TestBuildEmptyDocument(t *testing.T) {
	got := Build(document.FromString(""), 0, 5, Options{})
	require.Equal(t, []Token{NewText(0, "")}, got)
}

func TestBuildCRLF(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []document.Option
		want []Token
	}{
		{
			name: "crlf folds",
			text: "a\r\nb",
			opts: []document.Option{document.WithCRLF()},
			want: []Token{NewText(0, "a"), NewNewline(1), NewText(3, "b")},
		},
		{
			name: "cr in lf file is a byte",
			text: "a\r\nb",
			opts: []document.Option{document.WithLineEnding(document.LineEndingLF)},
			want: []Token{NewText(0, "a"), NewBinaryByte(1, '\r'), NewNewline(2), NewText(3, "b")},
		},
		{
			name: "lone cr in crlf file",
			text: "a\rb\r\n",
			opts: []document.Option{document.WithCRLF()},
			want: []Token{NewText(0, "a"), NewBinaryByte(1, '\r'), NewText(2, "b"), NewNewline(3)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.FromString(tt.text, tt.opts...)
			require.Equal(t, tt.want, Build(doc, 0, 10, Options{}))
		})
	}
}

func TestBuildControlAndTab(t *testing.T) {
	doc := document.FromString("\tx\x01y\x1b[0m", document.WithBinary(false))
	got := Build(doc, 0, 10, Options{})

	want := []Token{
		NewText(0, "\tx"),
		NewBinaryByte(2, 0x01),
		NewText(3, "y\x1b[0m"),
	}
	require.Equal(t, want, got)
}

func TestBuildInvalidUTF8KeepsBytes(t *testing.T) {
	doc := document.FromString("a\xffb", document.WithBinary(false))
	got := Build(doc, 0, 10, Options{})
	require.Equal(t, []Token{NewText(0, "a\xffb")}, got)
}

func TestBuildStartsAtLineContainingTop(t *testing.T) {
	doc := document.FromString("one\ntwo\nthree\n")
	got := Build(doc, 5, 10, Options{})
	require.Equal(t, NewText(4, "two"), got[0])
}

func TestBuildLimitsLines(t *testing.T) {
	doc := document.FromString(strings.Repeat("x\n", 50))
	got := Build(doc, 0, 2, Options{})

	newlines := 0
	for _, tok := range got {
		if tok.Kind == Newline {
			newlines++
		}
	}
	if newlines != 6 {
		t.Errorf("expected 6 lines (2 visible + 4), got %d", newlines)
	}
}

func TestBuildLongLineCeiling(t *testing.T) {
	doc := document.FromString(strings.Repeat("a", 25))
	got := Build(doc, 0, 10, Options{MaxLineChars: 10})

	require.Equal(t, []Kind{Text, Break, Text, Break, Text}, kinds(got))
	require.False(t, got[1].HasOffset)
	require.Equal(t, 10, got[2].Offset)
	require.Equal(t, strings.Repeat("a", 25), reassemble(doc, got))
}

func TestBuildLongLineCountsTowardLimit(t *testing.T) {
	doc := document.FromString(strings.Repeat("a", 1000))
	got := Build(doc, 0, 0, Options{MaxLineChars: 10})

	breaks := 0
	for _, tok := range got {
		if tok.Kind == Break {
			breaks++
		}
	}
	// Four breaks exhaust the four lines of lookahead.
	if breaks != 4 {
		t.Errorf("breaks = %d, want 4", breaks)
	}
}

func TestBuildBinary(t *testing.T) {
	doc := document.FromString("ab\x00\tc d\n\xff", document.WithBinary(true))
	got := Build(doc, 0, 10, Options{})

	want := []Token{
		NewText(0, "ab"),
		NewBinaryByte(2, 0x00),
		NewText(3, "\tc"),
		NewSpace(5),
		NewText(6, "d"),
		NewNewline(7),
		NewBinaryByte(8, 0xff),
	}
	require.Equal(t, want, got)
}

func TestBuildBinaryPastEnd(t *testing.T) {
	doc := document.FromString("\x00\x01", document.WithBinary(true))
	require.Equal(t, []Token{NewText(5, "")}, Build(doc, 5, 3, Options{}))
}

func TestBuildBinaryReadWindow(t *testing.T) {
	doc := document.FromString(strings.Repeat("z", 10000), document.WithBinary(true))
	got := Build(doc, 0, 1, Options{EstimatedLineLength: 10})
	require.Len(t, got, 1)
	// 10 bytes per line * 5 lines * 2.
	require.Len(t, got[0].Text, 100)
}

func TestBuildRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		alphabet := []rune{'a', 'b', ' ', '\t', '\n', '\r', 0x01, 0x7f, 'é', '世', 0x1b}
		text := rapid.StringOf(rapid.SampledFrom(alphabet)).Draw(t, "text")
		crlf := rapid.Bool().Draw(t, "crlf")

		opts := []document.Option{document.WithBinary(false)}
		if crlf {
			opts = append(opts, document.WithCRLF())
		} else {
			opts = append(opts, document.WithLineEnding(document.LineEndingLF))
		}
		doc := document.FromString(text, opts...)

		tokens := Build(doc, 0, len(text)+1, Options{MaxLineChars: 7})
		if got := reassemble(doc, tokens); got != text {
			t.Fatalf("round trip mismatch: got %q want %q (tokens %v)", got, text, tokens)
		}
		for _, tok := range tokens {
			if tok.Kind == Break && tok.HasOffset {
				t.Fatalf("break with offset: %v", tok)
			}
			if tok.Kind != Break && !tok.HasOffset {
				t.Fatalf("token without offset: %v", tok)
			}
		}
	})
}
