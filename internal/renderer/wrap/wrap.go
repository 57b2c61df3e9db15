// Package wrap inserts soft line breaks into a view token stream so that
// no visual line is wider than the content area.
package wrap

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/strata/internal/renderer/ansi"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/token"
)

// binaryByteWidth is the width of a <XX> escape.
const binaryByteWidth = 4

type wrapper struct {
	width   int
	tabSize int
	col     int
	out     []token.Token

	// pending is set when a split chunk filled the line exactly. The break
	// is emitted lazily so that an existing Break right after it is not
	// doubled.
	pending bool
}

// Apply returns tokens with Break tokens inserted wherever a line would
// exceed width columns. Tokens containing escape sequences are never split
// and text is only split between grapheme clusters. A width below 1 is
// treated as 1. Applying the transform to its own output changes nothing.
func Apply(tokens []token.Token, width, tabSize int) []token.Token {
	w := &wrapper{
		width:   max(width, 1),
		tabSize: tabSize,
		out:     make([]token.Token, 0, len(tokens)+len(tokens)/8),
	}
	for _, t := range tokens {
		w.push(t)
	}
	w.flushPending()
	return w.out
}

func (w *wrapper) flushPending() {
	if w.pending {
		w.out = append(w.out, token.NewBreak())
		w.pending = false
	}
}

func (w *wrapper) lineBreak() {
	w.out = append(w.out, token.NewBreak())
	w.col = 0
}

func (w *wrapper) push(t token.Token) {
	if t.Kind == token.Break {
		w.pending = false
		w.out = append(w.out, t)
		w.col = 0
		return
	}
	w.flushPending()

	switch t.Kind {
	case token.Newline:
		w.out = append(w.out, t)
		w.col = 0

	case token.Space:
		if w.col+1 > w.width {
			w.lineBreak()
		}
		w.out = append(w.out, t)
		w.col++

	case token.BinaryByte:
		if w.col > 0 && w.col+binaryByteWidth > w.width {
			w.lineBreak()
		}
		w.out = append(w.out, t)
		w.col += binaryByteWidth

	case token.Text:
		w.pushText(t)

	default:
		w.out = append(w.out, t)
	}
}

func (w *wrapper) pushText(t token.Token) {
	tw := core.VisualWidth(t.Text, w.col, w.tabSize)
	if w.col > 0 && w.col+tw > w.width {
		w.lineBreak()
		// Tab stops depend on the starting column.
		tw = core.VisualWidth(t.Text, w.col, w.tabSize)
	}

	if tw <= w.width || ansi.ContainsEscape(t.Text) {
		w.out = append(w.out, t)
		w.col += tw
		return
	}
	w.split(t)
}

// split emits t as a sequence of chunks, each filling the remainder of the
// current line.
func (w *wrapper) split(t token.Token) {
	type grapheme struct {
		start int
		text  string
	}
	var graphemes []grapheme
	state := -1
	rest := t.Text
	pos := 0
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		graphemes = append(graphemes, grapheme{start: pos, text: cluster})
		pos += len(cluster)
	}

	for i := 0; i < len(graphemes); {
		remaining := w.width - w.col
		first := core.GraphemeWidth(graphemes[i].text, w.col, w.tabSize)
		if remaining <= 0 || (w.col > 0 && first > remaining) {
			w.lineBreak()
			continue
		}

		chunkWidth := 0
		count := 0
		col := w.col
		for _, g := range graphemes[i:] {
			gw := core.GraphemeWidth(g.text, col, w.tabSize)
			if chunkWidth+gw > remaining && count > 0 {
				break
			}
			chunkWidth += gw
			count++
			col += gw
		}

		start := graphemes[i].start
		end := len(t.Text)
		if i+count < len(graphemes) {
			end = graphemes[i+count].start
		}

		chunk := token.Token{
			Offset:    t.Offset + start,
			HasOffset: t.HasOffset,
			Kind:      token.Text,
			Text:      t.Text[start:end],
			Style:     t.Style,
		}
		w.out = append(w.out, chunk)
		w.col += chunkWidth
		i += count

		if w.col >= w.width {
			w.col = 0
			if i < len(graphemes) {
				w.out = append(w.out, token.NewBreak())
			} else {
				w.pending = true
			}
		}
	}
}
