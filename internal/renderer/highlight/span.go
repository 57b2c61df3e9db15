// Package highlight provides themes and the highlight span lists the
// renderer consumes. Computing highlights is done by a Provider outside
// the render pass; the renderer only looks colors up by byte offset.
package highlight

import (
	"sort"

	"github.com/dshills/strata/internal/renderer/core"
)

// Span colors the half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
	Color core.Color
}

// Contains reports whether pos is inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

// Len returns the number of bytes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Spans is a list of non-overlapping spans sorted by Start.
type Spans []Span

// NewSpans sorts spans and drops empty ones. Where two spans overlap the
// earlier one is cut short so the list stays non-overlapping.
func NewSpans(spans []Span) Spans {
	out := make(Spans, 0, len(spans))
	for _, s := range spans {
		if s.End > s.Start {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})

	n := 0
	for i := range out {
		if n > 0 && out[n-1].End > out[i].Start {
			out[n-1].End = out[i].Start
			if out[n-1].End <= out[n-1].Start {
				n--
			}
		}
		out[n] = out[i]
		n++
	}
	return out[:n]
}

// index returns the position of the span containing pos, or -1.
func (s Spans) index(pos int) int {
	i := sort.Search(len(s), func(i int) bool { return s[i].End > pos })
	if i < len(s) && s[i].Start <= pos {
		return i
	}
	return -1
}

// Find returns the span containing pos.
func (s Spans) Find(pos int) (Span, bool) {
	if i := s.index(pos); i >= 0 {
		return s[i], true
	}
	return Span{}, false
}

// ColorAt returns the color of the span containing pos.
func (s Spans) ColorAt(pos int) (core.Color, bool) {
	if i := s.index(pos); i >= 0 {
		return s[i].Color, true
	}
	return core.Color{}, false
}

// StartingAt returns the span that begins exactly at pos.
func (s Spans) StartingAt(pos int) (Span, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].Start >= pos })
	if i < len(s) && s[i].Start == pos {
		return s[i], true
	}
	return Span{}, false
}

// InRange returns the spans overlapping [start, end).
func (s Spans) InRange(start, end int) Spans {
	lo := sort.Search(len(s), func(i int) bool { return s[i].End > start })
	hi := lo
	for hi < len(s) && s[hi].Start < end {
		hi++
	}
	return s[lo:hi]
}

// Provider computes highlight spans for a byte range of a document.
type Provider interface {
	Highlight(src []byte, start, end int) Spans
}
