// Package scrollbar computes and draws the vertical scrollbar of a pane.
package scrollbar

import (
	"math"

	"github.com/dshills/strata/internal/document"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
)

// LargeFileThreshold is the document size above which the thumb is placed
// by byte ratio instead of by line counts.
const LargeFileThreshold = 1 << 20

// maxThumbRatio caps the thumb at this fraction of the track.
const maxThumbRatio = 0.8

// Params describes the scrolled content in lines (or rows).
type Params struct {
	Total    int
	Offset   int
	Viewport int
	Height   int
}

// Compute returns the thumb rows [start, end) of a track Height rows tall.
// Content that fits the viewport fills the whole track.
func Compute(p Params) (start, end int) {
	h := p.Height
	if h <= 0 {
		return 0, 0
	}
	total := max(p.Total, 1)
	viewport := max(p.Viewport, 0)
	maxScroll := max(total-viewport, 0)

	size := h
	if maxScroll > 0 {
		raw := int(math.Ceil(float64(viewport) / float64(total) * float64(h)))
		size = min(max(raw, 1), int(math.Floor(maxThumbRatio*float64(h))), h)
		size = max(size, 1)
	}

	if maxScroll > 0 {
		offset := min(max(p.Offset, 0), maxScroll)
		start = int(float64(offset) / float64(maxScroll) * float64(h-size))
	}
	return start, start + size
}

// ComputeLarge places a one-row thumb by the ratio of topByte to length.
func ComputeLarge(topByte, length, height int) (start, end int) {
	if height <= 0 || length <= 0 {
		return 0, 0
	}
	top := min(max(topByte, 0), length)
	start = min(int(float64(top)/float64(length)*float64(height)), height-1)
	return start, start + 1
}

// LineCounts returns the total line count of doc and the line at
// topByte, indexing doc as needed. Documents over LargeFileThreshold
// report (0, 0).
func LineCounts(doc *document.Document, topByte int) (total, top int) {
	if doc.Len() > LargeFileThreshold {
		return 0, 0
	}
	return lineCounts(doc, topByte)
}

func lineCounts(doc *document.Document, topByte int) (total, top int) {
	n := doc.Len()
	if n == 0 {
		return 1, 0
	}
	doc.Index(n)
	last, err := doc.LineNumber(n - 1)
	if err != nil {
		return 1, 0
	}
	total = last + 1
	if topByte >= 0 && topByte < n {
		top, _ = doc.LineNumber(topByte)
	}
	return total, top
}

// ForDocument computes the thumb of a pane showing viewport lines of doc
// from topByte, taking the byte-ratio path for large documents.
func ForDocument(doc *document.Document, topByte, viewport, height int) (start, end int) {
	return ForDocumentThreshold(doc, topByte, viewport, height, LargeFileThreshold)
}

// ForDocumentThreshold is ForDocument with a configurable size above
// which the byte-ratio path is taken. A non-positive threshold means
// LargeFileThreshold.
func ForDocumentThreshold(doc *document.Document, topByte, viewport, height, threshold int) (start, end int) {
	if threshold <= 0 {
		threshold = LargeFileThreshold
	}
	if doc.Len() > threshold {
		return ComputeLarge(topByte, doc.Len(), height)
	}
	total, top := lineCounts(doc, topByte)
	return Compute(Params{Total: total, Offset: top, Viewport: viewport, Height: height})
}

// ForRows computes the thumb of a composite view over rows aligned rows.
func ForRows(rows, scrollRow, viewport, height int) (start, end int) {
	if rows <= 0 {
		return 0, 0
	}
	return Compute(Params{Total: rows, Offset: scrollRow, Viewport: viewport, Height: height})
}

// Colors are the track and thumb backgrounds.
type Colors struct {
	Track core.Color
	Thumb core.Color
}

// ActiveColors are used for the focused pane.
func ActiveColors() Colors {
	return Colors{Track: core.ColorDarkGray, Thumb: core.ColorGray}
}

// InactiveColors are used for other panes.
func InactiveColors() Colors {
	return Colors{Track: core.ColorBlack, Thumb: core.ColorDarkGray}
}

// ThemeColors takes the colors from a theme, falling back to the active
// defaults for unset entries.
func ThemeColors(t *highlight.Theme) Colors {
	c := ActiveColors()
	if t == nil {
		return c
	}
	c.Track = t.UI.ScrollbarTrack.Or(c.Track)
	c.Thumb = t.UI.ScrollbarThumb.Or(c.Thumb)
	return c
}

// RenderTrack returns one single-cell line per track row.
func RenderTrack(height, start, end int, colors Colors) []core.Line {
	if height <= 0 {
		return nil
	}
	lines := make([]core.Line, height)
	for row := range lines {
		bg := colors.Track
		if row >= start && row < end {
			bg = colors.Thumb
		}
		lines[row].Push(" ", core.Style{Background: bg})
	}
	return lines
}
