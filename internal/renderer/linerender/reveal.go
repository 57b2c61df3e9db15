package linerender

import (
	"fmt"

	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/overlay"
)

// tagStyle is the style of reveal-codes tags.
var tagStyle = core.NewStyle(core.ColorDarkGray).Dim()

// faceTag is the short name of a face kind used in reveal-codes tags.
func faceTag(k overlay.FaceKind) string {
	switch k {
	case overlay.FaceUnderline:
		return "ul"
	case overlay.FaceBackground:
		return "bg"
	case overlay.FaceForeground:
		return "fg"
	case overlay.FaceStyle:
		return "st"
	default:
		return "ts"
	}
}

// revealTracker emits the opening and closing tags of highlight spans and
// overlays in reveal-codes mode.
type revealTracker struct {
	highlight *highlight.Span
	overlays  []int // end bytes of open overlays
}

func (t *revealTracker) open(pos int, spans highlight.Spans, overlays []overlay.Overlay) []string {
	var tags []string
	if sp, ok := spans.StartingAt(pos); ok {
		tags = append(tags, fmt.Sprintf("<hl:%d-%d>", sp.Start, sp.End))
		t.highlight = &sp
	}
	for _, o := range overlays {
		if o.Start == pos {
			tags = append(tags, fmt.Sprintf("<%s:%d-%d>", faceTag(o.Face.Kind), o.Start, o.End))
			t.overlays = append(t.overlays, o.End)
		}
	}
	return tags
}

// close returns the tags of everything that ends at or before next.
func (t *revealTracker) close(next int) []string {
	var tags []string
	if t.highlight != nil && next >= t.highlight.End {
		tags = append(tags, "</hl>")
		t.highlight = nil
	}
	kept := t.overlays[:0]
	for _, end := range t.overlays {
		if next >= end {
			tags = append(tags, "</ov>")
			continue
		}
		kept = append(kept, end)
	}
	t.overlays = kept
	return tags
}
