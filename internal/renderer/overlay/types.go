// Package overlay holds decorations that are layered over document text:
// byte-range overlays that restyle existing characters, and virtual text
// that inserts characters or whole lines which are not part of the
// document.
package overlay

import (
	"fmt"

	"github.com/dshills/strata/internal/renderer/core"
)

// FaceKind selects how a Face changes the style underneath it.
type FaceKind uint8

const (
	// FaceUnderline underlines text and sets its foreground.
	FaceUnderline FaceKind = iota
	// FaceBackground sets the background.
	FaceBackground
	// FaceForeground sets the foreground.
	FaceForeground
	// FaceStyle patches a complete style.
	FaceStyle
	// FaceThemed resolves colors from theme keys at render time, using
	// Style as the fallback for keys the theme does not define.
	FaceThemed
)

// String returns the face kind name.
func (k FaceKind) String() string {
	switch k {
	case FaceUnderline:
		return "underline"
	case FaceBackground:
		return "background"
	case FaceForeground:
		return "foreground"
	case FaceStyle:
		return "style"
	case FaceThemed:
		return "themed"
	default:
		return fmt.Sprintf("face(%d)", k)
	}
}

// Face describes the visual effect of an overlay.
type Face struct {
	Kind  FaceKind
	Color core.Color
	Style core.Style
	FgKey string
	BgKey string
}

// Underline returns a face that underlines text in color c.
func Underline(c core.Color) Face {
	return Face{Kind: FaceUnderline, Color: c}
}

// Background returns a face that sets the background.
func Background(c core.Color) Face {
	return Face{Kind: FaceBackground, Color: c}
}

// Foreground returns a face that sets the foreground.
func Foreground(c core.Color) Face {
	return Face{Kind: FaceForeground, Color: c}
}

// StyleFace returns a face that patches s over the text.
func StyleFace(s core.Style) Face {
	return Face{Kind: FaceStyle, Style: s}
}

// Themed returns a face whose colors come from theme keys such as
// "ui.selection_bg". Empty keys leave that channel to the fallback.
func Themed(fallback core.Style, fgKey, bgKey string) Face {
	return Face{Kind: FaceThemed, Style: fallback, FgKey: fgKey, BgKey: bgKey}
}

// Priority orders overlays. Higher priorities are applied later and so win.
type Priority int

const (
	PriorityLow      Priority = 50
	PriorityNormal   Priority = 100
	PriorityHigh     Priority = 150
	PriorityCritical Priority = 200
)

// Overlay restyles the document bytes in [Start, End).
type Overlay struct {
	ID        string
	Namespace string
	Start     int
	End       int
	Face      Face
	Priority  Priority

	// ExtendToLineEnd paints the face's background from the end of the
	// text to the right edge of the pane when line wrapping is off.
	ExtendToLineEnd bool
}

// Contains reports whether byte pos is covered by the overlay.
func (o Overlay) Contains(pos int) bool {
	return pos >= o.Start && pos < o.End
}

// Overlaps reports whether the overlay intersects [start, end).
func (o Overlay) Overlaps(start, end int) bool {
	return o.Start < end && o.End > start
}

// StartsAt reports whether the overlay begins at pos.
func (o Overlay) StartsAt(pos int) bool {
	return o.Start == pos
}
