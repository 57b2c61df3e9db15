package viewport

import "github.com/dshills/strata/internal/renderer/core"

// ComposeLayout splits an area into a centered content column and the
// tinted margins on either side.
type ComposeLayout struct {
	Left    core.Rect
	Content core.Rect
	Right   core.Rect
}

// Compose centers a column of target width in area. A target of zero or
// one wider than the area uses the whole area.
func Compose(area core.Rect, target int) ComposeLayout {
	if target <= 0 {
		target = area.Width
	}
	width := max(min(target, area.Width), 1)
	if width >= area.Width {
		return ComposeLayout{Content: area}
	}
	pad := area.Width - width
	left := pad / 2
	return ComposeLayout{
		Left:    core.NewRect(area.X, area.Y, left, area.Height),
		Content: core.NewRect(area.X+left, area.Y, width, area.Height),
		Right:   core.NewRect(area.X+left+width, area.Y, pad-left, area.Height),
	}
}
