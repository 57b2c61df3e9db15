package linerender

import (
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/layout"
)

// ResolveCursorFallback places a primary cursor at the end of the buffer
// when the render pass did not. A buffer that ends with a newline puts it
// at the start of the row below the last line; otherwise it sits just
// past the last character.
func ResolveCursorFallback(
	cur *core.ScreenPos,
	primary, bufferLen int,
	endsWithNewline bool,
	last *LastLineEnd,
	linesRendered, gutterWidth int,
) *core.ScreenPos {
	if cur != nil || primary != bufferLen {
		return cur
	}
	if endsWithNewline {
		if last != nil {
			return &core.ScreenPos{X: gutterWidth, Y: last.Pos.Y + 1}
		}
		return &core.ScreenPos{X: gutterWidth, Y: linesRendered}
	}
	if last == nil {
		return nil
	}
	pos := last.Pos
	return &pos
}

// ClampCursor converts an area-relative cursor to screen coordinates,
// keeping it on the last row of the area when it falls below.
func ClampCursor(pos core.ScreenPos, area core.Rect) core.ScreenPos {
	return core.ScreenPos{
		X: area.X + pos.X,
		Y: area.Y + min(pos.Y, max(area.Height-1, 0)),
	}
}

// ScreenToByte maps a content column and row of a rendered pane back to a
// document byte. Columns without a source byte, such as virtual text,
// resolve to the nearest source byte on their left; columns past the text
// resolve to the row's line end.
func ScreenToByte(mappings []LineMapping, col, row int) (int, bool) {
	if row < 0 || row >= len(mappings) || col < 0 {
		return 0, false
	}
	m := mappings[row]
	if col >= len(m.Sources) {
		return m.LineEndByte, true
	}
	for x := col; x >= 0; x-- {
		if s := m.Sources[x]; s != layout.NoSource {
			return s, true
		}
	}
	return m.LineEndByte, true
}
