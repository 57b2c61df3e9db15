package viewport

// MarginConfig holds scroll margin configuration.
type MarginConfig struct {
	Top    int // Lines to keep above cursor
	Bottom int // Lines to keep below cursor
	Left   int // Columns to keep left of cursor
	Right  int // Columns to keep right of cursor
}

// DefaultMargins returns sensible default margins.
func DefaultMargins() MarginConfig {
	return MarginConfig{Top: 5, Bottom: 5, Left: 10, Right: 10}
}

// CompactMargins returns smaller margins for compact views.
func CompactMargins() MarginConfig {
	return MarginConfig{Top: 2, Bottom: 2, Left: 5, Right: 5}
}

// NoMargins returns zero margins (cursor can go to edge).
func NoMargins() MarginConfig {
	return MarginConfig{}
}

// maxMarginRatio limits margins to 1/3 of the viewport dimension so there
// is always usable space in the center.
const maxMarginRatio = 3

// EffectiveMargins returns the margins clamped to the viewport size.
func (v *Viewport) EffectiveMargins() MarginConfig {
	m := v.Margins
	maxVertical := v.Height / maxMarginRatio
	maxHorizontal := v.Width / maxMarginRatio
	return MarginConfig{
		Top:    min(max(m.Top, 0), maxVertical),
		Bottom: min(max(m.Bottom, 0), maxVertical),
		Left:   min(max(m.Left, 0), maxHorizontal),
		Right:  min(max(m.Right, 0), maxHorizontal),
	}
}

// CursorZone represents where the cursor is relative to margins.
type CursorZone uint8

const (
	ZoneCenter       CursorZone = iota // Cursor is in comfortable zone
	ZoneTopMargin                      // Cursor is in top margin
	ZoneBottomMargin                   // Cursor is in bottom margin
	ZoneLeftMargin                     // Cursor is in left margin
	ZoneRightMargin                    // Cursor is in right margin
	ZoneAbove                          // Cursor is above viewport
	ZoneBelow                          // Cursor is below viewport
	ZoneLeft                           // Cursor is left of viewport
	ZoneRight                          // Cursor is right of viewport
)

// CursorZones returns the vertical and horizontal zones of byte pos at
// visual column col.
func (v *Viewport) CursorZones(doc Document, pos, col int) (vertical, horizontal CursorZone) {
	m := v.EffectiveMargins()
	row := lineOf(doc, pos) - v.TopLine(doc)

	switch {
	case row < 0:
		vertical = ZoneAbove
	case row >= v.Height:
		vertical = ZoneBelow
	case row < m.Top:
		vertical = ZoneTopMargin
	case row >= v.Height-m.Bottom:
		vertical = ZoneBottomMargin
	default:
		vertical = ZoneCenter
	}

	if v.LineWrap {
		return vertical, ZoneCenter
	}
	screenCol := col - v.LeftColumn
	switch {
	case screenCol < 0:
		horizontal = ZoneLeft
	case screenCol >= v.Width:
		horizontal = ZoneRight
	case screenCol < m.Left:
		horizontal = ZoneLeftMargin
	case screenCol >= v.Width-m.Right:
		horizontal = ZoneRightMargin
	default:
		horizontal = ZoneCenter
	}
	return vertical, horizontal
}

// NeedsScrollForCursor reports whether the cursor left the comfortable
// zone.
func (v *Viewport) NeedsScrollForCursor(doc Document, pos, col int) bool {
	vz, hz := v.CursorZones(doc, pos, col)
	return vz != ZoneCenter || hz != ZoneCenter
}
