package core

// ScreenPos is a cell position on screen (0-indexed).
type ScreenPos struct {
	X int
	Y int
}

// Rect is a rectangular screen region.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect creates a rectangle.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: max(width, 0), Height: max(height, 0)}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the position is inside the rectangle.
func (r Rect) Contains(p ScreenPos) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Clamp returns the nearest position inside the rectangle. An empty
// rectangle clamps to its origin.
func (r Rect) Clamp(p ScreenPos) ScreenPos {
	if r.IsEmpty() {
		return ScreenPos{X: r.X, Y: r.Y}
	}
	return ScreenPos{
		X: min(max(p.X, r.X), r.Right()-1),
		Y: min(max(p.Y, r.Y), r.Bottom()-1),
	}
}

// SplitLeft carves a column strip of width w off the left side.
func (r Rect) SplitLeft(w int) (left, rest Rect) {
	w = min(max(w, 0), r.Width)
	left = Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}
	rest = Rect{X: r.X + w, Y: r.Y, Width: r.Width - w, Height: r.Height}
	return left, rest
}
