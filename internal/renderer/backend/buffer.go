package backend

import (
	"github.com/dshills/strata/internal/renderer/core"
)

// ScreenBuffer provides double-buffered rendering with change tracking.
// Drawing goes to the back buffer; Flush sends only the cells that differ
// from the front buffer.
type ScreenBuffer struct {
	width, height int
	front         [][]core.Cell
	back          [][]core.Cell
	fullRedraw    bool
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{width: max(width, 0), height: max(height, 0), fullRedraw: true}
	sb.front = blankGrid(sb.width, sb.height)
	sb.back = blankGrid(sb.width, sb.height)
	return sb
}

// Resize resizes the buffer, preserving content where possible.
func (sb *ScreenBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == sb.width && height == sb.height {
		return
	}
	oldBack := sb.back
	copyWidth := min(sb.width, width)
	copyHeight := min(sb.height, height)

	sb.width, sb.height = width, height
	sb.front = blankGrid(width, height)
	sb.back = blankGrid(width, height)
	for y := 0; y < copyHeight; y++ {
		copy(sb.back[y][:copyWidth], oldBack[y][:copyWidth])
	}
	sb.fullRedraw = true
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() (width, height int) {
	return sb.width, sb.height
}

// SetCell sets a cell in the back buffer.
func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return
	}
	sb.back[y][x] = cell
}

// Cell returns a cell from the back buffer.
func (sb *ScreenBuffer) Cell(x, y int) core.Cell {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return core.EmptyCell()
	}
	return sb.back[y][x]
}

// Fill fills a rectangle with the given cell.
func (sb *ScreenBuffer) Fill(rect core.Rect, cell core.Cell) {
	for y := max(rect.Y, 0); y < rect.Bottom() && y < sb.height; y++ {
		for x := max(rect.X, 0); x < rect.Right() && x < sb.width; x++ {
			sb.back[y][x] = cell
		}
	}
}

// Clear clears the back buffer with empty cells.
func (sb *ScreenBuffer) Clear() {
	sb.Fill(core.NewRect(0, 0, sb.width, sb.height), core.EmptyCell())
}

// DrawLine draws a styled line at (x, y), clipped to width cells. The
// rest of the width is filled with blanks in the line's last background.
// A wide character that would straddle the clip edge is replaced by a
// blank.
func (sb *ScreenBuffer) DrawLine(x, y, width int, line core.Line) {
	if y < 0 || y >= sb.height || width <= 0 {
		return
	}
	cells := line.Cells()
	col := 0
	var last core.Style
	for i := 0; i < len(cells) && col < width; i++ {
		c := cells[i]
		last = c.Style
		if c.Width == 2 && col+1 >= width {
			sb.SetCell(x+col, y, core.Cell{Rune: ' ', Width: 1, Style: c.Style})
			col++
			break
		}
		sb.SetCell(x+col, y, c)
		col++
	}
	blank := core.Cell{Rune: ' ', Width: 1, Style: core.Style{Background: last.Background}}
	for ; col < width; col++ {
		sb.SetCell(x+col, y, blank)
	}
}

// DrawLines draws one line per row of area.
func (sb *ScreenBuffer) DrawLines(area core.Rect, lines []core.Line) {
	for row := 0; row < area.Height; row++ {
		var line core.Line
		if row < len(lines) {
			line = lines[row]
		}
		sb.DrawLine(area.X, area.Y+row, area.Width, line)
	}
}

// DiffChange is one cell that differs from the display.
type DiffChange struct {
	X, Y int
	Cell core.Cell
}

// ComputeDiff returns the cells that changed since the last Sync.
func (sb *ScreenBuffer) ComputeDiff() []DiffChange {
	var changes []DiffChange
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			if sb.fullRedraw || !sb.back[y][x].Equals(sb.front[y][x]) {
				changes = append(changes, DiffChange{X: x, Y: y, Cell: sb.back[y][x]})
			}
		}
	}
	return changes
}

// Sync copies the back buffer to the front buffer.
func (sb *ScreenBuffer) Sync() {
	for y := range sb.back {
		copy(sb.front[y], sb.back[y])
	}
	sb.fullRedraw = false
}

// MarkFullRedraw forces a complete redraw on next sync.
func (sb *ScreenBuffer) MarkFullRedraw() {
	sb.fullRedraw = true
}

// IsDirty reports whether a flush would send anything.
func (sb *ScreenBuffer) IsDirty() bool {
	if sb.fullRedraw {
		return true
	}
	for y := range sb.back {
		for x := range sb.back[y] {
			if !sb.back[y][x].Equals(sb.front[y][x]) {
				return true
			}
		}
	}
	return false
}

// Screen pairs a backend with a screen buffer.
type Screen struct {
	backend Backend
	buffer  *ScreenBuffer
	cursor  *core.ScreenPos
}

// NewScreen wraps an initialized backend.
func NewScreen(b Backend) *Screen {
	w, h := b.Size()
	return &Screen{backend: b, buffer: NewScreenBuffer(w, h)}
}

// Buffer returns the back buffer to draw into.
func (s *Screen) Buffer() *ScreenBuffer {
	return s.buffer
}

// Resize follows a terminal resize.
func (s *Screen) Resize(width, height int) {
	s.buffer.Resize(width, height)
}

// SetCursor sets the hardware cursor for the next flush; nil hides it.
func (s *Screen) SetCursor(pos *core.ScreenPos) {
	s.cursor = pos
}

// Flush sends the changed cells and the cursor to the backend and
// returns how many cells were sent.
func (s *Screen) Flush() int {
	changes := s.buffer.ComputeDiff()
	for _, c := range changes {
		s.backend.SetCell(c.X, c.Y, c.Cell)
	}
	s.buffer.Sync()
	if s.cursor != nil {
		s.backend.ShowCursor(s.cursor.X, s.cursor.Y)
	} else {
		s.backend.HideCursor()
	}
	s.backend.Show()
	return len(changes)
}
