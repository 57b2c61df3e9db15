package layout

import "sort"

// Layout is the computed display state of one view: its display lines
// plus indexes for converting between document bytes and view positions.
type Layout struct {
	Lines []DisplayLine

	// SourceStart and SourceEnd bound the document bytes the lines cover.
	SourceStart int
	SourceEnd   int

	// firstBytes[i] is the first source byte of line lineOf[i], ascending.
	firstBytes []int
	lineOf     []int
}

// BuildLayout indexes lines that cover [sourceStart, sourceEnd).
func BuildLayout(lines []DisplayLine, sourceStart, sourceEnd int) *Layout {
	l := &Layout{Lines: lines, SourceStart: sourceStart, SourceEnd: sourceEnd}
	for i := range lines {
		if b, ok := lines[i].FirstSource(); ok {
			l.firstBytes = append(l.firstBytes, b)
			l.lineOf = append(l.lineOf, i)
		}
	}
	return l
}

// lineFor returns the index of the last line starting at or before b.
func (l *Layout) lineFor(b int) (int, bool) {
	i := sort.SearchInts(l.firstBytes, b+1) - 1
	if i < 0 {
		return 0, false
	}
	return l.lineOf[i], true
}

// SourceToView returns the display line and visual column of byte b. A
// byte inside a line but not at a character boundary maps to the end of
// that line.
func (l *Layout) SourceToView(b int) (line, col int, ok bool) {
	idx, ok := l.lineFor(b)
	if !ok {
		return 0, 0, false
	}
	dl := &l.Lines[idx]
	for i, s := range dl.Sources {
		if s == b {
			return idx, dl.ColAt(i), true
		}
	}
	return idx, dl.Width(), true
}

// ViewToSource returns the document byte at a view position. Columns past
// the end of the line give the line's last source byte.
func (l *Layout) ViewToSource(line, col int) (int, bool) {
	if line < 0 || line >= len(l.Lines) {
		return 0, false
	}
	dl := &l.Lines[line]
	if col < dl.Width() {
		return dl.SourceAtCol(col)
	}
	return dl.LastSource()
}

// LineSource returns the first source byte of a display line.
func (l *Layout) LineSource(line int) (int, bool) {
	if line < 0 || line >= len(l.Lines) {
		return 0, false
	}
	return l.Lines[line].FirstSource()
}

// NearestLine returns the display line holding byte b, or 0.
func (l *Layout) NearestLine(b int) int {
	idx, ok := l.lineFor(b)
	if !ok {
		return 0
	}
	return min(idx, max(len(l.Lines)-1, 0))
}

// MaxTopLine returns the largest first line that still fills a view of
// the given height.
func (l *Layout) MaxTopLine(height int) int {
	return max(len(l.Lines)-height, 0)
}

// HasContentBelow reports whether the document continues past the lines.
func (l *Layout) HasContentBelow(bufferLen int) bool {
	return l.SourceEnd < bufferLen
}

// InjectedCount returns how many lines carry no line number.
func (l *Layout) InjectedCount() int {
	n := 0
	for i := range l.Lines {
		if !ShouldShowLineNumber(&l.Lines[i]) {
			n++
		}
	}
	return n
}
