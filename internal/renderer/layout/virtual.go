package layout

import (
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/overlay"
)

// VirtualLineSource supplies whole-line virtual text for a byte range.
type VirtualLineSource interface {
	LinesInRange(start, end int) []overlay.VirtualText
}

// VirtualLine builds a display line for injected text. It has no source
// bytes, carries style on every character and is never numbered.
func VirtualLine(text string, style core.Style) DisplayLine {
	line := DisplayLine{Start: AfterInjectedNewline, EndsWithNewline: true}
	st := style
	for _, r := range text {
		line.add(r, NoSource, &st, core.RuneWidth(r))
	}
	return line
}

// InjectVirtualLines splices LineAbove and LineBelow virtual text around
// the display lines whose source range holds the anchor. A line's range
// runs from its first source byte to one past its last.
func InjectVirtualLines(lines []DisplayLine, src VirtualLineSource) []DisplayLine {
	if src == nil || len(lines) == 0 {
		return lines
	}

	start, _ := lines[0].FirstSource()
	end := start
	if last, ok := lines[len(lines)-1].LastSource(); ok {
		end = last + 1
	}
	virtual := src.LinesInRange(start, end)
	if len(virtual) == 0 {
		return lines
	}

	out := make([]DisplayLine, 0, len(lines)+len(virtual))
	for _, line := range lines {
		first, okFirst := line.FirstSource()
		last, okLast := line.LastSource()
		if !okFirst || !okLast {
			out = append(out, line)
			continue
		}
		lineEnd := last + 1

		for _, vt := range virtual {
			if vt.Position == overlay.LineAbove && vt.Anchor >= first && vt.Anchor < lineEnd {
				out = append(out, VirtualLine(vt.Text, vt.Style))
			}
		}
		out = append(out, line)
		for _, vt := range virtual {
			if vt.Position == overlay.LineBelow && vt.Anchor >= first && vt.Anchor < lineEnd {
				out = append(out, VirtualLine(vt.Text, vt.Style))
			}
		}
	}
	return out
}

// ViewAnchor returns the index of the display line to draw first for a
// view scrolled to topByte: the first line whose first source byte is at
// or after topByte, moved back over any directly preceding lines that
// have no source bytes at all (injected headers). It returns 0 when no
// line qualifies.
func ViewAnchor(lines []DisplayLine, topByte int) int {
	for i := range lines {
		first, ok := lines[i].FirstSource()
		if !ok || first < topByte {
			continue
		}
		for i > 0 && !lines[i-1].HasSource() {
			i--
		}
		return i
	}
	return 0
}
