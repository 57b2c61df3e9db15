package scrollbar

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/strata/internal/document"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		p          Params
		start, end int
	}{
		{"no height", Params{Total: 10, Viewport: 5}, 0, 0},
		{"fits", Params{Total: 10, Viewport: 20, Height: 10}, 0, 10},
		{"exact fit", Params{Total: 10, Viewport: 10, Height: 10}, 0, 10},
		{"top", Params{Total: 100, Viewport: 10, Height: 10}, 0, 1},
		{"middle", Params{Total: 100, Offset: 45, Viewport: 10, Height: 10}, 4, 5},
		{"bottom", Params{Total: 100, Offset: 90, Viewport: 10, Height: 10}, 9, 10},
		{"past bottom", Params{Total: 100, Offset: 500, Viewport: 10, Height: 10}, 9, 10},
		{"capped size", Params{Total: 20, Offset: 5, Viewport: 15, Height: 10}, 2, 10},
		{"one row track", Params{Total: 100, Offset: 90, Viewport: 10, Height: 1}, 0, 1},
		{"empty content", Params{Viewport: 10, Height: 5}, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Compute(tt.p)
			if start != tt.start || end != tt.end {
				t.Errorf("Compute(%+v) = (%d, %d), want (%d, %d)", tt.p, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestComputeLarge(t *testing.T) {
	tests := []struct {
		top, length, height int
		start, end          int
	}{
		{0, 100, 10, 0, 1},
		{50, 100, 10, 5, 6},
		{100, 100, 10, 9, 10},
		{10, 100, 0, 0, 0},
		{0, 0, 10, 0, 0},
	}
	for _, tt := range tests {
		start, end := ComputeLarge(tt.top, tt.length, tt.height)
		if start != tt.start || end != tt.end {
			t.Errorf("ComputeLarge(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.top, tt.length, tt.height, start, end, tt.start, tt.end)
		}
	}
}

func TestLineCounts(t *testing.T) {
	tests := []struct {
		text       string
		topByte    int
		total, top int
	}{
		{"", 0, 1, 0},
		{"a\nb\nc", 2, 3, 1},
		{"a\nb\n", 4, 2, 0},
		{"a\nb\nc", 5, 3, 0},
	}
	for _, tt := range tests {
		total, top := LineCounts(document.FromString(tt.text), tt.topByte)
		if total != tt.total || top != tt.top {
			t.Errorf("LineCounts(%q, %d) = (%d, %d), want (%d, %d)", tt.text, tt.topByte, total, top, tt.total, tt.top)
		}
	}
}

func TestForDocument(t *testing.T) {
	doc := document.FromString(strings.Repeat("line\n", 100))
	start, end := ForDocument(doc, 5*50, 10, 10)
	require.Equal(t, 5, start)
	require.Equal(t, 6, end)
}

func TestForDocumentLarge(t *testing.T) {
	doc := document.FromString(strings.Repeat("x", LargeFileThreshold+1))
	total, top := LineCounts(doc, 0)
	require.Zero(t, total)
	require.Zero(t, top)

	start, end := ForDocument(doc, doc.Len()*3/4, 10, 10)
	require.Equal(t, 7, start)
	require.Equal(t, 8, end)
}

func TestForDocumentThreshold(t *testing.T) {
	doc := document.FromString(strings.Repeat("line\n", 100))

	// Over the threshold the thumb is one row at the byte ratio.
	start, end := ForDocumentThreshold(doc, doc.Len()/2, 10, 10, 100)
	require.Equal(t, 5, start)
	require.Equal(t, 6, end)

	// Non-positive thresholds fall back to the default.
	start, end = ForDocumentThreshold(doc, 0, 10, 10, 0)
	require.Equal(t, 0, start)
	require.Equal(t, 1, end)
}

func TestForRows(t *testing.T) {
	start, end := ForRows(0, 0, 10, 10)
	require.Zero(t, start)
	require.Zero(t, end)

	start, end = ForRows(40, 30, 10, 10)
	require.Equal(t, 7, start)
	require.Equal(t, 10, end)
}

func TestRenderTrack(t *testing.T) {
	colors := ActiveColors()
	lines := RenderTrack(4, 1, 3, colors)
	require.Len(t, lines, 4)
	want := []core.Color{colors.Track, colors.Thumb, colors.Thumb, colors.Track}
	for i, l := range lines {
		require.Equal(t, " ", l.Text())
		require.Equal(t, want[i], l.Cells()[0].Style.Background, "row %d", i)
	}
	require.Nil(t, RenderTrack(0, 0, 0, colors))
}

func TestColors(t *testing.T) {
	require.Equal(t, Colors{Track: core.ColorDarkGray, Thumb: core.ColorGray}, ActiveColors())
	require.Equal(t, Colors{Track: core.ColorBlack, Thumb: core.ColorDarkGray}, InactiveColors())
	require.Equal(t, ActiveColors(), ThemeColors(nil))

	theme := highlight.DefaultTheme()
	c := ThemeColors(theme)
	require.Equal(t, theme.UI.ScrollbarTrack, c.Track)
	require.Equal(t, theme.UI.ScrollbarThumb, c.Thumb)
}

func TestComputeBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := Params{
			Total:    rapid.IntRange(0, 10000).Draw(t, "total"),
			Offset:   rapid.IntRange(-10, 10000).Draw(t, "offset"),
			Viewport: rapid.IntRange(0, 200).Draw(t, "viewport"),
			Height:   rapid.IntRange(1, 200).Draw(t, "height"),
		}
		start, end := Compute(p)
		if start < 0 || end > p.Height || start >= end {
			t.Fatalf("thumb (%d, %d) outside track of %d", start, end, p.Height)
		}
		if max(p.Total, 1) > p.Viewport {
			limit := max(1, int(math.Floor(maxThumbRatio*float64(p.Height))))
			if end-start > limit {
				t.Fatalf("thumb size %d exceeds %d", end-start, limit)
			}
		} else if start != 0 || end != p.Height {
			t.Fatalf("fitting content got thumb (%d, %d), want full track", start, end)
		}
	})
}
