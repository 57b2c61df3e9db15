package core

import (
	"testing"

	"pgregory.net/rapid"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{' ', 1},
		{'\t', 0},
		{0x7F, 0},
		{'世', 2},
		{'한', 2},
		{0x301, 0},
		{'é', 1},
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%U) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestTabWidth(t *testing.T) {
	tests := []struct {
		col, size, want int
	}{
		{0, 8, 8},
		{3, 8, 5},
		{8, 8, 8},
		{1, 4, 3},
		{2, 0, 6},
	}
	for _, tt := range tests {
		if got := TabWidth(tt.col, tt.size); got != tt.want {
			t.Errorf("TabWidth(%d, %d) = %d, want %d", tt.col, tt.size, got, tt.want)
		}
	}
}

func TestVisualWidth(t *testing.T) {
	tests := []struct {
		name string
		s    string
		col  int
		want int
	}{
		{"ascii", "hello", 0, 5},
		{"wide", "世界", 0, 4},
		{"tab at start", "\tx", 0, 9},
		{"tab mid stop", "\t", 5, 3},
		{"escape free", "\x1b[31mred\x1b[0m", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisualWidth(tt.s, tt.col, 8); got != tt.want {
				t.Errorf("VisualWidth(%q, %d) = %d, want %d", tt.s, tt.col, got, tt.want)
			}
		})
	}
}

func TestGraphemes(t *testing.T) {
	got := Graphemes("e\u0301x\U0001F44D\U0001F3FD")
	if len(got) != 3 {
		t.Fatalf("Graphemes = %q, want 3 clusters", got)
	}
	if got[0] != "e\u0301" {
		t.Errorf("first cluster = %q", got[0])
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := Truncate("a世b", 2); got != "a" {
		t.Errorf("Truncate = %q, want %q", got, "a")
	}
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abc" {
		t.Errorf("PadRight truncation = %q", got)
	}
}

func TestPadRightWidthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringOf(rapid.RuneFrom([]rune("ab世 é"))).Draw(t, "s")
		w := rapid.IntRange(0, 20).Draw(t, "w")
		got := StringWidth(PadRight(s, w))
		if got != w {
			t.Fatalf("PadRight(%q, %d) width = %d", s, w, got)
		}
	})
}
