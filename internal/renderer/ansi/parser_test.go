package ansi

import (
	"testing"

	"github.com/dshills/strata/internal/renderer/core"
)

// feed runs s through a fresh parser and returns the visible runes with the
// style each was drawn in.
func feed(s string) ([]rune, []core.Style) {
	p := NewParser()
	var runes []rune
	var styles []core.Style
	for _, r := range s {
		if st, ok := p.Parse(r); ok {
			runes = append(runes, r)
			styles = append(styles, st)
		}
	}
	return runes, styles
}

func TestParserConsumesSequences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "abc", "abc"},
		{"sgr", "\x1b[31mred\x1b[0m", "red"},
		{"cursor move", "a\x1b[2Jb", "ab"},
		{"osc bel", "\x1b]0;title\ax", "x"},
		{"osc st", "\x1b]8;;http://x\x1b\\link", "link"},
		{"two char", "\x1b7ok", "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runes, _ := feed(tt.in)
			if string(runes) != tt.want {
				t.Errorf("visible = %q, want %q", string(runes), tt.want)
			}
		})
	}
}

func TestParserSGRStyles(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want core.Style
	}{
		{"basic fg", "\x1b[31mx", core.Style{Foreground: core.ColorFromIndex(1)}},
		{"bright bg", "\x1b[101mx", core.Style{Background: core.ColorFromIndex(9)}},
		{"256 fg", "\x1b[38;5;208mx", core.Style{Foreground: core.ColorFromIndex(208)}},
		{"rgb bg", "\x1b[48;2;10;20;30mx", core.Style{Background: core.ColorFromRGB(10, 20, 30)}},
		{"bold underline", "\x1b[1;4mx", core.Style{Attributes: core.AttrBold | core.AttrUnderline}},
		{"reset", "\x1b[1;31m\x1b[0mx", core.Style{}},
		{"empty params reset", "\x1b[31m\x1b[mx", core.Style{}},
		{"default fg", "\x1b[31;42m\x1b[39mx", core.Style{Background: core.ColorFromIndex(2)}},
		{"bold off", "\x1b[1;3m\x1b[22mx", core.Style{Attributes: core.AttrItalic}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, styles := feed(tt.in)
			if len(styles) != 1 {
				t.Fatalf("expected one visible rune, got %d", len(styles))
			}
			if styles[0] != tt.want {
				t.Errorf("style = %+v, want %+v", styles[0], tt.want)
			}
		})
	}
}

func TestParserInSequenceAndReset(t *testing.T) {
	p := NewParser()
	p.Parse(ESC)
	if !p.InSequence() {
		t.Error("parser should be inside a sequence after ESC")
	}
	for _, r := range "[1m" {
		p.Parse(r)
	}
	if p.InSequence() {
		t.Error("sequence should be complete")
	}
	if !p.Style().Attributes.Has(core.AttrBold) {
		t.Error("expected bold")
	}
	p.Reset()
	if !p.Style().IsEmpty() {
		t.Error("Reset should clear the style")
	}
}

func TestContainsEscape(t *testing.T) {
	if ContainsEscape("plain") {
		t.Error("plain text has no escape")
	}
	if !ContainsEscape("a\x1b[0m") {
		t.Error("expected escape")
	}
}
