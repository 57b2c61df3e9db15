package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/strata/internal/renderer/highlight"
)

func TestRenderWidth(t *testing.T) {
	s := New("VIEW")
	s.SetFilename("main.go")
	s.SetPosition(3, 7)
	s.SetTotalLines(120)
	s.SetScrollPercent(40)

	for _, width := range []int{0, 1, 4, 10, 30, 80} {
		if got := s.Render(width, nil).Width(); got != width {
			t.Errorf("Render(%d).Width() = %d", width, got)
		}
	}
}

func TestRenderContent(t *testing.T) {
	s := New("VIEW")
	s.SetFilename("main.go")
	s.SetWatching(true)
	s.SetPosition(3, 7)
	s.SetTotalLines(120)
	s.SetScrollPercent(40)

	text := s.Render(60, highlight.DefaultTheme()).Text()
	if !strings.HasPrefix(text, " VIEW  main.go [watch]") {
		t.Errorf("left side = %q", text)
	}
	if !strings.HasSuffix(text, "Ln 3/120, Col 7 | 40% ") {
		t.Errorf("right side = %q", text)
	}
}

func TestFormatPosition(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		want    string
	}{
		{"top", 0, "Ln 1, Col 1 | Top"},
		{"bottom", 100, "Ln 1, Col 1 | Bot"},
		{"middle", 55, "Ln 1, Col 1 | 55%"},
		{"clamped", 250, "Ln 1, Col 1 | Bot"},
	}
	for _, tt := range tests {
		s := New("VIEW")
		s.SetScrollPercent(tt.percent)
		if got := s.formatPosition(); got != tt.want {
			t.Errorf("%s: formatPosition() = %q, want %q", tt.name, got, tt.want)
		}
	}

	if got := New("VIEW").formatPosition(); got != "Ln 1, Col 1" {
		t.Errorf("unset percent = %q", got)
	}
}

func TestMessageReplacesBar(t *testing.T) {
	theme := highlight.DefaultTheme()
	s := New("VIEW")
	s.SetMessage("reload failed", MessageError)

	l := s.Render(20, theme)
	if got := l.Text(); got != "reload failed       " {
		t.Errorf("message row = %q", got)
	}
	if fg := l.Spans[0].Style.Foreground; fg != theme.UI.DiagnosticError {
		t.Errorf("error foreground = %v", fg)
	}

	s.ClearMessage()
	if msg, typ := s.Message(); msg != "" || typ != MessageNone {
		t.Errorf("after ClearMessage = %q, %v", msg, typ)
	}
	if !strings.HasPrefix(s.Render(20, theme).Text(), " VIEW ") {
		t.Error("bar should return after ClearMessage")
	}
}

func TestNoName(t *testing.T) {
	if got := New("DIFF").Render(40, nil).Text(); !strings.Contains(got, "[No Name]") {
		t.Errorf("row = %q", got)
	}
}
