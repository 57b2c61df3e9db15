package highlight

import (
	"errors"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/require"
)

func TestTokenTypeFromChroma(t *testing.T) {
	tests := []struct {
		in   chroma.TokenType
		want TokenType
	}{
		{chroma.CommentSingle, TokenCommentLine},
		{chroma.CommentPreprocFile, TokenMeta},
		{chroma.LiteralStringHeredoc, TokenString},
		{chroma.LiteralNumberIntegerLong, TokenNumber},
		{chroma.KeywordReserved, TokenKeyword},
		{chroma.NameFunction, TokenFunction},
		{chroma.NameVariableGlobal, TokenVariable},
		{chroma.Text, TokenNone},
	}
	for _, tt := range tests {
		if got := TokenTypeFromChroma(tt.in); got != tt.want {
			t.Errorf("TokenTypeFromChroma(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestChromaProviderGo(t *testing.T) {
	src := []byte("package main\n// hi\n")
	theme := DefaultTheme()
	p := NewChromaProvider(theme, "main.go", src)
	require.Equal(t, "Go", p.Language())

	spans := p.Highlight(src, 0, len(src))
	c, ok := spans.ColorAt(0)
	require.True(t, ok)
	require.Equal(t, theme.TokenStyles[TokenKeyword].Foreground, c)

	c, ok = spans.ColorAt(14)
	require.True(t, ok)
	require.Equal(t, theme.TokenStyles[TokenComment].Foreground, c)
}

func TestChromaProviderClipsToRange(t *testing.T) {
	src := []byte("package main\n// hi\nfunc f() {}\n")
	p := NewChromaProvider(nil, "main.go", src)

	spans := p.Highlight(src, 13, 18)
	require.NotEmpty(t, spans)
	for _, s := range spans {
		if s.Start < 13 || s.End > 18 {
			t.Errorf("span %+v outside [13, 18)", s)
		}
	}
	require.Empty(t, p.Highlight(src, 10, 10))
}

func TestChromaProviderKeepsCRLFOffsets(t *testing.T) {
	src := []byte("package main\r\n// hi\r\n")
	theme := DefaultTheme()
	p := NewChromaProvider(theme, "main.go", src)

	spans := p.Highlight(src, 0, len(src))
	c, ok := spans.ColorAt(14)
	require.True(t, ok)
	require.Equal(t, theme.TokenStyles[TokenComment].Foreground, c)
}

func TestThemeFromChroma(t *testing.T) {
	theme, err := ThemeFromChroma("monokai")
	require.NoError(t, err)
	require.Equal(t, "monokai", theme.Name)
	require.True(t, theme.UI.EditorBg.IsSet())
	require.True(t, theme.TokenStyles[TokenKeyword].Foreground.IsSet())

	_, err = ThemeFromChroma("no-such-style")
	require.True(t, errors.Is(err, ErrThemeNotFound))
}
