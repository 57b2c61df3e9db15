package highlight

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/dshills/strata/internal/renderer/core"
)

// DefaultContextBytes is how far before the requested range the chroma
// provider starts lexing so that multi-line constructs are recognized.
const DefaultContextBytes = 16 * 1024

// chromaTokens maps chroma token types to ours. Lookups try the exact
// type, then its sub-category, then its category.
var chromaTokens = map[chroma.TokenType]TokenType{
	chroma.Comment:          TokenComment,
	chroma.CommentSingle:    TokenCommentLine,
	chroma.CommentHashbang:  TokenCommentLine,
	chroma.CommentMultiline: TokenCommentBlock,
	chroma.CommentSpecial:   TokenCommentDoc,
	chroma.CommentPreproc:   TokenMeta,

	chroma.LiteralString:         TokenString,
	chroma.LiteralStringDouble:   TokenStringQuoted,
	chroma.LiteralStringSingle:   TokenStringQuoted,
	chroma.LiteralStringInterpol: TokenStringInterpolated,
	chroma.LiteralStringRegex:    TokenStringRegexp,
	chroma.LiteralStringEscape:   TokenStringEscape,
	chroma.LiteralStringDoc:      TokenCommentDoc,
	chroma.LiteralStringBoolean:  TokenConstantLanguage,

	chroma.LiteralNumber:        TokenNumber,
	chroma.LiteralNumberInteger: TokenNumberInteger,
	chroma.LiteralNumberFloat:   TokenNumberFloat,
	chroma.LiteralNumberHex:     TokenNumberHex,
	chroma.LiteralNumberOct:     TokenNumberOctal,
	chroma.LiteralNumberBin:     TokenNumberBinary,

	chroma.Keyword:            TokenKeyword,
	chroma.KeywordConstant:    TokenConstantLanguage,
	chroma.KeywordDeclaration: TokenKeywordDeclaration,
	chroma.KeywordNamespace:   TokenKeywordOther,
	chroma.KeywordType:        TokenTypeBuiltin,

	chroma.Operator:     TokenOperator,
	chroma.OperatorWord: TokenKeywordOperator,
	chroma.Punctuation:  TokenPunctuation,

	chroma.Name:              TokenIdentifier,
	chroma.NameAttribute:     TokenAttribute,
	chroma.NameClass:         TokenTypeClass,
	chroma.NameConstant:      TokenConstant,
	chroma.NameDecorator:     TokenMeta,
	chroma.NameLabel:         TokenLabel,
	chroma.NameNamespace:     TokenNamespace,
	chroma.NameTag:           TokenTag,
	chroma.NameBuiltin:       TokenFunctionBuiltin,
	chroma.NameVariable:      TokenVariable,
	chroma.NameFunction:      TokenFunction,
	chroma.NameFunctionMagic: TokenFunctionBuiltin,

	chroma.GenericHeading:    TokenMarkupHeading,
	chroma.GenericSubheading: TokenMarkupHeading,
	chroma.GenericStrong:     TokenMarkupBold,
	chroma.GenericEmph:       TokenMarkupItalic,
	chroma.GenericUnderline:  TokenMarkupUnderline,
	chroma.GenericDeleted:    TokenInvalidDeprecated,
	chroma.GenericError:      TokenInvalid,

	chroma.Error: TokenInvalid,
}

// TokenTypeFromChroma converts a chroma token type.
func TokenTypeFromChroma(t chroma.TokenType) TokenType {
	for _, c := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if tt, ok := chromaTokens[c]; ok {
			return tt
		}
	}
	return TokenNone
}

// ChromaProvider computes highlight spans with a chroma lexer and colors
// them from a Theme.
type ChromaProvider struct {
	theme        *Theme
	lexer        chroma.Lexer
	contextBytes int

	mu    sync.Mutex
	cache map[TokenType]core.Color
}

// ChromaOption configures a ChromaProvider.
type ChromaOption func(*ChromaProvider)

// WithContextBytes sets how many bytes before the requested range are
// lexed for context.
func WithContextBytes(n int) ChromaOption {
	return func(p *ChromaProvider) {
		p.contextBytes = max(n, 0)
	}
}

// NewChromaProvider selects a lexer for filename and content. The
// language is detected with enry; chroma's own filename and content
// analysis are the fallbacks.
func NewChromaProvider(theme *Theme, filename string, content []byte, opts ...ChromaOption) *ChromaProvider {
	if theme == nil {
		theme = DefaultTheme()
	}
	p := &ChromaProvider{
		theme:        theme,
		lexer:        chroma.Coalesce(detectLexer(filename, content)),
		contextBytes: DefaultContextBytes,
		cache:        make(map[TokenType]core.Color),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Language returns the name of the selected lexer.
func (p *ChromaProvider) Language() string {
	return p.lexer.Config().Name
}

func detectLexer(filename string, content []byte) chroma.Lexer {
	if lang := enry.GetLanguage(filepath.Base(filename), content); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if filename != "" {
		if l := lexers.Match(filepath.Base(filename)); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(string(content)); l != nil {
		return l
	}
	return lexers.Fallback
}

// Highlight lexes src from a line start before start and returns spans
// clipped to [start, end). Line endings are not normalized, so token
// lengths add up to byte offsets in src.
func (p *ChromaProvider) Highlight(src []byte, start, end int) Spans {
	end = min(end, len(src))
	start = max(start, 0)
	if start >= end {
		return nil
	}

	from := lineStartBefore(src, max(start-p.contextBytes, 0))
	tokens, err := chroma.Tokenise(p.lexer, &chroma.TokeniseOptions{State: "root"}, string(src[from:end]))
	if err != nil {
		return nil
	}

	var spans []Span
	pos := from
	for _, tok := range tokens {
		if pos >= end {
			break
		}
		tokEnd := pos + len(tok.Value)
		if tokEnd > start {
			if c, ok := p.colorFor(tok.Type); ok {
				spans = append(spans, Span{Start: max(pos, start), End: min(tokEnd, end), Color: c})
			}
		}
		pos = tokEnd
	}
	return NewSpans(spans)
}

func (p *ChromaProvider) colorFor(t chroma.TokenType) (core.Color, bool) {
	tt := TokenTypeFromChroma(t)
	if tt == TokenNone {
		return core.Color{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.cache[tt]
	if !ok {
		st, found := p.theme.TokenStyles[tt]
		if found {
			c = st.Foreground
		}
		p.cache[tt] = c
	}
	return c, c.IsSet()
}

func lineStartBefore(src []byte, pos int) int {
	for pos > 0 && src[pos-1] != '\n' {
		pos--
	}
	return pos
}

// ThemeFromChroma builds a theme from a named chroma style. UI colors
// not expressed by chroma styles come from DefaultTheme.
func ThemeFromChroma(name string) (*Theme, error) {
	st, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("chroma style %q: %w", name, ErrThemeNotFound)
	}

	t := DefaultTheme()
	t.Name = name
	bg := st.Get(chroma.Background)
	if c, ok := chromaColor(bg.Colour); ok {
		t.UI.EditorFg = c
	}
	if c, ok := chromaColor(bg.Background); ok {
		t.UI.EditorBg = c
		t.UI.CurrentLineBg = c.Lighten(0.06)
	}
	if c, ok := chromaColor(st.Get(chroma.LineNumbers).Colour); ok {
		t.UI.LineNumberFg = c
	}

	types := make([]chroma.TokenType, 0, len(chromaTokens))
	for ct := range chromaTokens {
		types = append(types, ct)
	}
	slices.Sort(types)

	t.TokenStyles = make(map[TokenType]core.Style, len(chromaTokens))
	for _, ct := range types {
		tt := chromaTokens[ct]
		if _, done := t.TokenStyles[tt]; done {
			continue
		}
		e := st.Get(ct)
		var s core.Style
		if c, ok := chromaColor(e.Colour); ok {
			s.Foreground = c
		}
		if e.Bold == chroma.Yes {
			s = s.Bold()
		}
		if e.Italic == chroma.Yes {
			s = s.Italic()
		}
		if e.Underline == chroma.Yes {
			s = s.Underline()
		}
		t.TokenStyles[tt] = s
	}
	return t, nil
}

func chromaColor(c chroma.Colour) (core.Color, bool) {
	if !c.IsSet() {
		return core.Color{}, false
	}
	return core.ColorFromRGB(c.Red(), c.Green(), c.Blue()), true
}
