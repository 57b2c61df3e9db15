package highlight

import "strings"

// TokenType is the syntactic category of a run of source text. Themes
// assign a style to each category; the names follow TextMate scopes.
type TokenType uint16

// Token types. Only categories that chroma tokens or theme styles map to
// are listed; finer scopes fall back to their parent through
// TokenTypeFromString.
const (
	TokenNone TokenType = iota

	// Comments
	TokenComment
	TokenCommentLine
	TokenCommentBlock
	TokenCommentDoc

	// Strings
	TokenString
	TokenStringQuoted
	TokenStringInterpolated
	TokenStringRegexp
	TokenStringEscape

	// Numbers
	TokenNumber
	TokenNumberInteger
	TokenNumberFloat
	TokenNumberHex
	TokenNumberOctal
	TokenNumberBinary

	// Keywords
	TokenKeyword
	TokenKeywordOperator
	TokenKeywordOther
	TokenKeywordDeclaration

	// Operators and punctuation
	TokenOperator
	TokenPunctuation
	TokenPunctuationDelimiter

	// Identifiers
	TokenIdentifier
	TokenVariable
	TokenVariableParameter
	TokenVariableOther
	TokenConstant
	TokenConstantLanguage // true, false, nil

	// Functions
	TokenFunction
	TokenFunctionBuiltin

	// Types
	TokenTypeName
	TokenTypeBuiltin
	TokenTypeClass
	TokenTypeParameter

	// Storage
	TokenStorage
	TokenStorageModifier

	// Support
	TokenSupport
	TokenSupportVariable

	// Markup
	TokenMarkupHeading
	TokenMarkupBold
	TokenMarkupItalic
	TokenMarkupUnderline
	TokenMarkupLink
	TokenMarkupCode

	// Invalid
	TokenInvalid
	TokenInvalidDeprecated
	TokenInvalidIllegal

	TokenMeta // preprocessor
	TokenTag
	TokenAttribute
	TokenNamespace
	TokenLabel

	tokenTypeCount
)

// String returns the scope name of the token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// TokenTypeFromString converts a scope name such as "comment.line" or
// "keyword.control.go" to a TokenType, dropping trailing segments until a
// known scope matches.
func TokenTypeFromString(scope string) TokenType {
	for scope != "" {
		if t, ok := scopeToToken[scope]; ok {
			return t
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return TokenNone
}

// tokenTypeNames holds the scope name of every token type.
var tokenTypeNames = []string{
	TokenNone: "none",

	TokenComment:      "comment",
	TokenCommentLine:  "comment.line",
	TokenCommentBlock: "comment.block",
	TokenCommentDoc:   "comment.block.documentation",

	TokenString:             "string",
	TokenStringQuoted:       "string.quoted",
	TokenStringInterpolated: "string.interpolated",
	TokenStringRegexp:       "string.regexp",
	TokenStringEscape:       "string.escape",

	TokenNumber:        "number",
	TokenNumberInteger: "number.integer",
	TokenNumberFloat:   "number.float",
	TokenNumberHex:     "number.hex",
	TokenNumberOctal:   "number.octal",
	TokenNumberBinary:  "number.binary",

	TokenKeyword:            "keyword",
	TokenKeywordOperator:    "keyword.operator",
	TokenKeywordOther:       "keyword.other",
	TokenKeywordDeclaration: "keyword.declaration",

	TokenOperator:             "operator",
	TokenPunctuation:          "punctuation",
	TokenPunctuationDelimiter: "punctuation.delimiter",

	TokenIdentifier:        "identifier",
	TokenVariable:          "variable",
	TokenVariableParameter: "variable.parameter",
	TokenVariableOther:     "variable.other",
	TokenConstant:          "constant",
	TokenConstantLanguage:  "constant.language",

	TokenFunction:        "function",
	TokenFunctionBuiltin: "function.builtin",

	TokenTypeName:      "type",
	TokenTypeBuiltin:   "type.builtin",
	TokenTypeClass:     "type.class",
	TokenTypeParameter: "type.parameter",

	TokenStorage:         "storage",
	TokenStorageModifier: "storage.modifier",

	TokenSupport:         "support",
	TokenSupportVariable: "support.variable",

	TokenMarkupHeading:   "markup.heading",
	TokenMarkupBold:      "markup.bold",
	TokenMarkupItalic:    "markup.italic",
	TokenMarkupUnderline: "markup.underline",
	TokenMarkupLink:      "markup.link",
	TokenMarkupCode:      "markup.code",

	TokenInvalid:           "invalid",
	TokenInvalidDeprecated: "invalid.deprecated",
	TokenInvalidIllegal:    "invalid.illegal",

	TokenMeta:      "meta",
	TokenTag:       "tag",
	TokenAttribute: "attribute",
	TokenNamespace: "namespace",
	TokenLabel:     "label",
}

// scopeToToken is the inverse of tokenTypeNames.
var scopeToToken = func() map[string]TokenType {
	m := make(map[string]TokenType, len(tokenTypeNames))
	for i, name := range tokenTypeNames {
		if name != "" {
			m[name] = TokenType(i)
		}
	}
	return m
}()
