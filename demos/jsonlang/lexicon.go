package jsonlang

import (
	"github.com/mfroeh/gogram/grammar"
	"github.com/mfroeh/gogram/lang"
	"github.com/mfroeh/gogram/pattern"
)

type lexRule = grammar.RuleBuilder[rune, lang.Token]

const numberPattern = `[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?`

var hexDigits = []lang.RuneRange{{From: '0', To: '9'}, {From: 'a', To: 'f'}, {From: 'A', To: 'F'}}

// token returns a factory wrapping tokens named name into their type.
func token[T lang.Token](name string, wrap func(*lang.BaseToken) T) grammar.ProductFactory[rune, lang.Token] {
	return func(m *lexMatch, ctx lexCtx) lang.Token {
		return wrap(lang.NewToken(name, m, ctx))
	}
}

// NewLexicon returns the grammar splitting JSON text into tokens.
func NewLexicon() *grammar.Grammar[rune, lang.Token] {
	g := grammar.NewGrammar[rune, lang.Token]("json-lex")
	grammar.Build(&g.Choice).
		Rule("WS", token("WS", func(t *lang.BaseToken) *WhitespaceToken { return &WhitespaceToken{t} }), func(b *lexRule) {
			b.State(lang.CharRange(lang.CharsOf(" \r\n\t"), grammar.AtLeastOnce))
		}).
		Rule("OPENOBJ", token("OPENOBJ", func(t *lang.BaseToken) *OpenObjectToken { return &OpenObjectToken{t} }), func(b *lexRule) {
			b.State(lang.Char('{'))
		}).
		Rule("CLOSEOBJ", token("CLOSEOBJ", func(t *lang.BaseToken) *CloseObjectToken { return &CloseObjectToken{t} }), func(b *lexRule) {
			b.State(lang.Char('}'))
		}).
		Rule("OPENARR", token("OPENARR", func(t *lang.BaseToken) *OpenArrayToken { return &OpenArrayToken{t} }), func(b *lexRule) {
			b.State(lang.Char('['))
		}).
		Rule("CLOSEARR", token("CLOSEARR", func(t *lang.BaseToken) *CloseArrayToken { return &CloseArrayToken{t} }), func(b *lexRule) {
			b.State(lang.Char(']'))
		}).
		Rule("COLON", token("COLON", func(t *lang.BaseToken) *ColonToken { return &ColonToken{t} }), func(b *lexRule) {
			b.State(lang.Char(':'))
		}).
		Rule("COMMA", token("COMMA", func(t *lang.BaseToken) *CommaToken { return &CommaToken{t} }), func(b *lexRule) {
			b.State(lang.Char(','))
		}).
		Add(pattern.MustCompile(numberPattern).Rule("NUM", newNumberToken)).
		Rule("STR", newStringToken, func(b *lexRule) {
			b.State(lang.Char('"')).
				Choice("content", func(c *grammar.ChoiceBuilder[rune, lang.Token]) {
					c.Rule("non-esc-text", token("non-esc-text", func(t *lang.BaseToken) *TextToken { return &TextToken{t} }), func(b *lexRule) {
						b.State(lang.NotCharRange(append(lang.CharsOf(`"\`), lang.RuneRange{From: 0, To: 0x1f}), grammar.AtLeastOnce))
					}).
						Rule("esc-char", newCharEscape, func(b *lexRule) {
							b.State(lang.Char('\\'), lang.AnyChar())
						}).
						Rule("esc-utf16", newHexEscape, func(b *lexRule) {
							b.State(lang.String(`\u`), lang.CharRange(hexDigits, grammar.Exactly(4)))
						})
				}, grammar.Any).
				State(lang.Char('"'))
		}).
		Rule("TRUE", token("TRUE", func(t *lang.BaseToken) *TrueToken { return &TrueToken{t} }), func(b *lexRule) {
			b.State(lang.String("true"))
		}).
		Rule("FALSE", token("FALSE", func(t *lang.BaseToken) *FalseToken { return &FalseToken{t} }), func(b *lexRule) {
			b.State(lang.String("false"))
		}).
		Rule("NULL", token("NULL", func(t *lang.BaseToken) *NullToken { return &NullToken{t} }), func(b *lexRule) {
			b.State(lang.String("null"))
		})
	return g
}

// NewPreprocessor returns the preprocessor dropping whitespace between lexing
// and parsing.
func NewPreprocessor() lang.Preprocessor {
	return lang.DropTokens("WS")
}
