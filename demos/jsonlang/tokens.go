package jsonlang

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/mfroeh/gogram/grammar"
	"github.com/mfroeh/gogram/lang"
)

type (
	lexMatch = grammar.RuleMatch[rune, lang.Token]
	lexCtx   = grammar.Context[rune]
)

// ScalarToken is a token standing for a value on its own.
type ScalarToken interface {
	lang.Token
	// Scalar returns the Go value: a string, a *NumberToken, a bool or nil.
	Scalar() any
}

type WhitespaceToken struct{ *lang.BaseToken }

type OpenObjectToken struct{ *lang.BaseToken }

type CloseObjectToken struct{ *lang.BaseToken }

type OpenArrayToken struct{ *lang.BaseToken }

type CloseArrayToken struct{ *lang.BaseToken }

type ColonToken struct{ *lang.BaseToken }

type CommaToken struct{ *lang.BaseToken }

type TrueToken struct{ *lang.BaseToken }

func (*TrueToken) Scalar() any { return true }

type FalseToken struct{ *lang.BaseToken }

func (*FalseToken) Scalar() any { return false }

type NullToken struct{ *lang.BaseToken }

func (*NullToken) Scalar() any { return nil }

// NumberToken keeps the literal text of a number.
type NumberToken struct {
	*lang.BaseToken
	Literal string
}

func newNumberToken(m *lexMatch, ctx lexCtx) lang.Token {
	t := lang.NewToken("NUM", m, ctx)
	return &NumberToken{BaseToken: t, Literal: strings.TrimPrefix(t.Text(), "+")}
}

func (t *NumberToken) Scalar() any { return t }

// Float64 returns the value of the number. The lexicon only accepts
// literals ParseFloat understands.
func (t *NumberToken) Float64() float64 {
	f, err := strconv.ParseFloat(t.Literal, 64)
	if err != nil {
		return 0
	}
	return f
}

// IsInteger reports whether the literal has neither fraction nor exponent.
func (t *NumberToken) IsInteger() bool {
	return isInteger(t.Literal)
}

func isInteger(literal string) bool {
	return !strings.ContainsAny(literal, ".eE")
}

// StringPart is a piece of the content of a string literal.
type StringPart interface {
	lang.Token
	Unescaped() string
}

type TextToken struct{ *lang.BaseToken }

func (t *TextToken) Unescaped() string {
	return t.Text()
}

// EscapeToken is a backslash escape. Char is the rune it stands for.
type EscapeToken struct {
	*lang.BaseToken
	Char rune
}

func (t *EscapeToken) Unescaped() string {
	return string(t.Char)
}

var escapes = map[rune]rune{
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
}

func newCharEscape(m *lexMatch, ctx lexCtx) lang.Token {
	t := lang.NewToken("escape", m, ctx)
	text := []rune(t.Text())
	if len(text) != 2 || text[0] != '\\' {
		grammar.Failf("EscapeToken: cannot construct from %q", t.Text())
	}
	c, ok := escapes[text[1]]
	if !ok {
		c = text[1]
	}
	return &EscapeToken{BaseToken: t, Char: c}
}

func newHexEscape(m *lexMatch, ctx lexCtx) lang.Token {
	t := lang.NewToken("escape", m, ctx)
	code, err := strconv.ParseUint(strings.TrimPrefix(t.Text(), `\u`), 16, 16)
	if err != nil {
		grammar.Failf("EscapeToken: cannot construct from %q: %v", t.Text(), err)
	}
	return &EscapeToken{BaseToken: t, Char: rune(code)}
}

// StringToken is a string literal and its unescaped value.
type StringToken struct {
	*lang.BaseToken
	Parts []StringPart
	Value string
}

func newStringToken(m *lexMatch, ctx lexCtx) lang.Token {
	var parts []StringPart
	if content := m.FindChoiceByStateID("content"); content != nil {
		for _, p := range content.Products() {
			part, ok := p.(StringPart)
			if !ok {
				grammar.Failf("StringToken: unexpected content %T", p)
			}
			parts = append(parts, part)
		}
	}
	return &StringToken{BaseToken: lang.NewToken("STR", m, ctx), Parts: parts, Value: unescape(parts)}
}

func (t *StringToken) Scalar() any { return t.Value }

// unescape joins the parts, combining escaped surrogate pairs.
func unescape(parts []StringPart) string {
	var sb strings.Builder
	for i := 0; i < len(parts); i++ {
		e, ok := parts[i].(*EscapeToken)
		if ok && utf16.IsSurrogate(e.Char) && i+1 < len(parts) {
			if next, ok := parts[i+1].(*EscapeToken); ok {
				if r := utf16.DecodeRune(e.Char, next.Char); r != unicode.ReplacementChar {
					sb.WriteRune(r)
					i++
					continue
				}
			}
		}
		sb.WriteString(parts[i].Unescaped())
	}
	return sb.String()
}
