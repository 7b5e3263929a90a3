package lang

import (
	"fmt"

	"github.com/mfroeh/gogram/grammar"
)

// Token is the product of a lexer rule.
type Token interface {
	Name() string
	Span() SourceSpan
}

// BaseToken is a named span. Token types of a language usually embed it.
type BaseToken struct {
	name string
	span SourceSpan
}

func NewToken(name string, m *grammar.RuleMatch[rune, Token], ctx grammar.Context[rune]) *BaseToken {
	return &BaseToken{name: name, span: SpanOf(m, ctx)}
}

// TokenFactory returns a product factory creating tokens named name.
func TokenFactory(name string) grammar.ProductFactory[rune, Token] {
	return func(m *grammar.RuleMatch[rune, Token], ctx grammar.Context[rune]) Token {
		return NewToken(name, m, ctx)
	}
}

func (t *BaseToken) Name() string {
	return t.name
}

func (t *BaseToken) Span() SourceSpan {
	return t.span
}

func (t *BaseToken) Text() string {
	return t.span.Text()
}

func (t *BaseToken) String() string {
	return fmt.Sprintf("%s(%q)", t.name, t.span.Text())
}

// ErrorToken covers input skipped by lexical error recovery.
type ErrorToken struct {
	*BaseToken
}

const ErrorTokenName = "LexicalError"

func NewErrorToken(m *grammar.RuleMatch[rune, Token], ctx grammar.Context[rune]) Token {
	return &ErrorToken{NewToken(ErrorTokenName, m, ctx)}
}

// Names returns the names of tokens.
func Names(tokens []Token) []string {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.Name()
	}
	return names
}
