package lang

import (
	"fmt"
	"iter"
	"slices"

	"github.com/mfroeh/gogram/grammar"
)

// Preprocessor filters or rewrites the tokens between lexing and parsing.
type Preprocessor func(iter.Seq[Token]) iter.Seq[Token]

// DropTokens returns a preprocessor removing tokens with the given names.
func DropTokens(names ...string) Preprocessor {
	return func(tokens iter.Seq[Token]) iter.Seq[Token] {
		return func(yield func(Token) bool) {
			for t := range tokens {
				if slices.Contains(names, t.Name()) {
					continue
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// SyntaxAnalysis lexes a source and parses the tokens into one node.
type SyntaxAnalysis struct {
	Lexer        LexicalAnalysis
	Grammar      *grammar.Grammar[Token, SyntaxNode]
	Preprocessor Preprocessor
	Trace        grammar.Trace
}

// Result is the outcome of a SyntaxAnalysis run.
type Result struct {
	// Node is nil if no rule matched the tokens.
	Node SyntaxNode
	// Tokens are the tokens after preprocessing.
	Tokens   []Token
	Messages []Message
}

// HasErrors reports whether any message is an error.
func (r *Result) HasErrors() bool {
	for _, m := range r.Messages {
		if m.Level == grammar.Error {
			return true
		}
	}
	return false
}

// Run analyses src. The error is reserved for structural errors of the
// grammars; problems of the input are reported as messages.
func (a *SyntaxAnalysis) Run(src *Source) (*Result, error) {
	tr := a.Trace
	if tr == nil {
		tr = grammar.NopTrace
	}
	span := tr.Span("syntax analysis", "source", src.Path)
	defer span.End()

	sr := NewSourceReader(src, tr)
	var lexErr error
	var lexed iter.Seq[Token] = func(yield func(Token) bool) {
		for t, err := range a.Lexer.RunToEnd(sr) {
			if err != nil {
				lexErr = err
				return
			}
			if !yield(t) {
				return
			}
		}
	}
	if a.Preprocessor != nil {
		lexed = a.Preprocessor(lexed)
	}
	tokens := slices.Collect(lexed)
	if lexErr != nil {
		return nil, fmt.Errorf("lexing %s: %w", src.Path, lexErr)
	}
	tr.Event(fmt.Sprintf("%d token(s) after preprocess", len(tokens)))

	r := NewTokenReader(tokens, tr)
	node, err := a.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src.Path, err)
	}
	return &Result{
		Node:     node,
		Tokens:   tokens,
		Messages: append(messages[rune](sr), messages[Token](r)...),
	}, nil
}

// Parse runs the syntax grammar once over r and reports the failure, if
// any, through the diagnostics of r.
func (a *SyntaxAnalysis) Parse(r *TokenReader) (SyntaxNode, error) {
	product, err := grammar.RunOnce(a.Grammar, r)
	if err != nil {
		return nil, err
	}

	node, ok := product.Get()
	diagnostics := r.Diagnostics()
	switch {
	case !ok && r.Len() == 0:
	case !ok || r.HasInput():
		if !diagnostics.CheckForFailures(r) {
			emitAt(r, UnexpectedToken)
		}
	default:
		diagnostics.DiscardBacktrackLabels()
	}
	return node, nil
}
