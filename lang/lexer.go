package lang

import (
	"fmt"
	"iter"

	"github.com/mfroeh/gogram/grammar"
)

// LexicalAnalysis splits a source into tokens by running Grammar once per
// token.
type LexicalAnalysis struct {
	Grammar *grammar.Grammar[rune, Token]
	// Recovery, if set, is matched where Grammar fails. Each recovered region
	// yields the recovery rule's token and reports the failure.
	Recovery *grammar.Rule[rune, Token]
}

// RunToEnd returns the tokens of the source r reads. Lexing stops at the
// first region no rule matches; the failure is reported through the
// diagnostics of r. The error is set only for structural errors of the
// grammar and ends the sequence.
func (a *LexicalAnalysis) RunToEnd(r *SourceReader) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		tr := r.Trace()
		span := tr.Span("lexical analysis", "source", r.Source().Path)
		count := 0
		defer func() {
			span.End("tokens", count)
		}()

		for !r.IsEndOfInput() {
			t, ok, err := a.next(r)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				break
			}
			count++
			if !yield(t, nil) {
				return
			}
		}

		diagnostics := r.Diagnostics()
		if r.IsEndOfInput() {
			diagnostics.DiscardBacktrackLabels()
		} else if !diagnostics.CheckForFailures(r) {
			emitAt(r, UnexpectedCharacter)
		}
		tr.Event(fmt.Sprintf("Lexer scan complete, %d token(s)", count))
	}
}

func (a *LexicalAnalysis) next(r *SourceReader) (Token, bool, error) {
	if a.Recovery == nil {
		t, err := grammar.RunOnce(a.Grammar, r)
		if err != nil {
			return nil, false, err
		}
		v, ok := t.Get()
		return v, ok, nil
	}

	t, recovered, err := grammar.RunOnceRecovering(a.Grammar, a.Recovery, r)
	if err != nil {
		return nil, false, err
	}
	v, ok := t.Get()
	if ok && recovered {
		a.report(r, v)
	}
	return v, ok, nil
}

// report turns the furthest failure before a recovered region into a
// diagnostic, or reports the first character of the region.
func (a *LexicalAnalysis) report(r *SourceReader, t Token) {
	if r.Diagnostics().CheckForFailures(r) {
		return
	}
	end := r.Mark()
	r.Seek(t.Span().Start)
	emitAt(r, UnexpectedCharacter)
	r.Seek(end)
}

// Lex returns all tokens of src and the lexical diagnostics.
func (a *LexicalAnalysis) Lex(src *Source, tr grammar.Trace) ([]Token, []Message, error) {
	r := NewSourceReader(src, tr)
	var tokens []Token
	for t, err := range a.RunToEnd(r) {
		if err != nil {
			return nil, nil, fmt.Errorf("lexing %s: %w", src.Path, err)
		}
		tokens = append(tokens, t)
	}
	return tokens, messages[rune](r), nil
}
