// Package jsonlang is a JSON language built on the gogram engine. It lexes
// and parses JSON text, builds a semantic tree of the document and encodes
// the tree as XML, YAML or JSON.
package jsonlang

import (
	"github.com/mfroeh/gogram/grammar"
	"github.com/mfroeh/gogram/lang"
)

// NewAnalysis returns the syntax analysis of JSON text. tr may be nil.
func NewAnalysis(tr grammar.Trace) *lang.SyntaxAnalysis {
	return &lang.SyntaxAnalysis{
		Lexer:        lang.LexicalAnalysis{Grammar: NewLexicon()},
		Grammar:      NewSyntax(),
		Preprocessor: NewPreprocessor(),
		Trace:        tr,
	}
}

// Parse analyses src and builds its semantic tree. The value is nil when the
// result has errors.
func Parse(src *lang.Source, tr grammar.Trace) (Value, *lang.Result, error) {
	res, err := NewAnalysis(tr).Run(src)
	if err != nil {
		return nil, nil, err
	}
	if res.HasErrors() || res.Node == nil {
		return nil, res, nil
	}
	v, err := FromSyntax(res.Node)
	if err != nil {
		return nil, res, err
	}
	return v, res, nil
}
