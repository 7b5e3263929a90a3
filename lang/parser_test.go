package lang

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mfroeh/gogram/grammar"
)

// sumAnalysis parses sums of numbers like "1 + 23 + 4".
func sumAnalysis() *SyntaxAnalysis {
	lexicon := grammar.NewGrammar[rune, Token]("lexicon")
	grammar.Build(&lexicon.Choice).
		Rule("NUM", TokenFactory("NUM"), func(b *grammar.RuleBuilder[rune, Token]) {
			b.State(ClassOf(Digit, grammar.AtLeastOnce))
		}).
		Rule("PLUS", TokenFactory("PLUS"), func(b *grammar.RuleBuilder[rune, Token]) {
			b.State(Char('+'))
		}).
		Rule("WS", TokenFactory("WS"), func(b *grammar.RuleBuilder[rune, Token]) {
			b.State(ClassOf(Whitespace, grammar.AtLeastOnce))
		})

	syntax := grammar.NewGrammar[Token, SyntaxNode]("syntax")
	grammar.Build(&syntax.Choice).
		Rule("SUM", SyntaxListOf, func(b *grammar.RuleBuilder[Token, SyntaxNode]) {
			b.State(TokenNamed("NUM")).
				Group("TERM", SyntaxListOf, func(b *grammar.RuleBuilder[Token, SyntaxNode]) {
					b.State(TokenNamed("PLUS"), TokenNamed("NUM"))
				}, grammar.Any)
		})

	return &SyntaxAnalysis{
		Lexer:        LexicalAnalysis{Grammar: lexicon},
		Grammar:      syntax,
		Preprocessor: DropTokens("WS"),
	}
}

func TestSyntaxAnalysis(t *testing.T) {
	tests := map[string]struct {
		givenInput   string
		wantNode     bool
		wantTokens   []string
		wantMessages []Message
	}{
		"single number": {
			givenInput: "42",
			wantNode:   true,
			wantTokens: []string{"NUM"},
		},
		"sum": {
			givenInput: "1 + 23 +\n4",
			wantNode:   true,
			wantTokens: []string{"NUM", "PLUS", "NUM", "PLUS", "NUM"},
		},
		"empty": {
			givenInput: "",
			wantTokens: []string{},
		},
		"trailing token": {
			givenInput: "1 + 2\n3",
			wantNode:   true,
			wantTokens: []string{"NUM", "PLUS", "NUM", "NUM"},
			wantMessages: []Message{{
				Location: Location{File: "sum.txt", Line: 2, Column: 1},
				Level:    grammar.Error,
				Code:     "LL002",
				Text:     "Unexpected token: '3'",
			}},
		},
		"missing operand": {
			givenInput: "1 +",
			wantTokens: []string{"NUM", "PLUS"},
			wantMessages: []Message{{
				Location: Location{File: "sum.txt", Line: 1, Column: 4},
				Level:    grammar.Error,
				Code:     "LL006",
				Text:     "Unexpected end of input, expected NUM",
			}},
		},
		"lexical error": {
			givenInput: "1 ? 2",
			wantNode:   true,
			wantTokens: []string{"NUM"},
			wantMessages: []Message{{
				Location: Location{File: "sum.txt", Line: 1, Column: 3},
				Level:    grammar.Error,
				Code:     "LL004",
				Text:     "Expected NUM, PLUS or WS, but found: ?",
			}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := sumAnalysis().Run(NewSource("sum.txt", tc.givenInput))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotNode := res.Node != nil; gotNode != tc.wantNode {
				t.Errorf("node: want %v, got %v", tc.wantNode, gotNode)
			}
			if diff := cmp.Diff(tc.wantTokens, Names(res.Tokens)); diff != "" {
				t.Errorf("tokens: got diff (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantMessages, res.Messages); diff != "" {
				t.Errorf("messages: got diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSyntaxListText(t *testing.T) {
	res, err := sumAnalysis().Run(NewSource("sum.txt", "1 + 23"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Node.Span().Text(); got != "1 + 23" {
		t.Errorf("want %q, got %q", "1 + 23", got)
	}
}

type markers struct {
	start, end grammar.Marker[Token]
}

func (m markers) StartMarker() grammar.Marker[Token] { return m.start }
func (m markers) EndMarker() grammar.Marker[Token]   { return m.end }

func TestTokensWith(t *testing.T) {
	src := NewSource("list.txt", "(a,bc,d)")
	var tokens []Token
	for i := range src.Len() {
		tokens = append(tokens, &BaseToken{name: "T", span: SourceSpan{Source: src, Start: grammar.MarkerAt[rune](i), End: grammar.MarkerAt[rune](i + 1)}})
	}
	r := NewTokenReader(tokens, nil)
	node := func(from, to int) SyntaxNode {
		return NewSyntaxList(NewTokenSyntax(tokens[from]), NewTokenSyntax(tokens[to-1]))
	}

	tests := map[string]struct {
		givenNodes []SyntaxNode
		want       []string
	}{
		"no nodes": {
			want: []string{"(", "a", ",", "b", "c", ",", "d", ")"},
		},
		"nodes replace their tokens": {
			givenNodes: []SyntaxNode{node(1, 2), node(3, 5), node(6, 7)},
			want:       []string{"(", "a", ",", "bc", ",", "d", ")"},
		},
		"single node": {
			givenNodes: []SyntaxNode{node(3, 5)},
			want:       []string{"(", "a", ",", "bc", ",", "d", ")"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m := markers{start: grammar.MarkerAt[Token](0), end: grammar.MarkerAt[Token](len(tokens))}
			var got []string
			for _, c := range TokensWith(m, r, tc.givenNodes...) {
				got = append(got, c.Span().Text())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("got diff (-want +got):\n%s", diff)
			}
		})
	}
}
