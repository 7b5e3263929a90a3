package lang

import (
	"fmt"

	"github.com/mfroeh/gogram/grammar"
)

// SyntaxNode is the product of a parser rule.
type SyntaxNode interface {
	Span() SourceSpan
	Children() []SyntaxNode
}

// BaseNode holds the span and children of a node. Node types of a language
// usually embed it.
type BaseNode struct {
	span     SourceSpan
	children []SyntaxNode
}

func NewNode(span SourceSpan, children ...SyntaxNode) BaseNode {
	return BaseNode{span: span, children: children}
}

func (n *BaseNode) Span() SourceSpan {
	return n.span
}

func (n *BaseNode) Children() []SyntaxNode {
	return n.children
}

// TokenSyntax is a leaf wrapping one token.
type TokenSyntax struct {
	BaseNode
	Token Token
}

func NewTokenSyntax(t Token) *TokenSyntax {
	return &TokenSyntax{BaseNode: NewNode(t.Span()), Token: t}
}

func (n *TokenSyntax) String() string {
	return fmt.Sprintf("TokenSyntax(%s)", n.Token.Name())
}

// TokenSyntaxOf is a product factory for rules matching a single token.
func TokenSyntaxOf(m *grammar.RuleMatch[Token, SyntaxNode], _ grammar.Context[Token]) SyntaxNode {
	states := m.States()
	if len(states) != 1 || states[0].TimesMatched() != 1 {
		grammar.Failf("TokenSyntax: rule %q did not match exactly one token", m.Rule().ID)
	}
	return NewTokenSyntax(states[0].Input())
}

// SyntaxList is a node with one TokenSyntax per token.
type SyntaxList struct {
	BaseNode
}

func NewSyntaxList(children ...SyntaxNode) *SyntaxList {
	spans := make([]SourceSpan, len(children))
	for i, c := range children {
		spans[i] = c.Span()
	}
	return &SyntaxList{BaseNode: NewNode(Union(spans...), children...)}
}

// SyntaxListOf is a product factory wrapping every token a rule matched.
func SyntaxListOf(m *grammar.RuleMatch[Token, SyntaxNode], ctx grammar.Context[Token]) SyntaxNode {
	var children []SyntaxNode
	for _, t := range ctx.Slice(m.StartMarker(), m.EndMarker()) {
		children = append(children, NewTokenSyntax(t))
	}
	return NewSyntaxList(children...)
}

// TokensWith returns the tokens a match over tokens covers, each wrapped in a
// TokenSyntax, with the tokens within the span of one of nodes replaced by
// that node. nodes must be in source order.
func TokensWith(m span[Token], ctx grammar.Context[Token], nodes ...SyntaxNode) []SyntaxNode {
	var children []SyntaxNode
	j, added := 0, false
	for _, t := range ctx.Slice(m.StartMarker(), m.EndMarker()) {
		ts := t.Span()
		if j < len(nodes) && covers(nodes[j].Span(), ts) {
			if !added {
				children = append(children, nodes[j])
				added = true
			}
			if ts.End == nodes[j].Span().End {
				j, added = j+1, false
			}
			continue
		}
		children = append(children, NewTokenSyntax(t))
	}
	if added {
		j++
	}
	return append(children, nodes[j:]...)
}

func covers(outer, inner SourceSpan) bool {
	return !inner.Start.Less(outer.Start) && inner.Start.Less(outer.End)
}

// Walk calls fn for n and all its descendants, depth first. Children of a
// node are skipped when fn returns false for it.
func Walk(n SyntaxNode, fn func(SyntaxNode) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}
