package jsonlang

import (
	"github.com/mfroeh/gogram/grammar"
	"github.com/mfroeh/gogram/lang"
)

type (
	synMatch = grammar.RuleMatch[lang.Token, lang.SyntaxNode]
	synCtx   = grammar.Context[lang.Token]
	synRule  = grammar.RuleBuilder[lang.Token, lang.SyntaxNode]
	synAlt   = grammar.ChoiceBuilder[lang.Token, lang.SyntaxNode]
)

// ValueSyntax is the syntax of any JSON value.
type ValueSyntax interface {
	lang.SyntaxNode
	value()
}

// ScalarSyntax is a string, number, boolean or null literal.
type ScalarSyntax struct {
	lang.BaseNode
	Token ScalarToken
}

func (*ScalarSyntax) value() {}

type ArraySyntax struct {
	lang.BaseNode
	Items []ValueSyntax
}

func (*ArraySyntax) value() {}

type ObjectSyntax struct {
	lang.BaseNode
	Properties []*PropertySyntax
}

func (*ObjectSyntax) value() {}

type PropertySyntax struct {
	lang.BaseNode
	Name  *StringToken
	Value ValueSyntax
}

// NewSyntax returns the grammar parsing the tokens of one JSON value. Items
// and properties are parsed as a first element followed by any number of
// comma separated ones.
func NewSyntax() *grammar.Grammar[lang.Token, lang.SyntaxNode] {
	value := grammar.NewRule[lang.Token, lang.SyntaxNode]("value", product("kind"))
	array := grammar.NewRule[lang.Token, lang.SyntaxNode]("array", product("kind"))
	object := grammar.NewRule[lang.Token, lang.SyntaxNode]("object", product("kind"))
	property := grammar.NewRule[lang.Token, lang.SyntaxNode]("property", newProperty)
	propertyList := grammar.NewRule[lang.Token, lang.SyntaxNode]("property-list", list("property", "next-property"))
	itemList := grammar.NewRule[lang.Token, lang.SyntaxNode]("item-list", list("value", "next-item"))

	nextProperty := grammar.BuildRule(grammar.NewRule[lang.Token, lang.SyntaxNode]("next-property", product("property"))).
		State(lang.TokenOf[*CommaToken]("COMMA")).
		RuleRef(property, grammar.Once).
		Rule()
	grammar.BuildRule(propertyList).
		RuleRef(property, grammar.Once).
		RuleRef(nextProperty, grammar.Any)

	nextItem := grammar.BuildRule(grammar.NewRule[lang.Token, lang.SyntaxNode]("next-item", product("value"))).
		State(lang.TokenOf[*CommaToken]("COMMA")).
		RuleRef(value, grammar.Once).
		Rule()
	grammar.BuildRule(itemList).
		RuleRef(value, grammar.Once).
		RuleRef(nextItem, grammar.Any)

	grammar.BuildRule(value).Choice("kind", func(c *synAlt) {
		c.Rule("number-value", newScalar, func(b *synRule) { b.State(lang.TokenOf[*NumberToken]("NUM")) }).
			Rule("string-value", newScalar, func(b *synRule) { b.State(lang.TokenOf[*StringToken]("STR")) }).
			Rule("true-value", newScalar, func(b *synRule) { b.State(lang.TokenOf[*TrueToken]("TRUE")) }).
			Rule("false-value", newScalar, func(b *synRule) { b.State(lang.TokenOf[*FalseToken]("FALSE")) }).
			Rule("null-value", newScalar, func(b *synRule) { b.State(lang.TokenOf[*NullToken]("NULL")) }).
			Add(array, object)
	}, grammar.Once)

	grammar.BuildRule(array).Choice("kind", func(c *synAlt) {
		c.Rule("empty", newArray, func(b *synRule) {
			b.State(lang.TokenOf[*OpenArrayToken]("OPENARR"), lang.TokenOf[*CloseArrayToken]("CLOSEARR"))
		}).
			Rule("non-empty", newArray, func(b *synRule) {
				b.State(lang.TokenOf[*OpenArrayToken]("OPENARR")).
					RuleRef(itemList, grammar.Once).
					State(lang.TokenOf[*CloseArrayToken]("CLOSEARR"))
			})
	}, grammar.Once)

	grammar.BuildRule(object).Choice("kind", func(c *synAlt) {
		c.Rule("empty", newObject, func(b *synRule) {
			b.State(lang.TokenOf[*OpenObjectToken]("OPENOBJ"), lang.TokenOf[*CloseObjectToken]("CLOSEOBJ"))
		}).
			Rule("non-empty", newObject, func(b *synRule) {
				b.State(lang.TokenOf[*OpenObjectToken]("OPENOBJ")).
					RuleRef(propertyList, grammar.Once).
					State(lang.TokenOf[*CloseObjectToken]("CLOSEOBJ"))
			})
	}, grammar.Once)

	grammar.BuildRule(property).
		State(lang.TokenOf[*StringToken]("name"), lang.TokenOf[*ColonToken]("COLON")).
		RuleRef(value, grammar.Once)

	return grammar.NewGrammar("json-syn", value)
}

// product returns a factory passing on the product of the state with the
// given id.
func product(stateID string) grammar.ProductFactory[lang.Token, lang.SyntaxNode] {
	return func(m *synMatch, _ synCtx) lang.SyntaxNode {
		return m.MustState(stateID).MustSingleProduct()
	}
}

// list returns a factory making a list of the product of the head state
// followed by the products of the tail state.
func list(head, tail string) grammar.ProductFactory[lang.Token, lang.SyntaxNode] {
	return func(m *synMatch, _ synCtx) lang.SyntaxNode {
		children := []lang.SyntaxNode{m.MustState(head).MustSingleProduct()}
		if s := m.FindState(tail); s != nil {
			children = append(children, s.Products()...)
		}
		return lang.NewSyntaxList(children...)
	}
}

func newScalar(m *synMatch, ctx synCtx) lang.SyntaxNode {
	states := m.States()
	if len(states) != 1 {
		grammar.Failf("ScalarSyntax: rule %q matched %d states", m.Rule().ID, len(states))
	}
	t, ok := states[0].Input().(ScalarToken)
	if !ok {
		grammar.Failf("ScalarSyntax: %T is not a scalar", states[0].Input())
	}
	return &ScalarSyntax{BaseNode: lang.NewNode(lang.SpanOfTokens(m, ctx), lang.NewTokenSyntax(t)), Token: t}
}

func newArray(m *synMatch, ctx synCtx) lang.SyntaxNode {
	var items []ValueSyntax
	if s := m.FindState("item-list"); s != nil {
		for _, c := range grammar.MustSingleProductAs[*lang.SyntaxList](s).Children() {
			items = append(items, mustValue(c))
		}
	}
	children := make([]lang.SyntaxNode, len(items))
	for i, it := range items {
		children[i] = it
	}
	return &ArraySyntax{BaseNode: lang.NewNode(lang.SpanOfTokens(m, ctx), lang.TokensWith(m, ctx, children...)...), Items: items}
}

func newObject(m *synMatch, ctx synCtx) lang.SyntaxNode {
	var properties []*PropertySyntax
	var children []lang.SyntaxNode
	if s := m.FindState("property-list"); s != nil {
		for _, c := range grammar.MustSingleProductAs[*lang.SyntaxList](s).Children() {
			p, ok := c.(*PropertySyntax)
			if !ok {
				grammar.Failf("ObjectSyntax: %T is not a property", c)
			}
			properties = append(properties, p)
			children = append(children, p)
		}
	}
	return &ObjectSyntax{BaseNode: lang.NewNode(lang.SpanOfTokens(m, ctx), lang.TokensWith(m, ctx, children...)...), Properties: properties}
}

func newProperty(m *synMatch, ctx synCtx) lang.SyntaxNode {
	name, ok := m.MustState("name").Input().(*StringToken)
	if !ok {
		grammar.Failf("PropertySyntax: name is not a string")
	}
	v := mustValue(m.MustState("value").MustSingleProduct())
	return &PropertySyntax{BaseNode: lang.NewNode(lang.SpanOfTokens(m, ctx), lang.TokensWith(m, ctx, v)...), Name: name, Value: v}
}

func mustValue(n lang.SyntaxNode) ValueSyntax {
	v, ok := n.(ValueSyntax)
	if !ok {
		grammar.Failf("%T is not a value", n)
	}
	return v
}
