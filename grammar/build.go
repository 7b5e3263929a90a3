package grammar

// ChoiceBuilder adds rules to a choice.
type ChoiceBuilder[TIn, TOut any] struct {
	choice *Choice[TIn, TOut]
}

// Build returns a builder adding to c. Pass &g.Choice to build a grammar.
func Build[TIn, TOut any](c *Choice[TIn, TOut]) *ChoiceBuilder[TIn, TOut] {
	return &ChoiceBuilder[TIn, TOut]{choice: c}
}

// Rule adds a new rule whose states are added by build.
func (b *ChoiceBuilder[TIn, TOut]) Rule(id string, product ProductFactory[TIn, TOut], build func(*RuleBuilder[TIn, TOut])) *ChoiceBuilder[TIn, TOut] {
	b.Define(id, product, build)
	return b
}

// Define is Rule returning the new rule, so that other rules can refer to
// it.
func (b *ChoiceBuilder[TIn, TOut]) Define(id string, product ProductFactory[TIn, TOut], build func(*RuleBuilder[TIn, TOut])) *Rule[TIn, TOut] {
	rule := NewRule(id, product)
	if build != nil {
		build(BuildRule(rule))
	}
	b.choice.Rules = append(b.choice.Rules, rule)
	return rule
}

// Add adds existing rules.
func (b *ChoiceBuilder[TIn, TOut]) Add(rules ...*Rule[TIn, TOut]) *ChoiceBuilder[TIn, TOut] {
	b.choice.Rules = append(b.choice.Rules, rules...)
	return b
}

func (b *ChoiceBuilder[TIn, TOut]) Failure(d *BacktrackLabelDescription[TIn]) *ChoiceBuilder[TIn, TOut] {
	b.choice.Failure = d
	return b
}

func (b *ChoiceBuilder[TIn, TOut]) Choice() *Choice[TIn, TOut] {
	return b.choice
}

// RuleBuilder appends states to a rule.
type RuleBuilder[TIn, TOut any] struct {
	rule *Rule[TIn, TOut]
}

func BuildRule[TIn, TOut any](r *Rule[TIn, TOut]) *RuleBuilder[TIn, TOut] {
	return &RuleBuilder[TIn, TOut]{rule: r}
}

func (b *RuleBuilder[TIn, TOut]) State(states ...*State[TIn, TOut]) *RuleBuilder[TIn, TOut] {
	b.rule.States = append(b.rule.States, states...)
	return b
}

// Group adds a reference to a new rule built in place.
func (b *RuleBuilder[TIn, TOut]) Group(id string, product ProductFactory[TIn, TOut], build func(*RuleBuilder[TIn, TOut]), q Quantifier) *RuleBuilder[TIn, TOut] {
	sub := NewRule(id, product)
	build(BuildRule(sub))
	return b.State(NewRuleRef(id, sub, q, nil))
}

// RuleRef adds a reference to rule with the rule's id as state id.
func (b *RuleBuilder[TIn, TOut]) RuleRef(rule *Rule[TIn, TOut], q Quantifier) *RuleBuilder[TIn, TOut] {
	return b.State(NewRuleRef(rule.ID, rule, q, nil))
}

// NamedRuleRef adds a reference to rule under the state id id, for rules
// referring to the same rule more than once.
func (b *RuleBuilder[TIn, TOut]) NamedRuleRef(id string, rule *Rule[TIn, TOut], q Quantifier) *RuleBuilder[TIn, TOut] {
	return b.State(NewRuleRef(id, rule, q, nil))
}

// Choice adds a reference to a new choice built in place.
func (b *RuleBuilder[TIn, TOut]) Choice(id string, build func(*ChoiceBuilder[TIn, TOut]), q Quantifier) *RuleBuilder[TIn, TOut] {
	c := NewChoice[TIn, TOut](id)
	build(Build(c))
	return b.State(NewChoiceRef(id, c, q, nil))
}

// ChoiceRef adds a reference to an existing choice.
func (b *RuleBuilder[TIn, TOut]) ChoiceRef(id string, c *Choice[TIn, TOut], q Quantifier) *RuleBuilder[TIn, TOut] {
	return b.State(NewChoiceRef(id, c, q, nil))
}

func (b *RuleBuilder[TIn, TOut]) Rule() *Rule[TIn, TOut] {
	return b.rule
}
