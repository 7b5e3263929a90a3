package grammar

// ProductFactory builds the product of a validated rule match.
type ProductFactory[TIn, TOut any] func(m *RuleMatch[TIn, TOut], ctx Context[TIn]) TOut

// Rule is a sequence of states with a factory for its product. Rules may
// refer to each other and to themselves. A rule must not change once it is
// matched against.
type Rule[TIn, TOut any] struct {
	ID      string
	States  []*State[TIn, TOut]
	Product ProductFactory[TIn, TOut]
}

func NewRule[TIn, TOut any](id string, product ProductFactory[TIn, TOut], states ...*State[TIn, TOut]) *Rule[TIn, TOut] {
	return &Rule[TIn, TOut]{ID: id, States: states, Product: product}
}

// start returns the index of the first state that can match the current
// symbol when all states before it may be skipped, or -1.
func (r *Rule[TIn, TOut]) start(ctx Context[TIn]) int {
	for i, s := range r.States {
		if s.MatchAhead(ctx) {
			return i
		}
		if !s.quantifier.IsMetBy(0) {
			return -1
		}
	}
	return -1
}

func (r *Rule[TIn, TOut]) MatchAhead(ctx Context[TIn]) bool {
	return r.start(ctx) >= 0
}

// TryMatchStart starts a match at the current symbol, or returns nil if the
// rule cannot start there.
func (r *Rule[TIn, TOut]) TryMatchStart(rd Reader[TIn]) *RuleMatch[TIn, TOut] {
	i := r.start(rd)
	if i < 0 {
		return nil
	}

	m := &RuleMatch[TIn, TOut]{rule: r, start: rd.Mark(), end: rd.Mark()}
	for _, skipped := range r.States[:i] {
		m.states = append(m.states, skipped.CreateMatch(rd, false))
	}
	m.states = append(m.states, r.States[i].CreateMatch(rd, true))

	if tr := rd.Trace(); tr.Enabled() {
		tr.Event("rule started", "rule", r.ID, "at", rd.Mark(), "state", r.States[i].String())
	}
	return m
}

func (r *Rule[TIn, TOut]) String() string {
	return r.ID
}
