package grammar

import "fmt"

// Predicate tests the current symbol of ctx.
type Predicate[T any] func(ctx Context[T]) bool

// State is one step of a rule: a test of the current symbol, a reference to
// a rule or a reference to a choice. It repeats as its quantifier allows.
type State[TIn, TOut any] struct {
	id         string
	quantifier Quantifier
	failure    *BacktrackLabelDescription[TIn]
	// Predicate[TIn], *Rule[TIn, TOut] or *Choice[TIn, TOut]
	kind any
}

// NewState returns a state testing each symbol with test.
func NewState[TIn, TOut any](id string, test Predicate[TIn], q Quantifier, failure *BacktrackLabelDescription[TIn]) *State[TIn, TOut] {
	if failure == nil {
		failure = DefaultLabelDescription[TIn]()
	}
	return &State[TIn, TOut]{id: id, quantifier: q, failure: failure, kind: test}
}

// NewRuleRef returns a state matching rule, once per repetition.
func NewRuleRef[TIn, TOut any](id string, rule *Rule[TIn, TOut], q Quantifier, failure *BacktrackLabelDescription[TIn]) *State[TIn, TOut] {
	if failure == nil {
		failure = NewLabelDescription("LL003", func(d *Diagnostic[TIn]) string {
			return fmt.Sprintf("Expected %s, but found: '%s'", rule.ID, d.Found())
		})
	}
	return &State[TIn, TOut]{id: id, quantifier: q, failure: failure, kind: rule}
}

// NewChoiceRef returns a state matching one alternative of choice per
// repetition.
func NewChoiceRef[TIn, TOut any](id string, choice *Choice[TIn, TOut], q Quantifier, failure *BacktrackLabelDescription[TIn]) *State[TIn, TOut] {
	if failure == nil {
		failure = choice.FailureDescription()
	}
	return &State[TIn, TOut]{id: id, quantifier: q, failure: failure, kind: choice}
}

func (s *State[TIn, TOut]) ID() string {
	return s.id
}

func (s *State[TIn, TOut]) Quantifier() Quantifier {
	return s.quantifier
}

func (s *State[TIn, TOut]) FailureDescription() *BacktrackLabelDescription[TIn] {
	return s.failure
}

// Rule returns the referenced rule of a rule reference.
func (s *State[TIn, TOut]) Rule() (*Rule[TIn, TOut], bool) {
	r, ok := s.kind.(*Rule[TIn, TOut])
	return r, ok
}

// Choice returns the referenced choice of a choice reference.
func (s *State[TIn, TOut]) Choice() (*Choice[TIn, TOut], bool) {
	c, ok := s.kind.(*Choice[TIn, TOut])
	return c, ok
}

// MatchAhead reports whether a match of s could start at the current
// symbol. It changes nothing.
func (s *State[TIn, TOut]) MatchAhead(ctx Context[TIn]) bool {
	if !s.quantifier.Allows(1) {
		return false
	}
	switch k := s.kind.(type) {
	case Predicate[TIn]:
		return ctx.HasInput() && k(ctx)
	case *Rule[TIn, TOut]:
		return k.MatchAhead(ctx)
	case *Choice[TIn, TOut]:
		return k.MatchAhead(ctx)
	default:
		panic("unexpected `kind` type")
	}
}

// CreateMatch starts a match at the current symbol. If initiallyMatched is
// set, MatchAhead has confirmed the symbol and it counts as consumed.
func (s *State[TIn, TOut]) CreateMatch(r Reader[TIn], initiallyMatched bool) *StateMatch[TIn, TOut] {
	m := &StateMatch[TIn, TOut]{state: s, start: r.Mark(), end: r.Mark()}
	if r.HasInput() {
		m.input = r.Input()
	}
	if !initiallyMatched {
		return m
	}

	if _, ok := s.kind.(Predicate[TIn]); ok {
		m.times = 1
		return m
	}
	if !m.repeat(r) {
		Failf("state %q matched ahead but did not start", s.id)
	}
	return m
}

func (s *State[TIn, TOut]) String() string {
	return s.id + s.quantifier.String()
}
