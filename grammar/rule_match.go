package grammar

// RuleMatch is the progress of matching a rule. It walks the rule's states
// in order.
type RuleMatch[TIn, TOut any] struct {
	rule    *Rule[TIn, TOut]
	start   Marker[TIn]
	end     Marker[TIn]
	states  []*StateMatch[TIn, TOut]
	product Optional[TOut]

	failed    bool
	exhausted bool
	validated bool
	valid     bool
}

func (m *RuleMatch[TIn, TOut]) Next(r Reader[TIn]) bool {
	if m.failed || m.exhausted || m.validated {
		return false
	}

	here := r.Mark()
	for {
		if !m.step(r) {
			return false
		}
		if !r.Mark().Less(here) {
			return true
		}
		// a nested choice moved the reader back, catch up
		r.ReadNextInput()
	}
}

// step consumes the symbol at the reader position, moving on to the next
// state when the current one is done.
func (m *RuleMatch[TIn, TOut]) step(r Reader[TIn]) bool {
	for {
		cur := m.current()
		if cur.Next(r) {
			return true
		}
		if !cur.ValidateMatch(r) {
			m.fail(r, cur.state)
			return false
		}
		if m.complete() {
			m.exhausted = true
			return false
		}
		m.advance(r)
	}
}

func (m *RuleMatch[TIn, TOut]) current() *StateMatch[TIn, TOut] {
	return m.states[len(m.states)-1]
}

// complete reports whether every state of the rule has been reached.
func (m *RuleMatch[TIn, TOut]) complete() bool {
	return len(m.states) == len(m.rule.States)
}

func (m *RuleMatch[TIn, TOut]) advance(r Reader[TIn]) {
	m.states = append(m.states, m.rule.States[len(m.states)].CreateMatch(r, false))
}

func (m *RuleMatch[TIn, TOut]) fail(r Reader[TIn], s *State[TIn, TOut]) {
	m.failed = true
	r.EmitBacktrackLabel(&BacktrackLabel[TIn]{Marker: r.Mark(), Description: s.failure})
	if tr := r.Trace(); tr.Enabled() {
		tr.Event("rule failed", "rule", m.rule.ID, "at", r.Mark(), "state", s.String())
	}
}

// ValidateMatch completes the match at the current symbol. The last reached
// state must validate and all states not reached must allow zero
// repetitions. The product is built once, on the first call.
func (m *RuleMatch[TIn, TOut]) ValidateMatch(r Reader[TIn]) bool {
	if !m.validated {
		m.valid = m.validate(r)
		m.validated = true
	}
	return m.valid
}

func (m *RuleMatch[TIn, TOut]) validate(r Reader[TIn]) bool {
	stop := r.Mark()
	for !m.failed {
		cur := m.current()
		if !cur.ValidateMatch(r) {
			m.fail(r, cur.state)
			return false
		}
		if m.complete() || !r.Mark().Less(stop) {
			return m.finish(r)
		}
		// input handed back by a nested choice belongs to the following
		// states
		m.advance(r)
		if m.step(r) {
			replay(r, stop, m.Next)
		}
	}
	return false
}

func (m *RuleMatch[TIn, TOut]) finish(r Reader[TIn]) bool {
	for _, s := range m.rule.States[len(m.states):] {
		if !s.quantifier.IsMetBy(0) {
			m.fail(r, s)
			return false
		}
	}

	m.end = r.Mark()
	if m.rule.Product != nil {
		m.product = Some(m.rule.Product(m, r))
	}
	if tr := r.Trace(); tr.Enabled() {
		tr.Event("rule matched", "rule", m.rule.ID, "start", m.start, "end", m.end)
	}
	return true
}

func (m *RuleMatch[TIn, TOut]) Rule() *Rule[TIn, TOut] {
	return m.rule
}

func (m *RuleMatch[TIn, TOut]) StartMarker() Marker[TIn] {
	return m.start
}

func (m *RuleMatch[TIn, TOut]) EndMarker() Marker[TIn] {
	return m.end
}

func (m *RuleMatch[TIn, TOut]) Product() Optional[TOut] {
	return m.product
}

// States returns the matches of the states reached so far, including
// skipped ones.
func (m *RuleMatch[TIn, TOut]) States() []*StateMatch[TIn, TOut] {
	return m.states
}

// FindState returns the match of the state with the given id, or nil.
func (m *RuleMatch[TIn, TOut]) FindState(id string) *StateMatch[TIn, TOut] {
	for _, s := range m.states {
		if s.state.id == id {
			return s
		}
	}
	return nil
}

// MustState is FindState failing the pass when there is no such state.
func (m *RuleMatch[TIn, TOut]) MustState(id string) *StateMatch[TIn, TOut] {
	s := m.FindState(id)
	if s == nil {
		Failf("rule %q: no state %q", m.rule.ID, id)
	}
	return s
}

// FindRule returns the match of the state referring to the rule with the
// given id, or nil.
func (m *RuleMatch[TIn, TOut]) FindRule(ruleID string) *StateMatch[TIn, TOut] {
	for _, s := range m.states {
		if r, ok := s.state.Rule(); ok && r.ID == ruleID {
			return s
		}
	}
	return nil
}

// FindRuleByStateID returns the match of the rule reference with the given
// state id, or nil.
func (m *RuleMatch[TIn, TOut]) FindRuleByStateID(id string) *StateMatch[TIn, TOut] {
	for _, s := range m.states {
		if _, ok := s.state.Rule(); ok && s.state.id == id {
			return s
		}
	}
	return nil
}

// FindChoiceByStateID returns the match of the choice reference with the
// given state id, or nil.
func (m *RuleMatch[TIn, TOut]) FindChoiceByStateID(id string) *StateMatch[TIn, TOut] {
	for _, s := range m.states {
		if _, ok := s.state.Choice(); ok && s.state.id == id {
			return s
		}
	}
	return nil
}
