package grammar

// ChoiceMatch runs the alternatives of a choice side by side, one symbol at
// a time, and keeps the longest one that validated.
type ChoiceMatch[TIn, TOut any] struct {
	choice   *Choice[TIn, TOut]
	start    Marker[TIn]
	end      Marker[TIn]
	matching []*RuleMatch[TIn, TOut]
	matched  []*RuleMatch[TIn, TOut]
	best     *RuleMatch[TIn, TOut]
	resolved bool
}

// Next advances every alternative still matching. When none of them
// advanced, the match resolves to the best validated alternative and the
// reader is reset to its end.
func (m *ChoiceMatch[TIn, TOut]) Next(r Reader[TIn]) bool {
	if m.resolved {
		return false
	}

	here := r.Mark()
	advanced := false
	for i, rm := range m.matching {
		if rm == nil {
			continue
		}
		// an alternative before this one may have moved the reader back
		if r.Mark() != here {
			r.Seek(here)
		}
		if rm.Next(r) {
			advanced = true
			continue
		}
		if rm.ValidateMatch(r) {
			m.matched = append(m.matched, rm)
		}
		m.matching[i] = nil
	}
	if r.Mark() != here {
		r.Seek(here)
	}

	if !advanced && len(m.matched) > 0 {
		m.resolve(r)
	}
	return advanced
}

// ValidateMatch validates the alternatives still matching and resolves.
func (m *ChoiceMatch[TIn, TOut]) ValidateMatch(r Reader[TIn]) bool {
	if m.resolved {
		return m.best != nil
	}

	stop := r.Mark()
	for i, rm := range m.matching {
		if rm == nil {
			continue
		}
		if r.Mark() != stop {
			r.Seek(stop)
		}
		if rm.ValidateMatch(r) {
			m.matched = append(m.matched, rm)
		}
		m.matching[i] = nil
	}

	m.resolve(r)
	return m.best != nil
}

// resolve picks the best alternative and resets the reader to its end, or
// to the start of the choice if no alternative validated.
func (m *ChoiceMatch[TIn, TOut]) resolve(r Reader[TIn]) {
	m.resolved = true
	m.best = FindBest(m.matched)
	if m.best == nil {
		m.end = m.start
	} else {
		m.end = m.best.end
	}
	r.ResetTo(m.end)

	if tr := r.Trace(); tr.Enabled() {
		rule := "<none>"
		if m.best != nil {
			rule = m.best.rule.ID
		}
		tr.Event("choice resolved", "choice", m.choice.ID, "rule", rule, "candidates", len(m.matched), "end", m.end)
	}
}

// FindBest returns the match spanning the most symbols, the first one of
// those if several do, or nil if there are none.
func FindBest[TIn, TOut any](matches []*RuleMatch[TIn, TOut]) *RuleMatch[TIn, TOut] {
	var best *RuleMatch[TIn, TOut]
	longest := -1
	for _, rm := range matches {
		if n := rm.end.Sub(rm.start); n > longest {
			best = rm
			longest = n
		}
	}
	return best
}

func (m *ChoiceMatch[TIn, TOut]) Choice() *Choice[TIn, TOut] {
	return m.choice
}

func (m *ChoiceMatch[TIn, TOut]) StartMarker() Marker[TIn] {
	return m.start
}

func (m *ChoiceMatch[TIn, TOut]) EndMarker() Marker[TIn] {
	return m.end
}

// MatchedRule returns the winning alternative, nil before resolution or if
// none validated.
func (m *ChoiceMatch[TIn, TOut]) MatchedRule() *RuleMatch[TIn, TOut] {
	return m.best
}

// Candidates returns the alternatives that validated so far.
func (m *ChoiceMatch[TIn, TOut]) Candidates() []*RuleMatch[TIn, TOut] {
	return m.matched
}

func (m *ChoiceMatch[TIn, TOut]) Product() Optional[TOut] {
	if m.best == nil {
		return None[TOut]()
	}
	return m.best.product
}
