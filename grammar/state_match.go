package grammar

// Match is the progress of matching a rule or a choice.
type Match[TIn, TOut any] interface {
	// Next consumes the current symbol. It returns false once the match
	// stops; the reader then rests on the first symbol not consumed, which can
	// be before the symbol Next was called with.
	Next(r Reader[TIn]) bool
	// ValidateMatch decides whether the consumed symbols form a complete
	// match.
	ValidateMatch(r Reader[TIn]) bool
	StartMarker() Marker[TIn]
	EndMarker() Marker[TIn]
	Product() Optional[TOut]
}

// StateMatch is the progress of matching one state. For references it holds
// one rule or choice match per repetition.
type StateMatch[TIn, TOut any] struct {
	state *State[TIn, TOut]
	start Marker[TIn]
	end   Marker[TIn]
	input TIn
	times int

	inner []Match[TIn, TOut]
	// counted is set once the last inner match validated and was added to
	// times.
	counted bool
	failed  bool
}

func (m *StateMatch[TIn, TOut]) Next(r Reader[TIn]) bool {
	if test, ok := m.state.kind.(Predicate[TIn]); ok {
		if !m.state.quantifier.Allows(m.times+1) || !r.HasInput() || !test(r) {
			return false
		}
		m.times++
		return true
	}

	here := r.Mark()
	for {
		if !m.step(r) {
			return false
		}
		if !r.Mark().Less(here) {
			return true
		}
		// a repetition restarted behind here, catch up
		r.ReadNextInput()
	}
}

// step consumes the symbol at the reader position, starting the next
// repetition when the current one cannot go on.
func (m *StateMatch[TIn, TOut]) step(r Reader[TIn]) bool {
	if m.failed {
		return false
	}
	if len(m.inner) == 0 {
		return m.repeat(r)
	}

	cur := m.inner[len(m.inner)-1]
	if cur.Next(r) {
		return true
	}
	if !m.count(r, cur) {
		return false
	}
	return m.repeat(r)
}

// count validates the last repetition.
func (m *StateMatch[TIn, TOut]) count(r Reader[TIn], cur Match[TIn, TOut]) bool {
	if m.counted {
		return true
	}
	if !cur.ValidateMatch(r) {
		m.failed = true
		return false
	}
	m.times++
	m.counted = true
	m.end = cur.EndMarker()
	return true
}

// repeat starts another repetition at the current symbol.
func (m *StateMatch[TIn, TOut]) repeat(r Reader[TIn]) bool {
	if !m.state.quantifier.Allows(m.times + 1) {
		return false
	}

	var next Match[TIn, TOut]
	switch k := m.state.kind.(type) {
	case *Rule[TIn, TOut]:
		if rm := k.TryMatchStart(r); rm != nil {
			next = rm
		}
	case *Choice[TIn, TOut]:
		if cm := k.TryMatchStart(r, m.state.failure); cm != nil {
			next = cm
		}
	default:
		panic("unexpected `kind` type")
	}
	if next == nil {
		return false
	}
	m.inner = append(m.inner, next)
	m.counted = false
	return true
}

func (m *StateMatch[TIn, TOut]) ValidateMatch(r Reader[TIn]) bool {
	if _, ok := m.state.kind.(Predicate[TIn]); ok {
		m.end = r.Mark()
		return m.state.quantifier.IsMetBy(m.times)
	}
	if len(m.inner) == 0 {
		m.end = m.start
		return m.state.quantifier.IsMetBy(0)
	}

	stop := r.Mark()
	for {
		if m.failed || !m.count(r, m.inner[len(m.inner)-1]) {
			return false
		}
		// a nested choice may have handed input back, offer it to one more
		// repetition
		if !r.Mark().Less(stop) || !m.repeat(r) {
			break
		}
		replay(r, stop, m.Next)
	}
	return m.state.quantifier.IsMetBy(m.times)
}

// replay feeds the symbols after the current one and before stop to next
// until next stops.
func replay[T any](r Reader[T], stop Marker[T], next func(Reader[T]) bool) {
	for r.ReadNextInput() && r.Mark().Less(stop) {
		if !next(r) {
			return
		}
	}
}

func (m *StateMatch[TIn, TOut]) State() *State[TIn, TOut] {
	return m.state
}

func (m *StateMatch[TIn, TOut]) StartMarker() Marker[TIn] {
	return m.start
}

func (m *StateMatch[TIn, TOut]) EndMarker() Marker[TIn] {
	return m.end
}

// Input returns the symbol the match started at.
func (m *StateMatch[TIn, TOut]) Input() TIn {
	return m.input
}

func (m *StateMatch[TIn, TOut]) TimesMatched() int {
	return m.times
}

func (m *StateMatch[TIn, TOut]) RuleMatches() []*RuleMatch[TIn, TOut] {
	var matches []*RuleMatch[TIn, TOut]
	for _, inner := range m.inner {
		if rm, ok := inner.(*RuleMatch[TIn, TOut]); ok {
			matches = append(matches, rm)
		}
	}
	return matches
}

func (m *StateMatch[TIn, TOut]) ChoiceMatches() []*ChoiceMatch[TIn, TOut] {
	var matches []*ChoiceMatch[TIn, TOut]
	for _, inner := range m.inner {
		if cm, ok := inner.(*ChoiceMatch[TIn, TOut]); ok {
			matches = append(matches, cm)
		}
	}
	return matches
}

// Products returns the products of all repetitions that produced one.
func (m *StateMatch[TIn, TOut]) Products() []TOut {
	var products []TOut
	for _, inner := range m.inner {
		if p, ok := inner.Product().Get(); ok {
			products = append(products, p)
		}
	}
	return products
}

// MustSingleProduct returns the product of the only repetition and fails the
// pass if there is not exactly one repetition with a product.
func (m *StateMatch[TIn, TOut]) MustSingleProduct() TOut {
	if len(m.inner) != 1 {
		Failf("state %q: want a single match, got %d", m.state.id, len(m.inner))
	}
	p, ok := m.inner[0].Product().Get()
	if !ok {
		Failf("state %q: match has no product", m.state.id)
	}
	return p
}

// MustSingleProductAs is MustSingleProduct with a type assertion on the
// product. A nil m fails the pass as well.
func MustSingleProductAs[T any, TIn, TOut any](m *StateMatch[TIn, TOut]) T {
	if m == nil {
		Failf("no state match to take a product from")
	}
	p := m.MustSingleProduct()
	v, ok := any(p).(T)
	if !ok {
		Failf("state %q: product is %T, want %T", m.state.id, p, v)
	}
	return v
}
