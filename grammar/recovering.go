package grammar

type recoveryState int

const (
	mainInProgress recoveryState = iota
	mainSuccess
	recoveryInProgress
	recoveryFailed
)

func (s recoveryState) String() string {
	switch s {
	case mainInProgress:
		return "main in progress"
	case mainSuccess:
		return "main success"
	case recoveryInProgress:
		return "recovery in progress"
	case recoveryFailed:
		return "recovery failed"
	}
	return "unknown"
}

// RecoveringMatch runs a main match and, once it can neither advance nor
// validate, starts a recovery rule where the reader rests. A successful
// recovery replaces the product of the main match.
type RecoveringMatch[TIn, TOut any] struct {
	main     Match[TIn, TOut]
	recovery *Rule[TIn, TOut]
	state    recoveryState
	rescue   *RuleMatch[TIn, TOut]
}

// NewRecoveringMatch wraps main. A nil main is a match that failed to start,
// recovery is then tried at the first call to Next or ValidateMatch.
func NewRecoveringMatch[TIn, TOut any](main Match[TIn, TOut], recovery *Rule[TIn, TOut]) *RecoveringMatch[TIn, TOut] {
	return &RecoveringMatch[TIn, TOut]{main: main, recovery: recovery}
}

func (m *RecoveringMatch[TIn, TOut]) Next(r Reader[TIn]) bool {
	switch m.state {
	case mainSuccess, recoveryFailed:
		return false
	case recoveryInProgress:
		return m.rescue.Next(r)
	}

	here := r.Mark()
	if m.main != nil {
		if m.main.Next(r) {
			return true
		}
		if m.main.ValidateMatch(r) {
			m.state = mainSuccess
			return false
		}
	}
	if !m.startRecovery(r) {
		return false
	}

	// the main match may have stopped behind here
	for r.Mark().Less(here) {
		r.ReadNextInput()
		if !m.rescue.Next(r) {
			return false
		}
	}
	return true
}

func (m *RecoveringMatch[TIn, TOut]) startRecovery(r Reader[TIn]) bool {
	m.rescue = m.recovery.TryMatchStart(r)
	if m.rescue == nil {
		m.state = recoveryFailed
	} else {
		m.state = recoveryInProgress
	}

	if tr := r.Trace(); tr.Enabled() {
		tr.Event("recovery", "rule", m.recovery.ID, "at", r.Mark(), "state", m.state)
	}
	return m.rescue != nil
}

func (m *RecoveringMatch[TIn, TOut]) ValidateMatch(r Reader[TIn]) bool {
	switch m.state {
	case mainSuccess:
		return true
	case recoveryFailed:
		return false
	case recoveryInProgress:
		return m.rescue.ValidateMatch(r)
	}

	if m.main != nil && m.main.ValidateMatch(r) {
		m.state = mainSuccess
		return true
	}
	if !m.startRecovery(r) {
		return false
	}
	for r.ReadNextInput() {
		if !m.rescue.Next(r) {
			break
		}
	}
	return m.rescue.ValidateMatch(r)
}

// Recovered reports whether the recovery rule matched.
func (m *RecoveringMatch[TIn, TOut]) Recovered() bool {
	return m.state == recoveryInProgress && m.rescue.validated && m.rescue.valid
}

func (m *RecoveringMatch[TIn, TOut]) StartMarker() Marker[TIn] {
	if m.main == nil {
		if m.rescue != nil {
			return m.rescue.start
		}
		return Origin[TIn]()
	}
	return m.main.StartMarker()
}

func (m *RecoveringMatch[TIn, TOut]) EndMarker() Marker[TIn] {
	if m.rescue != nil {
		return m.rescue.end
	}
	if m.main == nil {
		return Origin[TIn]()
	}
	return m.main.EndMarker()
}

func (m *RecoveringMatch[TIn, TOut]) Product() Optional[TOut] {
	if m.Recovered() {
		return m.rescue.product
	}
	if m.main == nil {
		return None[TOut]()
	}
	return m.main.Product()
}
