package grammar

// RunOnce matches g once, starting at the current symbol of r or at the
// first one if r has not been read yet. It returns the product of the rule
// that won, if any. The reader rests on the first symbol after the match.
//
// Failures of the input are reported through the diagnostics of r and give
// no product. The error is reserved for StructuralErrors raised by product
// factories; nothing is returned along with it.
func RunOnce[TIn, TOut any](g *Grammar[TIn, TOut], r Reader[TIn]) (product Optional[TOut], err error) {
	defer recoverStructural(&err)

	if !r.HasInput() && !r.ReadNextInput() {
		return None[TOut](), nil
	}
	m := g.TryMatchStart(r, nil)
	if m == nil {
		return None[TOut](), nil
	}
	return run[TIn, TOut](m, r), nil
}

// RunOnceRecovering is RunOnce with recovery matched where g fails. The
// second result reports whether the product came from recovery.
func RunOnceRecovering[TIn, TOut any](g *Grammar[TIn, TOut], recovery *Rule[TIn, TOut], r Reader[TIn]) (product Optional[TOut], recovered bool, err error) {
	defer recoverStructural(&err)

	if !r.HasInput() && !r.ReadNextInput() {
		return None[TOut](), false, nil
	}

	var main Match[TIn, TOut]
	if cm := g.TryMatchStart(r, nil); cm != nil {
		main = cm
	}
	m := NewRecoveringMatch(main, recovery)
	if main == nil && !m.startRecovery(r) {
		return None[TOut](), false, nil
	}
	return run[TIn, TOut](m, r), m.Recovered(), nil
}

func run[TIn, TOut any](m Match[TIn, TOut], r Reader[TIn]) Optional[TOut] {
	for r.ReadNextInput() {
		if !m.Next(r) {
			break
		}
	}
	if !m.ValidateMatch(r) {
		return None[TOut]()
	}
	return m.Product()
}
