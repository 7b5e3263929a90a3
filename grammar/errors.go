package grammar

import "fmt"

// StructuralError reports a grammar whose shape does not meet an assumption
// made by its product factories, e.g. a single product requested from a
// state that repeated twice. It aborts the pass it occurs in.
type StructuralError struct {
	message string
}

func (e *StructuralError) Error() string {
	return e.message
}

// Failf aborts the running pass with a StructuralError. It is meant for
// product factories, RunOnce turns it into an error.
func Failf(format string, args ...any) {
	panic(&StructuralError{message: fmt.Sprintf(format, args...)})
}

// recoverStructural stores a StructuralError raised below it in err and
// re-panics anything else.
func recoverStructural(err *error) {
	p := recover()
	if p == nil {
		return
	}
	se, ok := p.(*StructuralError)
	if !ok {
		panic(p)
	}
	*err = se
}
