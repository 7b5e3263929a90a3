package grammar

// DiagnosticList collects the diagnostics of one alphabet and tracks the
// backtrack labels of the running pass.
type DiagnosticList[T any] struct {
	diagnostics []*Diagnostic[T]
	labels      []*BacktrackLabel[T]
	furthest    *BacktrackLabel[T]
	hasErrors   bool
}

func (l *DiagnosticList[T]) AddDiagnostic(d *Diagnostic[T]) {
	l.diagnostics = append(l.diagnostics, d)
	if d.Level() == Error {
		l.hasErrors = true
	}
}

// AddBacktrackLabel records a label. The first label at the highest marker
// becomes the furthest.
func (l *DiagnosticList[T]) AddBacktrackLabel(label *BacktrackLabel[T]) {
	l.labels = append(l.labels, label)
	if l.furthest == nil || l.furthest.Marker.Less(label.Marker) {
		l.furthest = label
	}
}

// ClearBacktrackLabels drops every label before until.
func (l *DiagnosticList[T]) ClearBacktrackLabels(until Marker[T]) {
	kept := l.labels[:0]
	for _, label := range l.labels {
		if !label.Marker.Less(until) {
			kept = append(kept, label)
		}
	}
	clear(l.labels[len(kept):])
	l.labels = kept

	// the furthest label is the maximum, it survives unless all labels went
	if l.furthest != nil && l.furthest.Marker.Less(until) {
		l.furthest = nil
	}
}

// DiscardBacktrackLabels drops all labels.
func (l *DiagnosticList[T]) DiscardBacktrackLabels() {
	clear(l.labels)
	l.labels = l.labels[:0]
	l.furthest = nil
}

// CheckForFailures turns the furthest label into a diagnostic and drops all
// labels. It reports whether a diagnostic was added.
func (l *DiagnosticList[T]) CheckForFailures(ctx Context[T]) bool {
	label := l.furthest
	l.DiscardBacktrackLabels()
	if label == nil {
		return false
	}

	d := &Diagnostic[T]{
		Marker:      label.Marker,
		Description: &label.Description.Diagnostic,
	}
	if symbols := ctx.Slice(label.Marker, label.Marker.Add(1)); len(symbols) == 1 {
		d.Input = symbols[0]
		d.Text = ctx.Describe(symbols[0])
	} else {
		d.EndOfInput = true
	}
	l.AddDiagnostic(d)
	return true
}

func (l *DiagnosticList[T]) Diagnostics() []*Diagnostic[T] {
	return l.diagnostics
}

func (l *DiagnosticList[T]) BacktrackLabels() []*BacktrackLabel[T] {
	return l.labels
}

func (l *DiagnosticList[T]) FurthestBacktrackLabel() *BacktrackLabel[T] {
	return l.furthest
}

func (l *DiagnosticList[T]) HasErrors() bool {
	return l.hasErrors
}

func (l *DiagnosticList[T]) Len() int {
	return len(l.diagnostics)
}
