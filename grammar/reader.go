package grammar

// Context is the read-only view of an input that product factories and
// lookahead tests get.
type Context[T any] interface {
	Mark() Marker[T]
	// Slice returns the symbols from start up to end, or nothing if either
	// marker lies outside the input.
	Slice(start, end Marker[T]) []T
	HasInput() bool
	IsEndOfInput() bool
	// Input returns the current symbol. It fails the pass when there is none.
	Input() T
	Describe(v T) string
	Trace() Trace
}

// Reader is the input a pass runs over.
type Reader[T any] interface {
	Context[T]
	// ReadNextInput moves to the next symbol and reports whether there is
	// one.
	ReadNextInput() bool
	// ResetTo moves back to m and drops the backtrack labels before it.
	ResetTo(m Marker[T])
	// Seek moves to m and leaves the backtrack labels alone.
	Seek(m Marker[T])
	EmitBacktrackLabel(label *BacktrackLabel[T])
	EmitDiagnostic(d *Diagnostic[T])
	Diagnostics() *DiagnosticList[T]
}

// SliceReader is a Reader over symbols held in memory.
type SliceReader[T any] struct {
	symbols     []T
	pos         int
	diagnostics DiagnosticList[T]
	trace       Trace
	describe    func(T) string
}

// NewSliceReader returns a reader positioned before the first symbol.
// describe renders a symbol for diagnostics.
func NewSliceReader[T any](symbols []T, tr Trace, describe func(T) string) *SliceReader[T] {
	if tr == nil {
		tr = NopTrace
	}
	return &SliceReader[T]{symbols: symbols, pos: -1, trace: tr, describe: describe}
}

func (r *SliceReader[T]) Mark() Marker[T] {
	return MarkerAt[T](r.pos)
}

func (r *SliceReader[T]) ReadNextInput() bool {
	if r.pos < len(r.symbols) {
		r.pos++
	}
	return r.pos < len(r.symbols)
}

func (r *SliceReader[T]) ResetTo(m Marker[T]) {
	r.pos = m.Pos()
	r.diagnostics.ClearBacktrackLabels(m)
}

func (r *SliceReader[T]) Seek(m Marker[T]) {
	r.pos = m.Pos()
}

func (r *SliceReader[T]) Slice(start, end Marker[T]) []T {
	if !r.valid(start) || !r.valid(end) || end.Less(start) {
		return nil
	}
	return r.symbols[start.Pos():end.Pos()]
}

func (r *SliceReader[T]) valid(m Marker[T]) bool {
	return m.Pos() >= 0 && m.Pos() <= len(r.symbols)
}

func (r *SliceReader[T]) HasInput() bool {
	return r.pos >= 0 && r.pos < len(r.symbols)
}

func (r *SliceReader[T]) IsEndOfInput() bool {
	return r.pos >= len(r.symbols)
}

func (r *SliceReader[T]) Input() T {
	if !r.HasInput() {
		Failf("no input at position %d", r.pos)
	}
	return r.symbols[r.pos]
}

func (r *SliceReader[T]) Describe(v T) string {
	return r.describe(v)
}

func (r *SliceReader[T]) Trace() Trace {
	return r.trace
}

func (r *SliceReader[T]) EmitBacktrackLabel(label *BacktrackLabel[T]) {
	r.diagnostics.AddBacktrackLabel(label)
}

func (r *SliceReader[T]) EmitDiagnostic(d *Diagnostic[T]) {
	r.diagnostics.AddDiagnostic(d)
}

func (r *SliceReader[T]) Diagnostics() *DiagnosticList[T] {
	return &r.diagnostics
}

// Len returns the number of symbols.
func (r *SliceReader[T]) Len() int {
	return len(r.symbols)
}

// Symbols returns all symbols of the input.
func (r *SliceReader[T]) Symbols() []T {
	return r.symbols
}
