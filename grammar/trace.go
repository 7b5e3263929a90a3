package grammar

// Trace receives progress events from matching. Implementations are handed
// to readers by the caller of a pass; the engine never creates one.
type Trace interface {
	// Enabled reports whether events are recorded at all, so callers can skip
	// building arguments.
	Enabled() bool
	Event(msg string, args ...any)
	Span(name string, args ...any) Span
}

type Span interface {
	End(args ...any)
}

// NopTrace discards everything.
var NopTrace Trace = nopTrace{}

type nopTrace struct{}

func (nopTrace) Enabled() bool            { return false }
func (nopTrace) Event(string, ...any)     {}
func (nopTrace) Span(string, ...any) Span { return nopSpan{} }

type nopSpan struct{}

func (nopSpan) End(...any) {}
