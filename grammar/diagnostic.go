package grammar

import "fmt"

type Level int

const (
	Info Level = iota
	Hint
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Hint:
		return "hint"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// DiagnosticDescription is the code, level and message of a kind of
// diagnostic.
type DiagnosticDescription[T any] struct {
	Code   string
	Level  Level
	Format func(d *Diagnostic[T]) string
}

// Diagnostic is a reported problem at a position of the input.
type Diagnostic[T any] struct {
	Marker Marker[T]
	// Input is the offending symbol, Text its rendering. Both are empty when
	// the problem was found at the end of the input.
	Input       T
	Text        string
	EndOfInput  bool
	Description *DiagnosticDescription[T]
}

func (d *Diagnostic[T]) Code() string {
	return d.Description.Code
}

func (d *Diagnostic[T]) Level() Level {
	return d.Description.Level
}

func (d *Diagnostic[T]) Message() string {
	return d.Description.Format(d)
}

func (d *Diagnostic[T]) String() string {
	return fmt.Sprintf("%s %s at %d: %s", d.Level(), d.Code(), d.Marker.Pos(), d.Message())
}

// Found renders the offending input for messages, "end of input" if there
// was none.
func (d *Diagnostic[T]) Found() string {
	if d.EndOfInput {
		return "end of input"
	}
	return d.Text
}

// BacktrackLabelDescription describes the diagnostic a backtrack label turns
// into when it ends up being the furthest failure of a pass.
type BacktrackLabelDescription[T any] struct {
	Diagnostic DiagnosticDescription[T]
}

func NewLabelDescription[T any](code string, format func(d *Diagnostic[T]) string) *BacktrackLabelDescription[T] {
	return &BacktrackLabelDescription[T]{
		Diagnostic: DiagnosticDescription[T]{Code: code, Level: Error, Format: format},
	}
}

// DefaultLabelDescription is used by states created without a description.
func DefaultLabelDescription[T any]() *BacktrackLabelDescription[T] {
	return NewLabelDescription("UNK000", func(d *Diagnostic[T]) string {
		return fmt.Sprintf("Error near '%s'", d.Found())
	})
}

// BacktrackLabel is a candidate diagnostic recorded where an alternative
// stopped matching.
type BacktrackLabel[T any] struct {
	Marker      Marker[T]
	Description *BacktrackLabelDescription[T]
}
