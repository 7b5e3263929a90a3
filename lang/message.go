package lang

import (
	"fmt"

	"github.com/mfroeh/gogram/grammar"
)

var UnexpectedCharacter = grammar.NewLabelDescription("LL001", func(d *grammar.Diagnostic[rune]) string {
	return fmt.Sprintf("Unexpected character: '%s'", d.Found())
})

var UnexpectedToken = grammar.NewLabelDescription("LL002", func(d *grammar.Diagnostic[Token]) string {
	return fmt.Sprintf("Unexpected token: '%s'", d.Found())
})

// Message is a diagnostic of either alphabet located in the source.
type Message struct {
	Location Location
	Level    grammar.Level
	Code     string
	Text     string
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s %s: %s", m.Location, m.Level, m.Code, m.Text)
}

// locator is a reader that locates its markers in the source.
type locator[T any] interface {
	grammar.Reader[T]
	Location(m grammar.Marker[T]) Location
}

func messages[T any](r locator[T]) []Message {
	var msgs []Message
	for _, d := range r.Diagnostics().Diagnostics() {
		msgs = append(msgs, Message{
			Location: r.Location(d.Marker),
			Level:    d.Level(),
			Code:     d.Code(),
			Text:     d.Message(),
		})
	}
	return msgs
}

// emitAt reports a diagnostic described by desc at the current position of
// r.
func emitAt[T any](r grammar.Reader[T], desc *grammar.BacktrackLabelDescription[T]) {
	d := &grammar.Diagnostic[T]{Marker: r.Mark(), Description: &desc.Diagnostic}
	if r.HasInput() {
		d.Input = r.Input()
		d.Text = r.Describe(d.Input)
	} else {
		d.EndOfInput = true
	}
	r.EmitDiagnostic(d)
}
