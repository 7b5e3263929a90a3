package grammar

import (
	"fmt"
	"strings"
)

// Choice is a set of competing rules. The longest validated alternative
// wins, the first registered one on ties.
type Choice[TIn, TOut any] struct {
	ID    string
	Rules []*Rule[TIn, TOut]
	// Failure describes the label emitted when no rule starts. If nil, a
	// description listing the rules is used.
	Failure *BacktrackLabelDescription[TIn]
}

func NewChoice[TIn, TOut any](id string, rules ...*Rule[TIn, TOut]) *Choice[TIn, TOut] {
	return &Choice[TIn, TOut]{ID: id, Rules: rules}
}

func (c *Choice[TIn, TOut]) FailureDescription() *BacktrackLabelDescription[TIn] {
	if c.Failure != nil {
		return c.Failure
	}
	return NewLabelDescription("LL004", func(d *Diagnostic[TIn]) string {
		return fmt.Sprintf("Expected %s, but found: %s", c.expected(), d.Found())
	})
}

// expected lists the rule ids as "A, B or C".
func (c *Choice[TIn, TOut]) expected() string {
	var ids []string
	for _, r := range c.Rules {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	switch len(ids) {
	case 0:
		if c.ID != "" {
			return c.ID
		}
		return "input"
	case 1:
		return ids[0]
	}
	return strings.Join(ids[:len(ids)-1], ", ") + " or " + ids[len(ids)-1]
}

func (c *Choice[TIn, TOut]) MatchAhead(ctx Context[TIn]) bool {
	for _, r := range c.Rules {
		if r.MatchAhead(ctx) {
			return true
		}
	}
	return false
}

// TryMatchStart starts every rule that can start at the current symbol. If
// none can, it emits a label described by failure, or by the choice's own
// description when failure is nil, and returns nil.
func (c *Choice[TIn, TOut]) TryMatchStart(r Reader[TIn], failure *BacktrackLabelDescription[TIn]) *ChoiceMatch[TIn, TOut] {
	var matching []*RuleMatch[TIn, TOut]
	for _, rule := range c.Rules {
		if rm := rule.TryMatchStart(r); rm != nil {
			matching = append(matching, rm)
		}
	}

	if len(matching) == 0 {
		if failure == nil {
			failure = c.FailureDescription()
		}
		r.EmitBacktrackLabel(&BacktrackLabel[TIn]{Marker: r.Mark(), Description: failure})
		return nil
	}
	return &ChoiceMatch[TIn, TOut]{choice: c, start: r.Mark(), end: r.Mark(), matching: matching}
}

// Grammar is the choice a pass starts from.
type Grammar[TIn, TOut any] struct {
	Choice[TIn, TOut]
}

func NewGrammar[TIn, TOut any](id string, rules ...*Rule[TIn, TOut]) *Grammar[TIn, TOut] {
	return &Grammar[TIn, TOut]{Choice: Choice[TIn, TOut]{ID: id, Rules: rules}}
}
