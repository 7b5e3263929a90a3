package lang

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/mfroeh/gogram/grammar"
)

// LexState is a state over runes.
type LexState = grammar.State[rune, Token]

func quantifier(q []grammar.Quantifier) grammar.Quantifier {
	if len(q) == 0 {
		return grammar.Once
	}
	return q[0]
}

// expecting describes a character state failing because input other than
// expected was found.
func expecting(expected string) *grammar.BacktrackLabelDescription[rune] {
	return grammar.NewLabelDescription("LL005", func(d *grammar.Diagnostic[rune]) string {
		if d.EndOfInput {
			return "Unexpected end of input, expected " + expected
		}
		return fmt.Sprintf("Unexpected character: '%s', expected %s", d.Text, expected)
	})
}

// Char matches c.
func Char(c rune, q ...grammar.Quantifier) *LexState {
	return grammar.NewState[rune, Token]("c="+string(c), func(ctx grammar.Context[rune]) bool {
		return ctx.Input() == c
	}, quantifier(q), expecting(fmt.Sprintf("'%s'", describeRune(c))))
}

// NotChar matches any rune but c.
func NotChar(c rune, q ...grammar.Quantifier) *LexState {
	return grammar.NewState[rune, Token]("c!="+string(c), func(ctx grammar.Context[rune]) bool {
		return ctx.Input() != c
	}, quantifier(q), expecting(fmt.Sprintf("anything but '%s'", describeRune(c))))
}

// AnyChar matches any rune.
func AnyChar(q ...grammar.Quantifier) *LexState {
	return grammar.NewState[rune, Token]("*", func(grammar.Context[rune]) bool {
		return true
	}, quantifier(q), expecting("any character"))
}

// Class is a category of runes.
type Class int

const (
	Control Class = iota
	Whitespace
	Digit
	Letter
	Upper
	Lower
)

func (c Class) String() string {
	switch c {
	case Control:
		return "Control"
	case Whitespace:
		return "Whitespace"
	case Digit:
		return "Digit"
	case Letter:
		return "Letter"
	case Upper:
		return "Upper"
	case Lower:
		return "Lower"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

func (c Class) Contains(r rune) bool {
	switch c {
	case Control:
		return unicode.IsControl(r)
	case Whitespace:
		return unicode.IsSpace(r)
	case Digit:
		return unicode.IsDigit(r)
	case Letter:
		return unicode.IsLetter(r)
	case Upper:
		return unicode.IsUpper(r)
	case Lower:
		return unicode.IsLower(r)
	}
	return false
}

// ClassOf matches runes of class.
func ClassOf(class Class, q ...grammar.Quantifier) *LexState {
	return grammar.NewState[rune, Token]("cls="+class.String(), func(ctx grammar.Context[rune]) bool {
		return class.Contains(ctx.Input())
	}, quantifier(q), expecting(strings.ToLower(class.String())))
}

// NotClassOf matches runes outside of class.
func NotClassOf(class Class, q ...grammar.Quantifier) *LexState {
	return grammar.NewState[rune, Token]("cls!="+class.String(), func(ctx grammar.Context[rune]) bool {
		return !class.Contains(ctx.Input())
	}, quantifier(q), expecting("non-"+strings.ToLower(class.String())))
}

// RuneRange is an inclusive range of runes.
type RuneRange struct {
	From, To rune
}

func (r RuneRange) Contains(c rune) bool {
	return r.From <= c && c <= r.To
}

func (r RuneRange) String() string {
	if r.From == r.To {
		return describeRune(r.From)
	}
	return describeRune(r.From) + "-" + describeRune(r.To)
}

func inRanges(c rune, ranges []RuneRange) bool {
	for _, r := range ranges {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

func rangesString(ranges []RuneRange) string {
	var sb strings.Builder
	for _, r := range ranges {
		sb.WriteString(r.String())
	}
	return sb.String()
}

// CharsOf returns the ranges of the runes of s: one range if the distinct
// runes are consecutive, one range per rune otherwise.
func CharsOf(s string) []RuneRange {
	chars := []rune(s)
	slices.Sort(chars)
	chars = slices.Compact(chars)
	if len(chars) == 0 {
		return nil
	}

	consecutive := true
	for i := 1; i < len(chars); i++ {
		if chars[i] != chars[i-1]+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return []RuneRange{{From: chars[0], To: chars[len(chars)-1]}}
	}

	ranges := make([]RuneRange, len(chars))
	for i, c := range chars {
		ranges[i] = RuneRange{From: c, To: c}
	}
	return ranges
}

// CharRange matches runes within any of ranges.
func CharRange(ranges []RuneRange, q ...grammar.Quantifier) *LexState {
	return grammar.NewState[rune, Token]("crng", func(ctx grammar.Context[rune]) bool {
		return inRanges(ctx.Input(), ranges)
	}, quantifier(q), expecting(fmt.Sprintf("one of [%s]", rangesString(ranges))))
}

// NotCharRange matches runes outside of all ranges.
func NotCharRange(ranges []RuneRange, q ...grammar.Quantifier) *LexState {
	return grammar.NewState[rune, Token]("!crng", func(ctx grammar.Context[rune]) bool {
		return !inRanges(ctx.Input(), ranges)
	}, quantifier(q), expecting(fmt.Sprintf("none of [%s]", rangesString(ranges))))
}

// String matches the runes of s in order and produces a token named s.
func String(s string, q ...grammar.Quantifier) *LexState {
	sub := grammar.NewRule[rune, Token](s, TokenFactory(s))
	for _, c := range s {
		sub.States = append(sub.States, Char(c))
	}
	return grammar.NewRuleRef(s, sub, quantifier(q), nil)
}

// ParseState is a state over tokens.
type ParseState = grammar.State[Token, SyntaxNode]

func expectingToken(expected string) *grammar.BacktrackLabelDescription[Token] {
	return grammar.NewLabelDescription("LL006", func(d *grammar.Diagnostic[Token]) string {
		if d.EndOfInput {
			return "Unexpected end of input, expected " + expected
		}
		return fmt.Sprintf("Unexpected token: '%s', expected %s", d.Text, expected)
	})
}

// TokenOf matches tokens of type T.
func TokenOf[T Token](id string, q ...grammar.Quantifier) *ParseState {
	return grammar.NewState[Token, SyntaxNode](id, func(ctx grammar.Context[Token]) bool {
		_, ok := ctx.Input().(T)
		return ok
	}, quantifier(q), expectingToken(id))
}

// NotTokenOf matches tokens of any type but T.
func NotTokenOf[T Token](id string, q ...grammar.Quantifier) *ParseState {
	return grammar.NewState[Token, SyntaxNode](id, func(ctx grammar.Context[Token]) bool {
		_, ok := ctx.Input().(T)
		return !ok
	}, quantifier(q), expectingToken("anything but "+id))
}

// TokenNamed matches tokens by name.
func TokenNamed(name string, q ...grammar.Quantifier) *ParseState {
	return grammar.NewState[Token, SyntaxNode](name, func(ctx grammar.Context[Token]) bool {
		return ctx.Input().Name() == name
	}, quantifier(q), expectingToken(name))
}
