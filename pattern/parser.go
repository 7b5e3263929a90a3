package pattern

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mfroeh/gogram/grammar"
	"github.com/mfroeh/gogram/lang"
)

// ParseError reports where a pattern could not be parsed.
type ParseError struct {
	Pos int
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parser error at %d: %s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParserError(i int, msg string, inner error) *ParseError {
	return &ParseError{Pos: i, Msg: msg, Err: inner}
}

// atom builds the state of a parsed atom once its quantifier is known.
type atom func(q grammar.Quantifier) *lang.LexState

type parser struct {
	re []rune
	// groups maps the rule of each capturing group to its number.
	groups map[*grammar.Rule[rune, lang.Token]]int
}

func (p *parser) text(i, j int) string {
	return string(p.re[i:j])
}

// ...|...|...
// parseAlternation parses alternatives up to a closing ')' or the end of the
// pattern. More than one alternative become a single choice reference.
func (p *parser) parseAlternation(i int) ([]*lang.LexState, int, error) {
	var alternatives [][]*lang.LexState
	var texts []string

	j := i
	for {
		states, k, err := p.parseSequence(j)
		if err != nil {
			return nil, 0, err
		}
		if len(states) == 0 {
			return nil, 0, newParserError(j, "empty alternative", nil)
		}
		alternatives = append(alternatives, states)
		texts = append(texts, p.text(j, k))
		j = k

		if j >= len(p.re) || p.re[j] != '|' {
			break
		}
		// pop off '|'
		j++
	}

	// if we parsed just one, we are not a choice
	if len(alternatives) == 1 {
		return alternatives[0], j, nil
	}

	choice := grammar.NewChoice[rune, lang.Token](p.text(i, j))
	q := grammar.Once
	for n, states := range alternatives {
		choice.Rules = append(choice.Rules, grammar.NewRule[rune, lang.Token](texts[n], nil, states...))
		if nullable(states) {
			q = grammar.AtMostOnce
		}
	}
	return []*lang.LexState{grammar.NewChoiceRef(choice.ID, choice, q, nil)}, j, nil
}

// nullable reports whether states can all be skipped. A rule only starts on
// a symbol, so a reference to a nullable rule must be optional itself.
func nullable(states []*lang.LexState) bool {
	for _, s := range states {
		if !s.Quantifier().IsMetBy(0) {
			return false
		}
	}
	return true
}

// parseSequence parses quantified atoms up to a '|', a closing ')' or the end
// of the pattern.
func (p *parser) parseSequence(i int) ([]*lang.LexState, int, error) {
	var states []*lang.LexState

	j := i
	for j < len(p.re) && p.re[j] != '|' && p.re[j] != ')' {
		build, k, err := p.parseAtom(j)
		if err != nil {
			return nil, 0, err
		}

		q, cons, err := p.parseQuantifier(k)
		if err != nil {
			return nil, 0, err
		}
		states = append(states, build(q))
		j = k + cons
	}
	return states, j, nil
}

func (p *parser) parseAtom(i int) (atom, int, error) {
	switch p.re[i] {
	case '(':
		return p.parseGroup(i)
	case '[':
		return p.parseBracket(i)
	case '\\':
		return p.parseEscape(i)
	case '.':
		return func(q grammar.Quantifier) *lang.LexState {
			return lang.NotChar('\n', q)
		}, i + 1, nil
	case '^', '$':
		return nil, 0, newParserError(i, "unexpected meta character", nil)
	case '{', '?', '+', '*':
		return nil, 0, newParserError(i, "missing argument to repetition operator", nil)
	}

	c := p.re[i]
	return func(q grammar.Quantifier) *lang.LexState {
		return lang.Char(c, q)
	}, i + 1, nil
}

// (...)
func (p *parser) parseGroup(i int) (atom, int, error) {
	// groups are numbered by their opening parenthesis
	n := len(p.groups) + 1
	rule := grammar.NewRule[rune, lang.Token]("", nil)
	p.groups[rule] = n

	// pop off '('
	states, j, err := p.parseAlternation(i + 1)
	if err != nil {
		return nil, 0, err
	}
	if j >= len(p.re) {
		return nil, 0, newParserError(j, "did not find closing ')'", nil)
	}

	// pop off ')'
	j++
	rule.ID = p.text(i, j)
	rule.States = states

	return func(q grammar.Quantifier) *lang.LexState {
		if nullable(states) {
			q = grammar.Range(0, q.Max)
		}
		return grammar.NewRuleRef(rule.ID, rule, q, nil)
	}, j, nil
}

// [...] and [^...]
// this doesn't conform to POSIX, as we allow perl character sets, which mandates that '\' is not treated literally
// inside of bracket expressions. An unescaped ']' ends the expression unless it comes first.
func (p *parser) parseBracket(i int) (atom, int, error) {
	// pop off '['
	j := i + 1

	negate := j < len(p.re) && p.re[j] == '^'
	if negate {
		j++
	}

	var ranges []lang.RuneRange
	first := true
	for j < len(p.re) && (p.re[j] != ']' || first) {
		first = false

		if p.re[j] == '[' {
			rs, cons := parsePosixCharSet(p.re, j)
			if rs != nil {
				ranges = append(ranges, rs...)
				j += cons
				continue
			}
		}

		lo, rs, cons, err := p.parseBracketChar(j)
		if err != nil {
			return nil, 0, err
		}
		j += cons
		if rs != nil {
			ranges = append(ranges, rs...)
			continue
		}

		// a '-' right before the closing ']' is literal
		if j+1 < len(p.re) && p.re[j] == '-' && p.re[j+1] != ']' {
			hi, rs, cons, err := p.parseBracketChar(j + 1)
			if err != nil {
				return nil, 0, err
			}
			if rs != nil {
				return nil, 0, newParserError(j+1, "invalid character class range", nil)
			}
			if hi < lo {
				return nil, 0, newParserError(j, "invalid character class range", nil)
			}
			ranges = append(ranges, lang.RuneRange{From: lo, To: hi})
			j += 1 + cons
			continue
		}
		ranges = append(ranges, lang.RuneRange{From: lo, To: lo})
	}

	if j >= len(p.re) {
		return nil, 0, newParserError(j, "did not find closing ']'", nil)
	}
	if len(ranges) == 0 {
		return nil, 0, newParserError(i, "empty bracket expression", nil)
	}

	// pop off ']'
	j++

	return func(q grammar.Quantifier) *lang.LexState {
		if negate {
			return lang.NotCharRange(ranges, q)
		}
		return lang.CharRange(ranges, q)
	}, j, nil
}

// parseBracketChar parses one rune of a bracket expression, or a perl set
// which is returned as ranges.
func (p *parser) parseBracketChar(i int) (rune, []lang.RuneRange, int, error) {
	if p.re[i] != '\\' {
		return p.re[i], nil, 1, nil
	}
	if i+1 >= len(p.re) {
		return 0, nil, 0, newParserError(i, "unexpected EOS", nil)
	}
	if rs := parsePerlCharSet(p.re, i); rs != nil {
		return 0, rs.ranges(), 2, nil
	}
	return escapedChar(p.re[i+1]), nil, 2, nil
}

func (p *parser) parseEscape(i int) (atom, int, error) {
	if i+1 >= len(p.re) {
		return nil, 0, newParserError(i, "unexpected EOS", nil)
	}

	// try to parse perl char set
	if set := parsePerlCharSet(p.re, i); set != nil {
		return func(q grammar.Quantifier) *lang.LexState {
			if set.negate {
				return lang.NotCharRange(set.base, q)
			}
			return lang.CharRange(set.base, q)
		}, i + 2, nil
	}

	// otherwise treat as an escaped literal
	c := escapedChar(p.re[i+1])
	return func(q grammar.Quantifier) *lang.LexState {
		return lang.Char(c, q)
	}, i + 2, nil
}

// {m}, {m,}, {m,n} and ? and * and +
func (p *parser) parseQuantifier(i int) (q grammar.Quantifier, consumed int, err error) {
	if i >= len(p.re) {
		return grammar.Once, 0, nil
	}

	switch p.re[i] {
	case '+':
		return grammar.AtLeastOnce, 1, nil
	case '?':
		return grammar.AtMostOnce, 1, nil
	case '*':
		return grammar.Any, 1, nil
	}

	if p.re[i] != '{' {
		return grammar.Once, 0, nil
	}

	re := string(p.re[i:])
	endIdx := strings.IndexRune(re, '}')
	if endIdx == -1 {
		return grammar.Quantifier{}, 0, newParserError(i, "did not find closing '}'", nil)
	}
	consumed = len([]rune(re[:endIdx])) + 1

	// inside '{...}'
	numStrs := strings.SplitN(re[1:endIdx], ",", 2)

	occMin, err := strconv.Atoi(numStrs[0])
	if err != nil {
		return grammar.Quantifier{}, 0, newParserError(i, "failed to convert to number", err)
	}

	if len(numStrs) == 1 {
		return grammar.Exactly(occMin), consumed, nil
	}
	if numStrs[1] == "" {
		return grammar.AtLeast(occMin), consumed, nil
	}

	occMax, err := strconv.Atoi(numStrs[1])
	if err != nil {
		return grammar.Quantifier{}, 0, newParserError(i, "failed to convert to number", err)
	}
	if occMax < occMin {
		return grammar.Quantifier{}, 0, newParserError(i, fmt.Sprintf("invalid repeat count %s", re[:endIdx+1]), nil)
	}

	return grammar.Range(occMin, occMax), consumed, nil
}

// parse an ASCII escape sequence from c if there is one (e.g. '\t', '\n', ...)
// if c isn't an ASCII escape sequence, return c
// should be called if the character preceding c in the input string is '\'
// https://en.wikipedia.org/wiki/Escape_sequences_in_C
func escapedChar(c rune) rune {
	switch c {
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 'e':
		return 0x1b
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	}
	return c
}
