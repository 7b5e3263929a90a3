// Package pattern compiles regular expressions into lexer rules.
//
// The notation is the ERE subset ( ) | [ ] [^ ] . ? * + {m} {m,} {m,n}, with
// POSIX [:class:] and perl \d \w \s sets, C escapes and the ^ and $ anchors.
// A compiled pattern is a rule over runes: literals become character states,
// bracket expressions become range states, groups become rule references and
// alternations become choice references.
//
// Matching follows the grammar engine, not a backtracking regexp engine.
// Quantifiers are possessive, so `a*a` never matches, and an alternation
// takes its longest alternative. Empty matches are never reported.
package pattern

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mfroeh/gogram/grammar"
	"github.com/mfroeh/gogram/lang"
)

type Pattern struct {
	source      string
	root        *grammar.Rule[rune, lang.Token]
	grammar     *grammar.Grammar[rune, lang.Token]
	groups      map[*grammar.Rule[rune, lang.Token]]int
	strictStart bool
	strictEnd   bool
}

// Submatch is the text a group matched. Offset is a byte offset into the
// searched string, -1 for a group that did not take part in the match.
type Submatch struct {
	Offset int
	Str    string
}

func Compile(re string) (*Pattern, error) {
	source := re

	strictStart := false
	if len(re) > 0 && re[0] == '^' {
		strictStart = true
		re = re[1:]
	}

	strictEnd := false
	if len(re) > 0 && re[len(re)-1] == '$' && !strings.HasSuffix(re, `\$`) {
		strictEnd = true
		re = re[:len(re)-1]
	}

	p := &parser{re: []rune(re), groups: map[*grammar.Rule[rune, lang.Token]]int{}}
	if len(p.re) == 0 {
		return nil, fmt.Errorf("failed to construct pattern from %q: %w", source, newParserError(0, "empty pattern", nil))
	}
	states, j, err := p.parseAlternation(0)
	if err == nil && j < len(p.re) {
		err = newParserError(j, "unexpected ')'", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to construct pattern from %q: %w", source, err)
	}

	pat := &Pattern{
		source:      source,
		groups:      p.groups,
		strictStart: strictStart,
		strictEnd:   strictEnd,
	}
	pat.root = grammar.NewRule(re, pat.capture, states...)
	pat.grammar = grammar.NewGrammar("pattern", pat.root)
	return pat, nil
}

// MustCompile is Compile panicking on error, for patterns known to be valid.
func MustCompile(re string) *Pattern {
	p, err := Compile(re)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) String() string {
	return p.source
}

// NumGroups returns the number of capturing groups.
func (p *Pattern) NumGroups() int {
	return len(p.groups)
}

// Rule returns a rule matching the pattern whose product is built by
// factory. Anchors have no effect on the rule.
func (p *Pattern) Rule(id string, factory grammar.ProductFactory[rune, lang.Token]) *grammar.Rule[rune, lang.Token] {
	return grammar.NewRule(id, factory, p.root.States...)
}

// captured is the product of a search: the spans of all groups, the whole
// match first.
type captured struct {
	*lang.BaseToken
	groups []lang.SourceSpan
}

func (p *Pattern) capture(m *grammar.RuleMatch[rune, lang.Token], ctx grammar.Context[rune]) lang.Token {
	groups := make([]lang.SourceSpan, len(p.groups)+1)
	for i := range groups {
		groups[i] = lang.EmptySpan
	}
	groups[0] = lang.SpanOf(m, ctx)
	p.collect(m, ctx, groups)
	return &captured{BaseToken: lang.NewToken("match", m, ctx), groups: groups}
}

// collect records the spans of the groups matched within m. A repeated group
// keeps its last repetition.
func (p *Pattern) collect(m *grammar.RuleMatch[rune, lang.Token], ctx grammar.Context[rune], groups []lang.SourceSpan) {
	for _, s := range m.States() {
		for _, rm := range s.RuleMatches() {
			if n, ok := p.groups[rm.Rule()]; ok {
				groups[n] = lang.SpanOf(rm, ctx)
			}
			p.collect(rm, ctx, groups)
		}
		for _, cm := range s.ChoiceMatches() {
			if rm := cm.MatchedRule(); rm != nil {
				p.collect(rm, ctx, groups)
			}
		}
	}
}

// FindAllSubmatches finds up to maxCount submatches of the pattern in the given string
// To return all submatches pass a maxCount of -1
func (p *Pattern) FindAllSubmatches(s string, maxCount int) [][]Submatch {
	src := lang.NewSource("", s)
	runes := src.Runes()
	r := lang.NewSourceReader(src, nil)

	// byte offset of each rune
	offsets := make([]int, 0, len(runes)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))

	var allSubmatches [][]Submatch
	for i := 0; i < len(runes); i++ {
		if maxCount != -1 && len(allSubmatches) >= maxCount {
			return allSubmatches
		}
		if p.strictStart && i != 0 && runes[i-1] != '\n' {
			continue
		}

		r.Seek(grammar.MarkerAt[rune](i))
		// the capture factory never fails the pass
		product, _ := grammar.RunOnce(p.grammar, r)
		r.Diagnostics().DiscardBacktrackLabels()
		t, ok := product.Get()
		if !ok {
			continue
		}

		groups := t.(*captured).groups
		end := groups[0].End.Pos()
		if p.strictEnd && end != len(runes) && runes[end] != '\n' {
			continue
		}

		submatches := make([]Submatch, len(groups))
		for n, g := range groups {
			if g.IsEmpty() {
				submatches[n] = Submatch{Offset: -1}
				continue
			}
			submatches[n] = Submatch{Offset: offsets[g.Start.Pos()], Str: g.Text()}
		}
		allSubmatches = append(allSubmatches, submatches)
		i = end - 1
	}
	return allSubmatches
}

func (p *Pattern) FindSubmatch(s string) []Submatch {
	submatch := p.FindAllSubmatches(s, 1)
	if len(submatch) < 1 {
		return nil
	}
	return submatch[0]
}

func (p *Pattern) Match(s string) bool {
	return len(p.FindSubmatch(s)) > 0
}

// Replace replaces the first match in s with with, in which $N stands for
// the text of group N.
func (p *Pattern) Replace(s string, with string) string {
	submatches := p.FindSubmatch(s)
	if submatches == nil {
		return s
	}

	out := strings.Builder{}
	for i := 0; i < len(with); i++ {
		if with[i] == '$' && i+1 < len(with) && unicode.IsDigit(rune(with[i+1])) {
			num := 0
			for j := i + 1; j < len(with) && unicode.IsDigit(rune(with[j])); j++ {
				num *= 10
				num += int(with[j] - '0')
				i++
			}

			if num < len(submatches) {
				out.WriteString(submatches[num].Str)
			}
		} else {
			out.WriteByte(with[i])
		}
	}

	whole := submatches[0]
	return s[:whole.Offset] + out.String() + s[whole.Offset+len(whole.Str):]
}
