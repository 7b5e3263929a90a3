package lang

import "github.com/mfroeh/gogram/grammar"

// SourceSpan is a range of runes of a source.
type SourceSpan struct {
	Source *Source
	Start  grammar.Marker[rune]
	End    grammar.Marker[rune]
}

var EmptySpan = SourceSpan{Start: grammar.Origin[rune](), End: grammar.Origin[rune]()}

type span[T any] interface {
	StartMarker() grammar.Marker[T]
	EndMarker() grammar.Marker[T]
}

// SpanOf returns the span of a match over runes. The source is known if ctx
// reads one.
func SpanOf(m span[rune], ctx grammar.Context[rune]) SourceSpan {
	s := SourceSpan{Start: m.StartMarker(), End: m.EndMarker()}
	if sr, ok := ctx.(interface{ Source() *Source }); ok {
		s.Source = sr.Source()
	}
	return s
}

// SpanOfTokens returns the span from the first to the last token of a match
// over tokens.
func SpanOfTokens(m span[Token], ctx grammar.Context[Token]) SourceSpan {
	tokens := ctx.Slice(m.StartMarker(), m.EndMarker())
	if len(tokens) == 0 {
		return EmptySpan
	}
	first, last := tokens[0].Span(), tokens[len(tokens)-1].Span()
	src := first.Source
	if src == nil {
		src = last.Source
	}
	return SourceSpan{Source: src, Start: first.Start, End: last.End}
}

// Union returns the smallest span covering all non-empty spans.
func Union(spans ...SourceSpan) SourceSpan {
	u := EmptySpan
	for _, s := range spans {
		if s.IsEmpty() {
			continue
		}
		if u.IsEmpty() {
			u = s
			continue
		}
		if s.Start.Less(u.Start) {
			u.Start = s.Start
		}
		if u.End.Less(s.End) {
			u.End = s.End
		}
		if u.Source == nil {
			u.Source = s.Source
		}
	}
	return u
}

func (s SourceSpan) Text() string {
	if s.Source == nil {
		return ""
	}
	return s.Source.Text(s.Start, s.End)
}

func (s SourceSpan) Len() int {
	return s.End.Sub(s.Start)
}

func (s SourceSpan) IsEmpty() bool {
	return s.Start == grammar.Origin[rune]() && s.End == grammar.Origin[rune]()
}

func (s SourceSpan) Location() Location {
	if s.Source == nil || s.IsEmpty() {
		return Location{}
	}
	return s.Source.Location(s.Start)
}
