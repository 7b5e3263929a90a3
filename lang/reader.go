package lang

import (
	"strconv"

	"github.com/mfroeh/gogram/grammar"
)

// SourceReader reads the runes of a source.
type SourceReader struct {
	*grammar.SliceReader[rune]
	source *Source
}

func NewSourceReader(src *Source, tr grammar.Trace) *SourceReader {
	return &SourceReader{
		SliceReader: grammar.NewSliceReader(src.Runes(), tr, describeRune),
		source:      src,
	}
}

func (r *SourceReader) Source() *Source {
	return r.source
}

func (r *SourceReader) Location(m grammar.Marker[rune]) Location {
	return r.source.Location(m)
}

func describeRune(c rune) string {
	if c < ' ' || c == 0x7f {
		s := strconv.QuoteRune(c)
		return s[1 : len(s)-1]
	}
	return string(c)
}

// TokenReader reads lexed tokens.
type TokenReader struct {
	*grammar.SliceReader[Token]
}

func NewTokenReader(tokens []Token, tr grammar.Trace) *TokenReader {
	return &TokenReader{SliceReader: grammar.NewSliceReader(tokens, tr, describeToken)}
}

func describeToken(t Token) string {
	return t.Span().Text()
}

// Location returns the location of the token at m, or of the end of the last
// token if m is past it.
func (r *TokenReader) Location(m grammar.Marker[Token]) Location {
	tokens := r.Symbols()
	if len(tokens) == 0 {
		return Location{}
	}
	if m.Pos() >= 0 && m.Pos() < len(tokens) {
		return tokens[m.Pos()].Span().Location()
	}
	last := tokens[len(tokens)-1].Span()
	if last.Source == nil {
		return Location{}
	}
	return last.Source.Location(last.End)
}
