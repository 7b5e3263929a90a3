package lang

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mfroeh/gogram/grammar"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source is the text of one input file.
type Source struct {
	Path       string
	text       []rune
	lineStarts []int
}

func NewSource(path, text string) *Source {
	s := &Source{Path: path, text: []rune(text)}
	s.lineStarts = append(s.lineStarts, 0)
	for i, c := range s.text {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// ReadSource reads a source from rd. Input starting with a byte order mark
// is decoded accordingly, anything else is taken as UTF-8.
func ReadSource(path string, rd io.Reader) (*Source, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(rd, decoder))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewSource(path, string(b)), nil
}

func OpenSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSource(path, f)
}

func (s *Source) Runes() []rune {
	return s.text
}

func (s *Source) Len() int {
	return len(s.text)
}

// Text returns the text between two markers, or "" if either lies outside
// the source.
func (s *Source) Text(start, end grammar.Marker[rune]) string {
	if start.Pos() < 0 || end.Pos() > len(s.text) || end.Less(start) {
		return ""
	}
	return string(s.text[start.Pos():end.Pos()])
}

// Location returns the line and column of the rune at m, both counted from 1.
// Markers past the end are located right after the last rune.
func (s *Source) Location(m grammar.Marker[rune]) Location {
	pos := min(max(m.Pos(), 0), len(s.text))
	line := sort.Search(len(s.lineStarts), func(i int) bool { return s.lineStarts[i] > pos }) - 1
	return Location{File: s.Path, Line: line + 1, Column: pos - s.lineStarts[line] + 1}
}

// Location is a position in a source file.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) IsEmpty() bool {
	return l.File == "" && l.Line == 0 && l.Column == 0
}

func (l Location) String() string {
	if l.IsEmpty() {
		return "-"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}
