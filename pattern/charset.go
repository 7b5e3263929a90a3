package pattern

import (
	"slices"
	"unicode"

	"github.com/mfroeh/gogram/lang"
)

var (
	wordChars = []lang.RuneRange{
		{From: 'a', To: 'z'},
		{From: 'A', To: 'Z'},
		{From: '0', To: '9'},
		{From: '_', To: '_'},
	}
	digitChars = []lang.RuneRange{
		{From: '0', To: '9'},
	}
	spaceChars = []lang.RuneRange{
		{From: ' ', To: ' '},
		{From: '\t', To: '\t'},
		{From: '\r', To: '\r'},
		{From: '\n', To: '\n'},
		{From: '\v', To: '\v'},
		{From: '\f', To: '\f'},
	}
)

var posixCharSets = map[string][]lang.RuneRange{
	"[:word:]": wordChars,
	"[:alnum:]": {
		{From: 'a', To: 'z'},
		{From: 'A', To: 'Z'},
		{From: '0', To: '9'},
	},
	"[:alpha:]": {
		{From: 'a', To: 'z'},
		{From: 'A', To: 'Z'},
	},
	"[:ascii:]": {
		{From: 0x0, To: 0x7f},
	},
	"[:blank:]": {
		{From: ' ', To: ' '},
		{From: '\t', To: '\t'},
	},
	"[:cntrl:]": {
		{From: 0x0, To: 0x1f},
		{From: 0x7f, To: 0x7f},
	},
	"[:digit:]": digitChars,
	"[:graph:]": {
		{From: 0x21, To: 0x7e},
	},
	"[:lower:]": {
		{From: 'a', To: 'z'},
	},
	"[:print:]": {
		{From: 0x20, To: 0x7e},
	},
	"[:punct:]": {
		{From: '!', To: '/'},
		{From: ':', To: '@'},
		{From: '[', To: '`'},
		{From: '{', To: '~'},
	},
	"[:space:]": spaceChars,
	"[:upper:]": {
		{From: 'A', To: 'Z'},
	},
	"[:xdigit:]": {
		{From: 'A', To: 'F'},
		{From: 'a', To: 'f'},
		{From: '0', To: '9'},
	},
}

// parsePosixCharSet parses a [:name:] set at i inside of a bracket
// expression and returns its ranges and the number of runes it spans.
func parsePosixCharSet(re []rune, i int) ([]lang.RuneRange, int) {
	if i+1 >= len(re) || re[i+1] != ':' {
		return nil, 0
	}
	for j := i + 2; j+1 < len(re); j++ {
		if re[j] == ':' && re[j+1] == ']' {
			ranges, ok := posixCharSets[string(re[i:j+2])]
			if !ok {
				return nil, 0
			}
			return ranges, j + 2 - i
		}
	}
	return nil, 0
}

type perlCharSet struct {
	base   []lang.RuneRange
	negate bool
}

// ranges returns the runes of the set, negated sets as the gaps between
// their base ranges.
func (s *perlCharSet) ranges() []lang.RuneRange {
	if s.negate {
		return negateCharRanges(s.base)
	}
	return s.base
}

// supported: \w, \W, \d, \D, \s, \S
func parsePerlCharSet(re []rune, i int) *perlCharSet {
	if i+1 >= len(re) || re[i] != '\\' {
		return nil
	}

	switch re[i+1] {
	case 'w', 'W':
		return &perlCharSet{base: wordChars, negate: re[i+1] == 'W'}
	case 'd', 'D':
		return &perlCharSet{base: digitChars, negate: re[i+1] == 'D'}
	case 's', 'S':
		return &perlCharSet{base: spaceChars, negate: re[i+1] == 'S'}
	}
	return nil
}

func negateCharRanges(ranges []lang.RuneRange) []lang.RuneRange {
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b lang.RuneRange) int {
		return int(a.From) - int(b.From)
	})

	var negated []lang.RuneRange
	from := rune(0)
	for _, r := range sorted {
		if r.From > from {
			negated = append(negated, lang.RuneRange{From: from, To: r.From - 1})
		}
		from = max(from, r.To+1)
	}
	if from <= unicode.MaxRune {
		negated = append(negated, lang.RuneRange{From: from, To: unicode.MaxRune})
	}
	return negated
}
