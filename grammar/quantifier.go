package grammar

import (
	"fmt"
	"math"
)

// Unbounded is the Max of a quantifier without upper bound.
const Unbounded = math.MaxInt

// Quantifier limits how often a state may repeat. A Min of 0 means there is
// no lower bound.
type Quantifier struct {
	Min int
	Max int
}

var (
	Once        = Quantifier{Min: 1, Max: 1}
	AtMostOnce  = Quantifier{Min: 0, Max: 1}
	AtLeastOnce = Quantifier{Min: 1, Max: Unbounded}
	Any         = Quantifier{Min: 0, Max: Unbounded}
)

func Range(mi, ma int) Quantifier {
	return Quantifier{Min: mi, Max: ma}
}

func Exactly(n int) Quantifier {
	return Quantifier{Min: n, Max: n}
}

func AtLeast(n int) Quantifier {
	return Quantifier{Min: n, Max: Unbounded}
}

func AtMost(n int) Quantifier {
	return Quantifier{Min: 0, Max: n}
}

// Allows reports whether an n-th repetition may still be attempted.
func (q Quantifier) Allows(n int) bool {
	return n <= q.Max
}

// IsMetBy reports whether n repetitions are a legal place to stop.
func (q Quantifier) IsMetBy(n int) bool {
	return n >= q.Min && n <= q.Max
}

func (q Quantifier) String() string {
	switch q {
	case Once:
		return ""
	case AtMostOnce:
		return "?"
	case AtLeastOnce:
		return "+"
	case Any:
		return "*"
	}
	if q.Max == Unbounded {
		return fmt.Sprintf("{%d,}", q.Min)
	}
	if q.Min == q.Max {
		return fmt.Sprintf("{%d}", q.Min)
	}
	return fmt.Sprintf("{%d,%d}", q.Min, q.Max)
}
