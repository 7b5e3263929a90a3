package grammar

import "strconv"

// Marker is a position in an input sequence of T. The position before the
// first symbol is -1.
type Marker[T any] struct {
	pos int
}

func MarkerAt[T any](pos int) Marker[T] {
	return Marker[T]{pos: pos}
}

// Origin returns the marker in front of the first symbol.
func Origin[T any]() Marker[T] {
	return Marker[T]{pos: -1}
}

func (m Marker[T]) Pos() int {
	return m.pos
}

func (m Marker[T]) Add(n int) Marker[T] {
	return Marker[T]{pos: m.pos + n}
}

// Sub returns the number of symbols between o and m.
func (m Marker[T]) Sub(o Marker[T]) int {
	return m.pos - o.pos
}

func (m Marker[T]) Less(o Marker[T]) bool {
	return m.pos < o.pos
}

func (m Marker[T]) String() string {
	return strconv.Itoa(m.pos)
}
