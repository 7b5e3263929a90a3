package grammar

// Optional holds a product or nothing.
type Optional[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) HasValue() bool {
	return o.ok
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Value returns the product and fails the pass if there is none.
func (o Optional[T]) Value() T {
	if !o.ok {
		Failf("optional product has no value")
	}
	return o.value
}
