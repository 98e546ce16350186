package enums

import "fmt"

// Indexed is the constraint satisfied by closed enum types with a dense
// index. The underlying type must be int so that the variant value is its
// own index; EnumCount reports the fixed variant count and String the
// human-readable display label.
type Indexed interface {
	~int
	fmt.Stringer
	EnumCount() int
}

// Count returns the number of variants of E. The value is a fixed property
// of the type, reached through its zero value.
func Count[E Indexed]() int {
	var zero E
	return zero.EnumCount()
}

// ToIndex returns the dense zero-based index of v. It panics if v is not a
// declared variant of E.
func ToIndex[E Indexed](v E) int {
	i := int(v)
	if i < 0 || i >= Count[E]() {
		panic(fmt.Sprintf("enums: value %d out of range for %T (count %d)", i, v, Count[E]()))
	}

	return i
}

// FromIndex returns the variant of E with the given dense index. It panics
// if i is outside [0, Count).
func FromIndex[E Indexed](i int) E {
	if i < 0 || i >= Count[E]() {
		var zero E
		panic(fmt.Sprintf("enums: index %d out of range for %T (count %d)", i, zero, Count[E]()))
	}

	return E(i)
}

// Map is dense per-variant storage for an enum type. The backing store is
// allocated once at construction and never resized.
type Map[E Indexed, T any] struct {
	data []T
}

// NewMap allocates a Map with one zero-valued slot per variant of E.
func NewMap[E Indexed, T any]() Map[E, T] {
	return Map[E, T]{data: make([]T, Count[E]())}
}

// Len returns the number of slots, which equals Count[E]().
func (m Map[E, T]) Len() int { return len(m.data) }

// At returns the value stored for variant v.
func (m Map[E, T]) At(v E) T { return m.data[ToIndex(v)] }

// Ptr returns a pointer to the slot for variant v.
func (m Map[E, T]) Ptr(v E) *T { return &m.data[ToIndex(v)] }

// Set stores value for variant v.
func (m Map[E, T]) Set(v E, value T) { m.data[ToIndex(v)] = value }

// ForEach calls fn for every variant in declaration order.
func (m Map[E, T]) ForEach(fn func(v E, value T)) {
	for i, value := range m.data {
		fn(E(i), value)
	}
}
