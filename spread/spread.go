// Package spread implements the slice container behind every connection: a
// resizable, indexable sequence of per-slice values of one element type.
//
// A Spread exclusively owns its storage. Indices [0, Len()) always hold an
// initialized value, produced either by the spread's factory or, when no
// factory was given, the element type's zero value.
//
// Elements that implement Cloner (a Clone method returning their own type)
// are cloned recursively by Spread.Clone, which makes a spread of spreads a
// deep copy.
package spread

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/spreadbuf/errs"
)

// Cloner is implemented by element types that need a deep copy when their
// containing spread is cloned. *Spread[T] implements Cloner[*Spread[T]].
type Cloner[T any] interface {
	Clone() T
}

// Spread is a resizable sequence of slices of type T.
type Spread[T any] struct {
	data      []T
	factory   func() T
	mutations uint64
}

// New creates a spread of n zero-valued slices. A negative n is treated as 0.
func New[T any](n int) *Spread[T] {
	return NewWithFactory[T](n, nil)
}

// NewWithFactory creates a spread of n slices, each produced by factory.
// A nil factory yields zero values.
func NewWithFactory[T any](n int, factory func() T) *Spread[T] {
	if n < 0 {
		n = 0
	}

	s := &Spread[T]{
		data:    make([]T, n),
		factory: factory,
	}
	s.fill(0, n)

	return s
}

// From creates a spread holding a copy of values.
func From[T any](values ...T) *Spread[T] {
	return &Spread[T]{data: slices.Clone(values)}
}

// Len returns the slice count. A nil spread has length 0.
func (s *Spread[T]) Len() int {
	if s == nil {
		return 0
	}

	return len(s.data)
}

// Cap returns the capacity of the backing storage. A nil spread has
// capacity 0.
func (s *Spread[T]) Cap() int {
	if s == nil {
		return 0
	}

	return cap(s.data)
}

// Mutations returns how many times Resize, Set or Append changed the spread.
// Clones start from 0.
func (s *Spread[T]) Mutations() uint64 {
	if s == nil {
		return 0
	}

	return s.mutations
}

// Resize sets the slice count to n.
//
// Growing fills every new index through the factory, including indices that
// were previously dropped by a shrink, so stale values never resurface.
func (s *Spread[T]) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: spread length %d", errs.ErrInvalidArgument, n)
	}

	old := len(s.data)
	switch {
	case n <= old:
		clear(s.data[n:old])
		s.data = s.data[:n]
	case n <= cap(s.data):
		s.data = s.data[:n]
		s.fill(old, n)
	default:
		grown := make([]T, n, max(n, 2*cap(s.data)))
		copy(grown, s.data)
		s.data = grown
		s.fill(old, n)
	}
	if n != old {
		s.mutations++
	}

	return nil
}

// Get returns the slice at index i.
func (s *Spread[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(s.data) {
		var zero T
		return zero, fmt.Errorf("%w: index %d, length %d", errs.ErrOutOfRange, i, len(s.data))
	}

	return s.data[i], nil
}

// Set stores v at index i.
func (s *Spread[T]) Set(i int, v T) error {
	if i < 0 || i >= len(s.data) {
		return fmt.Errorf("%w: index %d, length %d", errs.ErrOutOfRange, i, len(s.data))
	}
	s.data[i] = v
	s.mutations++

	return nil
}

// At returns the slice at index i without an error result.
// It panics when i is out of range, like a plain slice index.
func (s *Spread[T]) At(i int) T {
	return s.data[i]
}

// Cyclic returns the slice at i modulo the slice count. Negative indices wrap
// from the end. It reports false on an empty spread.
func (s *Spread[T]) Cyclic(i int) (T, bool) {
	n := len(s.data)
	if n == 0 {
		var zero T
		return zero, false
	}

	i %= n
	if i < 0 {
		i += n
	}

	return s.data[i], true
}

// Append adds values to the end of the spread.
func (s *Spread[T]) Append(values ...T) {
	if len(values) == 0 {
		return
	}
	s.data = append(s.data, values...)
	s.mutations++
}

// All returns an iterator over (index, value) pairs.
func (s *Spread[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if s == nil {
			return
		}
		for i, v := range s.data {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns a copy of the slices.
func (s *Spread[T]) Values() []T {
	return slices.Clone(s.data)
}

// Clone returns an independent spread with the same length and values.
// Elements implementing Cloner are cloned recursively.
func (s *Spread[T]) Clone() *Spread[T] {
	if s == nil {
		return nil
	}

	c := &Spread[T]{
		data:    make([]T, len(s.data)),
		factory: s.factory,
	}
	for i, v := range s.data {
		c.data[i] = cloneElem(v)
	}

	return c
}

// Equal reports whether a and b hold the same values. Two nil spreads are equal.
func Equal[T comparable](a, b *Spread[T]) bool {
	if a == nil || b == nil {
		return a == b
	}

	return slices.Equal(a.data, b.data)
}

func (s *Spread[T]) fill(from, to int) {
	if s.factory == nil {
		return
	}
	for i := from; i < to; i++ {
		s.data[i] = s.factory()
	}
}

func cloneElem[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}

	return v
}
