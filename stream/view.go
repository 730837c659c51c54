package stream

import (
	"fmt"
	"iter"

	"github.com/arloliu/spreadbuf/errs"
)

type view[T any] struct {
	owner *Stream[T]
	data  []T
	gen   uint64
}

// Len returns the number of elements the view was issued for.
func (v view[T]) Len() int {
	return len(v.data)
}

// Generation returns the stream generation the view was issued under.
func (v view[T]) Generation() uint64 {
	return v.gen
}

// Valid reports whether the owning stream has not been resized or
// invalidated since the view was issued. The zero view is never valid.
func (v view[T]) Valid() bool {
	return v.owner != nil && v.owner.generation == v.gen
}

// At returns the element at index i.
func (v view[T]) At(i int) (T, error) {
	var zero T
	if err := v.check(); err != nil {
		return zero, err
	}
	if i < 0 || i >= len(v.data) {
		return zero, fmt.Errorf("%w: view index %d, length %d", errs.ErrOutOfRange, i, len(v.data))
	}

	return v.data[i], nil
}

// CopyTo copies the viewed elements into dst and returns the number copied,
// which is min(len(dst), Len()).
func (v view[T]) CopyTo(dst []T) (int, error) {
	if err := v.check(); err != nil {
		return 0, err
	}

	return copy(dst, v.data), nil
}

// All returns an iterator over (index, value) pairs. Iteration stops early if
// the view becomes stale during the loop.
func (v view[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range v.data {
			if !v.Valid() || !yield(i, v.data[i]) {
				return
			}
		}
	}
}

func (v view[T]) check() error {
	if v.owner == nil {
		return fmt.Errorf("%w: view has no owning stream", errs.ErrStaleView)
	}
	if v.owner.generation != v.gen {
		return fmt.Errorf("%w: issued at generation %d, stream at %d",
			errs.ErrStaleView, v.gen, v.owner.generation)
	}

	return nil
}

// ReadView is a read-only bulk view over a stream's [0, Len()).
//
// It offers no path to mutate the stream. A ReadView is borrowed: it must not
// be retained across a SetLength, Trim or Invalidate of its stream.
type ReadView[T any] struct {
	view[T]
}

// WriteView is a mutable bulk view over a stream's [0, Len()).
//
// Writes are confined to the logical length at issue time; writes through a
// stale view fail with errs.ErrStaleView.
type WriteView[T any] struct {
	view[T]
}

// Set stores val at index i.
func (v WriteView[T]) Set(i int, val T) error {
	if err := v.check(); err != nil {
		return err
	}
	if i < 0 || i >= len(v.data) {
		return fmt.Errorf("%w: view index %d, length %d", errs.ErrOutOfRange, i, len(v.data))
	}
	v.data[i] = val
	v.owner.mutations++

	return nil
}

// CopyFrom copies src into the view starting at index 0.
// It rejects src longer than the view instead of truncating it.
func (v WriteView[T]) CopyFrom(src []T) (int, error) {
	if err := v.check(); err != nil {
		return 0, err
	}
	if len(src) > len(v.data) {
		return 0, fmt.Errorf("%w: writing %d elements into view of length %d",
			errs.ErrOutOfRange, len(src), len(v.data))
	}

	v.owner.mutations++

	return copy(v.data, src), nil
}

// Fill sets every element of the view to val.
func (v WriteView[T]) Fill(val T) error {
	if err := v.check(); err != nil {
		return err
	}
	for i := range v.data {
		v.data[i] = val
	}
	v.owner.mutations++

	return nil
}

// Slice returns the raw storage of the view for hot loops.
//
// The slice's capacity equals its length, so append reallocates instead of
// writing into backing slots past the logical length. The slice itself is not
// generation-checked after it is returned: callers must drop it before the
// next resize of the stream. Writes through it are not counted individually;
// the call itself counts as one mutation.
func (v WriteView[T]) Slice() ([]T, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	v.owner.mutations++

	return v.data, nil
}
