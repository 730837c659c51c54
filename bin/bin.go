// Package bin implements bin buffers: 2-D spreads whose outer slices are
// themselves spreads.
//
// A bin buffer is a stream.Stream of *spread.Spread[T] with a growth hook that
// repeats the existing pattern instead of leaving new outer slots empty. When
// the backing storage grows from oldCap > 0 to newCap, every new slot i in
// [oldCap, newCap) receives a deep clone of the inner spread at i % oldCap.
// The first allocation (oldCap == 0) fills every slot with a fresh, empty
// inner spread.
//
// Slots below oldCap are never touched by growth, so a caller holding an inner
// spread obtained through Inner keeps seeing the same live instance.
//
//	b, _ := bin.New[float64](3)
//	inner, _ := b.Inner(0) // one of three empty inner spreads
//	inner.Append(1.5)
//	_ = b.SetLength(7) // slots 3..6 clone slots 0, 1, 2, 0
package bin

import (
	"fmt"
	"iter"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/spread"
	"github.com/arloliu/spreadbuf/stream"
)

// Buffer is a growable 2-D spread.
type Buffer[T any] struct {
	s      *stream.Stream[*spread.Spread[T]]
	clones uint64
}

// New creates a bin buffer of length outer slices. Inner spreads fill grown
// positions with the zero value of T.
func New[T any](length int, opts ...stream.Option) (*Buffer[T], error) {
	return NewWithFactory[T](length, nil, opts...)
}

// NewWithFactory creates a bin buffer whose freshly created inner spreads use
// factory for their own grown positions. A nil factory yields zero values.
func NewWithFactory[T any](length int, factory func() T, opts ...stream.Option) (*Buffer[T], error) {
	b := &Buffer[T]{}

	s, err := stream.NewWithHook(length, b.cloneHook(factory), opts...)
	if err != nil {
		return nil, err
	}
	b.s = s

	return b, nil
}

// cloneHook populates new outer slots. old and grown follow the
// stream.GrowthHook contract: grown[:len(old)] already holds old.
func (b *Buffer[T]) cloneHook(factory func() T) stream.GrowthHook[*spread.Spread[T]] {
	return func(old, grown []*spread.Spread[T]) {
		oldCap := len(old)
		if oldCap == 0 {
			for i := range grown {
				grown[i] = spread.NewWithFactory(0, factory)
			}

			return
		}

		for i := oldCap; i < len(grown); i++ {
			src := old[i%oldCap]
			if src == nil {
				grown[i] = spread.NewWithFactory(0, factory)
				continue
			}
			grown[i] = src.Clone()
			b.clones++
		}
	}
}

// Stream returns the underlying outer stream.
func (b *Buffer[T]) Stream() *stream.Stream[*spread.Spread[T]] {
	return b.s
}

// Len returns the outer slice count.
func (b *Buffer[T]) Len() int {
	return b.s.Len()
}

// Capacity returns the outer backing capacity.
func (b *Buffer[T]) Capacity() int {
	return b.s.Capacity()
}

// SetLength sets the outer slice count. Shrinking keeps trailing inner
// spreads in the backing storage for reuse.
func (b *Buffer[T]) SetLength(n int) error {
	return b.s.SetLength(n)
}

// Trim releases outer slots past the current length together with their
// inner spreads.
func (b *Buffer[T]) Trim() {
	b.s.Trim()
}

// Inner returns the live inner spread at outer index i. The returned spread
// is not a copy: changes through it are visible to every reader of the bin.
func (b *Buffer[T]) Inner(i int) (*spread.Spread[T], error) {
	inner, err := b.s.Get(i)
	if err != nil {
		return nil, fmt.Errorf("bin inner spread: %w", err)
	}

	return inner, nil
}

// SetInner replaces the inner spread at outer index i. A nil inner spread is
// rejected.
func (b *Buffer[T]) SetInner(i int, inner *spread.Spread[T]) error {
	if inner == nil {
		return fmt.Errorf("%w: nil inner spread", errs.ErrInvalidArgument)
	}

	return b.s.Set(i, inner)
}

// All returns an iterator over (outer index, inner spread) pairs.
func (b *Buffer[T]) All() iter.Seq2[int, *spread.Spread[T]] {
	return b.s.ReadView().All()
}

// BinSizes returns the slice count of every inner spread.
func (b *Buffer[T]) BinSizes() []int {
	sizes := make([]int, b.Len())
	for i, inner := range b.All() {
		sizes[i] = inner.Len()
	}

	return sizes
}

// TotalCount returns the sum of all inner slice counts.
func (b *Buffer[T]) TotalCount() int {
	total := 0
	for _, inner := range b.All() {
		total += inner.Len()
	}

	return total
}

// Flatten returns the concatenation of all inner spreads.
func (b *Buffer[T]) Flatten() []T {
	out := make([]T, 0, b.TotalCount())
	for _, inner := range b.All() {
		for _, v := range inner.All() {
			out = append(out, v)
		}
	}

	return out
}

// Clones returns how many inner spreads were cloned by growth so far.
func (b *Buffer[T]) Clones() uint64 {
	return b.clones
}

// Stats returns the outer stream stats.
func (b *Buffer[T]) Stats() stream.Stats {
	return b.s.Stats()
}

// ReadView returns a read-only view over the outer slices.
func (b *Buffer[T]) ReadView() stream.ReadView[*spread.Spread[T]] {
	return b.s.ReadView()
}

// WriteView returns a mutable view over the outer slices.
func (b *Buffer[T]) WriteView() stream.WriteView[*spread.Spread[T]] {
	return b.s.WriteView()
}
