// Package stream implements the buffered stream that backs a connection: a
// growable buffer with a logical length distinct from its backing capacity.
//
// # Growth
//
// SetLength never reallocates while the requested length fits the current
// capacity. When it does not, the stream picks a new capacity from its
// GrowthPolicy, allocates new backing storage, copies the old storage into it
// at the same indices and then calls its GrowthHook to populate the newly
// created slots [oldCapacity, newCapacity). The default hook leaves the zero
// value in place; Fill uses a factory; the bin package installs a hook that
// clones existing inner spreads.
//
//	s, _ := stream.NewWithFactory(0, func() float64 { return 1 })
//	_ = s.SetLength(10) // slots 0..9 hold 1
//
// Shrinking only moves the logical length. Trailing elements stay in the
// backing storage and are visible again when the length grows back without a
// reallocation. Trim releases the unused capacity explicitly.
//
// # Bulk views
//
// ReadView and WriteView expose the backing storage of [0, Len()) for bulk
// access. Every view carries the generation it was issued under; any length
// change, reallocation, Trim or Invalidate bumps the stream generation, after
// which every method of an older view fails with errs.ErrStaleView. Setting
// the same length twice does not bump the generation.
//
//	w := s.WriteView()
//	raw, err := w.Slice() // capacity-capped, writes stay within Len()
//	if err != nil {
//	    return err
//	}
//	for i := range raw {
//	    raw[i] *= 2
//	}
//
// # Concurrency
//
// A Stream is not safe for concurrent use. It is owned and mutated by exactly
// one producer per frame; consumers treat views as borrowed and frame-scoped.
package stream
