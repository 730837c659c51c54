package stream

import (
	"fmt"
	"slices"

	"github.com/arloliu/spreadbuf/errs"
	"go.uber.org/zap"
)

// Stream is a growable buffer of T with a logical length <= capacity.
//
// Every backing slot, in use or not, holds a value produced by the growth
// hook, so indices [0, Len()) never expose uninitialized data.
type Stream[T any] struct {
	buf        []T
	length     int
	generation uint64
	mutations  uint64
	hook       GrowthHook[T]
	policy     GrowthPolicy
	name       string
	logger     *zap.Logger

	reallocations  uint64
	populatedSlots uint64
	trims          uint64
	hookCalls      uint64
}

// New creates a stream of the given length whose new slots hold the zero value.
func New[T any](length int, opts ...Option) (*Stream[T], error) {
	return NewWithHook(length, ZeroFill[T](), opts...)
}

// NewWithFactory creates a stream whose new slots are produced by factory.
func NewWithFactory[T any](length int, factory func() T, opts ...Option) (*Stream[T], error) {
	return NewWithHook(length, Fill(factory), opts...)
}

// NewWithHook creates a stream that populates new slots with hook.
//
// The initial allocation, if length > 0, already goes through the hook with an
// empty old storage.
func NewWithHook[T any](length int, hook GrowthHook[T], opts ...Option) (*Stream[T], error) {
	if hook == nil {
		return nil, errs.ErrNilHook
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: stream length %d", errs.ErrInvalidArgument, length)
	}

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	s := &Stream[T]{
		hook:   hook,
		policy: cfg.policy,
		name:   cfg.name,
		logger: cfg.logger.Named("stream"),
	}
	if err := s.SetLength(length); err != nil {
		return nil, err
	}

	return s, nil
}

// Name returns the stream name.
func (s *Stream[T]) Name() string {
	return s.name
}

// Len returns the logical length.
func (s *Stream[T]) Len() int {
	return s.length
}

// Capacity returns the size of the backing storage.
func (s *Stream[T]) Capacity() int {
	return len(s.buf)
}

// Generation returns the current view generation.
func (s *Stream[T]) Generation() uint64 {
	return s.generation
}

// Mutations returns how many element writes the stream has seen. Set and
// every WriteView write count, and so does handing out WriteView.Slice, since
// writes through the raw slice cannot be observed.
func (s *Stream[T]) Mutations() uint64 {
	return s.mutations
}

// SetLength sets the logical length to n.
//
// If n exceeds the capacity the backing storage is replaced by a larger one
// and the growth hook populates the new slots. Any change of length
// invalidates previously issued views; setting the current length again is a
// no-op.
func (s *Stream[T]) SetLength(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: stream length %d", errs.ErrInvalidArgument, n)
	}
	if n == s.length {
		return nil
	}
	if n > len(s.buf) {
		s.grow(n)
	}

	s.length = n
	s.generation++

	return nil
}

func (s *Stream[T]) grow(n int) {
	oldCap := len(s.buf)
	newCap := s.policy.Capacity(oldCap, n)

	grown := make([]T, newCap)
	copy(grown, s.buf)
	s.hook(s.buf, grown)
	s.hookCalls++
	s.buf = grown

	s.reallocations++
	s.populatedSlots += uint64(newCap - oldCap) //nolint:gosec

	s.logger.Debug("backing storage grown",
		zap.String("stream", s.name),
		zap.Int("old_capacity", oldCap),
		zap.Int("new_capacity", newCap),
		zap.Int("requested", n),
	)
}

// Trim shrinks the backing storage to the logical length, releasing the
// trailing slots. It is a no-op when there is no unused capacity.
func (s *Stream[T]) Trim() {
	if len(s.buf) == s.length {
		return
	}

	oldCap := len(s.buf)
	if s.length == 0 {
		s.buf = nil
	} else {
		s.buf = slices.Clone(s.buf[:s.length])
	}
	s.trims++
	s.generation++

	s.logger.Debug("backing storage trimmed",
		zap.String("stream", s.name),
		zap.Int("old_capacity", oldCap),
		zap.Int("new_capacity", len(s.buf)),
	)
}

// Invalidate marks every previously issued view as stale without changing
// the content.
func (s *Stream[T]) Invalidate() {
	s.generation++
}

// Get returns the element at index i.
func (s *Stream[T]) Get(i int) (T, error) {
	if i < 0 || i >= s.length {
		var zero T
		return zero, s.rangeError(i)
	}

	return s.buf[i], nil
}

// Set stores v at index i.
func (s *Stream[T]) Set(i int, v T) error {
	if i < 0 || i >= s.length {
		return s.rangeError(i)
	}
	s.buf[i] = v
	s.mutations++

	return nil
}

// Cyclic returns the element at i modulo the logical length; negative indices
// wrap from the end. It reports false on an empty stream.
func (s *Stream[T]) Cyclic(i int) (T, bool) {
	if s.length == 0 {
		var zero T
		return zero, false
	}

	i %= s.length
	if i < 0 {
		i += s.length
	}

	return s.buf[i], true
}

// Stats returns a snapshot of the stream counters.
func (s *Stream[T]) Stats() Stats {
	return Stats{
		Name:            s.name,
		Length:          s.length,
		Capacity:        len(s.buf),
		Generation:      s.generation,
		Reallocations:   s.reallocations,
		PopulatedSlots:  s.populatedSlots,
		Trims:           s.trims,
		HookInvocations: s.hookCalls,
		Mutations:       s.mutations,
	}
}

// ReadView returns a read-only view over [0, Len()).
func (s *Stream[T]) ReadView() ReadView[T] {
	return ReadView[T]{view: s.view()}
}

// WriteView returns a mutable view over [0, Len()).
func (s *Stream[T]) WriteView() WriteView[T] {
	return WriteView[T]{view: s.view()}
}

func (s *Stream[T]) view() view[T] {
	v := view[T]{owner: s, gen: s.generation}
	if s.length > 0 {
		v.data = s.buf[:s.length:s.length]
	}

	return v
}

func (s *Stream[T]) rangeError(i int) error {
	return fmt.Errorf("%w: index %d, length %d", errs.ErrOutOfRange, i, s.length)
}
