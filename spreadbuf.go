// Package spreadbuf provides growable slice buffers for node-graph style data
// flow, where every connection carries a spread: a slice-indexed vector of
// values re-evaluated once per frame.
//
// # Core Features
//
//   - Spread[T]: the resizable slice container
//   - Stream[T]: a buffer whose logical length may be below its capacity,
//     growing by a selectable policy and filling new slots through a hook
//   - Bin buffers: streams of spreads that clone existing inner spreads when
//     the outer slice count grows
//   - Generation-checked bulk views that fail once their stream is resized
//   - Pins: per-connection facades with read-only inputs and per-frame change
//     detection
//   - Binary snapshots with optional compression (None, Zstd, S2, LZ4)
//
// # Basic Usage
//
// Growing a bin buffer clones existing inner spreads into the new slots:
//
//	b, _ := spreadbuf.NewBin[float64](3)
//	inner, _ := b.Inner(0)
//	inner.Append(1, 2)
//	_ = b.SetLength(7) // slots 3..6 hold clones of slots 0..2, wrapping
//
// Reading and writing a stream in bulk:
//
//	s, _ := spreadbuf.NewStream[float64](4)
//	w := s.WriteView()
//	_ = w.Fill(0.5)
//	_ = s.SetLength(64) // w is now stale, further use returns errs.ErrStaleView
//
// Connecting pins:
//
//	out, _ := spreadbuf.NewOutputPin(pin.Config[float64]{Name: "Y", SliceCount: 1})
//	in, _ := spreadbuf.NewInputPin(pin.Config[float64]{Name: "X"})
//	_ = in.Connect(out)
//	if in.Sync() {
//	    // recompute
//	}
//
// # Package Structure
//
// This package provides top-level wrappers around the sub-packages for the
// common cases. Use spread, stream, bin, pin, snapshot, and vector directly
// for fine-grained control.
package spreadbuf

import (
	"github.com/arloliu/spreadbuf/bin"
	"github.com/arloliu/spreadbuf/encoding"
	"github.com/arloliu/spreadbuf/format"
	"github.com/arloliu/spreadbuf/pin"
	"github.com/arloliu/spreadbuf/snapshot"
	"github.com/arloliu/spreadbuf/spread"
	"github.com/arloliu/spreadbuf/stream"
)

// NewSpread creates a spread of n zero-valued slices.
func NewSpread[T any](n int) *spread.Spread[T] {
	return spread.New[T](n)
}

// NewStream creates a stream of the given length whose new slots hold the
// zero value.
//
// Available options:
//   - stream.WithGrowthPolicy(stream.Doubling|PowerOfTwo|Exact)
//   - stream.WithName(name)
//   - stream.WithLogger(logger)
func NewStream[T any](length int, opts ...stream.Option) (*stream.Stream[T], error) {
	return stream.New[T](length, opts...)
}

// NewBin creates a bin buffer with length empty inner spreads.
func NewBin[T any](length int, opts ...stream.Option) (*bin.Buffer[T], error) {
	return bin.New[T](length, opts...)
}

// NewInputPin creates a read-only input pin.
func NewInputPin[T any](cfg pin.Config[T]) (*pin.Pin[T], error) {
	return pin.NewInput(cfg)
}

// NewOutputPin creates an output pin.
func NewOutputPin[T any](cfg pin.Config[T]) (*pin.Pin[T], error) {
	return pin.NewOutput(cfg)
}

// NewBinOutputPin creates an output pin over a bin buffer.
func NewBinOutputPin[T any](cfg pin.Config[T]) (*pin.BinPin[T], error) {
	return pin.NewBin(pin.Output, cfg)
}

// NewBinInputPin creates an input pin over a bin buffer.
func NewBinInputPin[T any](cfg pin.Config[T]) (*pin.BinPin[T], error) {
	return pin.NewBin(pin.Input, cfg)
}

// EncodeFloat64Stream snapshots a float64 stream with Zstd compression.
func EncodeFloat64Stream(s *stream.Stream[float64], opts ...snapshot.Option) ([]byte, error) {
	opts = append([]snapshot.Option{snapshot.WithCompression(format.CompressionZstd)}, opts...)

	return snapshot.EncodeStream(s, encoding.Float64(), opts...)
}

// DecodeFloat64Stream restores a float64 stream from a snapshot.
func DecodeFloat64Stream(data []byte, s *stream.Stream[float64], opts ...snapshot.Option) error {
	return snapshot.DecodeStream(data, s, encoding.Float64(), opts...)
}

// PinID returns the 64-bit xxHash of a pin name, usable as a stable key for
// pins across graph reloads.
func PinID(name string) uint64 {
	return pin.ID(name)
}

// NewPinRegistry creates the pin set of one node.
func NewPinRegistry() *pin.Registry {
	return pin.NewRegistry(nil)
}
