package pin

import (
	"fmt"

	"github.com/arloliu/spreadbuf/bin"
	"github.com/arloliu/spreadbuf/encoding"
	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/internal/hash"
	"github.com/arloliu/spreadbuf/internal/pool"
	"github.com/arloliu/spreadbuf/spread"
	"github.com/arloliu/spreadbuf/stream"
	"go.uber.org/zap"
)

// BinPin is the access facade over a bin buffer. Config.Default seeds the
// slices of newly created inner spreads; Config.SliceCount is the initial
// outer slice count.
type BinPin[T any] struct {
	name    string
	dir     Direction
	subType SubType[T]
	own     *bin.Buffer[T]
	source  *BinPin[T]
	codec   encoding.Codec[T]
	logger  *zap.Logger

	epoch   uint64
	tracker tracker
	fp      *hash.Fingerprint
}

// NewBin creates a bin pin with the given direction.
func NewBin[T any](dir Direction, cfg Config[T]) (*BinPin[T], error) {
	if dir != Input && !dir.writable() {
		return nil, fmt.Errorf("%w: pin direction %d", errs.ErrInvalidArgument, dir)
	}

	def := cfg.Default
	own, err := bin.NewWithFactory(cfg.SliceCount, func() T { return def }, cfg.streamOptions()...)
	if err != nil {
		return nil, fmt.Errorf("bin pin %q: %w", cfg.Name, err)
	}

	p := &BinPin[T]{
		name:    cfg.Name,
		dir:     dir,
		subType: cfg.SubType,
		own:     own,
		codec:   cfg.Codec,
		logger:  cfg.logger().Named("pin"),
	}
	if p.codec != nil {
		p.fp = hash.NewFingerprint()
	}

	return p, nil
}

// Name returns the pin name. A nil pin has no name.
func (p *BinPin[T]) Name() string {
	if p == nil {
		return ""
	}

	return p.name
}

// Direction returns the pin direction.
func (p *BinPin[T]) Direction() Direction {
	return p.dir
}

// SubType returns the GUI value range of the inner slices.
func (p *BinPin[T]) SubType() SubType[T] {
	return p.subType
}

// Buffer returns the bin buffer the pin currently reads.
func (p *BinPin[T]) Buffer() *bin.Buffer[T] {
	if p.source != nil {
		return p.source.own
	}

	return p.own
}

// SliceCount returns the outer slice count.
func (p *BinPin[T]) SliceCount() int {
	return p.Buffer().Len()
}

// SetSliceCount sets the outer slice count of an output or configuration pin.
func (p *BinPin[T]) SetSliceCount(n int) error {
	if !p.dir.writable() {
		return fmt.Errorf("%w: %s pin %q", errs.ErrReadOnly, p.dir, p.name)
	}
	if err := p.own.SetLength(n); err != nil {
		return fmt.Errorf("bin pin %q: %w", p.name, err)
	}

	return nil
}

// Inner returns the live inner spread at outer index i. Callers may keep it
// across frames; Sync sees later changes made through it.
func (p *BinPin[T]) Inner(i int) (*spread.Spread[T], error) {
	inner, err := p.Buffer().Inner(i)
	if err != nil {
		return nil, fmt.Errorf("bin pin %q: %w", p.name, err)
	}

	return inner, nil
}

// ReadView returns a read-only view over the outer slices.
func (p *BinPin[T]) ReadView() stream.ReadView[*spread.Spread[T]] {
	return p.Buffer().ReadView()
}

// Connect makes an input bin pin read from src.
func (p *BinPin[T]) Connect(src *BinPin[T]) error {
	if p.dir != Input {
		return fmt.Errorf("%w: connect on %s pin %q", errs.ErrInvalidArgument, p.dir, p.name)
	}
	if src == nil || !src.dir.writable() {
		return fmt.Errorf("%w: pin %q needs an output or configuration source", errs.ErrInvalidArgument, p.name)
	}

	p.source = src
	p.epoch++
	p.logger.Debug("bin pin connected", zap.String("pin", p.name), zap.String("source", src.name))

	return nil
}

// Disconnect detaches an input bin pin from its source.
func (p *BinPin[T]) Disconnect() {
	if p.source == nil {
		return
	}

	p.logger.Debug("bin pin disconnected", zap.String("pin", p.name), zap.String("source", p.source.name))
	p.source = nil
	p.epoch++
}

// IsConnected reports whether an input bin pin reads from a source.
func (p *BinPin[T]) IsConnected() bool {
	return p.source != nil
}

// Sync records the pin state for the current frame and reports whether it
// changed since the previous Sync.
func (p *BinPin[T]) Sync() bool {
	if p.codec != nil {
		return p.tracker.observe(p.fingerprint())
	}

	return p.tracker.observe(p.version())
}

// IsChanged returns the result of the last Sync.
func (p *BinPin[T]) IsChanged() bool {
	return p.tracker.changed
}

// binVersion extends pinVersion with the inner spreads. Mutation counters
// only grow and any replacement of an inner spread is an outer mutation, so
// their sum changes whenever an inner spread does.
type binVersion[T any] struct {
	b              *bin.Buffer[T]
	gen            uint64
	mutations      uint64
	innerMutations uint64
	epoch          uint64
}

func (p *BinPin[T]) version() binVersion[T] {
	b := p.Buffer()
	v := binVersion[T]{
		b:         b,
		gen:       b.Stream().Generation(),
		mutations: b.Stream().Mutations(),
		epoch:     p.epoch,
	}
	for _, inner := range b.All() {
		v.innerMutations += inner.Mutations()
	}

	return v
}

func (p *BinPin[T]) fingerprint() uint64 {
	buf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(buf)

	b := p.Buffer()
	p.fp.Reset()
	p.fp.WriteCount(b.Len())
	for _, inner := range b.All() {
		p.fp.WriteCount(inner.Len())
		for _, v := range inner.All() {
			buf.B = p.codec.Append(buf.B[:0], v)
			p.fp.Write(buf.B)
		}
	}

	return p.fp.Sum64()
}
