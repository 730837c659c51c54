package pin

import (
	"fmt"
	"strings"

	"github.com/arloliu/spreadbuf/encoding"
	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/internal/hash"
	"github.com/arloliu/spreadbuf/internal/pool"
	"github.com/arloliu/spreadbuf/stream"
	"go.uber.org/zap"
)

// Direction is the data flow direction of a pin.
type Direction uint8

const (
	Input         Direction = 0x1 // Input pins read upstream data and cannot be written.
	Output        Direction = 0x2 // Output pins own and write their stream.
	Configuration Direction = 0x3 // Configuration pins own their stream like outputs.
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "Input"
	case Output:
		return "Output"
	case Configuration:
		return "Configuration"
	default:
		return "Unknown"
	}
}

func (d Direction) writable() bool {
	return d == Output || d == Configuration
}

// SubType is the value range a GUI offers for a pin. It is metadata only:
// Set does not clamp or round.
type SubType[T any] struct {
	Min      T
	Max      T
	StepSize T
	// IsBang marks a value that is set for one frame only.
	IsBang    bool
	IsToggle  bool
	IsInteger bool
}

// Config is the construction-time description of a pin.
type Config[T any] struct {
	// Name identifies the pin in logs and stream stats.
	Name string
	// Default is the value of newly created slices.
	Default T
	// SubType carries the GUI value range.
	SubType SubType[T]
	// SliceCount is the initial slice count.
	SliceCount int
	// Codec enables content fingerprints for change detection. Optional.
	Codec encoding.Codec[T]
	// Policy is the growth policy of the pin's stream.
	Policy stream.GrowthPolicy
	// Logger receives debug events. Nil disables logging.
	Logger *zap.Logger
}

func (c Config[T]) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}

	return c.Logger
}

func (c Config[T]) streamOptions() []stream.Option {
	return []stream.Option{
		stream.WithName(c.Name),
		stream.WithGrowthPolicy(c.Policy),
		stream.WithLogger(c.Logger),
	}
}

// Pin is the per-connection access facade over a stream.
type Pin[T any] struct {
	name    string
	dir     Direction
	subType SubType[T]
	own     *stream.Stream[T]
	source  *Pin[T]
	codec   encoding.Codec[T]
	logger  *zap.Logger

	epoch   uint64
	tracker tracker
	fp      *hash.Fingerprint
}

// New creates a pin with the given direction.
func New[T any](dir Direction, cfg Config[T]) (*Pin[T], error) {
	if dir != Input && !dir.writable() {
		return nil, fmt.Errorf("%w: pin direction %d", errs.ErrInvalidArgument, dir)
	}

	def := cfg.Default
	own, err := stream.NewWithFactory(cfg.SliceCount, func() T { return def }, cfg.streamOptions()...)
	if err != nil {
		return nil, fmt.Errorf("pin %q: %w", cfg.Name, err)
	}

	p := &Pin[T]{
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

// NewInput creates an input pin.
func NewInput[T any](cfg Config[T]) (*Pin[T], error) {
	return New(Input, cfg)
}

// NewOutput creates an output pin.
func NewOutput[T any](cfg Config[T]) (*Pin[T], error) {
	return New(Output, cfg)
}

// NewConfig creates a configuration pin.
func NewConfig[T any](cfg Config[T]) (*Pin[T], error) {
	return New(Configuration, cfg)
}

// Name returns the pin name. A nil pin has no name.
func (p *Pin[T]) Name() string {
	if p == nil {
		return ""
	}

	return p.name
}

// Direction returns the pin direction.
func (p *Pin[T]) Direction() Direction {
	return p.dir
}

// SubType returns the GUI value range given at construction.
func (p *Pin[T]) SubType() SubType[T] {
	return p.subType
}

// Stream returns the stream the pin currently reads: the upstream stream for
// a connected input, the pin's own stream otherwise.
func (p *Pin[T]) Stream() *stream.Stream[T] {
	if p.source != nil {
		return p.source.own
	}

	return p.own
}

// SliceCount returns the logical length of the pin.
func (p *Pin[T]) SliceCount() int {
	return p.Stream().Len()
}

// SetSliceCount sets the logical length of an output or configuration pin.
func (p *Pin[T]) SetSliceCount(n int) error {
	if err := p.checkWritable(); err != nil {
		return err
	}
	if err := p.own.SetLength(n); err != nil {
		return fmt.Errorf("pin %q: %w", p.name, err)
	}

	return nil
}

// Get returns the slice at index i.
func (p *Pin[T]) Get(i int) (T, error) {
	v, err := p.Stream().Get(i)
	if err != nil {
		return v, fmt.Errorf("pin %q: %w", p.name, err)
	}

	return v, nil
}

// Set stores v at slice index i of an output or configuration pin.
func (p *Pin[T]) Set(i int, v T) error {
	if err := p.checkWritable(); err != nil {
		return err
	}
	if err := p.own.Set(i, v); err != nil {
		return fmt.Errorf("pin %q: %w", p.name, err)
	}

	return nil
}

// ReadView returns a read-only bulk view for the current frame.
func (p *Pin[T]) ReadView() stream.ReadView[T] {
	return p.Stream().ReadView()
}

// WriteView returns a mutable bulk view of an output or configuration pin.
// Writes through the view are seen by Sync, including writes made after a
// Sync through a view issued before it.
func (p *Pin[T]) WriteView() (stream.WriteView[T], error) {
	if err := p.checkWritable(); err != nil {
		return stream.WriteView[T]{}, err
	}

	return p.own.WriteView(), nil
}

// Invalidate marks every outstanding view of the pin's own stream as stale.
func (p *Pin[T]) Invalidate() {
	p.own.Invalidate()
}

// Seed replaces the default values of an input pin, used while it is
// unconnected.
func (p *Pin[T]) Seed(values ...T) error {
	if p.dir != Input {
		return fmt.Errorf("%w: seed on %s pin %q", errs.ErrInvalidArgument, p.dir, p.name)
	}
	if err := p.own.SetLength(len(values)); err != nil {
		return err
	}
	if _, err := p.own.WriteView().CopyFrom(values); err != nil {
		return err
	}

	return nil
}

// Connect makes an input pin read from src.
func (p *Pin[T]) Connect(src *Pin[T]) error {
	if p.dir != Input {
		return fmt.Errorf("%w: connect on %s pin %q", errs.ErrInvalidArgument, p.dir, p.name)
	}
	if src == nil || !src.dir.writable() {
		return fmt.Errorf("%w: pin %q needs an output or configuration source", errs.ErrInvalidArgument, p.name)
	}

	p.source = src
	p.epoch++
	p.logger.Debug("pin connected", zap.String("pin", p.name), zap.String("source", src.name))

	return nil
}

// Disconnect detaches an input pin from its source. It is a no-op when the
// pin is not connected.
func (p *Pin[T]) Disconnect() {
	if p.source == nil {
		return
	}

	p.logger.Debug("pin disconnected", zap.String("pin", p.name), zap.String("source", p.source.name))
	p.source = nil
	p.epoch++
}

// IsConnected reports whether an input pin reads from a source.
func (p *Pin[T]) IsConnected() bool {
	return p.source != nil
}

// Sync records the pin state for the current frame and reports whether it
// changed since the previous Sync. The first Sync always reports a change.
//
// With a codec the state is a fingerprint of the content, so rewriting equal
// values is not a change. Without one any write, resize, invalidation or
// connection change counts.
func (p *Pin[T]) Sync() bool {
	if p.codec != nil {
		return p.tracker.observe(p.fingerprint())
	}

	return p.tracker.observe(p.version())
}

// IsChanged returns the result of the last Sync.
func (p *Pin[T]) IsChanged() bool {
	return p.tracker.changed
}

// SpreadAsString returns the slices formatted with fmt and joined by commas.
func (p *Pin[T]) SpreadAsString() string {
	var sb strings.Builder
	for i, v := range p.ReadView().All() {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprint(&sb, v)
	}

	return sb.String()
}

// pinVersion identifies the state of the stream a pin reads. epoch counts
// connects and disconnects.
type pinVersion[T any] struct {
	s         *stream.Stream[T]
	gen       uint64
	mutations uint64
	epoch     uint64
}

func (p *Pin[T]) version() pinVersion[T] {
	s := p.Stream()

	return pinVersion[T]{
		s:         s,
		gen:       s.Generation(),
		mutations: s.Mutations(),
		epoch:     p.epoch,
	}
}

func (p *Pin[T]) fingerprint() uint64 {
	view := p.ReadView()

	buf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(buf)

	p.fp.Reset()
	p.fp.WriteCount(view.Len())
	for _, v := range view.All() {
		buf.B = p.codec.Append(buf.B[:0], v)
		p.fp.Write(buf.B)
	}

	return p.fp.Sum64()
}

func (p *Pin[T]) checkWritable() error {
	if !p.dir.writable() {
		return fmt.Errorf("%w: %s pin %q", errs.ErrReadOnly, p.dir, p.name)
	}

	return nil
}
