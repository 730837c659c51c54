package pin

import (
	"fmt"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/internal/collision"
	"github.com/arloliu/spreadbuf/internal/hash"
	"go.uber.org/zap"
)

// Named is the type-independent part of a pin, implemented by *Pin[T] and
// *BinPin[T].
type Named interface {
	Name() string
	Direction() Direction
}

// ID returns the 64-bit xxHash of a pin name.
func ID(name string) uint64 {
	return hash.SumString(name)
}

// Registry is the pin set of one node, addressable by name and by ID.
//
// Two names may share an ID; the registry accepts both and LookupID refuses
// the shared ID, so callers fall back to Lookup.
type Registry struct {
	tracker *collision.Tracker
	byName  map[string]Named
	byID    map[uint64]Named
	logger  *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Registry{
		tracker: collision.NewTracker(),
		byName:  make(map[string]Named),
		byID:    make(map[uint64]Named),
		logger:  logger.Named("pin"),
	}
}

// Add registers p and returns its ID. Nil pins, typed or not, and pins
// without a name are rejected with errs.ErrInvalidArgument.
func (r *Registry) Add(p Named) (uint64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: nil pin", errs.ErrInvalidArgument)
	}

	name := p.Name()
	if name == "" {
		return 0, fmt.Errorf("%w: nil or unnamed pin", errs.ErrInvalidArgument)
	}
	id := ID(name)
	if err := r.tracker.Track(name, id); err != nil {
		return 0, fmt.Errorf("register pin: %w", err)
	}

	r.byName[name] = p
	if r.tracker.Collides(id) {
		delete(r.byID, id)
		r.logger.Warn("pin id collision", zap.String("pin", name), zap.Uint64("id", id))
	} else {
		r.byID[id] = p
	}

	return id, nil
}

// Lookup returns the pin registered under name.
func (r *Registry) Lookup(name string) (Named, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// LookupID returns the pin registered under id. It reports false for IDs
// shared by several names.
func (r *Registry) LookupID(id uint64) (Named, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Names returns the pin names in registration order.
func (r *Registry) Names() []string {
	return r.tracker.Names()
}

// Pins returns the pins with the given direction in registration order.
func (r *Registry) Pins(dir Direction) []Named {
	var out []Named
	for _, name := range r.tracker.Names() {
		if p := r.byName[name]; p.Direction() == dir {
			out = append(out, p)
		}
	}

	return out
}

// Len returns the number of registered pins.
func (r *Registry) Len() int {
	return r.tracker.Count()
}

// HasCollision reports whether two registered names share an ID.
func (r *Registry) HasCollision() bool {
	return r.tracker.HasCollision()
}
