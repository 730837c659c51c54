package collision

import (
	"fmt"

	"github.com/arloliu/spreadbuf/errs"
)

// Tracker tracks names and their 64-bit IDs and detects ID collisions.
// It keeps the names in registration order.
type Tracker struct {
	ids      map[uint64]string   // ID → first name registered with it
	seen     map[string]struct{} // names, for duplicate detection
	names    []string
	collided map[uint64]struct{}
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		ids:      make(map[uint64]string),
		seen:     make(map[string]struct{}),
		names:    make([]string, 0),
		collided: make(map[uint64]struct{}),
	}
}

// TrackID tracks a bare ID for which no name is known. A repeated ID cannot
// be told apart from a collision and returns errs.ErrHashCollision.
func (t *Tracker) TrackID(id uint64) error {
	if _, exists := t.ids[id]; exists {
		return fmt.Errorf("%w: id %#x", errs.ErrHashCollision, id)
	}
	t.ids[id] = ""

	return nil
}

// Track tracks name with its ID.
//
// An empty name returns errs.ErrInvalidArgument and a name tracked twice
// returns errs.ErrDuplicateName. Two different names sharing an ID are not an
// error: the ID is marked as collided and lookups by ID must fall back to the
// name.
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", errs.ErrInvalidArgument)
	}
	if _, dup := t.seen[name]; dup {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateName, name)
	}

	if _, exists := t.ids[id]; exists {
		t.collided[id] = struct{}{}
	} else {
		t.ids[id] = name
	}
	t.seen[name] = struct{}{}
	t.names = append(t.names, name)

	return nil
}

// HasCollision reports whether any ID is shared by two names.
func (t *Tracker) HasCollision() bool {
	return len(t.collided) > 0
}

// Collides reports whether id is shared by two names.
func (t *Tracker) Collides(id uint64) bool {
	_, ok := t.collided[id]
	return ok
}

// Names returns the tracked names in registration order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked names and collision state, keeping allocated maps.
func (t *Tracker) Reset() {
	clear(t.ids)
	clear(t.seen)
	clear(t.collided)
	t.names = t.names[:0]
}
