package snapshot

import (
	"fmt"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/eapache/queue"
)

// Entry is one snapshot kept by a History.
type Entry struct {
	// Seq is the position of the snapshot in the sequence of all snapshots
	// ever pushed, starting at 0.
	Seq  uint64
	Data []byte
}

// History keeps the most recent snapshots in a bounded FIFO. Pushing beyond
// the limit evicts the oldest snapshot.
//
// History is not safe for concurrent use.
type History struct {
	q     *queue.Queue
	limit int
	next  uint64
}

// NewHistory creates a history holding at most limit snapshots.
func NewHistory(limit int) (*History, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: history limit %d", errs.ErrInvalidArgument, limit)
	}

	return &History{q: queue.New(), limit: limit}, nil
}

// Push appends a snapshot and returns its sequence number. The history takes
// ownership of data.
func (h *History) Push(data []byte) uint64 {
	if h.q.Length() == h.limit {
		h.q.Remove()
	}

	seq := h.next
	h.q.Add(Entry{Seq: seq, Data: data})
	h.next++

	return seq
}

// Len returns the number of kept snapshots.
func (h *History) Len() int {
	return h.q.Length()
}

// Limit returns the maximum number of kept snapshots.
func (h *History) Limit() int {
	return h.limit
}

// At returns the i-th kept snapshot, 0 being the oldest. Negative indexes
// count back from the most recent one.
func (h *History) At(i int) (Entry, bool) {
	n := h.q.Length()
	if i < -n || i >= n {
		return Entry{}, false
	}

	e, _ := h.q.Get(i).(Entry)

	return e, true
}

// Latest returns the most recent snapshot.
func (h *History) Latest() (Entry, bool) {
	return h.At(-1)
}

// Oldest returns the oldest kept snapshot.
func (h *History) Oldest() (Entry, bool) {
	return h.At(0)
}

// Clear drops every kept snapshot. Sequence numbers keep counting.
func (h *History) Clear() {
	for h.q.Length() > 0 {
		h.q.Remove()
	}
}
