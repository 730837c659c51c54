package stream

// Stats is a point-in-time summary of a stream's buffer state.
type Stats struct {
	// Name is the stream name given by WithName.
	Name string
	// Length is the logical length.
	Length int
	// Capacity is the backing storage size.
	Capacity int
	// Generation is the current view generation.
	Generation uint64
	// Reallocations counts backing storage replacements by growth.
	Reallocations uint64
	// PopulatedSlots counts slots handed to the growth hook.
	PopulatedSlots uint64
	// Trims counts explicit capacity shrinks that released memory.
	Trims uint64
	// HookInvocations counts calls of the growth hook, the initial allocation
	// included.
	HookInvocations uint64
	// Mutations counts element writes, see Stream.Mutations.
	Mutations uint64
}

// Utilization returns Length/Capacity, or 0 for an unallocated stream.
func (s Stats) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}

	return float64(s.Length) / float64(s.Capacity)
}
