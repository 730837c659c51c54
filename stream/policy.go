package stream

import "math/bits"

// GrowthPolicy selects the backing capacity allocated when a requested length
// exceeds the current capacity.
type GrowthPolicy uint8

const (
	// Doubling allocates max(n, 2*oldCapacity). The first allocation is
	// sized exactly to the requested length.
	Doubling GrowthPolicy = iota
	// PowerOfTwo allocates the next power of two that is >= n.
	PowerOfTwo
	// Exact allocates exactly n.
	Exact
)

func (p GrowthPolicy) String() string {
	switch p {
	case Doubling:
		return "Doubling"
	case PowerOfTwo:
		return "PowerOfTwo"
	case Exact:
		return "Exact"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is a known policy.
func (p GrowthPolicy) Valid() bool {
	return p <= Exact
}

// Capacity returns the capacity to allocate when growing from oldCap to hold n
// elements. The result is always >= n. n must be > oldCap.
func (p GrowthPolicy) Capacity(oldCap, n int) int {
	switch p {
	case PowerOfTwo:
		return nextPowerOfTwo(n)
	case Exact:
		return n
	default:
		return max(n, 2*oldCap)
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}
