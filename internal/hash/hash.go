// Package hash wraps xxHash64 for content fingerprints and snapshot checksums.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// SumString computes the xxHash64 of s without copying it.
func SumString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Fingerprint accumulates a running xxHash64 over a sequence of chunks.
//
// The zero value is not usable; create one with NewFingerprint.
type Fingerprint struct {
	d       *xxhash.Digest
	scratch [8]byte
}

// NewFingerprint creates an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{d: xxhash.New()}
}

// Write mixes data into the fingerprint.
func (f *Fingerprint) Write(data []byte) {
	_, _ = f.d.Write(data)
}

// WriteCount mixes a count into the fingerprint, so that sequences with equal
// concatenated bytes but different element boundaries hash differently.
func (f *Fingerprint) WriteCount(n int) {
	binary.LittleEndian.PutUint64(f.scratch[:], uint64(n)) //nolint:gosec
	_, _ = f.d.Write(f.scratch[:])
}

// Sum64 returns the current fingerprint value.
func (f *Fingerprint) Sum64() uint64 {
	return f.d.Sum64()
}

// Reset clears the fingerprint for reuse.
func (f *Fingerprint) Reset() {
	f.d.Reset()
}
