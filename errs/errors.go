// Package errs defines the sentinel errors returned by spreadbuf packages.
//
// Errors are wrapped with context at the call site, so callers should match
// them with errors.Is:
//
//	if err := s.SetLength(n); errors.Is(err, errs.ErrInvalidArgument) {
//	    // negative length requested
//	}
package errs

import "errors"

// Buffer and accessor errors.
var (
	// ErrInvalidArgument is returned when a length or count argument is negative.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfRange is returned when a slice index is outside [0, length).
	ErrOutOfRange = errors.New("index out of range")
	// ErrStaleView is returned when a bulk view is used after its stream was resized or invalidated.
	ErrStaleView = errors.New("stale bulk view")
	// ErrReadOnly is returned when a write is attempted through an input pin.
	ErrReadOnly = errors.New("read-only pin")
	// ErrNilHook is returned when a stream is created with a nil growth hook.
	ErrNilHook = errors.New("nil growth hook")
	// ErrLengthMismatch is returned when bulk operands have incompatible lengths.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrShortBuffer is returned when an encoded element is truncated.
	ErrShortBuffer = errors.New("short buffer")
	// ErrDuplicateName is returned when a pin name is registered twice on a node.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrHashCollision is returned when a raw pin ID is registered twice.
	ErrHashCollision = errors.New("pin id hash collision")
)

// Snapshot errors.
var (
	ErrInvalidSnapshot     = errors.New("invalid snapshot")
	ErrInvalidMagicNumber  = errors.New("invalid snapshot magic number")
	ErrUnsupportedVersion  = errors.New("unsupported snapshot version")
	ErrChecksumMismatch    = errors.New("snapshot checksum mismatch")
	ErrElementTypeMismatch = errors.New("snapshot element type mismatch")
	ErrLayoutMismatch      = errors.New("snapshot layout mismatch")
	// ErrSizeMismatch is returned when a compressed payload does not decode to
	// the size recorded in the snapshot header.
	ErrSizeMismatch = errors.New("decompressed size mismatch")
)
