package compress

import (
	"fmt"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/format"
)

// Compressor compresses a complete snapshot payload.
//
// The returned slice is owned by the caller. The input is not modified,
// although NoOpCompressor returns it as is.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// size is the exact decoded length recorded next to the payload. Output is
// allocated for size bytes only, and data that decodes to any other length
// fails with errs.ErrSizeMismatch, so a forged payload cannot make the
// decoder allocate past what the caller already accepted.
type Decompressor interface {
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes the effect of compressing one payload.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int
	CompressedSize int
}

// Ratio returns compressed size / original size, or 0 for an empty payload.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space in percent.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return (1 - s.Ratio()) * 100
}

func sizeError(algo format.CompressionType, got, want int) error {
	return fmt.Errorf("%w: %s payload decodes to %d bytes, want %d", errs.ErrSizeMismatch, algo, got, want)
}

// checkEmpty handles the empty payload shared by every codec. It reports
// done when nothing is left to decode.
func checkEmpty(algo format.CompressionType, data []byte, size int) (bool, error) {
	switch {
	case size < 0:
		return true, fmt.Errorf("%w: negative decoded size %d", errs.ErrInvalidArgument, size)
	case len(data) == 0 && size == 0:
		return true, nil
	case len(data) == 0 || size == 0:
		return true, sizeError(algo, 0, size)
	}

	return false, nil
}

// CreateCodec returns the codec for the given compression type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: compression %s", errs.ErrInvalidArgument, compressionType)
	}
}
