package compress

import (
	"fmt"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/format"
	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor provides Zstandard compression. It favors ratio over speed,
// which suits snapshots that are written once and kept around.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// checkZstdFrame parses the first frame header of data and rejects a
// recorded content size that differs from size. Both zstd backends write the
// content size, so a mismatch is caught before anything is decoded.
func checkZstdFrame(data []byte, size int) error {
	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return fmt.Errorf("zstd frame header: %w", err)
	}
	if h.HasFCS && h.FrameContentSize != uint64(size) { //nolint:gosec
		return fmt.Errorf("%w: zstd frame records %d bytes, want %d",
			errs.ErrSizeMismatch, h.FrameContentSize, size)
	}

	return nil
}

func (c ZstdCompressor) precheck(data []byte, size int) (bool, error) {
	if done, err := checkEmpty(format.CompressionZstd, data, size); done {
		return true, err
	}

	return false, checkZstdFrame(data, size)
}
