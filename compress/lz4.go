package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/format"
	"github.com/pierrec/lz4/v4"
)

// lz4MaxRatio bounds how far one LZ4 block can expand: a match length grows
// by at most 255 bytes per input byte.
const lz4MaxRatio = 255

// lz4CompressorPool pools block compressors, which keep a hash table between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data as a single LZ4 block. The destination is sized
// to the block bound, so incompressible input is stored as literals.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decodes an LZ4 block into exactly size bytes.
//
// A block does not record its decoded length, so size is first checked
// against the largest expansion data could produce. A block that would
// decode past size fails instead of growing the output.
func (c LZ4Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if done, err := checkEmpty(format.CompressionLZ4, data, size); done {
		return nil, err
	}
	if size/lz4MaxRatio > len(data) {
		return nil, fmt.Errorf("%w: %d byte lz4 block cannot hold %d bytes",
			errs.ErrSizeMismatch, len(data), size)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data, out)
	if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
		return nil, fmt.Errorf("%w: lz4 block decodes past %d bytes", errs.ErrSizeMismatch, size)
	}
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != size {
		return nil, sizeError(format.CompressionLZ4, n, size)
	}

	return out, nil
}
