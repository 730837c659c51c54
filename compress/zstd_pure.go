//go:build !gozstd || !cgo

package compress

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/format"
	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools decoders. DecodeAll never writes past cap(dst), and
// snapshot payload sizes are uint32, which caps what a decoder may allocate.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
			zstd.WithDecoderMaxMemory(math.MaxUint32),
			zstd.WithDecodeAllCapLimit(true),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// zstdEncoderPool pools encoders. The payload checksum lives in the snapshot
// header, so the frame CRC is disabled.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}
		return encoder
	},
}

// Compress compresses data as one frame with a pooled encoder.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decodes data with a pooled decoder into a buffer of capacity
// size. Frames that would decode past size fail with errs.ErrSizeMismatch.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if done, err := c.precheck(data, size); done || err != nil {
		return nil, err
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(data, make([]byte, 0, size))
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		return nil, fmt.Errorf("%w: zstd payload decodes past %d bytes", errs.ErrSizeMismatch, size)
	}
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) != size {
		return nil, sizeError(format.CompressionZstd, len(out), size)
	}

	return out, nil
}
