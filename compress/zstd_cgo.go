//go:build gozstd && cgo

package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/valyala/gozstd"
)

const zstdLevel = 3

// Compress compresses data with the cgo zstd bindings.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress streams data through a cgo zstd reader into exactly size bytes.
// gozstd.Decompress would size its output from the frame alone.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if done, err := c.precheck(data, size); done || err != nil {
		return nil, err
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	return readExact(zr, size)
}

// readExact fills exactly size bytes from r and fails if r holds fewer or
// more. Output never grows past size.
func readExact(r io.Reader, size int) ([]byte, error) {
	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: zstd stream ends before %d bytes", errs.ErrSizeMismatch, size)
		}

		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	var extra [1]byte
	n, err := r.Read(extra[:])
	if n > 0 {
		return nil, fmt.Errorf("%w: zstd stream continues past %d bytes", errs.ErrSizeMismatch, size)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
