package compress

import "github.com/arloliu/spreadbuf/format"

// NoOpCompressor stores payloads uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a no-op codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data without copying. The result shares memory with the
// input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data without copying once its length matches size.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if done, err := checkEmpty(format.CompressionNone, data, size); done {
		return nil, err
	}
	if len(data) != size {
		return nil, sizeError(format.CompressionNone, len(data), size)
	}

	return data, nil
}
