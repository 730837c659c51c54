package encoding

import (
	"fmt"

	"github.com/arloliu/spreadbuf/format"
)

// Codec encodes and decodes single elements of type T.
type Codec[T any] interface {
	// Type returns the element type recorded in snapshot headers.
	Type() format.ElementType

	// Append appends the encoding of v to dst and returns the extended slice.
	Append(dst []byte, v T) []byte

	// Decode decodes one element from the start of src and returns it with
	// the number of bytes consumed. It returns errs.ErrShortBuffer when src is
	// truncated.
	Decode(src []byte) (T, int, error)
}

// AppendSlice appends the encoding of every value to dst.
func AppendSlice[T any](dst []byte, c Codec[T], values []T) []byte {
	for _, v := range values {
		dst = c.Append(dst, v)
	}

	return dst
}

// DecodeSlice decodes len(dst) elements from src into dst and returns the
// number of bytes consumed.
func DecodeSlice[T any](src []byte, c Codec[T], dst []T) (int, error) {
	offset := 0
	for i := range dst {
		v, n, err := c.Decode(src[offset:])
		if err != nil {
			return offset, fmt.Errorf("decode element %d: %w", i, err)
		}
		dst[i] = v
		offset += n
	}

	return offset, nil
}
