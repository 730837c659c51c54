package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/format"
)

// MaxStringLength bounds the decoded length of a single string slice, so a
// corrupt length prefix cannot trigger a huge allocation.
const MaxStringLength = 16 << 20

// StringCodec encodes strings with a uvarint length prefix.
//
// Each string is encoded as:
//   - uvarint: byte length
//   - N bytes: string data
type StringCodec struct{}

var _ Codec[string] = StringCodec{}

// NewStringCodec creates a string codec.
func NewStringCodec() StringCodec {
	return StringCodec{}
}

// Type returns format.TypeString.
func (StringCodec) Type() format.ElementType { return format.TypeString }

// Append appends the length-prefixed string.
func (StringCodec) Append(dst []byte, v string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(v)))
	return append(dst, v...)
}

// Decode decodes one length-prefixed string.
func (StringCodec) Decode(src []byte) (string, int, error) {
	length, n := binary.Uvarint(src)
	if n <= 0 {
		return "", 0, fmt.Errorf("%w: string length prefix", errs.ErrShortBuffer)
	}
	if length > MaxStringLength {
		return "", 0, fmt.Errorf("%w: string length %d exceeds maximum %d",
			errs.ErrInvalidSnapshot, length, MaxStringLength)
	}

	end := n + int(length) //nolint:gosec
	if end > len(src) {
		return "", 0, fmt.Errorf("%w: string needs %d bytes, have %d", errs.ErrShortBuffer, length, len(src)-n)
	}

	return string(src[n:end]), end, nil
}
