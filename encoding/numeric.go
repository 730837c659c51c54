package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/spreadbuf/endian"
	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/format"
)

// Float64Codec encodes float64 values as 8-byte IEEE-754 bit patterns.
type Float64Codec struct {
	engine endian.EndianEngine
}

var _ Codec[float64] = Float64Codec{}

// NewFloat64Codec creates a float64 codec using engine.
func NewFloat64Codec(engine endian.EndianEngine) Float64Codec {
	return Float64Codec{engine: engine}
}

// Type returns format.TypeFloat64.
func (c Float64Codec) Type() format.ElementType { return format.TypeFloat64 }

// Append appends v.
func (c Float64Codec) Append(dst []byte, v float64) []byte {
	return c.engine.AppendUint64(dst, math.Float64bits(v))
}

// Decode decodes one float64.
func (c Float64Codec) Decode(src []byte) (float64, int, error) {
	if len(src) < 8 {
		return 0, 0, shortBuffer(format.TypeFloat64, 8, len(src))
	}

	return math.Float64frombits(c.engine.Uint64(src)), 8, nil
}

// Float32Codec encodes float32 values as 4-byte IEEE-754 bit patterns.
type Float32Codec struct {
	engine endian.EndianEngine
}

var _ Codec[float32] = Float32Codec{}

// NewFloat32Codec creates a float32 codec using engine.
func NewFloat32Codec(engine endian.EndianEngine) Float32Codec {
	return Float32Codec{engine: engine}
}

// Type returns format.TypeFloat32.
func (c Float32Codec) Type() format.ElementType { return format.TypeFloat32 }

// Append appends v.
func (c Float32Codec) Append(dst []byte, v float32) []byte {
	return c.engine.AppendUint32(dst, math.Float32bits(v))
}

// Decode decodes one float32.
func (c Float32Codec) Decode(src []byte) (float32, int, error) {
	if len(src) < 4 {
		return 0, 0, shortBuffer(format.TypeFloat32, 4, len(src))
	}

	return math.Float32frombits(c.engine.Uint32(src)), 4, nil
}

// Int64Codec encodes int64 values as 8 bytes.
type Int64Codec struct {
	engine endian.EndianEngine
}

var _ Codec[int64] = Int64Codec{}

// NewInt64Codec creates an int64 codec using engine.
func NewInt64Codec(engine endian.EndianEngine) Int64Codec {
	return Int64Codec{engine: engine}
}

// Type returns format.TypeInt64.
func (c Int64Codec) Type() format.ElementType { return format.TypeInt64 }

// Append appends v.
func (c Int64Codec) Append(dst []byte, v int64) []byte {
	return c.engine.AppendUint64(dst, uint64(v)) //nolint:gosec
}

// Decode decodes one int64.
func (c Int64Codec) Decode(src []byte) (int64, int, error) {
	if len(src) < 8 {
		return 0, 0, shortBuffer(format.TypeInt64, 8, len(src))
	}

	return int64(c.engine.Uint64(src)), 8, nil //nolint:gosec
}

// Int32Codec encodes int32 values as 4 bytes.
type Int32Codec struct {
	engine endian.EndianEngine
}

var _ Codec[int32] = Int32Codec{}

// NewInt32Codec creates an int32 codec using engine.
func NewInt32Codec(engine endian.EndianEngine) Int32Codec {
	return Int32Codec{engine: engine}
}

// Type returns format.TypeInt32.
func (c Int32Codec) Type() format.ElementType { return format.TypeInt32 }

// Append appends v.
func (c Int32Codec) Append(dst []byte, v int32) []byte {
	return c.engine.AppendUint32(dst, uint32(v)) //nolint:gosec
}

// Decode decodes one int32.
func (c Int32Codec) Decode(src []byte) (int32, int, error) {
	if len(src) < 4 {
		return 0, 0, shortBuffer(format.TypeInt32, 4, len(src))
	}

	return int32(c.engine.Uint32(src)), 4, nil //nolint:gosec
}

// BoolCodec encodes booleans as a single byte, 0 or 1.
type BoolCodec struct{}

var _ Codec[bool] = BoolCodec{}

// NewBoolCodec creates a bool codec.
func NewBoolCodec() BoolCodec {
	return BoolCodec{}
}

// Type returns format.TypeBool.
func (BoolCodec) Type() format.ElementType { return format.TypeBool }

// Append appends v.
func (BoolCodec) Append(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}

	return append(dst, 0)
}

// Decode decodes one bool. Any non-zero byte decodes as true.
func (BoolCodec) Decode(src []byte) (bool, int, error) {
	if len(src) < 1 {
		return false, 0, shortBuffer(format.TypeBool, 1, 0)
	}

	return src[0] != 0, 1, nil
}

func shortBuffer(typ format.ElementType, need, have int) error {
	return fmt.Errorf("%w: %s needs %d bytes, have %d", errs.ErrShortBuffer, typ, need, have)
}
