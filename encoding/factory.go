package encoding

import "github.com/arloliu/spreadbuf/endian"

// Factory builds a codec for a byte order. Snapshots take a factory rather
// than a codec because the byte order is chosen when encoding and read back
// from the header when decoding.
type Factory[T any] func(engine endian.EndianEngine) Codec[T]

// Float64 returns the factory of Float64Codec.
func Float64() Factory[float64] {
	return func(engine endian.EndianEngine) Codec[float64] { return NewFloat64Codec(engine) }
}

// Float32 returns the factory of Float32Codec.
func Float32() Factory[float32] {
	return func(engine endian.EndianEngine) Codec[float32] { return NewFloat32Codec(engine) }
}

// Int64 returns the factory of Int64Codec.
func Int64() Factory[int64] {
	return func(engine endian.EndianEngine) Codec[int64] { return NewInt64Codec(engine) }
}

// Int32 returns the factory of Int32Codec.
func Int32() Factory[int32] {
	return func(engine endian.EndianEngine) Codec[int32] { return NewInt32Codec(engine) }
}

// Bool returns the factory of BoolCodec. The byte order is irrelevant.
func Bool() Factory[bool] {
	return func(endian.EndianEngine) Codec[bool] { return NewBoolCodec() }
}

// String returns the factory of StringCodec. The byte order is irrelevant.
func String() Factory[string] {
	return func(endian.EndianEngine) Codec[string] { return NewStringCodec() }
}
