// Package encoding provides element codecs that turn spread slices into bytes
// and back.
//
// Codecs are used for two things: content fingerprints, which pins compare
// between frames to report whether a connection changed, and binary
// snapshots of streams and bin buffers (see package snapshot).
//
// Every codec is parameterized by an endian.EndianEngine for its fixed-width
// fields and reports its format.ElementType, which snapshots record in their
// header so that a decoder can refuse a payload of the wrong type:
//
//	c := encoding.NewFloat64Codec(endian.GetLittleEndianEngine())
//	buf := encoding.AppendSlice(nil, c, []float64{1, 2, 3})
//	values := make([]float64, 3)
//	n, err := encoding.DecodeSlice(buf, c, values)
//
// Strings use a uvarint length prefix followed by the raw bytes.
package encoding
