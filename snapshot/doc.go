// Package snapshot serializes streams and bin buffers into a compact binary
// form and restores them.
//
// # Layout
//
// A snapshot is a 24-byte header followed by the payload:
//
//	offset  size  field
//	0       2     magic "SB"
//	2       1     format version
//	3       1     flags (bit 0: big-endian, bit 1: bin layout)
//	4       1     element type (format.ElementType)
//	5       1     compression (format.CompressionType)
//	6       2     reserved, zero
//	8       4     slice count
//	12      4     uncompressed payload size
//	16      8     xxHash64 of the stored (possibly compressed) payload
//
// Multi-byte header fields use the byte order recorded in the flags. A flat
// payload is the encoded elements in slice order. A bin payload holds, per
// outer slice, the uvarint length of the inner spread followed by its
// encoded elements.
//
// # Usage
//
//	data, err := snapshot.EncodeStream(s, encoding.Float64(),
//	    snapshot.WithCompression(format.CompressionZstd))
//	...
//	err = snapshot.DecodeStream(data, restored, encoding.Float64())
//
// Decoding validates the header and the checksum, and fully decodes the
// payload before touching the target, so a corrupted snapshot leaves the
// target unchanged.
package snapshot
