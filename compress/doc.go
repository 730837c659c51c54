// Package compress provides the payload codecs used by snapshots.
//
// A snapshot payload is the encoded element data of a stream or bin buffer.
// It is compressed as a whole after encoding, and the chosen algorithm is
// recorded in the snapshot header so Decode can pick the matching codec:
//   - None: payload stored as is
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// Zstd is backed by the pure Go klauspost/compress implementation by default.
// Building with the gozstd tag and cgo enabled switches to valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// All codecs are stateless values and safe for concurrent use; encoders and
// decoders that benefit from reuse are pooled internally.
package compress
