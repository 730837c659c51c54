package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/spreadbuf/bin"
	"github.com/arloliu/spreadbuf/compress"
	"github.com/arloliu/spreadbuf/encoding"
	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/format"
	"github.com/arloliu/spreadbuf/internal/hash"
	"github.com/arloliu/spreadbuf/internal/pool"
	"github.com/arloliu/spreadbuf/spread"
	"github.com/arloliu/spreadbuf/stream"
	"go.uber.org/zap"
)

// EncodeStream serializes the logical slices of s.
func EncodeStream[T any](s *stream.Stream[T], factory encoding.Factory[T], opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	codec := factory(cfg.engine)

	payload := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(payload)

	for _, v := range s.ReadView().All() {
		payload.B = codec.Append(payload.B, v)
	}

	return seal(cfg, codec.Type(), format.LayoutFlat, s.Len(), payload.Bytes())
}

// EncodeBin serializes the outer slices of b and the contents of every inner
// spread.
func EncodeBin[T any](b *bin.Buffer[T], factory encoding.Factory[T], opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	codec := factory(cfg.engine)

	payload := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(payload)

	for _, inner := range b.All() {
		payload.AppendUvarint(uint64(inner.Len())) //nolint:gosec
		for _, v := range inner.All() {
			payload.B = codec.Append(payload.B, v)
		}
	}

	return seal(cfg, codec.Type(), format.LayoutBin, b.Len(), payload.Bytes())
}

// DecodeStream restores s from a flat snapshot. s takes the snapshot's slice
// count, and every outstanding view of s becomes stale.
func DecodeStream[T any](data []byte, s *stream.Stream[T], factory encoding.Factory[T], opts ...Option) error {
	cfg, err := newConfig(opts...)
	if err != nil {
		return err
	}

	h, raw, err := open(data, format.LayoutFlat)
	if err != nil {
		return err
	}
	codec := factory(h.Flag.Engine())
	if err := checkType(h, codec); err != nil {
		return err
	}

	values := make([]T, h.SliceCount)
	n, err := encoding.DecodeSlice(raw, codec, values)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	if n != len(raw) {
		return fmt.Errorf("%w: %d trailing payload bytes", errs.ErrInvalidSnapshot, len(raw)-n)
	}

	if err := s.SetLength(len(values)); err != nil {
		return err
	}
	s.Invalidate()
	if _, err := s.WriteView().CopyFrom(values); err != nil {
		return err
	}

	logRestore(cfg.logger, s.Name(), h, len(data))

	return nil
}

// DecodeBin restores b from a bin snapshot. Inner spreads already present in
// b are reused and refilled; new outer slices are created by the buffer's
// growth rule before being refilled.
func DecodeBin[T any](data []byte, b *bin.Buffer[T], factory encoding.Factory[T], opts ...Option) error {
	cfg, err := newConfig(opts...)
	if err != nil {
		return err
	}

	h, raw, err := open(data, format.LayoutBin)
	if err != nil {
		return err
	}
	codec := factory(h.Flag.Engine())
	if err := checkType(h, codec); err != nil {
		return err
	}

	bins := make([][]T, h.SliceCount)
	offset := 0
	for i := range bins {
		size, n := binary.Uvarint(raw[offset:])
		if n <= 0 {
			return fmt.Errorf("%w: bin %d size", errs.ErrInvalidSnapshot, i)
		}
		offset += n
		if size > uint64(len(raw)-offset) {
			return fmt.Errorf("%w: bin %d claims %d slices, %d bytes left", errs.ErrInvalidSnapshot, i, size, len(raw)-offset)
		}

		bins[i] = make([]T, size)
		n, err := encoding.DecodeSlice(raw[offset:], codec, bins[i])
		if err != nil {
			return fmt.Errorf("%w: bin %d: %w", errs.ErrInvalidSnapshot, i, err)
		}
		offset += n
	}
	if offset != len(raw) {
		return fmt.Errorf("%w: %d trailing payload bytes", errs.ErrInvalidSnapshot, len(raw)-offset)
	}

	if err := b.SetLength(len(bins)); err != nil {
		return err
	}
	b.Stream().Invalidate()
	for i, values := range bins {
		inner, err := b.Inner(i)
		if err != nil {
			return err
		}
		if inner == nil {
			if err := b.SetInner(i, spread.From(values...)); err != nil {
				return err
			}

			continue
		}
		if err := inner.Resize(0); err != nil {
			return err
		}
		inner.Append(values...)
	}

	logRestore(cfg.logger, b.Stream().Name(), h, len(data))

	return nil
}

func seal(cfg *Config, typ format.ElementType, layout format.Layout, count int, raw []byte) ([]byte, error) {
	if uint64(count) > math.MaxUint32 || uint64(len(raw)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d slices, %d payload bytes exceed the snapshot limits", errs.ErrInvalidArgument, count, len(raw))
	}

	codec, err := compress.CreateCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	stored, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot payload: %w", err)
	}

	h := Header{
		Version:     Version,
		Flag:        newFlag(cfg.engine, layout),
		ElementType: typ,
		Compression: cfg.compression,
		SliceCount:  uint32(count),    //nolint:gosec
		PayloadSize: uint32(len(raw)), //nolint:gosec
		Checksum:    hash.Sum(stored),
	}

	out := make([]byte, HeaderSize+len(stored))
	h.put(out[:HeaderSize])
	copy(out[HeaderSize:], stored)

	cfg.logger.Named("snapshot").Debug("snapshot encoded",
		zap.Stringer("layout", layout),
		zap.Stringer("element_type", typ),
		zap.Stringer("compression", cfg.compression),
		zap.Int("slices", count),
		zap.Int("payload_bytes", len(raw)),
		zap.Int("stored_bytes", len(stored)),
	)

	return out, nil
}

// open validates the header and checksum of data and returns the
// decompressed payload.
func open(data []byte, layout format.Layout) (Header, []byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}
	if got := h.Flag.Layout(); got != layout {
		return Header{}, nil, fmt.Errorf("%w: snapshot holds %s, want %s", errs.ErrLayoutMismatch, got, layout)
	}

	stored := data[HeaderSize:]
	if sum := hash.Sum(stored); sum != h.Checksum {
		return Header{}, nil, fmt.Errorf("%w: stored %#x, computed %#x", errs.ErrChecksumMismatch, h.Checksum, sum)
	}

	codec, err := compress.CreateCodec(h.Compression)
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	// Every element and every bin size takes at least one byte.
	if h.SliceCount > h.PayloadSize {
		return Header{}, nil, fmt.Errorf("%w: %d slices in %d payload bytes", errs.ErrInvalidSnapshot, h.SliceCount, h.PayloadSize)
	}
	raw, err := codec.Decompress(stored, int(h.PayloadSize))
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}

	return h, raw, nil
}

func checkType[T any](h Header, codec encoding.Codec[T]) error {
	if h.ElementType != codec.Type() {
		return fmt.Errorf("%w: snapshot holds %s, codec decodes %s", errs.ErrElementTypeMismatch, h.ElementType, codec.Type())
	}

	return nil
}

func logRestore(logger *zap.Logger, name string, h Header, size int) {
	logger.Named("snapshot").Debug("snapshot restored",
		zap.String("stream", name),
		zap.Stringer("layout", h.Flag.Layout()),
		zap.Stringer("element_type", h.ElementType),
		zap.Stringer("compression", h.Compression),
		zap.Uint32("slices", h.SliceCount),
		zap.Int("bytes", size),
	)
}
