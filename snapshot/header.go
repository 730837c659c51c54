package snapshot

import (
	"fmt"

	"github.com/arloliu/spreadbuf/endian"
	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/format"
)

const (
	// HeaderSize is the fixed size of the snapshot header.
	HeaderSize = 24
	// Version is the snapshot format version written by this package.
	Version uint8 = 1

	magic0 = 'S'
	magic1 = 'B'
)

// Flag is the packed flag byte of a header.
type Flag uint8

const (
	flagBigEndian Flag = 1 << 0
	flagBin       Flag = 1 << 1
	flagMask           = flagBigEndian | flagBin
)

// IsBigEndian reports whether multi-byte fields are big-endian.
func (f Flag) IsBigEndian() bool {
	return f&flagBigEndian != 0
}

// Layout returns the payload layout.
func (f Flag) Layout() format.Layout {
	if f&flagBin != 0 {
		return format.LayoutBin
	}

	return format.LayoutFlat
}

// Engine returns the byte-order engine selected by the flag.
func (f Flag) Engine() endian.EndianEngine {
	return endian.FromFlag(f.IsBigEndian())
}

func newFlag(engine endian.EndianEngine, layout format.Layout) Flag {
	var f Flag
	if endian.IsBigEndian(engine) {
		f |= flagBigEndian
	}
	if layout == format.LayoutBin {
		f |= flagBin
	}

	return f
}

// Header is the decoded snapshot header.
type Header struct {
	Version     uint8
	Flag        Flag
	ElementType format.ElementType
	Compression format.CompressionType
	// SliceCount is the number of outer slices.
	SliceCount uint32
	// PayloadSize is the size of the payload before compression.
	PayloadSize uint32
	// Checksum is the xxHash64 of the stored payload.
	Checksum uint64
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.put(b)

	return b
}

func (h *Header) put(b []byte) {
	engine := h.Flag.Engine()

	b[0] = magic0
	b[1] = magic1
	b[2] = h.Version
	b[3] = byte(h.Flag)
	b[4] = byte(h.ElementType)
	b[5] = byte(h.Compression)
	b[6], b[7] = 0, 0
	engine.PutUint32(b[8:12], h.SliceCount)
	engine.PutUint32(b[12:16], h.PayloadSize)
	engine.PutUint64(b[16:24], h.Checksum)
}

// Parse parses and validates the header at the start of data.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrInvalidSnapshot, len(data), HeaderSize)
	}
	if data[0] != magic0 || data[1] != magic1 {
		return fmt.Errorf("%w: %#x", errs.ErrInvalidMagicNumber, data[:2])
	}
	if data[2] != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, data[2])
	}

	h.Version = data[2]
	h.Flag = Flag(data[3])
	h.ElementType = format.ElementType(data[4])
	h.Compression = format.CompressionType(data[5])

	if h.Flag&^flagMask != 0 {
		return fmt.Errorf("%w: unknown flags %#02x", errs.ErrInvalidSnapshot, byte(h.Flag))
	}
	if !h.ElementType.Valid() {
		return fmt.Errorf("%w: element type %d", errs.ErrInvalidSnapshot, data[4])
	}

	engine := h.Flag.Engine()
	h.SliceCount = engine.Uint32(data[8:12])
	h.PayloadSize = engine.Uint32(data[12:16])
	h.Checksum = engine.Uint64(data[16:24])

	return nil
}

// ParseHeader parses the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
