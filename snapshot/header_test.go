package snapshot

import (
	"testing"

	"github.com/arloliu/spreadbuf/endian"
	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/format"
	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		for _, layout := range []format.Layout{format.LayoutFlat, format.LayoutBin} {
			h := Header{
				Version:     Version,
				Flag:        newFlag(engine, layout),
				ElementType: format.TypeInt32,
				Compression: format.CompressionS2,
				SliceCount:  7,
				PayloadSize: 1 << 20,
				Checksum:    0xdeadbeefcafef00d,
			}

			b := h.Bytes()
			require.Len(t, b, HeaderSize)
			require.Equal(t, []byte("SB"), b[:2])

			parsed, err := ParseHeader(b)
			require.NoError(t, err)
			require.Equal(t, h, parsed)
			require.Equal(t, layout, parsed.Flag.Layout())
			require.Equal(t, endian.IsBigEndian(engine), parsed.Flag.IsBigEndian())
		}
	}
}

func TestHeader_ByteOrder(t *testing.T) {
	h := Header{Version: Version, Flag: newFlag(endian.GetBigEndianEngine(), format.LayoutFlat), ElementType: format.TypeBool, SliceCount: 1}
	require.Equal(t, []byte{0, 0, 0, 1}, h.Bytes()[8:12])

	h.Flag = newFlag(endian.GetLittleEndianEngine(), format.LayoutFlat)
	require.Equal(t, []byte{1, 0, 0, 0}, h.Bytes()[8:12])
}

func TestParseHeader_Errors(t *testing.T) {
	valid := func() []byte {
		h := Header{Version: Version, ElementType: format.TypeFloat64, Compression: format.CompressionNone}
		return h.Bytes()
	}

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
	}{
		{"short", func(b []byte) []byte { return b[:HeaderSize-1] }, errs.ErrInvalidSnapshot},
		{"magic", func(b []byte) []byte { b[0] = 'X'; return b }, errs.ErrInvalidMagicNumber},
		{"version", func(b []byte) []byte { b[2] = Version + 1; return b }, errs.ErrUnsupportedVersion},
		{"unknown flag", func(b []byte) []byte { b[3] = 0x80; return b }, errs.ErrInvalidSnapshot},
		{"element type", func(b []byte) []byte { b[4] = 0; return b }, errs.ErrInvalidSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.mutate(valid()))
			require.ErrorIs(t, err, tt.want)
		})
	}
}
