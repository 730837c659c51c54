// Package format defines the enumerations shared by codecs and snapshots.
package format

type (
	// ElementType identifies the element codec of a spread.
	ElementType uint8
	// Layout identifies whether a snapshot holds a flat spread or a bin spread.
	Layout uint8
	// CompressionType identifies the payload compression of a snapshot.
	CompressionType uint8
)

const (
	TypeFloat64 ElementType = 0x1 // TypeFloat64 represents IEEE-754 float64 slices.
	TypeFloat32 ElementType = 0x2 // TypeFloat32 represents IEEE-754 float32 slices.
	TypeInt64   ElementType = 0x3 // TypeInt64 represents int64 slices.
	TypeInt32   ElementType = 0x4 // TypeInt32 represents int32 slices.
	TypeBool    ElementType = 0x5 // TypeBool represents boolean slices.
	TypeString  ElementType = 0x6 // TypeString represents varint length-prefixed strings.

	LayoutFlat Layout = 0x1 // LayoutFlat is a 1-D spread.
	LayoutBin  Layout = 0x2 // LayoutBin is a 2-D spread of inner spreads.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e ElementType) String() string {
	switch e {
	case TypeFloat64:
		return "Float64"
	case TypeFloat32:
		return "Float32"
	case TypeInt64:
		return "Int64"
	case TypeInt32:
		return "Int32"
	case TypeBool:
		return "Bool"
	case TypeString:
		return "String"
	default:
		return "Unknown"
	}
}

// Valid reports whether e is a known element type.
func (e ElementType) Valid() bool {
	return e >= TypeFloat64 && e <= TypeString
}

func (l Layout) String() string {
	switch l {
	case LayoutFlat:
		return "Flat"
	case LayoutBin:
		return "Bin"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
