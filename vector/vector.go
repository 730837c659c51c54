// Package vector provides slice-wise arithmetic kernels over float64 streams.
//
// Binary operations follow the spread convention of the node graph: the
// result has SpreadMax of the operand slice counts, and shorter operands are
// read cyclically. Operands of equal length take the block kernels of
// algo-vecmath.
package vector

import (
	"slices"

	"github.com/arloliu/spreadbuf/stream"
	"github.com/cwbudde/algo-vecmath"
)

// SpreadMax returns the slice count of a binary or n-ary spread operation:
// 0 if any count is 0, the largest count otherwise.
func SpreadMax(counts ...int) int {
	result := 0
	for _, n := range counts {
		if n <= 0 {
			return 0
		}
		result = max(result, n)
	}

	return result
}

// Mul sets dst to a*b slice-wise. dst may alias a or b.
func Mul(dst, a, b *stream.Stream[float64]) error {
	return binary(dst, a, b, vecmath.MulBlock, func(x, y float64) float64 { return x * y })
}

// Add sets dst to a+b slice-wise. dst may alias a or b.
func Add(dst, a, b *stream.Stream[float64]) error {
	block := func(out, x, y []float64) {
		copy(out, x)
		vecmath.AddBlockInPlace(out, y)
	}

	return binary(dst, a, b, block, func(x, y float64) float64 { return x + y })
}

// MulInPlace multiplies dst by src slice-wise, reading src cyclically over
// the slices of dst. An empty src empties dst.
func MulInPlace(dst, src *stream.Stream[float64]) error {
	if src.Len() == 0 {
		return dst.SetLength(0)
	}

	out, err := dst.WriteView().Slice()
	if err != nil {
		return err
	}
	in, err := src.WriteView().Slice()
	if err != nil {
		return err
	}

	if len(in) == len(out) {
		vecmath.MulBlockInPlace(out, in)
		return nil
	}
	for i := range out {
		out[i] *= in[i%len(in)]
	}

	return nil
}

// Scale multiplies every slice of dst by factor.
func Scale(dst *stream.Stream[float64], factor float64) error {
	out, err := dst.WriteView().Slice()
	if err != nil {
		return err
	}
	vecmath.ScaleBlock(out, out, factor)

	return nil
}

func binary(dst, a, b *stream.Stream[float64], block func(out, x, y []float64), op func(x, y float64) float64) error {
	x, err := operand(dst, a)
	if err != nil {
		return err
	}
	y, err := operand(dst, b)
	if err != nil {
		return err
	}

	n := SpreadMax(len(x), len(y))
	if err := dst.SetLength(n); err != nil {
		return err
	}
	out, err := dst.WriteView().Slice()
	if err != nil {
		return err
	}

	if len(x) == n && len(y) == n {
		block(out, x, y)
		return nil
	}
	for i := range out {
		out[i] = op(x[i%len(x)], y[i%len(y)])
	}

	return nil
}

// operand returns the slices of s. When s is dst, they are copied since
// resizing dst may replace its storage.
func operand(dst, s *stream.Stream[float64]) ([]float64, error) {
	data, err := s.WriteView().Slice()
	if err != nil {
		return nil, err
	}
	if s == dst {
		return slices.Clone(data), nil
	}

	return data, nil
}
