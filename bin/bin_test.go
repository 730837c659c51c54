package bin

import (
	"testing"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/spread"
	"github.com/arloliu/spreadbuf/stream"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func mustInner[T any](t require.TestingT, b *Buffer[T], i int) *spread.Spread[T] {
	inner, err := b.Inner(i)
	require.NoError(t, err)
	require.NotNil(t, inner)

	return inner
}

func TestBuffer_FirstAllocation(t *testing.T) {
	b, err := New[int](0)
	require.NoError(t, err)
	require.Equal(t, 0, b.Capacity())

	require.NoError(t, b.SetLength(3))
	require.Equal(t, 3, b.Len())

	seen := map[*spread.Spread[int]]bool{}
	for i := range 3 {
		inner := mustInner(t, b, i)
		require.Equal(t, 0, inner.Len())
		require.False(t, seen[inner], "inner spreads must be independent instances")
		seen[inner] = true
	}
	require.Zero(t, b.Clones())
}

func TestBuffer_GrowthScenario(t *testing.T) {
	b, err := New[int](0)
	require.NoError(t, err)
	require.NoError(t, b.SetLength(3))

	originals := []*spread.Spread[int]{mustInner(t, b, 0), mustInner(t, b, 1), mustInner(t, b, 2)}
	originals[0].Append(1, 2)
	originals[1].Append(3)
	originals[2].Append(4, 5, 6)

	require.NoError(t, b.SetLength(7))
	require.Equal(t, 7, b.Len())

	for i := range 3 {
		require.Same(t, originals[i], mustInner(t, b, i), "existing inner spread %d must keep its identity", i)
	}
	require.Equal(t, []int{1, 2}, originals[0].Values())
	require.Equal(t, []int{3}, originals[1].Values())
	require.Equal(t, []int{4, 5, 6}, originals[2].Values())

	want := map[int][]int{3: {1, 2}, 4: {3}, 5: {4, 5, 6}, 6: {1, 2}}
	for i, values := range want {
		inner := mustInner(t, b, i)
		require.Equal(t, values, inner.Values(), "index %d", i)
		require.NotSame(t, originals[i%3], inner, "index %d must be a clone", i)
	}

	require.Equal(t, []int{2, 1, 3, 2, 1, 3, 2}, b.BinSizes())
	require.Equal(t, 14, b.TotalCount())
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 1, 2, 3, 4, 5, 6, 1, 2}, b.Flatten())

	mustInner(t, b, 3).Append(99)
	require.Equal(t, []int{1, 2}, originals[0].Values(), "clones must not alias their source")
	require.Equal(t, []int{1, 2}, mustInner(t, b, 6).Values())
}

func TestBuffer_ShrinkKeepsInnerSpreads(t *testing.T) {
	b, err := New[string](4)
	require.NoError(t, err)
	last := mustInner(t, b, 3)
	last.Append("kept")

	require.NoError(t, b.SetLength(1))
	require.Equal(t, 4, b.Capacity())
	_, err = b.Inner(3)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	clones := b.Clones()
	require.NoError(t, b.SetLength(4))
	require.Same(t, last, mustInner(t, b, 3), "regrowth within capacity reuses the retained inner spread")
	require.Equal(t, clones, b.Clones())
}

func TestBuffer_WrapUsesWholeCapacity(t *testing.T) {
	b, err := New[int](4)
	require.NoError(t, err)
	for i := range 4 {
		mustInner(t, b, i).Append(i)
	}

	// Logical length drops, but the clone source is the whole old storage.
	require.NoError(t, b.SetLength(2))
	require.NoError(t, b.SetLength(7))

	require.Equal(t, 8, b.Capacity())
	require.Equal(t, []int{0}, mustInner(t, b, 4).Values())
	require.Equal(t, []int{1}, mustInner(t, b, 5).Values())
	require.Equal(t, []int{2}, mustInner(t, b, 6).Values())

	require.NoError(t, b.SetLength(8))
	require.Equal(t, []int{3}, mustInner(t, b, 7).Values(), "slot beyond the old logical length is cloned too")
}

func TestBuffer_NilSourceBecomesEmpty(t *testing.T) {
	b, err := New[int](2)
	require.NoError(t, err)

	// A nil inner spread can only appear by writing it through the raw view.
	raw, err := b.WriteView().Slice()
	require.NoError(t, err)
	raw[1] = nil

	require.NoError(t, b.SetLength(4))
	inner := mustInner(t, b, 3)
	require.Equal(t, 0, inner.Len())
	require.Equal(t, uint64(1), b.Clones())
}

func TestBuffer_Factory(t *testing.T) {
	b, err := NewWithFactory(1, func() float64 { return 1.5 })
	require.NoError(t, err)

	inner := mustInner(t, b, 0)
	require.NoError(t, inner.Resize(2))
	require.Equal(t, []float64{1.5, 1.5}, inner.Values())

	require.NoError(t, b.SetLength(2))
	clone := mustInner(t, b, 1)
	require.NoError(t, clone.Resize(3))
	require.Equal(t, []float64{1.5, 1.5, 1.5}, clone.Values(), "clones keep the inner factory")
}

func TestBuffer_SetInner(t *testing.T) {
	b, err := New[int](2)
	require.NoError(t, err)

	replacement := spread.From(7, 8)
	require.NoError(t, b.SetInner(1, replacement))
	require.Same(t, replacement, mustInner(t, b, 1))

	require.ErrorIs(t, b.SetInner(0, nil), errs.ErrInvalidArgument)
	require.ErrorIs(t, b.SetInner(2, replacement), errs.ErrOutOfRange)
}

func TestBuffer_Trim(t *testing.T) {
	b, err := New[int](8)
	require.NoError(t, err)
	require.NoError(t, b.SetLength(3))

	b.Trim()
	require.Equal(t, 3, b.Capacity())
	require.Equal(t, uint64(1), b.Stats().Trims)
}

func TestBuffer_StaleView(t *testing.T) {
	b, err := New[int](2)
	require.NoError(t, err)

	w := b.WriteView()
	require.NoError(t, b.SetLength(5))

	require.ErrorIs(t, w.Set(0, spread.New[int](0)), errs.ErrStaleView)
	require.True(t, b.ReadView().Valid())
}

func TestBuffer_Options(t *testing.T) {
	b, err := New[int](3, stream.WithGrowthPolicy(stream.PowerOfTwo), stream.WithName("bins"))
	require.NoError(t, err)
	require.Equal(t, 4, b.Capacity())
	require.Equal(t, "bins", b.Stream().Name())

	_, err = New[int](-1)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestBuffer_NestedDeepClone(t *testing.T) {
	b, err := New[*spread.Spread[int]](1)
	require.NoError(t, err)
	deep := spread.From(1, 2)
	mustInner(t, b, 0).Append(deep)

	require.NoError(t, b.SetLength(2))
	cloned := mustInner(t, b, 1).At(0)
	require.NotSame(t, deep, cloned)
	require.True(t, spread.Equal(deep, cloned))
}

func TestBuffer_CloneInvariantProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		policy := rapid.SampledFrom([]stream.GrowthPolicy{stream.Doubling, stream.PowerOfTwo, stream.Exact}).Draw(rt, "policy")
		k := rapid.IntRange(1, 16).Draw(rt, "k")

		b, err := New[int](k, stream.WithGrowthPolicy(policy))
		require.NoError(rt, err)

		oldCap := b.Capacity()
		before := make([]*spread.Spread[int], oldCap)
		require.NoError(rt, b.SetLength(oldCap))
		for i := range oldCap {
			inner := mustInner(rt, b, i)
			inner.Append(rapid.SliceOfN(rapid.Int(), 0, 5).Draw(rt, "values")...)
			before[i] = inner
		}

		m := rapid.IntRange(oldCap+1, 64).Draw(rt, "m")
		require.NoError(rt, b.SetLength(m))
		newCap := b.Capacity()
		require.NoError(rt, b.SetLength(newCap))

		for i := range oldCap {
			require.Same(rt, before[i], mustInner(rt, b, i))
		}
		for i := oldCap; i < newCap; i++ {
			inner := mustInner(rt, b, i)
			src := before[i%oldCap]
			require.NotSame(rt, src, inner)
			require.True(rt, spread.Equal(src, inner), "slot %d must equal slot %d", i, i%oldCap)
		}
	})
}

func BenchmarkBuffer_Grow(b *testing.B) {
	for b.Loop() {
		buf, _ := New[float64](0)
		_ = buf.SetLength(3)
		for i := range 3 {
			inner, _ := buf.Inner(i)
			_ = inner.Resize(16)
		}
		_ = buf.SetLength(1024)
	}
}
