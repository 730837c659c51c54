package stream

import (
	"testing"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"
)

func TestNew(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s, err := New[float64](0)
		require.NoError(t, err)
		require.Equal(t, 0, s.Len())
		require.Equal(t, 0, s.Capacity())
		require.Equal(t, uint64(0), s.Generation())
	})

	t.Run("pre-sized allocation is exact", func(t *testing.T) {
		s, err := New[int](5)
		require.NoError(t, err)
		require.Equal(t, 5, s.Len())
		require.Equal(t, 5, s.Capacity())
	})

	t.Run("negative length", func(t *testing.T) {
		_, err := New[int](-1)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("nil hook", func(t *testing.T) {
		_, err := NewWithHook[int](1, nil)
		require.ErrorIs(t, err, errs.ErrNilHook)
	})

	t.Run("invalid policy", func(t *testing.T) {
		_, err := New[int](1, WithGrowthPolicy(GrowthPolicy(42)))
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("factory populates initial slots", func(t *testing.T) {
		s, err := NewWithFactory(3, func() string { return "x" })
		require.NoError(t, err)
		for i := range 3 {
			v, err := s.Get(i)
			require.NoError(t, err)
			require.Equal(t, "x", v)
		}
	})
}

func TestGrowthPolicy_Capacity(t *testing.T) {
	tests := []struct {
		policy GrowthPolicy
		oldCap int
		n      int
		want   int
	}{
		{Doubling, 0, 3, 3},
		{Doubling, 3, 4, 6},
		{Doubling, 3, 7, 7},
		{Doubling, 8, 9, 16},
		{PowerOfTwo, 0, 1, 1},
		{PowerOfTwo, 0, 3, 4},
		{PowerOfTwo, 4, 5, 8},
		{PowerOfTwo, 4, 16, 16},
		{PowerOfTwo, 16, 17, 32},
		{Exact, 4, 5, 5},
		{Exact, 0, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Capacity(tt.oldCap, tt.n), "oldCap=%d n=%d", tt.oldCap, tt.n)
		})
	}

	require.Equal(t, "Unknown", GrowthPolicy(9).String())
}

func TestStream_SetLength(t *testing.T) {
	t.Run("grow within capacity does not reallocate", func(t *testing.T) {
		s, err := New[int](8)
		require.NoError(t, err)
		require.NoError(t, s.SetLength(2))
		require.NoError(t, s.SetLength(6))

		require.Equal(t, 6, s.Len())
		require.Equal(t, 8, s.Capacity())
		require.Equal(t, uint64(1), s.Stats().Reallocations)
	})

	t.Run("grow beyond capacity reallocates", func(t *testing.T) {
		s, err := New[int](2)
		require.NoError(t, err)
		require.NoError(t, s.SetLength(3))

		require.Equal(t, 3, s.Len())
		require.Equal(t, 4, s.Capacity())
		require.Equal(t, uint64(2), s.Stats().Reallocations)
		require.Equal(t, uint64(4), s.Stats().PopulatedSlots)
		require.Equal(t, uint64(2), s.Stats().HookInvocations)
	})

	t.Run("negative length leaves state untouched", func(t *testing.T) {
		s, err := New[int](2)
		require.NoError(t, err)
		gen := s.Generation()

		require.ErrorIs(t, s.SetLength(-3), errs.ErrInvalidArgument)
		require.Equal(t, 2, s.Len())
		require.Equal(t, gen, s.Generation())
	})

	t.Run("same length is a no-op", func(t *testing.T) {
		s, err := New[int](4)
		require.NoError(t, err)
		gen := s.Generation()

		require.NoError(t, s.SetLength(4))
		require.Equal(t, gen, s.Generation())
	})

	t.Run("shrink keeps trailing elements for regrowth", func(t *testing.T) {
		s, err := New[int](4)
		require.NoError(t, err)
		for i := range 4 {
			require.NoError(t, s.Set(i, i+1))
		}

		require.NoError(t, s.SetLength(1))
		require.Equal(t, 4, s.Capacity())
		require.NoError(t, s.SetLength(4))

		v, err := s.Get(3)
		require.NoError(t, err)
		require.Equal(t, 4, v)
	})
}

func TestStream_GrowthHook(t *testing.T) {
	var calls [][2]int
	hook := func(old, grown []int) {
		calls = append(calls, [2]int{len(old), len(grown)})
		for i := range old {
			require.Equal(t, old[i], grown[i], "hook must see old elements copied")
		}
		for i := len(old); i < len(grown); i++ {
			grown[i] = 100 + i
		}
	}

	s, err := NewWithHook(2, hook)
	require.NoError(t, err)
	require.NoError(t, s.Set(0, 1))
	require.NoError(t, s.SetLength(5))

	require.Equal(t, [][2]int{{0, 2}, {2, 5}}, calls)
	v0, _ := s.Get(0)
	v1, _ := s.Get(1)
	v4, _ := s.Get(4)
	require.Equal(t, 1, v0)
	require.Equal(t, 101, v1)
	require.Equal(t, 104, v4)
}

func TestStream_Trim(t *testing.T) {
	s, err := New[int](16)
	require.NoError(t, err)
	require.NoError(t, s.Set(2, 7))
	require.NoError(t, s.SetLength(3))

	view := s.ReadView()
	s.Trim()

	require.Equal(t, 3, s.Capacity())
	require.Equal(t, 3, s.Len())
	require.Equal(t, uint64(1), s.Stats().Trims)
	require.False(t, view.Valid())

	v, err := s.Get(2)
	require.NoError(t, err)
	require.Equal(t, 7, v)

	gen := s.Generation()
	s.Trim()
	require.Equal(t, gen, s.Generation(), "trim without spare capacity is a no-op")

	require.NoError(t, s.SetLength(0))
	s.Trim()
	require.Equal(t, 0, s.Capacity())
}

func TestStream_GetSet(t *testing.T) {
	s, err := New[int](8)
	require.NoError(t, err)
	require.NoError(t, s.SetLength(2))

	_, err = s.Get(2)
	require.ErrorIs(t, err, errs.ErrOutOfRange, "index past logical length but within capacity")
	require.ErrorIs(t, s.Set(-1, 1), errs.ErrOutOfRange)
	require.NoError(t, s.Set(1, 5))
}

func TestStream_Cyclic(t *testing.T) {
	s, err := New[int](0)
	require.NoError(t, err)
	_, ok := s.Cyclic(3)
	require.False(t, ok)

	require.NoError(t, s.SetLength(3))
	for i := range 3 {
		require.NoError(t, s.Set(i, i*10))
	}
	v, ok := s.Cyclic(4)
	require.True(t, ok)
	require.Equal(t, 10, v)
	v, _ = s.Cyclic(-1)
	require.Equal(t, 20, v)
}

func TestStream_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s, err := New[int](0, WithName("values"), WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.NoError(t, s.SetLength(3))
	s.Trim()
	require.NoError(t, s.SetLength(1))
	s.Trim()

	entries := logs.FilterMessage("backing storage grown").All()
	require.Len(t, entries, 1)
	require.Equal(t, "values", entries[0].ContextMap()["stream"])
	require.Equal(t, int64(3), entries[0].ContextMap()["new_capacity"])
	require.Equal(t, 1, logs.FilterMessage("backing storage trimmed").Len())
	require.Equal(t, "values", s.Name())
}

func TestStats_Utilization(t *testing.T) {
	require.Zero(t, Stats{}.Utilization())
	require.InDelta(t, 0.5, Stats{Length: 2, Capacity: 4}.Utilization(), 1e-9)
}

func TestStream_LengthProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		policy := rapid.SampledFrom([]GrowthPolicy{Doubling, PowerOfTwo, Exact}).Draw(rt, "policy")
		s, err := NewWithFactory(0, func() int { return -1 }, WithGrowthPolicy(policy))
		require.NoError(rt, err)

		for _, n := range rapid.SliceOfN(rapid.IntRange(0, 200), 1, 30).Draw(rt, "lengths") {
			require.NoError(rt, s.SetLength(n))
			require.Equal(rt, n, s.Len())
			require.GreaterOrEqual(rt, s.Capacity(), n)
			for i := range n {
				_, err := s.Get(i)
				require.NoError(rt, err)
			}
		}
	})
}

func TestStream_GrowShrinkPreservesPrefixProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(0, 50).Draw(rt, "a")
		b := rapid.IntRange(a+1, 300).Draw(rt, "b")

		s, err := New[int](a)
		require.NoError(rt, err)
		want := make([]int, a)
		for i := range a {
			want[i] = rapid.Int().Draw(rt, "value")
			require.NoError(rt, s.Set(i, want[i]))
		}

		require.NoError(rt, s.SetLength(b))
		require.NoError(rt, s.SetLength(a))

		got := make([]int, a)
		n, err := s.ReadView().CopyTo(got)
		require.NoError(rt, err)
		require.Equal(rt, a, n)
		require.Equal(rt, want, got)
	})
}

func BenchmarkStream_SetLength(b *testing.B) {
	s, _ := New[float64](0)
	b.ResetTimer()
	for b.Loop() {
		_ = s.SetLength(1024)
		_ = s.SetLength(0)
	}
}
