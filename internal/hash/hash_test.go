package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumString(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, SumString(tt.data))
			assert.Equal(t, tt.id, Sum([]byte(tt.data)))
		})
	}
}

func TestFingerprint(t *testing.T) {
	t.Run("matches one-shot sum", func(t *testing.T) {
		f := NewFingerprint()
		f.Write([]byte("te"))
		f.Write([]byte("st"))
		require.Equal(t, SumString("test"), f.Sum64())
	})

	t.Run("counts separate element boundaries", func(t *testing.T) {
		a := NewFingerprint()
		a.WriteCount(1)
		a.Write([]byte("ab"))

		b := NewFingerprint()
		b.WriteCount(2)
		b.Write([]byte("ab"))

		require.NotEqual(t, a.Sum64(), b.Sum64())
	})

	t.Run("reset", func(t *testing.T) {
		f := NewFingerprint()
		f.Write([]byte("payload"))
		f.Reset()
		require.Equal(t, SumString(""), f.Sum64())
	})
}

func BenchmarkFingerprint(b *testing.B) {
	chunk := make([]byte, 4096)
	f := NewFingerprint()
	b.ResetTimer()
	for b.Loop() {
		f.Reset()
		f.Write(chunk)
		_ = f.Sum64()
	}
}
