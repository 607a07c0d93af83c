//go:build amd64 && cgo

package simd

import (
	"math"
	"math/rand"
	"testing"

	"golang.org/x/sys/cpu"
)

func TestKernelsAgreeAMD64(t *testing.T) {
	kernels := []struct {
		name string
		ok   bool
		fn   func(query, data []float64, dim, n int) (float64, int)
	}{
		{"AVX-512", cpu.X86.HasAVX512F, minSquaredL2FlatAVX512},
		{"AVX2", cpu.X86.HasAVX2, minSquaredL2FlatAVX2},
		{"SSE4", cpu.X86.HasSSE41, minSquaredL2FlatSSE4},
	}
	rng := rand.New(rand.NewSource(3))
	for _, k := range kernels {
		if !k.ok {
			t.Logf("%s not available, skipping", k.name)
			continue
		}
		for _, dim := range []int{1, 2, 3, 7, 8, 9, 31, 512} {
			data := randomFlat(rng, 50, dim)
			query := randomFlat(rng, 1, dim)
			want, wantIdx := minSquaredL2FlatGo(query, data, dim, 50)
			got, idx := k.fn(query, data, dim, 50)
			if idx != wantIdx || math.Abs(got-want) > 1e-9 {
				t.Errorf("%s dim=%d: got (%g, %d) want (%g, %d)", k.name, dim, got, idx, want, wantIdx)
			}
		}
	}
}

func BenchmarkMinSquaredL2Flat_AVX2(b *testing.B) {
	if !cpu.X86.HasAVX2 {
		b.Skip("AVX2 not available")
	}
	rng := rand.New(rand.NewSource(42))
	data := randomFlat(rng, 256, 64)
	query := randomFlat(rng, 1, 64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = minSquaredL2FlatAVX2(query, data, 64, 256)
	}
}
