// Package simd provides AVX-512, AVX2, SSE4, and NEON accelerated Euclidean distance kernels
// for float64 vectors of any dimension. Automatically selects the best implementation
// based on GOARCH and CGO availability.
package simd

var (
	minSquaredL2FlatImpl     func(query, data []float64, dim, n int) (float64, int)
	minSquaredL2FlatImplDesc string
)

func init() {
	// Default; dispatch files override in init() based on GOARCH and CGO.
	if minSquaredL2FlatImpl == nil {
		minSquaredL2FlatImpl = minSquaredL2FlatGo
		minSquaredL2FlatImplDesc = "Go"
	}
}

// SquaredL2 returns the squared Euclidean distance between a and b.
// Returns 0 if the lengths differ or the vectors are empty.
func SquaredL2(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	return squaredL2Go(a, b)
}

// MinSquaredL2Flat returns the smallest squared distance between query and the first n
// vectors of data, and the index of that vector. Layout: data[i*dim:(i+1)*dim] is the i-th vector.
// Returns (-1, -1) on invalid input.
func MinSquaredL2Flat(query, data []float64, n int) (float64, int) {
	dim := len(query)
	if dim == 0 || n <= 0 || len(data) < n*dim {
		return -1, -1
	}
	if minSquaredL2FlatImpl != nil {
		return minSquaredL2FlatImpl(query, data, dim, n)
	}
	return minSquaredL2FlatGo(query, data, dim, n)
}

// ImplDesc returns a description of the current batch kernel (for logging).
func ImplDesc() string {
	if minSquaredL2FlatImplDesc != "" {
		return minSquaredL2FlatImplDesc
	}
	return "Go"
}

// squaredL2Go is the pure Go implementation (4-way unroll with scalar tail).
func squaredL2Go(a, b []float64) float64 {
	var s0, s1, s2, s3 float64
	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		d0 := a[i+0] - b[i+0]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}
	for ; i < n; i++ {
		d := a[i] - b[i]
		s0 += d * d
	}
	return (s0 + s1) + (s2 + s3)
}

func minSquaredL2FlatGo(query, data []float64, dim, n int) (float64, int) {
	best, bestIdx := squaredL2Go(query, data[:dim]), 0
	for i := 1; i < n; i++ {
		if d := squaredL2Go(query, data[i*dim:(i+1)*dim]); d < best {
			best, bestIdx = d, i
		}
	}
	return best, bestIdx
}
