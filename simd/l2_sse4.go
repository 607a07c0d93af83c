//go:build amd64 && cgo

package simd

/*
#cgo CFLAGS: -msse4.1 -O3
#include <smmintrin.h>
#include <stddef.h>

static double MinSquaredL2FlatSSE4(const double* q, const double* data, size_t dim, size_t n, size_t* argmin) {
	double best = 0;
	size_t bestIdx = 0;
	for (size_t i = 0; i < n; i++) {
		const double* row = data + i * dim;
		__m128d sum = _mm_setzero_pd();
		size_t j = 0;
		for (; j + 2 <= dim; j += 2) {
			__m128d d = _mm_sub_pd(_mm_loadu_pd(q + j), _mm_loadu_pd(row + j));
			sum = _mm_add_pd(sum, _mm_mul_pd(d, d));
		}
		sum = _mm_hadd_pd(sum, sum);
		double s = _mm_cvtsd_f64(sum);
		for (; j < dim; j++) {
			double d = q[j] - row[j];
			s += d * d;
		}
		if (i == 0 || s < best) {
			best = s;
			bestIdx = i;
		}
	}
	*argmin = bestIdx;
	return best;
}
*/
import "C"

import "unsafe"

func minSquaredL2FlatSSE4(query, data []float64, dim, n int) (float64, int) {
	var argmin C.size_t
	best := C.MinSquaredL2FlatSSE4(
		(*C.double)(unsafe.Pointer(&query[0])),
		(*C.double)(unsafe.Pointer(&data[0])),
		C.size_t(dim),
		C.size_t(n),
		&argmin,
	)
	return float64(best), int(argmin)
}
