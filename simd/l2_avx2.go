//go:build amd64 && cgo

package simd

/*
#cgo CFLAGS: -mavx2 -O3
#include <immintrin.h>
#include <stddef.h>

static double horizontal_sum_m256d(__m256d v) {
	__m128d lo = _mm256_castpd256_pd128(v);
	__m128d hi = _mm256_extractf128_pd(v, 1);
	lo = _mm_add_pd(lo, hi);
	__m128d high64 = _mm_unpackhi_pd(lo, lo);
	return _mm_cvtsd_f64(_mm_add_sd(lo, high64));
}

static double MinSquaredL2FlatAVX2(const double* q, const double* data, size_t dim, size_t n, size_t* argmin) {
	double best = 0;
	size_t bestIdx = 0;
	for (size_t i = 0; i < n; i++) {
		const double* row = data + i * dim;
		if (i + 1 < n) {
			_mm_prefetch((const char*)(row + dim), _MM_HINT_T0);
		}
		__m256d sum = _mm256_setzero_pd();
		size_t j = 0;
		for (; j + 4 <= dim; j += 4) {
			__m256d d = _mm256_sub_pd(_mm256_loadu_pd(q + j), _mm256_loadu_pd(row + j));
			sum = _mm256_add_pd(sum, _mm256_mul_pd(d, d));
		}
		double s = horizontal_sum_m256d(sum);
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

func minSquaredL2FlatAVX2(query, data []float64, dim, n int) (float64, int) {
	var argmin C.size_t
	best := C.MinSquaredL2FlatAVX2(
		(*C.double)(unsafe.Pointer(&query[0])),
		(*C.double)(unsafe.Pointer(&data[0])),
		C.size_t(dim),
		C.size_t(n),
		&argmin,
	)
	return float64(best), int(argmin)
}
