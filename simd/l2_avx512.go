//go:build amd64 && cgo

package simd

/*
#cgo CFLAGS: -mavx512f -O3
#include <immintrin.h>
#include <stddef.h>

static double MinSquaredL2FlatAVX512(const double* q, const double* data, size_t dim, size_t n, size_t* argmin) {
	double best = 0;
	size_t bestIdx = 0;
	for (size_t i = 0; i < n; i++) {
		const double* row = data + i * dim;
		__m512d sum = _mm512_setzero_pd();
		size_t j = 0;
		for (; j + 8 <= dim; j += 8) {
			__m512d d = _mm512_sub_pd(_mm512_loadu_pd(q + j), _mm512_loadu_pd(row + j));
			sum = _mm512_fmadd_pd(d, d, sum);
		}
		double lanes[8];
		_mm512_storeu_pd(lanes, sum);
		double s = 0;
		for (int k = 0; k < 8; k++) s += lanes[k];
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

func minSquaredL2FlatAVX512(query, data []float64, dim, n int) (float64, int) {
	var argmin C.size_t
	best := C.MinSquaredL2FlatAVX512(
		(*C.double)(unsafe.Pointer(&query[0])),
		(*C.double)(unsafe.Pointer(&data[0])),
		C.size_t(dim),
		C.size_t(n),
		&argmin,
	)
	return float64(best), int(argmin)
}
