//go:build arm64 && cgo

package simd

/*
#cgo CFLAGS: -O3
#include <arm_neon.h>
#include <stddef.h>

static double MinSquaredL2FlatNEON(const double* q, const double* data, size_t dim, size_t n, size_t* argmin) {
	double best = 0;
	size_t bestIdx = 0;
	for (size_t i = 0; i < n; i++) {
		const double* row = data + i * dim;
		if (i + 1 < n) {
			__builtin_prefetch(row + dim);
		}
		float64x2_t sum = vdupq_n_f64(0.0);
		size_t j = 0;
		for (; j + 2 <= dim; j += 2) {
			float64x2_t d = vsubq_f64(vld1q_f64(q + j), vld1q_f64(row + j));
			sum = vfmaq_f64(sum, d, d);
		}
		double s = vaddvq_f64(sum);
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

func minSquaredL2FlatNEON(query, data []float64, dim, n int) (float64, int) {
	var argmin C.size_t
	best := C.MinSquaredL2FlatNEON(
		(*C.double)(unsafe.Pointer(&query[0])),
		(*C.double)(unsafe.Pointer(&data[0])),
		C.size_t(dim),
		C.size_t(n),
		&argmin,
	)
	return float64(best), int(argmin)
}
