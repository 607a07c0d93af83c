//go:build amd64 && cgo

package simd

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasAVX512F {
		minSquaredL2FlatImpl = minSquaredL2FlatAVX512
		minSquaredL2FlatImplDesc = "AVX-512"
	} else if cpu.X86.HasAVX2 {
		minSquaredL2FlatImpl = minSquaredL2FlatAVX2
		minSquaredL2FlatImplDesc = "AVX2"
	} else if cpu.X86.HasSSE41 {
		minSquaredL2FlatImpl = minSquaredL2FlatSSE4
		minSquaredL2FlatImplDesc = "SSE4"
	} else {
		minSquaredL2FlatImpl = minSquaredL2FlatGo
		minSquaredL2FlatImplDesc = "Go"
	}
}
