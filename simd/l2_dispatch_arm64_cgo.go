//go:build arm64 && cgo

package simd

import "golang.org/x/sys/cpu"

func init() {
	if cpu.ARM64.HasASIMD {
		minSquaredL2FlatImpl = minSquaredL2FlatNEON
		minSquaredL2FlatImplDesc = "NEON"
	} else {
		minSquaredL2FlatImpl = minSquaredL2FlatGo
		minSquaredL2FlatImplDesc = "Go"
	}
}
