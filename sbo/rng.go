package sbo

import "math/rand/v2"

// pcgStream is the fixed PCG increment; seeds only vary the state.
const pcgStream = 0x9e3779b97f4a7c15

func newSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

func newEntropyRand() *rand.Rand {
	return newSeededRand(rand.Uint64())
}
