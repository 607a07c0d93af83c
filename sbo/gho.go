package sbo

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DirectionSampler draws Gaussian Hyperspheric Offsets: directions uniform on the unit
// hypersphere with a Normal(mu, std) radius, so samples lie on a shell rather than in a ball.
type DirectionSampler struct {
	rng    *rand.Rand
	radius distuv.Normal
	scale  *Scale
}

// NewDirectionSampler creates a sampler drawing from rng. A nil rng is seeded from entropy.
// scale, when non-nil, is applied to every vector whose length matches scale.Dim().
func NewDirectionSampler(rng *rand.Rand, mu, std float64, scale *Scale) *DirectionSampler {
	if rng == nil {
		rng = newEntropyRand()
	}
	return &DirectionSampler{
		rng:    rng,
		radius: distuv.Normal{Mu: mu, Sigma: std, Src: rng},
		scale:  scale,
	}
}

// SampleInto writes one offset vector of dimension len(dst) into dst.
func (s *DirectionSampler) SampleInto(dst []float64) {
	s.direction(dst)
	floats.Scale(s.radius.Rand(), dst)
	s.applyScale(dst)
}

// Sample returns n offset vectors of dimension dim as rows of an n x dim matrix.
// All directions are drawn before the radii.
func (s *DirectionSampler) Sample(n, dim int) *mat.Dense {
	out := mat.NewDense(n, dim, nil)
	for i := 0; i < n; i++ {
		s.direction(out.RawRowView(i))
	}
	for i := 0; i < n; i++ {
		row := out.RawRowView(i)
		floats.Scale(s.radius.Rand(), row)
		s.applyScale(row)
	}
	return out
}

// direction fills dst with a uniformly distributed unit vector.
func (s *DirectionSampler) direction(dst []float64) {
	for {
		for j := range dst {
			dst[j] = s.rng.NormFloat64()
		}
		if norm := floats.Norm(dst, 2); norm > 0 {
			floats.Scale(1/norm, dst)
			return
		}
	}
}

func (s *DirectionSampler) applyScale(v []float64) {
	if s.scale != nil && s.scale.Dim() == len(v) {
		s.scale.Apply(v)
	}
}

// GaussianHypersphericOffset returns n GHO vectors of dimension dim with radius Normal(mu, std).
// A nil rng is seeded from entropy. See DefaultMu, DefaultStd and DefaultDim.
func GaussianHypersphericOffset(n, dim int, mu, std float64, rng *rand.Rand) (*mat.Dense, error) {
	if n < 1 || dim < 1 {
		return nil, errors.Wrapf(ErrDegenerateInput, "need n >= 1 and dim >= 1, got n=%d dim=%d", n, dim)
	}
	if math.IsNaN(mu) || math.IsInf(mu, 0) || std < 0 || math.IsNaN(std) || math.IsInf(std, 0) {
		return nil, errors.Wrapf(ErrConfiguration, "invalid shell mu=%v std=%v", mu, std)
	}
	return NewDirectionSampler(rng, mu, std, nil).Sample(n, dim), nil
}
