package sbo

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Scale maps GHO vectors from the unit shell onto the spread of a reference set:
// v[j] = v[j]*Std[j] + Mean[j].
type Scale struct {
	mean []float64
	std  []float64
}

// NewScale derives per-dimension mean and population standard deviation from the rows of x.
func NewScale(x mat.Matrix) (*Scale, error) {
	if x == nil {
		return nil, errors.Wrap(ErrDegenerateInput, "nil scale reference")
	}
	n, dim := x.Dims()
	if n == 0 || dim == 0 {
		return nil, errors.Wrapf(ErrDegenerateInput, "scale reference has shape %dx%d", n, dim)
	}
	s := &Scale{mean: make([]float64, dim), std: make([]float64, dim)}
	col := make([]float64, n)
	for j := 0; j < dim; j++ {
		mat.Col(col, j, x)
		s.mean[j], s.std[j] = stat.PopMeanStdDev(col, nil)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewScaleFromMoments builds a Scale from explicit per-dimension mean and std.
func NewScaleFromMoments(mean, std []float64) (*Scale, error) {
	if len(mean) == 0 || len(mean) != len(std) {
		return nil, errors.Wrapf(ErrDegenerateInput, "mean has %d values, std has %d", len(mean), len(std))
	}
	s := &Scale{mean: append([]float64(nil), mean...), std: append([]float64(nil), std...)}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dim returns the dimension the scale applies to.
func (s *Scale) Dim() int {
	return len(s.mean)
}

// Mean returns a copy of the per-dimension offsets.
func (s *Scale) Mean() []float64 {
	return append([]float64(nil), s.mean...)
}

// Std returns a copy of the per-dimension factors.
func (s *Scale) Std() []float64 {
	return append([]float64(nil), s.std...)
}

// Apply scales v in place. v must have length Dim.
func (s *Scale) Apply(v []float64) {
	for j := range v {
		v[j] = v[j]*s.std[j] + s.mean[j]
	}
}

func (s *Scale) validate() error {
	for j := range s.mean {
		if math.IsNaN(s.mean[j]) || math.IsInf(s.mean[j], 0) || math.IsNaN(s.std[j]) || math.IsInf(s.std[j], 0) || s.std[j] < 0 {
			return errors.Wrapf(ErrConfiguration, "scale dimension %d has mean %v std %v", j, s.mean[j], s.std[j])
		}
	}
	return nil
}
