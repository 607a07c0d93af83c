package sbo

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// softnessSlope stretches the logistic curve so that Soft(1) moves from
// near-zero to near-one acceptance over roughly one d_min.
const softnessSlope = 7.0

// Softness selects the acceptance rule of a walk. The zero value is Hard.
type Softness struct {
	steepness float64 // 0 means hard threshold
}

// Hard accepts a point iff its distance to the cloud exceeds d_min.
func Hard() Softness {
	return Softness{}
}

// Soft accepts a point with logistic probability centred at d_min; s must be finite and > 0.
// Smaller s approaches Hard, larger s is more permissive near the boundary.
func Soft(s float64) (Softness, error) {
	if !(s > 0) || math.IsInf(s, 1) {
		return Softness{}, errors.Wrapf(ErrConfiguration, "softness must be a finite number greater than zero, got %v", s)
	}
	return Softness{steepness: s}, nil
}

// MustSoft is like Soft but panics on an invalid value.
func MustSoft(s float64) Softness {
	soft, err := Soft(s)
	if err != nil {
		panic(err)
	}
	return soft
}

// ParseSoftness converts a loosely typed value (e.g. from a config file) into a Softness.
// false and nil select Hard; true selects Soft(1); positive numbers select Soft.
// Anything else, numeric zero included, is ErrConfiguration.
func ParseSoftness(v any) (Softness, error) {
	switch x := v.(type) {
	case nil:
		return Hard(), nil
	case Softness:
		return x, x.validate()
	case bool:
		if !x {
			return Hard(), nil
		}
		return Soft(1)
	case float64:
		return Soft(x)
	case float32:
		return Soft(float64(x))
	case int:
		return Soft(float64(x))
	case int32:
		return Soft(float64(x))
	case int64:
		return Soft(float64(x))
	case uint:
		return Soft(float64(x))
	case uint32:
		return Soft(float64(x))
	case uint64:
		return Soft(float64(x))
	default:
		return Softness{}, errors.Wrapf(ErrConfiguration, "softness must be false or a number greater than zero, got %T(%v)", v, v)
	}
}

// IsHard reports whether s is the hard threshold rule.
func (s Softness) IsHard() bool {
	return s.steepness == 0
}

// Steepness returns the soft parameter, or 0 for Hard.
func (s Softness) Steepness() float64 {
	return s.steepness
}

func (s Softness) String() string {
	if s.IsHard() {
		return "hard"
	}
	return fmt.Sprintf("soft(%g)", s.steepness)
}

// AcceptProbability returns the probability that a point at distance dist from the
// cloud is accepted. For Soft it is exactly 0.5 at dist == dMin.
func (s Softness) AcceptProbability(dist, dMin float64) float64 {
	if s.IsHard() {
		if dist > dMin {
			return 1
		}
		return 0
	}
	return 1 / (1 + math.Exp((dMin-dist)/s.steepness/dMin*softnessSlope))
}

func (s Softness) accept(dist, dMin float64, rng *rand.Rand) bool {
	if s.IsHard() {
		return dist > dMin
	}
	return rng.Float64() < s.AcceptProbability(dist, dMin)
}

func (s Softness) validate() error {
	if s.steepness < 0 || math.IsNaN(s.steepness) || math.IsInf(s.steepness, 0) {
		return errors.Wrapf(ErrConfiguration, "softness must be a finite number greater than zero, got %v", s.steepness)
	}
	return nil
}
