package sbo

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// DefaultMu is the mean GHO radius in units of d_off.
	DefaultMu = 4.0
	// DefaultStd is the standard deviation of the GHO radius.
	DefaultStd = 0.7
	// DefaultDim is the dimension used by GaussianHypersphericOffset callers that have no data.
	DefaultDim = 3
	// DefaultMaxIterations caps the steps of a single walk.
	DefaultMaxIterations = 1_000_000
)

// Config holds the parameters of one SBO invocation. DMin and DOff have no defaults.
type Config struct {
	DMin          float64  // minimum accepted distance to the cloud
	DOff          float64  // scale applied to every GHO step
	NSamples      int      // OOD points to produce, default 1
	Softness      Softness // acceptance rule, default Hard
	RandomState   *int64   // seeds the RNG once per invocation; nil draws a seed from entropy
	Mu            float64  // mean GHO radius, default 4.0 (with Std)
	Std           float64  // GHO radius stddev, default 0.7 (with Mu)
	MaxIterations int      // steps per walk before ErrConvergence, default 1e6; negative disables the cap
	Workers       int      // >1 walks samples in parallel on per-sample substreams, default 1
	Scale         *Scale   // optional per-dimension affine scale of GHO steps
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		NSamples:      1,
		Mu:            DefaultMu,
		Std:           DefaultStd,
		MaxIterations: DefaultMaxIterations,
		Workers:       1,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise normalizes c.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.NSamples == 0 {
		c.NSamples = 1
	}
	if c.Mu == 0 && c.Std == 0 {
		c.Mu = DefaultMu
		c.Std = DefaultStd
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}

// Validate reports ErrDegenerateInput or ErrConfiguration for parameters no walk can satisfy.
func (c *Config) Validate() error {
	if c == nil {
		return errors.Wrap(ErrDegenerateInput, "nil config")
	}
	if !positiveFinite(c.DMin) {
		return errors.Wrapf(ErrDegenerateInput, "d_min must be > 0, got %v", c.DMin)
	}
	if !positiveFinite(c.DOff) {
		return errors.Wrapf(ErrDegenerateInput, "d_off must be > 0, got %v", c.DOff)
	}
	if c.NSamples < 1 {
		return errors.Wrapf(ErrDegenerateInput, "n_samples must be >= 1, got %d", c.NSamples)
	}
	if err := c.Softness.validate(); err != nil {
		return err
	}
	if math.IsNaN(c.Mu) || math.IsInf(c.Mu, 0) {
		return errors.Wrapf(ErrConfiguration, "mu must be finite, got %v", c.Mu)
	}
	if c.Std < 0 || math.IsNaN(c.Std) || math.IsInf(c.Std, 0) {
		return errors.Wrapf(ErrConfiguration, "std must be finite and >= 0, got %v", c.Std)
	}
	return nil
}

func positiveFinite(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}
