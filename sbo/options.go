package sbo

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

type options struct {
	cfg      *Config
	logger   *zap.Logger
	observer Observer
	rng      *rand.Rand
	samples  *int
}

// Option customizes a Walker. Options are applied after the Config passed to NewWalker.
type Option func(*options)

// WithSamples sets the number of OOD points to produce. Unlike a zero Config.NSamples,
// n is never defaulted, so n < 1 fails NewWalker with ErrDegenerateInput.
func WithSamples(n int) Option {
	return func(o *options) {
		o.samples = &n
	}
}

// WithSoftness sets the acceptance rule.
func WithSoftness(s Softness) Option {
	return func(o *options) {
		o.cfg.Softness = s
	}
}

// WithSeed makes every invocation reproducible by seeding its RNG with seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.cfg.RandomState = &seed
	}
}

// WithRand draws from rng instead of a per-invocation stream. It overrides WithSeed;
// successive invocations continue the same stream.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithShell sets the mean and standard deviation of the GHO radius.
func WithShell(mu, std float64) Option {
	return func(o *options) {
		o.cfg.Mu = mu
		o.cfg.Std = std
	}
}

// WithMaxIterations caps the steps of one walk; negative disables the cap.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.cfg.MaxIterations = n
	}
}

// WithWorkers walks samples on n goroutines, each sample on its own RNG substream.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.cfg.Workers = n
	}
}

// WithScale applies s to every GHO step.
func WithScale(s *Scale) Option {
	return func(o *options) {
		o.cfg.Scale = s
	}
}

// WithObserver reports every accepted sample to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
