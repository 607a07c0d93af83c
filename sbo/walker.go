package sbo

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/flxai/soft-brownian-offset/simd"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ctxCheckEvery is how many steps a walk takes between cancellation checks.
const ctxCheckEvery = 1024

// Walker runs Soft Brownian Offset walks around a PointCloud.
type Walker struct {
	cfg      Config
	logger   *zap.Logger
	observer Observer
	rng      *rand.Rand
}

// NewWalker validates cfg (nil means DefaultConfig) with opts applied and returns a Walker.
// cfg is copied; later changes to it have no effect.
func NewWalker(cfg *Config, opts ...Option) (*Walker, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	} else {
		c = *DefaultConfig()
	}
	o := &options{cfg: &c}
	for _, opt := range opts {
		opt(o)
	}
	c.OrDefault()
	if o.samples != nil {
		c.NSamples = *o.samples
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	w := &Walker{cfg: c, logger: o.logger, observer: o.observer, rng: o.rng}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	if w.observer == nil {
		w.observer = nopObserver{}
	}
	return w, nil
}

// Config returns a copy of the effective configuration.
func (w *Walker) Config() Config {
	return w.cfg
}

// Offset returns Config.NSamples OOD points around pc, one per row, in sample order.
func (w *Walker) Offset(pc *PointCloud) (*mat.Dense, error) {
	return w.OffsetContext(context.Background(), pc)
}

// OffsetContext is Offset with cancellation. Either every row is produced or an error is returned.
func (w *Walker) OffsetContext(ctx context.Context, pc *PointCloud) (*mat.Dense, error) {
	if pc == nil || pc.Len() == 0 {
		return nil, errors.Wrap(ErrDegenerateInput, "empty point cloud")
	}
	if w.cfg.Scale != nil && w.cfg.Scale.Dim() != pc.Dim() {
		return nil, errors.Wrapf(ErrDegenerateInput, "scale has dimension %d, point cloud has %d", w.cfg.Scale.Dim(), pc.Dim())
	}
	start := time.Now()
	var (
		out *mat.Dense
		err error
	)
	if w.cfg.Workers > 1 {
		out, err = w.offsetParallel(ctx, pc)
	} else {
		out, err = w.offsetSerial(ctx, pc)
	}
	if err != nil {
		w.logger.Warn("soft brownian offset failed",
			zap.Int("samples", w.cfg.NSamples),
			zap.Stringer("softness", w.cfg.Softness),
			zap.Error(err))
		return nil, err
	}
	w.logger.Debug("soft brownian offset done",
		zap.Int("samples", w.cfg.NSamples),
		zap.Int("points", pc.Len()),
		zap.Int("dim", pc.Dim()),
		zap.Stringer("softness", w.cfg.Softness),
		zap.Int("workers", w.cfg.Workers),
		zap.String("kernel", simd.ImplDesc()),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

// invocationRand returns the stream for one invocation: the injected RNG, a stream seeded
// from RandomState, or one seeded from entropy.
func (w *Walker) invocationRand() *rand.Rand {
	if w.rng != nil {
		return w.rng
	}
	if w.cfg.RandomState != nil {
		return newSeededRand(uint64(*w.cfg.RandomState))
	}
	return newEntropyRand()
}

func (w *Walker) offsetSerial(ctx context.Context, pc *PointCloud) (*mat.Dense, error) {
	rng := w.invocationRand()
	sampler := NewDirectionSampler(rng, w.cfg.Mu, w.cfg.Std, w.cfg.Scale)
	out := mat.NewDense(w.cfg.NSamples, pc.Dim(), nil)
	step := make([]float64, pc.Dim())
	for i := 0; i < w.cfg.NSamples; i++ {
		if err := w.walk(ctx, i, pc, rng, sampler, out.RawRowView(i), step); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// walk moves a copy of a random cloud point by GHO steps until it is accepted, writing the
// result into point. step is scratch space of the same length.
func (w *Walker) walk(ctx context.Context, index int, pc *PointCloud, rng *rand.Rand, sampler *DirectionSampler, point, step []float64) error {
	pc.Row(rng.IntN(pc.Len()), point)
	for steps := 0; ; steps++ {
		dist := pc.MinDistance(point)
		// A point still on the cloud (dist == 0) always takes another step.
		if dist > 0 && w.cfg.Softness.accept(dist, w.cfg.DMin, rng) {
			w.observer.ObserveSample(index, steps, dist)
			return nil
		}
		if w.cfg.MaxIterations > 0 && steps >= w.cfg.MaxIterations {
			return errors.Wrapf(ErrConvergence, "sample %d: not accepted after %d steps (distance %g, d_min %g)",
				index, steps, dist, w.cfg.DMin)
		}
		if steps%ctxCheckEvery == ctxCheckEvery-1 {
			if err := ctx.Err(); err != nil {
				return errors.Wrapf(err, "sample %d", index)
			}
		}
		sampler.SampleInto(step)
		floats.AddScaled(point, w.cfg.DOff, step)
	}
}

// SoftBrownianOffset generates OOD points around the rows of x. Without options it produces
// one sample in hard mode from an entropy-seeded stream.
func SoftBrownianOffset(x mat.Matrix, dMin, dOff float64, opts ...Option) (*mat.Dense, error) {
	w, err := NewWalker(&Config{DMin: dMin, DOff: dOff}, opts...)
	if err != nil {
		return nil, err
	}
	pc, err := NewPointCloud(x)
	if err != nil {
		return nil, err
	}
	return w.Offset(pc)
}
