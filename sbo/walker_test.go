package sbo

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestOffsetShape(t *testing.T) {
	x := randomCloud(1, 30, 3)
	out, err := SoftBrownianOffset(x, 0.3, 0.2, WithSamples(17), WithSeed(1))
	require.NoError(t, err)
	r, c := out.Dims()
	assert.Equal(t, 17, r)
	assert.Equal(t, 3, c)
}

func TestOffsetDefaultsToOneSample(t *testing.T) {
	out, err := SoftBrownianOffset(unitSquare(), 0.3, 0.2)
	require.NoError(t, err)
	r, c := out.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 2, c)
}

func TestOffsetHardModeExceedsDMin(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		x := randomCloud(uint64(seed)+100, 40, 2)
		const dMin = 0.25
		out, err := SoftBrownianOffset(x, dMin, 0.1, WithSamples(25), WithSeed(seed))
		require.NoError(t, err)
		for i := 0; i < 25; i++ {
			assert.Greater(t, bruteMinDistance(x, out.RawRowView(i)), dMin, "seed=%d row=%d", seed, i)
		}
	}
}

func TestOffsetUnitSquare(t *testing.T) {
	x := unitSquare()
	run := func() *mat.Dense {
		out, err := SoftBrownianOffset(x, 0.3, 0.2, WithSamples(5), WithSoftness(Hard()), WithSeed(42))
		require.NoError(t, err)
		return out
	}
	a, b := run(), run()
	require.True(t, mat.Equal(a, b), "same seed must reproduce the same points")
	r, _ := a.Dims()
	require.Equal(t, 5, r)
	for i := 0; i < r; i++ {
		assert.Greater(t, bruteMinDistance(x, a.RawRowView(i)), 0.3, "row %d", i)
	}
	// The input is never mutated.
	assert.True(t, mat.Equal(unitSquare(), x))
}

func TestOffsetDeterministic(t *testing.T) {
	x := randomCloud(7, 48, 2)
	pc, err := NewPointCloud(x)
	require.NoError(t, err)
	w, err := NewWalker(&Config{DMin: 0.3, DOff: 0.2, NSamples: 64, Softness: MustSoft(1)}, WithSeed(3))
	require.NoError(t, err)

	a, err := w.Offset(pc)
	require.NoError(t, err)
	b, err := w.Offset(pc)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a, b))

	other, err := NewWalker(&Config{DMin: 0.3, DOff: 0.2, NSamples: 64, Softness: MustSoft(1)}, WithSeed(4))
	require.NoError(t, err)
	c, err := other.Offset(pc)
	require.NoError(t, err)
	assert.False(t, mat.Equal(a, c))
}

func TestOffsetWithRandContinuesStream(t *testing.T) {
	pc, err := NewPointCloud(unitSquare())
	require.NoError(t, err)
	w, err := NewWalker(&Config{DMin: 0.3, DOff: 0.2, NSamples: 4}, WithRand(newSeededRand(8)), WithSeed(1))
	require.NoError(t, err)
	a, err := w.Offset(pc)
	require.NoError(t, err)
	b, err := w.Offset(pc)
	require.NoError(t, err)
	assert.False(t, mat.Equal(a, b))
}

func TestOffsetSoftMode(t *testing.T) {
	x := randomCloud(2, 48, 2)
	pc, err := NewPointCloud(x)
	require.NoError(t, err)
	out, err := SoftBrownianOffset(x, 0.3, 0.2, WithSamples(200), WithSoftness(MustSoft(1)), WithSeed(9))
	require.NoError(t, err)
	d, err := pc.MinDistances(out)
	require.NoError(t, err)
	for i, v := range d {
		assert.Greater(t, v, 0.0, "row %d", i)
	}
}

func TestOffsetObserver(t *testing.T) {
	const n = 30
	var calls, minSteps int64 = 0, 1 << 30
	seen := make([]bool, n)
	obs := ObserverFunc(func(index, steps int, dist float64) {
		calls++
		seen[index] = true
		if int64(steps) < minSteps {
			minSteps = int64(steps)
		}
		assert.Greater(t, dist, 0.3)
	})
	_, err := SoftBrownianOffset(randomCloud(5, 20, 3), 0.3, 0.2, WithSamples(n), WithSeed(5), WithObserver(obs))
	require.NoError(t, err)
	assert.Equal(t, int64(n), calls)
	assert.GreaterOrEqual(t, minSteps, int64(1), "every sample takes at least one step")
	for i, ok := range seen {
		assert.True(t, ok, "sample %d not observed", i)
	}
}

func TestOffsetConvergenceError(t *testing.T) {
	_, err := SoftBrownianOffset(unitSquare(), 1000, 0.001, WithSamples(3), WithSeed(1), WithMaxIterations(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConvergence), "%v", err)
}

func TestOffsetCancelled(t *testing.T) {
	pc, err := NewPointCloud(unitSquare())
	require.NoError(t, err)
	for _, workers := range []int{1, 3} {
		w, err := NewWalker(&Config{DMin: 1e9, DOff: 1e-6, NSamples: 2, MaxIterations: -1, Workers: workers}, WithSeed(1))
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = w.OffsetContext(ctx, pc)
		require.Error(t, err, "workers=%d", workers)
		assert.True(t, errors.Is(err, context.Canceled), "workers=%d: %v", workers, err)
	}
}

func TestNewWalkerInvalid(t *testing.T) {
	_, err := NewWalker(nil)
	assert.True(t, errors.Is(err, ErrDegenerateInput))
	_, err = NewWalker(&Config{DMin: 0.3, DOff: 0})
	assert.True(t, errors.Is(err, ErrDegenerateInput))
	_, err = NewWalker(&Config{DMin: 0.3, DOff: 0.2}, WithSamples(-1))
	assert.True(t, errors.Is(err, ErrDegenerateInput))
	// An explicit zero is not the unset default.
	_, err = NewWalker(&Config{DMin: 0.3, DOff: 0.2}, WithSamples(0))
	assert.True(t, errors.Is(err, ErrDegenerateInput))
	_, err = SoftBrownianOffset(unitSquare(), 0.3, 0.2, WithSamples(0), WithSeed(1))
	assert.True(t, errors.Is(err, ErrDegenerateInput))
	_, err = NewWalker(&Config{DMin: 0.3, DOff: 0.2}, WithShell(4, -1))
	assert.True(t, errors.Is(err, ErrConfiguration))
	_, err = SoftBrownianOffset(unitSquare(), 0.3, 0.2, WithSoftness(Softness{steepness: -2}))
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestNewWalkerCopiesConfig(t *testing.T) {
	cfg := &Config{DMin: 0.3, DOff: 0.2}
	w, err := NewWalker(cfg, WithSamples(9))
	require.NoError(t, err)
	cfg.DMin = -1
	assert.Equal(t, 0.3, w.Config().DMin)
	assert.Equal(t, 9, w.Config().NSamples)
	assert.Equal(t, 0, cfg.NSamples)
}

func TestOffsetDegenerateInput(t *testing.T) {
	w, err := NewWalker(&Config{DMin: 0.3, DOff: 0.2})
	require.NoError(t, err)
	_, err = w.Offset(nil)
	assert.True(t, errors.Is(err, ErrDegenerateInput))
	_, err = SoftBrownianOffset(nil, 0.3, 0.2)
	assert.True(t, errors.Is(err, ErrDegenerateInput))

	scale, err := NewScaleFromMoments([]float64{0, 0, 0}, []float64{1, 1, 1})
	require.NoError(t, err)
	_, err = SoftBrownianOffset(unitSquare(), 0.3, 0.2, WithScale(scale))
	assert.True(t, errors.Is(err, ErrDegenerateInput))
}

func TestOffsetWithScale(t *testing.T) {
	x := randomCloud(3, 40, 2)
	scale, err := NewScale(x)
	require.NoError(t, err)
	out, err := SoftBrownianOffset(x, 0.2, 0.1, WithSamples(20), WithScale(scale), WithSeed(3))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		assert.Greater(t, bruteMinDistance(x, out.RawRowView(i)), 0.2)
	}
}

func TestOffsetLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := SoftBrownianOffset(unitSquare(), 0.3, 0.2, WithSamples(2), WithSeed(1), WithLogger(zap.New(core)))
	require.NoError(t, err)
	done := logs.FilterMessage("soft brownian offset done").All()
	require.Len(t, done, 1)
	assert.Equal(t, int64(2), done[0].ContextMap()["samples"])

	_, err = SoftBrownianOffset(unitSquare(), 1000, 0.001, WithSeed(1), WithMaxIterations(1), WithLogger(zap.New(core)))
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("soft brownian offset failed").Len())
}

func TestOffsetParallelDeterministic(t *testing.T) {
	x := randomCloud(11, 48, 2)
	pc, err := NewPointCloud(x)
	require.NoError(t, err)
	run := func(workers int) *mat.Dense {
		var calls atomic.Int64
		w, err := NewWalker(&Config{DMin: 0.3, DOff: 0.2, NSamples: 50},
			WithWorkers(workers), WithSeed(21),
			WithObserver(ObserverFunc(func(int, int, float64) { calls.Add(1) })))
		require.NoError(t, err)
		out, err := w.Offset(pc)
		require.NoError(t, err)
		assert.Equal(t, int64(50), calls.Load())
		return out
	}
	a, b, c := run(2), run(4), run(2)
	assert.True(t, mat.Equal(a, b), "output must not depend on worker count")
	assert.True(t, mat.Equal(a, c))
	for i := 0; i < 50; i++ {
		assert.Greater(t, bruteMinDistance(x, a.RawRowView(i)), 0.3, "row %d", i)
	}
}

func TestOffsetParallelConvergenceError(t *testing.T) {
	_, err := SoftBrownianOffset(unitSquare(), 1000, 0.001, WithSamples(8), WithWorkers(3), WithSeed(1), WithMaxIterations(5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConvergence), "%v", err)
}

// replayWalk retraces one serial walk on rng: seed pick, then offsets, with an acceptance
// draw only once the point has left the cloud. It returns the point and the draws made.
func replayWalk(pc *PointCloud, cfg Config, rng *rand.Rand) ([]float64, int) {
	point := make([]float64, pc.Dim())
	step := make([]float64, pc.Dim())
	sampler := NewDirectionSampler(rng, cfg.Mu, cfg.Std, nil)
	pc.Row(rng.IntN(pc.Len()), point)
	draws := 0
	for {
		if dist := pc.MinDistance(point); dist > 0 {
			if cfg.Softness.IsHard() {
				if dist > cfg.DMin {
					return point, draws
				}
			} else {
				draws++
				if rng.Float64() < cfg.Softness.AcceptProbability(dist, cfg.DMin) {
					return point, draws
				}
			}
		}
		sampler.SampleInto(step)
		floats.AddScaled(point, cfg.DOff, step)
	}
}

func TestOffsetAcceptanceDraws(t *testing.T) {
	pc, err := NewPointCloud(unitSquare())
	require.NoError(t, err)
	for _, s := range []Softness{Hard(), MustSoft(1), MustSoft(0.2)} {
		for seed := uint64(1); seed <= 10; seed++ {
			var steps int
			w, err := NewWalker(&Config{DMin: 0.5, DOff: 0.05, Softness: s},
				WithRand(newSeededRand(seed)),
				WithObserver(ObserverFunc(func(_, n int, _ float64) { steps = n })))
			require.NoError(t, err)
			rng := w.rng
			out, err := w.Offset(pc)
			require.NoError(t, err)

			replay := newSeededRand(seed)
			want, draws := replayWalk(pc, w.Config(), replay)
			assert.Equal(t, want, out.RawRowView(0), "%s seed=%d", s, seed)
			if s.IsHard() {
				assert.Zero(t, draws)
			} else {
				// The on-cloud seed is never tested, every later position is tested once.
				assert.Equal(t, steps, draws, "%s seed=%d", s, seed)
			}
			// Both streams are at the same position afterwards.
			assert.Equal(t, replay.Uint64(), rng.Uint64(), "%s seed=%d", s, seed)
		}
	}
}
