package sbo

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// offsetParallel walks samples on Config.Workers goroutines. The master stream draws one
// substream seed per sample up front, so rows do not depend on scheduling or worker count.
func (w *Walker) offsetParallel(ctx context.Context, pc *PointCloud) (*mat.Dense, error) {
	n := w.cfg.NSamples
	master := w.invocationRand()
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}
	out := mat.NewDense(n, pc.Dim(), nil)

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int, w.cfg.Workers)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for k := 0; k < w.cfg.Workers; k++ {
		g.Go(func() error {
			step := make([]float64, pc.Dim())
			for i := range jobs {
				rng := newSeededRand(seeds[i])
				sampler := NewDirectionSampler(rng, w.cfg.Mu, w.cfg.Std, w.cfg.Scale)
				// Rows are disjoint, so workers write into out without locking.
				if err := w.walk(ctx, i, pc, rng, sampler, out.RawRowView(i), step); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
