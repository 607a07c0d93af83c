package main

import (
	"fmt"
	"os"
	"time"

	"github.com/flxai/soft-brownian-offset/bench/gen"
	"github.com/flxai/soft-brownian-offset/bench/metrics"
	"github.com/flxai/soft-brownian-offset/sbo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

// runStageA 在 moons 数据集上扫描 softness，观察距离分布与步数
func runStageA(opts *stageOpts, log *zap.Logger) error {
	const points = 48
	const noise = 0.1

	softnessList := []sbo.Softness{sbo.Hard(), sbo.MustSoft(0.25), sbo.MustSoft(0.5), sbo.MustSoft(1), sbo.MustSoft(2)}

	pc, err := sbo.NewPointCloud(gen.Moons(points, noise, uint64(opts.seed)))
	if err != nil {
		return err
	}

	var rows []metrics.StageARow
	for _, s := range softnessList {
		fmt.Printf("阶段 A: softness=%s d_min=%.2f d_off=%.2f samples=%d\n", s, opts.dMin, opts.dOff, opts.samples)

		collector, err := metrics.NewWalkCollector(nil, prometheus.Labels{"softness": s.String()})
		if err != nil {
			return err
		}
		var obs sbo.Observer = collector
		if opts.progress {
			obs = fanOut{collector, metrics.NewProgress(os.Stdout, opts.samples, 0)}
		}
		w, err := sbo.NewWalker(opts.walkerConfig(), sbo.WithSoftness(s), sbo.WithObserver(obs), sbo.WithLogger(log))
		if err != nil {
			return err
		}

		t0 := time.Now()
		out, err := w.Offset(pc)
		if err != nil {
			return err
		}
		dur := time.Since(t0)

		dists, err := pc.MinDistances(out)
		if err != nil {
			return err
		}
		samples := testutil.ToFloat64(collector.Samples)
		row := metrics.StageARow{
			Softness:  s.String(),
			Samples:   opts.samples,
			DurMs:     float64(dur.Nanoseconds()) / 1e6,
			MeanSteps: testutil.ToFloat64(collector.Steps) / max(samples, 1),
			Dist:      metrics.DistanceStatsFrom(dists, opts.dMin),
		}
		rows = append(rows, row)
		fmt.Printf("  Dur=%.1fms MeanSteps=%.2f DistMin=%.3f P50=%.3f BelowDMin=%.1f%%\n",
			row.DurMs, row.MeanSteps, row.Dist.Min, row.Dist.P50, row.Dist.BelowDMinFrac*100)
	}

	path := metrics.ReportPath(opts.reportDir, "bench_report_stage_a_", ".csv")
	if err := metrics.WriteStageACSV(rows, path); err != nil {
		return err
	}
	log.Info("stage a report written", zap.String("path", path))
	return nil
}

// fanOut 将每个样本分发给多个 Observer
type fanOut []sbo.Observer

func (f fanOut) ObserveSample(index, steps int, dist float64) {
	for _, o := range f {
		o.ObserveSample(index, steps, dist)
	}
}
