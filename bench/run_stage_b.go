package main

import (
	"fmt"
	"math"
	"time"

	"github.com/flxai/soft-brownian-offset/bench/gen"
	"github.com/flxai/soft-brownian-offset/bench/metrics"
	"github.com/flxai/soft-brownian-offset/sbo"
	"github.com/flxai/soft-brownian-offset/simd"
	"go.uber.org/zap"
)

// runStageB 固定点数，扩展维度，观察最小距离内核与单样本耗时
func runStageB(opts *stageOpts, log *zap.Logger) error {
	const points = 2_000

	dims := []int{2, 8, 32, 128, 512}
	kernel := simd.ImplDesc()

	var rows []metrics.StageBRow
	for _, dim := range dims {
		// 单位立方体中点间距随维度增大，d_min/d_off 按 sqrt(dim) 缩放
		scale := math.Sqrt(float64(dim))
		fmt.Printf("阶段 B: dim=%d points=%d samples=%d kernel=%s\n", dim, points, opts.samples, kernel)

		metrics.GC()
		pc, err := sbo.NewPointCloud(gen.UniformCube(points, dim, uint64(opts.seed)+uint64(dim)))
		if err != nil {
			return err
		}
		cfg := opts.walkerConfig()
		cfg.DMin *= scale
		cfg.DOff *= scale
		cfg.Workers = 1

		timer := &sampleTimer{}
		w, err := sbo.NewWalker(cfg, sbo.WithObserver(timer), sbo.WithLogger(log))
		if err != nil {
			return err
		}

		t0 := time.Now()
		timer.last = t0
		if _, err := w.Offset(pc); err != nil {
			return err
		}
		dur := time.Since(t0)
		after := metrics.Take()
		stats := metrics.LatencyStatsFromDurations(timer.durations)

		rows = append(rows, metrics.StageBRow{
			Dim:         dim,
			Points:      points,
			Samples:     opts.samples,
			Kernel:      kernel,
			DurMs:       float64(dur.Nanoseconds()) / 1e6,
			PerSampleUs: float64(dur.Nanoseconds()) / 1e3 / float64(opts.samples),
			HeapAllocMB: float64(after.HeapAlloc) / 1024 / 1024,
			SampleP50Ms: stats.P50Ms,
			SampleP99Ms: stats.P99Ms,
		})
		fmt.Printf("  Dur=%.0fms PerSample=%.1fus P50=%.3fms P99=%.3fms Heap=%.1fMB\n",
			rows[len(rows)-1].DurMs, rows[len(rows)-1].PerSampleUs, stats.P50Ms, stats.P99Ms, rows[len(rows)-1].HeapAllocMB)
	}

	path := metrics.ReportPath(opts.reportDir, "bench_report_stage_b_", ".csv")
	if err := metrics.WriteStageBCSV(rows, path); err != nil {
		return err
	}
	log.Info("stage b report written", zap.String("path", path))
	return nil
}

// sampleTimer 串行模式下记录相邻两个样本完成的时间差，即单样本耗时
type sampleTimer struct {
	last      time.Time
	durations []time.Duration
}

func (t *sampleTimer) ObserveSample(index, steps int, dist float64) {
	now := time.Now()
	t.durations = append(t.durations, now.Sub(t.last))
	t.last = now
}
