package main

import (
	"fmt"
	"time"

	"github.com/flxai/soft-brownian-offset/bench/gen"
	"github.com/flxai/soft-brownian-offset/bench/metrics"
	"github.com/flxai/soft-brownian-offset/sbo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

// stageCReport 阶段 C 的 JSON 报告
type stageCReport struct {
	Points  int                 `json:"points"`
	Dim     int                 `json:"dim"`
	Samples int                 `json:"samples"`
	Rows    []metrics.StageCRow `json:"rows"`
}

// runStageC 固定数据集，扩展 worker 数，观察吞吐与加速比
func runStageC(opts *stageOpts, log *zap.Logger) error {
	const points = 5_000
	const dim = 16

	workersList := []int{1, 2, 4, 8}
	samples := opts.samples * 4

	pc, err := sbo.NewPointCloud(gen.UniformCube(points, dim, uint64(opts.seed)))
	if err != nil {
		return err
	}

	var rows []metrics.StageCRow
	var baseline float64
	for _, workers := range workersList {
		fmt.Printf("阶段 C: workers=%d points=%d dim=%d samples=%d\n", workers, points, dim, samples)

		reg := prometheus.NewRegistry()
		collector, err := metrics.NewWalkCollector(reg, prometheus.Labels{"workers": fmt.Sprint(workers)})
		if err != nil {
			return err
		}
		cfg := opts.walkerConfig()
		cfg.NSamples = samples
		cfg.Workers = workers
		cfg.DMin *= 2
		cfg.DOff *= 2
		w, err := sbo.NewWalker(cfg, sbo.WithObserver(collector), sbo.WithLogger(log))
		if err != nil {
			return err
		}

		metrics.GC()
		start := time.Now()
		if _, err := w.Offset(pc); err != nil {
			return err
		}
		dur := time.Since(start)
		snap := metrics.Take()

		sps := float64(samples) / dur.Seconds()
		if workers == 1 {
			baseline = sps
		}
		speedup := 1.0
		if baseline > 0 {
			speedup = sps / baseline
		}
		rows = append(rows, metrics.StageCRow{
			Workers:       workers,
			Samples:       samples,
			DurMs:         float64(dur.Nanoseconds()) / 1e6,
			SamplesPerSec: sps,
			Speedup:       speedup,
			StepsTotal:    testutil.ToFloat64(collector.Steps),
			RSSMB:         float64(snap.RSS) / 1024 / 1024,
		})
		fmt.Printf("  Samples/s=%.0f Speedup=%.2fx Steps=%.0f RSS=%.1fMB\n",
			sps, speedup, rows[len(rows)-1].StepsTotal, rows[len(rows)-1].RSSMB)
	}

	path := metrics.ReportPath(opts.reportDir, "bench_report_stage_c_", ".csv")
	if err := metrics.WriteStageCCSV(rows, path); err != nil {
		return err
	}
	jsonPath := metrics.ReportPath(opts.reportDir, "bench_report_stage_c_", ".json")
	if err := metrics.WriteJSON(stageCReport{Points: points, Dim: dim, Samples: samples, Rows: rows}, jsonPath); err != nil {
		return err
	}
	log.Info("stage c report written", zap.String("csv", path), zap.String("json", jsonPath))
	return nil
}
