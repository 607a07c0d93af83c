package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// LatencyStats 延迟统计
type LatencyStats struct {
	P50Ms float64
	P95Ms float64
	P99Ms float64
	AvgMs float64
	N     int
}

// DistanceStats OOD 样本到 ID 点云最小距离的分布（对应 demo 中的最小距离直方图）
type DistanceStats struct {
	Min           float64
	P05           float64
	P50           float64
	P95           float64
	Max           float64
	Mean          float64
	BelowDMinFrac float64 // 距离不超过 d_min 的样本比例，硬阈值下应为 0
}

// StageARow 阶段 A（softness 扫描）单行数据
type StageARow struct {
	Softness  string
	Samples   int
	DurMs     float64
	MeanSteps float64
	Dist      DistanceStats
}

// StageBRow 阶段 B（维度扩展）单行数据
type StageBRow struct {
	Dim         int
	Points      int
	Samples     int
	Kernel      string
	DurMs       float64
	PerSampleUs float64
	HeapAllocMB float64
	SampleP50Ms float64
	SampleP99Ms float64
}

// StageCRow 阶段 C（并行 worker 扩展）单行数据
type StageCRow struct {
	Workers       int
	Samples       int
	DurMs         float64
	SamplesPerSec float64
	Speedup       float64
	StepsTotal    float64
	RSSMB         float64
}

// DistanceStatsFrom 计算最小距离分布，dists 不会被修改
func DistanceStatsFrom(dists []float64, dMin float64) DistanceStats {
	if len(dists) == 0 {
		return DistanceStats{}
	}
	sorted := append([]float64(nil), dists...)
	sort.Float64s(sorted)
	below := 0
	for _, d := range sorted {
		if d <= dMin {
			below++
		}
	}
	return DistanceStats{
		Min:           sorted[0],
		P05:           stat.Quantile(0.05, stat.Empirical, sorted, nil),
		P50:           stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:           stat.Quantile(0.95, stat.Empirical, sorted, nil),
		Max:           sorted[len(sorted)-1],
		Mean:          stat.Mean(sorted, nil),
		BelowDMinFrac: float64(below) / float64(len(sorted)),
	}
}

// Percentile 计算切片中第 p 百分位（0-100），输入需已排序
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}

// LatencyStatsFromDurations 从耗时列表计算 P50/P95/P99
func LatencyStatsFromDurations(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}
	ms := make([]float64, len(durations))
	for i, d := range durations {
		ms[i] = float64(d.Nanoseconds()) / 1e6
	}
	sort.Float64s(ms)
	return LatencyStats{
		P50Ms: Percentile(ms, 50),
		P95Ms: Percentile(ms, 95),
		P99Ms: Percentile(ms, 99),
		AvgMs: stat.Mean(ms, nil),
		N:     len(ms),
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write(header)
	for _, r := range rows {
		w.Write(r)
	}
	w.Flush()
	return w.Error()
}

// WriteStageACSV 写入阶段 A 报告
func WriteStageACSV(rows []StageARow, path string) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Softness,
			fmt.Sprintf("%d", r.Samples),
			fmt.Sprintf("%.2f", r.DurMs),
			fmt.Sprintf("%.2f", r.MeanSteps),
			fmt.Sprintf("%.4f", r.Dist.Min),
			fmt.Sprintf("%.4f", r.Dist.P05),
			fmt.Sprintf("%.4f", r.Dist.P50),
			fmt.Sprintf("%.4f", r.Dist.P95),
			fmt.Sprintf("%.4f", r.Dist.Max),
			fmt.Sprintf("%.4f", r.Dist.BelowDMinFrac),
		})
	}
	return writeCSV(path, []string{"Softness", "Samples", "DurMs", "MeanSteps", "DistMin", "DistP05", "DistP50", "DistP95", "DistMax", "BelowDMinFrac"}, out)
}

// WriteStageBCSV 写入阶段 B 报告
func WriteStageBCSV(rows []StageBRow, path string) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			fmt.Sprintf("%d", r.Dim),
			fmt.Sprintf("%d", r.Points),
			fmt.Sprintf("%d", r.Samples),
			r.Kernel,
			fmt.Sprintf("%.2f", r.DurMs),
			fmt.Sprintf("%.2f", r.PerSampleUs),
			fmt.Sprintf("%.2f", r.HeapAllocMB),
			fmt.Sprintf("%.3f", r.SampleP50Ms),
			fmt.Sprintf("%.3f", r.SampleP99Ms),
		})
	}
	return writeCSV(path, []string{"Dim", "Points", "Samples", "Kernel", "DurMs", "PerSampleUs", "HeapAllocMB", "SampleP50Ms", "SampleP99Ms"}, out)
}

// WriteStageCCSV 写入阶段 C 报告
func WriteStageCCSV(rows []StageCRow, path string) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			fmt.Sprintf("%d", r.Workers),
			fmt.Sprintf("%d", r.Samples),
			fmt.Sprintf("%.2f", r.DurMs),
			fmt.Sprintf("%.2f", r.SamplesPerSec),
			fmt.Sprintf("%.2f", r.Speedup),
			fmt.Sprintf("%.0f", r.StepsTotal),
			fmt.Sprintf("%.2f", r.RSSMB),
		})
	}
	return writeCSV(path, []string{"Workers", "Samples", "DurMs", "SamplesPerSec", "Speedup", "StepsTotal", "RSSMB"}, out)
}

// ReportDir 报告输出目录
const ReportDir = "report"

// ReportPath 生成 dir 目录下带日期的报告路径，dir 为空时使用 ReportDir
func ReportPath(dir, prefix, ext string) string {
	if dir == "" {
		dir = ReportDir
	}
	return filepath.Join(dir, prefix+time.Now().Format("20060102")+ext)
}

// WriteJSON 写入 JSON 报告（通用）
func WriteJSON(v interface{}, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
