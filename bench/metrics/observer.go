package metrics

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// WalkCollector 以 Prometheus 指标记录每个被接受的 OOD 样本，实现 sbo.Observer，可并发调用
type WalkCollector struct {
	Samples  prometheus.Counter
	Steps    prometheus.Counter
	StepHist prometheus.Histogram
	DistHist prometheus.Histogram
}

// NewWalkCollector 创建并注册指标；reg 为 nil 时不注册
func NewWalkCollector(reg prometheus.Registerer, constLabels prometheus.Labels) (*WalkCollector, error) {
	c := &WalkCollector{
		Samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "sbo",
			Name:        "samples_total",
			Help:        "Accepted OOD samples.",
			ConstLabels: constLabels,
		}),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "sbo",
			Name:        "walk_steps_total",
			Help:        "Offset steps taken by accepted walks.",
			ConstLabels: constLabels,
		}),
		StepHist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "sbo",
			Name:        "walk_steps",
			Help:        "Offset steps per accepted walk.",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 12),
		}),
		DistHist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "sbo",
			Name:        "accepted_distance",
			Help:        "Distance from each accepted sample to the ID cloud.",
			ConstLabels: constLabels,
			Buckets:     prometheus.LinearBuckets(0.05, 0.05, 20),
		}),
	}
	if reg != nil {
		for _, m := range []prometheus.Collector{c.Samples, c.Steps, c.StepHist, c.DistHist} {
			if err := reg.Register(m); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// ObserveSample 实现 sbo.Observer
func (c *WalkCollector) ObserveSample(index, steps int, dist float64) {
	c.Samples.Inc()
	c.Steps.Add(float64(steps))
	c.StepHist.Observe(float64(steps))
	c.DistHist.Observe(dist)
}

// Progress 每完成 every 个样本向 w 输出一行进度，实现 sbo.Observer
type Progress struct {
	w     io.Writer
	total int64
	every int64
	done  atomic.Int64
	mu    sync.Mutex
}

// NewProgress 创建进度输出器；every <= 0 时按总数的 10% 输出
func NewProgress(w io.Writer, total, every int) *Progress {
	if every <= 0 {
		every = max(total/10, 1)
	}
	return &Progress{w: w, total: int64(total), every: int64(every)}
}

// ObserveSample 实现 sbo.Observer
func (p *Progress) ObserveSample(index, steps int, dist float64) {
	n := p.done.Add(1)
	if n%p.every != 0 && n != p.total {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "  进度 %d/%d\n", n, p.total)
}

// Done 返回已完成样本数
func (p *Progress) Done() int64 {
	return p.done.Load()
}
