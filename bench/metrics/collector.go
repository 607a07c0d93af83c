// Package metrics 提供运行时指标采集与压测报告
package metrics

import (
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Snapshot 运行时指标快照
type Snapshot struct {
	TS           time.Time
	HeapAlloc    uint64
	HeapSys      uint64
	NumGC        uint32
	NumGoroutine int
	RSS          uint64 // 进程常驻内存，取不到时为 0
}

// Take 采集当前运行时指标
func Take() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Snapshot{
		TS:           time.Now(),
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		NumGC:        m.NumGC,
		NumGoroutine: runtime.NumGoroutine(),
		RSS:          processRSS(),
	}
}

func processRSS() uint64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	info, err := p.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return info.RSS
}

// GC 触发 GC 并释放回 OS
func GC() {
	runtime.GC()
	debug.FreeOSMemory()
}

// Diff 计算两次快照间的分配速率（bytes/s）和 GC 次数差
func Diff(before, after Snapshot) (allocRateBps float64, gcDelta uint32) {
	elapsed := after.TS.Sub(before.TS).Seconds()
	if elapsed <= 0 {
		return 0, 0
	}
	allocDelta := int64(after.HeapAlloc) - int64(before.HeapAlloc)
	if allocDelta < 0 {
		allocDelta = 0
	}
	allocRateBps = float64(allocDelta) / elapsed
	if after.NumGC >= before.NumGC {
		gcDelta = after.NumGC - before.NumGC
	}
	return allocRateBps, gcDelta
}
