package sbo

// Observer receives one call per accepted sample. steps is the number of offsets applied
// (always >= 1) and dist the final distance to the cloud.
// With Config.Workers > 1 calls arrive concurrently and out of index order.
type Observer interface {
	ObserveSample(index, steps int, dist float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(index, steps int, dist float64)

// ObserveSample calls f.
func (f ObserverFunc) ObserveSample(index, steps int, dist float64) {
	f(index, steps, dist)
}

type nopObserver struct{}

func (nopObserver) ObserveSample(int, int, float64) {}
