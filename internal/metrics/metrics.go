package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide counters, exposed on /health for quick inspection.
var (
	CartPersistFailures Counter
	APIRequests         Counter
	APIFailures         Counter
	Uploads             Counter
)

// Snapshot returns the current counter values keyed by name.
func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"cart_persist_failures": CartPersistFailures.Load(),
		"api_requests":          APIRequests.Load(),
		"api_failures":          APIFailures.Load(),
		"uploads":               Uploads.Load(),
	}
}
