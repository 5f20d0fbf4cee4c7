package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Timer measures the duration of an operation. Time units are milliseconds.
type Timer struct {
	// startTime is the time the timer was started
	startTime time.Time
}

// StartTimer starts a Timer. Calling .Finish() on the returned timer records the time
// elapsed in milliseconds.
func StartTimer() Timer {
	return Timer{
		startTime: time.Now(),
	}
}

// Finish writes the duration between time.Now() and .startTime, in milliseconds, to
// observer.
func (t Timer) Finish(observer prometheus.Observer) {
	duration := time.Since(t.startTime)
	ms := float64(duration / time.Millisecond)
	observer.Observe(ms)
}
