package game

import "time"

// Scheduler fires at a fixed interval of simulated time. The host advances
// it alongside Tick, so saves never need a background timer.
type Scheduler struct {
	interval float64
	elapsed  float64
}

// NewScheduler creates a scheduler. A non-positive interval never fires.
func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{interval: interval.Seconds()}
}

// Advance adds dt seconds and reports whether the interval elapsed
func (s *Scheduler) Advance(dt float64) bool {
	if s.interval <= 0 || !(dt > 0) {
		return false
	}
	s.elapsed += dt
	if s.elapsed < s.interval {
		return false
	}
	s.elapsed -= s.interval
	if s.elapsed >= s.interval {
		s.elapsed = 0
	}
	return true
}

// Reset restarts the interval
func (s *Scheduler) Reset() {
	s.elapsed = 0
}
