// Package autoadvance rotates a carousel on a fixed interval.
package autoadvance

import "time"

// DefaultInterval is the time between automatic advances.
const DefaultInterval = 5 * time.Second

// Scheduler runs fn every d until the returned cancel func is called.
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

// Handle is a live periodic task. Only the owning Timer hands them out.
type Handle struct {
	cancel func()
	live   bool
}

// Live reports whether the task will still fire.
func (h *Handle) Live() bool { return h != nil && h.live }

// Cancel stops the task. It reports whether the task was live.
func (h *Handle) Cancel() bool {
	if h == nil || !h.live {
		return false
	}
	h.live = false
	if h.cancel != nil {
		h.cancel()
	}
	return true
}

// Timer owns at most one live Handle. Starting a new task always cancels the
// previous one first, so ticks never accumulate.
type Timer struct {
	sched    Scheduler
	interval time.Duration
	current  *Handle
}

// New creates a stopped timer.
func New(sched Scheduler, interval time.Duration) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Timer{sched: sched, interval: interval}
}

// Interval returns the tick period.
func (t *Timer) Interval() time.Duration { return t.interval }

// Start cancels any live task and schedules onTick every interval.
func (t *Timer) Start(onTick func()) *Handle {
	t.Cancel()
	h := &Handle{live: true}
	h.cancel = t.sched.Every(t.interval, func() {
		if h.live {
			onTick()
		}
	})
	t.current = h
	return h
}

// Cancel stops the live task, if any. It reports whether one was live.
func (t *Timer) Cancel() bool {
	h := t.current
	t.current = nil
	return h.Cancel()
}

// Running reports whether a task is live.
func (t *Timer) Running() bool { return t.current.Live() }

// Step computes one automatic advance. Given the current index i of n items
// (n > 0), the current scroll offset and the viewport width it returns the
// next index and the scroll target. The last item wraps to the first.
func Step(i, n int, offset, width float64) (next int, target float64) {
	if n <= 0 || i >= n-1 {
		return 0, 0
	}
	return i + 1, offset + width
}
