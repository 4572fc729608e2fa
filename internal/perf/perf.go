// Package perf collects timing samples for the render and frame loops when
// GLIDE_PROFILE is set, and periodically logs a summary.
package perf

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/glide/internal/logging"
)

const (
	sampleWindow      = 128
	defaultIntervalMs = 5000
)

type stat struct {
	count   int64
	total   time.Duration
	max     time.Duration
	samples []time.Duration
	next    int
	full    bool
}

// Summary describes the samples recorded for one name since the last reset.
type Summary struct {
	Name  string
	Count int64
	Avg   time.Duration
	Max   time.Duration
	P95   time.Duration
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64
	lastLog     atomic.Int64

	mu       sync.Mutex
	stats    = map[string]*stat{}
	counters = map[string]int64{}
)

func init() {
	enabled.Store(envEnabled(os.Getenv("GLIDE_PROFILE")))
	logInterval.Store(int64(envInterval(os.Getenv("GLIDE_PROFILE_INTERVAL_MS"))))
}

// Enabled reports whether profiling is enabled.
func Enabled() bool { return enabled.Load() }

// SetEnabled toggles collection. The log interval is left alone.
func SetEnabled(v bool) { enabled.Store(v) }

// Time returns a function that records elapsed time when invoked.
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() { Record(name, time.Since(start)) }
}

// Record captures a duration sample for the given name.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	s, ok := stats[name]
	if !ok {
		s = &stat{samples: make([]time.Duration, sampleWindow)}
		stats[name] = s
	}
	s.count++
	s.total += d
	if d > s.max {
		s.max = d
	}
	s.samples[s.next] = d
	s.next++
	if s.next == len(s.samples) {
		s.next = 0
		s.full = true
	}
	mu.Unlock()

	maybeLog()
}

// Count increments a named counter by delta.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	counters[name] += delta
	mu.Unlock()

	maybeLog()
}

// Snapshot returns the current summaries and counters, sorted by name, and
// resets them.
func Snapshot() ([]Summary, map[string]int64) {
	mu.Lock()
	defer mu.Unlock()

	out := make([]Summary, 0, len(stats))
	for name, s := range stats {
		if s.count == 0 {
			continue
		}
		n := s.next
		if s.full {
			n = len(s.samples)
		}
		out = append(out, Summary{
			Name:  name,
			Count: s.count,
			Avg:   s.total / time.Duration(s.count),
			Max:   s.max,
			P95:   p95(s.samples[:n]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	counts := counters
	stats = map[string]*stat{}
	counters = map[string]int64{}
	return out, counts
}

// Flush logs a summary immediately.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	logSummary("PERF "+strings.TrimSpace(reason), false)
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	logSummary("PERF", last == 0)
}

func logSummary(prefix string, first bool) {
	if first {
		// Start the window without emitting a partial summary.
		return
	}
	summaries, counts := Snapshot()
	for _, s := range summaries {
		logging.Info("%s %s count=%d avg=%s p95=%s max=%s", prefix, s.Name, s.Count, s.Avg, s.P95, s.Max)
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logging.Info("%s %s count=%d", prefix, name, counts[name])
	}
}

func p95(samples []time.Duration) time.Duration {
	n := len(samples)
	if n == 0 {
		return 0
	}
	window := make([]time.Duration, n)
	copy(window, samples)
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	pos := int(math.Ceil(0.95*float64(n))) - 1
	return window[max(0, min(pos, n-1))]
}

func envEnabled(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func envInterval(raw string) time.Duration {
	ms := defaultIntervalMs
	if val, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && val > 0 {
		ms = val
	}
	return time.Duration(ms) * time.Millisecond
}
