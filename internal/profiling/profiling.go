package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Profiler accumulates per-tick stage timings. The zero value is not usable;
// create one with New. A nil *Profiler records nothing.
type Profiler struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	counts map[string]int
}

// New creates an empty profiler.
func New() *Profiler {
	return &Profiler{
		totals: make(map[string]time.Duration),
		counts: make(map[string]int),
	}
}

func noop() {}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer p.Track("streaming.Evict")()
func (p *Profiler) Track(name string) func() {
	if p == nil {
		return noop
	}
	start := time.Now()
	return func() {
		d := time.Since(start)
		p.mu.Lock()
		p.totals[name] += d
		p.counts[name]++
		p.mu.Unlock()
	}
}

// Reset clears the current totals. Call at the start of each tick.
func (p *Profiler) Reset() {
	if p == nil {
		return
	}
	p.mu.Lock()
	clear(p.totals)
	clear(p.counts)
	p.mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func (p *Profiler) Snapshot() map[string]time.Duration {
	out := make(map[string]time.Duration)
	if p == nil {
		return out
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, v := range p.totals {
		out[k] = v
	}
	return out
}

// Count returns how many times name was tracked since the last Reset.
func (p *Profiler) Count(name string) int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[name]
}

// TopN formats the n slowest stages of the current tick.
// Example: "streaming.Generate:4.2ms, game.MeshSync:2.1ms"
func (p *Profiler) TopN(n int) string {
	ss := p.Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur != list[j].dur {
			return list[i].dur > list[j].dur
		}
		return list[i].name < list[j].name
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, list[i].name+":"+formatMs(list[i].dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs renders d in milliseconds with at most one decimal.
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	return strconv.FormatFloat(float64(int64(ms*10))/10, 'f', -1, 64) + "ms"
}
