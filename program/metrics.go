package main

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/keilerkonzept/condemned-dash/internal/crossfilter"
)

type durationRing struct {
	buf   []time.Duration
	idx   int
	count int
}

func newDurationRing(n int) *durationRing {
	if n < 1 {
		n = 1
	}
	return &durationRing{buf: make([]time.Duration, n)}
}

func (r *durationRing) add(d time.Duration) {
	r.buf[r.idx] = d
	r.idx = (r.idx + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

type durationStats struct {
	last time.Duration
	max  time.Duration
	avg  time.Duration
	n    int
}

func (r *durationRing) snapshot() durationStats {
	if r.count == 0 {
		return durationStats{}
	}
	var sum, longest time.Duration
	for _, d := range r.buf[:r.count] {
		sum += d
		longest = max(longest, d)
	}
	lastIdx := r.idx - 1
	if lastIdx < 0 {
		lastIdx = len(r.buf) - 1
	}
	return durationStats{
		last: r.buf[lastIdx],
		max:  longest,
		avg:  sum / time.Duration(r.count),
		n:    r.count,
	}
}

// viewMetrics tracks one registered view.
type viewMetrics struct {
	latency   *durationRing
	refreshes uint64
	records   int
}

// refreshMetrics collects hub refresh timings and the load size and time.
// Both observers are called from Update on the UI goroutine.
type refreshMetrics struct {
	enabled atomic.Bool
	window  int

	loadedRecords atomic.Uint64
	loadNs        atomic.Int64

	mu    sync.Mutex
	views map[string]*viewMetrics
	order []string
}

func newRefreshMetrics(window int) *refreshMetrics {
	return &refreshMetrics{
		window: window,
		views:  make(map[string]*viewMetrics),
	}
}

func (m *refreshMetrics) setEnabled(v bool) { m.enabled.Store(v) }
func (m *refreshMetrics) isEnabled() bool   { return m.enabled.Load() }

func (m *refreshMetrics) observeLoad(records int, took time.Duration) {
	m.loadedRecords.Store(uint64(records))
	m.loadNs.Store(int64(took))
}

// observeRefresh is passed to the hub with crossfilter.WithObserver.
func (m *refreshMetrics) observeRefresh(s crossfilter.RefreshStat) {
	if !m.isEnabled() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vm, ok := m.views[s.View]
	if !ok {
		vm = &viewMetrics{latency: newDurationRing(m.window)}
		m.views[s.View] = vm
		m.order = append(m.order, s.View)
	}
	vm.latency.add(s.Took)
	vm.refreshes++
	vm.records = s.Records
}

type viewSnapshot struct {
	name      string
	refreshes uint64
	records   int
	latency   durationStats
}

type snapshot struct {
	records   uint64
	load      time.Duration
	refreshes uint64
	views     []viewSnapshot
}

func (m *refreshMetrics) snapshot() snapshot {
	s := snapshot{
		records: m.loadedRecords.Load(),
		load:    time.Duration(m.loadNs.Load()),
	}
	m.mu.Lock()
	for _, name := range m.order {
		vm := m.views[name]
		s.refreshes += vm.refreshes
		s.views = append(s.views, viewSnapshot{
			name:      name,
			refreshes: vm.refreshes,
			records:   vm.records,
			latency:   vm.latency.snapshot(),
		})
	}
	m.mu.Unlock()
	return s
}
