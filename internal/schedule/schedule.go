// Package schedule provides one-shot deferred execution with cancellable
// handles.
//
// A Scheduler accepts a delay and a zero-argument action and returns a Handle.
// Components that arm timers take a Scheduler so tests can drive time with
// Manual instead of sleeping.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Handle is a pending deferred action.
type Handle interface {
	// Cancel stops the action from running. It reports whether the call
	// stopped the action; false means it already ran or was already cancelled.
	Cancel() bool
}

// Scheduler arms one-shot deferred actions.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// Real returns a Scheduler backed by the runtime timer.
func Real() Scheduler { return realScheduler{} }

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	return realHandle{t: time.AfterFunc(d, fn)}
}

type realHandle struct{ t *time.Timer }

func (h realHandle) Cancel() bool { return h.t.Stop() }

// Manual is a Scheduler whose clock only moves when Advance is called.
// Due actions run synchronously on the goroutine calling Advance, in due-time
// order (ties in arming order). It is safe for concurrent use.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualHandle
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual { return &Manual{} }

type manualHandle struct {
	m   *Manual
	at  time.Duration
	seq uint64
	fn  func()
	// done is set once the action ran or was cancelled; guarded by m.mu.
	done bool
}

func (h *manualHandle) Cancel() bool {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if h.done {
		return false
	}
	h.done = true
	return true
}

// AfterFunc arms fn to run once the clock has advanced by d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	h := &manualHandle{m: m, at: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, h)
	return h
}

// Advance moves the clock forward by d and runs every action that became due.
// Actions armed by a running action also fire if they fall due within d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		h := m.nextDueLocked(target)
		if h == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		h.done = true
		m.now = h.at
		m.mu.Unlock()

		h.fn()
	}
}

// nextDueLocked removes finished handles and returns the earliest live one
// due at or before target. The caller must hold m.mu.
func (m *Manual) nextDueLocked(target time.Duration) *manualHandle {
	live := m.pending[:0]
	for _, h := range m.pending {
		if !h.done {
			live = append(live, h)
		}
	}
	m.pending = live
	if len(live) == 0 {
		return nil
	}
	sort.SliceStable(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].seq < live[j].seq
	})
	if live[0].at > target {
		return nil
	}
	return live[0]
}

// Pending reports how many armed actions have neither run nor been cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, h := range m.pending {
		if !h.done {
			n++
		}
	}
	return n
}
