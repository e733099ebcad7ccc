package surface

import (
	"sort"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the timer. It returns false if the timer already fired
	// or was already stopped.
	Stop() bool
}

// Host provides the two suspension points the engine relies on: delayed
// callbacks and animation frames. Every callback must run on the goroutine
// that dispatches input to the engine.
type Host interface {
	AfterFunc(d time.Duration, f func()) Timer
	RequestFrame(f func())
}

// ManualHost is a Host driven by hand. Time only moves on Advance and
// frames only run on Frame, which makes event sequences reproducible in
// tests and script replays.
type ManualHost struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
	frames []func()
}

type manualTimer struct {
	host     *ManualHost
	deadline time.Duration
	seq      uint64
	f        func()
	done     bool
}

// NewManualHost creates a host whose clock starts at zero.
func NewManualHost() *ManualHost {
	return &ManualHost{}
}

// Now returns the virtual time elapsed since the host was created.
func (h *ManualHost) Now() time.Duration {
	return h.now
}

// AfterFunc schedules f to run once the virtual clock reaches now+d.
func (h *ManualHost) AfterFunc(d time.Duration, f func()) Timer {
	h.seq++
	t := &manualTimer{host: h, deadline: h.now + d, seq: h.seq, f: f}
	h.timers = append(h.timers, t)
	return t
}

// RequestFrame queues f for the next call to Frame.
func (h *ManualHost) RequestFrame(f func()) {
	h.frames = append(h.frames, f)
}

// Advance moves the clock forward by d, firing due timers in deadline
// order. Timers scheduled by a firing timer run too if they fall due
// within the same advance.
func (h *ManualHost) Advance(d time.Duration) {
	target := h.now + d
	for {
		t := h.nextDue(target)
		if t == nil {
			break
		}
		h.now = t.deadline
		t.done = true
		h.remove(t)
		t.f()
	}
	h.now = target
}

// Frame runs the frame callbacks requested before this call and returns
// how many ran. Callbacks requested while running wait for the next Frame.
func (h *ManualHost) Frame() int {
	frames := h.frames
	h.frames = nil
	for _, f := range frames {
		f()
	}
	return len(frames)
}

// PendingFrames returns the number of queued frame callbacks.
func (h *ManualHost) PendingFrames() int {
	return len(h.frames)
}

// PendingTimers returns the number of armed timers.
func (h *ManualHost) PendingTimers() int {
	return len(h.timers)
}

func (h *ManualHost) nextDue(limit time.Duration) *manualTimer {
	if len(h.timers) == 0 {
		return nil
	}
	sort.SliceStable(h.timers, func(i, j int) bool {
		a, b := h.timers[i], h.timers[j]
		if a.deadline != b.deadline {
			return a.deadline < b.deadline
		}
		return a.seq < b.seq
	})
	if t := h.timers[0]; t.deadline <= limit {
		return t
	}
	return nil
}

func (h *ManualHost) remove(t *manualTimer) {
	for i, other := range h.timers {
		if other == t {
			h.timers = append(h.timers[:i], h.timers[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.host.remove(t)
	return true
}
