package surface

import (
	"log/slog"
	"time"
)

// DefaultDoubleHitTimeout is the window in which a second hit on the same
// widget counts as a double hit.
const DefaultDoubleHitTimeout = 500 * time.Millisecond

// doubleHit is the Idle / Candidate(widget, timer) state machine layered on
// hit notifications. timer is non-nil exactly when candidate is non-nil.
type doubleHit struct {
	host      Host
	timeout   time.Duration
	log       *slog.Logger
	candidate Widget
	timer     Timer
}

func newDoubleHit(host Host, timeout time.Duration, log *slog.Logger) *doubleHit {
	if timeout <= 0 {
		timeout = DefaultDoubleHitTimeout
	}
	return &doubleHit{host: host, timeout: timeout, log: log}
}

// hit fires Hit on w, and DoubleHit too when w was the armed candidate.
func (d *doubleHit) hit(w Widget, e PointerEvent) {
	prev := d.candidate
	d.clear()

	h, _ := w.(HitHandler)
	if h != nil {
		h.Hit(e)
	}
	if prev != nil && sameWidget(prev, w) {
		d.log.Debug("double hit", "widget", w.ID())
		if h != nil {
			h.DoubleHit(e)
		}
		return
	}

	d.candidate = w
	var timer Timer
	timer = d.host.AfterFunc(d.timeout, func() {
		// A stale timer must not clear a newer candidate.
		if d.timer == timer {
			d.clear()
		}
	})
	d.timer = timer
}

func (d *doubleHit) clear() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.candidate = nil
	d.timer = nil
}

// Candidate returns the widget waiting for a second hit, or nil.
func (d *doubleHit) Candidate() Widget {
	return d.candidate
}
