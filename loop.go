package surface

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval is the frame pacing used by Loop when none is given.
const DefaultFrameInterval = time.Second / 60

// Loop is a real-time Host that serializes input, timers and frames onto
// the goroutine calling Run. Other goroutines hand work to it with Post.
type Loop struct {
	tasks    chan func()
	interval time.Duration
	done     chan struct{} // closed when Run returns
	stop     sync.Once

	// Owned by the Run goroutine.
	frames []func()
}

// NewLoop creates a loop that runs animation frames every interval.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{
		tasks:    make(chan func(), 64),
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Post queues f to run on the loop goroutine. It is safe for concurrent use
// and blocks while the task queue is full. Once Run has returned, f is
// dropped.
func (l *Loop) Post(f func()) {
	l.PostContext(context.Background(), f)
}

// PostContext is like Post but gives up when ctx is done. It returns
// ErrLoopStopped once Run has returned.
func (l *Loop) PostContext(ctx context.Context, f func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.tasks <- f:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AfterFunc must be called on the loop goroutine. f runs on the loop
// goroutine once d has elapsed, unless the timer was stopped first.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped {
				return
			}
			t.stopped = true
			f()
		})
	})
	return t
}

// RequestFrame must be called on the loop goroutine.
func (l *Loop) RequestFrame(f func()) {
	l.frames = append(l.frames, f)
}

// Run processes tasks and frames until ctx is done. After it returns the
// loop stays stopped; pending timers and tasks are discarded.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer l.stop.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.tasks:
			f()
		case <-ticker.C:
			frames := l.frames
			l.frames = nil
			for _, f := range frames {
				f()
			}
		}
	}
}

type loopTimer struct {
	timer   *time.Timer
	stopped bool // only touched on the loop goroutine
}

func (t *loopTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}
