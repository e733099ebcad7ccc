package opengl

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/surface"
)

// timerPoll is how long Wait blocks while only timers are armed.
const timerPoll = 10 * time.Millisecond

// FrameHost is a surface.Host paced by the render loop. Timers are
// measured against the GLFW clock and fire from Tick, so every callback
// runs on the main goroutine between PollEvents and SwapBuffers.
type FrameHost struct {
	clock  *surface.ManualHost
	now    func() time.Duration
	origin time.Duration
}

// NewFrameHost creates a host on the GLFW clock. glfw.Init must have
// been called.
func NewFrameHost() *FrameHost {
	return newFrameHost(glfwNow)
}

func newFrameHost(now func() time.Duration) *FrameHost {
	return &FrameHost{
		clock:  surface.NewManualHost(),
		now:    now,
		origin: now(),
	}
}

func glfwNow() time.Duration {
	return time.Duration(glfw.GetTime() * float64(time.Second))
}

func (h *FrameHost) AfterFunc(d time.Duration, f func()) surface.Timer {
	h.catchUp()
	return h.clock.AfterFunc(d, f)
}

func (h *FrameHost) RequestFrame(f func()) {
	h.clock.RequestFrame(f)
}

// Tick fires due timers, then runs the frame callbacks queued so far. It
// returns how many frame callbacks ran. Call it once per rendered frame.
func (h *FrameHost) Tick() int {
	h.catchUp()
	return h.clock.Frame()
}

// Wait blocks in GLFW until there is something to do: immediately when a
// frame is queued, briefly while timers are armed, else until the next
// window event.
func (h *FrameHost) Wait() {
	switch {
	case h.clock.PendingFrames() > 0:
		glfw.PollEvents()
	case h.clock.PendingTimers() > 0:
		glfw.WaitEventsTimeout(timerPoll.Seconds())
	default:
		glfw.WaitEvents()
	}
}

func (h *FrameHost) catchUp() {
	elapsed := h.now() - h.origin
	if d := elapsed - h.clock.Now(); d > 0 {
		h.clock.Advance(d)
	}
}
