package surface

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// The one open engine. NewEngine refuses to build a second.
var (
	engineMu sync.Mutex
	current  *Engine
)

// Engine routes boundary input events to widgets and schedules their
// updates. It is not safe for concurrent use: Dispatch and every Host
// callback must run on the same goroutine.
type Engine struct {
	root             Widget
	surface          Surface
	host             Host
	log              *slog.Logger
	keys             KeyMap
	doubleHitTimeout time.Duration
	multiTouch       MultiTouchHandler

	resolver *Resolver
	pointers *pointerRouter
	hits     *doubleHit
	drag     *DragController
	focus    *FocusManager
	sched    *Scheduler

	lastKind PointerKind
	viewport Vec2
	closed   bool
}

// NewEngine creates the application's engine. It fails with
// ErrDuplicateSingleton while another engine is open.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		log:              engineLogger,
		keys:             DefaultKeyMap(),
		doubleHitTimeout: DefaultDoubleHitTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.surface == nil {
		return nil, ErrNoSurface
	}
	if e.host == nil {
		return nil, ErrNoHost
	}

	engineMu.Lock()
	defer engineMu.Unlock()
	if current != nil {
		return nil, ErrDuplicateSingleton
	}

	e.resolver = NewResolver(e.surface, e.root, e.log)
	e.hits = newDoubleHit(e.host, e.doubleHitTimeout, e.log)
	e.drag = NewDragController(e.log)
	e.pointers = newPointerRouter(e.resolver, e.drag, e.hits, e.log)
	e.focus = NewFocusManager(e.root, e.keys, e.log)
	e.sched = NewScheduler(e.host, e.log)
	current = e
	return e, nil
}

// Close releases the engine so that a new one can be created. Active
// gestures are dropped. Closing twice is a no-op.
func (e *Engine) Close() error {
	engineMu.Lock()
	defer engineMu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.drag.Stop()
	e.hits.clear()
	if current == e {
		current = nil
	}
	return nil
}

// Dispatch routes one boundary event. Events of a pointer kind must arrive
// in order; each is processed to completion before Dispatch returns.
func (e *Engine) Dispatch(ev Event) error {
	if e.closed {
		return ErrEngineClosed
	}
	switch ev.Kind {
	case EventPointerDown:
		e.lastKind = PointerMouse
		e.pointers.down(PointerMouse, ev)
	case EventPointerMove:
		e.lastKind = PointerMouse
		e.pointers.move(PointerMouse, ev)
	case EventPointerUp:
		e.lastKind = PointerMouse
		e.pointers.up(PointerMouse, ev)
	case EventTouchStart, EventTouchMove, EventTouchEnd:
		e.lastKind = PointerTouch
		e.pointers.touch(ev, e.multiTouch)
	case EventKeyDown:
		if e.focus.HandleKey(ev.Key, ev.Modifiers) {
			return nil
		}
		if h, ok := e.focus.Focused().(KeyHandler); ok {
			h.KeyDown(ev.Key, ev.Modifiers)
		}
	case EventKeyUp:
		if h, ok := e.focus.Focused().(KeyHandler); ok {
			h.KeyUp(ev.Key, ev.Modifiers)
		}
	case EventResize:
		e.resize(ev.Size)
	default:
		return fmt.Errorf("dispatch %v: %w", ev.Kind, ErrUnknownEvent)
	}
	return nil
}

// resize records the new viewport. Drag input ranges were computed for the
// old one, so an active drag is stopped.
func (e *Engine) resize(size Vec2) {
	e.viewport = size
	e.drag.Stop()
	if e.root != nil {
		e.sched.Invalidate(e.root)
	}
	e.log.Debug("viewport resized", "w", size.X, "h", size.Y)
}

// Listener is an event listener bound to an engine and an event kind.
// Hosts register one per native event type and call Handle from it.
type Listener struct {
	engine *Engine
	kind   EventKind
}

// Listener returns a listener that dispatches events as kind.
func (e *Engine) Listener(kind EventKind) Listener {
	return Listener{engine: e, kind: kind}
}

// Kind returns the event kind the listener dispatches as.
func (l Listener) Kind() EventKind { return l.kind }

// Handle stamps ev with the listener's kind and dispatches it.
func (l Listener) Handle(ev Event) error {
	ev.Kind = l.kind
	return l.engine.Dispatch(ev)
}

// Resolve returns the widget a pointer event at p would target.
func (e *Engine) Resolve(p Vec2) Hit {
	return e.resolver.Resolve(p)
}

// Invalidate queues w for the next render pass.
func (e *Engine) Invalidate(w Widget) {
	e.sched.Invalidate(w)
}

// SetFocus moves keyboard focus to w. See FocusManager.SetFocus.
func (e *Engine) SetFocus(w Widget) bool {
	return e.focus.SetFocus(w)
}

// Focused returns the focused widget, or nil.
func (e *Engine) Focused() Widget {
	return e.focus.Focused()
}

// ReFocus re-applies native focus to the focused widget.
func (e *Engine) ReFocus() {
	e.focus.ReFocus()
}

// StartDrag begins dragging w from the global point p. The session follows
// the pointer kind that delivered the most recent event.
func (e *Engine) StartDrag(w Widget, p Vec2) error {
	if err := e.drag.Start(w, e.lastKind, p); err != nil {
		return fmt.Errorf("start drag: %w", err)
	}
	return nil
}

// StopDrag ends the active drag session, if any.
func (e *Engine) StopDrag() {
	e.drag.Stop()
}

// Dragging returns true while a drag session is active.
func (e *Engine) Dragging() bool {
	return e.drag.Active()
}

// Pointer returns the tracking state of a pointer kind.
func (e *Engine) Pointer(kind PointerKind) PointerTrack {
	return e.pointers.snapshot(kind)
}

// DoubleHitCandidate returns the widget waiting for a second hit, or nil.
func (e *Engine) DoubleHitCandidate() Widget {
	return e.hits.Candidate()
}

// Viewport returns the size reported by the last resize event.
func (e *Engine) Viewport() Vec2 {
	return e.viewport
}

// Reset abandons every gesture in flight: pointer tracks, the drag session
// and the double-hit candidate. Hosts call it when the window loses input,
// e.g. on blur. Focus and pending frames are kept.
func (e *Engine) Reset() {
	e.pointers.reset()
	e.drag.Stop()
	e.hits.clear()
}

// Focus returns the focus manager.
func (e *Engine) Focus() *FocusManager { return e.focus }

// Drag returns the drag controller.
func (e *Engine) Drag() *DragController { return e.drag }

// Scheduler returns the frame scheduler.
func (e *Engine) Scheduler() *Scheduler { return e.sched }
