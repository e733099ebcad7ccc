package surface

import (
	"log/slog"
	"time"
)

// Option configures an Engine.
type Option func(*Engine)

// WithRoot sets the root display widget. The root is always an eligible
// hit target and, when it is a Container, the scope used while nothing
// is focused.
func WithRoot(root Widget) Option {
	return func(e *Engine) { e.root = root }
}

// WithSurface sets the surface stack used for hit-testing. Required.
func WithSurface(s Surface) Option {
	return func(e *Engine) { e.surface = s }
}

// WithHost sets the timer and animation-frame source. Required.
func WithHost(h Host) Option {
	return func(e *Engine) { e.host = h }
}

// WithDoubleHitTimeout overrides DefaultDoubleHitTimeout.
func WithDoubleHitTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.doubleHitTimeout = d
		}
	}
}

// WithLogger replaces the package logger for this engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMultiTouch sets the handler for events with two or more touches.
// Without one such events are dropped.
func WithMultiTouch(h MultiTouchHandler) Option {
	return func(e *Engine) { e.multiTouch = h }
}

// WithKeyMap overrides DefaultKeyMap.
func WithKeyMap(keys KeyMap) Option {
	return func(e *Engine) { e.keys = keys }
}
