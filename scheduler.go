package surface

import "log/slog"

// widgetSet is an insertion-ordered set of widgets keyed by ID.
type widgetSet struct {
	items []Widget
	index map[ID]struct{}
}

func (s *widgetSet) add(w Widget) bool {
	if s.index == nil {
		s.index = make(map[ID]struct{})
	}
	if _, ok := s.index[w.ID()]; ok {
		return false
	}
	s.index[w.ID()] = struct{}{}
	s.items = append(s.items, w)
	return true
}

func (s *widgetSet) has(w Widget) bool {
	_, ok := s.index[w.ID()]
	return ok
}

func (s *widgetSet) len() int { return len(s.items) }

// take empties the set and returns what it held.
func (s *widgetSet) take() []Widget {
	items := s.items
	s.items = nil
	s.index = nil
	return items
}

// Scheduler batches invalidated widgets into a two-phase frame cycle:
// one frame renders everything queued, the following frame recalculates
// the layout of what was rendered. At most one frame request is
// outstanding at a time.
type Scheduler struct {
	host      Host
	log       *slog.Logger
	render    widgetSet
	recalc    widgetSet
	requested bool
	frames    uint64
}

// NewScheduler creates a scheduler that requests frames from host.
func NewScheduler(host Host, log *slog.Logger) *Scheduler {
	if log == nil {
		log = engineLogger
	}
	return &Scheduler{host: host, log: log}
}

// Invalidate queues w for rendering. Queuing a widget that is already
// pending has no effect.
func (s *Scheduler) Invalidate(w Widget) {
	if w == nil {
		return
	}
	s.render.add(w)
	s.request()
}

// Pending returns the number of widgets waiting to render and to
// recalculate.
func (s *Scheduler) Pending() (render, recalc int) {
	return s.render.len(), s.recalc.len()
}

// IsQueued returns true if w waits for its render step.
func (s *Scheduler) IsQueued(w Widget) bool {
	return w != nil && s.render.has(w)
}

// Frames returns how many frame callbacks have run.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

func (s *Scheduler) request() {
	if s.requested {
		return
	}
	s.requested = true
	s.host.RequestFrame(s.frame)
}

// frame is the animation-frame callback.
func (s *Scheduler) frame() {
	s.requested = false
	s.frames++

	if s.render.len() > 0 {
		// The live set is emptied first, so widgets invalidated while
		// rendering land in the next render pass.
		batch := s.render.take()
		s.log.Debug("frame: render", "frame", s.frames, "widgets", len(batch))
		for _, w := range batch {
			if live(w) == nil {
				continue
			}
			if r, ok := w.(Renderer); ok {
				r.Render()
			}
		}
		for _, w := range batch {
			s.recalc.add(w)
		}
		s.request()
		return
	}

	batch := s.recalc.take()
	s.log.Debug("frame: recalculate", "frame", s.frames, "widgets", len(batch))
	for _, w := range batch {
		if live(w) == nil {
			continue
		}
		if r, ok := w.(Recalculator); ok {
			r.Recalculate()
		}
	}
}
