package surface

// Scope implements the focus bookkeeping half of Container. Concrete
// containers embed it and supply the Widget half themselves.
//
// Usage:
//
//	type Panel struct {
//	    surface.Scope
//	    // widget fields...
//	}
//
//	panel.Add(okButton, cancelButton)
//	panel.SetDefaultAction(okButton)
type Scope struct {
	order         []Widget
	loop          bool
	focused       Widget
	defaultAction Widget
	defaultFocus  Widget
}

// Add appends widgets to the traversal order. Widgets already in the
// scope are not added twice.
func (s *Scope) Add(ws ...Widget) {
	for _, w := range ws {
		if s.indexOf(w) < 0 {
			s.order = append(s.order, w)
		}
	}
}

// Remove drops w from the traversal order and forgets any reference the
// scope held to it.
func (s *Scope) Remove(w Widget) {
	if i := s.indexOf(w); i >= 0 {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
	if sameWidget(s.focused, w) {
		s.focused = nil
	}
	if sameWidget(s.defaultAction, w) {
		s.defaultAction = nil
	}
	if sameWidget(s.defaultFocus, w) {
		s.defaultFocus = nil
	}
}

// Items returns the traversal order.
func (s *Scope) Items() []Widget {
	return s.order
}

// SetLoop makes traversal wrap at the ends instead of escaping.
func (s *Scope) SetLoop(loop bool) { s.loop = loop }

// Loop reports whether traversal wraps.
func (s *Scope) Loop() bool { return s.loop }

func (s *Scope) FocusedChild() Widget     { return live(s.focused) }
func (s *Scope) SetFocusedChild(w Widget) { s.focused = w }

func (s *Scope) DefaultAction() Widget     { return live(s.defaultAction) }
func (s *Scope) SetDefaultAction(w Widget) { s.defaultAction = w }

// SetDefaultFocus pins the widget DefaultFocus returns.
func (s *Scope) SetDefaultFocus(w Widget) { s.defaultFocus = w }

// DefaultFocus returns the pinned default focus, else the child that held
// focus last, else the first focusable widget in order.
func (s *Scope) DefaultFocus() Widget {
	if w := live(s.defaultFocus); w != nil {
		return w
	}
	if w := live(s.focused); w != nil {
		return w
	}
	return s.NextFocusable(nil, false)
}

// NextFocusable returns the focusable widget after from, or before it when
// reverse is set. A nil or unknown from starts at the respective end. Dead
// widgets and non-interactive leaves are skipped. A looping scope that wraps
// back to from returns from itself while it is still focusable.
func (s *Scope) NextFocusable(from Widget, reverse bool) Widget {
	n := len(s.order)
	if n == 0 {
		return nil
	}
	step := 1
	if reverse {
		step = -1
	}
	start := s.indexOf(from)
	if start < 0 {
		start = -1
		if reverse {
			start = n
		}
	}

	i := start
	for visited := 0; visited < n; visited++ {
		i += step
		if i < 0 || i >= n {
			if !s.loop {
				return nil
			}
			i = (i + n) % n
		}
		if i == start {
			if w := s.order[i]; focusable(w) {
				return w
			}
			return nil
		}
		if w := s.order[i]; focusable(w) {
			return w
		}
	}
	return nil
}

func (s *Scope) indexOf(w Widget) int {
	if w == nil {
		return -1
	}
	for i, other := range s.order {
		if sameWidget(other, w) {
			return i
		}
	}
	return -1
}

// focusable reports whether traversal may stop at w. Containers qualify
// even when not interactive themselves, so traversal can enter them.
func focusable(w Widget) bool {
	if live(w) == nil {
		return false
	}
	if w.Interactive() {
		return true
	}
	_, ok := w.(Container)
	return ok
}
