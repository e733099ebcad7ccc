package surface

import "log/slog"

// FocusManager owns the focused widget and the focus pointers of the
// containers above it. It also implements Tab traversal and Enter
// activation.
type FocusManager struct {
	root    Widget
	focused Widget
	keys    KeyMap
	log     *slog.Logger
}

// NewFocusManager creates a focus manager. root may be nil; when it is a
// Container it is the scope used while nothing is focused.
func NewFocusManager(root Widget, keys KeyMap, log *slog.Logger) *FocusManager {
	if log == nil {
		log = engineLogger
	}
	return &FocusManager{root: root, keys: keys, log: log}
}

// Focused returns the focused widget, or nil.
func (fm *FocusManager) Focused() Widget {
	fm.focused = live(fm.focused)
	return fm.focused
}

// IsFocused returns true if w is the focused widget.
func (fm *FocusManager) IsFocused(w Widget) bool {
	return w != nil && sameWidget(w, fm.Focused())
}

// SetFocus moves logical focus to w. A nil, dead, non-interactive or
// already focused widget is rejected: native focus is refreshed and false
// is returned. Focusing a container forwards focus to its default focus
// target so that focus always ends on a leaf.
func (fm *FocusManager) SetFocus(w Widget) bool {
	w = live(w)
	old := fm.Focused()
	if w == nil || !w.Interactive() || sameWidget(w, old) {
		fm.log.Debug("focus: rejected", "widget", widgetID(w))
		fm.ReFocus()
		return false
	}

	if h, ok := old.(FocusHandler); ok {
		h.FocusOut()
	}
	fm.focused = w
	if h, ok := w.(FocusHandler); ok {
		h.FocusIn()
	}
	fm.ReFocus()

	child := w
	for c := w.Container(); c != nil; c = c.Container() {
		c.SetFocusedChild(child)
		child = c
	}
	fm.log.Debug("focus: set", "widget", w.ID(), "previous", widgetID(old))

	if c, ok := w.(Container); ok {
		if d := live(c.DefaultFocus()); d != nil && !sameWidget(d, w) {
			fm.SetFocus(d)
		}
	}
	return true
}

// ReFocus re-applies native input focus to the focused widget without
// changing logical focus.
func (fm *FocusManager) ReFocus() {
	w := fm.Focused()
	if w == nil {
		return
	}
	if t := w.FocusTarget(); t != nil {
		t.Focus()
	}
}

// Clear drops logical focus.
func (fm *FocusManager) Clear() {
	if h, ok := fm.Focused().(FocusHandler); ok {
		h.FocusOut()
	}
	fm.focused = nil
}

// Chain returns the containers from the focused widget up to the root,
// innermost first.
func (fm *FocusManager) Chain() []Container {
	w := fm.Focused()
	if w == nil {
		return nil
	}
	var chain []Container
	for c := w.Container(); c != nil; c = c.Container() {
		chain = append(chain, c)
	}
	return chain
}

// Next moves focus to the next focusable widget in traversal order, or the
// previous one when reverse is set. A container that runs out of widgets
// passes the question to its parent; if no container yields a widget,
// focus is left unchanged and false is returned. Non-interactive
// containers met on the way are entered rather than focused.
func (fm *FocusManager) Next(reverse bool) bool {
	var from Widget = fm.Focused()
	c := fm.container()
	seen := make(map[ID]bool)
	for c != nil {
		n := live(c.NextFocusable(from, reverse))
		if n == nil || seen[n.ID()] {
			from = c
			c = c.Container()
			continue
		}
		if fm.IsFocused(n) {
			// A looping container came back around; focus stays put.
			return false
		}
		seen[n.ID()] = true
		if sub, ok := n.(Container); ok && !n.Interactive() {
			c, from = sub, nil
			continue
		}
		if fm.SetFocus(n) {
			return true
		}
		// A rejected candidate still advances the cursor.
		from = n
	}
	fm.log.Debug("focus: traversal exhausted", "reverse", reverse)
	return false
}

// Activate triggers the current container's default action, or the focused
// widget when the container has none. It returns false if nothing was
// activated.
func (fm *FocusManager) Activate() bool {
	var target Widget
	if c := fm.container(); c != nil {
		target = live(c.DefaultAction())
	}
	if target == nil {
		target = fm.Focused()
	}
	if a, ok := target.(Activator); ok {
		a.Activate()
		return true
	}
	return false
}

// HandleKey processes focus-related keyboard input.
// Returns true if input was consumed.
func (fm *FocusManager) HandleKey(key Key, mods Modifiers) bool {
	switch key {
	case KeyNone:
		return false
	case fm.keys.Next:
		fm.Next(mods.Contain(ModShift))
		return true
	case fm.keys.Activate:
		fm.Activate()
		return true
	}
	return false
}

// container returns the scope the focused widget lives in, or the root
// when nothing is focused.
func (fm *FocusManager) container() Container {
	if w := fm.Focused(); w != nil {
		return w.Container()
	}
	c, _ := fm.root.(Container)
	return c
}

func widgetID(w Widget) ID {
	if w == nil {
		return 0
	}
	return w.ID()
}
