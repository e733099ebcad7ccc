package surface

import "testing"

// focusTree builds
//
//	root
//	├── panel: a1 a2 a3
//	└── b
//
// root and panel are plain containers; the leaves are interactive.
type focusTree struct {
	rec        *recorder
	root       *fakeContainer
	panel      *fakeContainer
	a1, a2, a3 *fakeWidget
	b          *fakeWidget
}

func newFocusTree() *focusTree {
	rec := &recorder{}
	ft := &focusTree{
		rec: rec,
		a1:  newWidget(rec, "a1"),
		a2:  newWidget(rec, "a2"),
		a3:  newWidget(rec, "a3"),
		b:   newWidget(rec, "b"),
	}
	ft.panel = newContainer(rec, "panel", ft.a1, ft.a2, ft.a3)
	ft.root = newContainer(rec, "root")
	ft.panel.parent = ft.root
	ft.root.Add(ft.panel)
	ft.b.parent = ft.root
	ft.root.Add(ft.b)
	return ft
}

func (ft *focusTree) engine(t *testing.T) *Engine {
	t.Helper()
	e, _ := newTestEngine(t, ft.root, &fakeSurface{})
	return e
}

func TestFocusManager_SetFocusOrder(t *testing.T) {
	ft := newFocusTree()
	fm := NewFocusManager(ft.root, DefaultKeyMap(), nil)

	if !fm.SetFocus(ft.a1) {
		t.Fatal("Expected SetFocus(a1) to succeed")
	}
	if !fm.SetFocus(ft.a2) {
		t.Fatal("Expected SetFocus(a2) to succeed")
	}

	ft.rec.expect(t, "focusin a1", "focusout a1", "focusin a2")
	if ft.a2.nativeHits != 1 {
		t.Errorf("Expected native focus applied once to a2, got %d", ft.a2.nativeHits)
	}
	if got := ft.panel.FocusedChild(); got != ft.a2 {
		t.Errorf("Expected panel to remember a2, got %v", got)
	}
	if got := ft.root.FocusedChild(); got != ft.panel {
		t.Errorf("Expected root to remember panel, got %v", got)
	}
}

func TestFocusManager_SetFocusRejected(t *testing.T) {
	ft := newFocusTree()
	fm := NewFocusManager(ft.root, DefaultKeyMap(), nil)
	fm.SetFocus(ft.a1)
	ft.rec.reset()

	dead := newWidget(ft.rec, "dead")
	dead.dead = true
	inert := newWidget(ft.rec, "inert")
	inert.interactive = false

	for _, w := range []Widget{nil, dead, inert, ft.a1} {
		if fm.SetFocus(w) {
			t.Errorf("Expected SetFocus(%v) to be rejected", w)
		}
	}

	ft.rec.expect(t)
	if fm.Focused() != ft.a1 {
		t.Errorf("Expected focus to stay on a1, got %v", fm.Focused())
	}
	// Every rejection re-applies native focus.
	if ft.a1.nativeHits != 5 {
		t.Errorf("Expected 5 native focus calls on a1, got %d", ft.a1.nativeHits)
	}
}

func TestFocusManager_ContainerForwardsToDefaultFocus(t *testing.T) {
	ft := newFocusTree()
	ft.panel.interactive = true
	ft.panel.SetDefaultFocus(ft.a2)
	fm := NewFocusManager(ft.root, DefaultKeyMap(), nil)

	fm.SetFocus(ft.panel)

	ft.rec.expect(t, "focusin panel", "focusout panel", "focusin a2")
	if fm.Focused() != ft.a2 {
		t.Errorf("Expected focus to land on a2, got %v", fm.Focused())
	}
}

func TestFocusManager_TabEscapesToParent(t *testing.T) {
	ft := newFocusTree()
	e := ft.engine(t)
	e.SetFocus(ft.a1)

	want := []*fakeWidget{ft.a2, ft.a3, ft.b}
	for _, w := range want {
		key(e, KeyTab, 0)
		if e.Focused() != w {
			t.Fatalf("Expected focus on %s, got %v", w.name, e.Focused())
		}
	}

	// The root is exhausted: focus stays put.
	key(e, KeyTab, 0)
	if e.Focused() != ft.b {
		t.Errorf("Expected focus to stay on b, got %v", e.Focused())
	}
}

func TestFocusManager_TabLoops(t *testing.T) {
	ft := newFocusTree()
	ft.panel.SetLoop(true)
	e := ft.engine(t)
	e.SetFocus(ft.a3)

	key(e, KeyTab, 0)

	if e.Focused() != ft.a1 {
		t.Errorf("Expected looping panel to wrap to a1, got %v", e.Focused())
	}
}

func TestFocusManager_TabStaysInSingleItemLoop(t *testing.T) {
	ft := newFocusTree()
	ft.a2.interactive = false
	ft.a3.interactive = false
	ft.panel.SetLoop(true)
	e := ft.engine(t)
	e.SetFocus(ft.a1)
	ft.rec.reset()

	key(e, KeyTab, 0)
	if e.Focused() != ft.a1 {
		t.Errorf("Expected focus to stay on a1, got %v", e.Focused())
	}
	key(e, KeyTab, ModShift)
	if e.Focused() != ft.a1 {
		t.Errorf("Expected reverse Tab to stay on a1, got %v", e.Focused())
	}
	ft.rec.expect(t)
}

func TestFocusManager_ShiftTabEntersContainer(t *testing.T) {
	ft := newFocusTree()
	e := ft.engine(t)
	e.SetFocus(ft.b)

	key(e, KeyTab, ModShift)

	if e.Focused() != ft.a3 {
		t.Errorf("Expected reverse traversal to enter panel at a3, got %v", e.Focused())
	}
}

func TestFocusManager_TabFromNothing(t *testing.T) {
	ft := newFocusTree()
	e := ft.engine(t)

	key(e, KeyTab, 0)

	if e.Focused() != ft.a1 {
		t.Errorf("Expected first Tab to focus a1, got %v", e.Focused())
	}
}

func TestFocusManager_TabSkipsUnfocusable(t *testing.T) {
	ft := newFocusTree()
	ft.a2.interactive = false
	e := ft.engine(t)
	e.SetFocus(ft.a1)

	key(e, KeyTab, 0)

	if e.Focused() != ft.a3 {
		t.Errorf("Expected Tab to skip a2, got %v", e.Focused())
	}
}

func TestFocusManager_EnterActivates(t *testing.T) {
	t.Run("focused widget", func(t *testing.T) {
		ft := newFocusTree()
		e := ft.engine(t)
		e.SetFocus(ft.a1)
		ft.rec.reset()

		key(e, KeyEnter, 0)
		ft.rec.expect(t, "activate a1")
	})

	t.Run("default action", func(t *testing.T) {
		ft := newFocusTree()
		ft.panel.SetDefaultAction(ft.a3)
		e := ft.engine(t)
		e.SetFocus(ft.a1)
		ft.rec.reset()

		key(e, KeyEnter, 0)
		ft.rec.expect(t, "activate a3")
	})
}

func TestFocusManager_Chain(t *testing.T) {
	ft := newFocusTree()
	fm := NewFocusManager(ft.root, DefaultKeyMap(), nil)
	if chain := fm.Chain(); chain != nil {
		t.Errorf("Expected empty chain without focus, got %v", chain)
	}

	fm.SetFocus(ft.a2)
	chain := fm.Chain()
	if len(chain) != 2 || chain[0] != ft.panel || chain[1] != ft.root {
		t.Errorf("Expected chain [panel root], got %v", chain)
	}
}

func TestFocusManager_DeadFocusIsDropped(t *testing.T) {
	ft := newFocusTree()
	fm := NewFocusManager(ft.root, DefaultKeyMap(), nil)
	fm.SetFocus(ft.a1)
	ft.a1.dead = true

	if fm.Focused() != nil {
		t.Errorf("Expected destroyed widget to lose focus, got %v", fm.Focused())
	}
}

func TestFocusManager_CustomKeyMap(t *testing.T) {
	ft := newFocusTree()
	e, _ := newTestEngine(t, ft.root, &fakeSurface{}, WithKeyMap(KeyMap{Next: KeyDown, Activate: KeySpace}))

	key(e, KeyTab, 0)
	if e.Focused() != nil {
		t.Errorf("Expected Tab to be unbound, got focus on %v", e.Focused())
	}
	key(e, KeyDown, 0)
	if e.Focused() != ft.a1 {
		t.Errorf("Expected Down to move focus to a1, got %v", e.Focused())
	}
}

func TestScope_NextFocusable(t *testing.T) {
	rec := &recorder{}
	a, b, c := newWidget(rec, "a"), newWidget(rec, "b"), newWidget(rec, "c")
	b.interactive = false
	var s Scope
	s.Add(a, b, c, a)

	if n := len(s.Items()); n != 3 {
		t.Fatalf("Expected duplicate Add to be ignored, got %d items", n)
	}
	if got := s.NextFocusable(nil, false); got != a {
		t.Errorf("Expected first focusable a, got %v", got)
	}
	if got := s.NextFocusable(a, false); got != c {
		t.Errorf("Expected a -> c, got %v", got)
	}
	if got := s.NextFocusable(c, false); got != nil {
		t.Errorf("Expected end of scope, got %v", got)
	}
	if got := s.NextFocusable(nil, true); got != c {
		t.Errorf("Expected last focusable c, got %v", got)
	}

	s.SetLoop(true)
	if got := s.NextFocusable(c, false); got != a {
		t.Errorf("Expected looping scope to wrap to a, got %v", got)
	}

	// A lone focusable widget in a loop wraps around to itself.
	var lone Scope
	lone.SetLoop(true)
	lone.Add(a)
	if got := lone.NextFocusable(a, false); got != a {
		t.Errorf("Expected single-item loop to wrap to a, got %v", got)
	}
	if got := lone.NextFocusable(a, true); got != a {
		t.Errorf("Expected reverse single-item loop to wrap to a, got %v", got)
	}
	lone.SetLoop(false)
	if got := lone.NextFocusable(a, false); got != nil {
		t.Errorf("Expected no next without loop, got %v", got)
	}
}

func TestScope_DefaultFocusAndRemove(t *testing.T) {
	rec := &recorder{}
	a, b := newWidget(rec, "a"), newWidget(rec, "b")
	var s Scope
	s.Add(a, b)

	if got := s.DefaultFocus(); got != a {
		t.Errorf("Expected first widget as default focus, got %v", got)
	}
	s.SetFocusedChild(b)
	if got := s.DefaultFocus(); got != b {
		t.Errorf("Expected last focused child as default focus, got %v", got)
	}
	s.SetDefaultFocus(a)
	if got := s.DefaultFocus(); got != a {
		t.Errorf("Expected pinned default focus, got %v", got)
	}

	s.SetDefaultAction(b)
	s.Remove(b)
	if s.FocusedChild() != nil || s.DefaultAction() != nil {
		t.Error("Expected Remove to forget b")
	}
}
