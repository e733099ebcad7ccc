package surface

import "testing"

// twoWidgets lays out a at x in [0,100) and b at x in [100,200).
func twoWidgets(t *testing.T) (*Engine, *ManualHost, *recorder, *fakeWidget, *fakeWidget) {
	t.Helper()
	rec := &recorder{}
	a := newWidget(rec, "A")
	b := newWidget(rec, "B")
	surf := &fakeSurface{}
	surf.add(a, Rect{X: 0, Y: 0, W: 100, H: 100})
	surf.add(b, Rect{X: 100, Y: 0, W: 100, H: 100})
	e, host := newTestEngine(t, nil, surf)
	return e, host, rec, a, b
}

func TestPointer_PressReleaseIsOneHit(t *testing.T) {
	e, _, rec, _, _ := twoWidgets(t)

	down(e, 10, 10)
	up(e, 12, 10)

	rec.expect(t, "down A", "up A", "hit A")
}

func TestPointer_MoveWithinWidget(t *testing.T) {
	e, _, rec, _, _ := twoWidgets(t)

	move(e, 10, 10)
	move(e, 20, 10)
	move(e, 30, 10)

	rec.expect(t, "over A", "move A", "move A")
}

func TestPointer_LeavingPressedWidget(t *testing.T) {
	e, _, rec, _, _ := twoWidgets(t)

	down(e, 10, 10)
	rec.reset()
	move(e, 150, 10)
	move(e, 160, 10)

	rec.expect(t, "up A", "out A", "over B", "move B")
}

func TestPointer_HoverWithoutPressHasNoSyntheticUp(t *testing.T) {
	e, _, rec, _, _ := twoWidgets(t)

	move(e, 10, 10)
	move(e, 150, 10)

	rec.expect(t, "over A", "out A", "over B")
}

func TestPointer_ReenteringPressedWidget(t *testing.T) {
	e, _, rec, _, _ := twoWidgets(t)

	down(e, 10, 10)
	move(e, 150, 10)
	rec.reset()
	move(e, 50, 10)

	rec.expect(t, "out B", "over A", "down A")

	rec.reset()
	up(e, 50, 10)
	rec.expect(t, "up A", "hit A")
}

func TestPointer_ReleaseOnOtherWidgetIsNoHit(t *testing.T) {
	e, _, rec, _, _ := twoWidgets(t)

	down(e, 10, 10)
	move(e, 150, 10)
	up(e, 150, 10)

	rec.expect(t, "down A", "up A", "out A", "over B", "up B")
	if o := e.Pointer(PointerMouse).Origin; o != nil {
		t.Errorf("Expected origin cleared after release, got %v", o)
	}
}

func TestPointer_LeavingToNothing(t *testing.T) {
	e, _, rec, _, _ := twoWidgets(t)

	move(e, 10, 10)
	move(e, 500, 500)
	up(e, 500, 500)

	rec.expect(t, "over A", "out A")
	if c := e.Pointer(PointerMouse).Current; c != nil {
		t.Errorf("Expected no current widget, got %v", c)
	}
}

func TestPointer_DragSuppressesHoverAndHit(t *testing.T) {
	e, _, rec, a, _ := twoWidgets(t)

	down(e, 10, 10)
	if err := e.StartDrag(a, Vec2{X: 10, Y: 10}); err != nil {
		t.Fatalf("StartDrag returned error: %v", err)
	}
	rec.reset()

	move(e, 150, 20)
	if a.pos != (Vec2{X: 140, Y: 10}) {
		t.Errorf("Expected dragged position (140, 10), got (%f, %f)", a.pos.X, a.pos.Y)
	}
	up(e, 150, 20)

	rec.expect(t) // no over/out/up/hit while dragging
	if e.Dragging() {
		t.Error("Expected pointer up to end the drag")
	}
}

func TestPointer_DeadOriginIsDropped(t *testing.T) {
	e, _, rec, a, _ := twoWidgets(t)

	down(e, 10, 10)
	a.dead = true
	rec.reset()
	move(e, 150, 10)

	rec.expect(t, "over B")
}

func TestTouch_SingleTouchHits(t *testing.T) {
	e, _, rec, _, _ := twoWidgets(t)

	p := Vec2{X: 10, Y: 10}
	e.Dispatch(Event{Kind: EventTouchStart, Position: p, Touches: []Touch{{ID: 1, Position: p}}})
	e.Dispatch(Event{Kind: EventTouchEnd, Position: p})

	rec.expect(t, "down A", "up A", "hit A")
	if o := e.Pointer(PointerTouch).Origin; o != nil {
		t.Errorf("Expected touch origin cleared, got %v", o)
	}
}

func TestTouch_SecondTouchGoesToMultiTouch(t *testing.T) {
	e, _, rec, _, _ := twoWidgets(t)
	var multi []EventKind
	e.multiTouch = func(ev Event) { multi = append(multi, ev.Kind) }

	p1, p2, p3 := Vec2{X: 10, Y: 10}, Vec2{X: 50, Y: 50}, Vec2{X: 150, Y: 10}
	e.Dispatch(Event{Kind: EventTouchStart, Position: p1, Touches: []Touch{{ID: 1, Position: p1}}})
	e.Dispatch(Event{Kind: EventTouchStart, Position: p2, Touches: []Touch{{ID: 1, Position: p1}, {ID: 2, Position: p2}}})
	e.Dispatch(Event{Kind: EventTouchMove, Position: p2, Touches: []Touch{{ID: 1, Position: p1}, {ID: 2, Position: p2}}})
	e.Dispatch(Event{Kind: EventTouchEnd, Position: p2, Touches: []Touch{{ID: 1, Position: p1}}})
	// The remaining finger moves over B and lifts there.
	e.Dispatch(Event{Kind: EventTouchMove, Position: p3, Touches: []Touch{{ID: 1, Position: p3}}})
	e.Dispatch(Event{Kind: EventTouchEnd, Position: p3})

	if len(multi) != 3 {
		t.Errorf("Expected 3 multi-touch events, got %d", len(multi))
	}
	// The pinch closed the single-touch gesture on A; B sees nothing.
	rec.expect(t, "down A", "up A", "out A")
	if tr := e.Pointer(PointerTouch); tr.Origin != nil || tr.Current != nil {
		t.Errorf("Expected empty touch track, got %+v", tr)
	}

	// The next single touch starts a fresh gesture.
	rec.reset()
	e.Dispatch(Event{Kind: EventTouchStart, Position: p3, Touches: []Touch{{ID: 3, Position: p3}}})
	e.Dispatch(Event{Kind: EventTouchEnd, Position: p3})
	rec.expect(t, "down B", "up B", "hit B")
}

func TestPointer_MouseReleaseKeepsTouchDrag(t *testing.T) {
	e, _, rec, a, _ := twoWidgets(t)

	p := Vec2{X: 10, Y: 10}
	e.Dispatch(Event{Kind: EventTouchStart, Position: p, Touches: []Touch{{ID: 1, Position: p}}})
	e.StartDrag(a, p)
	rec.reset()

	down(e, 150, 10)
	up(e, 150, 10)

	if !e.Dragging() {
		t.Error("Expected the touch drag to survive a mouse release")
	}
	rec.expect(t, "down B", "up B", "hit B")

	e.Dispatch(Event{Kind: EventTouchEnd, Position: p})
	if e.Dragging() {
		t.Error("Expected the touch release to end the drag")
	}
}

func TestPointer_MouseAndTouchTrackedSeparately(t *testing.T) {
	e, _, _, a, b := twoWidgets(t)

	down(e, 10, 10)
	p := Vec2{X: 150, Y: 10}
	e.Dispatch(Event{Kind: EventTouchStart, Position: p, Touches: []Touch{{ID: 1, Position: p}}})

	if o := e.Pointer(PointerMouse).Origin; o != a {
		t.Errorf("Expected mouse origin A, got %v", o)
	}
	if o := e.Pointer(PointerTouch).Origin; o != b {
		t.Errorf("Expected touch origin B, got %v", o)
	}
}
