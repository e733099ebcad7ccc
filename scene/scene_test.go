package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-theft-auto/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const formScene = `
size: {x: 400, y: 300}
widgets:
  - name: panel
    group: true
    rect: {x: 0, y: 0, w: 200, h: 300}
    default_action: ok
  - name: ok
    parent: panel
    rect: {x: 10, y: 10, w: 80, h: 30}
  - name: cancel
    parent: panel
    rect: {x: 100, y: 10, w: 80, h: 30}
  - name: handle
    rect: {x: 250, y: 50, w: 40, h: 40}
    drag:
      input: {x: -100, y: -100, w: 200, h: 200}
      target: {x: -50, y: 0, w: 100, h: 0}
`

func parseScene(t *testing.T, src string, opts ...Option) *Scene {
	t.Helper()
	var doc Doc
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	s, err := New(doc, opts...)
	require.NoError(t, err)
	return s
}

func newEngine(t *testing.T, s *Scene) *Runner {
	t.Helper()
	host := surface.NewManualHost()
	e, err := surface.NewEngine(
		surface.WithRoot(s.Root()),
		surface.WithSurface(s),
		surface.WithHost(host),
	)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	s.Attach(e)
	return &Runner{Scene: s, Engine: e, Host: host}
}

func run(t *testing.T, r *Runner, script string) []StepResult {
	t.Helper()
	steps, err := ParseScript([]byte(script))
	require.NoError(t, err)
	results, err := r.Run(steps)
	require.NoError(t, err)
	return results
}

func TestNew_BuildsTree(t *testing.T) {
	s := parseScene(t, formScene)

	ok := s.Widget("ok")
	require.NotNil(t, ok)
	assert.True(t, ok.Interactive())
	assert.Equal(t, s.Widget("panel"), ok.Container())
	assert.Nil(t, s.Root().Container())
	assert.False(t, s.Widget("panel").Interactive())

	names := []string{}
	for _, w := range s.Root().Children() {
		names = append(names, s.NameOf(w))
	}
	assert.Equal(t, []string{"panel", "handle"}, names)
	assert.Equal(t, "ok", s.NameOf(s.Widget("panel").(*Group).DefaultAction()))
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"duplicate", `widgets: [{name: a}, {name: a}]`},
		{"reserved root", `widgets: [{name: root}]`},
		{"missing name", `widgets: [{rect: {w: 1, h: 1}}]`},
		{"unknown parent", `widgets: [{name: a, parent: nope}]`},
		{"leaf parent", `widgets: [{name: a}, {name: b, parent: a}]`},
		{"cycle", `widgets: [{name: a, group: true, parent: b}, {name: b, group: true, parent: a}]`},
		{"defaults on leaf", `widgets: [{name: a, loop: true}]`},
		{"unknown default", `widgets: [{name: a, group: true, default_focus: b}]`},
		{"dragged group", `widgets: [{name: a, group: true, drag: {}}]`},
		{"mask without cache", `widgets: [{name: a, mask: a.png, rect: {w: 4, h: 4}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Doc
			require.NoError(t, yaml.Unmarshal([]byte(tt.src), &doc))
			_, err := New(doc)
			assert.ErrorIs(t, err, ErrInvalidScene)
		})
	}
}

func TestRunner_HitAndHover(t *testing.T) {
	s := parseScene(t, formScene)
	r := newEngine(t, s)

	results := run(t, r, `
- {op: pointer-move, x: 20, y: 20}
- {op: frame, count: 2}
- {op: pointer-down, x: 20, y: 20}
- {op: pointer-up, x: 21, y: 20}
`)

	require.Len(t, results, 4)
	assert.Equal(t, "[pointer-over ok]", Summary(results[0].Calls))
	assert.Equal(t, "[render ok, recalculate ok]", Summary(results[1].Calls))
	assert.Equal(t, "[pointer-down ok]", Summary(results[2].Calls))
	assert.Equal(t, "[pointer-up ok, hit ok]", Summary(results[3].Calls))
	assert.Equal(t, Call{Widget: "ok", Event: "pointer-down", X: 10, Y: 10}, results[2].Calls[0])
}

func TestRunner_DoubleHit(t *testing.T) {
	s := parseScene(t, formScene)
	r := newEngine(t, s)

	results := run(t, r, `
- {op: pointer-down, x: 20, y: 20}
- {op: pointer-up, x: 20, y: 20}
- {op: wait, for: 200ms}
- {op: pointer-down, x: 20, y: 20}
- {op: pointer-up, x: 20, y: 20}
`)

	assert.Equal(t, "[pointer-up ok, hit ok, double-hit ok]", Summary(results[4].Calls))
}

func TestRunner_TabTraversalAndActivate(t *testing.T) {
	s := parseScene(t, formScene)
	r := newEngine(t, s)

	results := run(t, r, `
- {op: key-down, key: tab}
- {op: key-down, key: enter}
- {op: key-down, key: tab}
- {op: key-down, key: tab}
- {op: key-down, key: tab, mods: [shift]}
- {op: key-down, key: esc}
`)

	focused := []string{}
	for _, res := range results {
		focused = append(focused, res.Focused)
	}
	assert.Equal(t, []string{"ok", "ok", "cancel", "handle", "cancel", "cancel"}, focused)
	assert.Equal(t, "[focus-in ok]", Summary(results[0].Calls))
	assert.Equal(t, "[activate ok]", Summary(results[1].Calls))
	assert.Equal(t, Call{Widget: "cancel", Event: "key-down", Key: "Esc"}, results[5].Calls[0])
	assert.Equal(t, 2, s.Widget("cancel").(*Node).NativeFocus())
}

func TestRunner_Drag(t *testing.T) {
	s := parseScene(t, formScene)
	r := newEngine(t, s)

	results := run(t, r, `
- {op: pointer-down, x: 260, y: 60}
- {op: pointer-move, x: 300, y: 200}
- {op: pointer-move, x: 300, y: 70}
- {op: pointer-move, x: 500, y: 70}
- {op: pointer-up, x: 500, y: 70}
`)

	handle := s.Widget("handle").(*Node)
	assert.True(t, results[0].Dragging)
	assert.Empty(t, results[1].Calls, "a sample outside the input range is dropped")
	assert.Equal(t, surface.Rect{X: 290, Y: 50, W: 40, H: 40}, handle.Rect())
	assert.False(t, results[4].Dragging)
	assert.Equal(t, "[drag-end handle]", Summary(results[4].Calls))
	assert.Equal(t, float32(290), results[4].Calls[0].X)
}

func TestRunner_Touch(t *testing.T) {
	s := parseScene(t, formScene)
	r := newEngine(t, s)

	results := run(t, r, `
- {op: touch-start, x: 110, y: 20, touches: [{id: 1, x: 110, y: 20}]}
- {op: touch-end, x: 110, y: 20}
`)

	assert.Equal(t, "[pointer-down cancel]", Summary(results[0].Calls))
	assert.Equal(t, "[pointer-up cancel, hit cancel]", Summary(results[1].Calls))
}

func TestRunner_DestroyedWidgets(t *testing.T) {
	s := parseScene(t, formScene)
	r := newEngine(t, s)

	run(t, r, `
- {op: focus, widget: ok}
- {op: destroy, widget: panel}
`)

	assert.Nil(t, r.Engine.Focused())
	assert.False(t, s.Widget("cancel").Alive())
	hit := r.Engine.Resolve(surface.Vec2{X: 20, Y: 20})
	assert.Equal(t, s.Root(), hit.Widget)
}

func TestRunner_StopsAtFailingStep(t *testing.T) {
	s := parseScene(t, formScene)
	r := newEngine(t, s)

	steps, err := ParseScript([]byte(`
- {op: pointer-move, x: 20, y: 20}
- {op: wheel}
- {op: pointer-move, x: 30, y: 20}
`))
	require.NoError(t, err)

	results, err := r.Run(steps)
	require.Error(t, err)
	assert.ErrorIs(t, err, surface.ErrUnknownEvent)
	require.Len(t, results, 2)
	assert.NotEmpty(t, results[1].Error)
}

func TestParseScript_Errors(t *testing.T) {
	_, err := ParseScript([]byte(``))
	assert.Error(t, err)

	_, err = ParseScript([]byte(`- {op: wait, for: soon}`))
	assert.Error(t, err)

	_, err = Step{Op: "key-down", Mods: []string{"hyper"}}.Event()
	assert.Error(t, err)
}

func TestMask_HitFallsThrough(t *testing.T) {
	dir := t.TempDir()
	writeHalfMask(t, filepath.Join(dir, "half.png"))

	mc, err := NewMaskCache(4)
	require.NoError(t, err)
	sceneFile := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(sceneFile, []byte(`
size: {x: 200, y: 200}
widgets:
  - name: below
    rect: {x: 0, y: 0, w: 100, h: 100}
  - name: sticker
    rect: {x: 0, y: 0, w: 100, h: 100}
    mask: half.png
  - name: twin
    rect: {x: 100, y: 100, w: 100, h: 100}
    mask: half.png
`), 0o644))

	s, err := Load(sceneFile, WithMasks(mc))
	require.NoError(t, err)
	r := newEngine(t, s)

	assert.Equal(t, s.Widget("sticker"), r.Engine.Resolve(surface.Vec2{X: 20, Y: 50}).Widget)
	assert.Equal(t, s.Widget("below"), r.Engine.Resolve(surface.Vec2{X: 80, Y: 50}).Widget)
	assert.Equal(t, 1, mc.Len(), "equal sizes share one cached mask")
}

func TestSnapshot(t *testing.T) {
	s := parseScene(t, formScene)

	img := s.Snapshot(s.Widget("ok"))

	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds())
	assert.Equal(t, snapshotFill, img.RGBAAt(85, 38))
	assert.Equal(t, snapshotFocus, img.RGBAAt(10, 10))
	assert.Equal(t, snapshotBackground, img.RGBAAt(399, 299))
}

// writeHalfMask writes a 10x10 PNG whose left half is opaque.
func writeHalfMask(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			img.Set(x, y, color.NRGBA{A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// stripes is opaque on even multiples of ten along x.
type stripes struct{}

func (stripes) OpaqueAt(p surface.Vec2) bool { return int(p.X)/10%2 == 0 }

func TestProbe_DecidesUnmaskedOpaqueHits(t *testing.T) {
	s := parseScene(t, `
size: {x: 100, y: 100}
widgets:
  - name: below
    rect: {x: 0, y: 0, w: 100, h: 100}
  - name: glass
    rect: {x: 0, y: 0, w: 100, h: 100}
    opaque_hit: true
`, WithProbe(stripes{}))
	r := newEngine(t, s)

	assert.Equal(t, s.Widget("glass"), r.Engine.Resolve(surface.Vec2{X: 5, Y: 5}).Widget)
	assert.Equal(t, s.Widget("below"), r.Engine.Resolve(surface.Vec2{X: 15, Y: 5}).Widget)
}
