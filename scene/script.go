package scene

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-theft-auto/surface"
	"gopkg.in/yaml.v3"
)

// Step is one line of an input script.
//
//	- {op: pointer-down, x: 20, y: 20}
//	- {op: wait, for: 300ms}
//	- {op: key-down, key: tab, mods: [shift]}
//	- {op: frame, count: 2}
//
// Ops are the event kind names (pointer-down, touch-start, key-down,
// resize, ...) plus the script directives wait, frame, focus, destroy and
// reset.
type Step struct {
	Op      string           `yaml:"op" json:"op"`
	X       float32          `yaml:"x,omitempty" json:"x,omitempty"`
	Y       float32          `yaml:"y,omitempty" json:"y,omitempty"`
	Button  int              `yaml:"button,omitempty" json:"button,omitempty"`
	Touches []TouchDoc       `yaml:"touches,omitempty" json:"touches,omitempty"`
	Key     string           `yaml:"key,omitempty" json:"key,omitempty"`
	Mods    []string         `yaml:"mods,omitempty" json:"mods,omitempty"`
	W       float32          `yaml:"w,omitempty" json:"w,omitempty"`
	H       float32          `yaml:"h,omitempty" json:"h,omitempty"`
	For     surface.Duration `yaml:"for,omitempty" json:"for,omitempty"`
	Count   int              `yaml:"count,omitempty" json:"count,omitempty"`
	Widget  string           `yaml:"widget,omitempty" json:"widget,omitempty"`
}

// TouchDoc is an active touch point in a step.
type TouchDoc struct {
	ID int     `yaml:"id" json:"id"`
	X  float32 `yaml:"x" json:"x"`
	Y  float32 `yaml:"y" json:"y"`
}

// StepResult is what one step produced.
type StepResult struct {
	Step     int    `yaml:"step" json:"step"`
	Op       string `yaml:"op" json:"op"`
	Calls    []Call `yaml:"calls,omitempty" json:"calls,omitempty"`
	Focused  string `yaml:"focused,omitempty" json:"focused,omitempty"`
	Dragging bool   `yaml:"dragging,omitempty" json:"dragging,omitempty"`
	Error    string `yaml:"error,omitempty" json:"error,omitempty"`
}

// LoadScript reads a YAML list of steps.
func LoadScript(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript parses a YAML list of steps.
func ParseScript(data []byte) ([]Step, error) {
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	return steps, nil
}

// Runner plays scripts against an engine driven by a ManualHost.
type Runner struct {
	Scene  *Scene
	Engine *surface.Engine
	Host   *surface.ManualHost
}

// Run executes steps in order. It stops at the first failing step; the
// results up to and including that step are returned with the error.
func (r *Runner) Run(steps []Step) ([]StepResult, error) {
	results := make([]StepResult, 0, len(steps))
	for i, step := range steps {
		err := r.apply(step)
		results = append(results, r.Scene.Result(r.Engine, i+1, step.Op, err))
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return results, nil
}

func (r *Runner) apply(step Step) error {
	switch step.Op {
	case "wait":
		r.Host.Advance(time.Duration(step.For))
		return nil
	case "frame":
		for i := 0; i < step.Frames(); i++ {
			r.Host.Frame()
		}
		return nil
	}
	return r.Scene.Apply(r.Engine, step)
}

// Frames returns how many frames a frame step waits for.
func (s Step) Frames() int {
	if s.Count <= 0 {
		return 1
	}
	return s.Count
}

// Apply performs a step that does not involve the clock: an input event
// or one of the focus, destroy and reset directives.
func (s *Scene) Apply(e *surface.Engine, step Step) error {
	switch step.Op {
	case "focus":
		w := s.Widget(step.Widget)
		if w == nil {
			return fmt.Errorf("%w: unknown widget %q", ErrInvalidScene, step.Widget)
		}
		e.SetFocus(w)
		return nil
	case "destroy":
		return s.Destroy(step.Widget)
	case "reset":
		e.Reset()
		return nil
	}

	ev, err := step.Event()
	if err != nil {
		return err
	}
	return e.Dispatch(ev)
}

// Result drains the calls recorded since the last drain into the result
// of step number n.
func (s *Scene) Result(e *surface.Engine, n int, op string, err error) StepResult {
	res := StepResult{
		Step:     n,
		Op:       op,
		Calls:    s.Drain(),
		Focused:  s.NameOf(e.Focused()),
		Dragging: e.Dragging(),
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// Event converts an event step into an engine event.
func (s Step) Event() (surface.Event, error) {
	kind, err := surface.ParseEventKind(s.Op)
	if err != nil {
		return surface.Event{}, err
	}
	ev := surface.Event{
		Kind:     kind,
		Position: surface.Vec2{X: s.X, Y: s.Y},
		Button:   surface.MouseButton(s.Button),
		Size:     surface.Vec2{X: s.W, Y: s.H},
	}
	for _, t := range s.Touches {
		ev.Touches = append(ev.Touches, surface.Touch{ID: t.ID, Position: surface.Vec2{X: t.X, Y: t.Y}})
	}
	if s.Key != "" {
		if ev.Key, err = surface.ParseKey(s.Key); err != nil {
			return surface.Event{}, err
		}
	}
	if ev.Modifiers, err = parseMods(s.Mods); err != nil {
		return surface.Event{}, err
	}
	return ev, nil
}

func parseMods(names []string) (surface.Modifiers, error) {
	var mods surface.Modifiers
	for _, name := range names {
		switch strings.ToLower(name) {
		case "shift":
			mods |= surface.ModShift
		case "ctrl":
			mods |= surface.ModCtrl
		case "alt":
			mods |= surface.ModAlt
		case "super":
			mods |= surface.ModSuper
		default:
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
	}
	return mods, nil
}
