// Package scene builds widget trees for the surface engine from YAML
// documents. Scene widgets record every callback they receive, which makes
// a scene plus a script of input events a replayable test fixture.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-theft-auto/surface"
	"gopkg.in/yaml.v3"
)

// RootName names the implicit group that holds the top-level widgets.
const RootName = "root"

// ErrInvalidScene is wrapped by every scene validation error.
var ErrInvalidScene = errors.New("invalid scene")

// Doc is the YAML form of a scene.
//
//	size: {x: 800, y: 600}
//	widgets:
//	  - name: panel
//	    group: true
//	    rect: {x: 0, y: 0, w: 400, h: 300}
//	    loop: true
//	    default_action: ok
//	  - name: ok
//	    parent: panel
//	    rect: {x: 10, y: 10, w: 80, h: 24}
type Doc struct {
	Size    surface.Vec2 `yaml:"size"`
	Widgets []WidgetDoc  `yaml:"widgets"`
}

// WidgetDoc describes one widget. Widgets are painted in document order,
// so later entries are on top. Rects are global.
type WidgetDoc struct {
	Name   string       `yaml:"name"`
	Parent string       `yaml:"parent,omitempty"`
	Rect   surface.Rect `yaml:"rect"`
	Group  bool         `yaml:"group,omitempty"`

	// Interactive defaults to true for leaves and false for groups.
	Interactive *bool `yaml:"interactive,omitempty"`
	OpaqueHit   bool  `yaml:"opaque_hit,omitempty"`
	Yields      bool  `yaml:"yields_focus_through,omitempty"`

	// Mask is an image whose alpha channel is the widget's shape. It is
	// scaled to the rect. Implies opaque_hit.
	Mask string `yaml:"mask,omitempty"`

	Drag *DragDoc `yaml:"drag,omitempty"`

	// Group settings.
	Loop          bool   `yaml:"loop,omitempty"`
	DefaultAction string `yaml:"default_action,omitempty"`
	DefaultFocus  string `yaml:"default_focus,omitempty"`
}

// DragDoc makes a leaf draggable. Both ranges are in pointer-delta space;
// a missing range is unbounded.
type DragDoc struct {
	Input  *surface.Rect `yaml:"input,omitempty"`
	Target *surface.Rect `yaml:"target,omitempty"`
}

// Option configures New.
type Option func(*Scene)

// WithMasks sets the cache used to load widget masks.
func WithMasks(mc *MaskCache) Option {
	return func(s *Scene) { s.masks = mc }
}

// Prober reports whether the rendered output is opaque at a global point.
type Prober interface {
	OpaqueAt(p surface.Vec2) bool
}

// WithProbe sets the prober consulted by opaque-hit widgets without a mask.
func WithProbe(p Prober) Option {
	return func(s *Scene) { s.probe = p }
}

// WithDir sets the directory mask paths are relative to.
func WithDir(dir string) Option {
	return func(s *Scene) { s.dir = dir }
}

// Scene is a widget tree plus the surface stack it paints. It implements
// surface.Surface.
type Scene struct {
	size   surface.Vec2
	root   *Group
	paint  []*base // bottom to top
	byName map[string]*base
	log    callLog
	engine *surface.Engine

	masks *MaskCache
	probe Prober
	dir   string
}

// Load reads a scene file. Masks are resolved relative to the file.
func Load(path string, opts ...Option) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var doc Doc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	opts = append([]Option{WithDir(filepath.Dir(path))}, opts...)
	return New(doc, opts...)
}

// New builds a scene from a document.
func New(doc Doc, opts ...Option) (*Scene, error) {
	s := &Scene{
		size:   doc.Size,
		byName: make(map[string]*base),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.root = &Group{}
	s.root.base = base{
		scene: s,
		self:  s.root,
		name:  RootName,
		id:    surface.NewID(0, RootName),
		rect:  surface.Rect{W: doc.Size.X, H: doc.Size.Y},

		// Background presses land on the root.
		interactive: true,
	}
	s.byName[RootName] = &s.root.base
	s.paint = append(s.paint, &s.root.base)

	groups := map[string]*Group{RootName: s.root}
	for i, wd := range doc.Widgets {
		if wd.Name == "" {
			return nil, fmt.Errorf("%w: widget %d has no name", ErrInvalidScene, i)
		}
		if _, dup := s.byName[wd.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate widget %q", ErrInvalidScene, wd.Name)
		}
		b, err := s.build(wd)
		if err != nil {
			return nil, err
		}
		if g, ok := b.self.(*Group); ok {
			groups[wd.Name] = g
		}
		s.byName[wd.Name] = b
		s.paint = append(s.paint, b)
	}

	// Parents may be declared after their children.
	for _, wd := range doc.Widgets {
		parentName := wd.Parent
		if parentName == "" {
			parentName = RootName
		}
		parent, ok := groups[parentName]
		if !ok {
			return nil, fmt.Errorf("%w: %q: parent %q is not a group", ErrInvalidScene, wd.Name, parentName)
		}
		b := s.byName[wd.Name]
		b.parent = parent
		parent.Add(b.self)
	}
	for _, wd := range doc.Widgets {
		if err := s.checkCycle(s.byName[wd.Name]); err != nil {
			return nil, err
		}
	}

	for _, wd := range doc.Widgets {
		if !wd.Group {
			if wd.Loop || wd.DefaultAction != "" || wd.DefaultFocus != "" {
				return nil, fmt.Errorf("%w: %q: loop and defaults need group: true", ErrInvalidScene, wd.Name)
			}
			continue
		}
		g := groups[wd.Name]
		g.SetLoop(wd.Loop)
		if wd.DefaultAction != "" {
			w, err := s.lookup(wd.DefaultAction)
			if err != nil {
				return nil, fmt.Errorf("%q default_action: %w", wd.Name, err)
			}
			g.SetDefaultAction(w)
		}
		if wd.DefaultFocus != "" {
			w, err := s.lookup(wd.DefaultFocus)
			if err != nil {
				return nil, fmt.Errorf("%q default_focus: %w", wd.Name, err)
			}
			g.SetDefaultFocus(w)
		}
	}
	return s, nil
}

func (s *Scene) build(wd WidgetDoc) (*base, error) {
	b := base{
		scene:       s,
		name:        wd.Name,
		id:          surface.NewID(0, wd.Name),
		rect:        wd.Rect,
		interactive: !wd.Group,
		opaqueHit:   wd.OpaqueHit,
		yields:      wd.Yields,
	}
	if wd.Interactive != nil {
		b.interactive = *wd.Interactive
	}
	if wd.Mask != "" {
		if s.masks == nil {
			return nil, fmt.Errorf("%w: %q has a mask but no mask cache is configured", ErrInvalidScene, wd.Name)
		}
		path := wd.Mask
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		mask, err := s.masks.Mask(path, int(wd.Rect.W), int(wd.Rect.H))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", wd.Name, err)
		}
		b.mask = mask
		b.opaqueHit = true
	}

	if wd.Group {
		if wd.Drag != nil {
			return nil, fmt.Errorf("%w: %q: groups cannot be dragged", ErrInvalidScene, wd.Name)
		}
		g := &Group{base: b}
		g.self = g
		return &g.base, nil
	}
	n := &Node{base: b, drag: wd.Drag}
	n.self = n
	return &n.base, nil
}

func (s *Scene) checkCycle(b *base) error {
	seen := map[*base]bool{b: true}
	for p := b.parent; p != nil; p = p.parent {
		if seen[&p.base] {
			return fmt.Errorf("%w: %q is its own ancestor", ErrInvalidScene, b.name)
		}
		seen[&p.base] = true
	}
	return nil
}

func (s *Scene) lookup(name string) (surface.Widget, error) {
	b, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown widget %q", ErrInvalidScene, name)
	}
	return b.self, nil
}

// Attach connects the scene to the engine its widgets call back into for
// invalidation and drags.
func (s *Scene) Attach(e *surface.Engine) {
	s.engine = e
}

// Root returns the implicit root group.
func (s *Scene) Root() *Group { return s.root }

// Size returns the scene size.
func (s *Scene) Size() surface.Vec2 { return s.size }

// Widget returns the widget called name, or nil.
func (s *Scene) Widget(name string) surface.Widget {
	w, err := s.lookup(name)
	if err != nil {
		return nil
	}
	return w
}

// NameOf returns the scene name of w, or "" for widgets of other scenes.
func (s *Scene) NameOf(w surface.Widget) string {
	if w == nil {
		return ""
	}
	for name, b := range s.byName {
		if b.id == w.ID() {
			return name
		}
	}
	return ""
}

// Destroy marks a widget and its descendants as destroyed. The engine
// drops them from every gesture and queue.
func (s *Scene) Destroy(name string) error {
	b, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%w: unknown widget %q", ErrInvalidScene, name)
	}
	b.dead = true
	if g, ok := b.self.(*Group); ok {
		for _, c := range g.Children() {
			if err := s.Destroy(s.NameOf(c)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ElementsAt returns the widgets whose rect contains p, topmost first.
func (s *Scene) ElementsAt(p surface.Vec2) []surface.Element {
	var out []surface.Element
	for i := len(s.paint) - 1; i >= 0; i-- {
		b := s.paint[i]
		if b.rect.Contains(p) {
			out = append(out, element{b})
		}
	}
	return out
}

// Calls returns the callbacks recorded so far.
func (s *Scene) Calls() []Call { return s.log.calls }

// Drain returns the recorded callbacks and clears the log.
func (s *Scene) Drain() []Call { return s.log.drain() }

func (s *Scene) invalidate(w surface.Widget) {
	if s.engine != nil {
		s.engine.Invalidate(w)
	}
}

func (s *Scene) startDrag(w surface.Widget, p surface.Vec2) {
	if s.engine == nil {
		return
	}
	if err := s.engine.StartDrag(w, p); err != nil {
		s.log.add(Call{Widget: s.NameOf(w), Event: "drag-error"})
	}
}

// element adapts a scene widget to the surface stack.
type element struct{ b *base }

func (e element) Widget() surface.Widget { return e.b.self }

func (e element) ToLocal(p surface.Vec2) surface.Vec2 {
	return surface.Vec2{X: p.X - e.b.rect.X, Y: p.Y - e.b.rect.Y}
}
