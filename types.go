package surface

// Vec2 represents a 2D vector for positions and offsets.
type Vec2 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Rect represents a rectangle with position and size.
type Rect struct {
	X float32 `json:"x" yaml:"x"` // Top-left position
	Y float32 `json:"y" yaml:"y"`
	W float32 `json:"w" yaml:"w"` // Width and height
	H float32 `json:"h" yaml:"h"`
}

// Unbounded is a range large enough to never reject or clamp a drag sample.
var Unbounded = Rect{X: -1e30, Y: -1e30, W: 2e30, H: 2e30}

// Contains returns true if the point is inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Encloses is like Contains but treats all four edges as inclusive.
// Drag ranges use it so that a range of [0,200] accepts 200.
func (r Rect) Encloses(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Clamp clamps each axis of p into the rectangle independently.
func (r Rect) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: clampf(p.X, r.X, r.X+r.W),
		Y: clampf(p.Y, r.Y, r.Y+r.H),
	}
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
