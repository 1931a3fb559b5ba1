// Package geom provides the 2D vector and rectangle primitives shared by
// layout, hit-testing and draw-list emission. Rectangles are axis-aligned,
// positive-size, with Y growing downward (matching the 2D projection).
package geom

import "math"

type Vec2 struct {
	X, Y float32
}

func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

// Splat returns a vector with both components set to v.
func Splat(v float32) Vec2 { return Vec2{X: v, Y: v} }

func (v Vec2) Add(o Vec2) Vec2          { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2          { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) AddScalar(s float32) Vec2 { return Vec2{v.X + s, v.Y + s} }
func (v Vec2) Scale(s float32) Vec2     { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Min(o Vec2) Vec2 {
	return Vec2{minf(v.X, o.X), minf(v.Y, o.Y)}
}

func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{maxf(v.X, o.X), maxf(v.Y, o.Y)}
}

// Clamp limits each component to [min, max].
func (v Vec2) Clamp(min, max Vec2) Vec2 {
	return v.Max(min).Min(max)
}

func (v Vec2) Round() Vec2 {
	return Vec2{
		float32(math.Round(float64(v.X))),
		float32(math.Round(float64(v.Y))),
	}
}

// Rect is an axis-aligned rectangle. Width and Height are never negative;
// constructors clamp rather than reject to tolerate floating-point drift.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

func R(x, y, width, height float32) Rect {
	return Rect{X: x, Y: y, Width: maxf(width, 0), Height: maxf(height, 0)}
}

// FromPoints builds the rectangle spanning two arbitrary corner points.
func FromPoints(a, b Vec2) Rect {
	min := a.Min(b)
	size := a.Max(b).Sub(min)
	return Rect{X: min.X, Y: min.Y, Width: size.X, Height: size.Y}
}

func (r Rect) MinPoint() Vec2 { return Vec2{r.X, r.Y} }
func (r Rect) MaxPoint() Vec2 { return Vec2{r.X + r.Width, r.Y + r.Height} }
func (r Rect) MaxX() float32  { return r.X + r.Width }
func (r Rect) MaxY() float32  { return r.Y + r.Height }
func (r Rect) Size() Vec2     { return Vec2{r.Width, r.Height} }

func (r Rect) IsEmpty() bool { return r.Width == 0 || r.Height == 0 }

// Translate moves the rectangle without changing its size.
func (r Rect) Translate(v Vec2) Rect {
	return Rect{X: r.X + v.X, Y: r.Y + v.Y, Width: r.Width, Height: r.Height}
}

// Resize grows (or shrinks, clamped at zero) the size by amount.
func (r Rect) Resize(amount Vec2) Rect {
	return Rect{
		X:      r.X,
		Y:      r.Y,
		Width:  maxf(r.Width+amount.X, 0),
		Height: maxf(r.Height+amount.Y, 0),
	}
}

// Inset shrinks the rectangle by amount on all four sides. The result never
// escapes the original area and never has negative size.
func (r Rect) Inset(amount float32) Rect {
	return Rect{
		X:      minf(r.MaxX(), r.X+amount),
		Y:      minf(r.MaxY(), r.Y+amount),
		Width:  maxf(0, r.Width-2*amount),
		Height: maxf(0, r.Height-2*amount),
	}
}

// Offset grows the rectangle by amount on all four sides.
func (r Rect) Offset(amount float32) Rect {
	return Rect{
		X:      r.X - amount,
		Y:      r.Y - amount,
		Width:  maxf(r.Width+2*amount, 0),
		Height: maxf(r.Height+2*amount, 0),
	}
}

// ExtendByPoint grows the rectangle to contain point.
func (r Rect) ExtendByPoint(p Vec2) Rect {
	return FromPoints(r.MinPoint().Min(p), r.MaxPoint().Max(p))
}

// ExtendByRect grows the rectangle to contain other.
func (r Rect) ExtendByRect(o Rect) Rect {
	return FromPoints(r.MinPoint().Min(o.MinPoint()), r.MaxPoint().Max(o.MaxPoint()))
}

// ClampPoint moves p to lie inside the rectangle (onto its edge if outside).
func (r Rect) ClampPoint(p Vec2) Vec2 {
	return p.Clamp(r.MinPoint(), r.MaxPoint())
}

// ClampRect clamps other to fit inside this rectangle. Disjoint inputs
// produce a zero-area rectangle on this rectangle's edge.
func (r Rect) ClampRect(o Rect) Rect {
	return FromPoints(r.ClampPoint(o.MinPoint()), r.ClampPoint(o.MaxPoint()))
}

func (r Rect) ContainsPoint(p Vec2) bool {
	return r.X <= p.X && r.MaxX() >= p.X && r.Y <= p.Y && r.MaxY() >= p.Y
}

func (r Rect) ContainsRect(o Rect) bool {
	return r.X <= o.X && r.MaxX() >= o.MaxX() && r.Y <= o.Y && r.MaxY() >= o.MaxY()
}

func (r Rect) IntersectsRect(o Rect) bool {
	return r.X <= o.MaxX() && r.MaxX() >= o.X && r.Y <= o.MaxY() && r.MaxY() >= o.Y
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
