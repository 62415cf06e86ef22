// Package geom provides the point and rectangle types shared by the layout,
// surface and docking packages. Coordinates are terminal cells but kept as
// float64 so sub-cell thresholds and proportional zones stay exact.
package geom

import "fmt"

// Point is a position in either screen or surface-local space.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Size is a width/height pair.
type Size struct {
	W float64
	H float64
}

// IsZero reports whether either dimension is non-positive.
func (s Size) IsZero() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an axis-aligned rectangle. It spans [X, X+W) and [Y, Y+H).
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Inset shrinks r by n on every side. The result never has negative size.
func (r Rect) Inset(n float64) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Relative returns p expressed as fractions of r's width and height, with
// (0,0) at the top-left corner and (1,1) at the bottom-right.
func (r Rect) Relative(p Point) (fx, fy float64) {
	if r.W > 0 {
		fx = (p.X - r.X) / r.W
	}
	if r.H > 0 {
		fy = (p.Y - r.Y) / r.H
	}
	return fx, fy
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.W, r.H)
}
