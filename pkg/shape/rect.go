package shape

import (
	"math"

	"github.com/chazu/scatter/pkg/geom"
)

// Rect is an axis-aligned solid rectangle in the z=0 plane.
type Rect struct {
	center  geom.Vec3
	dx, dy  float64
	measure float64
}

// NewRect constructs a rectangle centered at center with full extents
// dx by dy. Non-positive extents yield a degenerate shape.
func NewRect(center geom.Vec3, dx, dy float64) *Rect {
	center.Z = 0
	r := &Rect{center: center, dx: dx, dy: dy}
	if dx > 0 && dy > 0 {
		r.measure = dx * dy
	}
	return r
}

// NewSquare constructs a square with the given side length.
func NewSquare(center geom.Vec3, side float64) *Rect {
	return NewRect(center, side, side)
}

// Sample draws uniformly by area.
func (r *Rect) Sample(src Source) (geom.Vec3, error) {
	if r.measure == 0 {
		return r.center, nil
	}
	return geom.Vec3{
		X: r.center.X + (src.Float64()-0.5)*r.dx,
		Y: r.center.Y + (src.Float64()-0.5)*r.dy,
	}, nil
}

// Contains reports whether p lies inside the rectangle.
func (r *Rect) Contains(p geom.Vec3, eps float64) bool {
	if r.measure == 0 {
		return p.Distance(r.center) <= eps
	}
	return math.Abs(p.X-r.center.X) <= r.dx/2+eps &&
		math.Abs(p.Y-r.center.Y) <= r.dy/2+eps &&
		math.Abs(p.Z-r.center.Z) <= eps
}

// Measure returns the rectangle's area.
func (r *Rect) Measure() float64 { return r.measure }

// Bounds returns the rectangle itself as a planar box.
func (r *Rect) Bounds() geom.Box {
	if r.measure == 0 {
		return geom.Box{Min: r.center, Max: r.center}
	}
	return geom.BoxAround(r.center, r.dx, r.dy, 0)
}

// Center returns the rectangle center.
func (r *Rect) Center() geom.Vec3 { return r.center }
