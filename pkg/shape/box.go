package shape

import (
	"math"

	"github.com/chazu/scatter/pkg/geom"
)

// Box is an axis-aligned solid rectangular volume.
type Box struct {
	center     geom.Vec3
	dx, dy, dz float64
	measure    float64
}

// NewBox constructs a box centered at center with full extents
// dx by dy by dz. Non-positive extents yield a degenerate shape.
func NewBox(center geom.Vec3, dx, dy, dz float64) *Box {
	b := &Box{center: center, dx: dx, dy: dy, dz: dz}
	if dx > 0 && dy > 0 && dz > 0 {
		b.measure = dx * dy * dz
	}
	return b
}

// NewCube constructs a cube with the given side length.
func NewCube(center geom.Vec3, side float64) *Box {
	return NewBox(center, side, side, side)
}

// Sample draws uniformly by volume.
func (b *Box) Sample(src Source) (geom.Vec3, error) {
	if b.measure == 0 {
		return b.center, nil
	}
	return geom.Vec3{
		X: b.center.X + (src.Float64()-0.5)*b.dx,
		Y: b.center.Y + (src.Float64()-0.5)*b.dy,
		Z: b.center.Z + (src.Float64()-0.5)*b.dz,
	}, nil
}

// Contains reports whether p lies inside the box.
func (b *Box) Contains(p geom.Vec3, eps float64) bool {
	if b.measure == 0 {
		return p.Distance(b.center) <= eps
	}
	return math.Abs(p.X-b.center.X) <= b.dx/2+eps &&
		math.Abs(p.Y-b.center.Y) <= b.dy/2+eps &&
		math.Abs(p.Z-b.center.Z) <= b.dz/2+eps
}

// Measure returns the box's volume.
func (b *Box) Measure() float64 { return b.measure }

// Bounds returns the box itself.
func (b *Box) Bounds() geom.Box {
	if b.measure == 0 {
		return geom.Box{Min: b.center, Max: b.center}
	}
	return geom.BoxAround(b.center, b.dx, b.dy, b.dz)
}

// Center returns the box center.
func (b *Box) Center() geom.Vec3 { return b.center }
