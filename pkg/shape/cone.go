package shape

import (
	"math"

	"github.com/chazu/scatter/pkg/geom"
)

// Cone is a solid right circular cone with its base in the z=0 plane
// of its frame and the apex at base + height along Z.
type Cone struct {
	base    geom.Vec3 // center of the base disk
	radius  float64
	height  float64
	measure float64
}

// NewCone constructs a cone from its base center, base radius and
// height. Non-positive radius or height yields a degenerate shape.
func NewCone(base geom.Vec3, radius, height float64) *Cone {
	c := &Cone{base: base, radius: radius, height: height}
	if radius > 0 && height > 0 {
		c.measure = math.Pi * radius * radius * height / 3
	}
	return c
}

// Sample draws uniformly by volume. Volume accumulates cubically with
// distance from the apex (the cross-section radius grows linearly), so
// that distance takes the cube-root transform; the cross-section disk
// then takes the usual sqrt radius.
func (c *Cone) Sample(src Source) (geom.Vec3, error) {
	if c.measure == 0 {
		return c.Center(), nil
	}
	s := math.Cbrt(src.Float64()) // distance from apex as a fraction of height
	r := c.radius * s * math.Sqrt(src.Float64())
	theta := uniform(src, 0, twoPi)
	sin, cos := math.Sincos(theta)
	return geom.Vec3{
		X: c.base.X + r*cos,
		Y: c.base.Y + r*sin,
		Z: c.base.Z + c.height*(1-s),
	}, nil
}

// Contains reports whether p lies inside the cone.
func (c *Cone) Contains(p geom.Vec3, eps float64) bool {
	if c.measure == 0 {
		return p.Distance(c.Center()) <= eps
	}
	dz := p.Z - c.base.Z
	if dz < -eps || dz > c.height+eps {
		return false
	}
	// Cross-section radius at this height.
	limit := c.radius * (c.height - dz) / c.height
	return math.Hypot(p.X-c.base.X, p.Y-c.base.Y) <= limit+eps
}

// Measure returns the cone's volume.
func (c *Cone) Measure() float64 { return c.measure }

// Bounds returns the box around the base disk and apex.
func (c *Cone) Bounds() geom.Box {
	if c.measure == 0 {
		return geom.Box{Min: c.Center(), Max: c.Center()}
	}
	return geom.Box{
		Min: geom.Vec3{X: c.base.X - c.radius, Y: c.base.Y - c.radius, Z: c.base.Z},
		Max: geom.Vec3{X: c.base.X + c.radius, Y: c.base.Y + c.radius, Z: c.base.Z + c.height},
	}
}

// Center returns the cone's centroid, a quarter of the height above
// the base.
func (c *Cone) Center() geom.Vec3 {
	return geom.Vec3{X: c.base.X, Y: c.base.Y, Z: c.base.Z + c.height/4}
}
