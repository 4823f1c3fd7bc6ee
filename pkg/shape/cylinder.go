package shape

import (
	"math"

	"github.com/chazu/scatter/pkg/geom"
)

// Cylinder is a solid cylinder (or tube, or wedge of either) with its
// axis along Z. The height coordinate is uniform and the cross-section
// uses the annular disk sampler.
type Cylinder struct {
	center  geom.Vec3 // centroid of the cylinder
	radius  float64
	height  float64
	inner   float64 // hole radius as a fraction of the outer radius, in [0,1)
	a0, a1  float64 // azimuth sweep, a1 > a0
	measure float64
}

// NewCylinderSector constructs the general form.
func NewCylinderSector(center geom.Vec3, radius, height, inner, a0, a1 float64) *Cylinder {
	a0, a1 = normalizeSweep(a0, a1)
	inner = math.Max(0, math.Min(inner, 1))
	c := &Cylinder{center: center, radius: radius, height: height, inner: inner, a0: a0, a1: a1}
	if radius > 0 && height > 0 {
		c.measure = 0.5 * radius * radius * (a1 - a0) * (1 - inner*inner) * height
	}
	return c
}

// NewCylinder constructs a full solid cylinder.
func NewCylinder(center geom.Vec3, radius, height float64) *Cylinder {
	return NewCylinderSector(center, radius, height, 0, 0, twoPi)
}

// NewTube constructs a hollow cylinder with inner radius r0.
func NewTube(center geom.Vec3, r0, r1, height float64) *Cylinder {
	if r1 <= 0 {
		return NewCylinderSector(center, r1, height, 0, 0, twoPi)
	}
	return NewCylinderSector(center, r1, height, r0/r1, 0, twoPi)
}

// Sample draws uniformly by volume: linear height, sqrt-transformed
// radius, linear azimuth.
func (c *Cylinder) Sample(src Source) (geom.Vec3, error) {
	if c.measure == 0 {
		return c.center, nil
	}
	k2 := c.inner * c.inner
	r := c.radius * math.Sqrt(uniform(src, k2, 1))
	theta := uniform(src, c.a0, c.a1)
	sin, cos := math.Sincos(theta)
	return geom.Vec3{
		X: c.center.X + r*cos,
		Y: c.center.Y + r*sin,
		Z: c.center.Z + (src.Float64()-0.5)*c.height,
	}, nil
}

// Contains reports whether p lies inside the cylinder.
func (c *Cylinder) Contains(p geom.Vec3, eps float64) bool {
	if c.measure == 0 {
		return p.Distance(c.center) <= eps
	}
	if math.Abs(p.Z-c.center.Z) > c.height/2+eps {
		return false
	}
	dx := p.X - c.center.X
	dy := p.Y - c.center.Y
	r := math.Hypot(dx, dy)
	if r > c.radius+eps || r < c.inner*c.radius-eps {
		return false
	}
	if r <= eps {
		return c.inner == 0 && c.a1-c.a0 >= twoPi-eps
	}
	return angleWithin(math.Atan2(dy, dx), c.a0, c.a1, eps)
}

// Measure returns the cylinder's volume.
func (c *Cylinder) Measure() float64 { return c.measure }

// Bounds returns the full-cylinder box.
func (c *Cylinder) Bounds() geom.Box {
	if c.measure == 0 {
		return geom.Box{Min: c.center, Max: c.center}
	}
	return geom.BoxAround(c.center, 2*c.radius, 2*c.radius, c.height)
}

// Center returns the cylinder centroid.
func (c *Cylinder) Center() geom.Vec3 { return c.center }
