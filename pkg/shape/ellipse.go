package shape

import (
	"math"

	"github.com/chazu/scatter/pkg/geom"
)

// EllipseSector is the general 2D radial primitive: an elliptic sector
// with an optional inner hole, covering circles, rings, pie slices and
// full ellipses through its constructors. It lies in the z=0 plane of
// its own frame; wrap it in a Rotate decorator for tilted disks.
type EllipseSector struct {
	center  geom.Vec3
	rx, ry  float64
	inner   float64 // hole radius as a fraction of the outer radius, in [0,1)
	a0, a1  float64 // azimuth sweep, a1 > a0
	measure float64
}

// NewEllipseSector constructs the general form. rx/ry are the outer
// semi-axes, inner the hole fraction in [0,1), a0/a1 the sweep in
// radians (a wrapped range gets a full turn added). Non-positive
// semi-axes yield a degenerate shape sampling its center.
func NewEllipseSector(center geom.Vec3, rx, ry, inner, a0, a1 float64) *EllipseSector {
	center.Z = 0
	a0, a1 = normalizeSweep(a0, a1)
	inner = math.Max(0, math.Min(inner, 1))
	e := &EllipseSector{center: center, rx: rx, ry: ry, inner: inner, a0: a0, a1: a1}
	if rx > 0 && ry > 0 {
		// Area of an elliptic sector with a concentric hole.
		e.measure = 0.5 * rx * ry * (a1 - a0) * (1 - inner*inner)
	}
	return e
}

// NewEllipse constructs a full solid ellipse.
func NewEllipse(center geom.Vec3, rx, ry float64) *EllipseSector {
	return NewEllipseSector(center, rx, ry, 0, 0, twoPi)
}

// NewCircle constructs a solid disk of the given radius.
func NewCircle(center geom.Vec3, r float64) *EllipseSector {
	return NewEllipseSector(center, r, r, 0, 0, twoPi)
}

// NewRing constructs an annulus with inner radius r0 and outer radius r1.
func NewRing(center geom.Vec3, r0, r1 float64) *EllipseSector {
	if r1 <= 0 {
		return NewEllipseSector(center, r1, r1, 0, 0, twoPi)
	}
	return NewEllipseSector(center, r1, r1, r0/r1, 0, twoPi)
}

// NewCircleSector constructs a pie slice from a0 to a1 radians.
func NewCircleSector(center geom.Vec3, r, a0, a1 float64) *EllipseSector {
	return NewEllipseSector(center, r, r, 0, a0, a1)
}

// Sample draws uniformly by area. The radial fraction uses the
// sqrt transform (generalized for the hole) so samples do not clump at
// the center; azimuth is linear.
func (e *EllipseSector) Sample(src Source) (geom.Vec3, error) {
	if e.measure == 0 {
		return e.center, nil
	}
	k2 := e.inner * e.inner
	t := math.Sqrt(uniform(src, k2, 1))
	theta := uniform(src, e.a0, e.a1)
	sin, cos := math.Sincos(theta)
	return geom.Vec3{
		X: e.center.X + e.rx*t*cos,
		Y: e.center.Y + e.ry*t*sin,
	}, nil
}

// Contains tests membership in the normalized (unit-disk) frame, so
// the same parameterization governs sampling and containment.
func (e *EllipseSector) Contains(p geom.Vec3, eps float64) bool {
	if e.measure == 0 {
		return p.Distance(e.center) <= eps
	}
	if math.Abs(p.Z-e.center.Z) > eps {
		return false
	}
	nx := (p.X - e.center.X) / e.rx
	ny := (p.Y - e.center.Y) / e.ry
	t := math.Hypot(nx, ny)
	if t > 1+eps || t < e.inner-eps {
		return false
	}
	if t <= eps {
		// At the exact center the azimuth is undefined; only a
		// hole-free sector contains it.
		return e.inner == 0 && e.a1-e.a0 >= twoPi-eps
	}
	return angleWithin(math.Atan2(ny, nx), e.a0, e.a1, eps)
}

// Measure returns the sector's area.
func (e *EllipseSector) Measure() float64 { return e.measure }

// Bounds returns the full-ellipse box; for partial sweeps this
// overestimates, which is acceptable for broad-phase use.
func (e *EllipseSector) Bounds() geom.Box {
	if e.measure == 0 {
		return geom.Box{Min: e.center, Max: e.center}
	}
	return geom.BoxAround(e.center, 2*e.rx, 2*e.ry, 0)
}

// Center returns the ellipse center.
func (e *EllipseSector) Center() geom.Vec3 { return e.center }
