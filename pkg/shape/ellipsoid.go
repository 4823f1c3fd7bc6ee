package shape

import (
	"math"

	"github.com/chazu/scatter/pkg/geom"
)

// EllipsoidSector is the general 3D radial primitive: an ellipsoidal
// wedge with an optional concentric cavity, bounded by an azimuth sweep
// and a polar band. Spheres, balls, shells and domes are constructed
// from it.
type EllipsoidSector struct {
	center     geom.Vec3
	rx, ry, rz float64
	inner      float64 // cavity radius as a fraction of the outer radius, in [0,1)
	a0, a1     float64 // azimuth sweep, a1 > a0
	p0, p1     float64 // polar band measured from +Z, 0 <= p0 < p1 <= π
	cos0, cos1 float64 // cos(p0), cos(p1); cos0 > cos1
	measure    float64
}

// NewEllipsoidSector constructs the general form. Non-positive
// semi-axes or an empty polar band yield a degenerate shape.
func NewEllipsoidSector(center geom.Vec3, rx, ry, rz, inner, a0, a1, p0, p1 float64) *EllipsoidSector {
	a0, a1 = normalizeSweep(a0, a1)
	inner = math.Max(0, math.Min(inner, 1))
	p0 = math.Max(0, math.Min(p0, math.Pi))
	p1 = math.Max(0, math.Min(p1, math.Pi))
	if p1 < p0 {
		p0, p1 = p1, p0
	}
	e := &EllipsoidSector{
		center: center,
		rx:     rx, ry: ry, rz: rz,
		inner: inner,
		a0:    a0, a1: a1,
		p0: p0, p1: p1,
		cos0: math.Cos(p0), cos1: math.Cos(p1),
	}
	if rx > 0 && ry > 0 && rz > 0 && p1 > p0 {
		// Volume of the wedge: ∫ r² dr over the radial band, times the
		// solid angle (Δazimuth · Δcosφ).
		e.measure = (rx * ry * rz / 3) * (a1 - a0) * (e.cos0 - e.cos1) * (1 - inner*inner*inner)
	}
	return e
}

// NewSphere constructs a solid ball of the given radius.
func NewSphere(center geom.Vec3, r float64) *EllipsoidSector {
	return NewEllipsoidSector(center, r, r, r, 0, 0, twoPi, 0, math.Pi)
}

// NewShell constructs a hollow spherical shell between radii r0 and r1.
func NewShell(center geom.Vec3, r0, r1 float64) *EllipsoidSector {
	if r1 <= 0 {
		return NewEllipsoidSector(center, r1, r1, r1, 0, 0, twoPi, 0, math.Pi)
	}
	return NewEllipsoidSector(center, r1, r1, r1, r0/r1, 0, twoPi, 0, math.Pi)
}

// NewEllipsoid constructs a full solid ellipsoid with the given semi-axes.
func NewEllipsoid(center geom.Vec3, rx, ry, rz float64) *EllipsoidSector {
	return NewEllipsoidSector(center, rx, ry, rz, 0, 0, twoPi, 0, math.Pi)
}

// NewSphereSector constructs a spherical wedge bounded by azimuth
// [a0,a1] and polar band [p0,p1].
func NewSphereSector(center geom.Vec3, r, a0, a1, p0, p1 float64) *EllipsoidSector {
	return NewEllipsoidSector(center, r, r, r, 0, a0, a1, p0, p1)
}

// Sample draws uniformly by volume: cube-root radial transform for the
// r² density, uniform cos(φ) for the polar angle (solid angle is
// proportional to Δcosφ, so interpolating φ itself would clump samples
// at the poles), linear azimuth.
func (e *EllipsoidSector) Sample(src Source) (geom.Vec3, error) {
	if e.measure == 0 {
		return e.center, nil
	}
	k3 := e.inner * e.inner * e.inner
	t := math.Cbrt(uniform(src, k3, 1))
	cosPhi := uniform(src, e.cos1, e.cos0)
	sinPhi := math.Sqrt(math.Max(0, 1-cosPhi*cosPhi))
	theta := uniform(src, e.a0, e.a1)
	sin, cos := math.Sincos(theta)
	return geom.Vec3{
		X: e.center.X + e.rx*t*sinPhi*cos,
		Y: e.center.Y + e.ry*t*sinPhi*sin,
		Z: e.center.Z + e.rz*t*cosPhi,
	}, nil
}

// Contains tests membership in the normalized (unit-ball) frame.
func (e *EllipsoidSector) Contains(p geom.Vec3, eps float64) bool {
	if e.measure == 0 {
		return p.Distance(e.center) <= eps
	}
	nx := (p.X - e.center.X) / e.rx
	ny := (p.Y - e.center.Y) / e.ry
	nz := (p.Z - e.center.Z) / e.rz
	t := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if t > 1+eps || t < e.inner-eps {
		return false
	}
	if t <= eps {
		return e.inner == 0 && e.cos0-e.cos1 >= 2-eps && e.a1-e.a0 >= twoPi-eps
	}
	cosPhi := nz / t
	if cosPhi > e.cos0+eps || cosPhi < e.cos1-eps {
		return false
	}
	if math.Hypot(nx, ny) <= eps {
		// On the polar axis the azimuth is undefined.
		return e.a1-e.a0 >= twoPi-eps
	}
	return angleWithin(math.Atan2(ny, nx), e.a0, e.a1, eps)
}

// Measure returns the wedge's volume.
func (e *EllipsoidSector) Measure() float64 { return e.measure }

// Bounds returns the full-ellipsoid box.
func (e *EllipsoidSector) Bounds() geom.Box {
	if e.measure == 0 {
		return geom.Box{Min: e.center, Max: e.center}
	}
	return geom.BoxAround(e.center, 2*e.rx, 2*e.ry, 2*e.rz)
}

// Center returns the ellipsoid center.
func (e *EllipsoidSector) Center() geom.Vec3 { return e.center }
