package shape

import (
	"math"

	"github.com/chazu/scatter/pkg/geom"
)

// Triangle is a solid triangle, possibly tilted out of the z=0 plane.
type Triangle struct {
	a, b, c geom.Vec3
	ab, ac  geom.Vec3 // edge vectors from a
	normal  geom.Vec3 // unit plane normal; zero for degenerate triangles
	measure float64
}

// NewTriangle constructs a triangle from its three vertices. Collinear
// vertices yield a degenerate shape sampling the centroid.
func NewTriangle(a, b, c geom.Vec3) *Triangle {
	t := &Triangle{a: a, b: b, c: c, ab: b.Sub(a), ac: c.Sub(a)}
	cx := t.ab.Y*t.ac.Z - t.ab.Z*t.ac.Y
	cy := t.ab.Z*t.ac.X - t.ab.X*t.ac.Z
	cz := t.ab.X*t.ac.Y - t.ab.Y*t.ac.X
	twice := math.Sqrt(cx*cx + cy*cy + cz*cz)
	if twice > 0 {
		t.measure = twice / 2
		t.normal = geom.Vec3{X: cx / twice, Y: cy / twice, Z: cz / twice}
	}
	return t
}

// Sample draws uniformly by area using the barycentric fold: when the
// two variates land outside the simplex (u+v > 1) they are reflected
// back, which is exact and needs no rejection loop.
func (t *Triangle) Sample(src Source) (geom.Vec3, error) {
	if t.measure == 0 {
		return t.Center(), nil
	}
	u := src.Float64()
	v := src.Float64()
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	return t.a.Add(t.ab.Scale(u)).Add(t.ac.Scale(v)), nil
}

// Contains projects p onto the triangle's plane and tests the
// barycentric coordinates, requiring the out-of-plane distance to be
// within eps.
func (t *Triangle) Contains(p geom.Vec3, eps float64) bool {
	if t.measure == 0 {
		return p.Distance(t.Center()) <= eps
	}
	ap := p.Sub(t.a)
	if math.Abs(ap.Dot(t.normal)) > eps {
		return false
	}
	// Solve ap = u*ab + v*ac in the plane.
	d00 := t.ab.Dot(t.ab)
	d01 := t.ab.Dot(t.ac)
	d11 := t.ac.Dot(t.ac)
	d20 := ap.Dot(t.ab)
	d21 := ap.Dot(t.ac)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return false
	}
	u := (d11*d20 - d01*d21) / denom
	v := (d00*d21 - d01*d20) / denom
	return u >= -eps && v >= -eps && u+v <= 1+eps
}

// Measure returns the triangle's area.
func (t *Triangle) Measure() float64 { return t.measure }

// Bounds returns the vertex extents.
func (t *Triangle) Bounds() geom.Box {
	return geom.NewBox(t.a, t.b).Union(geom.NewBox(t.c, t.c))
}

// Center returns the centroid.
func (t *Triangle) Center() geom.Vec3 {
	return t.a.Add(t.b).Add(t.c).Scale(1.0 / 3.0)
}
