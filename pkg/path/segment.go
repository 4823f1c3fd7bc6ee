// Package path composes heterogeneous curve segments (lines, arcs,
// parametric curves) into a single shape with arc-length-uniform
// sampling across segment boundaries.
package path

import (
	"math"

	"github.com/chazu/scatter/pkg/geom"
)

// Segment is one piece of a path. The three variants are Line, Arc and
// Param; the unexported methods seal the set so the path sampler can
// rely on their inverse arc-length mappings.
type Segment interface {
	// length is the segment's Euclidean arc length, fixed at construction.
	length() float64
	// pointAtLength maps an arc-length offset in [0, length] to a point.
	pointAtLength(d float64) geom.Vec3
	// contains reports whether p lies on the segment within eps.
	contains(p geom.Vec3, eps float64) bool
	// bounds is an axis-aligned bound on the segment.
	bounds() geom.Box
}

// Line is a straight segment between two points.
type Line struct {
	start, end geom.Vec3
	len        float64
}

// NewLine constructs a straight segment from start to end.
func NewLine(start, end geom.Vec3) *Line {
	return &Line{start: start, end: end, len: start.Distance(end)}
}

func (l *Line) length() float64 { return l.len }

func (l *Line) pointAtLength(d float64) geom.Vec3 {
	if l.len == 0 {
		return l.start
	}
	t := d / l.len
	return l.start.Add(l.end.Sub(l.start).Scale(t))
}

func (l *Line) contains(p geom.Vec3, eps float64) bool {
	if l.len == 0 {
		return p.Distance(l.start) <= eps
	}
	dir := l.end.Sub(l.start)
	t := p.Sub(l.start).Dot(dir) / (l.len * l.len)
	t = math.Max(0, math.Min(1, t))
	return p.Distance(l.start.Add(dir.Scale(t))) <= eps
}

func (l *Line) bounds() geom.Box { return geom.NewBox(l.start, l.end) }

// Arc is a circular arc in the z=center.Z plane, swept from angle a0
// to a1. A wrapped range (a1 <= a0) gets a full turn added.
type Arc struct {
	center geom.Vec3
	radius float64
	a0, a1 float64
	len    float64
}

// NewArc constructs an arc around center with the given radius and
// angular span in radians.
func NewArc(center geom.Vec3, radius, a0, a1 float64) *Arc {
	if a1 <= a0 {
		a1 += 2 * math.Pi
	}
	a := &Arc{center: center, radius: radius, a0: a0, a1: a1}
	if radius > 0 {
		a.len = radius * (a1 - a0)
	}
	return a
}

func (a *Arc) length() float64 { return a.len }

func (a *Arc) pointAtLength(d float64) geom.Vec3 {
	if a.len == 0 {
		return a.center
	}
	theta := a.a0 + d/a.radius
	sin, cos := math.Sincos(theta)
	return geom.Vec3{X: a.center.X + a.radius*cos, Y: a.center.Y + a.radius*sin, Z: a.center.Z}
}

func (a *Arc) contains(p geom.Vec3, eps float64) bool {
	if a.len == 0 {
		return p.Distance(a.center) <= eps
	}
	if math.Abs(p.Z-a.center.Z) > eps {
		return false
	}
	dx := p.X - a.center.X
	dy := p.Y - a.center.Y
	r := math.Hypot(dx, dy)
	if math.Abs(r-a.radius) > eps {
		return false
	}
	if a.a1-a.a0 >= 2*math.Pi {
		return true
	}
	theta := math.Atan2(dy, dx)
	for theta < a.a0 {
		theta += 2 * math.Pi
	}
	// Angular tolerance scaled back to a distance along the arc.
	return theta <= a.a1+eps/math.Max(a.radius, 1)
}

func (a *Arc) bounds() geom.Box {
	return geom.BoxAround(a.center, 2*a.radius, 2*a.radius, 0)
}
