package path

import (
	"math"
	"sort"

	"github.com/chazu/scatter/pkg/geom"
)

// DefaultLUTResolution is the number of chords used to approximate a
// parametric segment's arc length when no resolution is given.
const DefaultLUTResolution = 200

// Func is a parametric curve over t in [0, 1].
type Func func(t float64) geom.Vec3

// Param is a parametric curve segment. Its arc length has no closed
// form, so the constructor bakes a lookup table of cumulative chord
// lengths at evenly spaced t values. Sampling inverts the table by
// binary search, which keeps samples uniform in arc length even when
// the native parameter races through part of the curve. Containment is
// tested against the chord polyline, so its accuracy is bounded by the
// table resolution.
type Param struct {
	f      Func
	ts     []float64 // table parameter values, ts[0]=0 .. ts[n]=1
	pts    []geom.Vec3
	cum    []float64 // cumulative chord length up to pts[i]; monotone
	len    float64
	box    geom.Box
}

// NewParam constructs a parametric segment with the given lookup table
// resolution. resolution <= 0 selects DefaultLUTResolution.
func NewParam(f Func, resolution int) *Param {
	if resolution <= 0 {
		resolution = DefaultLUTResolution
	}
	n := resolution
	p := &Param{
		f:   f,
		ts:  make([]float64, n+1),
		pts: make([]geom.Vec3, n+1),
		cum: make([]float64, n+1),
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		p.ts[i] = t
		p.pts[i] = f(t)
		if i == 0 {
			p.box = geom.Box{Min: p.pts[0], Max: p.pts[0]}
		} else {
			p.cum[i] = p.cum[i-1] + p.pts[i].Distance(p.pts[i-1])
			p.box = p.box.Union(geom.Box{Min: p.pts[i], Max: p.pts[i]})
		}
	}
	p.len = p.cum[n]
	return p
}

func (p *Param) length() float64 { return p.len }

// pointAtLength binary-searches the cumulative table for the chord
// bracketing d, linearly interpolates the table parameter between the
// bracketing entries, and evaluates the curve there. The interpolation
// is an inverse-CDF step: it converts an arc-length target back into
// the native parameter.
func (p *Param) pointAtLength(d float64) geom.Vec3 {
	if p.len == 0 {
		return p.pts[0]
	}
	if d <= 0 {
		return p.pts[0]
	}
	if d >= p.len {
		return p.pts[len(p.pts)-1]
	}
	i := sort.SearchFloat64s(p.cum, d)
	// cum[i-1] < d <= cum[i] with i >= 1 here.
	span := p.cum[i] - p.cum[i-1]
	frac := 0.0
	if span > 0 {
		frac = (d - p.cum[i-1]) / span
	}
	t := p.ts[i-1] + frac*(p.ts[i]-p.ts[i-1])
	return p.f(t)
}

func (p *Param) contains(pt geom.Vec3, eps float64) bool {
	for i := 1; i < len(p.pts); i++ {
		if distToChord(pt, p.pts[i-1], p.pts[i]) <= eps {
			return true
		}
	}
	return false
}

func (p *Param) bounds() geom.Box { return p.box }

func distToChord(p, a, b geom.Vec3) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Distance(a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.Distance(a.Add(ab.Scale(t)))
}

// QuadBezier constructs a quadratic Bézier segment through control
// points p0, p1, p2.
func QuadBezier(p0, p1, p2 geom.Vec3, resolution int) *Param {
	return NewParam(func(t float64) geom.Vec3 {
		u := 1 - t
		return p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t))
	}, resolution)
}

// CubicBezier constructs a cubic Bézier segment through control points
// p0..p3.
func CubicBezier(p0, p1, p2, p3 geom.Vec3, resolution int) *Param {
	return NewParam(func(t float64) geom.Vec3 {
		u := 1 - t
		return p0.Scale(u * u * u).
			Add(p1.Scale(3 * u * u * t)).
			Add(p2.Scale(3 * u * t * t)).
			Add(p3.Scale(t * t * t))
	}, resolution)
}

// Helix constructs a helical segment around a vertical axis through
// center, climbing by pitch per turn.
func Helix(center geom.Vec3, radius, pitch, turns float64, resolution int) *Param {
	return NewParam(func(t float64) geom.Vec3 {
		theta := t * turns * 2 * math.Pi
		sin, cos := math.Sincos(theta)
		return geom.Vec3{
			X: center.X + radius*cos,
			Y: center.Y + radius*sin,
			Z: center.Z + t*turns*pitch,
		}
	}, resolution)
}
