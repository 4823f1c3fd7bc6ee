package path

import (
	"sort"

	"github.com/chazu/scatter/pkg/geom"
	"github.com/chazu/scatter/pkg/shape"
)

// Path presents an ordered list of segments as one shape sampled
// uniformly by arc length. Drawing a point picks a target length along
// the whole path, binary-searches the segment prefix table for the
// owner, then asks the segment to invert the local offset; for
// parametric segments that is a second binary search over their own
// lookup table. The segment list is fixed at construction.
type Path struct {
	segs   []Segment
	prefix []float64 // cumulative segment lengths
	total  float64
	box    geom.Box
}

var _ shape.Shape = (*Path)(nil)

// New builds a path from the given segments in order. An empty or
// all-degenerate path samples its bounding-box center and has zero
// measure.
func New(segs ...Segment) *Path {
	p := &Path{
		segs:   segs,
		prefix: make([]float64, len(segs)),
	}
	for i, s := range segs {
		p.total += s.length()
		p.prefix[i] = p.total
		if i == 0 {
			p.box = s.bounds()
		} else {
			p.box = p.box.Union(s.bounds())
		}
	}
	return p
}

// Sample draws a point uniformly by arc length over the whole path.
func (p *Path) Sample(src shape.Source) (geom.Vec3, error) {
	if p.total == 0 {
		return p.box.Center(), nil
	}
	target := src.Float64() * p.total
	i := sort.SearchFloat64s(p.prefix, target)
	if i >= len(p.segs) {
		i = len(p.segs) - 1
	}
	local := target
	if i > 0 {
		local -= p.prefix[i-1]
	}
	return p.segs[i].pointAtLength(local), nil
}

// Contains reports whether p lies on any segment within eps.
func (p *Path) Contains(pt geom.Vec3, eps float64) bool {
	if p.total == 0 {
		return pt.Distance(p.box.Center()) <= eps
	}
	for _, s := range p.segs {
		if s.contains(pt, eps) {
			return true
		}
	}
	return false
}

// Measure returns the path's total arc length. Length stands in for
// area/volume so paths can weight into unions alongside 2D/3D shapes.
func (p *Path) Measure() float64 { return p.total }

// Bounds returns the union of the segment bounds.
func (p *Path) Bounds() geom.Box { return p.box }

// Center returns the bounding-box midpoint.
func (p *Path) Center() geom.Vec3 { return p.box.Center() }
