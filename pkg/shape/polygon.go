package shape

import (
	"fmt"
	"sort"

	"github.com/chazu/scatter/pkg/geom"
)

// Polygon is a solid planar polygon, triangulated once at construction
// into a fan and sampled through a cumulative-area table. Sampling is
// O(log n) per point after the O(n) setup. For non-convex input the
// fan is best effort only; correctness is guaranteed for convex rings.
type Polygon struct {
	tris    []*Triangle
	prefix  []float64 // cumulative triangle areas; prefix[len-1] == measure
	measure float64
	bounds  geom.Box
	center  geom.Vec3
}

// NewPolygon constructs a polygon from its vertex ring. Fewer than
// three vertices is a construction error.
func NewPolygon(vertices []geom.Vec3) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon requires at least 3 vertices, got %d", len(vertices))
	}
	p := &Polygon{
		tris:   make([]*Triangle, 0, len(vertices)-2),
		prefix: make([]float64, 0, len(vertices)-2),
	}
	var centroid geom.Vec3
	for _, v := range vertices {
		centroid = centroid.Add(v)
	}
	p.center = centroid.Scale(1 / float64(len(vertices)))
	p.bounds = geom.NewBox(vertices[0], vertices[1])
	for _, v := range vertices[2:] {
		p.bounds = p.bounds.Union(geom.NewBox(v, v))
	}
	for i := 1; i < len(vertices)-1; i++ {
		tri := NewTriangle(vertices[0], vertices[i], vertices[i+1])
		p.measure += tri.Measure()
		p.tris = append(p.tris, tri)
		p.prefix = append(p.prefix, p.measure)
	}
	return p, nil
}

// Sample picks a fan triangle by binary search over the cumulative
// area table, then samples inside it with the barycentric fold.
func (p *Polygon) Sample(src Source) (geom.Vec3, error) {
	if p.measure == 0 {
		return p.center, nil
	}
	target := src.Float64() * p.measure
	i := sort.SearchFloat64s(p.prefix, target)
	if i >= len(p.tris) {
		i = len(p.tris) - 1
	}
	return p.tris[i].Sample(src)
}

// Contains reports whether any fan triangle contains p.
func (p *Polygon) Contains(pt geom.Vec3, eps float64) bool {
	if p.measure == 0 {
		return pt.Distance(p.center) <= eps
	}
	for _, tri := range p.tris {
		if tri.Contains(pt, eps) {
			return true
		}
	}
	return false
}

// Measure returns the summed fan-triangle area.
func (p *Polygon) Measure() float64 { return p.measure }

// Bounds returns the vertex extents.
func (p *Polygon) Bounds() geom.Box { return p.bounds }

// Center returns the vertex centroid.
func (p *Polygon) Center() geom.Vec3 { return p.center }
