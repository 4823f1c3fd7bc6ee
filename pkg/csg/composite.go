// Package csg combines shapes with the Boolean set operations (union,
// intersection, difference) behind the same sampling contract the
// primitives implement, so composites nest arbitrarily.
//
// Every operation samples through a bounded rejection loop. What
// happens when the budget runs out is configurable per composite: a
// union defaults to returning a best-effort (slightly biased) point
// because its fallback bias is bounded and rare, while intersection
// and difference default to failing loudly, since exhausting their
// budgets usually means the region is empty and a silently wrong point
// would be worse than an error.
package csg

import (
	"fmt"
	"sort"

	"github.com/chazu/scatter/pkg/geom"
	"github.com/chazu/scatter/pkg/shape"
)

// Op selects the Boolean operation a Composite performs.
type Op int

const (
	// Union samples from the set union of the children, weighted by
	// measure, with overlap regions counted once.
	Union Op = iota
	// Intersection samples from the region common to all children.
	Intersection
	// Difference samples from the first child minus the second.
	Difference
	// FaultyUnion is the naive union sampler with no overlap
	// rejection. Overlap regions come out proportionally denser. It
	// exists to demonstrate that bug class in tests and comparisons;
	// do not use it in production.
	FaultyUnion
)

func (o Op) String() string {
	switch o {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	case FaultyUnion:
		return "faulty-union"
	default:
		return "unknown"
	}
}

// Policy selects what a composite does when its rejection budget is
// exhausted.
type Policy int

const (
	// PolicyDefault resolves to PolicyFallback for Union and
	// PolicyFail for Intersection and Difference.
	PolicyDefault Policy = iota
	// PolicyFallback returns the last candidate unfiltered. The
	// result is biased but bounded; no error is reported.
	PolicyFallback
	// PolicyFail returns an EmptyRegionError.
	PolicyFail
)

// DefaultMaxAttempts bounds each rejection-sampling loop.
const DefaultMaxAttempts = 500

// Config carries the optional knobs for composite construction. The
// zero value selects all defaults.
type Config struct {
	MaxAttempts int
	Policy      Policy
}

// Composite is a Boolean combination of child shapes. Its bounding box
// and measure are derived from the children once at construction; the
// measure is a weighting heuristic for outer unions, not an exact
// geometric quantity.
type Composite struct {
	op          Op
	children    []shape.Shape
	maxAttempts int
	policy      Policy
	weights     []float64 // cumulative child measures, for union selection
	total       float64   // sum of child measures
	measure     float64
	box         geom.Box
}

var _ shape.Shape = (*Composite)(nil)

// New constructs a composite with explicit configuration. Union,
// FaultyUnion and Intersection take one or more children; Difference
// takes exactly two (minuend, subtrahend). A union whose children all
// have zero measure, or an intersection whose child bounds are
// disjoint, is rejected here rather than failing on every sample.
func New(op Op, cfg Config, children ...shape.Shape) (*Composite, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("csg: %s requires at least one child", op)
	}
	if op == Difference && len(children) != 2 {
		return nil, fmt.Errorf("csg: difference requires exactly 2 children (minuend, subtrahend), got %d", len(children))
	}
	c := &Composite{
		op:          op,
		children:    children,
		maxAttempts: cfg.MaxAttempts,
		policy:      cfg.Policy,
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = DefaultMaxAttempts
	}
	if c.policy == PolicyDefault {
		if op == Union || op == FaultyUnion {
			c.policy = PolicyFallback
		} else {
			c.policy = PolicyFail
		}
	}

	c.weights = make([]float64, len(children))
	for i, ch := range children {
		c.total += ch.Measure()
		c.weights[i] = c.total
	}

	switch op {
	case Union, FaultyUnion:
		if c.total == 0 {
			return nil, fmt.Errorf("csg: %s children have zero total measure", op)
		}
		c.box = children[0].Bounds()
		for _, ch := range children[1:] {
			c.box = c.box.Union(ch.Bounds())
		}
		c.measure = c.total
	case Intersection:
		box := children[0].Bounds()
		ok := true
		for _, ch := range children[1:] {
			box, ok = box.Intersect(ch.Bounds())
			if !ok {
				return nil, &EmptyRegionError{Op: Intersection}
			}
		}
		c.box = box
		// Heuristic weight: the intersection can be no larger than
		// its smallest child.
		c.measure = children[0].Measure()
		for _, ch := range children[1:] {
			c.measure = min(c.measure, ch.Measure())
		}
	case Difference:
		c.box = children[0].Bounds()
		c.measure = max(0, children[0].Measure()-children[1].Measure())
	default:
		return nil, fmt.Errorf("csg: unknown op %d", int(op))
	}
	return c, nil
}

// NewUnion constructs a density-correct union with default settings.
func NewUnion(children ...shape.Shape) (*Composite, error) {
	return New(Union, Config{}, children...)
}

// NewIntersection constructs an intersection with default settings.
func NewIntersection(children ...shape.Shape) (*Composite, error) {
	return New(Intersection, Config{}, children...)
}

// NewDifference constructs minuend minus subtrahend with default
// settings.
func NewDifference(minuend, subtrahend shape.Shape) (*Composite, error) {
	return New(Difference, Config{}, minuend, subtrahend)
}

// Sample draws one point from the composite region. The only error
// sources are rejection-budget exhaustion under PolicyFail and errors
// propagated from child composites.
func (c *Composite) Sample(src shape.Source) (geom.Vec3, error) {
	switch c.op {
	case Union:
		return c.sampleUnion(src, true)
	case FaultyUnion:
		return c.sampleUnion(src, false)
	case Intersection:
		return c.sampleIntersection(src)
	default:
		return c.sampleDifference(src)
	}
}

// pickChild selects a child with probability proportional to its
// measure, so each child contributes density matching its size.
func (c *Composite) pickChild(src shape.Source) (int, shape.Shape) {
	i := sort.SearchFloat64s(c.weights, src.Float64()*c.total)
	if i >= len(c.children) {
		i = len(c.children) - 1
	}
	return i, c.children[i]
}

// sampleUnion draws from a measure-weighted child, rejecting points
// that an earlier-indexed child already covers. The asymmetric check
// means each overlap region is claimed by exactly one child, so
// overlaps do not come out denser than the rest of the union. With
// reject=false the check is skipped (the FaultyUnion behavior).
func (c *Composite) sampleUnion(src shape.Source, reject bool) (geom.Vec3, error) {
	var p geom.Vec3
	var err error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		i, ch := c.pickChild(src)
		p, err = ch.Sample(src)
		if err != nil {
			return geom.Vec3{}, err
		}
		if !reject {
			return p, nil
		}
		claimed := false
		for j := 0; j < i; j++ {
			if c.children[j].Contains(p, shape.DefaultEpsilon) {
				claimed = true
				break
			}
		}
		if !claimed {
			return p, nil
		}
	}
	if c.policy == PolicyFallback {
		// Bounded-bias fallback: the point is valid union territory,
		// it just may double-count an overlap. Rare by construction.
		return p, nil
	}
	return geom.Vec3{}, &EmptyRegionError{Op: c.op, Attempts: c.maxAttempts}
}

// sampleIntersection rejection-samples the intersected bounding box,
// accepting points every child contains.
func (c *Composite) sampleIntersection(src shape.Source) (geom.Vec3, error) {
	size := c.box.Size()
	var p geom.Vec3
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		p = geom.Vec3{
			X: c.box.Min.X + src.Float64()*size.X,
			Y: c.box.Min.Y + src.Float64()*size.Y,
			Z: c.box.Min.Z + src.Float64()*size.Z,
		}
		inside := true
		for _, ch := range c.children {
			if !ch.Contains(p, shape.DefaultEpsilon) {
				inside = false
				break
			}
		}
		if inside {
			return p, nil
		}
	}
	if c.policy == PolicyFallback {
		return p, nil
	}
	return geom.Vec3{}, &EmptyRegionError{Op: Intersection, Attempts: c.maxAttempts}
}

// sampleDifference draws from the minuend's own sampler (which already
// respects its shape, unlike a bounding-box draw) and rejects points
// the subtrahend covers.
func (c *Composite) sampleDifference(src shape.Source) (geom.Vec3, error) {
	var p geom.Vec3
	var err error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		p, err = c.children[0].Sample(src)
		if err != nil {
			return geom.Vec3{}, err
		}
		if !c.children[1].Contains(p, shape.DefaultEpsilon) {
			return p, nil
		}
	}
	if c.policy == PolicyFallback {
		return p, nil
	}
	return geom.Vec3{}, &EmptyRegionError{Op: Difference, Attempts: c.maxAttempts}
}

// Contains applies the set-theoretic membership rule for the op.
func (c *Composite) Contains(p geom.Vec3, eps float64) bool {
	switch c.op {
	case Union, FaultyUnion:
		for _, ch := range c.children {
			if ch.Contains(p, eps) {
				return true
			}
		}
		return false
	case Intersection:
		for _, ch := range c.children {
			if !ch.Contains(p, eps) {
				return false
			}
		}
		return true
	default:
		return c.children[0].Contains(p, eps) && !c.children[1].Contains(p, eps)
	}
}

// Measure returns the derived weighting heuristic: child sum for
// unions, smallest child for intersections, clamped difference for
// differences. It is a relative sampling weight, not an exact measure.
func (c *Composite) Measure() float64 { return c.measure }

// Bounds returns the box derived from the children at construction.
func (c *Composite) Bounds() geom.Box { return c.box }

// Center returns the midpoint of the derived bounds.
func (c *Composite) Center() geom.Vec3 { return c.box.Center() }

// Op returns the composite's operation.
func (c *Composite) Op() Op { return c.op }
