package geom

// Box is an axis-aligned bounding box. Min/Max Z are both 0 for
// planar geometry. The zero value is a degenerate box at the origin.
type Box struct {
	Min, Max Vec3
}

// NewBox constructs a box from any two opposite corners.
func NewBox(a, b Vec3) Box {
	return Box{
		Min: Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// BoxAround constructs a box centered at c with the given full extents.
func BoxAround(c Vec3, dx, dy, dz float64) Box {
	h := Vec3{X: dx / 2, Y: dy / 2, Z: dz / 2}
	return Box{Min: c.Sub(h), Max: c.Add(h)}
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the per-axis extents of the box.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box, expanded by eps on
// every face.
func (b Box) Contains(p Vec3, eps float64) bool {
	return p.X >= b.Min.X-eps && p.X <= b.Max.X+eps &&
		p.Y >= b.Min.Y-eps && p.Y <= b.Max.Y+eps &&
		p.Z >= b.Min.Z-eps && p.Z <= b.Max.Z+eps
}

// Translate returns the box shifted by v.
func (b Box) Translate(v Vec3) Box {
	return Box{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Vec3{X: min(b.Min.X, o.Min.X), Y: min(b.Min.Y, o.Min.Y), Z: min(b.Min.Z, o.Min.Z)},
		Max: Vec3{X: max(b.Max.X, o.Max.X), Y: max(b.Max.Y, o.Max.Y), Z: max(b.Max.Z, o.Max.Z)},
	}
}

// Intersect returns the overlap of b and o. ok is false when the boxes
// are disjoint on any axis, in which case the returned box is undefined.
func (b Box) Intersect(o Box) (Box, bool) {
	out := Box{
		Min: Vec3{X: max(b.Min.X, o.Min.X), Y: max(b.Min.Y, o.Min.Y), Z: max(b.Min.Z, o.Min.Z)},
		Max: Vec3{X: min(b.Max.X, o.Max.X), Y: min(b.Max.Y, o.Max.Y), Z: min(b.Max.Z, o.Max.Z)},
	}
	if out.Min.X > out.Max.X || out.Min.Y > out.Max.Y || out.Min.Z > out.Max.Z {
		return Box{}, false
	}
	return out, true
}

// Corners returns the 8 corner points of the box. Planar boxes repeat
// their four corners with Z fixed at the shared value.
func (b Box) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
}
