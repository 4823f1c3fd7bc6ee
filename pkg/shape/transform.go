package shape

import "github.com/chazu/scatter/pkg/geom"

// Translated offsets a wrapped shape by a fixed vector. It holds a
// read-only reference to the base shape; nothing is copied.
type Translated struct {
	base   Shape
	offset geom.Vec3
}

// Translate wraps s so that every sampled point is shifted by offset.
func Translate(s Shape, offset geom.Vec3) *Translated {
	return &Translated{base: s, offset: offset}
}

// Sample offsets a base sample into the translated frame.
func (t *Translated) Sample(src Source) (geom.Vec3, error) {
	p, err := t.base.Sample(src)
	if err != nil {
		return geom.Vec3{}, err
	}
	return p.Add(t.offset), nil
}

// Contains shifts p back into the base frame before delegating.
func (t *Translated) Contains(p geom.Vec3, eps float64) bool {
	return t.base.Contains(p.Sub(t.offset), eps)
}

// Measure is unchanged by translation.
func (t *Translated) Measure() float64 { return t.base.Measure() }

// Bounds is the base box shifted by the offset.
func (t *Translated) Bounds() geom.Box { return t.base.Bounds().Translate(t.offset) }

// Center is the base center shifted by the offset.
func (t *Translated) Center() geom.Vec3 { return t.base.Center().Add(t.offset) }

// Rotated re-expresses a wrapped shape in a frame rotated about the
// shape's own center. The forward matrix carries base samples into
// world space; Contains applies the transpose (the inverse for an
// orthonormal rotation) to bring world points back into the base
// frame. Both matrices are fixed at construction.
type Rotated struct {
	base   Shape
	fwd    geom.Mat3
	inv    geom.Mat3
	pivot  geom.Vec3
	bounds geom.Box
}

// Rotate wraps s in a rotation by Tait-Bryan angles rx, ry, rz in
// radians (roll about X, then pitch about Y, then yaw about Z),
// pivoting on s.Center(). The bounding box is recomputed from the 8
// rotated corners of the base box, which may overestimate.
func Rotate(s Shape, rx, ry, rz float64) *Rotated {
	fwd := geom.Euler(rx, ry, rz)
	r := &Rotated{
		base:  s,
		fwd:   fwd,
		inv:   fwd.Transpose(),
		pivot: s.Center(),
	}
	corners := s.Bounds().Corners()
	first := r.toWorld(corners[0])
	r.bounds = geom.Box{Min: first, Max: first}
	for _, c := range corners[1:] {
		w := r.toWorld(c)
		r.bounds = r.bounds.Union(geom.Box{Min: w, Max: w})
	}
	return r
}

func (r *Rotated) toWorld(p geom.Vec3) geom.Vec3 {
	return r.pivot.Add(r.fwd.Apply(p.Sub(r.pivot)))
}

func (r *Rotated) toLocal(p geom.Vec3) geom.Vec3 {
	return r.pivot.Add(r.inv.Apply(p.Sub(r.pivot)))
}

// Sample rotates a base sample into world space.
func (r *Rotated) Sample(src Source) (geom.Vec3, error) {
	p, err := r.base.Sample(src)
	if err != nil {
		return geom.Vec3{}, err
	}
	return r.toWorld(p), nil
}

// Contains rotates p into the base frame before delegating.
func (r *Rotated) Contains(p geom.Vec3, eps float64) bool {
	return r.base.Contains(r.toLocal(p), eps)
}

// Measure is unchanged by rotation.
func (r *Rotated) Measure() float64 { return r.base.Measure() }

// Bounds is the axis-aligned box around the rotated base box.
func (r *Rotated) Bounds() geom.Box { return r.bounds }

// Center is the pivot, which rotation leaves in place.
func (r *Rotated) Center() geom.Vec3 { return r.pivot }
