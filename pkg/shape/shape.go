// Package shape defines the sampling capability shared by every
// geometric object in scatter, and implements the 1D/2D/3D primitives.
//
// A Shape draws points uniformly at random from its interior by
// length, area, or volume measure. Contains is the membership test
// consistent with the region Sample draws from, up to a caller-supplied
// tolerance. Shapes are immutable once constructed and safe for
// concurrent sampling as long as the random Source is.
package shape

import "github.com/chazu/scatter/pkg/geom"

// DefaultEpsilon is the containment tolerance used internally when a
// component needs a membership test but the caller supplied none.
const DefaultEpsilon = 1e-9

// Shape is the universal sampling contract. Measure is length for 1D
// shapes, area for 2D and volume for 3D; keeping it a single concept
// lets mixed-dimension shapes compose as weights in unions.
type Shape interface {
	// Sample draws one point uniformly at random from the shape's
	// interior. Degenerate shapes return their center. Primitives
	// never fail; composite shapes return an error when a bounded
	// rejection loop proves empty (see the csg package), and
	// decorators propagate whatever their base shape reports.
	Sample(src Source) (geom.Vec3, error)

	// Contains reports whether p lies inside the shape, with eps
	// absorbing floating-point boundary error.
	Contains(p geom.Vec3, eps float64) bool

	// Measure is the shape's length, area, or volume. Zero for
	// degenerate shapes.
	Measure() float64

	// Bounds is an axis-aligned bound on the region Sample draws
	// from. It may overestimate but never underestimate.
	Bounds() geom.Box

	// Center is the shape's reference point, used as the pivot by
	// rotation decorators and as the degenerate-sample fallback.
	Center() geom.Vec3
}
