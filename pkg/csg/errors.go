package csg

import "fmt"

// EmptyRegionError reports that a composite's rejection loop could not
// produce a point: either the children provably share no region (their
// bounding boxes are disjoint) or the attempt budget ran out without a
// single accepted candidate.
type EmptyRegionError struct {
	Op       Op
	Attempts int
}

func (e *EmptyRegionError) Error() string {
	if e.Attempts == 0 {
		return fmt.Sprintf("csg: %s children do not intersect (disjoint bounds)", e.Op)
	}
	return fmt.Sprintf("csg: %s produced no point after %d attempts (empty or near-empty region)", e.Op, e.Attempts)
}
