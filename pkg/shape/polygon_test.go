package shape

import (
	"math"
	"testing"

	"github.com/chazu/scatter/pkg/geom"
)

func TestNewPolygonRejectsTooFewVertices(t *testing.T) {
	for _, n := range []int{0, 1, 2} {
		vs := make([]geom.Vec3, n)
		if _, err := NewPolygon(vs); err == nil {
			t.Errorf("NewPolygon with %d vertices: want error", n)
		}
	}
}

func TestPolygonFanArea(t *testing.T) {
	// Unit square as a polygon: fan triangulation must recover the
	// exact area regardless of how the fan splits it.
	sq, err := NewPolygon([]geom.Vec3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	if got := sq.Measure(); math.Abs(got-1) > 1e-12 {
		t.Errorf("square Measure = %v, want 1", got)
	}

	// A 2:1 rectangle split as a pentagon with a midpoint vertex.
	r, err := NewPolygon([]geom.Vec3{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1},
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	if got := r.Measure(); math.Abs(got-2) > 1e-12 {
		t.Errorf("rectangle Measure = %v, want 2", got)
	}
}

// TestPolygonFanWeighting checks that samples spread over the fan in
// proportion to triangle area rather than per-triangle uniformly. The
// pentagon below is a 2x1 rectangle whose fan triangles are unequal,
// yet each half of the rectangle must receive half the samples.
func TestPolygonFanWeighting(t *testing.T) {
	r, err := NewPolygon([]geom.Vec3{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1},
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	const n = 20000
	src := NewSeeded(7)
	right := 0
	for i := 0; i < n; i++ {
		pt, err := r.Sample(src)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if pt.X > 1 {
			right++
		}
	}
	got := float64(right) / n
	if math.Abs(got-0.5) > 0.02 {
		t.Errorf("right-half fraction = %v, want ~0.5", got)
	}
}

func TestPolygonContains(t *testing.T) {
	// Concave L shape.
	l, err := NewPolygon([]geom.Vec3{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	tests := []struct {
		name string
		p    geom.Vec3
		want bool
	}{
		{"lower arm", geom.V2(1.5, 0.5), true},
		{"upper arm", geom.V2(0.5, 1.5), true},
		{"notch", geom.V2(1.5, 1.5), false},
		{"outside", geom.V2(3, 3), false},
		{"off plane", geom.V3(0.5, 0.5, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Contains(tt.p, 1e-9); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
	if got := l.Measure(); math.Abs(got-3) > 1e-12 {
		t.Errorf("L Measure = %v, want 3", got)
	}
}
