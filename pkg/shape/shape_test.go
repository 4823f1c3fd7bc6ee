package shape

import (
	"math"
	"testing"

	"github.com/chazu/scatter/pkg/geom"
)

const closureDraws = 2000

// mustSample draws a point from a primitive, failing the test on the
// errors primitives never return.
func mustSample(t *testing.T, s Shape, src Source) geom.Vec3 {
	t.Helper()
	p, err := s.Sample(src)
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}
	return p
}

// TestContainmentClosure checks the core contract for every primitive:
// each shape contains its own samples.
func TestContainmentClosure(t *testing.T) {
	poly, err := NewPolygon([]geom.Vec3{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 5, Y: 3}, {X: 2, Y: 5}, {X: -1, Y: 3},
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}

	tests := []struct {
		name string
		s    Shape
	}{
		{"circle", NewCircle(geom.V2(1, -2), 3)},
		{"ellipse", NewEllipse(geom.V2(0, 0), 4, 2)},
		{"ring", NewRing(geom.V2(-1, 1), 2, 5)},
		{"circle sector", NewCircleSector(geom.V2(0, 0), 3, math.Pi/4, math.Pi)},
		{"wrapped sector", NewCircleSector(geom.V2(0, 0), 3, 3*math.Pi/2, math.Pi/2)},
		{"rect", NewRect(geom.V2(2, 2), 3, 1)},
		{"triangle", NewTriangle(geom.V2(0, 0), geom.V2(4, 0), geom.V2(1, 3))},
		{"tilted triangle", NewTriangle(geom.V3(0, 0, 0), geom.V3(2, 0, 1), geom.V3(0, 2, 2))},
		{"polygon", poly},
		{"sphere", NewSphere(geom.V3(1, 2, 3), 2)},
		{"shell", NewShell(geom.V3(0, 0, 0), 1, 2)},
		{"ellipsoid", NewEllipsoid(geom.V3(0, 0, 0), 1, 2, 3)},
		{"sphere sector", NewSphereSector(geom.V3(0, 0, 0), 2, 0, math.Pi, math.Pi/6, math.Pi/2)},
		{"box", NewBox(geom.V3(-1, -1, -1), 2, 3, 4)},
		{"cylinder", NewCylinder(geom.V3(0, 0, 5), 2, 4)},
		{"tube", NewTube(geom.V3(0, 0, 0), 1, 3, 2)},
		{"cone", NewCone(geom.V3(1, 1, 0), 2, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSeeded(11)
			for i := 0; i < closureDraws; i++ {
				p := mustSample(t, tt.s, src)
				if !tt.s.Contains(p, 1e-9) {
					t.Fatalf("draw %d: shape does not contain its own sample %v", i, p)
				}
				if !tt.s.Bounds().Contains(p, 1e-9) {
					t.Fatalf("draw %d: sample %v escapes bounds %+v", i, p, tt.s.Bounds())
				}
			}
		})
	}
}

// TestAnalyticMeasures pins the closed-form measures the samplers were
// derived from.
func TestAnalyticMeasures(t *testing.T) {
	tests := []struct {
		name string
		s    Shape
		want float64
	}{
		{"circle r=10", NewCircle(geom.V2(0, 0), 10), math.Pi * 100},
		{"ring 2..5", NewRing(geom.V2(0, 0), 2, 5), math.Pi * (25 - 4)},
		{"half disk", NewCircleSector(geom.V2(0, 0), 2, 0, math.Pi), math.Pi * 2},
		{"ellipse", NewEllipse(geom.V2(0, 0), 3, 2), math.Pi * 6},
		{"rect", NewRect(geom.V2(0, 0), 4, 2.5), 10},
		{"triangle 3-4", NewTriangle(geom.V2(0, 0), geom.V2(3, 0), geom.V2(0, 4)), 6},
		{"sphere r=2", NewSphere(geom.V3(0, 0, 0), 2), 4.0 / 3.0 * math.Pi * 8},
		{"shell 1..2", NewShell(geom.V3(0, 0, 0), 1, 2), 4.0 / 3.0 * math.Pi * 7},
		{"hemisphere", NewSphereSector(geom.V3(0, 0, 0), 1, 0, 2*math.Pi, 0, math.Pi/2), 2.0 / 3.0 * math.Pi},
		{"box", NewBox(geom.V3(0, 0, 0), 2, 3, 4), 24},
		{"cylinder", NewCylinder(geom.V3(0, 0, 0), 2, 5), math.Pi * 20},
		{"cone", NewCone(geom.V3(0, 0, 0), 3, 4), 12 * math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Measure(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Measure = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestDiskRadialDistribution guards the sqrt transform: uniform area
// sampling of a disk has mean radius 2R/3, while the naive linear
// transform would give R/2 (clumped at the center).
func TestDiskRadialDistribution(t *testing.T) {
	const (
		radius = 10.0
		n      = 20000
	)
	c := NewCircle(geom.V2(0, 0), radius)
	src := NewSeeded(23)
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += mustSample(t, c, src).Length()
	}
	mean := sum / n
	want := 2.0 / 3.0 * radius
	if math.Abs(mean-want) > 0.15 {
		t.Errorf("mean radius = %v, want %v±0.15", mean, want)
	}
}

// TestSphereRadialDistribution guards the cbrt transform: uniform
// volume sampling of a ball has mean radius 3R/4.
func TestSphereRadialDistribution(t *testing.T) {
	const (
		radius = 4.0
		n      = 20000
	)
	s := NewSphere(geom.V3(0, 0, 0), radius)
	src := NewSeeded(29)
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += mustSample(t, s, src).Length()
	}
	mean := sum / n
	want := 3.0 / 4.0 * radius
	if math.Abs(mean-want) > 0.05 {
		t.Errorf("mean radius = %v, want %v±0.05", mean, want)
	}
}

// TestSpherePolarDistribution guards the cos-uniform polar transform:
// for uniform ball sampling cosφ is uniform on [-1,1], so its mean is
// 0 and its second moment 1/3. Interpolating φ linearly instead would
// concentrate samples at the poles and inflate the second moment.
func TestSpherePolarDistribution(t *testing.T) {
	const n = 20000
	s := NewSphere(geom.V3(0, 0, 0), 1)
	src := NewSeeded(31)
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		p := mustSample(t, s, src)
		r := p.Length()
		if r == 0 {
			continue
		}
		cosPhi := p.Z / r
		sum += cosPhi
		sumSq += cosPhi * cosPhi
	}
	if mean := sum / n; math.Abs(mean) > 0.02 {
		t.Errorf("mean cosφ = %v, want ~0", mean)
	}
	if m2 := sumSq / n; math.Abs(m2-1.0/3.0) > 0.02 {
		t.Errorf("E[cos²φ] = %v, want ~1/3", m2)
	}
}

// TestConeHeightDistribution guards the cbrt height transform: for a
// cone with apex at height H, the distance from the apex has mean
// 3H/4, putting most samples near the wide base.
func TestConeHeightDistribution(t *testing.T) {
	const (
		height = 8.0
		n      = 20000
	)
	c := NewCone(geom.V3(0, 0, 0), 3, height)
	src := NewSeeded(37)
	sum := 0.0
	for i := 0; i < n; i++ {
		p := mustSample(t, c, src)
		sum += height - p.Z // distance below the apex
	}
	mean := sum / n
	want := 3.0 / 4.0 * height
	if math.Abs(mean-want) > 0.1 {
		t.Errorf("mean apex distance = %v, want %v±0.1", mean, want)
	}
}

// TestMonteCarloAreaAgreement cross-checks Sample and Measure: the hit
// fraction of bounding-box probes should match measure / box area.
func TestMonteCarloAreaAgreement(t *testing.T) {
	const n = 40000
	c := NewCircle(geom.V2(0, 0), 1)
	src := NewSeeded(41)
	hits := 0
	for i := 0; i < n; i++ {
		p := geom.V2(uniform(src, -1, 1), uniform(src, -1, 1))
		if c.Contains(p, 0) {
			hits++
		}
	}
	got := 4 * float64(hits) / n // box area is 4
	if math.Abs(got-c.Measure()) > 0.05 {
		t.Errorf("Monte-Carlo area = %v, Measure = %v", got, c.Measure())
	}
}

func TestDegenerateShapes(t *testing.T) {
	center := geom.V3(1, 2, 3)
	tests := []struct {
		name string
		s    Shape
	}{
		{"zero radius circle", NewCircle(geom.V2(1, 2), 0)},
		{"negative radius circle", NewCircle(geom.V2(1, 2), -5)},
		{"zero rect", NewRect(geom.V2(1, 2), 0, 4)},
		{"flat triangle", NewTriangle(geom.V2(0, 0), geom.V2(1, 1), geom.V2(2, 2))},
		{"zero sphere", NewSphere(center, 0)},
		{"zero box", NewBox(center, 0, 0, 0)},
		{"zero cylinder", NewCylinder(center, 1, 0)},
		{"zero cone", NewCone(center, -1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m := tt.s.Measure(); m != 0 {
				t.Errorf("Measure = %v, want 0", m)
			}
			src := NewSeeded(1)
			p := mustSample(t, tt.s, src)
			if p.Distance(tt.s.Center()) > 1e-12 {
				t.Errorf("degenerate sample = %v, want center %v", p, tt.s.Center())
			}
			if !tt.s.Contains(p, 1e-9) {
				t.Error("degenerate shape does not contain its center sample")
			}
			if math.IsNaN(p.X) || math.IsInf(p.X, 0) {
				t.Error("degenerate sample is not finite")
			}
		})
	}
}

func TestSectorContainsRejectsOutside(t *testing.T) {
	// Quarter disk in the first quadrant.
	s := NewCircleSector(geom.V2(0, 0), 2, 0, math.Pi/2)
	tests := []struct {
		name string
		p    geom.Vec3
		want bool
	}{
		{"inside", geom.V2(1, 1), true},
		{"wrong quadrant", geom.V2(-1, 1), false},
		{"outside radius", geom.V2(2, 2), false},
		{"off plane", geom.V3(1, 1, 0.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Contains(tt.p, 1e-9); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRingHoleExcluded(t *testing.T) {
	r := NewRing(geom.V2(0, 0), 2, 5)
	if r.Contains(geom.V2(0.5, 0.5), 1e-9) {
		t.Error("ring contains a point inside its hole")
	}
	if !r.Contains(geom.V2(3, 0), 1e-9) {
		t.Error("ring rejects a point in its band")
	}
}

func TestSeededSourceDeterminism(t *testing.T) {
	a := NewSeeded(99)
	b := NewSeeded(99)
	s := NewSphere(geom.V3(0, 0, 0), 1)
	for i := 0; i < 100; i++ {
		pa, _ := s.Sample(a)
		pb, _ := s.Sample(b)
		if pa != pb {
			t.Fatalf("draw %d: %v != %v", i, pa, pb)
		}
	}
}
