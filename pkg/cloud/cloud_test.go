package cloud

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/scatter/pkg/geom"
	"github.com/chazu/scatter/pkg/shape"
)

// flaky fails every other draw, for exercising the error paths.
type flaky struct {
	base  shape.Shape
	calls int
}

func (f *flaky) Sample(src shape.Source) (geom.Vec3, error) {
	f.calls++
	if f.calls%2 == 0 {
		return geom.Vec3{}, errors.New("no point this time")
	}
	return f.base.Sample(src)
}

func (f *flaky) Contains(p geom.Vec3, eps float64) bool { return f.base.Contains(p, eps) }
func (f *flaky) Measure() float64                       { return f.base.Measure() }
func (f *flaky) Bounds() geom.Box                       { return f.base.Bounds() }
func (f *flaky) Center() geom.Vec3                      { return f.base.Center() }

func TestFillLayout(t *testing.T) {
	s := shape.NewBox(geom.V3(0, 0, 0), 2, 2, 2)
	c, err := Fill(s, 100, shape.NewSeeded(71))
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if got := c.PointCount(); got != 100 {
		t.Fatalf("PointCount = %d, want 100", got)
	}
	if got := len(c.Points); got != 300 {
		t.Fatalf("len(Points) = %d, want 300", got)
	}
	if c.IsEmpty() {
		t.Error("IsEmpty on a filled cloud")
	}
	for i := 0; i < c.PointCount(); i++ {
		p := c.At(i)
		// float32 rounding on [-1,1] coordinates stays well under 1e-6.
		if !s.Contains(p, 1e-6) {
			t.Fatalf("point %d: %v outside the source shape", i, p)
		}
	}
}

func TestFillZeroPoints(t *testing.T) {
	s := shape.NewSphere(geom.V3(0, 0, 0), 1)
	c, err := Fill(s, 0, shape.NewSeeded(1))
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if !c.IsEmpty() || c.PointCount() != 0 {
		t.Errorf("want empty cloud, got %d points", c.PointCount())
	}
}

func TestFillAbortsOnError(t *testing.T) {
	f := &flaky{base: shape.NewSphere(geom.V3(0, 0, 0), 1)}
	c, err := Fill(f, 10, shape.NewSeeded(73))
	if err == nil {
		t.Fatal("Fill: want error from failing shape")
	}
	if c != nil {
		t.Errorf("Fill returned a partial cloud alongside the error")
	}
}

func TestFillBestEffortSkips(t *testing.T) {
	f := &flaky{base: shape.NewSphere(geom.V3(0, 0, 0), 1)}
	c, skipped := FillBestEffort(f, 10, shape.NewSeeded(79))
	if skipped != 5 {
		t.Errorf("skipped = %d, want 5", skipped)
	}
	if got := c.PointCount(); got != 5 {
		t.Errorf("PointCount = %d, want 5", got)
	}
}

func TestAppendAndAt(t *testing.T) {
	var c Cloud
	pts := []geom.Vec3{
		geom.V3(1, 2, 3),
		geom.V3(-0.5, 0, 4.25),
	}
	for _, p := range pts {
		c.Append(p)
	}
	for i, want := range pts {
		got := c.At(i)
		if got.Distance(want) > 1e-6 {
			t.Errorf("At(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestFloat32Precision(t *testing.T) {
	var c Cloud
	c.Append(geom.V3(math.Pi, -math.E, 1e6))
	got := c.At(0)
	if math.Abs(got.X-math.Pi) > 1e-6 {
		t.Errorf("X = %v, want ~π", got.X)
	}
	if math.Abs(got.Z-1e6) > 0.5 {
		t.Errorf("Z = %v, want ~1e6", got.Z)
	}
}
