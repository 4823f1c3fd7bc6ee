package shape

import (
	"math"
	"testing"

	"github.com/chazu/scatter/pkg/geom"
)

func TestTranslateShiftsEverything(t *testing.T) {
	base := NewSphere(geom.V3(0, 0, 0), 2)
	off := geom.V3(10, -3, 7)
	tr := Translate(base, off)

	if got := tr.Center(); got != off {
		t.Errorf("Center = %v, want %v", got, off)
	}
	if got := tr.Measure(); got != base.Measure() {
		t.Errorf("Measure = %v, want %v", got, base.Measure())
	}
	wantBounds := base.Bounds().Translate(off)
	if got := tr.Bounds(); got != wantBounds {
		t.Errorf("Bounds = %+v, want %+v", got, wantBounds)
	}

	src := NewSeeded(3)
	for i := 0; i < closureDraws; i++ {
		p := mustSample(t, tr, src)
		if !tr.Contains(p, 1e-9) {
			t.Fatalf("draw %d: translated shape rejects its own sample %v", i, p)
		}
		if p.Distance(off) > 2+1e-9 {
			t.Fatalf("draw %d: sample %v outside translated sphere", i, p)
		}
	}
}

func TestTranslateCompose(t *testing.T) {
	base := NewCircle(geom.V2(0, 0), 1)
	a := Translate(Translate(base, geom.V3(1, 0, 0)), geom.V3(0, 2, 0))
	b := Translate(base, geom.V3(1, 2, 0))

	sa := NewSeeded(5)
	sb := NewSeeded(5)
	for i := 0; i < 200; i++ {
		pa := mustSample(t, a, sa)
		pb := mustSample(t, b, sb)
		if pa.Distance(pb) > 1e-12 {
			t.Fatalf("draw %d: stacked translation %v != combined %v", i, pa, pb)
		}
	}
}

func TestRotateIdentity(t *testing.T) {
	base := NewBox(geom.V3(1, 2, 3), 2, 4, 6)
	r := Rotate(base, 0, 0, 0)

	sa := NewSeeded(7)
	sb := NewSeeded(7)
	for i := 0; i < 200; i++ {
		pr := mustSample(t, r, sa)
		pb := mustSample(t, base, sb)
		if pr.Distance(pb) > 1e-12 {
			t.Fatalf("draw %d: zero rotation moved %v to %v", i, pb, pr)
		}
	}
	if got := r.Measure(); got != base.Measure() {
		t.Errorf("Measure = %v, want %v", got, base.Measure())
	}
}

func TestRotateClosureAndPivot(t *testing.T) {
	tests := []struct {
		name       string
		s          Shape
		rx, ry, rz float64
	}{
		{"tilted disk", NewCircle(geom.V2(3, 1), 2), math.Pi / 2, 0, 0},
		{"yawed box", NewBox(geom.V3(5, 5, 5), 2, 1, 3), 0, 0, math.Pi / 4},
		{"skew cylinder", NewCylinder(geom.V3(-2, 0, 1), 1, 4), 0.3, -0.7, 1.1},
		{"rotated ring", NewRing(geom.V2(0, 0), 1, 2), 0, math.Pi / 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rotate(tt.s, tt.rx, tt.ry, tt.rz)
			if got := r.Center(); got.Distance(tt.s.Center()) > 1e-12 {
				t.Errorf("Center = %v, want pivot %v", got, tt.s.Center())
			}
			src := NewSeeded(13)
			for i := 0; i < closureDraws; i++ {
				p := mustSample(t, r, src)
				if !r.Contains(p, 1e-9) {
					t.Fatalf("draw %d: rotated shape rejects its own sample %v", i, p)
				}
				if !r.Bounds().Contains(p, 1e-6) {
					t.Fatalf("draw %d: sample %v escapes rotated bounds %+v", i, p, r.Bounds())
				}
			}
		})
	}
}

func TestRotateTiltedDisk(t *testing.T) {
	// A disk rotated 90° about X stands in the y=const plane through
	// its center.
	d := Rotate(NewCircle(geom.V2(0, 5), 3), math.Pi/2, 0, 0)
	src := NewSeeded(17)
	for i := 0; i < 500; i++ {
		p := mustSample(t, d, src)
		if math.Abs(p.Y-5) > 1e-9 {
			t.Fatalf("draw %d: sample %v off the rotated plane", i, p)
		}
	}
	if !d.Contains(geom.V3(0, 5, 2), 1e-9) {
		t.Error("point on the rotated disk rejected")
	}
	if d.Contains(geom.V3(2, 5+0.5, 0), 1e-9) {
		t.Error("point off the rotated plane accepted")
	}
}

func TestRotateThenTranslate(t *testing.T) {
	// Decorators nest in either order; a rotation about the center
	// followed by a translation keeps measure and containment intact.
	s := Translate(Rotate(NewRect(geom.V2(0, 0), 4, 1), 0, 0, math.Pi/6), geom.V3(0, 0, 10))
	if got := s.Measure(); math.Abs(got-4) > 1e-12 {
		t.Errorf("Measure = %v, want 4", got)
	}
	src := NewSeeded(19)
	for i := 0; i < closureDraws; i++ {
		p := mustSample(t, s, src)
		if !s.Contains(p, 1e-9) {
			t.Fatalf("draw %d: composed transform rejects its own sample %v", i, p)
		}
		if math.Abs(p.Z-10) > 1e-9 {
			t.Fatalf("draw %d: sample %v not on the lifted plane", i, p)
		}
	}
}
