package geom

import (
	"math"
	"testing"
)

const tol = 1e-12

func vecNear(a, b Vec3, eps float64) bool {
	return a.Distance(b) <= eps
}

func TestVecOps(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(-4, 0, 2)

	if got := a.Add(b); got != (Vec3{-3, 2, 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec3{5, 2, 1}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 2 {
		t.Errorf("Dot = %v, want 2", got)
	}
	if got := V3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := V2(1, 1).Distance(V2(4, 5)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestBoxConstruction(t *testing.T) {
	// NewBox accepts corners in any order.
	b := NewBox(V3(2, -1, 5), V3(-3, 4, 0))
	if b.Min != (Vec3{-3, -1, 0}) || b.Max != (Vec3{2, 4, 5}) {
		t.Errorf("NewBox = %+v", b)
	}

	c := BoxAround(V3(1, 1, 1), 2, 4, 6)
	if c.Min != (Vec3{0, -1, -2}) || c.Max != (Vec3{2, 3, 4}) {
		t.Errorf("BoxAround = %+v", c)
	}
	if c.Center() != (Vec3{1, 1, 1}) {
		t.Errorf("Center = %v", c.Center())
	}
	if c.Size() != (Vec3{2, 4, 6}) {
		t.Errorf("Size = %v", c.Size())
	}
}

func TestBoxContains(t *testing.T) {
	b := BoxAround(Vec3{}, 2, 2, 2)
	tests := []struct {
		name string
		p    Vec3
		eps  float64
		want bool
	}{
		{"center", Vec3{}, 0, true},
		{"face", V3(1, 0, 0), 0, true},
		{"outside", V3(1.1, 0, 0), 0, false},
		{"outside within eps", V3(1.05, 0, 0), 0.1, true},
		{"corner", V3(1, 1, 1), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p, tt.eps); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.p, tt.eps, got, tt.want)
			}
		})
	}
}

func TestBoxUnionIntersect(t *testing.T) {
	a := NewBox(V3(0, 0, 0), V3(2, 2, 2))
	b := NewBox(V3(1, 1, 1), V3(3, 3, 3))

	u := a.Union(b)
	if u.Min != (Vec3{0, 0, 0}) || u.Max != (Vec3{3, 3, 3}) {
		t.Errorf("Union = %+v", u)
	}

	i, ok := a.Intersect(b)
	if !ok {
		t.Fatal("Intersect reported disjoint for overlapping boxes")
	}
	if i.Min != (Vec3{1, 1, 1}) || i.Max != (Vec3{2, 2, 2}) {
		t.Errorf("Intersect = %+v", i)
	}

	far := NewBox(V3(10, 10, 10), V3(11, 11, 11))
	if _, ok := a.Intersect(far); ok {
		t.Error("Intersect reported overlap for disjoint boxes")
	}
}

func TestEulerIdentity(t *testing.T) {
	m := Euler(0, 0, 0)
	if m != Identity3() {
		t.Errorf("Euler(0,0,0) = %v, want identity", m)
	}
}

func TestEulerRotationZ(t *testing.T) {
	// Yaw by 90 degrees carries +X to +Y.
	m := Euler(0, 0, math.Pi/2)
	got := m.Apply(V3(1, 0, 0))
	if !vecNear(got, V3(0, 1, 0), 1e-12) {
		t.Errorf("rotated +X = %v, want +Y", got)
	}
}

func TestEulerInverseRoundTrip(t *testing.T) {
	m := Euler(0.3, -1.1, 2.4)
	inv := m.Transpose()
	p := V3(1.5, -2.25, 0.75)
	back := inv.Apply(m.Apply(p))
	if !vecNear(back, p, 1e-12) {
		t.Errorf("round trip = %v, want %v", back, p)
	}
	// Transpose of an orthonormal matrix really is its inverse.
	id := m.Mul(inv)
	for i, v := range id {
		want := 0.0
		if i%4 == 0 {
			want = 1.0
		}
		if math.Abs(v-want) > tol {
			t.Fatalf("m * mᵀ [%d] = %v, want %v", i, v, want)
		}
	}
}
