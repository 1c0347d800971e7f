package mathx

import "testing"

func TestFloorDivNegatives(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 32, 0},
		{31, 32, 0},
		{32, 32, 1},
		{-1, 32, -1},
		{-32, 32, -1},
		{-33, 32, -2},
	}
	for _, c := range cases {
		if got := FloorDiv(c.a, c.b); got != c.want {
			t.Fatalf("FloorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestModMatchesFloorDiv(t *testing.T) {
	for a := -100; a <= 100; a++ {
		q := FloorDiv(a, 32)
		m := Mod(a, 32)
		if m < 0 || m >= 32 {
			t.Fatalf("Mod(%d, 32) = %d out of range", a, m)
		}
		if q*32+m != a {
			t.Fatalf("FloorDiv/Mod do not recompose %d: %d*32+%d", a, q, m)
		}
	}
}

func TestMat3MulVec(t *testing.T) {
	// 90 degrees about z: x reads -y, y reads x.
	r := Mat3{M: [3][3]int{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}}
	got := r.MulVec(V3(1, 2, 3))
	if got != V3(-2, 1, 3) {
		t.Fatalf("MulVec = %v", got)
	}
	if d := r.Det(); d != 1 {
		t.Fatalf("Det = %d, want 1", d)
	}
}

func TestMat3MulComposes(t *testing.T) {
	r := Mat3{M: [3][3]int{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}}
	v := V3(5, -7, 2)
	lhs := r.Mul(r).MulVec(v)
	rhs := r.MulVec(r.MulVec(v))
	if lhs != rhs {
		t.Fatalf("composition mismatch: %v vs %v", lhs, rhs)
	}
	if id := r.Mul(r).Mul(r).Mul(r); id != Identity() {
		t.Fatalf("fourth power of a quarter turn should be identity, got %v", id)
	}
}

func TestMat3Abs(t *testing.T) {
	r := Mat3{M: [3][3]int{{0, -1, 0}, {1, 0, 0}, {0, 0, -1}}}
	got := r.Abs().MulVec(V3(2, 3, 4))
	if got != V3(3, 2, 4) {
		t.Fatalf("Abs().MulVec = %v, want (3, 2, 4)", got)
	}
}
