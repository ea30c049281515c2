package plane

import (
	"testing"
)

func TestPoints(t *testing.T) {
	p := Plane[string]{
		{"a", "b"},
		{"c", "d"},
	}

	var got []string
	var coords []Coordinates
	for pt := range p.Points() {
		got = append(got, pt.Value)
		coords = append(coords, pt.Coordinates())
	}

	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("Points() yielded %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Points()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if coords[3] != At(1, 1) {
		t.Errorf("last point = %v, want (1,1)", coords[3])
	}

	// Each call is a fresh pass.
	count := 0
	for range p.Points() {
		count++
	}
	if count != 4 {
		t.Errorf("second pass yielded %d points, want 4", count)
	}
}

func TestPointsStopsEarly(t *testing.T) {
	p := Fill(3, 3, 1)
	seen := 0
	for range p.Points() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Errorf("seen = %d, want 2", seen)
	}
}

func TestGetSet(t *testing.T) {
	var p Plane[int]
	p.Set(At(1, 2), 7)

	if p.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", p.Rows())
	}
	if v, ok := p.Get(At(1, 2)); !ok || v != 7 {
		t.Errorf("Get((1,2)) = %d, %v; want 7, true", v, ok)
	}
	if _, ok := p.Get(At(0, 2)); ok {
		t.Error("Get((0,2)) should be out of bounds on the short row")
	}
	if ok, row := p.Rectangular(); ok || row != 1 {
		t.Errorf("Rectangular() = %v, %d; want false, 1", ok, row)
	}

	p.Set(None, 99)
	if p.Rows() != 2 {
		t.Error("Set(None) should be a no-op")
	}
}

func TestContains(t *testing.T) {
	p := New[int](2, 3)
	tests := []struct {
		c    Coordinates
		want bool
	}{
		{At(0, 0), true},
		{At(1, 2), true},
		{At(2, 0), false},
		{At(0, 3), false},
		{None, false},
		{At(-1, 1), false},
	}
	for _, tt := range tests {
		if got := p.Contains(tt.c); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Coordinates
		want int
	}{
		{At(0, 0), At(0, 0), 0},
		{At(0, 1), At(1, 0), -1},
		{At(1, 0), At(0, 5), 1},
		{At(2, 2), At(2, 1), 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCloneAndMap(t *testing.T) {
	p := Plane[int]{{1, 2}, {3, 4}}
	c := p.Clone()
	c[0][0] = 100
	if p[0][0] != 1 {
		t.Error("Clone() shares row storage with the original")
	}

	doubled := Map(p, func(pt Point[int]) int { return pt.Value * 2 })
	if doubled[1][1] != 8 {
		t.Errorf("Map()[1][1] = %d, want 8", doubled[1][1])
	}
	if p.Len() != 4 {
		t.Errorf("Len() = %d, want 4", p.Len())
	}
}
