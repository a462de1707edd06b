package geom

import (
	"math"
	"testing"
)

func TestKeyEqualForNearbyPoints(t *testing.T) {
	// Points that differ beyond 10 significant digits share a key.
	a := Point2{X: 1.0, Y: 2.0}
	b := Point2{X: 1.0 + 1e-14, Y: 2.0 - 1e-14}
	if a.Key() != b.Key() {
		t.Fatalf("keys differ for near-identical points: %q vs %q", a.Key(), b.Key())
	}
}

func TestKeyDistinctForDistinctPoints(t *testing.T) {
	cases := []struct {
		a, b Point2
	}{
		{Point2{0, 0}, Point2{0, 1}},
		{Point2{1, 0}, Point2{0, 1}},
		{Point2{1.5, 2.5}, Point2{1.5001, 2.5}},
		{Point2{-1, 0}, Point2{1, 0}},
	}
	for _, c := range cases {
		if c.a.Key() == c.b.Key() {
			t.Errorf("distinct points %v and %v share key %q", c.a, c.b, c.a.Key())
		}
	}
}

func TestFacetMinMaxZ(t *testing.T) {
	f := Facet{
		{X: 0, Y: 0, Z: 3},
		{X: 1, Y: 0, Z: -2},
		{X: 0, Y: 1, Z: 7},
	}
	if got := f.MinZ(); got != -2 {
		t.Errorf("MinZ = %v, want -2", got)
	}
	if got := f.MaxZ(); got != 7 {
		t.Errorf("MaxZ = %v, want 7", got)
	}
}

func TestPathClosed(t *testing.T) {
	closed := Path{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	if !closed.Closed() {
		t.Error("square path should be closed")
	}
	open := Path{{0, 0}, {10, 0}, {10, 10}}
	if open.Closed() {
		t.Error("open chain should not report closed")
	}
	if (Path{{1, 1}}).Closed() {
		t.Error("single-point path should not report closed")
	}
}

func TestBounds(t *testing.T) {
	facets := []Facet{
		{{-1, 2, 0}, {3, -4, 5}, {0, 0, 1}},
		{{2, 2, -3}, {1, 1, 1}, {0, 6, 0}},
	}
	b := Bounds(facets)
	wantMin := Point3{-1, -4, -3}
	wantMax := Point3{3, 6, 5}
	if b.Min != wantMin {
		t.Errorf("Min = %v, want %v", b.Min, wantMin)
	}
	if b.Max != wantMax {
		t.Errorf("Max = %v, want %v", b.Max, wantMax)
	}
	if b.Dx() != 4 || b.Dy() != 10 || b.Dz() != 8 {
		t.Errorf("extents = %v %v %v, want 4 10 8", b.Dx(), b.Dy(), b.Dz())
	}
}

func TestEmptyBoxIsInverted(t *testing.T) {
	b := NewBox()
	if !math.IsInf(b.Min.X, 1) || !math.IsInf(b.Max.X, -1) {
		t.Fatalf("fresh box should be inverted, got %+v", b)
	}
	b.Extend(Point3{1, 2, 3})
	if b.Min != b.Max {
		t.Fatalf("box over one point should collapse to it, got %+v", b)
	}
}
