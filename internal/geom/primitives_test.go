package geom

import (
	"math"
	"testing"
)

func square(x0, y0, x1, y1 float64) Ring {
	return Ring{Coords: []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}}
}

func TestSignedRingAreaOrientation(t *testing.T) {
	ccw := square(0, 0, 10, 10)
	if !IsCCW(ccw) {
		t.Fatalf("expected square to be CCW, area=%v", SignedRingArea(ccw))
	}
	cw := reverseRing(ccw)
	if IsCCW(cw) {
		t.Fatalf("expected reversed square to be CW")
	}
}

func TestOrientCCWFixesHoles(t *testing.T) {
	p := Polygon{
		Exterior:  reverseRing(square(0, 0, 10, 10)),
		Interiors: []Ring{square(2, 2, 4, 4)},
	}
	out := OrientCCW(p)
	if !IsCCW(out.Exterior) {
		t.Fatalf("exterior should be CCW after orientation")
	}
	if IsCCW(out.Interiors[0]) {
		t.Fatalf("interior should be CW after orientation")
	}
}

func TestPolygonAreaSubtractsHoles(t *testing.T) {
	p := Polygon{
		Exterior:  square(0, 0, 10, 10),
		Interiors: []Ring{square(2, 2, 4, 4)},
	}
	got := PolygonArea(p)
	want := 100.0 - 4.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("area = %v, want %v", got, want)
	}
}

func TestPolygonCentroidNoHoles(t *testing.T) {
	p := Polygon{Exterior: square(0, 0, 10, 10)}
	c := PolygonCentroid(p)
	if math.Abs(c.X-5) > 1e-9 || math.Abs(c.Y-5) > 1e-9 {
		t.Fatalf("centroid = %v, want (5,5)", c)
	}
}

func TestRepresentativePointInsideHoledPolygon(t *testing.T) {
	p := Polygon{
		Exterior:  square(0, 0, 10, 10),
		Interiors: []Ring{square(4, 4, 6, 6)},
	}
	rp := RepresentativePoint(p)
	if !PolygonContains(p, rp.X, rp.Y) {
		t.Fatalf("representative point %v not inside polygon", rp)
	}
}

func TestIntersectBoxClipsToQuadrant(t *testing.T) {
	p := Polygon{Exterior: square(0, 0, 10, 10)}
	g := FromPolygon(p)
	mp, ok := IntersectBox(g, Bounds{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5})
	if !ok {
		t.Fatalf("expected intersection")
	}
	got := PolygonArea(mp.Polygons[0])
	if math.Abs(got-25) > 1e-9 {
		t.Fatalf("clipped area = %v, want 25", got)
	}
}

func TestIntersectBoxOutsideReturnsFalse(t *testing.T) {
	p := Polygon{Exterior: square(0, 0, 10, 10)}
	g := FromPolygon(p)
	_, ok := IntersectBox(g, Bounds{MinX: 100, MinY: 100, MaxX: 110, MaxY: 110})
	if ok {
		t.Fatalf("expected no intersection")
	}
}

func TestRepairPolygonDropsDuplicateVertices(t *testing.T) {
	p := Polygon{Exterior: Ring{Coords: []Point{
		{0, 0}, {0, 0}, {10, 0}, {10, 10}, {0, 10},
	}}}
	fixed, ok := RepairPolygon(p)
	if !ok {
		t.Fatalf("expected repair to succeed")
	}
	if len(fixed.Exterior.Coords) != 4 {
		t.Fatalf("expected 4 vertices after dedupe, got %d", len(fixed.Exterior.Coords))
	}
}

func TestVertexCountIncludesHoles(t *testing.T) {
	p := Polygon{
		Exterior:  square(0, 0, 10, 10),
		Interiors: []Ring{square(2, 2, 4, 4)},
	}
	if got := VertexCount(p); got != 8 {
		t.Fatalf("vertex count = %d, want 8", got)
	}
}
