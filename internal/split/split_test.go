package split

import (
	"math"
	"testing"

	"github.com/nhd-mesh/catchmesh/internal/geom"
)

func sq(x0, y0, x1, y1 float64) geom.Ring {
	return geom.Ring{Coords: []geom.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}}
}

func TestInteriorsEliminatesSingleHole(t *testing.T) {
	p := geom.Polygon{
		Exterior:  sq(0, 0, 10, 10),
		Interiors: []geom.Ring{sq(4, 4, 6, 6)},
	}
	mp, err := Interiors(geom.FromPolygon(p))
	if err != nil {
		t.Fatalf("Interiors: %v", err)
	}
	if len(mp.Polygons) != 4 {
		t.Fatalf("expected 4 pieces, got %d", len(mp.Polygons))
	}
	for _, piece := range mp.Polygons {
		if len(piece.Interiors) != 0 {
			t.Fatalf("piece still has a hole: %+v", piece)
		}
	}
}

func TestInteriorsPreservesArea(t *testing.T) {
	p := geom.Polygon{
		Exterior:  sq(0, 0, 10, 10),
		Interiors: []geom.Ring{sq(4, 4, 6, 6)},
	}
	wantArea := geom.PolygonArea(p)
	mp, err := Interiors(geom.FromPolygon(p))
	if err != nil {
		t.Fatalf("Interiors: %v", err)
	}
	gotArea := 0.0
	for _, piece := range mp.Polygons {
		gotArea += geom.PolygonArea(piece)
	}
	if math.Abs(gotArea-wantArea) > 1e-6 {
		t.Fatalf("area = %v, want %v", gotArea, wantArea)
	}
}

func TestInteriorsWithReportCountsHolesAndPieces(t *testing.T) {
	p := geom.Polygon{
		Exterior:  sq(0, 0, 10, 10),
		Interiors: []geom.Ring{sq(4, 4, 6, 6)},
	}
	_, report, err := InteriorsWithReport(geom.FromPolygon(p))
	if err != nil {
		t.Fatalf("InteriorsWithReport: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("expected 1 component report, got %d", len(report))
	}
	if report[0].SourceHoleCount != 1 {
		t.Fatalf("SourceHoleCount = %d, want 1", report[0].SourceHoleCount)
	}
	if report[0].PieceCount != 4 {
		t.Fatalf("PieceCount = %d, want 4", report[0].PieceCount)
	}
}

func TestInteriorsPassesThroughHoleFreePolygon(t *testing.T) {
	p := geom.Polygon{Exterior: sq(0, 0, 10, 10)}
	mp, err := Interiors(geom.FromPolygon(p))
	if err != nil {
		t.Fatalf("Interiors: %v", err)
	}
	if len(mp.Polygons) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(mp.Polygons))
	}
}

func TestThresholdSplitsHighVertexPolygon(t *testing.T) {
	p := geom.Polygon{Exterior: sq(0, 0, 100, 100)}
	mp, report, err := Threshold(geom.FromPolygon(p), 2)
	if err != nil {
		t.Fatalf("Threshold: %v", err)
	}
	if len(mp.Polygons) <= 1 {
		t.Fatalf("expected multiple pieces, got %d", len(mp.Polygons))
	}
	for _, piece := range mp.Polygons {
		if geom.VertexCount(piece) > 4 {
			t.Fatalf("piece has more vertices than a quadrilateral: %+v", piece)
		}
	}
	if report[0].SplitShape < 2 {
		t.Fatalf("expected split shape >= 2, got %d", report[0].SplitShape)
	}
}

func TestThresholdLeavesSmallPolygonUnsplit(t *testing.T) {
	p := geom.Polygon{Exterior: sq(0, 0, 10, 10)}
	mp, _, err := Threshold(geom.FromPolygon(p), 1000)
	if err != nil {
		t.Fatalf("Threshold: %v", err)
	}
	if len(mp.Polygons) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(mp.Polygons))
	}
}

func TestThresholdPreservesArea(t *testing.T) {
	p := geom.Polygon{Exterior: sq(0, 0, 100, 100)}
	want := geom.PolygonArea(p)
	mp, _, err := Threshold(geom.FromPolygon(p), 3)
	if err != nil {
		t.Fatalf("Threshold: %v", err)
	}
	got := 0.0
	for _, piece := range mp.Polygons {
		got += geom.PolygonArea(piece)
	}
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("area = %v, want %v", got, want)
	}
}
