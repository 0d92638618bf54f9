package assembler

import (
	"testing"

	"github.com/nhd-mesh/catchmesh/internal/geom"
	"github.com/nhd-mesh/catchmesh/internal/manager"
)

func square(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{Exterior: geom.Ring{Coords: []geom.Point{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}}
}

func TestAddRecordDedupesSharedVertices(t *testing.T) {
	w := New()
	w.AddRecord(manager.Record{UID: 1, Geom: geom.FromPolygon(square(0, 0, 1, 1))})
	w.AddRecord(manager.Record{UID: 2, Geom: geom.FromPolygon(square(1, 0, 2, 1))})

	if w.NCoords() != 6 {
		t.Fatalf("expected 6 unique coords (2 shared), got %d", w.NCoords())
	}
	if w.NFaces() != 2 {
		t.Fatalf("expected 2 faces, got %d", w.NFaces())
	}
}

func TestAddRecordMultipartInsertsBreakValue(t *testing.T) {
	w := New()
	mp := geom.FromMultiPolygon(geom.MultiPolygon{Polygons: []geom.Polygon{
		square(0, 0, 1, 1), square(5, 5, 6, 6),
	}})
	w.AddRecord(manager.Record{UID: 1, Geom: mp})

	nodes := w.FaceNodes[0]
	foundBreak := false
	for _, n := range nodes {
		if n == w.PolygonBreakValue {
			foundBreak = true
		}
	}
	if !foundBreak {
		t.Fatalf("expected polygon break value in multipart face nodes: %v", nodes)
	}
}

func TestEdgeNodesWrapPerRun(t *testing.T) {
	w := New()
	w.AddRecord(manager.Record{UID: 1, Geom: geom.FromPolygon(square(0, 0, 1, 1))})
	edges := w.EdgeNodes()
	if len(edges) != 4 {
		t.Fatalf("expected 4 edges for a quadrilateral, got %d", len(edges))
	}
}

func TestToRectangularPadsShortRows(t *testing.T) {
	w := New()
	w.AddRecord(manager.Record{UID: 1, Geom: geom.FromPolygon(square(0, 0, 1, 1))})
	mp := geom.FromMultiPolygon(geom.MultiPolygon{Polygons: []geom.Polygon{
		square(2, 2, 3, 3), square(5, 5, 6, 6),
	}})
	w.AddRecord(manager.Record{UID: 2, Geom: mp})

	grid, valid := w.ToRectangular(-1)
	if len(grid) != 2 || len(grid[0]) != w.MaxFaceNodes() {
		t.Fatalf("unexpected grid shape: %d rows, row0 len %d", len(grid), len(grid[0]))
	}
	for j, ok := range valid[0] {
		if j < 4 && !ok {
			t.Fatalf("expected valid[0][%d] to be true", j)
		}
		if j >= 4 && ok {
			t.Fatalf("expected valid[0][%d] to be false (padding)", j)
		}
	}
}

func TestFaceAreaSumsMultipartPieces(t *testing.T) {
	w := New()
	mp := geom.FromMultiPolygon(geom.MultiPolygon{Polygons: []geom.Polygon{
		square(0, 0, 1, 1), square(5, 5, 7, 7),
	}})
	w.AddRecord(manager.Record{UID: 1, Geom: mp})
	want := 1.0 + 4.0
	if w.FaceAreas[0] != want {
		t.Fatalf("face area = %v, want %v", w.FaceAreas[0], want)
	}
}
