package geom

import "testing"

// bowtie returns a self-intersecting quadrilateral: the classic "hourglass"
// shape where the two diagonals cross, giving it a nonzero signed area and
// four distinct vertices despite not being a simple polygon.
func bowtie() Polygon {
	return Polygon{Exterior: Ring{Coords: []Point{
		{0, 0}, {10, 10}, {10, 0}, {0, 10},
	}}}
}

func TestIsValidPolygonMissesBowtie(t *testing.T) {
	if !IsValidPolygon(bowtie()) {
		t.Fatalf("structural check is expected to pass a bowtie (that's the gap SelfUnionRepair closes)")
	}
}

func TestIsValidSimpleFeaturesRejectsBowtie(t *testing.T) {
	valid, err := IsValidSimpleFeatures(FromPolygon(bowtie()))
	if err != nil {
		t.Fatalf("IsValidSimpleFeatures: %v", err)
	}
	if valid {
		t.Fatalf("expected simplefeatures to reject a bowtie ring")
	}
}

func TestSelfUnionRepairResolvesBowtie(t *testing.T) {
	fixed, err := SelfUnionRepair(FromPolygon(bowtie()))
	if err != nil {
		t.Fatalf("SelfUnionRepair: %v", err)
	}
	valid, err := IsValidSimpleFeatures(fixed)
	if err != nil {
		t.Fatalf("IsValidSimpleFeatures: %v", err)
	}
	if !valid {
		t.Fatalf("expected self-union repair to produce a simplefeatures-valid geometry")
	}
}

func TestRepairGeomFixesBowtie(t *testing.T) {
	fixed, ok := RepairGeom(FromPolygon(bowtie()))
	if !ok {
		t.Fatalf("expected RepairGeom to succeed on a bowtie")
	}
	for _, p := range fixed.Parts() {
		if !IsValidPolygon(p) {
			t.Fatalf("expected every repaired part to pass the structural check, got %+v", p)
		}
	}
	valid, err := IsValidSimpleFeatures(fixed)
	if err != nil {
		t.Fatalf("IsValidSimpleFeatures: %v", err)
	}
	if !valid {
		t.Fatalf("expected RepairGeom's output to be simplefeatures-valid")
	}
}

func TestRepairGeomLeavesValidGeometryUnchanged(t *testing.T) {
	p := Polygon{Exterior: square(0, 0, 10, 10)}
	fixed, ok := RepairGeom(FromPolygon(p))
	if !ok {
		t.Fatalf("expected RepairGeom to succeed on an already-valid polygon")
	}
	if len(fixed.Parts()) != 1 || len(fixed.Parts()[0].Exterior.Coords) != 4 {
		t.Fatalf("expected the valid square to pass through unchanged, got %+v", fixed)
	}
}
