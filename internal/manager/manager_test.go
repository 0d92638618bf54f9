package manager

import (
	"testing"

	"github.com/nhd-mesh/catchmesh/internal/geom"
)

func square(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{Exterior: geom.Ring{Coords: []geom.Point{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}}
}

func TestIterRecordsSplitsInteriors(t *testing.T) {
	hole := geom.Ring{Coords: []geom.Point{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}}
	p := square(0, 0, 10, 10)
	p.Interiors = []geom.Ring{hole}

	src := SliceSource{Records: []Record{{UID: 81, Geom: geom.FromPolygon(p)}}}
	m := New(src, Config{AllowMultipart: true, SplitInteriors: true})

	var got []Record
	if err := m.IterRecords(func(r Record) error {
		got = append(got, r)
		return nil
	}); err != nil {
		t.Fatalf("IterRecords: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 output record, got %d", len(got))
	}
	if !got[0].Geom.IsMulti() || len(got[0].Geom.AsMultiPolygon().Polygons) != 4 {
		t.Fatalf("expected a 4-piece multipolygon, got %+v", got[0].Geom)
	}
}

func TestIterRecordsRejectsMultipartWhenDisallowed(t *testing.T) {
	mp := geom.FromMultiPolygon(geom.MultiPolygon{Polygons: []geom.Polygon{square(0, 0, 1, 1), square(2, 2, 3, 3)}})
	src := SliceSource{Records: []Record{{UID: 1, Geom: mp}}}
	m := New(src, Config{AllowMultipart: false})

	err := m.IterRecords(func(Record) error { return nil })
	if err == nil {
		t.Fatalf("expected MultipartNotAllowed error")
	}
}

func TestSlcRestrictsRange(t *testing.T) {
	src := SliceSource{Records: []Record{
		{UID: 1, Geom: geom.FromPolygon(square(0, 0, 1, 1))},
		{UID: 2, Geom: geom.FromPolygon(square(1, 1, 2, 2))},
		{UID: 3, Geom: geom.FromPolygon(square(2, 2, 3, 3))},
	}}
	m := New(src, DefaultConfig()).Slc(1, 3)

	var uids []interface{}
	if err := m.IterRecords(func(r Record) error {
		uids = append(uids, r.UID)
		return nil
	}); err != nil {
		t.Fatalf("IterRecords: %v", err)
	}
	if len(uids) != 2 || uids[0] != 2 || uids[1] != 3 {
		t.Fatalf("unexpected uids: %v", uids)
	}
}

func TestSelectUID(t *testing.T) {
	src := SliceSource{Records: []Record{
		{UID: 1, Geom: geom.FromPolygon(square(0, 0, 1, 1))},
		{UID: 2, Geom: geom.FromPolygon(square(1, 1, 2, 2))},
	}}
	m := New(src, DefaultConfig())
	rec, ok, err := m.SelectUID(2)
	if err != nil {
		t.Fatalf("SelectUID: %v", err)
	}
	if !ok || rec.UID != 2 {
		t.Fatalf("expected to find uid 2, got %+v ok=%v", rec, ok)
	}
}

func TestFlattenMultipartAssignsFreshUIDs(t *testing.T) {
	mp := geom.FromMultiPolygon(geom.MultiPolygon{Polygons: []geom.Polygon{square(0, 0, 1, 1), square(2, 2, 3, 3)}})
	records := []Record{
		{UID: "orig", Geom: mp},
		{UID: "single", Geom: geom.FromPolygon(square(5, 5, 6, 6))},
	}
	out := FlattenMultipart(records, 100)
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	if out[0].UID != 100 || out[1].UID != 101 {
		t.Fatalf("expected fresh sequential uids, got %v, %v", out[0].UID, out[1].UID)
	}
	if out[2].UID != "single" {
		t.Fatalf("expected singlepart uid unchanged, got %v", out[2].UID)
	}
}
