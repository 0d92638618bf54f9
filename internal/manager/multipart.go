package manager

import "github.com/nhd-mesh/catchmesh/internal/geom"

// FlattenMultipart flattens every MultiPolygon record in records into one
// record per constituent Polygon, assigning each flattened piece a fresh
// sequential integer UID starting at startUID. Singlepart records pass
// through with their original UID unchanged. This mirrors a standalone
// utility in the reference implementation that exists independently of
// the AllowMultipart policy on Manager: a caller may want strictly
// singlepart output without going through the full splitting pipeline.
func FlattenMultipart(records []Record, startUID int) []Record {
	out := make([]Record, 0, len(records))
	nextUID := startUID
	for _, rec := range records {
		if !rec.Geom.IsMulti() {
			out = append(out, rec)
			continue
		}
		for _, p := range rec.Geom.AsMultiPolygon().Polygons {
			out = append(out, Record{UID: nextUID, Geom: geom.FromPolygon(p)})
			nextUID++
		}
	}
	return out
}
