package geom

import (
	"fmt"
	"strconv"
	"strings"

	sf "github.com/peterstace/simplefeatures/geom"
)

// Touches reports whether a and b share at least one boundary point but
// have disjoint interiors, delegating the DE-9IM relate computation to
// simplefeatures rather than hand-rolling boundary-intersection logic for
// a predicate that only matters on the optional, single-worker
// neighbor-connectivity path.
func Touches(a, b Geom) (bool, error) {
	sfA, err := toSimpleFeatures(a)
	if err != nil {
		return false, fmt.Errorf("convert left operand: %w", err)
	}
	sfB, err := toSimpleFeatures(b)
	if err != nil {
		return false, fmt.Errorf("convert right operand: %w", err)
	}
	mat, err := sf.Relate(sfA, sfB)
	if err != nil {
		return false, fmt.Errorf("relate: %w", err)
	}
	return mat.Touches(), nil
}

// toSimpleFeatures round-trips g through WKT into simplefeatures' own
// geometry type, the narrowest possible boundary between our tagged Geom
// representation and an external geometry engine.
func toSimpleFeatures(g Geom) (sf.Geometry, error) {
	wkt := geomToWKT(g)
	got, err := sf.UnmarshalWKT(wkt)
	if err != nil {
		return sf.Geometry{}, fmt.Errorf("unmarshal wkt: %w", err)
	}
	return got, nil
}

func geomToWKT(g Geom) string {
	var b strings.Builder
	if g.IsMulti() {
		b.WriteString("MULTIPOLYGON(")
		for i, p := range g.AsMultiPolygon().Polygons {
			if i > 0 {
				b.WriteString(",")
			}
			writePolygonWKT(&b, p)
		}
		b.WriteString(")")
		return b.String()
	}
	b.WriteString("POLYGON")
	writePolygonWKT(&b, g.AsPolygon())
	return b.String()
}

func writePolygonWKT(b *strings.Builder, p Polygon) {
	b.WriteString("(")
	writeRingWKT(b, p.Exterior)
	for _, hole := range p.Interiors {
		b.WriteString(",")
		writeRingWKT(b, hole)
	}
	b.WriteString(")")
}

func writeRingWKT(b *strings.Builder, r Ring) {
	b.WriteString("(")
	n := len(r.Coords)
	for i, pt := range r.Coords {
		if i > 0 {
			b.WriteString(",")
		}
		writeCoord(b, pt)
	}
	if n > 0 {
		b.WriteString(",")
		writeCoord(b, r.Coords[0])
	}
	b.WriteString(")")
}

func writeCoord(b *strings.Builder, pt Point) {
	b.WriteString(strconv.FormatFloat(pt.X, 'g', -1, 64))
	b.WriteString(" ")
	b.WriteString(strconv.FormatFloat(pt.Y, 'g', -1, 64))
}

// IsValidSimpleFeatures reports whether g satisfies simplefeatures' own
// OGC-simple-feature validity rules. simplefeatures validates on
// construction, so UnmarshalWKT rejects a self-touching or bowtie ring
// that the structural check in valid.go (vertex count, zero-length edges,
// nonzero signed area) cannot see. RepairGeom uses this as the oracle that
// decides whether a geometry needs the buffer(0)-equivalent self-union
// repair, not just the structural one.
func IsValidSimpleFeatures(g Geom) (bool, error) {
	wkt := geomToWKT(g)
	_, err := sf.UnmarshalWKT(wkt)
	if err != nil {
		return false, nil
	}
	return true, nil
}
