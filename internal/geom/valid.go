package geom

import (
	"fmt"
	"math"

	sf "github.com/peterstace/simplefeatures/geom"
)

// IsValidRing reports whether r has at least 3 distinct vertices and no
// zero-length edges. This is a cheap structural check, not a full
// self-intersection test.
func IsValidRing(r Ring) bool {
	if len(r.Coords) < 3 {
		return false
	}
	n := len(r.Coords)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if r.Coords[i] == r.Coords[j] {
			return false
		}
	}
	return SignedRingArea(r) != 0
}

// IsValidPolygon reports whether every ring of p is structurally valid.
func IsValidPolygon(p Polygon) bool {
	if !IsValidRing(p.Exterior) {
		return false
	}
	for _, hole := range p.Interiors {
		if !IsValidRing(hole) {
			return false
		}
	}
	return true
}

// dedupeRing drops consecutive duplicate vertices (within tolerance) and
// collinear runs that collapse to a zero-length edge.
func dedupeRing(r Ring, tol float64) Ring {
	if len(r.Coords) == 0 {
		return r
	}
	out := make([]Point, 0, len(r.Coords))
	for _, pt := range r.Coords {
		if len(out) == 0 || !closeEnough(out[len(out)-1], pt, tol) {
			out = append(out, pt)
		}
	}
	if len(out) > 1 && closeEnough(out[0], out[len(out)-1], tol) {
		out = out[:len(out)-1]
	}
	return Ring{Coords: out}
}

func closeEnough(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

const repairTolerance = 1e-9

// RepairPolygon attempts to turn p into a structurally valid polygon: it
// removes duplicate and degenerate vertices from every ring, drops any
// ring left with fewer than 3 vertices, and re-orients the result CCW. It
// does not resolve self-intersections within a ring; RepairGeom handles
// those first via SelfUnionRepair before this runs.
func RepairPolygon(p Polygon) (Polygon, bool) {
	ext := dedupeRing(p.Exterior, repairTolerance)
	if len(ext.Coords) < 3 {
		return Polygon{}, false
	}
	out := Polygon{Exterior: ext}
	for _, hole := range p.Interiors {
		h := dedupeRing(hole, repairTolerance)
		if len(h.Coords) >= 3 {
			out.Interiors = append(out.Interiors, h)
		}
	}
	return OrientCCW(out), true
}

// RepairGeom applies RepairPolygon to every part of g, dropping parts that
// collapse to nothing, and returns ok=false if no part survives.
//
// Before that structural pass, it checks each part on its own against
// simplefeatures' OGC validity rules (IsValidSimpleFeatures). A
// self-touching or bowtie ring passes the structural check in this file
// untouched — it has enough distinct vertices and a nonzero signed area —
// so that check alone would let it through uncorrected. When
// simplefeatures rejects a part, this runs a buffer(0) equivalent on that
// part first: unioning it with itself re-polygonizes the self-intersection
// into one or more simple polygons, the same result a zero-width buffer
// would produce in a full GEOS stack. Parts are checked one at a time so
// that splitter output, whose pieces share cut edges, is not merged back
// into one polygon.
func RepairGeom(g Geom) (Geom, bool) {
	var parts []Polygon
	for _, p := range g.Parts() {
		candidates := []Polygon{p}
		if valid, err := IsValidSimpleFeatures(FromPolygon(p)); err == nil && !valid {
			fixed, err := SelfUnionRepair(FromPolygon(p))
			if err != nil {
				return Geom{}, false
			}
			candidates = fixed.Parts()
		}
		for _, c := range candidates {
			if IsValidPolygon(c) {
				parts = append(parts, OrientCCW(c))
				continue
			}
			if fixed, ok := RepairPolygon(c); ok {
				parts = append(parts, fixed)
			}
		}
	}
	if len(parts) == 0 {
		return Geom{}, false
	}
	if len(parts) == 1 && !g.IsMulti() {
		return FromPolygon(parts[0]), true
	}
	return FromMultiPolygon(MultiPolygon{Polygons: parts}), true
}

// SelfUnionRepair resolves a self-touching or bowtie geometry by unioning
// it with itself: the boolean union operation re-polygonizes overlapping
// and self-intersecting rings into one or more simple polygons, the
// buffer(0) equivalent spec.md's validity_repair names. It delegates to
// simplefeatures the same way IntersectBoxExact does, through a WKT
// round-trip, since this package has no general polygon-union primitive of
// its own.
func SelfUnionRepair(g Geom) (Geom, error) {
	sfG, err := toSimpleFeatures(g)
	if err != nil {
		return Geom{}, fmt.Errorf("convert geometry: %w", err)
	}
	result, err := sf.Union(sfG, sfG)
	if err != nil {
		return Geom{}, fmt.Errorf("self union: %w", err)
	}
	repaired, ok, err := parseWKTPolygonal(result.AsText())
	if err != nil {
		return Geom{}, fmt.Errorf("parse self-union result: %w", err)
	}
	if !ok {
		return Geom{}, fmt.Errorf("self union collapsed geometry to an empty or non-polygonal result")
	}
	return repaired, nil
}
