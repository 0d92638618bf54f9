package geom

import (
	"fmt"

	sf "github.com/peterstace/simplefeatures/geom"
)

// IntersectBoxExact clips g against box using simplefeatures' general
// polygon boolean intersection rather than the fast per-ring clip in
// clip.go. The interior-splitter quadrant cut needs this: a hole whose
// centroid sits exactly on the quadrant boundary must be merged into the
// clipped piece's exterior ring (the hole boundary touches the clip
// boundary), not retained as a separate, smaller hole — a per-ring
// independent clip gets that case wrong, so this path goes through a real
// polygon-clipping engine instead of hand-rolled ring arithmetic.
func IntersectBoxExact(g Geom, box Bounds) (Geom, bool, error) {
	sfG, err := toSimpleFeatures(g)
	if err != nil {
		return Geom{}, false, fmt.Errorf("convert geometry: %w", err)
	}
	sfBox, err := toSimpleFeatures(FromPolygon(boxPolygon(box)))
	if err != nil {
		return Geom{}, false, fmt.Errorf("convert box: %w", err)
	}
	result, err := sf.Intersection(sfG, sfBox)
	if err != nil {
		return Geom{}, false, fmt.Errorf("intersection: %w", err)
	}
	return parseWKTPolygonal(result.AsText())
}

func boxPolygon(b Bounds) Polygon {
	return Polygon{Exterior: Ring{Coords: []Point{
		{b.MinX, b.MinY}, {b.MaxX, b.MinY}, {b.MaxX, b.MaxY}, {b.MinX, b.MaxY},
	}}}
}
