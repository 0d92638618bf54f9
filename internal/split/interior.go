// Package split implements the two polygon splitters in the pipeline: the
// interior (hole) splitter and the node-count threshold splitter. The
// interior splitter is driven by an explicit work-list rather than
// function recursion, so a deeply-holed input geometry never grows the
// call stack — only the work-list, which is a plain slice. The threshold
// splitter makes a single non-recursive pass over each part.
package split

import (
	"github.com/nhd-mesh/catchmesh/internal/catchmesherr"
	"github.com/nhd-mesh/catchmesh/internal/geom"
)

// bufferSplit pads the polygon bounding box slightly before cutting it
// into quadrants, matching the reference implementation's use of a small
// buffer so a centroid sitting exactly on the original bbox edge still
// produces four non-degenerate quadrants.
const bufferSplit = 1e-6

// InteriorReport records, for one original input part, how many holes it
// started with and how many hole-free pieces it was eventually split into.
// Diagnostic only, mirroring ThresholdReport for the threshold splitter.
type InteriorReport struct {
	SourceHoleCount int
	PieceCount      int
}

// Interiors splits every part of g that has at least one hole into a set
// of hole-free pieces, by recursively quartering each polygon around one
// remaining hole's centroid until no hole remains. Parts with no holes
// pass through unchanged. The total output area equals the input area
// (holes are carved away, not double-counted).
func Interiors(g geom.Geom) (geom.MultiPolygon, error) {
	mp, _, err := InteriorsWithReport(g)
	return mp, err
}

// InteriorsWithReport runs Interiors and additionally reports, per original
// input part, the hole count it started with and the piece count it ended
// up split into.
func InteriorsWithReport(g geom.Geom) (geom.MultiPolygon, []InteriorReport, error) {
	parts := g.Parts()
	report := make([]InteriorReport, len(parts))

	var out []geom.Polygon
	for partIdx, part := range parts {
		report[partIdx].SourceHoleCount = len(part.Interiors)

		work := []geom.Polygon{part}
		before := len(out)
		for len(work) > 0 {
			n := len(work) - 1
			p := work[n]
			work = work[:n]

			if len(p.Interiors) == 0 {
				out = append(out, p)
				continue
			}

			pieces, err := splitOneRound(p)
			if err != nil {
				return geom.MultiPolygon{}, nil, err
			}
			work = append(work, pieces...)
		}
		report[partIdx].PieceCount = len(out) - before
	}
	return geom.MultiPolygon{Polygons: out}, report, nil
}

// splitOneRound cuts p into four quadrants around the centroid of its
// first remaining hole and returns the non-empty clipped pieces. Each
// piece may still contain the polygon's other holes and is pushed back
// onto the caller's work-list for another round.
func splitOneRound(p geom.Polygon) ([]geom.Polygon, error) {
	if len(p.Interiors) == 0 {
		return nil, &catchmesherr.NoInteriors{}
	}

	hole := p.Interiors[0]
	centroid := geom.PolygonCentroid(geom.Polygon{Exterior: hole})
	bounds := geom.PolygonBounds(p)
	bounds = geom.Bounds{
		MinX: bounds.MinX - bufferSplit,
		MinY: bounds.MinY - bufferSplit,
		MaxX: bounds.MaxX + bufferSplit,
		MaxY: bounds.MaxY + bufferSplit,
	}

	quadrants := []geom.Bounds{
		{MinX: bounds.MinX, MinY: bounds.MinY, MaxX: centroid.X, MaxY: centroid.Y}, // lower-left
		{MinX: centroid.X, MinY: bounds.MinY, MaxX: bounds.MaxX, MaxY: centroid.Y}, // lower-right
		{MinX: centroid.X, MinY: centroid.Y, MaxX: bounds.MaxX, MaxY: bounds.MaxY}, // upper-right
		{MinX: bounds.MinX, MinY: centroid.Y, MaxX: centroid.X, MaxY: bounds.MaxY}, // upper-left
	}

	var out []geom.Polygon
	src := geom.FromPolygon(p)
	for _, q := range quadrants {
		clipped, ok, err := geom.IntersectBoxExact(src, q)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, clipped.Parts()...)
	}
	return out, nil
}
