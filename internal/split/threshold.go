package split

import "github.com/nhd-mesh/catchmesh/internal/geom"

// ComponentReport records, for one connected input component, how many
// vertices it started with and how many grid pieces it was split into.
// It is a diagnostic return value only — nothing downstream depends on it
// — useful for callers tuning node_threshold.
type ComponentReport struct {
	SourceVertexCount int
	SplitShape        int
	PieceCount        int
}

// ThresholdReport collects a ComponentReport per input polygon.
type ThresholdReport []ComponentReport

// Threshold splits every part of g whose vertex count exceeds threshold
// into a grid of rectangular pieces, each bounded to at most
// approximately threshold vertices of the original boundary. Parts at or
// under threshold pass through unchanged. g is assumed to already be
// hole-free (Interiors should run first in the pipeline); Threshold does
// not special-case holes.
func Threshold(g geom.Geom, threshold int) (geom.MultiPolygon, ThresholdReport, error) {
	var out []geom.Polygon
	var report ThresholdReport
	for _, p := range g.Parts() {
		pieces, rep, err := splitPolygonByThreshold(p, threshold)
		if err != nil {
			return geom.MultiPolygon{}, nil, err
		}
		out = append(out, pieces...)
		report = append(report, rep)
	}
	return geom.MultiPolygon{Polygons: out}, report, nil
}

func splitPolygonByThreshold(p geom.Polygon, threshold int) ([]geom.Polygon, ComponentReport, error) {
	nodeCount := geom.VertexCount(p)
	rep := ComponentReport{SourceVertexCount: nodeCount, SplitShape: 1, PieceCount: 1}
	if threshold <= 0 || nodeCount <= threshold {
		return []geom.Polygon{p}, rep, nil
	}

	nSplits := ceilDiv(nodeCount, threshold)
	splitShape := ceilSqrt(nSplits)
	if splitShape < 2 {
		splitShape = 2
	}
	rep.SplitShape = splitShape

	cells := gridCells(geom.PolygonBounds(p), splitShape)
	src := geom.FromPolygon(p)
	var out []geom.Polygon
	for _, cell := range cells {
		mp, ok := geom.IntersectBox(src, cell)
		if !ok {
			continue
		}
		out = append(out, mp.Polygons...)
	}
	rep.PieceCount = len(out)
	return out, rep, nil
}

// gridCells divides bounds into shape x shape equal rectangular cells. The
// cell edges are a uniform division of bounds: the outer edges coincide
// with the bounding box and are not extrapolated beyond it.
func gridCells(bounds geom.Bounds, shape int) []geom.Bounds {
	dx := (bounds.MaxX - bounds.MinX) / float64(shape)
	dy := (bounds.MaxY - bounds.MinY) / float64(shape)
	cells := make([]geom.Bounds, 0, shape*shape)
	for row := 0; row < shape; row++ {
		for col := 0; col < shape; col++ {
			cells = append(cells, geom.Bounds{
				MinX: bounds.MinX + float64(col)*dx,
				MaxX: bounds.MinX + float64(col+1)*dx,
				MinY: bounds.MinY + float64(row)*dy,
				MaxY: bounds.MinY + float64(row+1)*dy,
			})
		}
	}
	return cells
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

func ceilSqrt(n int) int {
	if n <= 0 {
		return 1
	}
	r := 1
	for r*r < n {
		r++
	}
	return r
}
