// Package connectivity implements the optional neighbor-adjacency pass:
// for a set of records, find every pair whose geometries touch along a
// shared edge. It is restricted to a single worker (Runtime of size 1)
// since adjacency is inherently a whole-dataset, cross-section query — the
// reference pipeline does not attempt to parallelize it, and neither do
// we (see spec's neighbor-connectivity design note).
package connectivity

import (
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/nhd-mesh/catchmesh/internal/catchmesherr"
	"github.com/nhd-mesh/catchmesh/internal/geom"
	"github.com/nhd-mesh/catchmesh/internal/manager"
	"github.com/nhd-mesh/catchmesh/internal/partition"
)

// entry adapts one manager.Record into rtreego's Spatial interface so its
// bounding box can be inserted into the tree.
type entry struct {
	rec    manager.Record
	bounds geom.Bounds
}

// Bounds implements rtreego.Spatial.
func (e entry) Bounds() rtreego.Rect {
	lengths := []float64{e.bounds.MaxX - e.bounds.MinX, e.bounds.MaxY - e.bounds.MinY}
	// A degenerate (zero-width or zero-height) box isn't a valid rtreego
	// rectangle; rtreego requires strictly positive side lengths, so widen
	// by a negligible epsilon when a geometry's bounds collapse to a line.
	const epsilon = 1e-12
	if lengths[0] <= 0 {
		lengths[0] = epsilon
	}
	if lengths[1] <= 0 {
		lengths[1] = epsilon
	}
	point := rtreego.Point{e.bounds.MinX, e.bounds.MinY}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// Index is a spatial index over a fixed set of records, used to prune the
// O(n^2) all-pairs touches check down to only bounding-box neighbors.
type Index struct {
	tree    *rtreego.Rtree
	entries []entry
}

// BuildIndex indexes every record's geometry bounds into an R-tree.
func BuildIndex(records []manager.Record) *Index {
	tree := rtreego.NewTree(2, 25, 50)
	entries := make([]entry, len(records))
	for i, rec := range records {
		e := entry{rec: rec, bounds: geom.GeomBounds(rec.Geom)}
		entries[i] = e
		tree.Insert(e)
	}
	return &Index{tree: tree, entries: entries}
}

// candidates returns every indexed record (other than self) whose bounding
// box intersects or touches self's bounding box.
func (idx *Index) candidates(self entry) []manager.Record {
	// rtreego counts boxes that only share an edge or a corner as disjoint,
	// so the query box is padded on every side to keep those neighbors.
	b := self.bounds
	scale := math.Max(1, math.Max(math.Max(math.Abs(b.MinX), math.Abs(b.MaxX)), math.Max(math.Abs(b.MinY), math.Abs(b.MaxY))))
	pad := 1e-9 * scale
	lengths := []float64{b.MaxX - b.MinX + 2*pad, b.MaxY - b.MinY + 2*pad}
	rect, _ := rtreego.NewRect(rtreego.Point{b.MinX - pad, b.MinY - pad}, lengths)

	var out []manager.Record
	for _, spatial := range idx.tree.SearchIntersect(rect) {
		cand := spatial.(entry)
		if cand.rec.UID == self.rec.UID {
			continue
		}
		out = append(out, cand.rec)
	}
	return out
}

// Pair is one confirmed adjacency: two records whose geometries touch
// along a boundary (share an edge or a point) without overlapping.
type Pair struct {
	UID      interface{}
	Neighbor interface{}
}

// Compute finds every touching pair of records. rt must have Size() == 1;
// any larger group returns ConnectivityParallelUnsupported, since the
// all-pairs adjacency scan isn't partitioned across ranks.
func Compute(rt partition.Runtime, records []manager.Record) ([]Pair, error) {
	if rt.Size() != 1 {
		return nil, &catchmesherr.ConnectivityParallelUnsupported{NumWorkers: rt.Size()}
	}

	idx := BuildIndex(records)
	seen := make(map[[2]interface{}]bool)
	var pairs []Pair
	for _, e := range idx.entries {
		for _, cand := range idx.candidates(e) {
			key := pairKey(e.rec.UID, cand.UID)
			if seen[key] {
				continue
			}
			seen[key] = true

			touching, err := geom.Touches(e.rec.Geom, cand.Geom)
			if err != nil {
				return nil, fmt.Errorf("touches(%v, %v): %w", e.rec.UID, cand.UID, err)
			}
			if touching {
				pairs = append(pairs, Pair{UID: e.rec.UID, Neighbor: cand.UID})
			}
		}
	}
	return pairs, nil
}

// pairKey orders a and b into a canonical, comparable key so (a,b) and
// (b,a) are deduplicated as the same pair. UIDs are compared via fmt since
// Record.UID values may be any comparable type (int, string).
func pairKey(a, b interface{}) [2]interface{} {
	if fmt.Sprint(a) <= fmt.Sprint(b) {
		return [2]interface{}{a, b}
	}
	return [2]interface{}{b, a}
}
