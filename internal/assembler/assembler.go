// Package assembler builds the flat node-coordinate dictionary and the
// per-face node/edge connectivity tables the ESMF writer needs, from a
// stream of manager.Record values pulled by one worker's section of the
// dataset.
package assembler

import (
	"github.com/nhd-mesh/catchmesh/internal/geom"
	"github.com/nhd-mesh/catchmesh/internal/manager"
)

// DefaultPolygonBreakValue is the sentinel inserted into a face's node
// list between the constituent pieces of a multipart face.
const DefaultPolygonBreakValue int32 = -8

// Worker accumulates the coordinate dictionary and face tables for one
// worker's share of the dataset. It is not safe for concurrent use; each
// partition worker owns its own Worker.
type Worker struct {
	PolygonBreakValue int32

	coords     []geom.Point
	coordIndex map[geom.Point]int32

	FaceUIDs    []interface{}
	FaceNodes   [][]int32
	FaceAreas   []float64
	FaceCenters []geom.Point
}

// New returns a Worker using DefaultPolygonBreakValue.
func New() *Worker {
	return &Worker{
		PolygonBreakValue: DefaultPolygonBreakValue,
		coordIndex:        make(map[geom.Point]int32),
	}
}

// NCoords returns the number of distinct node coordinates accumulated so
// far.
func (w *Worker) NCoords() int {
	return len(w.coords)
}

// Coords returns the accumulated node coordinates in insertion order. The
// slice is owned by Worker and must not be mutated.
func (w *Worker) Coords() []geom.Point {
	return w.coords
}

// NFaces returns the number of faces accumulated so far.
func (w *Worker) NFaces() int {
	return len(w.FaceNodes)
}

// AddRecord appends one face per record. A MultiPolygon record produces a
// single face whose node list contains every constituent polygon's
// exterior ring, each piece separated by PolygonBreakValue.
func (w *Worker) AddRecord(rec manager.Record) {
	parts := rec.Geom.Parts()
	var nodes []int32
	var area float64
	for i, p := range parts {
		if i > 0 {
			nodes = append(nodes, w.PolygonBreakValue)
		}
		nodes = append(nodes, w.ringNodeIndices(p.Exterior)...)
		area += geom.PolygonArea(p)
	}

	w.FaceUIDs = append(w.FaceUIDs, rec.UID)
	w.FaceNodes = append(w.FaceNodes, nodes)
	w.FaceAreas = append(w.FaceAreas, area)
	w.FaceCenters = append(w.FaceCenters, geom.GeomRepresentativePoint(rec.Geom))
}

// ringNodeIndices returns this worker's coordinate-dictionary index of each
// vertex in r (the writer adds the rank's node offset later), orienting r CCW and inserting any not-yet-seen coordinate
// into the dictionary.
func (w *Worker) ringNodeIndices(r geom.Ring) []int32 {
	if !geom.IsCCW(r) {
		reversed := make([]geom.Point, len(r.Coords))
		n := len(r.Coords)
		for i, pt := range r.Coords {
			reversed[n-1-i] = pt
		}
		r = geom.Ring{Coords: reversed}
	}
	idx := make([]int32, len(r.Coords))
	for i, pt := range r.Coords {
		idx[i] = w.indexOf(pt)
	}
	return idx
}

func (w *Worker) indexOf(pt geom.Point) int32 {
	if i, ok := w.coordIndex[pt]; ok {
		return i
	}
	i := int32(len(w.coords))
	w.coords = append(w.coords, pt)
	w.coordIndex[pt] = i
	return i
}

// MaxFaceNodes returns the length of the longest face node list, the
// column count a rectangular packing needs.
func (w *Worker) MaxFaceNodes() int {
	max := 0
	for _, nodes := range w.FaceNodes {
		if len(nodes) > max {
			max = len(nodes)
		}
	}
	return max
}

// Edge is a node-index pair bounding one face edge.
type Edge struct {
	A, B int32
}

// EdgeNodes returns the consecutive-vertex edges of every face, one
// contiguous run per constituent polygon piece (a run ends, and wraps
// back to its own first node, at a PolygonBreakValue separator or at the
// end of the face's node list).
func (w *Worker) EdgeNodes() []Edge {
	var edges []Edge
	for _, nodes := range w.FaceNodes {
		start := 0
		for i := 0; i <= len(nodes); i++ {
			if i == len(nodes) || nodes[i] == w.PolygonBreakValue {
				run := nodes[start:i]
				edges = append(edges, runEdges(run)...)
				start = i + 1
			}
		}
	}
	return edges
}

func runEdges(run []int32) []Edge {
	n := len(run)
	if n < 2 {
		return nil
	}
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edges = append(edges, Edge{A: run[i], B: run[j]})
	}
	return edges
}

// ToRectangular packs the ragged FaceNodes array into a (nFaces,
// maxFaceNodes) grid, padding short rows with fillValue and returning a
// parallel validity mask (true where the cell holds a real node index,
// false for padding or a PolygonBreakValue separator).
func (w *Worker) ToRectangular(fillValue int32) (grid [][]int32, valid [][]bool) {
	cols := w.MaxFaceNodes()
	grid = make([][]int32, len(w.FaceNodes))
	valid = make([][]bool, len(w.FaceNodes))
	for i, nodes := range w.FaceNodes {
		row := make([]int32, cols)
		mask := make([]bool, cols)
		for j := 0; j < cols; j++ {
			if j < len(nodes) {
				row[j] = nodes[j]
				mask[j] = nodes[j] != w.PolygonBreakValue
			} else {
				row[j] = fillValue
				mask[j] = false
			}
		}
		grid[i] = row
		valid[i] = mask
	}
	return grid, valid
}
