// Package writer implements the two-phase ESMF Unstructured Mesh writer:
// rank 0 creates the NetCDF classic-format container (dimensions,
// variables, attributes), then every rank appends its own node
// coordinates and element connectivity in rank order, each waiting its
// turn on a Runtime barrier.
package writer

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"

	"github.com/nhd-mesh/catchmesh/internal/assembler"
	"github.com/nhd-mesh/catchmesh/internal/catchmesherr"
	"github.com/nhd-mesh/catchmesh/internal/partition"
)

// Options controls the ESMF Mesh attributes and the one piece of caller
// attribute data the writer carries through: the face UID variable.
type Options struct {
	PolygonBreakValue int32
	StartIndex        int32
	FaceUIDName       string
	GridType          string
	CoordDim          int32
}

// DefaultOptions matches the reference pipeline's defaults.
func DefaultOptions() Options {
	return Options{
		PolygonBreakValue: assembler.DefaultPolygonBreakValue,
		StartIndex:        0,
		FaceUIDName:       "uid",
		GridType:          "unstructured",
		CoordDim:          2,
	}
}

// globalCounts is the information only rank 0 can compute (it needs every
// rank's contribution) and must broadcast before Phase A can size the
// container's dimensions.
type globalCounts struct {
	NodeCount       int
	ElementCount    int
	ConnectionCount int
}

// Write runs the two-phase write for this rank: Phase A (rank 0 only)
// creates the file; Phase B (every rank, in rank order, separated by a
// barrier) appends that rank's slice of nodeCoords/elementConn/
// numElementConn/centerCoords/elementArea/uid.
//
// Every rank must call Write with the same path, opts, and rt; results
// are correct only once every rank in rt's group has returned.
func Write(rt partition.Runtime, path string, opts Options, result *partition.RankResult) error {
	w := result.Worker

	local := globalCounts{
		NodeCount:       w.NCoords(),
		ElementCount:    w.NFaces(),
		ConnectionCount: sumLens(w.FaceNodes),
	}
	gathered := partition.Gather(rt, local)

	var total globalCounts
	if rt.Rank() == 0 {
		for _, g := range gathered {
			total.NodeCount += g.NodeCount
			total.ElementCount += g.ElementCount
			total.ConnectionCount += g.ConnectionCount
		}
	}
	total = partition.Bcast(rt, total)

	if rt.Rank() == 0 {
		if err := createContainer(path, opts, total); err != nil {
			return &catchmesherr.WriterError{Phase: "create", Err: err}
		}
	}
	rt.Barrier()

	// nodeStart/connStart/elemStart are the running offsets each rank's
	// slab begins at. Every rank but the round's writer contributes a
	// zero roundResult, so gathering to rank 0 and summing advances the
	// offsets correctly regardless of which rank actually wrote — and
	// broadcasting the summed result back (rather than trusting each
	// rank's own locally-advanced copy) keeps every rank's view of the
	// offsets identical, since only rank 0 ever drives a collective's
	// payload.
	nodeStart := 0
	connStart := 0
	elemStart := 0
	for writer := 0; writer < rt.Size(); writer++ {
		var local roundResult
		if rt.Rank() == writer {
			n, c, e, err := appendRank(path, opts, w, nodeStart, connStart, elemStart)
			if err != nil {
				local.Err = err.Error()
			} else {
				local.NodesWritten, local.ConnWritten, local.ElemsWritten = n, c, e
			}
		}
		gathered := partition.Gather(rt, local)

		var agg roundResult
		if rt.Rank() == 0 {
			for _, r := range gathered {
				agg.NodesWritten += r.NodesWritten
				agg.ConnWritten += r.ConnWritten
				agg.ElemsWritten += r.ElemsWritten
				if r.Err != "" {
					agg.Err = r.Err
				}
			}
		}
		agg = partition.Bcast(rt, agg)
		if agg.Err != "" {
			return &catchmesherr.WriterError{Phase: fmt.Sprintf("append rank %d", writer), Err: fmt.Errorf("%s", agg.Err)}
		}

		nodeStart += agg.NodesWritten
		connStart += agg.ConnWritten
		elemStart += agg.ElemsWritten
		rt.Barrier()
	}
	return nil
}

// roundResult is one rank's contribution to a single append round: either
// the counts it wrote (if it was that round's writer) or a zero value (if
// it was a spectator), plus an error message string if appendRank failed.
// A string rather than an error keeps the type comparable across the
// Gather/Bcast any-payload boundary without a custom type assertion.
type roundResult struct {
	NodesWritten, ConnWritten, ElemsWritten int
	Err                                     string
}

func sumLens(rows [][]int32) int {
	n := 0
	for _, r := range rows {
		n += len(r)
	}
	return n
}

// createContainer builds the dimensions, variables, and global attributes
// of the ESMF mesh file. Column/value types below mirror the file's
// schema exactly: nodeCoords and centerCoords are float64, elementConn
// and numElementConn are int32, elementArea is float64.
func createContainer(path string, opts Options, total globalCounts) error {
	dimNames := []string{"nodeCount", "elementCount", "coordDim", "connectionCount"}
	dimLens := []int{total.NodeCount, total.ElementCount, int(opts.CoordDim), total.ConnectionCount}
	h := cdf.NewHeader(dimNames, dimLens)

	h.AddVariable("nodeCoords", []string{"nodeCount", "coordDim"}, []float64{0})
	h.AddAttribute("nodeCoords", "units", "degrees")

	h.AddVariable("elementConn", []string{"connectionCount"}, []int32{0})
	h.AddAttribute("elementConn", "long_name", "Node indices that define the element connectivity")
	h.AddAttribute("elementConn", "start_index", opts.StartIndex)
	h.AddAttribute("elementConn", "polygon_break_value", opts.PolygonBreakValue)

	h.AddVariable("numElementConn", []string{"elementCount"}, []int32{0})
	h.AddAttribute("numElementConn", "long_name", "Number of nodes per element")

	h.AddVariable("centerCoords", []string{"elementCount", "coordDim"}, []float64{0})
	h.AddAttribute("centerCoords", "units", "degrees")

	h.AddVariable("elementArea", []string{"elementCount"}, []float64{0})
	h.AddAttribute("elementArea", "units", "native")

	if opts.FaceUIDName != "" {
		h.AddVariable(opts.FaceUIDName, []string{"elementCount"}, []int32{0})
		h.AddAttribute(opts.FaceUIDName, "long_name", "Element user-defined identifier")
	}

	// The empty variable name addresses the dataset itself, the same
	// convention netcdf's ncdump uses to print ":gridType = ..." at file
	// scope rather than under any one variable.
	h.AddAttribute("", "gridType", opts.GridType)
	h.AddAttribute("", "version", "0.9")
	h.AddAttribute("", "coordDim", opts.CoordDim)

	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("invalid header: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := cdf.Create(f, h); err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	return nil
}

// appendRank writes this rank's node coordinates, connectivity, and
// per-face metadata into path starting at nodeStart/connStart, returning
// how many nodes and connection entries it wrote (the offsets the next
// rank in line should start from).
func appendRank(path string, opts Options, w *assembler.Worker, nodeStart, connStart, elemStart int) (nodesWritten, connWritten, elemsWritten int, err error) {
	f, err := os.OpenFile(path, os.O_RDWR, os.ModePerm)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := cdf.Open(f)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("reopen dataset: %w", err)
	}

	coords := w.Coords()
	flatCoords := make([]float64, 0, len(coords)*2)
	for _, pt := range coords {
		flatCoords = append(flatCoords, pt.X, pt.Y)
	}
	if len(flatCoords) > 0 {
		nw := ds.Writer("nodeCoords", []int{nodeStart, 0}, []int{len(coords), int(opts.CoordDim)})
		if _, err := nw.Write(flatCoords); err != nil {
			return 0, 0, 0, fmt.Errorf("write nodeCoords: %w", err)
		}
	}

	conn := flattenConn(w.FaceNodes, nodeStart, opts)
	if len(conn) > 0 {
		cw := ds.Writer("elementConn", []int{connStart}, []int{len(conn)})
		if _, err := cw.Write(conn); err != nil {
			return 0, 0, 0, fmt.Errorf("write elementConn: %w", err)
		}
	}

	numConn := make([]int32, len(w.FaceNodes))
	for i, nodes := range w.FaceNodes {
		numConn[i] = int32(len(nodes))
	}
	if len(numConn) > 0 {
		nc := ds.Writer("numElementConn", []int{elemStart}, []int{len(numConn)})
		if _, err := nc.Write(numConn); err != nil {
			return 0, 0, 0, fmt.Errorf("write numElementConn: %w", err)
		}
	}

	centers := make([]float64, 0, len(w.FaceCenters)*2)
	for _, c := range w.FaceCenters {
		centers = append(centers, c.X, c.Y)
	}
	if len(centers) > 0 {
		cc := ds.Writer("centerCoords", []int{elemStart, 0}, []int{len(w.FaceCenters), int(opts.CoordDim)})
		if _, err := cc.Write(centers); err != nil {
			return 0, 0, 0, fmt.Errorf("write centerCoords: %w", err)
		}
	}

	if len(w.FaceAreas) > 0 {
		fa := ds.Writer("elementArea", []int{elemStart}, []int{len(w.FaceAreas)})
		if _, err := fa.Write(w.FaceAreas); err != nil {
			return 0, 0, 0, fmt.Errorf("write elementArea: %w", err)
		}
	}

	if opts.FaceUIDName != "" && len(w.FaceUIDs) > 0 {
		uids := make([]int32, len(w.FaceUIDs))
		for i, u := range w.FaceUIDs {
			uids[i] = toInt32(u)
		}
		uw := ds.Writer(opts.FaceUIDName, []int{elemStart}, []int{len(uids)})
		if _, err := uw.Write(uids); err != nil {
			return 0, 0, 0, fmt.Errorf("write %s: %w", opts.FaceUIDName, err)
		}
	}

	return len(coords), len(conn), len(w.FaceNodes), nil
}

func countValid(nodes []int32, breakValue int32) int {
	n := 0
	for _, v := range nodes {
		if v != breakValue {
			n++
		}
	}
	return n
}

func flattenConn(faceNodes [][]int32, nodeOffset int, opts Options) []int32 {
	var out []int32
	for _, nodes := range faceNodes {
		for _, v := range nodes {
			if v == opts.PolygonBreakValue {
				out = append(out, opts.PolygonBreakValue)
				continue
			}
			out = append(out, v+int32(nodeOffset)+opts.StartIndex)
		}
	}
	return out
}

func toInt32(v interface{}) int32 {
	switch t := v.(type) {
	case int32:
		return t
	case int:
		return int32(t)
	case int64:
		return int32(t)
	default:
		return 0
	}
}
