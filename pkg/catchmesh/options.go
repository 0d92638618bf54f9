package catchmesh

import "github.com/nhd-mesh/catchmesh/internal/writer"

// Options configures a Convert call end to end: how the manager processes
// each record, how many workers assemble the mesh in parallel, and what
// the writer puts in the output file.
type Options struct {
	// AllowMultipart mirrors manager.Config.AllowMultipart.
	AllowMultipart bool
	// SplitInteriors mirrors manager.Config.SplitInteriors.
	SplitInteriors bool
	// NodeThreshold mirrors manager.Config.NodeThreshold.
	NodeThreshold int
	// SrcCRS/DestCRS/Reprojector mirror manager.Config's reprojection
	// fields.
	SrcCRS, DestCRS string
	Reprojector     Reprojector

	// Workers is the number of SPMD ranks to simulate. 1 runs on
	// partition.LocalRuntime with no goroutines; >1 runs on
	// partition.GoroutineRuntime.
	Workers int

	// WithConnectivity additionally computes neighbor adjacency once the
	// mesh is assembled. Only valid when Workers == 1.
	WithConnectivity bool

	// FaceUIDName, PolygonBreakValue, StartIndex, GridType, CoordDim
	// mirror writer.Options.
	FaceUIDName       string
	PolygonBreakValue int32
	StartIndex        int32
	GridType          string
	CoordDim          int32
}

// DefaultOptions returns the options a caller gets by not overriding
// anything: single worker, no splitting, no reprojection, no connectivity,
// default writer schema.
func DefaultOptions() Options {
	wo := writer.DefaultOptions()
	return Options{
		AllowMultipart:    true,
		Workers:           1,
		FaceUIDName:       wo.FaceUIDName,
		PolygonBreakValue: wo.PolygonBreakValue,
		StartIndex:        wo.StartIndex,
		GridType:          wo.GridType,
		CoordDim:          wo.CoordDim,
	}
}
