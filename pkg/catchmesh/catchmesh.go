// Package catchmesh provides a clean public API for turning a collection
// of 2D polygonal catchment geometries into an ESMF Unstructured Mesh
// file. It re-exports the narrow set of types a caller needs (Geom,
// Polygon, MultiPolygon, Record, Source, Reprojector) and wires the
// internal manager/partition/assembler/writer/connectivity pipeline
// behind a single Convert entry point.
package catchmesh

import (
	"fmt"

	"github.com/nhd-mesh/catchmesh/internal/catchmesherr"
	"github.com/nhd-mesh/catchmesh/internal/connectivity"
	"github.com/nhd-mesh/catchmesh/internal/geom"
	"github.com/nhd-mesh/catchmesh/internal/manager"
	"github.com/nhd-mesh/catchmesh/internal/partition"
	"github.com/nhd-mesh/catchmesh/internal/writer"
)

// Geom, Polygon, MultiPolygon, Ring, and Point are re-exported from
// internal/geom so callers never need to import an internal package to
// build a Source.
type (
	Geom         = geom.Geom
	Polygon      = geom.Polygon
	MultiPolygon = geom.MultiPolygon
	Ring         = geom.Ring
	Point        = geom.Point
)

// Record is re-exported from internal/manager.
type Record = manager.Record

// Source is the consumed vector-reader collaborator: anything that can
// report how many records it holds and return one by index.
type Source = manager.Source

// Reprojector is the consumed CRS-transform collaborator.
type Reprojector = manager.Reprojector

// SliceSource is the in-memory Source implementation, useful for tests and
// for callers who already have geometries loaded.
type SliceSource = manager.SliceSource

// Pair is one confirmed neighbor adjacency from the optional connectivity
// pass.
type Pair = connectivity.Pair

// Result is everything Convert produces: the path written plus, when
// requested, the neighbor-adjacency pairs.
type Result struct {
	Path         string
	Connectivity []Pair
}

// Convert runs the full pipeline: partition src across Workers ranks,
// assemble each rank's share into node/face tables, write the ESMF mesh
// file at path, and optionally compute neighbor connectivity.
//
// When Workers <= 1, Convert runs single-threaded on partition.LocalRuntime.
// When Workers > 1, Convert simulates that many SPMD ranks as goroutines
// over partition.GoroutineRuntime; every rank converges on the same
// result before Convert returns.
func Convert(src Source, path string, opts Options) (*Result, error) {
	cfg := manager.Config{
		AllowMultipart: opts.AllowMultipart,
		SplitInteriors: opts.SplitInteriors,
		NodeThreshold:  opts.NodeThreshold,
		SrcCRS:         opts.SrcCRS,
		DestCRS:        opts.DestCRS,
		Reprojector:    opts.Reprojector,
	}
	wopts := writer.Options{
		PolygonBreakValue: opts.PolygonBreakValue,
		StartIndex:        opts.StartIndex,
		FaceUIDName:       opts.FaceUIDName,
		GridType:          opts.GridType,
		CoordDim:          opts.CoordDim,
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	if workers == 1 {
		rt := partition.LocalRuntime{}
		result, err := partition.Run(rt, src, cfg)
		if err != nil {
			return nil, err
		}
		if err := writer.Write(rt, path, wopts, result); err != nil {
			return nil, err
		}
		out := &Result{Path: path}
		if opts.WithConnectivity {
			pairs, err := computeConnectivity(rt, src, cfg)
			if err != nil {
				return nil, err
			}
			out.Connectivity = pairs
		}
		return out, nil
	}

	if opts.WithConnectivity {
		return nil, &catchmesherr.ConnectivityParallelUnsupported{NumWorkers: workers}
	}

	errs := partition.RunSPMD(workers, func(rt partition.Runtime, rank int) error {
		result, err := partition.Run(rt, src, cfg)
		if err != nil {
			return err
		}
		return writer.Write(rt, path, wopts, result)
	})
	for rank, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("rank %d: %w", rank, err)
		}
	}
	return &Result{Path: path}, nil
}

// computeConnectivity materializes every processed record from src and
// hands them to connectivity.Compute. Connectivity is whole-dataset, so it
// always runs over every record regardless of how the mesh itself was
// partitioned for writing.
func computeConnectivity(rt partition.Runtime, src Source, cfg manager.Config) ([]Pair, error) {
	m := manager.New(src, cfg)
	var records []manager.Record
	if err := m.IterRecords(func(r manager.Record) error {
		records = append(records, r)
		return nil
	}); err != nil {
		return nil, err
	}
	return connectivity.Compute(rt, records)
}

// FlattenMultipart flattens every MultiPolygon record in records into
// separate singlepart records, assigning fresh sequential UIDs starting at
// startUID. Singlepart records pass through unchanged with their original
// UID.
func FlattenMultipart(records []Record, startUID int) []Record {
	return manager.FlattenMultipart(records, startUID)
}
