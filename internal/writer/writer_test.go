package writer

import (
	"path/filepath"
	"testing"

	"github.com/nhd-mesh/catchmesh/internal/geom"
	"github.com/nhd-mesh/catchmesh/internal/manager"
	"github.com/nhd-mesh/catchmesh/internal/partition"
)

func sq(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{Exterior: geom.Ring{Coords: []geom.Point{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}}
}

func makeSource(n int) manager.SliceSource {
	recs := make([]manager.Record, n)
	for i := 0; i < n; i++ {
		x := float64(i) * 10
		recs[i] = manager.Record{UID: i, Geom: geom.FromPolygon(sq(x, 0, x+1, 1))}
	}
	return manager.SliceSource{Records: recs}
}

func TestWriteSingleRankProducesExpectedCounts(t *testing.T) {
	src := makeSource(3)
	rt := partition.LocalRuntime{}
	result, err := partition.Run(rt, src, manager.DefaultConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	path := filepath.Join(t.TempDir(), "mesh.nc")
	if err := Write(rt, path, DefaultOptions(), result); err != nil {
		t.Fatalf("Write: %v", err)
	}

	w := result.Worker
	if w.NFaces() != 3 {
		t.Fatalf("expected 3 faces, got %d", w.NFaces())
	}
	if w.NCoords() != 12 {
		t.Fatalf("expected 12 distinct nodes (3 disjoint squares), got %d", w.NCoords())
	}
}

func TestFlattenConnOffsetsNodesAndPreservesBreakValue(t *testing.T) {
	opts := DefaultOptions()
	faceNodes := [][]int32{
		{0, 1, 2, opts.PolygonBreakValue, 3, 4, 5},
	}
	got := flattenConn(faceNodes, 10, opts)
	want := []int32{10, 11, 12, opts.PolygonBreakValue, 13, 14, 15}
	if len(got) != len(want) {
		t.Fatalf("flattenConn length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flattenConn[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestCountValidExcludesBreakValue(t *testing.T) {
	opts := DefaultOptions()
	nodes := []int32{0, 1, opts.PolygonBreakValue, 2, 3, 4}
	if got := countValid(nodes, opts.PolygonBreakValue); got != 5 {
		t.Fatalf("countValid = %d, want 5", got)
	}
}

func TestWriteMultiWorkerAppendsInRankOrder(t *testing.T) {
	src := makeSource(6)
	const size = 2
	runtimes := partition.NewGoroutineRuntimes(size)

	path := filepath.Join(t.TempDir(), "mesh.nc")
	errs := make([]error, size)
	done := make(chan int, size)
	for i := 0; i < size; i++ {
		go func(rank int) {
			result, err := partition.Run(runtimes[rank], src, manager.DefaultConfig())
			if err != nil {
				errs[rank] = err
				done <- rank
				return
			}
			errs[rank] = Write(runtimes[rank], path, DefaultOptions(), result)
			done <- rank
		}(i)
	}
	for i := 0; i < size; i++ {
		<-done
	}
	for i, err := range errs {
		if err != nil {
			t.Fatalf("rank %d: %v", i, err)
		}
	}
}
