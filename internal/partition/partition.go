package partition

import (
	"github.com/nhd-mesh/catchmesh/internal/assembler"
	"github.com/nhd-mesh/catchmesh/internal/catchmesherr"
	"github.com/nhd-mesh/catchmesh/internal/manager"
)

// Section is a half-open [Start, Stop) index range assigned to one rank.
type Section struct {
	Start, Stop int
}

// RankResult is one rank's share of the assembled mesh: its own
// coordinate/face tables plus the exclusive prefix-sum offset at which its
// coordinates begin in the globally-ordered output.
type RankResult struct {
	Rank     int
	Worker   *assembler.Worker
	IdxStart int
}

// Run partitions src into rt.Size() contiguous sections, has this rank
// assemble its section through a manager.Manager built from cfg, then
// gathers every rank's coordinate count and scatters back the exclusive
// prefix-sum offset each rank needs when writing its coordinates into the
// shared output arrays. Every rank must call Run with the same rt, src,
// and cfg (true SPMD lockstep). Rank 0's src.Len() decides the record
// count and the sections; every rank then reads its own section from src
// through a Manager configured with cfg.
func Run(rt Runtime, src manager.Source, cfg manager.Config) (*RankResult, error) {
	size := rt.Size()

	// n is broadcast (rather than only checked on rank 0) so every rank
	// reaches the same decision about TooFewGeometries and either all
	// return together or all proceed to the section scatter below — a
	// rank-0-only early return here would leave every other rank blocked
	// forever on a scatter nobody sends.
	var rankZeroLen int
	if rt.Rank() == 0 {
		rankZeroLen = src.Len()
	}
	n := Bcast(rt, rankZeroLen)
	if n < size {
		return nil, &catchmesherr.TooFewGeometries{NumGeometries: n, NumWorkers: size}
	}

	var sections []Section
	if rt.Rank() == 0 {
		sections = createSections(n, size)
	}
	mySection := Scatter(rt, sections)

	m := manager.New(src, cfg).Slc(mySection.Start, mySection.Stop)
	w := assembler.New()
	if err := m.IterRecords(func(r manager.Record) error {
		w.AddRecord(r)
		return nil
	}); err != nil {
		return nil, err
	}

	gathered := Gather(rt, w.NCoords())

	var idxStarts []int
	if rt.Rank() == 0 {
		idxStarts = exclusivePrefixSum(gathered)
	}
	myIdxStart := Scatter(rt, idxStarts)

	return &RankResult{Rank: rt.Rank(), Worker: w, IdxStart: myIdxStart}, nil
}

// createSections divides [0,n) into size contiguous, nearly-equal
// sections; the first n%size sections get one extra element so every
// index is covered exactly once.
func createSections(n, size int) []Section {
	base := n / size
	rem := n % size
	sections := make([]Section, size)
	start := 0
	for i := 0; i < size; i++ {
		length := base
		if i < rem {
			length++
		}
		sections[i] = Section{Start: start, Stop: start + length}
		start += length
	}
	return sections
}

// exclusivePrefixSum returns, for each element of counts, the sum of every
// preceding element (counts[0]'s result is always 0).
func exclusivePrefixSum(counts []int) []int {
	out := make([]int, len(counts))
	sum := 0
	for i, c := range counts {
		out[i] = sum
		sum += c
	}
	return out
}
