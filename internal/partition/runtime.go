// Package partition implements the SPMD-style partition coordinator: it
// divides a dataset into contiguous [start,stop) sections across W
// workers, has each worker assemble its own section independently, then
// gathers and redistributes the exclusive prefix-sum offsets each worker
// needs to place its coordinates into the final, globally-ordered output.
//
// Runtime is the explicit communicator value the coordinator is built
// against — never an ambient global — so the same code drives both a
// single-process run (LocalRuntime) and a simulated multi-rank run
// (GoroutineRuntime). A real MPI/multi-process binding would implement
// the same interface.
package partition

// Runtime is the narrow set of SPMD collectives the coordinator needs.
// The *Any methods carry arbitrary payloads; callers normally go through
// the generic Scatter/Gather/Bcast wrapper functions below instead of
// calling them directly.
type Runtime interface {
	Rank() int
	Size() int

	// ScatterAny is called by every rank. Only the rank-0 caller's data
	// argument is used; it must have length Size(). Each rank receives
	// data[Rank()].
	ScatterAny(data []any) any

	// GatherAny is called by every rank, each contributing item. Only the
	// rank-0 caller's return value is populated (length Size(), ordered by
	// rank); other ranks receive nil.
	GatherAny(item any) []any

	// BcastAny is called by every rank; only rank 0's item is used, and
	// every rank (including rank 0) receives it back.
	BcastAny(item any) any

	// Barrier blocks until every rank has called it.
	Barrier()
}

// Scatter distributes data (meaningful only when called by rank 0, where
// len(data) must equal rt.Size()) and returns this rank's element.
func Scatter[T any](rt Runtime, data []T) T {
	var anyData []any
	if data != nil {
		anyData = make([]any, len(data))
		for i, d := range data {
			anyData[i] = d
		}
	}
	result := rt.ScatterAny(anyData)
	if result == nil {
		var zero T
		return zero
	}
	return result.(T)
}

// Gather collects item from every rank. The return value is non-nil only
// on rank 0.
func Gather[T any](rt Runtime, item T) []T {
	raw := rt.GatherAny(item)
	if raw == nil {
		return nil
	}
	out := make([]T, len(raw))
	for i, r := range raw {
		out[i] = r.(T)
	}
	return out
}

// Bcast broadcasts item from rank 0 (ignored on other ranks) to every
// rank, including rank 0.
func Bcast[T any](rt Runtime, item T) T {
	result := rt.BcastAny(item)
	if result == nil {
		var zero T
		return zero
	}
	return result.(T)
}
