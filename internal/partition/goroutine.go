package partition

import "sync"

// hub is the shared rendezvous point for a group of GoroutineRuntime
// handles, one per simulated rank. It implements a classic generational
// barrier: every collective call blocks every rank until all have
// arrived, exchanges whatever payload that round's collective needs, and
// releases everyone together.
type hub struct {
	size int

	mu   sync.Mutex
	cond *sync.Cond
	gen  int
	n    int

	scatterData []any
	gatherData  []any
	bcastData   any
}

func newHub(size int) *hub {
	h := &hub{size: size}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// rendezvous runs contribute() for every rank under mutual exclusion,
// waits until all `size` ranks have contributed, then runs after() for
// every rank (also under mutual exclusion) before returning. Exactly one
// rank (whichever arrives last) performs the wakeup; the others resume
// from cond.Wait already holding the lock.
func (h *hub) rendezvous(contribute, after func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	myGen := h.gen
	contribute()
	h.n++
	if h.n == h.size {
		h.n = 0
		h.gen++
		h.cond.Broadcast()
	} else {
		for h.gen == myGen {
			h.cond.Wait()
		}
	}
	after()
}

// GoroutineRuntime simulates one SPMD rank of a size-W group as a
// goroutine, communicating with its peers entirely through an in-process
// hub. It is the local stand-in for a real multi-process/MPI Runtime: the
// collective semantics (scatter/gather/bcast/barrier, one round at a
// time, in lockstep across ranks) are identical, only the transport
// differs.
type GoroutineRuntime struct {
	rank int
	hub  *hub
}

// NewGoroutineRuntimes returns size Runtime handles, one per simulated
// rank, sharing a single hub. Each handle is meant to be driven from its
// own goroutine, calling the same sequence of collectives as every other
// rank (true SPMD lockstep) — mismatched call sequences across ranks will
// deadlock, exactly as a real MPI program would.
func NewGoroutineRuntimes(size int) []Runtime {
	h := newHub(size)
	out := make([]Runtime, size)
	for i := 0; i < size; i++ {
		out[i] = &GoroutineRuntime{rank: i, hub: h}
	}
	return out
}

func (g *GoroutineRuntime) Rank() int { return g.rank }
func (g *GoroutineRuntime) Size() int { return g.hub.size }

func (g *GoroutineRuntime) ScatterAny(data []any) any {
	var result any
	g.hub.rendezvous(func() {
		if data != nil {
			g.hub.scatterData = data
		}
	}, func() {
		if g.hub.scatterData != nil {
			result = g.hub.scatterData[g.rank]
		}
	})
	return result
}

func (g *GoroutineRuntime) GatherAny(item any) []any {
	var result []any
	g.hub.rendezvous(func() {
		if g.hub.gatherData == nil {
			g.hub.gatherData = make([]any, g.hub.size)
		}
		g.hub.gatherData[g.rank] = item
	}, func() {
		if g.rank == 0 {
			result = append([]any(nil), g.hub.gatherData...)
		}
	})
	return result
}

func (g *GoroutineRuntime) BcastAny(item any) any {
	var result any
	g.hub.rendezvous(func() {
		if g.rank == 0 {
			g.hub.bcastData = item
		}
	}, func() {
		result = g.hub.bcastData
	})
	return result
}

func (g *GoroutineRuntime) Barrier() {
	g.hub.rendezvous(func() {}, func() {})
}

// RunSPMD spawns one goroutine per rank of a size-W GoroutineRuntime group
// and runs fn in each, waiting for all to return. It is the harness tests
// and the CLI use to drive a multi-worker conversion locally.
func RunSPMD(size int, fn func(rt Runtime, rank int) error) []error {
	runtimes := NewGoroutineRuntimes(size)
	errs := make([]error, size)
	var wg sync.WaitGroup
	wg.Add(size)
	for i := 0; i < size; i++ {
		go func(rank int) {
			defer wg.Done()
			errs[rank] = fn(runtimes[rank], rank)
		}(i)
	}
	wg.Wait()
	return errs
}
