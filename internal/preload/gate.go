// Package preload gates navigation on every media reference of a surface
// having been probed once. Failures count as resolved; nothing is retried.
package preload

import "fmt"

// Result is the outcome of probing one reference.
type Result struct {
	Bytes int64
	Err   error
}

// State is a read-only snapshot of a gate.
type State struct {
	Total      int
	Resolved   int
	Failed     int
	Bytes      int64
	Ready      bool
	Generation uint64
}

// String renders a compact progress summary.
func (s State) String() string {
	if s.Ready {
		return fmt.Sprintf("ready %d/%d", s.Resolved, s.Total)
	}
	return fmt.Sprintf("loading %d/%d", s.Resolved, s.Total)
}

// Fraction returns resolved/total, or 1 for an empty generation.
func (s State) Fraction() float64 {
	if s.Total == 0 {
		return 1
	}
	return float64(s.Resolved) / float64(s.Total)
}

// Gate counts probe resolutions for the current generation. Arm starts a new
// generation; results tagged with any other generation are ignored. The gate
// is owned by one surface and driven from its event loop.
type Gate struct {
	gen      uint64
	total    int
	seen     []bool
	errs     map[int]error
	resolved int
	failed   int
	bytes    int64
	ready    bool
	onReady  func(gen uint64)
}

// NewGate returns an unarmed gate.
func NewGate() *Gate {
	return &Gate{}
}

// OnReady registers fn to run once per generation when it becomes ready.
func (g *Gate) OnReady(fn func(gen uint64)) {
	g.onReady = fn
}

// Arm discards the current generation and starts counting refs from zero.
// An empty list is ready immediately.
func (g *Gate) Arm(refs []string) uint64 {
	g.gen++
	g.total = len(refs)
	g.seen = make([]bool, len(refs))
	g.errs = make(map[int]error)
	g.resolved = 0
	g.failed = 0
	g.bytes = 0
	g.ready = false
	if g.total == 0 {
		g.markReady()
	}
	return g.gen
}

// Disarm invalidates the current generation so late results are dropped.
func (g *Gate) Disarm() {
	g.gen++
	g.onReady = nil
}

// Resolve records the result for index. It reports whether the result was
// counted; stale generations, out-of-range and repeated indexes are ignored.
func (g *Gate) Resolve(gen uint64, index int, res Result) bool {
	if gen != g.gen || g.ready || index < 0 || index >= g.total || g.seen[index] {
		return false
	}
	g.seen[index] = true
	g.resolved++
	if res.Err != nil {
		g.failed++
		g.errs[index] = res.Err
	} else {
		g.bytes += res.Bytes
	}
	if g.resolved == g.total {
		g.markReady()
	}
	return true
}

func (g *Gate) markReady() {
	g.ready = true
	if g.onReady != nil {
		g.onReady(g.gen)
	}
}

// Ready reports whether every reference of the current generation resolved.
func (g *Gate) Ready() bool {
	return g.ready
}

// Generation returns the current generation.
func (g *Gate) Generation() uint64 {
	return g.gen
}

// Err returns the probe error recorded for index, if any.
func (g *Gate) Err(index int) error {
	return g.errs[index]
}

// State returns a snapshot.
func (g *Gate) State() State {
	return State{
		Total:      g.total,
		Resolved:   g.resolved,
		Failed:     g.failed,
		Bytes:      g.bytes,
		Ready:      g.ready,
		Generation: g.gen,
	}
}
