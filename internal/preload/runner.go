package preload

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Prober loads enough of a media reference to know it is usable. It returns
// the number of bytes observed.
type Prober interface {
	Probe(ctx context.Context, ref string) (int64, error)
}

// Outcome is one probe result tagged with the generation it belongs to.
type Outcome struct {
	Generation uint64
	Index      int
	Ref        string
	Result     Result
}

// Runner issues one probe per reference with bounded concurrency.
type Runner struct {
	prober  Prober
	limit   int
	timeout time.Duration
}

// NewRunner returns a runner. A non-positive limit means one probe at a
// time; a non-positive timeout disables the per-probe deadline.
func NewRunner(p Prober, limit int, timeout time.Duration) *Runner {
	if limit <= 0 {
		limit = 1
	}
	return &Runner{prober: p, limit: limit, timeout: timeout}
}

// Start probes refs in the background. The returned channel is buffered to
// hold every outcome, so workers never block on a slow reader, and is closed
// once all probes have finished. Cancelling ctx aborts probes that have not
// completed; they still report, with the context error.
func (r *Runner) Start(ctx context.Context, gen uint64, refs []string) <-chan Outcome {
	out := make(chan Outcome, len(refs))
	go func() {
		defer close(out)
		var g errgroup.Group
		g.SetLimit(r.limit)
		for i, ref := range refs {
			g.Go(func() error {
				out <- Outcome{Generation: gen, Index: i, Ref: ref, Result: r.probe(ctx, ref)}
				return nil
			})
		}
		_ = g.Wait()
	}()
	return out
}

func (r *Runner) probe(ctx context.Context, ref string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	n, err := r.prober.Probe(ctx, ref)
	return Result{Bytes: n, Err: err}
}
