package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrProbeFailed is returned by Prober for refs listed in Fail.
var ErrProbeFailed = errors.New("probe failed")

// Prober is a preload.Prober stand-in that succeeds for every ref except the
// ones listed in Fail. It records every ref it was asked about.
type Prober struct {
	Fail  map[string]bool
	Bytes int64

	mu    sync.Mutex
	calls []string
}

// Probe implements preload.Prober.
func (p *Prober) Probe(ctx context.Context, ref string) (int64, error) {
	p.mu.Lock()
	p.calls = append(p.calls, ref)
	p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if p.Fail[ref] {
		return 0, ErrProbeFailed
	}
	return p.Bytes, nil
}

// Calls returns the refs probed so far.
func (p *Prober) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}
