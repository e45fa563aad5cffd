package usecase

import (
	"context"
	"sync"
)

// Run is the handle of one detached execution run.
type Run struct {
	CampaignID string
	done       chan struct{}
}

// Done is closed when the run has finished, whether it completed or
// aborted.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Registry tracks the detached runs of a process and guarantees at most one
// active run per campaign id. It gives shutdown, and future cancellation or
// recovery work, something to attach to instead of dangling goroutines.
type Registry struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	runs map[string]*Run
	wg   sync.WaitGroup
}

// NewRegistry creates an empty registry. Runs started from it stop when
// Shutdown is called.
func NewRegistry() *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		ctx:    ctx,
		cancel: cancel,
		runs:   make(map[string]*Run),
	}
}

// Start launches fn as a detached run bound to campaignID. It returns the
// run handle, or false when a run for that id is already active or the
// registry is shutting down.
func (g *Registry) Start(campaignID string, fn func(ctx context.Context)) (*Run, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ctx.Err() != nil {
		return nil, false
	}
	if _, active := g.runs[campaignID]; active {
		return nil, false
	}
	run := &Run{CampaignID: campaignID, done: make(chan struct{})}
	g.runs[campaignID] = run
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer close(run.done)
		defer func() {
			g.mu.Lock()
			delete(g.runs, campaignID)
			g.mu.Unlock()
		}()
		fn(g.ctx)
	}()
	return run, true
}

// Active returns the number of runs currently in flight.
func (g *Registry) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.runs)
}

// Wait blocks until every started run has finished.
func (g *Registry) Wait() {
	g.wg.Wait()
}

// Shutdown cancels all runs and waits for them to drain, giving up when ctx
// expires.
func (g *Registry) Shutdown(ctx context.Context) error {
	g.cancel()
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
