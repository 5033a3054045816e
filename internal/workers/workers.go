// Package workers runs fire-and-forget background jobs that must finish before
// the process exits.
package workers

import (
	"context"
	"sync"
)

// Global is the worker group shared by the event service and the servers.
var Global = NewWorker()

type Worker struct {
	wg sync.WaitGroup
}

func NewWorker() *Worker {
	return &Worker{}
}

// Go runs fn in a new goroutine tracked by the worker.
func (w *Worker) Go(fn func()) {
	w.wg.Go(fn)
}

// Wait blocks until every job has returned.
func (w *Worker) Wait() {
	w.wg.Wait()
}

// WaitContext blocks until every job has returned or ctx is done.
func (w *Worker) WaitContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
