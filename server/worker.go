package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrWorkerStopped is returned by Do once Stop has been called.
var ErrWorkerStopped = errors.New("server: worker stopped")

type job struct {
	fn   func(*Runtime) (any, error)
	done chan jobResult
}

type jobResult struct {
	value any
	err   error
}

// Worker owns the Runtime. Pokes mutate stored vectors in place and the
// copier assumes a single writer, so every handler runs its store and copier
// calls through Do.
type Worker struct {
	rt       *Runtime
	jobs     chan job
	quit     chan struct{}
	stopOnce sync.Once
}

// NewWorker starts a worker goroutine for rt.
func NewWorker(rt *Runtime) *Worker {
	w := &Worker{
		rt:   rt,
		jobs: make(chan job, 64),
		quit: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	for {
		select {
		case j := <-w.jobs:
			j.done <- w.call(j.fn)
		case <-w.quit:
			return
		}
	}
}

// call runs fn, turning a panic (a copier contract violation, say) into an
// error for the caller.
func (w *Worker) call(fn func(*Runtime) (any, error)) (res jobResult) {
	defer func() {
		if r := recover(); r != nil {
			res = jobResult{err: fmt.Errorf("%v", r)}
		}
	}()
	res.value, res.err = fn(w.rt)
	return res
}

// Do runs fn on the worker goroutine and waits for its result. It gives up
// with ctx.Err() when ctx ends, and with ErrWorkerStopped when the worker
// stops before fn has completed.
func (w *Worker) Do(ctx context.Context, fn func(*Runtime) (any, error)) (any, error) {
	select {
	case <-w.quit:
		return nil, ErrWorkerStopped
	default:
	}

	j := job{fn: fn, done: make(chan jobResult, 1)}
	select {
	case w.jobs <- j:
	case <-w.quit:
		return nil, ErrWorkerStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-j.done:
		return res.value, res.err
	case <-w.quit:
		return nil, ErrWorkerStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop shuts the worker down. Queued jobs that have not started are
// abandoned; their callers get ErrWorkerStopped. Stop may be called more
// than once.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.quit) })
}
