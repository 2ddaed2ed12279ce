// Package eventloop provides the single-goroutine executor that owns overlay state.
package eventloop

import (
	"context"
	"sync"
)

// Loop is a FIFO queue of continuations drained by one goroutine.
//
// Post may be called from any goroutine. RunPending, Run and RunUntil must be called
// from the owning goroutine only.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	ready chan struct{}
}

// New creates an empty Loop.
func New() *Loop {
	return &Loop{ready: make(chan struct{}, 1)}
}

// Post schedules fn. It never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.ready <- struct{}{}:
	default:
	}
}

// Ready returns a channel that receives a value after Post has been called.
// Several posts may coalesce into one signal.
func (l *Loop) Ready() <-chan struct{} {
	return l.ready
}

// RunPending runs queued continuations until the queue is empty, including the ones
// posted while draining, and returns how many ran.
func (l *Loop) RunPending() int {
	n := 0
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
			n++
		}
	}
}

// Wait blocks until a continuation is posted or ctx is done.
func (l *Loop) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ready:
		return nil
	}
}

// Run drains the loop until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()
		if err := l.Wait(ctx); err != nil {
			return err
		}
	}
}

// RunUntil drains the loop until done is closed or ctx is done. Continuations queued
// when done closes still run before it returns.
func (l *Loop) RunUntil(ctx context.Context, done <-chan struct{}) error {
	for {
		l.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			l.RunPending()
			return nil
		case <-l.ready:
		}
	}
}
