// Package par runs read-only passes over handle-indexed data on several goroutines.
// Nothing in this package locks the data it reads: callers must not mutate an
// allocator or store while a pass over it is in flight.
package par

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed indicates jobs cannot be submitted because the pool closed.
var ErrPoolClosed = errors.New("par: worker pool closed")

// Pool is a fixed set of long-lived workers. A nil *Pool runs jobs inline.
type Pool struct {
	size   int
	jobs   chan job
	closed chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

type job struct {
	ctx    context.Context
	fn     func(context.Context) error
	result chan error
}

// NewPool starts size workers. It returns nil when size is not positive.
func NewPool(size int) *Pool {
	if size <= 0 {
		return nil
	}
	p := &Pool{
		size:   size,
		jobs:   make(chan job),
		closed: make(chan struct{}),
	}
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	if p == nil {
		return 0
	}
	return p.size
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case j, ok := <-p.jobs:
			if !ok {
				return
			}
			p.execute(j)
		case <-p.closed:
			return
		}
	}
}

func (p *Pool) execute(j job) {
	defer close(j.result)
	select {
	case <-j.ctx.Done():
		j.result <- j.ctx.Err()
	default:
		j.result <- j.fn(j.ctx)
	}
}

// Submit queues fn. The returned handle reports its error.
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) *Handle {
	if fn == nil {
		return done(nil)
	}
	if p == nil {
		return done(fn(ctx))
	}
	select {
	case <-p.closed:
		return done(ErrPoolClosed)
	case <-ctx.Done():
		return done(ctx.Err())
	default:
	}
	result := make(chan error, 1)
	if safeSend(p.jobs, job{ctx: ctx, fn: fn, result: result}) {
		return &Handle{result: result}
	}
	return done(ErrPoolClosed)
}

// Close stops the workers and waits for them to exit.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		close(p.closed)
		close(p.jobs)
	})
	p.wg.Wait()
}

// Handle awaits one submitted job.
type Handle struct {
	result chan error
}

// Wait blocks until the job finished and returns its error.
func (h *Handle) Wait() error {
	if h == nil || h.result == nil {
		return nil
	}
	return <-h.result
}

func done(err error) *Handle {
	ch := make(chan error, 1)
	ch <- err
	close(ch)
	return &Handle{result: ch}
}

func safeSend(ch chan job, j job) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	ch <- j
	return true
}
