// Package workerpool provides a bounded goroutine pool with backpressure.
//
// When all workers are busy and the queue is full, Submit returns
// ErrPoolFull immediately so the caller can decide to drop or retry:
//
//	pool := workerpool.New(4)
//	defer pool.Shutdown()
//
//	if err := pool.Submit(publish); errors.Is(err, workerpool.ErrPoolFull) {
//	    // count as dropped
//	}
package workerpool

import (
	"errors"
	"sync"

	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

var (
	ErrPoolFull   = errors.New("workerpool: pool is full")
	ErrPoolClosed = errors.New("workerpool: pool is closed")
)

// Pool is a bounded goroutine pool.
type Pool struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan func()
	wg     sync.WaitGroup
	once   sync.Once
}

// New creates a Pool with size workers and a queue of 2×size.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{tasks: make(chan func(), size*2)}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until the task is queued. It must not be called
// concurrently with Shutdown.
func (p *Pool) SubmitWait(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	p.tasks <- task
	return nil
}

// Shutdown stops accepting tasks, drains the queue and waits for workers.
// Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		safeRun(task)
	}
}

// safeRun keeps a panicking task from killing its worker.
func safeRun(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("workerpool: task panicked", "panic", r)
		}
	}()
	task()
}
