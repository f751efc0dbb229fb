// Package worker runs batches of independent row tasks on a fixed set of
// long-lived goroutines fed by a bounded queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/talentmatch/internal/adapters/mq/queue"
	"github.com/okian/talentmatch/pkg/logger"
	"github.com/okian/talentmatch/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Queue defines how the pool submits and receives tasks.
type Queue interface {
	Enqueue(ctx context.Context, t queue.Task) bool
	Dequeue(ctx context.Context) <-chan queue.Task
	Close() error
}

// Pool executes batches on its workers. A task that does not fit in the
// queue runs inline on the submitting goroutine.
type Pool struct {
	queue   Queue
	size    int
	name    string
	logger  logger.Logger
	wg      sync.WaitGroup
	started atomic.Bool
	stopped atomic.Bool
}

// NewPool creates a pool of workerCount workers. A non-positive count uses
// runtime.NumCPU().
func NewPool(workerCount int, q Queue, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		queue:  q,
		size:   workerCount,
		name:   "worker",
		logger: logger.Get().Named("worker-pool"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Start launches the workers. They run until Shutdown closes the queue so
// that every accepted task is executed. Calling Start twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.work(ctx, p.name+"-"+strconv.Itoa(i))
	}
	metrics.UpdateWorkerCount(p.size)
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", p.size))
}

func (p *Pool) work(ctx context.Context, name string) {
	defer p.wg.Done()
	p.logger.Debug(ctx, "worker started", logger.String("worker", name))
	for task := range p.queue.Dequeue(ctx) {
		start := time.Now()
		task()
		metrics.RecordWorkerTask(elapsedMs(start))
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

// Run calls fn for every index in [0, n) and waits for all calls to finish.
// The first error cancels the remaining calls and is returned. A panic in fn
// is returned as an error.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return ctx.Err()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := 0; i < n; i++ {
		if runCtx.Err() != nil {
			break
		}
		wg.Add(1)
		task := p.task(runCtx, i, fn, fail, &wg)
		if p.stopped.Load() || !p.started.Load() || !p.queue.Enqueue(runCtx, task) {
			start := time.Now()
			task()
			metrics.RecordWorkerInline(elapsedMs(start))
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

func (p *Pool) task(ctx context.Context, i int, fn func(context.Context, int) error, fail func(error), wg *sync.WaitGroup) queue.Task {
	return func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				fail(fmt.Errorf("task %d panicked: %v", i, r))
			}
		}()
		if ctx.Err() != nil {
			return
		}
		if err := fn(ctx, i); err != nil {
			fail(err)
		}
	}
}

// Shutdown closes the queue and waits for the workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if !p.stopped.CompareAndSwap(false, true) {
		return ErrStopped
	}
	if err := p.queue.Close(); err != nil {
		p.logger.Error(ctx, "error closing queue", logger.Error(err))
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	select {
	case <-done:
		metrics.UpdateWorkerCount(0)
		p.logger.Info(ctx, "worker pool stopped")
		return nil
	case <-shutdownCtx.Done():
		p.logger.Warn(ctx, "worker pool shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", shutdownCtx.Err())
	}
}
