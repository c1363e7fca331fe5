package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrShutdownTimedOut is returned by Shutdown when workers had to be interrupted.
var ErrShutdownTimedOut = errors.New("shutdown grace period exceeded")

// Handler processes one item. It must return promptly once ctx is cancelled
// and must not panic; failures are the handler's to log.
type Handler[T any] func(ctx context.Context, item T)

// Stats is a point-in-time view of a pool.
type Stats struct {
	Name      string
	Workers   int
	Backlog   int
	InFlight  int64
	Processed int64
}

// Pool runs a fixed number of workers, each taking one item at a time from a
// shared queue. Workers run in an errgroup and stop when the queue is closed
// and drained or when Shutdown runs out of patience.
type Pool[T any] struct {
	name    string
	queue   *Queue[T]
	workers int
	handle  Handler[T]
	logger  *slog.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	inFlight  atomic.Int64
	processed atomic.Int64
}

// NewPool creates a stopped pool; workers below one are raised to one.
func NewPool[T any](name string, queue *Queue[T], workers int, handle Handler[T], logger *slog.Logger) *Pool[T] {
	return &Pool[T]{
		name:    name,
		queue:   queue,
		workers: max(workers, 1),
		handle:  handle,
		logger:  logger.With("component", name+"_pool"),
		done:    make(chan struct{}),
	}
}

// Start launches the workers. Cancellation of ctx is not inherited: workers
// are only stopped by Shutdown, so that pending items can drain first.
func (p *Pool[T]) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true

	workerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel

	group, groupCtx := errgroup.WithContext(workerCtx)
	for i := range p.workers {
		group.Go(func() error {
			return p.work(groupCtx, i)
		})
	}

	go func() {
		if err := group.Wait(); err != nil {
			p.logger.ErrorContext(ctx, "Worker pool stopped with error", "error", err)
		}
		close(p.done)
	}()

	p.logger.InfoContext(ctx, "Worker pool started", "workers", p.workers)
}

// Shutdown stops accepting items, waits up to grace for the workers to drain
// the queue and finish their current item, then interrupts them and waits for
// them to exit. No worker goroutine is left when it returns.
func (p *Pool[T]) Shutdown(grace time.Duration) error {
	p.queue.Close()

	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return nil
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-p.done:
		p.cancel()
		p.logger.Info("Worker pool drained", "processed", p.processed.Load())
		return nil
	case <-timer.C:
	}

	p.cancel()
	<-p.done
	p.logger.Warn("Worker pool interrupted", "grace", grace.String(), "backlog", p.queue.Len())
	return fmt.Errorf("%s pool: %w", p.name, ErrShutdownTimedOut)
}

// Stats reports queue depth and worker activity.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Name:      p.name,
		Workers:   p.workers,
		Backlog:   p.queue.Len(),
		InFlight:  p.inFlight.Load(),
		Processed: p.processed.Load(),
	}
}

func (p *Pool[T]) work(ctx context.Context, worker int) error {
	for {
		item, err := p.queue.Take(ctx)
		if errors.Is(err, ErrQueueClosed) || errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("worker %d: %w", worker, err)
		}

		p.inFlight.Add(1)
		p.handle(ctx, item)
		p.inFlight.Add(-1)
		p.processed.Add(1)
	}
}
