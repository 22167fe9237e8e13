// Package effects runs side effects (directory calls) off the dashboard event
// loops on a fixed pool of workers fed by a bounded queue.
package effects

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/frahmantamala/user-dashboard/pkg/metrics"
)

var (
	ErrQueueFull  = errors.New("effect queue is full")
	ErrPoolClosed = errors.New("effect pool is shut down")
)

// Job is one unit of work. Run receives the pool context, which is cancelled
// on Shutdown.
type Job struct {
	Name string
	Run  func(ctx context.Context)
}

type Worker struct {
	ID         int
	WorkerPool chan chan Job
	JobChannel chan Job
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan Job, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(Job)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker processing job", "worker_id", w.ID, "job", job.Name)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

type Config struct {
	MaxWorkers   int
	JobQueueSize int
}

type Pool struct {
	logger  *slog.Logger
	metrics *metrics.Metrics

	jobQueue   chan Job
	workerPool chan chan Job
	maxWorkers int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewPool(config Config, logger *slog.Logger, m *metrics.Metrics) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 64
	}

	p := &Pool{
		logger:     logger,
		metrics:    m,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan Job, jobQueueSize),
		workerPool: make(chan chan Job, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	p.start()

	return p
}

func (p *Pool) start() {
	p.once.Do(func() {
		for i := 0; i < p.maxWorkers; i++ {
			worker := NewWorker(i, p.workerPool, p.logger)
			worker.Start(p.ctx, &p.wg, p.process)
		}

		p.wg.Add(1)
		go p.dispatch()

		p.logger.Info("effect worker pool started",
			"max_workers", p.maxWorkers,
			"queue_size", cap(p.jobQueue))
	})
}

func (p *Pool) dispatch() {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			select {
			case jobChannel := <-p.workerPool:
				select {
				case jobChannel <- job:
				case <-p.ctx.Done():
					p.logger.Info("dispatcher shutting down")
					return
				}
			case <-p.ctx.Done():
				p.logger.Info("dispatcher shutting down")
				return
			}
		case <-p.ctx.Done():
			p.logger.Info("dispatcher shutting down")
			return
		}
	}
}

func (p *Pool) process(job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.EffectJob("panic")
			p.logger.Error("effect job panicked", "job", job.Name, "panic", r)
		}
	}()
	job.Run(p.ctx)
	p.metrics.EffectJob("done")
}

// Submit queues job without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobQueue <- job:
		return nil
	default:
		p.metrics.EffectJob("rejected")
		p.logger.Warn("effect queue full, rejecting job",
			"job", job.Name,
			"queue_capacity", cap(p.jobQueue))
		return ErrQueueFull
	}
}

// Shutdown stops accepting jobs, cancels running ones and waits for the
// workers to exit. Queued jobs that never started are dropped.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.logger.Info("shutting down effect pool")
	p.cancel()
	p.wg.Wait()
	p.logger.Info("effect pool shutdown complete")
}
