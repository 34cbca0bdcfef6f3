package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/jobModel"
	"github.com/akolanti/DocSummarizer/internal/metrics"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
)

var ErrPoolStopped = errors.New("worker pool stopped")

// Executor runs one job to completion.
type Executor interface {
	Execute(ctx context.Context, job jobModel.Job) jobModel.Result
}

// Pool is an elastic set of workers fed from one buffered queue. It never
// shrinks below MinWorkers and never grows past MaxWorkers.
type Pool struct {
	cfg      config.WorkerConfig
	executor Executor

	jobChannel        chan jobModel.Job
	dispatcherChannel chan bool
	stopWorkerChannel chan struct{}
	workerWaitGroup   sync.WaitGroup
	stopOnce          sync.Once

	currentWorkerCount int64
	requestCount       int64
	logger             *logger_i.Logger
}

func NewPool(cfg config.WorkerConfig, executor Executor) *Pool {
	if cfg.MinWorkers < 1 {
		cfg.MinWorkers = config.MinWorkerCount
	}
	if cfg.MaxWorkers < cfg.MinWorkers {
		cfg.MaxWorkers = cfg.MinWorkers
	}
	if cfg.RequestsPerNewWorker < 1 {
		cfg.RequestsPerNewWorker = config.RequestsPerNewWorkerCount
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = config.IdleWorkerTimeout
	}
	if cfg.BufferLimit < 0 {
		cfg.BufferLimit = config.BufferLimit
	}
	return &Pool{
		cfg:               cfg,
		executor:          executor,
		jobChannel:        make(chan jobModel.Job, cfg.BufferLimit),
		dispatcherChannel: make(chan bool, cfg.MaxWorkers),
		stopWorkerChannel: make(chan struct{}),
		logger:            logger_i.NewLogger("WorkerPool"),
	}
}

// Start launches the minimum workers and the dispatcher that grows the pool.
func (p *Pool) Start() {
	p.logger.Info("Initializing worker pool", "min", p.cfg.MinWorkers, "max", p.cfg.MaxWorkers)
	for i := int64(0); i < p.cfg.MinWorkers; i++ {
		p.createWorker()
	}
	go p.dispatcher()
}

// Submit queues the job and waits for its result. A cancelled ctx stops the
// wait, the worker still finishes the job.
func (p *Pool) Submit(ctx context.Context, job jobModel.Job) (jobModel.Result, error) {
	if job.Reply == nil {
		job.Reply = make(chan jobModel.Result, 1)
	}
	if job.CreatedTime.IsZero() {
		job.CreatedTime = time.Now()
	}
	if job.TraceId == "" {
		job.TraceId = config.TraceID(ctx)
	}

	select {
	case <-p.stopWorkerChannel:
		return jobModel.Result{}, ErrPoolStopped
	default:
	}

	select {
	case p.jobChannel <- job:
		metrics.IncrementJobsInQueue()
	case <-p.stopWorkerChannel:
		return jobModel.Result{}, ErrPoolStopped
	case <-ctx.Done():
		return jobModel.Result{}, ctx.Err()
	}

	accurateCount := atomic.AddInt64(&p.requestCount, 1)
	if accurateCount%p.cfg.RequestsPerNewWorker == 0 || len(job.Documents) > 1 || len(p.jobChannel) > 0 {
		p.signalDispatcher()
	}

	select {
	case result := <-job.Reply:
		return result, nil
	case <-p.stopWorkerChannel:
		return jobModel.Result{}, ErrPoolStopped
	case <-ctx.Done():
		return jobModel.Result{}, ctx.Err()
	}
}

// Stop retires every worker after its current job and waits for them.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.logger.Info("Stopping worker pool")
		close(p.stopWorkerChannel)
	})
	p.workerWaitGroup.Wait()
}

func (p *Pool) WorkerCount() int64 {
	return atomic.LoadInt64(&p.currentWorkerCount)
}

func (p *Pool) signalDispatcher() {
	select {
	case p.dispatcherChannel <- true:
		metrics.StartDispatcherSignalCount()
	default:
		// dispatcher already has pending signals
	}
}

func (p *Pool) dispatcher() {
	p.logger.Info("Dispatcher started")
	for {
		select {
		case <-p.dispatcherChannel:
			if p.WorkerCount() < p.cfg.MaxWorkers {
				p.logger.Info("Creating new worker", "workerCount", p.WorkerCount())
				p.createWorker()
			}
		case <-p.stopWorkerChannel:
			return
		}
	}
}

func (p *Pool) createWorker() {
	p.workerWaitGroup.Add(1)
	atomic.AddInt64(&p.currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	go p.worker()
}

func (p *Pool) worker() {
	for {
		select {
		case currentJob := <-p.jobChannel:
			metrics.DecrementJobsInQueue()
			p.executeJob(currentJob)

		case <-p.stopWorkerChannel:
			atomic.AddInt64(&p.currentWorkerCount, -1)
			p.removeWorker("Stop worker signal received")
			return

		case <-time.After(p.cfg.IdleTimeout):
			if p.tryRetire() {
				p.removeWorker("Idle worker timeout")
				return
			}
		}
	}
}

// tryRetire claims one slot above the minimum, so concurrent idle workers
// can never take the pool below it.
func (p *Pool) tryRetire() bool {
	for {
		n := atomic.LoadInt64(&p.currentWorkerCount)
		if n <= p.cfg.MinWorkers {
			return false
		}
		if atomic.CompareAndSwapInt64(&p.currentWorkerCount, n, n-1) {
			return true
		}
	}
}

// removeWorker expects the caller to have already released the worker's count.
func (p *Pool) removeWorker(reason string) {
	p.workerWaitGroup.Done()
	metrics.DecrementActiveWorkerCount()
	p.logger.Info("Removed worker", "reason", reason, "workerCount", p.WorkerCount())
}
