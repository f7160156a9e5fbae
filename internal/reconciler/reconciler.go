package reconciler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/awsembako/backoffice/internal/config"
	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/internal/queue"
	"github.com/awsembako/backoffice/pkg/logger"
	"github.com/awsembako/backoffice/pkg/redis"
	"github.com/awsembako/backoffice/pkg/worker"
)

const ProcessingTimeout = time.Second * 5
const HealthInterval = time.Second * 30
const ShutdownTimeout = time.Minute

// DebtRecalculator is the reconciliation entry point: rebuild every
// supplier payable from the surviving purchase rows.
type DebtRecalculator interface {
	RecalculateAllSupplierDebt(ctx context.Context) ([]*model.SupplierDebtReport, error)
}

// Processor handles one consumed queue message.
type Processor interface {
	Process(ctx context.Context, message *queue.Message) error
	GetType() string
}

// Service consumes the stock alert stream and periodically
// reconciles supplier debt balances.
type Service struct {
	adapter   redis.RedisAdapter
	queues    []*queue.Queue
	processor Processor
	debts     DebtRecalculator
	metrics   *serviceMetrics
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	worker    *worker.WorkerManager
}

func NewService(adapter redis.RedisAdapter, debts DebtRecalculator) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		adapter: adapter,
		queues:  make([]*queue.Queue, 0),
		debts:   debts,
		metrics: newServiceMetrics(),
		ctx:     ctx,
		cancel:  cancel,
		worker:  worker.NewWorkerManager(10_000, config.Get().ReconcileWorkers, nil),
	}
}

func (s *Service) RegisterProcessor(p Processor) {
	s.processor = p
	logger.Info("Registered processor", "type", p.GetType())
}

func (s *Service) Start() error {
	logger.Info("Starting reconciler service...")

	s.worker.SetWorker(s.workerHandler)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.worker.Start(); err != nil {
			logger.Error("Worker manager stopped", "error", err)
		}
	}()

	// Each replica needs a distinct consumer name or the stream group
	// delivers them the same pending entries.
	consumerName := config.Get().QueueConsumerName
	if consumerName == "" {
		consumerName = "reconciler-" + uuid.New().String()[:8]
	}

	queueConfig := queue.QueueConfig{
		Name:              config.Get().QueueName,
		ConsumerGroup:     config.Get().QueueConsumerGroup,
		ConsumerName:      consumerName,
		MaxRetries:        config.Get().QueueMaxRetries,
		VisibilityTimeout: config.Get().QueueVisibilityTimeout,
		PollInterval:      config.Get().QueuePollInterval,
		BatchSize:         config.Get().QueueBatchSize,
		MaxLen:            config.Get().QueueMaxLen,
		EnableDLQ:         config.Get().QueueEnableDLQ,
	}

	q, err := queue.NewQueue(s.adapter, queueConfig)
	if err != nil {
		return fmt.Errorf("failed to create alert queue: %w", err)
	}
	if err := q.Consume(s.messageHandler); err != nil {
		return fmt.Errorf("failed to start alert consumer: %w", err)
	}
	s.queues = append(s.queues, q)

	s.wg.Add(2)
	go s.debtReconcileLoop()
	go s.healthChecker()

	logger.Info("Reconciler service started", "consumers", len(s.queues), "workers", config.Get().ReconcileWorkers)
	return nil
}

// debtReconcileLoop periodically rebuilds supplier payables so that
// drift from manual data fixes never survives longer than one
// interval.
func (s *Service) debtReconcileLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(config.Get().ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runDebtReconcile()
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Service) runDebtReconcile() {
	start := time.Now()
	reports, err := s.debts.RecalculateAllSupplierDebt(s.ctx)
	if err != nil {
		logger.Error("Supplier debt reconciliation failed", "error", err)
		return
	}

	adjusted := 0
	for _, r := range reports {
		if r.Adjusted {
			adjusted++
			logger.Warn("Supplier debt drift corrected",
				"supplier_id", r.SupplierID,
				"old_hutang", r.OldHutang,
				"new_hutang", r.NewHutang,
			)
		}
	}
	logger.Info("Supplier debt reconciliation done",
		"suppliers", len(reports),
		"adjusted", adjusted,
		"duration", time.Since(start).String(),
	)
}

func (s *Service) healthChecker() {
	defer s.wg.Done()

	ticker := time.NewTicker(HealthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.performHealthCheck()
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Service) performHealthCheck() {
	if err := s.adapter.Client().Ping(context.Background()).Err(); err != nil {
		logger.Error("HEALTH CHECK FAILED: Redis connection error", "error", err)
		return
	}

	for i, q := range s.queues {
		stats, err := q.GetStats()
		if err != nil {
			logger.Warn("HEALTH CHECK WARNING: Queue stats unavailable", "queue", i, "error", err)
			continue
		}
		if stats.PendingMessages > 10000 {
			logger.Warn("HEALTH CHECK WARNING: Queue has high lag", "queue", i, "pending_messages", stats.PendingMessages)
		}
	}

	logger.Info("HEALTH CHECK: OK - Service healthy")
}

// Stop gracefully stops the service.
func (s *Service) Stop() {
	logger.Info("Shutting down reconciler service...")

	s.cancel()

	timeout := ShutdownTimeout
	stopChan := make(chan bool, len(s.queues))

	for i, q := range s.queues {
		go func(index int, queue *queue.Queue) {
			if err := queue.Stop(timeout); err != nil {
				logger.Error("Error stopping queue", "queue", index, "error", err)
			}
			stopChan <- true
		}(i, q)
	}

	for range s.queues {
		select {
		case <-stopChan:
		case <-time.After(timeout + 5*time.Second):
			logger.Warn("Timeout waiting for queues to stop")
		}
	}

	s.worker.Exit()
	s.wg.Wait()

	stats := s.metrics.GetStats()
	logger.Info("Final metrics",
		"total_processed", stats["total_processed"],
		"total_failed", stats["total_failed"],
	)

	logger.Info("Reconciler service stopped")
}

type jobResult struct {
	msg        *queue.Message
	resultChan chan error
	ctx        context.Context
}

// messageHandler receives messages from the queue and enqueues them on
// the worker pool, blocking until the worker reports back.
func (s *Service) messageHandler(ctx context.Context, msg *queue.Message) error {
	resultChan := make(chan error, 1)

	msgCtx, cancel := context.WithTimeout(ctx, ProcessingTimeout+time.Second)
	defer cancel()

	job := &jobResult{
		msg:        msg,
		resultChan: resultChan,
		ctx:        msgCtx,
	}

	s.worker.Enqueue(job)

	select {
	case err := <-resultChan:
		return err
	case <-msgCtx.Done():
		return fmt.Errorf("timeout waiting for worker to process message: %w", msgCtx.Err())
	}
}

func (s *Service) workerHandler(workerIndex int, job interface{}) {
	jobRes, ok := job.(*jobResult)
	if !ok {
		logger.Error("Invalid job type in worker", "worker", workerIndex)
		return
	}

	msg := jobRes.msg
	start := time.Now()
	var resultErr error

	select {
	case <-jobRes.ctx.Done():
		logger.Warn("Job context cancelled before processing started", "worker", workerIndex)
		return
	default:
	}

	if s.processor == nil {
		logger.Info("No processor registered", "worker", workerIndex)
		s.metrics.RecordFailure()
		resultErr = nil // ACK - unknown type won't succeed on retry
	} else {
		if err := s.processor.Process(jobRes.ctx, msg); err != nil {
			s.metrics.RecordFailure()
			logger.Error("Failed to process alert", "worker", workerIndex, "error", err)
			resultErr = err
		} else {
			s.metrics.RecordSuccess(time.Since(start))
			resultErr = nil
		}
	}

	// If messageHandler timed out, the channel may have no receiver.
	select {
	case jobRes.resultChan <- resultErr:
	case <-jobRes.ctx.Done():
		logger.Warn("Context cancelled while sending result, message handler timed out", "worker", workerIndex)
	}
}
