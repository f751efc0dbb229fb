// Package service wires configuration, the artifact store, the worker pool
// and the scoring facade into the matching service behind the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/talentmatch/internal/adapters/mq/queue"
	"github.com/okian/talentmatch/internal/adapters/mq/worker"
	"github.com/okian/talentmatch/internal/adapters/repository"
	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/features"
	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/scoring"
	"github.com/okian/talentmatch/pkg/logger"
	"github.com/okian/talentmatch/pkg/metrics"
)

// Operation names used in metrics and logs.
const (
	OpMatch         = "match"
	OpMatchBulk     = "match_bulk"
	OpRankAndFilter = "rank_and_filter"
)

// ErrNotStarted is returned by matching calls before Start succeeds.
var ErrNotStarted = errors.New("service not started")

// Service implements the matching dependencies of the HTTP API.
type Service struct {
	mu sync.RWMutex

	cfg         *config.Config
	modelConfig *config.ModelConfig
	store       repository.Store

	queue   *queue.InMemoryQueue
	pool    *worker.Pool
	matcher *scoring.Matcher

	started   bool
	startedAt time.Time
	requests  atomic.Int64
	failures  atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the artifact store the classifier is loaded from.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithModelConfig uses mc instead of reading cfg.ModelConfig at start.
func WithModelConfig(mc *config.ModelConfig) Option {
	return func(s *Service) {
		if mc != nil {
			s.modelConfig = mc
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service from cfg. A nil cfg uses config.New().
func New(cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.New()
	}
	s := &Service{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the classifier and starts the worker pool. Any failure is a
// configuration error and leaves the service stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		s.store = repository.NewFileStore(repository.WithLogger(s.logger.Named("store")))
	}

	mc := s.modelConfig
	if mc == nil {
		loaded, err := config.LoadModelConfig(ctx, s.cfg.ModelConfig)
		if err != nil {
			return err
		}
		mc = loaded
	}
	clf, err := s.store.Classifier(ctx, mc)
	if err != nil {
		return fmt.Errorf("load classifier: %w", err)
	}

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.cfg.QueueSize))
	s.pool = worker.NewPool(s.cfg.WorkerCount, s.queue, worker.WithName("rows"))
	s.pool.Start(ctx)

	pipeline := features.New(
		features.WithRunner(s.pool),
		features.WithParallelThreshold(s.cfg.ParallelThreshold),
	)
	s.matcher = scoring.New(
		timedClassifier{Classifier: clf},
		timedPipeline{next: pipeline},
		features.DefaultColumns(),
		scoring.WithIgnoredCriterion(metrics.RecordCriteriaIgnored),
	)
	s.modelConfig = mc
	metrics.SetModelInfo(clf.Kind().String())

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "matching service started",
		logger.String("model_type", clf.Kind().String()),
		logger.Int("workers", s.pool.Size()),
		logger.Int("queue_size", s.queue.Capacity()),
		logger.Int("parallel_threshold", s.cfg.ParallelThreshold),
	)
	return nil
}

// Stop drains the worker pool.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping matching service")
	s.started = false
	if err := s.pool.Shutdown(ctx); err != nil {
		return fmt.Errorf("stop worker pool: %w", err)
	}
	s.logger.Info(ctx, "matching service stopped")
	return nil
}

func (s *Service) current() (*scoring.Matcher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.matcher, nil
}

// Match scores one pair.
func (s *Service) Match(ctx context.Context, t model.Talent, j model.Job) (model.MatchResult, error) {
	m, err := s.current()
	if err != nil {
		return model.MatchResult{}, err
	}
	metrics.RecordBatchSize(OpMatch, 1)
	res, err := m.Match(ctx, t, j)
	s.record(ctx, OpMatch, err, []model.MatchResult{res})
	return res, err
}

// MatchBulk scores the cross product of talents and jobs.
func (s *Service) MatchBulk(ctx context.Context, talents []model.Talent, jobs []model.Job, filterFalse bool) ([]model.MatchResult, error) {
	m, err := s.current()
	if err != nil {
		return nil, err
	}
	metrics.RecordBatchSize(OpMatchBulk, len(talents)*len(jobs))
	res, err := m.MatchBulk(ctx, talents, jobs, filterFalse)
	s.record(ctx, OpMatchBulk, err, res)
	return res, err
}

// RankAndFilter ranks jobs for one talent and applies criteria.
func (s *Service) RankAndFilter(ctx context.Context, t model.Talent, jobs []model.Job, criteria model.Criteria) ([]model.MatchResult, error) {
	m, err := s.current()
	if err != nil {
		return nil, err
	}
	metrics.RecordBatchSize(OpRankAndFilter, len(jobs))
	res, err := m.RankAndFilter(ctx, t, jobs, criteria)
	s.record(ctx, OpRankAndFilter, err, res)
	return res, err
}

func (s *Service) record(ctx context.Context, op string, err error, res []model.MatchResult) {
	s.requests.Add(1)
	if err != nil {
		s.failures.Add(1)
		metrics.RecordMatchRequest(op, features.KindOf(err))
		s.logger.Debug(ctx, "match request failed", logger.String("operation", op), logger.Error(err))
		return
	}
	metrics.RecordMatchRequest(op, "ok")

	pos := 0
	for _, r := range res {
		if r.Label {
			pos++
		}
	}
	metrics.RecordMatchResults(op, pos, len(res)-pos)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"workerCount":       s.cfg.WorkerCount,
		"queueSize":         s.cfg.QueueSize,
		"parallelThreshold": s.cfg.ParallelThreshold,
		"maxBulkPairs":      s.cfg.MaxBulkPairs,
		"requests":          s.requests.Load(),
		"failedRequests":    s.failures.Load(),
	}
	if s.modelConfig != nil {
		stats["modelType"] = s.modelConfig.ModelType
	}
	if s.started {
		stats["uptimeSeconds"] = time.Since(s.startedAt).Seconds()
		stats["queueLength"] = s.queue.Len(context.Background())
	}
	if snap, err := metrics.Snapshot(); err == nil {
		stats["metrics"] = snap
	}
	return stats
}
