package scoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"github.com/SundayYogurt/placement_service/internal/engine/similarity"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	defaultMaxConcurrent = 4
	defaultTimeout       = 30 * time.Second
	defaultMaxAttempts   = 3
)

// Engine runs the three scorers for one (student, drive) pair and combines
// them into a CRS breakdown. Concurrent similarity work is bounded by a
// weighted semaphore since the backing model may hold a fixed memory
// footprint; each attempt gets its own timeout and scoring is retried a
// bounded number of times (it is a pure function of the snapshots, so
// retries are idempotent).
type Engine struct {
	model       similarity.Model
	sem         *semaphore.Weighted
	timeout     time.Duration
	maxAttempts int
	logger      *zap.Logger
}

type Option func(*Engine)

func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func WithMaxConcurrent(n int64) Option {
	return func(e *Engine) {
		if n > 0 {
			e.sem = semaphore.NewWeighted(n)
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

func NewEngine(model similarity.Model, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		model:       model,
		sem:         semaphore.NewWeighted(defaultMaxConcurrent),
		timeout:     defaultTimeout,
		maxAttempts: defaultMaxAttempts,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the CRS breakdown. It returns domain.ErrScoringUnavailable
// once every attempt has timed out or failed; the caller decides what that
// means for the application record.
func (e *Engine) Score(ctx context.Context, student *domain.Student, drive *domain.Drive) (*Breakdown, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrScoringUnavailable, err)
	}
	defer e.sem.Release(1)

	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		breakdown, err := e.scoreOnce(ctx, student, drive)
		if err == nil {
			return breakdown, nil
		}
		lastErr = err
		e.logger.Warn("scoring attempt failed",
			zap.String("student_id", student.ID),
			zap.String("drive_id", drive.ID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrScoringUnavailable, lastErr)
}

func (e *Engine) scoreOnce(ctx context.Context, student *domain.Student, drive *domain.Drive) (*Breakdown, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	semantic, matched, missing, err := semanticMatch(ctx, e.model, student, drive)
	if err != nil {
		return nil, err
	}

	project, err := projectRelevance(ctx, e.model, student, drive)
	if err != nil {
		return nil, err
	}

	completeness := Completeness(student)

	if err := ctx.Err(); err != nil {
		return nil, errors.New("scoring timed out")
	}

	breakdown := Combine(semantic, project, completeness, matched, missing)
	e.logger.Debug("scored application",
		zap.String("student_id", student.ID),
		zap.String("drive_id", drive.ID),
		zap.String("model", e.model.Name()),
		zap.Float64("crs_score", breakdown.CRSScore),
	)
	return breakdown, nil
}
