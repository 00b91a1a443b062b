package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/jordanvega/seoforge-backend/pkg/logger"
)

const (
	defaultSweepBatch = 500
	maxSweepBatches   = 20
)

// ExpiredContentJobParams configure the expired content sweep.
type ExpiredContentJobParams struct {
	Logger    *logger.Logger
	Repo      expiredContentSweeper
	BatchSize int
}

type expiredContentSweeper interface {
	DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error)
}

// NewExpiredContentJob builds the job that removes cached generations
// whose TTL elapsed. Reads already treat expired rows as misses; the
// sweep keeps the table from accumulating dead rows for products nobody
// revisits.
func NewExpiredContentJob(params ExpiredContentJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	batch := params.BatchSize
	if batch <= 0 {
		batch = defaultSweepBatch
	}
	return &expiredContentJob{
		logg:  params.Logger,
		repo:  params.Repo,
		batch: batch,
		now:   time.Now,
	}, nil
}

type expiredContentJob struct {
	logg  *logger.Logger
	repo  expiredContentSweeper
	batch int
	now   func() time.Time
}

func (j *expiredContentJob) Name() string { return "expired-content-sweep" }

func (j *expiredContentJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC()
	var total int64
	var errs error

	for i := 0; i < maxSweepBatches; i++ {
		removed, err := j.repo.DeleteExpired(ctx, cutoff, j.batch)
		total += removed
		if err != nil {
			errs = multierr.Append(errs, err)
			break
		}
		if removed < int64(j.batch) {
			break
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"rows_deleted": total,
	})
	if errs != nil {
		j.logg.Error(logCtx, "expired content sweep incomplete", errs)
		return fmt.Errorf("expired content sweep: %w", errs)
	}
	j.logg.Info(logCtx, "expired content sweep complete")
	return nil
}
