package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jordanvega/seoforge-backend/pkg/logger"
)

type fakeSweeper struct {
	batches []int64
	calls   int
	limits  []int
	err     error
}

func (f *fakeSweeper) DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error) {
	f.calls++
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return 0, f.err
	}
	if f.calls > len(f.batches) {
		return 0, nil
	}
	return f.batches[f.calls-1], nil
}

func newExpiredContentJob(t *testing.T, sweeper *fakeSweeper, batch int) *expiredContentJob {
	t.Helper()
	jobIface, err := NewExpiredContentJob(ExpiredContentJobParams{
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
		Repo:      sweeper,
		BatchSize: batch,
	})
	if err != nil {
		t.Fatalf("NewExpiredContentJob: %v", err)
	}
	job, ok := jobIface.(*expiredContentJob)
	if !ok {
		t.Fatalf("expected expiredContentJob, got %T", jobIface)
	}
	return job
}

func TestExpiredContentJobSweepsUntilBatchNotFull(t *testing.T) {
	sweeper := &fakeSweeper{batches: []int64{10, 10, 3}}
	job := newExpiredContentJob(t, sweeper, 10)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if sweeper.calls != 3 {
		t.Fatalf("expected 3 batches, got %d", sweeper.calls)
	}
	for _, limit := range sweeper.limits {
		if limit != 10 {
			t.Fatalf("expected batch limit 10, got %d", limit)
		}
	}
}

func TestExpiredContentJobSingleShortBatch(t *testing.T) {
	sweeper := &fakeSweeper{batches: []int64{2}}
	job := newExpiredContentJob(t, sweeper, 10)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sweeper.calls != 1 {
		t.Fatalf("expected 1 batch, got %d", sweeper.calls)
	}
}

func TestExpiredContentJobPropagatesErrors(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("boom")}
	job := newExpiredContentJob(t, sweeper, 10)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if sweeper.calls != 1 {
		t.Fatalf("expected sweep to stop after error, got %d calls", sweeper.calls)
	}
}

func TestNewExpiredContentJobValidation(t *testing.T) {
	if _, err := NewExpiredContentJob(ExpiredContentJobParams{Repo: &fakeSweeper{}}); err == nil {
		t.Fatal("expected error without logger")
	}
	if _, err := NewExpiredContentJob(ExpiredContentJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	}); err == nil {
		t.Fatal("expected error without repository")
	}
}
