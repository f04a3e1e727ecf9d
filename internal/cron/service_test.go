package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

type fakeLock struct {
	acquired   bool
	acquireErr error
	acquires   int
	releases   int
}

func (l *fakeLock) Acquire(ctx context.Context) (bool, error) {
	l.acquires++
	return l.acquired, l.acquireErr
}

func (l *fakeLock) Release(ctx context.Context) error {
	l.releases++
	return nil
}

func newTestService(t *testing.T, lock Lock, jobs ...Job) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Logger:   logger.New(logger.Options{ServiceName: "test"}),
		Registry: NewRegistry(jobs...),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRunCycleExecutesJobsAndReleasesLock(t *testing.T) {
	lock := &fakeLock{acquired: true}
	job := &stubJob{name: "sweep"}
	svc := newTestService(t, lock, job)

	if err := svc.runCycle(context.Background()); err != nil {
		t.Fatalf("runCycle: %v", err)
	}
	if job.runs != 1 {
		t.Fatalf("expected 1 run, got %d", job.runs)
	}
	if lock.releases != 1 {
		t.Fatalf("expected lock release, got %d", lock.releases)
	}
}

func TestRunCycleSkipsWhenLockHeldElsewhere(t *testing.T) {
	lock := &fakeLock{acquired: false}
	job := &stubJob{name: "sweep"}
	svc := newTestService(t, lock, job)

	if err := svc.runCycle(context.Background()); err != nil {
		t.Fatalf("runCycle: %v", err)
	}
	if job.runs != 0 {
		t.Fatal("job should not run without the lock")
	}
	if lock.releases != 0 {
		t.Fatal("must not release a lock it never acquired")
	}
}

func TestRunCycleContinuesPastFailingJob(t *testing.T) {
	lock := &fakeLock{acquired: true}
	failing := &stubJob{name: "failing", err: errors.New("boom")}
	healthy := &stubJob{name: "healthy"}
	svc := newTestService(t, lock, failing, healthy)

	if err := svc.runCycle(context.Background()); err != nil {
		t.Fatalf("runCycle: %v", err)
	}
	if failing.runs != 1 || healthy.runs != 1 {
		t.Fatalf("expected both jobs to run, got %d and %d", failing.runs, healthy.runs)
	}
}

func TestRunCyclePropagatesAcquireError(t *testing.T) {
	lock := &fakeLock{acquireErr: errors.New("redis down")}
	svc := newTestService(t, lock, &stubJob{name: "sweep"})

	if err := svc.runCycle(context.Background()); err == nil {
		t.Fatal("expected error from lock acquire")
	}
}

func TestNewServiceRequiresLock(t *testing.T) {
	_, err := NewService(ServiceParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	})
	if err == nil {
		t.Fatal("expected error without lock")
	}
}
