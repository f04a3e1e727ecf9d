package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeRedisStore struct {
	values map[string]string
}

func newFakeRedisStore() *fakeRedisStore {
	return &fakeRedisStore{values: map[string]string{}}
}

func (s *fakeRedisStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := s.values[key]; ok {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *fakeRedisStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *fakeRedisStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func TestRedisLockAcquireAndRelease(t *testing.T) {
	store := newFakeRedisStore()
	lock, err := NewRedisLock(store, "cron:test", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}

	ok, err := lock.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected acquire to succeed, ok=%v err=%v", ok, err)
	}
	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, exists := store.values["cron:test"]; exists {
		t.Fatal("release should delete the lock key")
	}
}

func TestRedisLockSecondAcquireFails(t *testing.T) {
	store := newFakeRedisStore()
	first, _ := NewRedisLock(store, "cron:test", time.Minute)
	second, _ := NewRedisLock(store, "cron:test", time.Minute)

	if ok, _ := first.Acquire(context.Background()); !ok {
		t.Fatal("first acquire should succeed")
	}
	if ok, _ := second.Acquire(context.Background()); ok {
		t.Fatal("second acquire should fail while the lock is held")
	}
}

func TestRedisLockReleaseRespectsOwnership(t *testing.T) {
	store := newFakeRedisStore()
	lock, _ := NewRedisLock(store, "cron:test", time.Minute)

	if ok, _ := lock.Acquire(context.Background()); !ok {
		t.Fatal("acquire should succeed")
	}
	// Someone else took over after our TTL expired.
	store.values["cron:test"] = "other-owner"

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if store.values["cron:test"] != "other-owner" {
		t.Fatal("release must not delete a lock owned by another instance")
	}
}

func TestRedisLockReleaseWithoutAcquireIsNoOp(t *testing.T) {
	store := newFakeRedisStore()
	lock, _ := NewRedisLock(store, "cron:test", time.Minute)

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("Release: %v", err)
	}
}
