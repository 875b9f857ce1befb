package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGetExpire(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	store.Set("a", "1", time.Minute)
	if v, ok := store.Get("a"); !ok || v != "1" {
		t.Fatalf("expected a=1, got %q %v", v, ok)
	}

	store.Set("b", "2", -time.Second)
	if _, ok := store.Get("b"); ok {
		t.Fatalf("expected expired key to be missing")
	}

	store.Delete("a")
	if _, ok := store.Get("a"); ok {
		t.Fatalf("expected deleted key to be missing")
	}
}

func TestMemoryLocker(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	locker := NewMemoryLocker(store)
	ctx := context.Background()

	token, ok, err := locker.TryLock(ctx, "m1", time.Minute)
	if err != nil || !ok || token == "" {
		t.Fatalf("expected first lock to succeed: %q %v %v", token, ok, err)
	}
	if _, ok, _ := locker.TryLock(ctx, "m1", time.Minute); ok {
		t.Fatalf("expected second lock to fail")
	}
	if _, ok, _ := locker.TryLock(ctx, "m2", time.Minute); !ok {
		t.Fatalf("expected independent key to lock")
	}
	if err := locker.Unlock(ctx, "m1", token); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, ok, _ := locker.TryLock(ctx, "m1", time.Minute); !ok {
		t.Fatalf("expected lock after release")
	}
}

func TestMemoryLocker_StaleHolderCannotRelease(t *testing.T) {
	locker := NewMemoryLocker(nil)
	defer locker.store.Close()
	ctx := context.Background()

	stale, ok, _ := locker.TryLock(ctx, "m", -time.Second)
	if !ok {
		t.Fatalf("expected lock")
	}
	current, ok, _ := locker.TryLock(ctx, "m", time.Minute)
	if !ok {
		t.Fatalf("expected expired lock to be replaced")
	}

	if err := locker.Unlock(ctx, "m", stale); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, ok, _ := locker.TryLock(ctx, "m", time.Minute); ok {
		t.Fatalf("an expired holder must not release the current lock")
	}
	if err := locker.Unlock(ctx, "m", current); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, ok, _ := locker.TryLock(ctx, "m", time.Minute); !ok {
		t.Fatalf("expected lock after the owner released it")
	}
}
