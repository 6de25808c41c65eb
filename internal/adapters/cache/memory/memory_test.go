package memory

import (
	"context"
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore()
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "key", []byte("value"), time.Minute)

	got, ok := s.Get(ctx, "key")
	if !ok {
		t.Fatal("expected key to be present")
	}
	if string(got) != "value" {
		t.Errorf("expected value, got %q", got)
	}
}

func TestStore_MissingKey(t *testing.T) {
	s := NewStore()
	defer s.Close()

	if _, ok := s.Get(context.Background(), "nope"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestStore_Expiry(t *testing.T) {
	s := NewStore()
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "key", []byte("value"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := s.Get(ctx, "key"); ok {
		t.Error("expected expired key to be a miss")
	}
}

func TestStore_ZeroTTLIgnored(t *testing.T) {
	s := NewStore()
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "key", []byte("value"), 0)

	if _, ok := s.Get(ctx, "key"); ok {
		t.Error("expected zero-TTL write to be dropped")
	}
}

func TestStore_Overwrite(t *testing.T) {
	s := NewStore()
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "key", []byte("old"), time.Minute)
	s.Set(ctx, "key", []byte("new"), time.Minute)

	got, _ := s.Get(ctx, "key")
	if string(got) != "new" {
		t.Errorf("expected overwritten value, got %q", got)
	}
}

func TestStore_EvictExpired(t *testing.T) {
	s := NewStore()
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "stale", []byte("x"), time.Nanosecond)
	s.Set(ctx, "fresh", []byte("y"), time.Minute)

	s.evictExpired(time.Now().Add(time.Second))

	s.mu.RLock()
	_, staleThere := s.entries["stale"]
	_, freshThere := s.entries["fresh"]
	s.mu.RUnlock()

	if staleThere {
		t.Error("expected stale entry to be evicted")
	}
	if !freshThere {
		t.Error("expected fresh entry to survive eviction")
	}
}
