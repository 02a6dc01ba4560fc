package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStorageTest(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	storage := NewRedisStorage(rdb, "la", "legends:session", ttl)
	return storage, mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestRedisStorageRoundTrip(t *testing.T) {
	storage, _, done := newRedisStorageTest(t, 0)
	defer done()
	ctx := context.Background()

	if err := storage.Save(ctx, []byte(`{"version":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Fatalf("unexpected payload: %s", data)
	}
}

func TestRedisStorageAbsentKey(t *testing.T) {
	storage, _, done := newRedisStorageTest(t, 0)
	defer done()

	data, err := storage.Load(context.Background())
	if err != nil {
		t.Fatalf("load of absent key must not error, got %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil payload for absent key, got %s", data)
	}
}

func TestRedisStorageDeleteIdempotent(t *testing.T) {
	storage, _, done := newRedisStorageTest(t, 0)
	defer done()
	ctx := context.Background()

	if err := storage.Save(ctx, []byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := storage.Delete(ctx); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := storage.Delete(ctx); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	data, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Fatal("record survived delete")
	}
}

func TestRedisStorageTTLExpiry(t *testing.T) {
	storage, mr, done := newRedisStorageTest(t, time.Minute)
	defer done()
	ctx := context.Background()

	if err := storage.Save(ctx, []byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	data, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Fatal("record outlived its TTL")
	}
}
