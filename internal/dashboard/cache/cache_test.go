package cache

import (
	"context"
	"testing"
	"time"

	"opsboard_backend/internal/dashboard/transport"
	"opsboard_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testSnapshot(t *testing.T) (*Snapshot, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, 5*time.Minute, logger.New("test")), srv
}

func TestSetThenGetRoundTrips(t *testing.T) {
	snap, _ := testSnapshot(t)
	ctx := context.Background()

	dash := transport.Dashboard{
		Metrics: transport.Metrics{
			GeneratedAt:      time.Date(2025, 3, 19, 15, 0, 0, 0, time.UTC),
			TotalActualLeads: 7,
		},
		Attention: []transport.AttentionItem{
			{Rule: "all_clear", Severity: "green", Message: "All clear"},
		},
	}

	snap.Set(ctx, dash)

	got, ok := snap.Get(ctx)
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if got.Metrics.TotalActualLeads != 7 {
		t.Fatalf("expected 7 leads, got %d", got.Metrics.TotalActualLeads)
	}
	if len(got.Attention) != 1 || got.Attention[0].Rule != "all_clear" {
		t.Fatalf("unexpected attention list: %+v", got.Attention)
	}
}

func TestGetMissOnEmptyCache(t *testing.T) {
	snap, _ := testSnapshot(t)

	if _, ok := snap.Get(context.Background()); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	snap, srv := testSnapshot(t)
	ctx := context.Background()

	snap.Set(ctx, transport.Dashboard{})
	srv.FastForward(6 * time.Minute)

	if _, ok := snap.Get(ctx); ok {
		t.Fatal("expected miss after TTL elapsed")
	}
}

func TestInvalidateDropsEntry(t *testing.T) {
	snap, _ := testSnapshot(t)
	ctx := context.Background()

	snap.Set(ctx, transport.Dashboard{})
	snap.Invalidate(ctx)

	if _, ok := snap.Get(ctx); ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	snap := New(nil, time.Minute, logger.New("test"))
	ctx := context.Background()

	if snap.Enabled() {
		t.Fatal("nil client must yield a disabled cache")
	}

	snap.Set(ctx, transport.Dashboard{})
	if _, ok := snap.Get(ctx); ok {
		t.Fatal("disabled cache must always miss")
	}
	snap.Invalidate(ctx)
}

func TestCorruptEntryIsTreatedAsMiss(t *testing.T) {
	snap, srv := testSnapshot(t)

	if err := srv.Set("dashboard:snapshot", "{not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	if _, ok := snap.Get(context.Background()); ok {
		t.Fatal("expected corrupt entry to read as a miss")
	}
}
