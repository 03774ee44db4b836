package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"RiskDash/internal/domain/models"
	"RiskDash/pkg/cache"
)

func newStore(t *testing.T) *CacheSnapshotStore {
	t.Helper()
	mc := cache.NewMemoryCache(cache.WithMemoryCleanup(0))
	t.Cleanup(func() { _ = mc.Close() })
	return NewCacheSnapshotStore(mc, time.Hour)
}

func TestSnapshotStoreMissIsNoData(t *testing.T) {
	s := newStore(t)
	if _, err := s.Bars(context.Background(), "X"); !errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if _, err := s.Analysis(context.Background(), "X"); !errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestSnapshotStoreSymbolKeysAreCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	if err := s.SaveBars(ctx, "btc", []models.Bar{{Date: "2024-01-02", Close: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	bars, err := s.Bars(ctx, " BTC ")
	if err != nil || len(bars) != 1 || bars[0].Close != 1 {
		t.Fatalf("unexpected %v %v", bars, err)
	}
}

func TestSnapshotStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_ = s.SaveBars(ctx, "A", []models.Bar{{Date: "d", Close: 1}})
	_ = s.SaveBars(ctx, "B", []models.Bar{{Date: "d", Close: 2}})
	_ = s.SaveWatchlist(ctx, []models.WatchlistItem{{Symbol: "A"}})
	_ = s.SaveAnalysis(ctx, "A", models.AnalysisResult{SignalValue: 1})

	if err := s.Invalidate(ctx, "A"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := s.Bars(ctx, "A"); !errors.Is(err, models.ErrNoData) {
		t.Fatalf("A bars should be gone")
	}
	if _, err := s.Bars(ctx, "B"); err != nil {
		t.Fatalf("B bars should remain: %v", err)
	}
	if _, err := s.Watchlist(ctx); !errors.Is(err, models.ErrNoData) {
		t.Fatalf("watchlist should be gone")
	}
	if r, err := s.Analysis(ctx, "A"); err != nil || r.SignalValue != 1 {
		t.Fatalf("analysis should survive invalidation: %v %v", r, err)
	}

	if err := s.Invalidate(ctx, ""); err != nil {
		t.Fatalf("invalidate all: %v", err)
	}
	if _, err := s.Bars(ctx, "B"); !errors.Is(err, models.ErrNoData) {
		t.Fatalf("B bars should be gone after full invalidation")
	}
}
