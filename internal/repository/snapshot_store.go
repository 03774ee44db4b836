package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	"RiskDash/pkg/cache"
)

const (
	keyBars      = "snapshot:bars"
	keyAnalysis  = "snapshot:analysis"
	keyWatchlist = "snapshot:watchlist"
	keyIndices   = "snapshot:indices"
)

// CacheSnapshotStore implements SnapshotStore on top of cache.Service.
type CacheSnapshotStore struct {
	c   cache.Service
	ttl time.Duration
}

var _ domrepo.SnapshotStore = (*CacheSnapshotStore)(nil)

func NewCacheSnapshotStore(c cache.Service, ttl time.Duration) *CacheSnapshotStore {
	return &CacheSnapshotStore{c: c, ttl: ttl}
}

func symbolKey(prefix, symbol string) string {
	return cache.GenerateKey(prefix, strings.ToUpper(strings.TrimSpace(symbol)))
}

func load[T any](ctx context.Context, c cache.Service, key string) (T, error) {
	v, err := cache.GetTyped[T](ctx, c, key)
	if err != nil {
		if cache.IsMiss(err) {
			return v, models.ErrNoData
		}
		return v, fmt.Errorf("snapshot %s: %w", key, err)
	}
	return v, nil
}

func (s *CacheSnapshotStore) SaveBars(ctx context.Context, symbol string, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	return s.c.Set(ctx, symbolKey(keyBars, symbol), bars, s.ttl)
}

func (s *CacheSnapshotStore) Bars(ctx context.Context, symbol string) ([]models.Bar, error) {
	return load[[]models.Bar](ctx, s.c, symbolKey(keyBars, symbol))
}

func (s *CacheSnapshotStore) SaveWatchlist(ctx context.Context, items []models.WatchlistItem) error {
	return s.c.Set(ctx, keyWatchlist, items, s.ttl)
}

func (s *CacheSnapshotStore) Watchlist(ctx context.Context) ([]models.WatchlistItem, error) {
	return load[[]models.WatchlistItem](ctx, s.c, keyWatchlist)
}

func (s *CacheSnapshotStore) SaveIndices(ctx context.Context, indices []models.MarketIndex) error {
	return s.c.Set(ctx, keyIndices, indices, s.ttl)
}

func (s *CacheSnapshotStore) Indices(ctx context.Context) ([]models.MarketIndex, error) {
	return load[[]models.MarketIndex](ctx, s.c, keyIndices)
}

func (s *CacheSnapshotStore) SaveAnalysis(ctx context.Context, symbol string, r models.AnalysisResult) error {
	return s.c.Set(ctx, symbolKey(keyAnalysis, symbol), r, s.ttl)
}

func (s *CacheSnapshotStore) Analysis(ctx context.Context, symbol string) (*models.AnalysisResult, error) {
	r, err := load[models.AnalysisResult](ctx, s.c, symbolKey(keyAnalysis, symbol))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Invalidate keeps cached analyses; only market data snapshots go stale on updates.
func (s *CacheSnapshotStore) Invalidate(ctx context.Context, symbol string) error {
	if symbol == "" {
		return multierr.Combine(
			s.c.DeleteByPattern(ctx, cache.BuildPattern(keyBars+":")),
			s.c.Delete(ctx, keyWatchlist, keyIndices),
		)
	}
	return multierr.Combine(
		s.c.Delete(ctx, symbolKey(keyBars, symbol)),
		s.c.Delete(ctx, keyWatchlist),
	)
}
