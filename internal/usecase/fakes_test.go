package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"RiskDash/internal/domain/models"
	"RiskDash/internal/repository"
	"RiskDash/pkg/cache"
)

var errDown = &models.NetworkError{Op: "test", Err: errors.New("connection refused")}

type fakeBackend struct {
	mu sync.Mutex

	bars       []models.Bar
	barsErr    error
	fetch      models.FetchStockResult
	fetchErr   error
	fetchCalls int
	watchlist  []models.WatchlistItem
	listErr    error
	deleteErr  error
	deleted    []string
	latest     *models.AnalysisResult
	latestErr  error
	indices    []models.MarketIndex
	indicesErr error
	actionErr  error
	search     []models.SearchSuggestion
	searchErr  error
	logs       []models.BackendLogEntry
	logsErr    error
	logQuery   models.LogQuery
	saved      []models.SaveAnalysisRequest
}

func (f *fakeBackend) FetchStock(_ context.Context, _ models.FetchStockRequest) (models.FetchStockResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	return f.fetch, f.fetchErr
}

func (f *fakeBackend) Watchlist(context.Context) ([]models.WatchlistItem, error) {
	return f.watchlist, f.listErr
}

func (f *fakeBackend) DeleteWatchlist(_ context.Context, symbol string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, symbol)
	return nil
}

func (f *fakeBackend) MarketData(context.Context, string) ([]models.Bar, error) {
	return f.bars, f.barsErr
}

func (f *fakeBackend) LatestAnalysis(context.Context, string) (*models.AnalysisResult, error) {
	return f.latest, f.latestErr
}

func (f *fakeBackend) SaveAnalysis(_ context.Context, req models.SaveAnalysisRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, req)
	return nil
}

func (f *fakeBackend) SyncMarket(_ context.Context, markets []string) (models.ActionResult, error) {
	if f.actionErr != nil {
		return models.ActionResult{}, f.actionErr
	}
	return models.ActionResult{Status: "success", Count: len(markets)}, nil
}

func (f *fakeBackend) Search(_ context.Context, query string, limit int) ([]models.SearchSuggestion, error) {
	return f.search, f.searchErr
}

func (f *fakeBackend) MarketIndices(context.Context) ([]models.MarketIndex, error) {
	return f.indices, f.indicesErr
}

func (f *fakeBackend) SyncIndices(context.Context) (models.ActionResult, error) {
	if f.actionErr != nil {
		return models.ActionResult{}, f.actionErr
	}
	return models.ActionResult{Status: "success"}, nil
}

func (f *fakeBackend) TriggerUpdate(context.Context) (models.ActionResult, error) {
	if f.actionErr != nil {
		return models.ActionResult{}, f.actionErr
	}
	return models.ActionResult{Status: "success"}, nil
}

func (f *fakeBackend) AdminLogs(_ context.Context, q models.LogQuery) ([]models.BackendLogEntry, error) {
	f.logQuery = q
	return f.logs, f.logsErr
}

// fakeFixtures answers every input with the same fixture.
type fakeFixtures struct {
	asset models.AssetSummary
}

func (f fakeFixtures) Fixture(input string) models.AssetSummary {
	a := f.asset
	if a.Symbol == "" {
		a.Symbol = input
	}
	return a
}

func (f fakeFixtures) Suggest(input string) (models.SearchSuggestion, bool) {
	if !strings.Contains(strings.ToLower(input), "gold") {
		return models.SearchSuggestion{}, false
	}
	return models.SearchSuggestion{Symbol: "GLD", Name: "Gold", Type: models.AssetTypeFund}, true
}

type countingMetrics struct {
	mu        sync.Mutex
	fallbacks map[string]int
	analysis  map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{fallbacks: map[string]int{}, analysis: map[string]int{}}
}

func (m *countingMetrics) RecordBackendCall(string, string) {}
func (m *countingMetrics) RecordSignal(string, float64)     {}
func (m *countingMetrics) RecordLatency(string, float64)    {}

func (m *countingMetrics) RecordFallback(op, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks[op+"/"+source]++
}

func (m *countingMetrics) RecordAnalysis(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analysis[outcome]++
}

func (m *countingMetrics) analysisCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analysis[outcome]
}

// blockingResolver holds every call until release is closed.
type blockingResolver struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newBlockingResolver() *blockingResolver {
	return &blockingResolver{started: make(chan struct{}, 8), release: make(chan struct{})}
}

func (r *blockingResolver) ResolveAnalysis(ctx context.Context, input string) (models.AnalysisResult, error) {
	r.calls.Add(1)
	r.started <- struct{}{}
	select {
	case <-r.release:
		return models.AnalysisResult{Symbol: input, SignalValue: 2, Summary: "ok"}, nil
	case <-ctx.Done():
		return models.AnalysisResult{}, ctx.Err()
	}
}

func newSnapshots() *repository.CacheSnapshotStore {
	return repository.NewCacheSnapshotStore(cache.NewMemoryCache(cache.WithMemoryCleanup(0)), time.Hour)
}

func ptr(v float64) *float64 { return &v }
