package repository

import (
	"context"

	"RiskDash/internal/domain/models"
)

// MarketBackend is the opaque market-data backend. Transport failures are
// reported as *models.NetworkError.
type MarketBackend interface {
	FetchStock(ctx context.Context, req models.FetchStockRequest) (models.FetchStockResult, error)
	Watchlist(ctx context.Context) ([]models.WatchlistItem, error)
	DeleteWatchlist(ctx context.Context, symbol string) error
	MarketData(ctx context.Context, symbol string) ([]models.Bar, error)
	// LatestAnalysis returns nil without error when the backend has none stored.
	LatestAnalysis(ctx context.Context, symbol string) (*models.AnalysisResult, error)
	SaveAnalysis(ctx context.Context, req models.SaveAnalysisRequest) error
	SyncMarket(ctx context.Context, markets []string) (models.ActionResult, error)
	Search(ctx context.Context, query string, limit int) ([]models.SearchSuggestion, error)
	MarketIndices(ctx context.Context) ([]models.MarketIndex, error)
	SyncIndices(ctx context.Context) (models.ActionResult, error)
	TriggerUpdate(ctx context.Context) (models.ActionResult, error)
	AdminLogs(ctx context.Context, q models.LogQuery) ([]models.BackendLogEntry, error)
}

// AnalysisSink receives completed analysis runs.
type AnalysisSink interface {
	Name() string
	Record(ctx context.Context, run models.AnalysisRun, result models.AnalysisResult) error
}

// AnalysisHistory stores runs and lists them back.
type AnalysisHistory interface {
	AnalysisSink
	Recent(ctx context.Context, symbol string, limit int) ([]models.AnalysisRun, error)
}

type Metrics interface {
	RecordBackendCall(endpoint, result string)
	RecordFallback(op, source string)
	RecordAnalysis(outcome string)
	RecordSignal(symbol string, value float64)
	RecordLatency(op string, seconds float64)
}

// SnapshotStore keeps the last good backend answers for fallback reads.
// Reads return models.ErrNoData on a miss.
type SnapshotStore interface {
	SaveBars(ctx context.Context, symbol string, bars []models.Bar) error
	Bars(ctx context.Context, symbol string) ([]models.Bar, error)
	SaveWatchlist(ctx context.Context, items []models.WatchlistItem) error
	Watchlist(ctx context.Context) ([]models.WatchlistItem, error)
	SaveIndices(ctx context.Context, indices []models.MarketIndex) error
	Indices(ctx context.Context) ([]models.MarketIndex, error)
	SaveAnalysis(ctx context.Context, symbol string, r models.AnalysisResult) error
	Analysis(ctx context.Context, symbol string) (*models.AnalysisResult, error)
	// Invalidate drops snapshots for symbol, or every snapshot when symbol is empty.
	Invalidate(ctx context.Context, symbol string) error
}
