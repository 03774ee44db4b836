package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	domsvc "RiskDash/internal/domain/service"
	"RiskDash/internal/services/performance"
	"RiskDash/internal/services/presentation"
	"RiskDash/internal/services/viewmodel"
	applogger "RiskDash/pkg/logger"
)

// AssetQuery is the asset the UI selected plus whatever it already knows about it.
type AssetQuery struct {
	Symbol     string
	Name       string
	Price      *float64
	Type       models.AssetType
	Convention presentation.Convention
}

// context returns the injected-context layer, or nil when the UI supplied nothing beyond the symbol.
func (q AssetQuery) context() *models.AssetSummary {
	if q.Name == "" && q.Price == nil && q.Type == "" {
		return nil
	}
	return &models.AssetSummary{Symbol: q.Symbol, Name: q.Name, Price: q.Price, Type: q.Type}
}

// AssetView is a normalized asset ready to render.
type AssetView struct {
	Asset      models.AssetSummary              `json:"asset"`
	Colors     presentation.AssetColors         `json:"colors"`
	Flow       models.Ordered[models.Direction] `json:"flowDirections,omitempty"`
	Convention presentation.Convention          `json:"convention"`
	Source     string                           `json:"source"`
}

// AssetViewService builds asset view models from backend data, cached
// snapshots and mock fixtures, in that order.
type AssetViewService struct {
	backend    domrepo.MarketBackend
	snapshots  domrepo.SnapshotStore
	fixtures   domsvc.FixtureSource
	convention presentation.Convention
	riskFree   float64
	observer
}

func NewAssetViewService(
	backend domrepo.MarketBackend,
	snapshots domrepo.SnapshotStore,
	fixtures domsvc.FixtureSource,
	convention presentation.Convention,
	l *applogger.Logger,
	m domrepo.Metrics,
) *AssetViewService {
	return &AssetViewService{
		backend:    backend,
		snapshots:  snapshots,
		fixtures:   fixtures,
		convention: convention.Or(presentation.ConventionChinese),
		riskFree:   0.02,
		observer:   newObserver(l, m),
	}
}

// View never fails on backend trouble; it degrades to cache, then mock data.
func (s *AssetViewService) View(ctx context.Context, q AssetQuery) (AssetView, error) {
	start := time.Now()
	defer s.since("asset_view", start)

	q.Symbol = strings.TrimSpace(q.Symbol)
	if q.Symbol == "" {
		return AssetView{}, &models.DataShapeError{Field: "symbol", Err: errors.New("empty")}
	}

	fetch, source := s.fetch(ctx, q.Symbol)
	mock := s.fixtures.Fixture(q.Symbol)
	asset := viewmodel.Normalize(fetch, q.context(), mock)

	if asset.Type == models.AssetTypeFund && asset.Performance == nil && len(asset.RealHistory) > 1 {
		asset.Performance = performance.Compute(asset.RealHistory, s.riskFree)
	}

	conv := q.Convention.Or(s.convention)
	return AssetView{
		Asset:      asset,
		Colors:     presentation.ColorsForAsset(asset, conv),
		Flow:       viewmodel.FlowDirections(asset.Flow),
		Convention: conv,
		Source:     source,
	}, nil
}

// fetch returns the real-data layer and where it came from.
func (s *AssetViewService) fetch(ctx context.Context, symbol string) (*models.AssetSummary, string) {
	bars, err := s.backend.MarketData(ctx, symbol)
	name := ""
	if err == nil && len(bars) == 0 {
		var res models.FetchStockResult
		res, err = s.backend.FetchStock(ctx, models.FetchStockRequest{Symbol: symbol})
		bars, name = res.Bars, res.Name
	}

	if err == nil {
		if len(bars) == 0 {
			return nil, SourceMock
		}
		if s.snapshots != nil {
			if serr := s.snapshots.SaveBars(ctx, symbol, bars); serr != nil {
				s.l.Warn("snapshot save failed", applogger.String("symbol", symbol), applogger.Error(serr))
			}
		}
		return &models.AssetSummary{Symbol: symbol, Name: name, RealHistory: bars}, SourceBackend
	}

	if s.snapshots != nil {
		if cached, cerr := s.snapshots.Bars(ctx, symbol); cerr == nil && len(cached) > 0 {
			s.fallback("asset_view", SourceCache, err)
			return &models.AssetSummary{Symbol: symbol, RealHistory: cached}, SourceCache
		}
	}
	s.fallback("asset_view", SourceMock, err)
	return nil, SourceMock
}
