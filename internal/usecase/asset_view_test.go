package usecase

import (
	"context"
	"errors"
	"testing"

	"RiskDash/internal/domain/models"
	"RiskDash/internal/services/presentation"
)

func bars(closes ...float64) []models.Bar {
	out := make([]models.Bar, len(closes))
	for i, c := range closes {
		out[i] = models.Bar{Timestamp: int64(1700000000 + i*86400), Open: c, High: c, Low: c, Close: c, Volume: 100}
	}
	return out
}

func TestViewFromBackend(t *testing.T) {
	be := &fakeBackend{bars: bars(10, 11, 12)}
	snaps := newSnapshots()
	s := NewAssetViewService(be, snaps, fakeFixtures{asset: models.AssetSummary{Name: "Fixture"}}, "", nil, nil)

	v, err := s.View(context.Background(), AssetQuery{Symbol: " AAPL ", Name: "Apple"})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.Source != SourceBackend {
		t.Fatalf("source = %q", v.Source)
	}
	if v.Asset.Name != "Apple" {
		t.Fatalf("context name should win over fixture, got %q", v.Asset.Name)
	}
	if v.Asset.Price == nil || *v.Asset.Price != 12 {
		t.Fatalf("price should come from the last bar, got %v", v.Asset.Price)
	}
	if v.Convention != presentation.ConventionChinese {
		t.Fatalf("default convention = %q", v.Convention)
	}
	if cached, err := snaps.Bars(context.Background(), "AAPL"); err != nil || len(cached) != 3 {
		t.Fatalf("bars should be snapshotted, got %d, %v", len(cached), err)
	}
	if be.fetchCalls != 0 {
		t.Fatal("fetch-stock should not be called when market data has bars")
	}
}

func TestViewFetchesWhenMarketDataEmpty(t *testing.T) {
	be := &fakeBackend{fetch: models.FetchStockResult{Symbol: "600519", Name: "Moutai", Bars: bars(1700, 1710)}}
	s := NewAssetViewService(be, nil, fakeFixtures{}, "", nil, nil)

	v, err := s.View(context.Background(), AssetQuery{Symbol: "600519"})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if be.fetchCalls != 1 || v.Source != SourceBackend || v.Asset.Name != "Moutai" {
		t.Fatalf("unexpected view %+v (fetch calls %d)", v, be.fetchCalls)
	}
}

func TestViewFallsBackToSnapshotThenMock(t *testing.T) {
	snaps := newSnapshots()
	m := newCountingMetrics()
	fix := fakeFixtures{asset: models.AssetSummary{Name: "Fixture", Price: ptr(5)}}

	ok := NewAssetViewService(&fakeBackend{bars: bars(1, 2)}, snaps, fix, "", nil, m)
	if _, err := ok.View(context.Background(), AssetQuery{Symbol: "AAPL"}); err != nil {
		t.Fatal(err)
	}

	down := NewAssetViewService(&fakeBackend{barsErr: errDown}, snaps, fix, "", nil, m)
	v, err := down.View(context.Background(), AssetQuery{Symbol: "aapl"})
	if err != nil {
		t.Fatalf("a network failure must not surface: %v", err)
	}
	if v.Source != SourceCache || v.Asset.Price == nil || *v.Asset.Price != 2 {
		t.Fatalf("expected cached bars, got source %q price %v", v.Source, v.Asset.Price)
	}

	v, err = down.View(context.Background(), AssetQuery{Symbol: "MSFT"})
	if err != nil {
		t.Fatal(err)
	}
	if v.Source != SourceMock || v.Asset.Name != "Fixture" || *v.Asset.Price != 5 {
		t.Fatalf("expected fixture data, got %+v", v)
	}
	if m.fallbacks["asset_view/cache"] != 1 || m.fallbacks["asset_view/mock"] != 1 {
		t.Fatalf("unexpected fallbacks %v", m.fallbacks)
	}
}

func TestViewComputesFundPerformance(t *testing.T) {
	fix := fakeFixtures{asset: models.AssetSummary{Type: models.AssetTypeFund}}
	s := NewAssetViewService(&fakeBackend{bars: bars(1, 1.1, 1.05, 1.2)}, nil, fix, presentation.ConventionUS, nil, nil)

	v, err := s.View(context.Background(), AssetQuery{Symbol: "510300"})
	if err != nil {
		t.Fatal(err)
	}
	if v.Asset.Performance == nil || v.Asset.Performance.Return == nil {
		t.Fatalf("fund performance should be computed, got %+v", v.Asset.Performance)
	}
	if v.Convention != presentation.ConventionUS {
		t.Fatalf("configured convention ignored: %q", v.Convention)
	}
}

func TestViewRejectsEmptySymbol(t *testing.T) {
	s := NewAssetViewService(&fakeBackend{}, nil, fakeFixtures{}, "", nil, nil)
	_, err := s.View(context.Background(), AssetQuery{Symbol: "  "})
	var dse *models.DataShapeError
	if !errors.As(err, &dse) {
		t.Fatalf("expected DataShapeError, got %v", err)
	}
}
