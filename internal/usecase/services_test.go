package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"RiskDash/internal/domain/models"
	"RiskDash/internal/services/presentation"
	applogger "RiskDash/pkg/logger"
)

func TestLatestAnalysisFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	snaps := newSnapshots()
	be := &fakeBackend{latest: &models.AnalysisResult{Symbol: "AAPL", Summary: "fresh"}}
	s := NewLatestAnalysisService(be, snaps, nil, nil, nil)

	res, src, err := s.Latest(ctx, "AAPL")
	if err != nil || src != SourceBackend || res.Summary != "fresh" {
		t.Fatalf("got %+v %q %v", res, src, err)
	}

	be.latest, be.latestErr = nil, errDown
	res, src, err = s.Latest(ctx, "AAPL")
	if err != nil || src != SourceCache || res.Summary != "fresh" {
		t.Fatalf("got %+v %q %v", res, src, err)
	}

	if _, _, err = s.Latest(ctx, "MSFT"); !errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestLatestAnalysisHistoryWithoutStore(t *testing.T) {
	s := NewLatestAnalysisService(&fakeBackend{}, nil, nil, nil, nil)
	runs, err := s.History(context.Background(), "AAPL", 10)
	if err != nil || runs == nil || len(runs) != 0 {
		t.Fatalf("got %v, %v", runs, err)
	}
}

func TestWatchlistColorsAndFallback(t *testing.T) {
	ctx := context.Background()
	snaps := newSnapshots()
	be := &fakeBackend{watchlist: []models.WatchlistItem{
		{Symbol: "AAPL", PctChange: ptr(1.5)},
		{Symbol: "TSLA", PctChange: ptr(-2)},
		{Symbol: "NEW"},
	}}
	s := NewWatchlistService(be, snaps, presentation.ConventionChinese, nil, nil)

	items, src := s.List(ctx, "")
	if src != SourceBackend || len(items) != 3 {
		t.Fatalf("got %d items from %q", len(items), src)
	}
	if items[0].ChangeColor != presentation.ColorRed || items[1].ChangeColor != presentation.ColorGreen || items[2].ChangeColor != "" {
		t.Fatalf("unexpected colors %q %q %q", items[0].ChangeColor, items[1].ChangeColor, items[2].ChangeColor)
	}

	items, _ = s.List(ctx, presentation.ConventionUS)
	if items[0].ChangeColor != presentation.ColorGreen {
		t.Fatalf("us convention should flip colors, got %q", items[0].ChangeColor)
	}

	be.listErr = errDown
	items, src = s.List(ctx, "")
	if src != SourceCache || len(items) != 3 {
		t.Fatalf("expected cached list, got %d from %q", len(items), src)
	}

	empty := NewWatchlistService(&fakeBackend{listErr: errDown}, nil, "", nil, nil)
	items, src = empty.List(ctx, "")
	if src != SourceMock || items == nil || len(items) != 0 {
		t.Fatalf("expected empty list, got %v from %q", items, src)
	}
}

func TestWatchlistDeleteIsUserAction(t *testing.T) {
	ctx := context.Background()
	snaps := newSnapshots()
	if err := snaps.SaveBars(ctx, "AAPL", bars(1, 2)); err != nil {
		t.Fatal(err)
	}
	be := &fakeBackend{}
	s := NewWatchlistService(be, snaps, "", nil, nil)

	if err := s.Delete(ctx, "AAPL"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(be.deleted) != 1 || be.deleted[0] != "AAPL" {
		t.Fatalf("deleted = %v", be.deleted)
	}
	if _, err := snaps.Bars(ctx, "AAPL"); !errors.Is(err, models.ErrNoData) {
		t.Fatalf("snapshot should be invalidated, got %v", err)
	}

	be.deleteErr = errDown
	err := s.Delete(ctx, "TSLA")
	var uae *models.UserActionError
	if !errors.As(err, &uae) || !models.IsNetworkError(err) {
		t.Fatalf("expected wrapped UserActionError, got %v", err)
	}
}

func TestMarketIndicesAndActions(t *testing.T) {
	ctx := context.Background()
	snaps := newSnapshots()
	be := &fakeBackend{indices: []models.MarketIndex{
		{Code: "000001", PctChange: ptr(-0.4)},
		{Code: "399001", Change: ptr(12)},
	}}
	s := NewMarketService(be, snaps, "", nil, nil)

	idx, src := s.Indices(ctx, "")
	if src != SourceBackend || idx[0].ChangeColor != presentation.ColorGreen || idx[1].ChangeColor != presentation.ColorRed {
		t.Fatalf("got %+v from %q", idx, src)
	}

	be.indicesErr = errDown
	if idx, src = s.Indices(ctx, ""); src != SourceCache || len(idx) != 2 {
		t.Fatalf("expected cached indices, got %d from %q", len(idx), src)
	}

	if err := snaps.SaveBars(ctx, "AAPL", bars(1)); err != nil {
		t.Fatal(err)
	}
	res, err := s.SyncMarket(ctx, []string{"cn", "us"})
	if err != nil || res.Count != 2 {
		t.Fatalf("sync: %+v %v", res, err)
	}
	if _, err := snaps.Bars(ctx, "AAPL"); !errors.Is(err, models.ErrNoData) {
		t.Fatal("sync should invalidate snapshots")
	}

	be.actionErr = errDown
	var uae *models.UserActionError
	if _, err := s.TriggerUpdate(ctx); !errors.As(err, &uae) {
		t.Fatalf("trigger: expected UserActionError, got %v", err)
	}
	if _, err := s.SyncIndices(ctx); !errors.As(err, &uae) {
		t.Fatalf("sync indices: expected UserActionError, got %v", err)
	}
}

func TestSearchFallsBackToFixtures(t *testing.T) {
	ctx := context.Background()
	s := NewSearchService(&fakeBackend{search: []models.SearchSuggestion{{Symbol: "AAPL"}}}, fakeFixtures{}, nil, nil)
	if res, src := s.Search(ctx, "app", 5); src != SourceBackend || len(res) != 1 {
		t.Fatalf("got %v from %q", res, src)
	}

	s = NewSearchService(&fakeBackend{searchErr: errDown}, fakeFixtures{}, nil, nil)
	res, src := s.Search(ctx, "Gold ETF", 5)
	if src != SourceMock || len(res) != 1 || res[0].Symbol != "GLD" {
		t.Fatalf("got %v from %q", res, src)
	}
	if res, _ = s.Search(ctx, "nothing", 5); len(res) != 0 {
		t.Fatalf("expected no suggestions, got %v", res)
	}
	if res, _ = s.Search(ctx, "   ", 5); len(res) != 0 {
		t.Fatalf("blank query should return nothing, got %v", res)
	}
}

func TestAdminLogsFallsBackToCollector(t *testing.T) {
	ctx := context.Background()
	be := &fakeBackend{logs: []models.BackendLogEntry{{Message: "remote"}}}
	col := applogger.NewLogCollector(&applogger.CollectionConfig{TimeInterval: time.Hour, CountThreshold: 100, RecentCapacity: 10})
	defer col.Close()
	col.AddLog("warn", "backend slow", nil, "client.go:10")
	col.AddLog("info", "started", nil, "main.go:1")

	s := NewAdminLogsService(be, col, nil, nil)
	logs, src := s.Logs(ctx, models.LogQuery{Level: "warning", Limit: 10})
	if src != SourceBackend || len(logs) != 1 || be.logQuery.Level != "warn" {
		t.Fatalf("got %v from %q (query %+v)", logs, src, be.logQuery)
	}

	be.logsErr = errDown
	logs, src = s.Logs(ctx, models.LogQuery{Level: "warn", Limit: 10})
	if src != SourceLocal || len(logs) != 1 || logs[0].Message != "backend slow" || logs[0].Source != "client.go:10" {
		t.Fatalf("got %+v from %q", logs, src)
	}
}

func TestAssetUpdatesHandlerInvalidates(t *testing.T) {
	ctx := context.Background()
	snaps := newSnapshots()
	if err := snaps.SaveBars(ctx, "AAPL", bars(1)); err != nil {
		t.Fatal(err)
	}
	h := NewAssetUpdatesHandler("asset-updates", snaps, nil)
	if h.Topic() != "asset-updates" {
		t.Fatalf("topic = %q", h.Topic())
	}
	if err := h.Handle(ctx, []byte("{not json")); err != nil {
		t.Fatalf("malformed events are skipped, got %v", err)
	}
	if err := h.Handle(ctx, []byte(`{"symbol":"aapl","kind":"bars"}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := snaps.Bars(ctx, "AAPL"); !errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected snapshot dropped, got %v", err)
	}
}
