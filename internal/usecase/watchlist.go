package usecase

import (
	"context"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	"RiskDash/internal/services/presentation"
	applogger "RiskDash/pkg/logger"
)

// WatchlistEntry is a watchlist item with its change color.
type WatchlistEntry struct {
	models.WatchlistItem
	ChangeColor presentation.Color `json:"changeColor,omitempty"`
}

// WatchlistService lists and edits the backend watchlist.
type WatchlistService struct {
	backend    domrepo.MarketBackend
	snapshots  domrepo.SnapshotStore
	convention presentation.Convention
	observer
}

func NewWatchlistService(backend domrepo.MarketBackend, snapshots domrepo.SnapshotStore, convention presentation.Convention, l *applogger.Logger, m domrepo.Metrics) *WatchlistService {
	return &WatchlistService{
		backend:    backend,
		snapshots:  snapshots,
		convention: convention.Or(presentation.ConventionChinese),
		observer:   newObserver(l, m),
	}
}

// List falls back to the last good watchlist, then to an empty list.
func (s *WatchlistService) List(ctx context.Context, conv presentation.Convention) ([]WatchlistEntry, string) {
	items, err := s.backend.Watchlist(ctx)
	source := SourceBackend
	if err == nil {
		if s.snapshots != nil {
			_ = s.snapshots.SaveWatchlist(ctx, items)
		}
	} else {
		items, source = nil, SourceMock
		if s.snapshots != nil {
			if cached, cerr := s.snapshots.Watchlist(ctx); cerr == nil {
				items, source = cached, SourceCache
			}
		}
		s.fallback("watchlist", source, err)
	}

	conv = conv.Or(s.convention)
	out := make([]WatchlistEntry, 0, len(items))
	for _, it := range items {
		e := WatchlistEntry{WatchlistItem: it}
		if it.PctChange != nil {
			e.ChangeColor = presentation.ColorFor(*it.PctChange, conv)
		}
		out = append(out, e)
	}
	return out, source
}

// Delete is a user action: failures are surfaced and never retried.
func (s *WatchlistService) Delete(ctx context.Context, symbol string) error {
	if err := s.backend.DeleteWatchlist(ctx, symbol); err != nil {
		s.l.Error("watchlist delete failed", applogger.String("symbol", symbol), applogger.Error(err))
		return userAction("delete watchlist item", err)
	}
	if s.snapshots != nil {
		_ = s.snapshots.Invalidate(ctx, symbol)
	}
	return nil
}
