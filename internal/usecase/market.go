package usecase

import (
	"context"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	"RiskDash/internal/services/presentation"
	applogger "RiskDash/pkg/logger"
)

// IndexEntry is a market index with its change color.
type IndexEntry struct {
	models.MarketIndex
	ChangeColor presentation.Color `json:"changeColor,omitempty"`
}

// MarketService covers market indices and the backend maintenance actions.
type MarketService struct {
	backend    domrepo.MarketBackend
	snapshots  domrepo.SnapshotStore
	convention presentation.Convention
	observer
}

func NewMarketService(backend domrepo.MarketBackend, snapshots domrepo.SnapshotStore, convention presentation.Convention, l *applogger.Logger, m domrepo.Metrics) *MarketService {
	return &MarketService{
		backend:    backend,
		snapshots:  snapshots,
		convention: convention.Or(presentation.ConventionChinese),
		observer:   newObserver(l, m),
	}
}

// Indices falls back to the last good list, then to an empty list.
func (s *MarketService) Indices(ctx context.Context, conv presentation.Convention) ([]IndexEntry, string) {
	indices, err := s.backend.MarketIndices(ctx)
	source := SourceBackend
	if err == nil {
		if s.snapshots != nil {
			_ = s.snapshots.SaveIndices(ctx, indices)
		}
	} else {
		indices, source = nil, SourceMock
		if s.snapshots != nil {
			if cached, cerr := s.snapshots.Indices(ctx); cerr == nil {
				indices, source = cached, SourceCache
			}
		}
		s.fallback("market_indices", source, err)
	}

	conv = conv.Or(s.convention)
	out := make([]IndexEntry, 0, len(indices))
	for _, idx := range indices {
		e := IndexEntry{MarketIndex: idx}
		switch {
		case idx.PctChange != nil:
			e.ChangeColor = presentation.ColorFor(*idx.PctChange, conv)
		case idx.Change != nil:
			e.ChangeColor = presentation.ColorFor(*idx.Change, conv)
		}
		out = append(out, e)
	}
	return out, source
}

// SyncMarket asks the backend to refresh the given markets.
func (s *MarketService) SyncMarket(ctx context.Context, markets []string) (models.ActionResult, error) {
	res, err := s.backend.SyncMarket(ctx, markets)
	if err != nil {
		s.l.Error("market sync failed", applogger.Strings("markets", markets), applogger.Error(err))
		return res, userAction("sync market", err)
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *MarketService) SyncIndices(ctx context.Context) (models.ActionResult, error) {
	res, err := s.backend.SyncIndices(ctx)
	if err != nil {
		s.l.Error("index sync failed", applogger.Error(err))
		return res, userAction("sync indices", err)
	}
	return res, nil
}

func (s *MarketService) TriggerUpdate(ctx context.Context) (models.ActionResult, error) {
	res, err := s.backend.TriggerUpdate(ctx)
	if err != nil {
		s.l.Error("trigger update failed", applogger.Error(err))
		return res, userAction("trigger update", err)
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *MarketService) invalidate(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Invalidate(ctx, ""); err != nil {
		s.l.Warn("snapshot invalidation failed", applogger.Error(err))
	}
}
