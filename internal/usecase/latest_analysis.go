package usecase

import (
	"context"
	"fmt"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	applogger "RiskDash/pkg/logger"
)

// LatestAnalysisService reads the stored analysis of a symbol.
type LatestAnalysisService struct {
	backend   domrepo.MarketBackend
	snapshots domrepo.SnapshotStore
	history   domrepo.AnalysisHistory
	observer
}

func NewLatestAnalysisService(backend domrepo.MarketBackend, snapshots domrepo.SnapshotStore, history domrepo.AnalysisHistory, l *applogger.Logger, m domrepo.Metrics) *LatestAnalysisService {
	return &LatestAnalysisService{backend: backend, snapshots: snapshots, history: history, observer: newObserver(l, m)}
}

// Latest returns ErrNoData when neither the backend nor the cache holds an analysis.
func (s *LatestAnalysisService) Latest(ctx context.Context, symbol string) (*models.AnalysisResult, string, error) {
	res, err := s.backend.LatestAnalysis(ctx, symbol)
	if err == nil && res != nil {
		if s.snapshots != nil {
			_ = s.snapshots.SaveAnalysis(ctx, symbol, *res)
		}
		return res, SourceBackend, nil
	}

	if s.snapshots != nil {
		if cached, cerr := s.snapshots.Analysis(ctx, symbol); cerr == nil {
			s.fallback("latest_analysis", SourceCache, err)
			return cached, SourceCache, nil
		}
	}
	if err != nil {
		s.fallback("latest_analysis", SourceMock, err)
	}
	return nil, "", models.ErrNoData
}

// History lists recorded runs. Without a history store it is always empty.
func (s *LatestAnalysisService) History(ctx context.Context, symbol string, limit int) ([]models.AnalysisRun, error) {
	if s.history == nil {
		return []models.AnalysisRun{}, nil
	}
	runs, err := s.history.Recent(ctx, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("analysis history: %w", err)
	}
	return runs, nil
}
