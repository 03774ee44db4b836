package repository

import (
	"context"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
)

// BackendAnalysisSink stores results on the market backend so that
// LatestAnalysis can return them later.
type BackendAnalysisSink struct {
	b domrepo.MarketBackend
}

var _ domrepo.AnalysisSink = (*BackendAnalysisSink)(nil)

func NewBackendAnalysisSink(b domrepo.MarketBackend) *BackendAnalysisSink {
	return &BackendAnalysisSink{b: b}
}

func (s *BackendAnalysisSink) Name() string { return "backend" }

func (s *BackendAnalysisSink) Record(ctx context.Context, run models.AnalysisRun, r models.AnalysisResult) error {
	return s.b.SaveAnalysis(ctx, models.SaveAnalysisRequest{Symbol: run.Symbol, Analysis: r})
}
