package service

import (
	"context"

	"RiskDash/internal/domain/models"
)

// AnalysisResolver produces an analysis for a free-form asset input.
type AnalysisResolver interface {
	ResolveAnalysis(ctx context.Context, input string) (models.AnalysisResult, error)
}

// FixtureSource supplies the lowest-precedence asset data and offline suggestions.
type FixtureSource interface {
	Fixture(input string) models.AssetSummary
	Suggest(input string) (models.SearchSuggestion, bool)
}
