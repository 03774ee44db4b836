package usecase

import (
	"context"
	"strings"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	domsvc "RiskDash/internal/domain/service"
	applogger "RiskDash/pkg/logger"
)

// SearchService proxies symbol search. When the backend is unreachable the
// fixture matching the query is suggested instead.
type SearchService struct {
	backend  domrepo.MarketBackend
	fixtures domsvc.FixtureSource
	observer
}

func NewSearchService(backend domrepo.MarketBackend, fixtures domsvc.FixtureSource, l *applogger.Logger, m domrepo.Metrics) *SearchService {
	return &SearchService{backend: backend, fixtures: fixtures, observer: newObserver(l, m)}
}

func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]models.SearchSuggestion, string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchSuggestion{}, SourceBackend
	}
	res, err := s.backend.Search(ctx, query, limit)
	if err == nil {
		return res, SourceBackend
	}

	s.fallback("search", SourceMock, err)
	out := []models.SearchSuggestion{}
	if sg, ok := s.fixtures.Suggest(query); ok {
		out = append(out, sg)
	}
	return out, SourceMock
}
