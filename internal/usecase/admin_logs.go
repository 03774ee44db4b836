package usecase

import (
	"context"
	"time"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	applogger "RiskDash/pkg/logger"
)

// AdminLogsService reads backend logs, falling back to the entries this
// process collected itself.
type AdminLogsService struct {
	backend   domrepo.MarketBackend
	collector *applogger.LogCollector
	observer
}

func NewAdminLogsService(backend domrepo.MarketBackend, collector *applogger.LogCollector, l *applogger.Logger, m domrepo.Metrics) *AdminLogsService {
	return &AdminLogsService{backend: backend, collector: collector, observer: newObserver(l, m)}
}

func (s *AdminLogsService) Logs(ctx context.Context, q models.LogQuery) ([]models.BackendLogEntry, string) {
	if q.Level == "warning" {
		q.Level = "warn"
	}
	logs, err := s.backend.AdminLogs(ctx, q)
	if err == nil {
		return logs, SourceBackend
	}

	s.fallback("admin_logs", SourceLocal, err)
	out := []models.BackendLogEntry{}
	if s.collector == nil {
		return out, SourceLocal
	}
	for _, e := range s.collector.Recent(q.Limit, q.Level, q.Search) {
		out = append(out, models.BackendLogEntry{
			Timestamp: e.LastSeen.Format(time.RFC3339),
			Level:     e.Level,
			Message:   e.Message,
			Source:    e.Caller,
			Count:     e.Count,
		})
	}
	return out, SourceLocal
}
