package usecase

import (
	"errors"
	"time"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	applogger "RiskDash/pkg/logger"
)

const (
	SourceBackend = "backend"
	SourceCache   = "cache"
	SourceMock    = "mock"
	SourceLocal   = "local"
)

type nopMetrics struct{}

func (nopMetrics) RecordBackendCall(string, string) {}
func (nopMetrics) RecordFallback(string, string)    {}
func (nopMetrics) RecordAnalysis(string)            {}
func (nopMetrics) RecordSignal(string, float64)     {}
func (nopMetrics) RecordLatency(string, float64)    {}

// observer carries the logger and metrics every use case reports through.
type observer struct {
	l *applogger.Logger
	m domrepo.Metrics
}

func newObserver(l *applogger.Logger, m domrepo.Metrics) observer {
	if l == nil {
		l = applogger.NewNop()
	}
	if m == nil {
		m = nopMetrics{}
	}
	return observer{l: l, m: m}
}

// fallback records a passive read that was answered from source after err.
func (o observer) fallback(op, source string, err error) {
	o.m.RecordFallback(op, source)
	fields := []applogger.Field{
		applogger.String("op", op),
		applogger.String("source", source),
	}
	if err != nil && !errors.Is(err, models.ErrNoData) {
		fields = append(fields, applogger.Error(err))
	}
	o.l.Warn("serving fallback data", fields...)
}

func (o observer) since(op string, start time.Time) {
	o.m.RecordLatency(op, time.Since(start).Seconds())
}

// userAction wraps a failed explicit action so it is surfaced once.
func userAction(action string, err error) error {
	if err == nil {
		return nil
	}
	return &models.UserActionError{Action: action, Err: err}
}
