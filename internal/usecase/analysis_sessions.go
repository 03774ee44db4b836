package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	domsvc "RiskDash/internal/domain/service"
	applogger "RiskDash/pkg/logger"
)

// ViewInfo identifies an open view.
type ViewInfo struct {
	ID       string    `json:"id"`
	Symbol   string    `json:"symbol,omitempty"`
	OpenedAt time.Time `json:"openedAt"`
}

type viewSession struct {
	info     ViewInfo
	ctx      context.Context
	cancel   context.CancelFunc
	inflight atomic.Bool

	mu   sync.Mutex
	last *models.AnalysisResult
}

// SessionOption configures AnalysisSessions.
type SessionOption func(*AnalysisSessions)

// WithSink sets where completed runs are recorded.
func WithSink(s domrepo.AnalysisSink) SessionOption {
	return func(a *AnalysisSessions) { a.sink = s }
}

// WithSnapshots caches every result as the latest analysis of its symbol.
func WithSnapshots(s domrepo.SnapshotStore) SessionOption {
	return func(a *AnalysisSessions) { a.snapshots = s }
}

// WithSinkTimeout bounds the time spent recording one run.
func WithSinkTimeout(d time.Duration) SessionOption {
	return func(a *AnalysisSessions) {
		if d > 0 {
			a.sinkTimeout = d
		}
	}
}

// WithNow overrides the time source.
func WithNow(now func() time.Time) SessionOption {
	return func(a *AnalysisSessions) { a.now = now }
}

// AnalysisSessions tracks open views and runs analyses for them. A view has
// at most one analysis in flight; closing a view cancels it and discards
// its result.
type AnalysisSessions struct {
	resolver    domsvc.AnalysisResolver
	sink        domrepo.AnalysisSink
	snapshots   domrepo.SnapshotStore
	sinkTimeout time.Duration
	now         func() time.Time
	observer

	mu    sync.RWMutex
	views map[string]*viewSession
}

func NewAnalysisSessions(resolver domsvc.AnalysisResolver, l *applogger.Logger, m domrepo.Metrics, opts ...SessionOption) *AnalysisSessions {
	a := &AnalysisSessions{
		resolver:    resolver,
		sinkTimeout: 5 * time.Second,
		now:         time.Now,
		observer:    newObserver(l, m),
		views:       make(map[string]*viewSession),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open registers a new view.
func (a *AnalysisSessions) Open(symbol string) ViewInfo {
	ctx, cancel := context.WithCancel(context.Background())
	s := &viewSession{
		info:   ViewInfo{ID: uuid.NewString(), Symbol: strings.TrimSpace(symbol), OpenedAt: a.now()},
		ctx:    ctx,
		cancel: cancel,
	}
	a.mu.Lock()
	a.views[s.info.ID] = s
	a.mu.Unlock()
	return s.info
}

// Close unregisters a view and cancels its pending analysis.
func (a *AnalysisSessions) Close(id string) error {
	a.mu.Lock()
	s, ok := a.views[id]
	delete(a.views, id)
	a.mu.Unlock()
	if !ok {
		return models.ErrViewNotFound
	}
	s.cancel()
	return nil
}

// CloseAll cancels every open view.
func (a *AnalysisSessions) CloseAll() {
	a.mu.Lock()
	views := a.views
	a.views = make(map[string]*viewSession)
	a.mu.Unlock()
	for _, s := range views {
		s.cancel()
	}
}

// Len returns the number of open views.
func (a *AnalysisSessions) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.views)
}

func (a *AnalysisSessions) get(id string) (*viewSession, error) {
	a.mu.RLock()
	s, ok := a.views[id]
	a.mu.RUnlock()
	if !ok {
		return nil, models.ErrViewNotFound
	}
	return s, nil
}

// Pending reports whether the view has an analysis in flight.
func (a *AnalysisSessions) Pending(id string) bool {
	s, err := a.get(id)
	return err == nil && s.inflight.Load()
}

// Last returns the latest analysis held by the view, or nil.
func (a *AnalysisSessions) Last(id string) (*models.AnalysisResult, error) {
	s, err := a.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil, nil
	}
	r := *s.last
	return &r, nil
}

// Analyze resolves an analysis for symbol on view id. A second call while
// one is pending returns ErrAnalysisInFlight without resolving. The work is
// cancelled when either ctx ends or the view closes.
func (a *AnalysisSessions) Analyze(ctx context.Context, id, symbol string) (models.AnalysisResult, error) {
	s, err := a.get(id)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	if !s.inflight.CompareAndSwap(false, true) {
		a.m.RecordAnalysis("in_flight")
		return models.AnalysisResult{}, models.ErrAnalysisInFlight
	}
	defer s.inflight.Store(false)

	if symbol = strings.TrimSpace(symbol); symbol == "" {
		symbol = s.info.Symbol
	}

	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	start := time.Now()
	res, err := a.resolver.ResolveAnalysis(runCtx, symbol)
	a.since("analysis", start)

	if s.ctx.Err() != nil {
		a.m.RecordAnalysis("discarded")
		return models.AnalysisResult{}, models.ErrViewClosed
	}
	if err != nil {
		outcome := "error"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = "cancelled"
		}
		a.m.RecordAnalysis(outcome)
		return models.AnalysisResult{}, err
	}

	s.mu.Lock()
	kept := res
	s.last = &kept
	s.mu.Unlock()

	a.m.RecordAnalysis("ok")
	a.m.RecordSignal(res.Symbol, res.SignalValue)
	a.record(ctx, id, res)
	return res, nil
}

// record stores the run. Failures are logged, never surfaced.
func (a *AnalysisSessions) record(ctx context.Context, viewID string, res models.AnalysisResult) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.sinkTimeout)
	defer cancel()

	if a.snapshots != nil {
		if err := a.snapshots.SaveAnalysis(rctx, res.Symbol, res); err != nil {
			a.l.Warn("analysis snapshot failed", applogger.String("symbol", res.Symbol), applogger.Error(err))
		}
	}
	if a.sink == nil {
		return
	}
	run := models.NewAnalysisRun(uuid.NewString(), viewID, SourceMock, res, a.now())
	if err := a.sink.Record(rctx, run, res); err != nil {
		a.l.Warn("analysis run not fully recorded",
			applogger.String("run_id", run.RunID),
			applogger.String("symbol", run.Symbol),
			applogger.Error(err),
		)
	}
}
