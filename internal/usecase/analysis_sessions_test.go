package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"RiskDash/internal/domain/models"
)

type memorySink struct {
	mu   sync.Mutex
	runs []models.AnalysisRun
}

func (s *memorySink) Name() string { return "memory" }

func (s *memorySink) Record(_ context.Context, run models.AnalysisRun, _ models.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

func waitStarted(t *testing.T, r *blockingResolver) {
	t.Helper()
	select {
	case <-r.started:
	case <-time.After(2 * time.Second):
		t.Fatal("resolver was not called")
	}
}

type analyzeResult struct {
	res models.AnalysisResult
	err error
}

func TestAnalyzeRapidTriggersResolveOnce(t *testing.T) {
	r := newBlockingResolver()
	m := newCountingMetrics()
	a := NewAnalysisSessions(r, nil, m)
	view := a.Open("AAPL")

	first := make(chan analyzeResult, 1)
	go func() {
		res, err := a.Analyze(context.Background(), view.ID, "")
		first <- analyzeResult{res, err}
	}()
	waitStarted(t, r)

	if !a.Pending(view.ID) {
		t.Fatal("view should report a pending analysis")
	}
	if _, err := a.Analyze(context.Background(), view.ID, "AAPL"); !errors.Is(err, models.ErrAnalysisInFlight) {
		t.Fatalf("second trigger: expected ErrAnalysisInFlight, got %v", err)
	}

	close(r.release)
	got := <-first
	if got.err != nil {
		t.Fatalf("first trigger failed: %v", got.err)
	}
	if got.res.Symbol != "AAPL" {
		t.Fatalf("symbol should default to the view's, got %q", got.res.Symbol)
	}
	if n := r.calls.Load(); n != 1 {
		t.Fatalf("resolver called %d times, want 1", n)
	}
	if m.analysisCount("in_flight") != 1 || m.analysisCount("ok") != 1 {
		t.Fatalf("unexpected outcomes: %v", m.analysis)
	}
	if a.Pending(view.ID) {
		t.Fatal("nothing should be pending after completion")
	}
}

func TestAnalyzeAllowedAgainAfterCompletion(t *testing.T) {
	r := newBlockingResolver()
	close(r.release)
	a := NewAnalysisSessions(r, nil, nil)
	view := a.Open("")

	for i := 0; i < 2; i++ {
		if _, err := a.Analyze(context.Background(), view.ID, "gold"); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if n := r.calls.Load(); n != 2 {
		t.Fatalf("resolver called %d times, want 2", n)
	}
}

func TestCloseCancelsAndDiscards(t *testing.T) {
	r := newBlockingResolver()
	m := newCountingMetrics()
	sink := &memorySink{}
	a := NewAnalysisSessions(r, nil, m, WithSink(sink))
	view := a.Open("AAPL")

	done := make(chan analyzeResult, 1)
	go func() {
		res, err := a.Analyze(context.Background(), view.ID, "AAPL")
		done <- analyzeResult{res, err}
	}()
	waitStarted(t, r)

	if err := a.Close(view.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	select {
	case got := <-done:
		if !errors.Is(got.err, models.ErrViewClosed) {
			t.Fatalf("expected ErrViewClosed, got %v", got.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("analysis was not cancelled by close")
	}
	if len(sink.runs) != 0 {
		t.Fatal("a discarded result must not be recorded")
	}
	if m.analysisCount("discarded") != 1 {
		t.Fatalf("unexpected outcomes: %v", m.analysis)
	}
	if err := a.Close(view.ID); !errors.Is(err, models.ErrViewNotFound) {
		t.Fatalf("second close: expected ErrViewNotFound, got %v", err)
	}
}

func TestAnalyzeCancelledByCaller(t *testing.T) {
	r := newBlockingResolver()
	m := newCountingMetrics()
	a := NewAnalysisSessions(r, nil, m)
	view := a.Open("AAPL")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := a.Analyze(ctx, view.ID, "AAPL")
		done <- err
	}()
	waitStarted(t, r)
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if m.analysisCount("cancelled") != 1 {
		t.Fatalf("unexpected outcomes: %v", m.analysis)
	}
	if a.Len() != 1 {
		t.Fatal("caller cancellation must not close the view")
	}
}

func TestAnalyzeRecordsRunAndSnapshot(t *testing.T) {
	r := newBlockingResolver()
	close(r.release)
	sink := &memorySink{}
	snaps := newSnapshots()
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	a := NewAnalysisSessions(r, nil, nil,
		WithSink(sink),
		WithSnapshots(snaps),
		WithNow(func() time.Time { return at }),
	)
	view := a.Open("TSLA")

	if _, err := a.Analyze(context.Background(), view.ID, ""); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	last, err := a.Last(view.ID)
	if err != nil || last == nil || last.Symbol != "TSLA" {
		t.Fatalf("last = %+v, %v", last, err)
	}
	if len(sink.runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(sink.runs))
	}
	run := sink.runs[0]
	if run.ViewID != view.ID || run.Source != SourceMock || !run.CreatedAt.Equal(at) || run.SignalValue != 2 {
		t.Fatalf("unexpected run %+v", run)
	}
	cached, err := snaps.Analysis(context.Background(), "TSLA")
	if err != nil || cached.Summary != "ok" {
		t.Fatalf("snapshot = %+v, %v", cached, err)
	}
}

func TestUnknownView(t *testing.T) {
	a := NewAnalysisSessions(newBlockingResolver(), nil, nil)
	if _, err := a.Analyze(context.Background(), "missing", "AAPL"); !errors.Is(err, models.ErrViewNotFound) {
		t.Fatalf("expected ErrViewNotFound, got %v", err)
	}
	if _, err := a.Last("missing"); !errors.Is(err, models.ErrViewNotFound) {
		t.Fatalf("expected ErrViewNotFound, got %v", err)
	}
}

func TestCloseAll(t *testing.T) {
	a := NewAnalysisSessions(newBlockingResolver(), nil, nil)
	a.Open("A")
	a.Open("B")
	a.CloseAll()
	if a.Len() != 0 {
		t.Fatalf("expected no views, got %d", a.Len())
	}
}
