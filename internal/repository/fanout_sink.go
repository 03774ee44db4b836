package repository

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
)

// FanoutSink records a run to every sink concurrently. One failing sink
// never stops the others; errors are combined.
type FanoutSink struct {
	sinks []domrepo.AnalysisSink
}

var _ domrepo.AnalysisSink = (*FanoutSink)(nil)

// NewFanoutSink drops nil sinks.
func NewFanoutSink(sinks ...domrepo.AnalysisSink) *FanoutSink {
	out := make([]domrepo.AnalysisSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return &FanoutSink{sinks: out}
}

func (f *FanoutSink) Name() string { return "fanout" }

// Len returns the number of wired sinks.
func (f *FanoutSink) Len() int { return len(f.sinks) }

func (f *FanoutSink) Record(ctx context.Context, run models.AnalysisRun, r models.AnalysisResult) error {
	var (
		mu   sync.Mutex
		errs error
		wg   sync.WaitGroup
	)
	for _, s := range f.sinks {
		wg.Add(1)
		go func(s domrepo.AnalysisSink) {
			defer wg.Done()
			if err := s.Record(ctx, run, r); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", s.Name(), err))
				mu.Unlock()
			}
		}(s)
	}
	wg.Wait()
	return errs
}
