package mockanalysis

import (
	"context"
	"time"

	"RiskDash/internal/domain/models"
	domsvc "RiskDash/internal/domain/service"
	applogger "RiskDash/pkg/logger"
)

// Option configures Resolver.
type Option func(*Resolver)

// Resolver serves canned assets and analyses keyed by a fuzzy match on the
// user's input, after a simulated model latency.
type Resolver struct {
	delay time.Duration
	clock Clock
	l     *applogger.Logger
}

var (
	_ domsvc.AnalysisResolver = (*Resolver)(nil)
	_ domsvc.FixtureSource    = (*Resolver)(nil)
)

// New creates a resolver with a 1.5s simulated delay.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		delay: 1500 * time.Millisecond,
		clock: realClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithDelay sets the simulated latency; zero or negative disables it.
func WithDelay(d time.Duration) Option {
	return func(r *Resolver) { r.delay = d }
}

// WithClock injects a clock.
func WithClock(c Clock) Option {
	return func(r *Resolver) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLogger injects a structured logger.
func WithLogger(l *applogger.Logger) Option {
	return func(r *Resolver) { r.l = l }
}

// Fixture returns the canned asset for input without delay.
func (r *Resolver) Fixture(input string) models.AssetSummary {
	return assetFixture(Classify(input), input)
}

// Suggest returns a search suggestion when input matches a known fixture.
func (r *Resolver) Suggest(input string) (models.SearchSuggestion, bool) {
	id := Classify(input)
	if id == FixtureDefault {
		return models.SearchSuggestion{}, false
	}
	a := assetFixture(id, input)
	return models.SearchSuggestion{Symbol: a.Symbol, Name: a.Name, Type: a.Type, Market: a.Market}, true
}

// ResolveAsset returns the canned asset after the simulated delay.
func (r *Resolver) ResolveAsset(ctx context.Context, input string) (models.AssetSummary, error) {
	if err := r.wait(ctx); err != nil {
		return models.AssetSummary{}, err
	}
	return r.Fixture(input), nil
}

// ResolveAnalysis returns the canned analysis after the simulated delay.
// It only fails when ctx is cancelled.
func (r *Resolver) ResolveAnalysis(ctx context.Context, input string) (models.AnalysisResult, error) {
	id := Classify(input)
	if err := r.wait(ctx); err != nil {
		if r.l != nil {
			r.l.Debug("mock analysis cancelled",
				applogger.String("input", input),
				applogger.Error(err),
			)
		}
		return models.AnalysisResult{}, err
	}

	res := analysisFixture(id)
	res.Symbol = assetFixture(id, input).Symbol
	res.Fixture = string(id)
	res.SignalValue = models.ClampSignal(res.SignalValue)
	res.GeneratedAt = r.clock.Now()

	if r.l != nil {
		r.l.Debug("mock analysis resolved",
			applogger.String("input", input),
			applogger.String("fixture", string(id)),
			applogger.Float64("signal", res.SignalValue),
		)
	}
	return res, nil
}

func (r *Resolver) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.delay <= 0 {
		return nil
	}
	select {
	case <-r.clock.After(r.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
