package performance

import (
	"math"
	"testing"

	"RiskDash/internal/domain/models"
)

func bars(closes ...float64) []models.Bar {
	out := make([]models.Bar, len(closes))
	for i, c := range closes {
		out[i] = models.Bar{Close: c}
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTotalReturn(t *testing.T) {
	got, ok := TotalReturn(bars(100, 90, 120))
	if !ok || !near(got, 0.2) {
		t.Fatalf("got %v %v", got, ok)
	}
	if _, ok := TotalReturn(bars(100)); ok {
		t.Fatalf("single bar should not compute")
	}
}

func TestMaxDrawdown(t *testing.T) {
	got, ok := MaxDrawdown(bars(100, 120, 90, 110, 60, 130))
	if !ok || !near(got, -0.5) {
		t.Fatalf("got %v %v", got, ok)
	}
	got, _ = MaxDrawdown(bars(1, 2, 3))
	if got != 0 {
		t.Fatalf("rising series drawdown = %v", got)
	}
}

func TestVolatilityFlatSeries(t *testing.T) {
	vol, ok := AnnualizedVolatility(LogReturns(bars(10, 10, 10, 10)), TradingDaysPerYear)
	if !ok || vol != 0 {
		t.Fatalf("got %v %v", vol, ok)
	}
	if _, ok := Sharpe(LogReturns(bars(10, 10, 10)), 0, TradingDaysPerYear); ok {
		t.Fatalf("zero volatility sharpe should not compute")
	}
}

func TestLogReturnsGuardsNonPositive(t *testing.T) {
	r := LogReturns(bars(10, 0, 10))
	if len(r) != 2 || r[0] != 0 || r[1] != 0 {
		t.Fatalf("got %v", r)
	}
}

func TestCompute(t *testing.T) {
	p := Compute(bars(100, 101, 99, 103, 104), 0.02)
	if p == nil || p.Return == nil || p.Volatility == nil || p.MaxDrawdown == nil || p.Sharpe == nil {
		t.Fatalf("expected all metrics, got %+v", p)
	}
	if !near(*p.Return, 0.04) {
		t.Fatalf("return = %v", *p.Return)
	}
	if *p.Volatility <= 0 {
		t.Fatalf("volatility = %v", *p.Volatility)
	}
	if Compute(nil, 0) != nil {
		t.Fatalf("empty history should yield nil")
	}
}
