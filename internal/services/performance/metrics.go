package performance

import (
	"math"

	"RiskDash/internal/domain/models"
)

// TradingDaysPerYear annualizes daily bars.
const TradingDaysPerYear = 252

// LogReturns computes r_t = ln(C_t / C_{t-1}). Non-positive closes yield 0.
func LogReturns(bars []models.Bar) []float64 {
	if len(bars) < 2 {
		return nil
	}
	out := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1].Close, bars[i].Close
		if prev <= 0 || cur <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Log(cur/prev))
	}
	return out
}

// TotalReturn is last close over first close minus one.
func TotalReturn(bars []models.Bar) (float64, bool) {
	if len(bars) < 2 || bars[0].Close <= 0 {
		return 0, false
	}
	return bars[len(bars)-1].Close/bars[0].Close - 1, true
}

// AnnualizedVolatility is the sample stddev of log returns scaled by sqrt(barsPerYear).
func AnnualizedVolatility(returns []float64, barsPerYear float64) (float64, bool) {
	n := float64(len(returns))
	if n < 2 {
		return 0, false
	}
	sum, sum2 := 0.0, 0.0
	for _, r := range returns {
		sum += r
		sum2 += r * r
	}
	mean := sum / n
	variance := (sum2 - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance * barsPerYear), true
}

// MaxDrawdown returns the worst peak-to-trough decline as a non-positive fraction.
func MaxDrawdown(bars []models.Bar) (float64, bool) {
	if len(bars) < 2 {
		return 0, false
	}
	peak, worst := 0.0, 0.0
	for _, b := range bars {
		if b.Close <= 0 {
			continue
		}
		if b.Close > peak {
			peak = b.Close
			continue
		}
		if dd := b.Close/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst, true
}

// Sharpe is annualized mean excess log return over annualized volatility.
// riskFree is an annual rate.
func Sharpe(returns []float64, riskFree, barsPerYear float64) (float64, bool) {
	vol, ok := AnnualizedVolatility(returns, barsPerYear)
	if !ok || vol == 0 {
		return 0, false
	}
	sum := 0.0
	for _, r := range returns {
		sum += r
	}
	annualMean := sum / float64(len(returns)) * barsPerYear
	return (annualMean - riskFree) / vol, true
}

// Compute derives fund performance from daily bars. Metrics that cannot be
// computed are left nil; nil is returned when nothing can be computed.
func Compute(bars []models.Bar, riskFree float64) *models.FundPerformance {
	out := &models.FundPerformance{}
	if v, ok := TotalReturn(bars); ok {
		out.Return = &v
	}
	rets := LogReturns(bars)
	if v, ok := AnnualizedVolatility(rets, TradingDaysPerYear); ok {
		out.Volatility = &v
	}
	if v, ok := MaxDrawdown(bars); ok {
		out.MaxDrawdown = &v
	}
	if v, ok := Sharpe(rets, riskFree, TradingDaysPerYear); ok {
		out.Sharpe = &v
	}
	if out.Return == nil && out.Volatility == nil && out.MaxDrawdown == nil && out.Sharpe == nil {
		return nil
	}
	return out
}
