package presentation

import (
	"RiskDash/internal/domain/models"
)

// AssetColors holds precomputed colors for an asset view.
type AssetColors struct {
	Change      Color                 `json:"change"`
	Flow        models.Ordered[Color] `json:"flow,omitempty"`
	Performance models.Ordered[Color] `json:"performance,omitempty"`
}

// ColorsForAsset colors the change, the flow buckets and, for funds with a
// benchmark, each performance metric.
func ColorsForAsset(a models.AssetSummary, c Convention) AssetColors {
	out := AssetColors{Change: c.upColor()}
	switch {
	case a.PctChange != nil:
		out.Change = ColorFor(*a.PctChange, c)
	case a.Change != nil:
		out.Change = ColorFor(*a.Change, c)
	}

	if a.Flow != nil {
		out.Flow = models.Ordered[Color]{}
		for _, kv := range [][2]string{
			{"total", a.Flow.Total}, {"super", a.Flow.Super}, {"large", a.Flow.Large}, {"medium", a.Flow.Medium}, {"small", a.Flow.Small},
		} {
			if kv[1] != "" {
				out.Flow.Set(kv[0], ColorForSigned(kv[1], c))
			}
		}
		for _, e := range a.Flow.MultiDay {
			out.Flow.Set(e.Key, ColorForSigned(e.Value, c))
		}
	}

	if a.Performance != nil && a.Benchmark != nil {
		out.Performance = models.Ordered[Color]{}
		pairs := []struct {
			kind        MetricKind
			fund, bench *float64
		}{
			{MetricReturn, a.Performance.Return, a.Benchmark.Return},
			{MetricVolatility, a.Performance.Volatility, a.Benchmark.Volatility},
			{MetricDrawdown, a.Performance.MaxDrawdown, a.Benchmark.MaxDrawdown},
			{MetricSharpe, a.Performance.Sharpe, a.Benchmark.Sharpe},
		}
		for _, p := range pairs {
			if p.fund != nil && p.bench != nil {
				out.Performance.Set(string(p.kind), PerformanceColorFor(*p.fund, *p.bench, p.kind, c))
			}
		}
	}
	return out
}

// GaugeView is the display form of an analysis signal.
type GaugeView struct {
	Signal   float64 `json:"signal"`
	Position float64 `json:"position"`
	Label    string  `json:"label"`
	Color    Color   `json:"color"`
}

// Gauge builds the gauge view of a signal.
func Gauge(signal float64, c Convention) GaugeView {
	s := models.ClampSignal(signal)
	return GaugeView{
		Signal:   s,
		Position: GaugePosition(signal),
		Label:    SignalLabel(signal),
		Color:    ColorFor(s, c),
	}
}
