package presentation

import (
	"math"

	"RiskDash/internal/domain/models"
)

// GaugePosition maps a signal in [-3, 3] to a needle position in [0, 100].
// Out-of-range inputs clamp; NaN sits at the midpoint.
func GaugePosition(signal float64) float64 {
	if math.IsNaN(signal) {
		return 50
	}
	pos := (signal - models.SignalMin) / (models.SignalMax - models.SignalMin) * 100
	return math.Max(0, math.Min(100, pos))
}

// SignalLabel buckets a signal for the gauge caption.
func SignalLabel(signal float64) string {
	s := models.ClampSignal(signal)
	switch {
	case s <= -2:
		return "强烈看空"
	case s <= -0.5:
		return "看空"
	case s < 0.5:
		return "中性"
	case s < 2:
		return "看多"
	default:
		return "强烈看多"
	}
}
