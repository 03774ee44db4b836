package presentation

import (
	"fmt"
	"math"
	"strings"

	"RiskDash/internal/domain/models"
)

// Convention decides which color means "up".
type Convention string

const (
	// ConventionChinese: up is red, down is green.
	ConventionChinese Convention = "chinese"
	// ConventionUS: up is green, down is red.
	ConventionUS Convention = "us"
)

// Color is a CSS hex color.
type Color string

const (
	ColorRed   Color = "#ef4444"
	ColorGreen Color = "#10b981"
)

// ParseConvention validates a convention name. The empty string is not accepted.
func ParseConvention(s string) (Convention, error) {
	switch Convention(strings.ToLower(strings.TrimSpace(s))) {
	case ConventionChinese:
		return ConventionChinese, nil
	case ConventionUS:
		return ConventionUS, nil
	default:
		return "", fmt.Errorf("unknown color convention %q", s)
	}
}

// Or returns c, or fallback when c is empty or unknown.
func (c Convention) Or(fallback Convention) Convention {
	if parsed, err := ParseConvention(string(c)); err == nil {
		return parsed
	}
	return fallback
}

func (c Convention) upColor() Color {
	if c == ConventionUS {
		return ColorGreen
	}
	return ColorRed
}

func (c Convention) downColor() Color {
	if c == ConventionUS {
		return ColorRed
	}
	return ColorGreen
}

// ColorFor maps a signed value to its display color. Zero and NaN take the up color.
func ColorFor(value float64, c Convention) Color {
	if value < 0 && !math.IsNaN(value) {
		return c.downColor()
	}
	return c.upColor()
}

// ColorForDirection maps a direction; flat takes the up color like zero does.
func ColorForDirection(d models.Direction, c Convention) Color {
	if d == models.DirectionDown {
		return c.downColor()
	}
	return c.upColor()
}

// ColorForSigned maps a signed display string such as "-0.28亿".
func ColorForSigned(s string, c Convention) Color {
	return ColorForDirection(models.DirectionOfSigned(s), c)
}

// MetricKind names a fund performance metric.
type MetricKind string

const (
	MetricReturn     MetricKind = "return"
	MetricSharpe     MetricKind = "sharpe"
	MetricVolatility MetricKind = "volatility"
	MetricDrawdown   MetricKind = "drawdown"
)

// Outperforms reports whether fund beats benchmark on the metric: higher
// return and sharpe, lower volatility, drawdown closer to zero. Ties do not
// outperform.
func Outperforms(fund, benchmark float64, metric MetricKind) bool {
	switch metric {
	case MetricVolatility:
		return fund < benchmark
	case MetricDrawdown:
		return math.Abs(fund) < math.Abs(benchmark)
	default:
		return fund > benchmark
	}
}

// PerformanceColorFor colors a fund metric relative to its benchmark:
// outperforming takes the up color of the convention.
func PerformanceColorFor(fund, benchmark float64, metric MetricKind, c Convention) Color {
	if Outperforms(fund, benchmark, metric) {
		return c.upColor()
	}
	return c.downColor()
}
