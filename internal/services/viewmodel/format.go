package viewmodel

import (
	"github.com/shopspring/decimal"
)

// Placeholder renders an absent numeric field.
const Placeholder = "--"

var tenThousand = decimal.NewFromInt(10000)

// FormatPrice renders a price with two decimals. NaN and infinities render
// as the placeholder.
func FormatPrice(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatVolumeWan renders a volume in units of 万 (10,000) with one decimal.
func FormatVolumeWan(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return decimal.NewFromFloat(v).Div(tenThousand).StringFixed(1) + "万"
}

// FormatPercent renders a percent change with an explicit sign, or the placeholder.
func FormatPercent(v *float64) string {
	if v == nil || !finite(*v) {
		return Placeholder
	}
	d := decimal.NewFromFloat(*v).Round(2)
	s := d.StringFixed(2) + "%"
	if d.IsPositive() {
		return "+" + s
	}
	return s
}

func priceText(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return FormatPrice(*v)
}

func volumeText(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return FormatVolumeWan(*v)
}
