package viewmodel

import (
	"math"
	"strings"

	"RiskDash/internal/domain/models"
)

// Normalize merges up to three partial views of an asset into one view model.
// For every field the first non-empty value in the order fetch, context,
// mock wins; an empty value never overwrites a present one. When the merged
// record carries price history, its last bar overrides price and volume.
// Either of fetch and context may be nil.
func Normalize(fetch, context *models.AssetSummary, mock models.AssetSummary) models.AssetSummary {
	srcs := make([]*models.AssetSummary, 0, 3)
	for _, s := range []*models.AssetSummary{fetch, context, &mock} {
		if s != nil {
			srcs = append(srcs, s)
		}
	}

	out := models.AssetSummary{
		Symbol:      firstString(srcs, func(a *models.AssetSummary) string { return a.Symbol }),
		Name:        firstString(srcs, func(a *models.AssetSummary) string { return a.Name }),
		Type:        models.AssetType(firstString(srcs, func(a *models.AssetSummary) string { return string(a.Type) })),
		Price:       firstNum(srcs, func(a *models.AssetSummary) *float64 { return a.Price }),
		PctChange:   firstNum(srcs, func(a *models.AssetSummary) *float64 { return a.PctChange }),
		Change:      firstNum(srcs, func(a *models.AssetSummary) *float64 { return a.Change }),
		Volume:      firstNum(srcs, func(a *models.AssetSummary) *float64 { return a.Volume }),
		Market:      firstString(srcs, func(a *models.AssetSummary) string { return a.Market }),
		Currency:    firstString(srcs, func(a *models.AssetSummary) string { return a.Currency }),
		Technicals:  firstSlice(srcs, func(a *models.AssetSummary) models.Technicals { return a.Technicals }),
		Flow:        firstPtr(srcs, func(a *models.AssetSummary) *models.Flow { return a.Flow }),
		Sector:      firstPtr(srcs, func(a *models.AssetSummary) *models.SectorInfo { return a.Sector }),
		Macro:       firstPtr(srcs, func(a *models.AssetSummary) *models.MacroInfo { return a.Macro }),
		Dividend:    firstPtr(srcs, func(a *models.AssetSummary) *models.DividendInfo { return a.Dividend }),
		Benchmark:   firstPtr(srcs, func(a *models.AssetSummary) *models.BenchmarkInfo { return a.Benchmark }),
		Performance: firstPtr(srcs, func(a *models.AssetSummary) *models.FundPerformance { return a.Performance }),
		RealHistory: firstSlice(srcs, func(a *models.AssetSummary) []models.Bar { return a.RealHistory }),
	}
	for _, s := range srcs {
		if !s.Category.IsZero() {
			out.Category = s.Category
			break
		}
	}
	if out.Type == "" {
		out.Type = models.AssetTypeStock
	}

	out.PctChangeText = FormatPercent(out.PctChange)

	if last, ok := out.LastBar(); ok && finite(last.Close) {
		price := last.Close
		out.Price = &price
		out.PriceText = FormatPrice(price)
		out.Volume, out.VolumeText = nil, Placeholder
		if finite(last.Volume) {
			vol := last.Volume
			out.Volume = &vol
			out.VolumeText = FormatVolumeWan(vol)
		}
		return out
	}

	out.PriceText = priceText(out.Price)
	if out.Price == nil {
		out.PriceText = firstOr(srcs, func(a *models.AssetSummary) string { return a.PriceText }, Placeholder)
	}
	out.VolumeText = volumeText(out.Volume)
	if out.Volume == nil {
		out.VolumeText = firstOr(srcs, func(a *models.AssetSummary) string { return a.VolumeText }, Placeholder)
	}
	return out
}

// FlowDirections reads the direction of every flow bucket, in display order.
func FlowDirections(f *models.Flow) models.Ordered[models.Direction] {
	if f == nil {
		return nil
	}
	out := models.Ordered[models.Direction]{}
	for _, kv := range [][2]string{
		{"total", f.Total}, {"super", f.Super}, {"large", f.Large}, {"medium", f.Medium}, {"small", f.Small},
	} {
		if kv[1] != "" {
			out.Set(kv[0], models.DirectionOfSigned(kv[1]))
		}
	}
	for _, e := range f.MultiDay {
		out.Set(e.Key, models.DirectionOfSigned(e.Value))
	}
	return out
}

func firstString(srcs []*models.AssetSummary, get func(*models.AssetSummary) string) string {
	return firstOr(srcs, get, "")
}

func firstOr(srcs []*models.AssetSummary, get func(*models.AssetSummary) string, def string) string {
	for _, s := range srcs {
		if v := get(s); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return def
}

func firstPtr[T any](srcs []*models.AssetSummary, get func(*models.AssetSummary) *T) *T {
	for _, s := range srcs {
		if v := get(s); v != nil {
			return v
		}
	}
	return nil
}

// firstNum treats NaN and infinities as absent.
func firstNum(srcs []*models.AssetSummary, get func(*models.AssetSummary) *float64) *float64 {
	for _, s := range srcs {
		if v := get(s); v != nil && finite(*v) {
			return v
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func firstSlice[S ~[]E, E any](srcs []*models.AssetSummary, get func(*models.AssetSummary) S) S {
	for _, s := range srcs {
		if v := get(s); len(v) > 0 {
			return v
		}
	}
	return nil
}
