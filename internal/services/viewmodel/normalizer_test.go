package viewmodel

import (
	"math"
	"reflect"
	"testing"

	"RiskDash/internal/domain/models"
	"RiskDash/pkg/util"
)

var f = util.Float64Ptr

func TestNormalizePrecedence(t *testing.T) {
	fetch := &models.AssetSummary{Price: f(10)}
	ctx := &models.AssetSummary{Price: f(20), Name: "X"}
	mock := models.AssetSummary{Price: f(30), Name: "Y", Symbol: "M", Market: "上海"}

	got := Normalize(fetch, ctx, mock)
	if got.Price == nil || *got.Price != 10 {
		t.Fatalf("price = %v, want 10", got.Price)
	}
	if got.Name != "X" {
		t.Fatalf("name = %q, want X", got.Name)
	}
	if got.Symbol != "M" || got.Market != "上海" {
		t.Fatalf("mock fields not used as fallback: %+v", got)
	}
	if got.PriceText != "10.00" {
		t.Fatalf("priceText = %q", got.PriceText)
	}
}

func TestNormalizeEmptyNeverOverwrites(t *testing.T) {
	fetch := &models.AssetSummary{Name: "  ", Category: models.CategoryTags()}
	mock := models.AssetSummary{Name: "贵州茅台", Category: models.CategoryText("白酒")}

	got := Normalize(fetch, nil, mock)
	if got.Name != "贵州茅台" {
		t.Fatalf("blank name overwrote fixture: %q", got.Name)
	}
	if got.Category.String() != "白酒" {
		t.Fatalf("empty category overwrote fixture: %q", got.Category.String())
	}
}

func TestNormalizeRealHistoryOverridesPrice(t *testing.T) {
	fetch := &models.AssetSummary{
		RealHistory: []models.Bar{
			{Date: "2024-01-01", Close: 1.5, Volume: 10000},
			{Date: "2024-01-02", Close: 2, Volume: 30000},
		},
	}
	mock := models.AssetSummary{Price: f(99), Volume: f(1)}

	got := Normalize(fetch, nil, mock)
	if got.PriceText != "2.00" {
		t.Fatalf("priceText = %q, want 2.00", got.PriceText)
	}
	if got.VolumeText != "3.0万" {
		t.Fatalf("volumeText = %q, want 3.0万", got.VolumeText)
	}
	if got.Price == nil || *got.Price != 2 {
		t.Fatalf("price = %v, want 2", got.Price)
	}
}

func TestNormalizeAbsentPriceRendersPlaceholder(t *testing.T) {
	got := Normalize(nil, nil, models.AssetSummary{Symbol: "AAPL"})
	if got.Price != nil {
		t.Fatalf("price fabricated: %v", *got.Price)
	}
	if got.PriceText != Placeholder || got.VolumeText != Placeholder {
		t.Fatalf("expected placeholders, got %q %q", got.PriceText, got.VolumeText)
	}
	if got.Type != models.AssetTypeStock {
		t.Fatalf("expected stock default type, got %q", got.Type)
	}
}

func TestNormalizeDoesNotFabricateEnrichment(t *testing.T) {
	got := Normalize(&models.AssetSummary{Symbol: "X"}, nil, models.AssetSummary{})
	if got.Sector != nil || got.Macro != nil || got.Dividend != nil || got.Benchmark != nil || got.Flow != nil {
		t.Fatalf("enrichment fabricated: %+v", got)
	}
}

func TestNormalizeEnrichmentFromLowerSource(t *testing.T) {
	mock := models.AssetSummary{Sector: &models.SectorInfo{Name: "银行"}}
	got := Normalize(&models.AssetSummary{Symbol: "000001"}, nil, mock)
	if got.Sector == nil || got.Sector.Name != "银行" {
		t.Fatalf("sector not taken from mock: %+v", got.Sector)
	}
}

func TestNormalizeKeepsTechnicalsOrder(t *testing.T) {
	var tech models.Technicals
	tech.Set("周线", models.IndicatorBundle{MACD: "金叉"})
	tech.Set("日线", models.IndicatorBundle{MACD: "死叉"})
	got := Normalize(nil, nil, models.AssetSummary{Technicals: tech})
	if !reflect.DeepEqual(got.Technicals.Keys(), []string{"周线", "日线"}) {
		t.Fatalf("order lost: %v", got.Technicals.Keys())
	}
}

func TestFormatting(t *testing.T) {
	if FormatPrice(1688) != "1688.00" || FormatPrice(5.3125) != "5.31" {
		t.Fatalf("price formatting mismatch: %s %s", FormatPrice(1688), FormatPrice(5.3125))
	}
	if FormatVolumeWan(95832100) != "9583.2万" {
		t.Fatalf("volume formatting mismatch: %s", FormatVolumeWan(95832100))
	}
	if FormatPercent(f(1.25)) != "+1.25%" || FormatPercent(f(-0.5)) != "-0.50%" || FormatPercent(nil) != Placeholder {
		t.Fatalf("percent formatting mismatch")
	}
}

func TestNonFiniteNumbersRenderPlaceholder(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := FormatPrice(v); got != Placeholder {
			t.Errorf("FormatPrice(%v) = %q", v, got)
		}
		if got := FormatVolumeWan(v); got != Placeholder {
			t.Errorf("FormatVolumeWan(%v) = %q", v, got)
		}
		if got := FormatPercent(f(v)); got != Placeholder {
			t.Errorf("FormatPercent(%v) = %q", v, got)
		}
	}
}

func TestNormalizeSkipsNonFiniteValues(t *testing.T) {
	tests := []struct {
		name      string
		fetch     models.AssetSummary
		wantPrice string
		wantVol   string
	}{
		{
			name:      "nan price falls through to mock",
			fetch:     models.AssetSummary{Price: f(math.NaN()), Volume: f(math.Inf(1))},
			wantPrice: "12.00",
			wantVol:   Placeholder,
		},
		{
			name:      "infinite last close is ignored",
			fetch:     models.AssetSummary{RealHistory: []models.Bar{{Date: "2024-01-02", Close: math.Inf(1), Volume: 1}}},
			wantPrice: "12.00",
			wantVol:   Placeholder,
		},
		{
			name:      "nan last volume keeps the close",
			fetch:     models.AssetSummary{RealHistory: []models.Bar{{Date: "2024-01-02", Close: 5, Volume: math.NaN()}}},
			wantPrice: "5.00",
			wantVol:   Placeholder,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetch := tt.fetch
			got := Normalize(&fetch, nil, models.AssetSummary{Price: f(12)})
			if got.PriceText != tt.wantPrice || got.VolumeText != tt.wantVol {
				t.Fatalf("got %q / %q, want %q / %q", got.PriceText, got.VolumeText, tt.wantPrice, tt.wantVol)
			}
			if got.Volume != nil && !finite(*got.Volume) {
				t.Fatalf("non-finite volume kept: %v", *got.Volume)
			}
		})
	}
}

func TestNormalizePctChangeText(t *testing.T) {
	got := Normalize(&models.AssetSummary{PctChange: f(1.234)}, nil, models.AssetSummary{})
	if got.PctChangeText != "+1.23%" {
		t.Fatalf("pctChangeText = %q", got.PctChangeText)
	}
	got = Normalize(nil, nil, models.AssetSummary{})
	if got.PctChangeText != Placeholder {
		t.Fatalf("expected placeholder, got %q", got.PctChangeText)
	}
}

func TestFlowDirections(t *testing.T) {
	flow := &models.Flow{Total: "+1.2亿", Small: "-0.3亿", MultiDay: models.Ordered[string]{{Key: "3日", Value: "0"}}}
	got := FlowDirections(flow)
	if d, _ := got.Get("total"); d != models.DirectionUp {
		t.Fatalf("total direction = %s", d)
	}
	if d, _ := got.Get("small"); d != models.DirectionDown {
		t.Fatalf("small direction = %s", d)
	}
	if d, _ := got.Get("3日"); d != models.DirectionFlat {
		t.Fatalf("3日 direction = %s", d)
	}
	if _, ok := got.Get("large"); ok {
		t.Fatalf("absent bucket should be skipped")
	}
}
