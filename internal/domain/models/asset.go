package models

import (
	"strings"
	"time"

	"RiskDash/pkg/util"
)

// AssetType selects the detail view variant.
type AssetType string

const (
	AssetTypeStock AssetType = "stock"
	AssetTypeFund  AssetType = "fund"
)

// ParseAssetType maps loose labels to an AssetType, or "" when unknown.
func ParseAssetType(s string) AssetType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stock", "股票", "equity":
		return AssetTypeStock
	case "fund", "基金", "etf":
		return AssetTypeFund
	default:
		return ""
	}
}

// IndicatorBundle holds the textual readings of one technicals period.
type IndicatorBundle struct {
	Kline string `json:"kline,omitempty"`
	MACD  string `json:"macd,omitempty"`
	KDJ   string `json:"kdj,omitempty"`
	RSI1  string `json:"rsi1,omitempty"`
	RSI2  string `json:"rsi2,omitempty"`
	RSI3  string `json:"rsi3,omitempty"`
	Chips string `json:"chips,omitempty"`
}

// Technicals maps period labels ("日线", "周线") to indicator readings in display order.
type Technicals = Ordered[IndicatorBundle]

// Flow is money flow by order size. Values are signed display strings such as "+1.2亿".
type Flow struct {
	Total    string          `json:"total,omitempty"`
	Super    string          `json:"super,omitempty"`
	Large    string          `json:"large,omitempty"`
	Medium   string          `json:"medium,omitempty"`
	Small    string          `json:"small,omitempty"`
	MultiDay Ordered[string] `json:"multiDay,omitempty"`
}

type SectorInfo struct {
	Name    string   `json:"name,omitempty"`
	Cycle   string   `json:"cycle,omitempty"`
	Change  *float64 `json:"change,omitempty"`
	Heat    string   `json:"heat,omitempty"`
	Leaders []string `json:"leaders,omitempty"`
}

type MacroInfo struct {
	Cycle      string          `json:"cycle,omitempty"`
	Summary    string          `json:"summary,omitempty"`
	Indicators Ordered[string] `json:"indicators,omitempty"`
}

type DividendInfo struct {
	Yield     *float64 `json:"yield,omitempty"`
	PerShare  *float64 `json:"perShare,omitempty"`
	ExDate    string   `json:"exDate,omitempty"`
	Frequency string   `json:"frequency,omitempty"`
}

// BenchmarkInfo describes the index a fund is compared against.
type BenchmarkInfo struct {
	Name        string   `json:"name,omitempty"`
	Return      *float64 `json:"return,omitempty"`
	Volatility  *float64 `json:"volatility,omitempty"`
	MaxDrawdown *float64 `json:"maxDrawdown,omitempty"`
	Sharpe      *float64 `json:"sharpe,omitempty"`
}

// FundPerformance is computed from price history; fractions, not percents.
type FundPerformance struct {
	Return      *float64 `json:"return,omitempty"`
	Volatility  *float64 `json:"volatility,omitempty"`
	MaxDrawdown *float64 `json:"maxDrawdown,omitempty"`
	Sharpe      *float64 `json:"sharpe,omitempty"`
}

// Bar is one OHLCV bar. Backends send either a date string or a unix timestamp.
type Bar struct {
	Date      string  `json:"date,omitempty"`
	Timestamp int64   `json:"timestamp,omitempty"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// Time resolves the bar's date, preferring the date string.
func (b Bar) Time() time.Time {
	if t, ok := util.ParseTime(b.Date); ok {
		return t
	}
	if b.Timestamp > 0 {
		return util.FromUnix(b.Timestamp)
	}
	return time.Time{}
}

// AssetSummary is the unified view model of an asset. Any field may be
// absent: empty strings, nil pointers, empty collections and a zero
// Category all mean "not supplied". Partial records from the backend or the
// UI context use the same type.
type AssetSummary struct {
	Symbol        string           `json:"symbol"`
	Name          string           `json:"name,omitempty"`
	Type          AssetType        `json:"type,omitempty"`
	Price         *float64         `json:"price,omitempty"`
	PctChange     *float64         `json:"pctChange,omitempty"`
	Change        *float64         `json:"change,omitempty"`
	Volume        *float64         `json:"volume,omitempty"`
	PriceText     string           `json:"priceText,omitempty"`
	PctChangeText string           `json:"pctChangeText,omitempty"`
	VolumeText    string           `json:"volumeText,omitempty"`
	Category      Category         `json:"category,omitzero"`
	Market        string           `json:"market,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	Technicals    Technicals       `json:"technicals,omitempty"`
	Flow          *Flow            `json:"flow,omitempty"`
	Sector        *SectorInfo      `json:"sector,omitempty"`
	Macro         *MacroInfo       `json:"macro,omitempty"`
	Dividend      *DividendInfo    `json:"dividend,omitempty"`
	Benchmark     *BenchmarkInfo   `json:"benchmark,omitempty"`
	Performance   *FundPerformance `json:"performance,omitempty"`
	RealHistory   []Bar            `json:"realHistory,omitempty"`
}

// LastBar returns the most recent bar of RealHistory.
func (a AssetSummary) LastBar() (Bar, bool) {
	if len(a.RealHistory) == 0 {
		return Bar{}, false
	}
	return a.RealHistory[len(a.RealHistory)-1], true
}
