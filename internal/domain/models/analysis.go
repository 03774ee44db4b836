package models

import (
	"math"
	"time"
)

const (
	SignalMin = -3.0
	SignalMax = 3.0
)

// ClampSignal bounds a signal to [SignalMin, SignalMax]. NaN becomes neutral.
func ClampSignal(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < SignalMin:
		return SignalMin
	case v > SignalMax:
		return SignalMax
	default:
		return v
	}
}

type IndicatorDetails struct {
	MACD string `json:"macd,omitempty"`
	KDJ  string `json:"kdj,omitempty"`
	RSI  string `json:"rsi,omitempty"`
}

// ModelDetail is one sub-model's contribution to an analysis.
type ModelDetail struct {
	Name        string            `json:"name"`
	Signal      string            `json:"signal"`
	Score       float64           `json:"score"`
	Weight      float64           `json:"weight"`
	Description string            `json:"description,omitempty"`
	Timeframe   string            `json:"timeframe,omitempty"`
	Details     *IndicatorDetails `json:"details,omitempty"`
}

// AnalysisResult is the multi-model risk/cycle assessment of one asset.
type AnalysisResult struct {
	Symbol        string        `json:"symbol,omitempty"`
	Fixture       string        `json:"fixture,omitempty"`
	StockCycle    string        `json:"stockCycle"`
	SectorCycle   string        `json:"sectorCycle"`
	MacroCycle    string        `json:"macroCycle"`
	SignalValue   float64       `json:"signalValue"`
	TotalScore    float64       `json:"totalScore"`
	WeightedScore float64       `json:"weightedScore"`
	ModelDetails  []ModelDetail `json:"modelDetails"`
	Summary       string        `json:"summary"`
	GeneratedAt   time.Time     `json:"generatedAt,omitzero"`
}

// AnalysisRun is the record of one completed analysis, stored and published after a run.
type AnalysisRun struct {
	RunID         string    `json:"run_id"`
	ViewID        string    `json:"view_id"`
	Symbol        string    `json:"symbol"`
	Fixture       string    `json:"fixture"`
	SignalValue   float64   `json:"signal_value"`
	TotalScore    float64   `json:"total_score"`
	WeightedScore float64   `json:"weighted_score"`
	StockCycle    string    `json:"stock_cycle"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAnalysisRun builds a run record from a result.
func NewAnalysisRun(runID, viewID, source string, r AnalysisResult, at time.Time) AnalysisRun {
	return AnalysisRun{
		RunID:         runID,
		ViewID:        viewID,
		Symbol:        r.Symbol,
		Fixture:       r.Fixture,
		SignalValue:   r.SignalValue,
		TotalScore:    r.TotalScore,
		WeightedScore: r.WeightedScore,
		StockCycle:    r.StockCycle,
		Source:        source,
		CreatedAt:     at,
	}
}
