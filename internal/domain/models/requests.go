package models

// Requests for the dashboard HTTP endpoints.

type AssetViewRequest struct {
	Symbol     string `param:"symbol" validate:"required,max=32"`
	Name       string `query:"name" validate:"max=64"`
	Price      string `query:"price" validate:"omitempty,numeric"`
	Type       string `query:"type" validate:"omitempty,oneof=stock fund"`
	Convention string `query:"convention" validate:"omitempty,oneof=chinese us"`
}

type SymbolRequest struct {
	Symbol string `param:"symbol" validate:"required,max=32"`
}

type ViewRequest struct {
	ViewID string `param:"id" validate:"required,uuid"`
}

type AnalyzeRequest struct {
	ViewID     string `param:"id" json:"-" validate:"required,uuid"`
	Symbol     string `json:"symbol" validate:"max=32"`
	Convention string `json:"convention" validate:"omitempty,oneof=chinese us"`
}

type OpenViewRequest struct {
	Symbol string `json:"symbol" validate:"max=32"`
}

type HistoryRequest struct {
	Symbol string `param:"symbol" validate:"required,max=32"`
	Limit  int    `query:"limit" default:"20" validate:"gte=1,lte=200"`
}

type SearchRequest struct {
	Q     string `query:"q" validate:"required,max=64"`
	Limit int    `query:"limit" default:"10" validate:"gte=1,lte=50"`
}

type SyncMarketRequest struct {
	Markets []string `json:"markets" validate:"required,min=1,dive,required"`
}

type ListRequest struct {
	Convention string `query:"convention" validate:"omitempty,oneof=chinese us"`
}

type AdminLogsRequest struct {
	Limit  int    `query:"limit" default:"100" validate:"gte=1,lte=1000"`
	Level  string `query:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Search string `query:"search" validate:"max=128"`
}

type ColorRequest struct {
	Value      string `query:"value" validate:"required,numeric"`
	Convention string `query:"convention" validate:"omitempty,oneof=chinese us"`
}

type GaugeRequest struct {
	Signal     string `query:"signal" validate:"required,numeric"`
	Convention string `query:"convention" validate:"omitempty,oneof=chinese us"`
}

type PerformanceColorRequest struct {
	Fund       string `query:"fund" validate:"required,numeric"`
	Benchmark  string `query:"benchmark" validate:"required,numeric"`
	Metric     string `query:"metric" validate:"required,oneof=return sharpe volatility drawdown"`
	Convention string `query:"convention" validate:"omitempty,oneof=chinese us"`
}
