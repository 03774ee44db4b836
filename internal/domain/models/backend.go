package models

// Shapes exchanged with the market-data backend.

type FetchStockRequest struct {
	Symbol string `json:"symbol"`
	Market string `json:"market,omitempty"`
	Period string `json:"period,omitempty"`
}

// FetchStockResult is the outcome of an on-demand fetch. Bars may be empty.
type FetchStockResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
	Bars   []Bar  `json:"bars,omitempty"`
}

type WatchlistItem struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name,omitempty"`
	Type      AssetType `json:"type,omitempty"`
	Market    string    `json:"market,omitempty"`
	Price     *float64  `json:"price,omitempty"`
	PctChange *float64  `json:"pctChange,omitempty"`
	Category  Category  `json:"category,omitzero"`
	AddedAt   string    `json:"addedAt,omitempty"`
}

type MarketIndex struct {
	Code      string   `json:"code"`
	Name      string   `json:"name,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Change    *float64 `json:"change,omitempty"`
	PctChange *float64 `json:"pctChange,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

type SearchSuggestion struct {
	Symbol string    `json:"symbol"`
	Name   string    `json:"name,omitempty"`
	Type   AssetType `json:"type,omitempty"`
	Market string    `json:"market,omitempty"`
}

type BackendLogEntry struct {
	Timestamp string `json:"timestamp,omitempty"`
	Level     string `json:"level,omitempty"`
	Message   string `json:"message"`
	Source    string `json:"source,omitempty"`
	Count     int    `json:"count,omitempty"`
}

type LogQuery struct {
	Limit  int
	Level  string
	Search string
}

type SaveAnalysisRequest struct {
	Symbol   string         `json:"symbol"`
	Analysis AnalysisResult `json:"analysis"`
}

// ActionResult is the acknowledgement of a mutating backend call.
type ActionResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// AssetUpdateEvent is emitted by the backend when stored data for a symbol changes.
// An empty symbol means "everything".
type AssetUpdateEvent struct {
	Symbol string `json:"symbol"`
	Kind   string `json:"kind,omitempty"`
	At     string `json:"at,omitempty"`
}
