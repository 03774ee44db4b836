package backend

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"RiskDash/internal/domain/models"
	"RiskDash/pkg/util"
)

// payload unwraps the optional {"data": ...} envelope.
func payload(raw []byte) gjson.Result {
	r := gjson.ParseBytes(raw)
	if d := r.Get("data"); d.Exists() {
		return d
	}
	return r
}

// list returns the array held by r itself or under one of keys.
func list(r gjson.Result, keys ...string) []gjson.Result {
	if r.IsArray() {
		return r.Array()
	}
	for _, k := range keys {
		if v := r.Get(k); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}

// first returns the first present, non-null value among keys.
func first(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func str(r gjson.Result, keys ...string) string {
	return strings.TrimSpace(first(r, keys...).String())
}

// num returns nil for absent, null, blank, non-numeric or non-finite values.
// gjson reads out-of-range literals such as 1e400 as infinities.
func num(r gjson.Result, keys ...string) *float64 {
	v := first(r, keys...)
	switch v.Type {
	case gjson.Number:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	case gjson.String:
		return util.ParseFloatPtr(strings.TrimSuffix(v.String(), "%"))
	default:
		return nil
	}
}

func numOr(r gjson.Result, def float64, keys ...string) float64 {
	if p := num(r, keys...); p != nil {
		return *p
	}
	return def
}

func parseBars(r gjson.Result) []models.Bar {
	items := list(r, "bars", "history", "realHistory", "klines")
	out := make([]models.Bar, 0, len(items))
	for _, it := range items {
		closePx := num(it, "close")
		if closePx == nil {
			continue
		}
		b := models.Bar{
			Date:   str(it, "date", "day", "trade_date"),
			Open:   numOr(it, 0, "open"),
			High:   numOr(it, 0, "high"),
			Low:    numOr(it, 0, "low"),
			Close:  *closePx,
			Volume: numOr(it, 0, "volume", "vol"),
		}
		if ts := first(it, "timestamp", "time", "ts"); ts.Exists() {
			if ts.Type == gjson.Number {
				b.Timestamp = ts.Int()
			} else if b.Date == "" {
				b.Date = ts.String()
			}
		}
		if b.Date == "" && b.Timestamp == 0 {
			continue
		}
		out = append(out, b)
	}
	return out
}

func statusOK(r gjson.Result) (bool, string) {
	status := strings.ToLower(str(r, "status"))
	msg := str(r, "message", "msg", "error")
	switch status {
	case "", "success", "ok":
		if r.Get("success").Exists() && !r.Get("success").Bool() {
			return false, msg
		}
		return true, msg
	default:
		return false, msg
	}
}

func parseFetchStock(raw []byte, symbol string) (models.FetchStockResult, error) {
	root := gjson.ParseBytes(raw)
	if ok, msg := statusOK(root); !ok {
		if msg == "" {
			msg = "fetch failed"
		}
		return models.FetchStockResult{}, errors.New(msg)
	}
	p := payload(raw)
	return models.FetchStockResult{
		Symbol: util.FirstNonEmpty(str(p, "symbol", "code"), symbol),
		Name:   str(p, "name"),
		Bars:   parseBars(p),
	}, nil
}

func parseAction(raw []byte) (models.ActionResult, error) {
	root := gjson.ParseBytes(raw)
	ok, msg := statusOK(root)
	res := models.ActionResult{
		Status:  util.FirstNonEmpty(str(root, "status"), "success"),
		Message: msg,
		Count:   int(numOr(payload(raw), 0, "count", "synced", "updated")),
	}
	if !ok {
		if msg == "" {
			msg = res.Status
		}
		return res, errors.New(msg)
	}
	return res, nil
}

func parseCategory(r gjson.Result) models.Category {
	var c models.Category
	if !r.Exists() {
		return c
	}
	if err := json.Unmarshal([]byte(r.Raw), &c); err != nil {
		return models.Category{}
	}
	return c
}

func parseWatchlist(raw []byte) []models.WatchlistItem {
	items := list(payload(raw), "items", "watchlist")
	out := make([]models.WatchlistItem, 0, len(items))
	for _, it := range items {
		sym := str(it, "symbol", "code")
		if sym == "" {
			continue
		}
		out = append(out, models.WatchlistItem{
			Symbol:    sym,
			Name:      str(it, "name"),
			Type:      models.ParseAssetType(str(it, "type")),
			Market:    str(it, "market"),
			Price:     num(it, "price", "close"),
			PctChange: num(it, "pctChange", "pct_change", "change_percent"),
			Category:  parseCategory(it.Get("category")),
			AddedAt:   str(it, "addedAt", "added_at", "created_at"),
		})
	}
	return out
}

func parseIndices(raw []byte) []models.MarketIndex {
	items := list(payload(raw), "indices", "items")
	out := make([]models.MarketIndex, 0, len(items))
	for _, it := range items {
		code := str(it, "code", "symbol")
		if code == "" {
			continue
		}
		out = append(out, models.MarketIndex{
			Code:      code,
			Name:      str(it, "name"),
			Price:     num(it, "price", "close", "value"),
			Change:    num(it, "change"),
			PctChange: num(it, "pctChange", "pct_change", "change_percent"),
			UpdatedAt: str(it, "updatedAt", "updated_at", "time"),
		})
	}
	return out
}

func parseSuggestions(raw []byte) []models.SearchSuggestion {
	items := list(payload(raw), "results", "items", "suggestions")
	out := make([]models.SearchSuggestion, 0, len(items))
	for _, it := range items {
		sym := str(it, "symbol", "code")
		if sym == "" {
			continue
		}
		out = append(out, models.SearchSuggestion{
			Symbol: sym,
			Name:   str(it, "name"),
			Type:   models.ParseAssetType(str(it, "type")),
			Market: str(it, "market"),
		})
	}
	return out
}

func parseLogs(raw []byte) []models.BackendLogEntry {
	items := list(payload(raw), "logs", "items")
	out := make([]models.BackendLogEntry, 0, len(items))
	for _, it := range items {
		msg := str(it, "message", "msg")
		if msg == "" {
			continue
		}
		out = append(out, models.BackendLogEntry{
			Timestamp: str(it, "timestamp", "time", "created_at"),
			Level:     strings.ToLower(str(it, "level")),
			Message:   msg,
			Source:    str(it, "source", "logger", "module"),
			Count:     int(numOr(it, 0, "count")),
		})
	}
	return out
}

// parseAnalysis returns nil when the backend holds no analysis for the symbol.
func parseAnalysis(raw []byte) (*models.AnalysisResult, error) {
	p := payload(raw)
	if a := p.Get("analysis"); a.IsObject() {
		p = a
	}
	if !p.IsObject() || !first(p, "signalValue", "stockCycle", "modelDetails", "summary").Exists() {
		return nil, nil
	}
	var res models.AnalysisResult
	if err := json.Unmarshal([]byte(p.Raw), &res); err != nil {
		return nil, &models.DataShapeError{Field: "analysis", Err: err}
	}
	res.SignalValue = models.ClampSignal(res.SignalValue)
	return &res, nil
}
