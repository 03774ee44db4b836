package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"RiskDash/internal/domain/models"
	"RiskDash/internal/domain/repository"
	xhttp "RiskDash/pkg/http"
	"RiskDash/pkg/logger"
)

// Config holds backend connection settings.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
}

// Option configures Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.l = l }
}

// WithMetrics records one sample per backend call.
func WithMetrics(m repository.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithHTTPClient replaces the transport client.
func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

// Client talks to the market-data backend. Every failure it returns is a
// *models.NetworkError; payloads are parsed field by field so partial
// responses never fail a call.
type Client struct {
	baseURL string
	http    *xhttp.Client
	metrics repository.Metrics
	l       *logger.Logger
}

var _ repository.MarketBackend = (*Client)(nil)

func New(cfg Config, opts ...Option) *Client {
	c := &Client{baseURL: strings.TrimRight(cfg.BaseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(
			xhttp.WithTimeout(cfg.Timeout),
			xhttp.WithRetry(cfg.RetryAttempts, cfg.RetryBackoff),
			xhttp.WithHeader("Accept", "application/json"),
		)
	}
	return c
}

// call performs one request and returns the raw body.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var raw []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      method,
		URL:         c.baseURL + path,
		Headers:     map[string]string{"X-Request-ID": uuid.NewString()},
		QueryParams: query,
		Body:        body,
	}, &raw)
	if err != nil {
		c.record(op, "error")
		ne := &models.NetworkError{Op: op, Err: err}
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			ne.Status = se.Code
		}
		if c.l != nil {
			c.l.Debug("backend call failed", logger.String("op", op), logger.Int("status", ne.Status), logger.Error(err))
		}
		return nil, ne
	}
	c.record(op, "ok")
	return raw, nil
}

func (c *Client) record(op, result string) {
	if c.metrics != nil {
		c.metrics.RecordBackendCall(op, result)
	}
}

func (c *Client) shapeWarn(op string, err error) {
	if c.l != nil {
		c.l.Warn("backend payload ignored", logger.String("op", op), logger.Error(err))
	}
}

func (c *Client) FetchStock(ctx context.Context, req models.FetchStockRequest) (models.FetchStockResult, error) {
	raw, err := c.call(ctx, "fetch-stock", xhttp.MethodPost, "/api/fetch-stock", nil, req)
	if err != nil {
		return models.FetchStockResult{}, err
	}
	res, err := parseFetchStock(raw, req.Symbol)
	if err != nil {
		return models.FetchStockResult{}, &models.NetworkError{Op: "fetch-stock", Err: err}
	}
	return res, nil
}

func (c *Client) Watchlist(ctx context.Context) ([]models.WatchlistItem, error) {
	raw, err := c.call(ctx, "watchlist", xhttp.MethodGet, "/api/watchlist", nil, nil)
	if err != nil {
		return nil, err
	}
	return parseWatchlist(raw), nil
}

func (c *Client) DeleteWatchlist(ctx context.Context, symbol string) error {
	raw, err := c.call(ctx, "watchlist-delete", xhttp.MethodDelete, "/api/watchlist/"+url.PathEscape(symbol), nil, nil)
	if err != nil {
		return err
	}
	if _, err := parseAction(raw); err != nil {
		return &models.NetworkError{Op: "watchlist-delete", Err: err}
	}
	return nil
}

func (c *Client) MarketData(ctx context.Context, symbol string) ([]models.Bar, error) {
	raw, err := c.call(ctx, "market-data", xhttp.MethodGet, "/api/market-data/"+url.PathEscape(symbol), nil, nil)
	if err != nil {
		return nil, err
	}
	return parseBars(payload(raw)), nil
}

func (c *Client) LatestAnalysis(ctx context.Context, symbol string) (*models.AnalysisResult, error) {
	raw, err := c.call(ctx, "latest-analysis", xhttp.MethodGet, "/api/latest-analysis/"+url.PathEscape(symbol), nil, nil)
	if err != nil {
		var ne *models.NetworkError
		if errors.As(err, &ne) && ne.Status == 404 {
			return nil, nil
		}
		return nil, err
	}
	res, err := parseAnalysis(raw)
	if err != nil {
		c.shapeWarn("latest-analysis", err)
		return nil, nil
	}
	return res, nil
}

func (c *Client) SaveAnalysis(ctx context.Context, req models.SaveAnalysisRequest) error {
	_, err := c.call(ctx, "save-analysis", xhttp.MethodPost, "/api/save-analysis", nil, req)
	return err
}

func (c *Client) SyncMarket(ctx context.Context, markets []string) (models.ActionResult, error) {
	return c.action(ctx, "sync-market", "/api/sync-market", map[string]interface{}{"markets": markets})
}

func (c *Client) SyncIndices(ctx context.Context) (models.ActionResult, error) {
	return c.action(ctx, "sync-indices", "/api/sync-indices", struct{}{})
}

func (c *Client) TriggerUpdate(ctx context.Context) (models.ActionResult, error) {
	return c.action(ctx, "trigger-update", "/api/trigger-update", struct{}{})
}

func (c *Client) action(ctx context.Context, op, path string, body interface{}) (models.ActionResult, error) {
	raw, err := c.call(ctx, op, xhttp.MethodPost, path, nil, body)
	if err != nil {
		return models.ActionResult{}, err
	}
	res, err := parseAction(raw)
	if err != nil {
		return res, &models.NetworkError{Op: op, Err: err}
	}
	return res, nil
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.SearchSuggestion, error) {
	q := url.Values{"q": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	raw, err := c.call(ctx, "search", xhttp.MethodGet, "/api/search", q, nil)
	if err != nil {
		return nil, err
	}
	out := parseSuggestions(raw)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *Client) MarketIndices(ctx context.Context) ([]models.MarketIndex, error) {
	raw, err := c.call(ctx, "market-indices", xhttp.MethodGet, "/api/market-indices", nil, nil)
	if err != nil {
		return nil, err
	}
	return parseIndices(raw), nil
}

func (c *Client) AdminLogs(ctx context.Context, lq models.LogQuery) ([]models.BackendLogEntry, error) {
	q := url.Values{}
	if lq.Limit > 0 {
		q.Set("limit", strconv.Itoa(lq.Limit))
	}
	if lq.Level != "" {
		q.Set("level", lq.Level)
	}
	if lq.Search != "" {
		q.Set("search", lq.Search)
	}
	raw, err := c.call(ctx, "admin-logs", xhttp.MethodGet, "/api/admin/logs", q, nil)
	if err != nil {
		return nil, err
	}
	return parseLogs(raw), nil
}

// String identifies the backend in logs.
func (c *Client) String() string {
	return fmt.Sprintf("backend(%s)", c.baseURL)
}
