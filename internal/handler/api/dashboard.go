package api

import (
	"github.com/labstack/echo/v4"

	"RiskDash/internal/domain/models"
	"RiskDash/internal/services/presentation"
	"RiskDash/internal/usecase"
	xhttp "RiskDash/pkg/http"
	applogger "RiskDash/pkg/logger"
	"RiskDash/pkg/util"
)

// DashboardHandler serves asset views, the watchlist, market data, search
// and admin logs.
type DashboardHandler struct {
	assets    *usecase.AssetViewService
	watchlist *usecase.WatchlistService
	market    *usecase.MarketService
	search    *usecase.SearchService
	logs      *usecase.AdminLogsService
	l         *applogger.Logger
}

var _ xhttp.Handler = (*DashboardHandler)(nil)

func NewDashboardHandler(
	assets *usecase.AssetViewService,
	watchlist *usecase.WatchlistService,
	market *usecase.MarketService,
	search *usecase.SearchService,
	logs *usecase.AdminLogsService,
	l *applogger.Logger,
) *DashboardHandler {
	if l == nil {
		l = applogger.NewNop()
	}
	return &DashboardHandler{assets: assets, watchlist: watchlist, market: market, search: search, logs: logs, l: l}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/assets/:symbol/view", h.AssetView)
	g.GET("/watchlist", h.Watchlist)
	g.DELETE("/watchlist/:symbol", h.DeleteWatchlist)
	g.GET("/market/indices", h.Indices)
	g.POST("/market/sync", h.SyncMarket)
	g.POST("/market/sync-indices", h.SyncIndices)
	g.POST("/market/trigger-update", h.TriggerUpdate)
	g.GET("/search", h.Search)
	g.GET("/admin/logs", h.AdminLogs)
}

func (h *DashboardHandler) AssetView(c echo.Context) error {
	req := &models.AssetViewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	view, err := h.assets.View(c.Request().Context(), usecase.AssetQuery{
		Symbol:     req.Symbol,
		Name:       req.Name,
		Price:      util.ParseFloatPtr(req.Price),
		Type:       models.ParseAssetType(req.Type),
		Convention: presentation.Convention(req.Convention),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return sourced(c, view, view.Source)
}

func (h *DashboardHandler) Watchlist(c echo.Context) error {
	req := &models.ListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	items, source := h.watchlist.List(c.Request().Context(), presentation.Convention(req.Convention))
	return sourced(c, items, source)
}

func (h *DashboardHandler) DeleteWatchlist(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.watchlist.Delete(c.Request().Context(), req.Symbol); err != nil {
		return errorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

func (h *DashboardHandler) Indices(c echo.Context) error {
	req := &models.ListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	indices, source := h.market.Indices(c.Request().Context(), presentation.Convention(req.Convention))
	return sourced(c, indices, source)
}

func (h *DashboardHandler) SyncMarket(c echo.Context) error {
	req := &models.SyncMarketRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.market.SyncMarket(c.Request().Context(), req.Markets)
	if err != nil {
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardHandler) SyncIndices(c echo.Context) error {
	res, err := h.market.SyncIndices(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardHandler) TriggerUpdate(c echo.Context) error {
	res, err := h.market.TriggerUpdate(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, source := h.search.Search(c.Request().Context(), req.Q, req.Limit)
	return sourced(c, res, source)
}

func (h *DashboardHandler) AdminLogs(c echo.Context) error {
	req := &models.AdminLogsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	logs, source := h.logs.Logs(c.Request().Context(), models.LogQuery{
		Limit:  req.Limit,
		Level:  req.Level,
		Search: req.Search,
	})
	return sourced(c, logs, source)
}
