package api

import (
	"github.com/labstack/echo/v4"

	"RiskDash/internal/domain/models"
	"RiskDash/internal/service/ratelimit"
	"RiskDash/internal/services/presentation"
	"RiskDash/internal/usecase"
	xhttp "RiskDash/pkg/http"
	applogger "RiskDash/pkg/logger"
)

// AnalysisHandler serves view sessions and analysis reads.
type AnalysisHandler struct {
	sessions   *usecase.AnalysisSessions
	latest     *usecase.LatestAnalysisService
	limiter    *ratelimit.Limiter
	convention presentation.Convention
	l          *applogger.Logger
}

var _ xhttp.Handler = (*AnalysisHandler)(nil)

// AnalysisResponse is an analysis with its gauge.
type AnalysisResponse struct {
	Analysis *models.AnalysisResult  `json:"analysis"`
	Gauge    *presentation.GaugeView `json:"gauge,omitempty"`
}

func NewAnalysisHandler(
	sessions *usecase.AnalysisSessions,
	latest *usecase.LatestAnalysisService,
	limiter *ratelimit.Limiter,
	convention presentation.Convention,
	l *applogger.Logger,
) *AnalysisHandler {
	if l == nil {
		l = applogger.NewNop()
	}
	return &AnalysisHandler{
		sessions:   sessions,
		latest:     latest,
		limiter:    limiter,
		convention: convention.Or(presentation.ConventionChinese),
		l:          l,
	}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/views", h.OpenView)
	g.DELETE("/views/:id", h.CloseView)
	g.POST("/views/:id/analysis", h.Analyze)
	g.GET("/views/:id/analysis", h.ViewAnalysis)
	g.GET("/assets/:symbol/analysis/latest", h.Latest)
	g.GET("/analysis/:symbol/history", h.History)
}

func (h *AnalysisHandler) respond(c echo.Context, res *models.AnalysisResult, conv string, source string) error {
	out := AnalysisResponse{Analysis: res}
	if res != nil {
		g := presentation.Gauge(res.SignalValue, presentation.Convention(conv).Or(h.convention))
		out.Gauge = &g
	}
	return sourced(c, out, source)
}

func (h *AnalysisHandler) OpenView(c echo.Context) error {
	req := &models.OpenViewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.CreatedResponse(c, h.sessions.Open(req.Symbol))
}

func (h *AnalysisHandler) CloseView(c echo.Context) error {
	req := &models.ViewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.sessions.Close(req.ViewID); err != nil {
		return errorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

func (h *AnalysisHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.limiter != nil && !h.limiter.Allow(xhttp.ClientKey(c)+":analyze") {
		h.l.Warn("analysis rate limited", applogger.String("client", xhttp.ClientKey(c)))
		return errorResponse(c, xhttp.TooManyRequestsError("too many analysis requests"))
	}

	res, err := h.sessions.Analyze(c.Request().Context(), req.ViewID, req.Symbol)
	if err != nil {
		return errorResponse(c, err)
	}
	return h.respond(c, &res, req.Convention, "")
}

func (h *AnalysisHandler) ViewAnalysis(c echo.Context) error {
	req := &models.ViewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.sessions.Last(req.ViewID)
	if err != nil {
		return errorResponse(c, err)
	}
	return h.respond(c, res, c.QueryParam("convention"), "")
}

func (h *AnalysisHandler) Latest(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, source, err := h.latest.Latest(c.Request().Context(), req.Symbol)
	if err != nil {
		return errorResponse(c, err)
	}
	return h.respond(c, res, c.QueryParam("convention"), source)
}

func (h *AnalysisHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	runs, err := h.latest.History(c.Request().Context(), req.Symbol, req.Limit)
	if err != nil {
		h.l.Error("analysis history failed", applogger.String("symbol", req.Symbol), applogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.ListResponse(c, runs, int64(len(runs)))
}
