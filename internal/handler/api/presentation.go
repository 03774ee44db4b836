package api

import (
	"github.com/labstack/echo/v4"

	"RiskDash/internal/domain/models"
	"RiskDash/internal/services/presentation"
	xhttp "RiskDash/pkg/http"
	"RiskDash/pkg/util"
)

// PresentationHandler exposes the pure color and gauge helpers.
type PresentationHandler struct {
	convention presentation.Convention
}

var _ xhttp.Handler = (*PresentationHandler)(nil)

func NewPresentationHandler(convention presentation.Convention) *PresentationHandler {
	return &PresentationHandler{convention: convention.Or(presentation.ConventionChinese)}
}

func (h *PresentationHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/presentation")
	g.GET("/color", h.Color)
	g.GET("/gauge", h.Gauge)
	g.GET("/performance-color", h.PerformanceColor)
}

type colorResponse struct {
	Color      presentation.Color      `json:"color"`
	Convention presentation.Convention `json:"convention"`
}

func (h *PresentationHandler) Color(c echo.Context) error {
	req := &models.ColorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	conv := presentation.Convention(req.Convention).Or(h.convention)
	return xhttp.SuccessResponse(c, colorResponse{
		Color:      presentation.ColorFor(number(req.Value), conv),
		Convention: conv,
	})
}

func (h *PresentationHandler) Gauge(c echo.Context) error {
	req := &models.GaugeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	conv := presentation.Convention(req.Convention).Or(h.convention)
	return xhttp.SuccessResponse(c, presentation.Gauge(number(req.Signal), conv))
}

func (h *PresentationHandler) PerformanceColor(c echo.Context) error {
	req := &models.PerformanceColorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	conv := presentation.Convention(req.Convention).Or(h.convention)
	fund, bench := number(req.Fund), number(req.Benchmark)
	return xhttp.SuccessResponse(c, colorResponse{
		Color:      presentation.PerformanceColorFor(fund, bench, presentation.MetricKind(req.Metric), conv),
		Convention: conv,
	})
}

// number reads a value that already passed the numeric validator.
func number(s string) float64 {
	if v := util.ParseFloatPtr(s); v != nil {
		return *v
	}
	return 0
}
