package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"RiskDash/internal/domain/models"
	"RiskDash/internal/usecase"
	xhttp "RiskDash/pkg/http"
)

// toAppError maps domain errors onto HTTP errors.
func toAppError(err error) *xhttp.AppError {
	var (
		appErr    *xhttp.AppError
		actionErr *models.UserActionError
		shapeErr  *models.DataShapeError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, models.ErrAnalysisInFlight):
		return xhttp.ConflictError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrViewNotFound):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrViewClosed):
		return xhttp.NewAppError("ERR_VIEW_CLOSED", "", err.Error(), http.StatusGone).WithError(err)
	case errors.Is(err, models.ErrNoData):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	case errors.As(err, &actionErr):
		return xhttp.BadGatewayError("ERR_USER_ACTION", actionErr.Error()).WithParam("action", actionErr.Action).WithError(err)
	case errors.As(err, &shapeErr):
		return xhttp.NewAppError("ERR_BAD_REQUEST", shapeErr.Field, shapeErr.Error(), http.StatusBadRequest).WithError(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return xhttp.NewAppError("ERR_TIMEOUT", "", "request cancelled", http.StatusRequestTimeout).WithError(err)
	default:
		return xhttp.InternalError("Something went wrong").WithError(err)
	}
}

func errorResponse(c echo.Context, err error) error {
	return xhttp.AppErrorResponse(c, toAppError(err))
}

// sourced writes data and marks it when it did not come from the backend.
func sourced(c echo.Context, data interface{}, source string) error {
	if source != "" && source != usecase.SourceBackend {
		return xhttp.StaleResponse(c, data, source)
	}
	return xhttp.SuccessResponse(c, data)
}
