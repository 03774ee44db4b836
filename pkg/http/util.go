package http

import (
	"strings"

	xutil "RiskDash/pkg/util"

	"github.com/labstack/echo/v4"
)

// ClientKey identifies the caller for rate limiting: X-Client-ID when present, otherwise the remote IP.
func ClientKey(c echo.Context) string {
	if id := strings.TrimSpace(c.Request().Header.Get("X-Client-ID")); id != "" {
		return id
	}
	return c.RealIP()
}

// QueryIntDefault reads an integer query parameter or returns def.
func QueryIntDefault(c echo.Context, name string, def int) int {
	return xutil.ParseIntDefault(c.QueryParam(name), def)
}
