package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes. It reports only that the process is
// serving; database and broker connectivity are not checked here.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
