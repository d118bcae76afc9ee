package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health responds with a minimal liveness payload.  Load balancers and
// monitors use it to verify the service is up.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
