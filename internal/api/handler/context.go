package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Nikhil2247/digital-frontend/internal/api/middleware"
	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
	"github.com/Nikhil2247/digital-frontend/internal/core/service"
)

// ctxGate returns the session gate injected by the Session middleware.
// A missing gate means the route was mounted without it.
func ctxGate(c echo.Context) (*service.SessionGate, error) {
	gate := middleware.GateFrom(c)
	if gate == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not initialised")
	}
	return gate, nil
}

// ctxCartKey builds the cart key from the table URL and the browser session.
func ctxCartKey(c echo.Context) (ports.CartKey, error) {
	key := ports.CartKey{
		SessionID:   middleware.SessionIDFrom(c),
		EventID:     strings.TrimSpace(c.Param("eventId")),
		TableNumber: strings.TrimSpace(c.Param("tableNumber")),
	}
	if key.SessionID == "" {
		return ports.CartKey{}, echo.NewHTTPError(http.StatusInternalServerError, "session not initialised")
	}
	if key.EventID == "" || key.TableNumber == "" {
		return ports.CartKey{}, echo.NewHTTPError(http.StatusBadRequest, "event id and table number are required")
	}
	return key, nil
}
