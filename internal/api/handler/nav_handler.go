package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nikhil2247/digital-frontend/internal/api/middleware"
	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
)

// NavHandler answers navigation checks for the single-page frontend.
type NavHandler struct{}

func NewNavHandler() *NavHandler {
	return &NavHandler{}
}

// Navigate decides whether the browser may open path.
//
// @Summary      Navigation decision
// @Tags         navigation
// @Produce      json
// @Param        path  query     string  true  "Frontend path, e.g. /dashboard/vendor"
// @Success      200   {object}  navResponse
// @Failure      400   {object}  errorResponse
// @Router       /nav [get]
func (h *NavHandler) Navigate(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}

	gate, err := ctxGate(c)
	if err != nil {
		return err
	}

	route, found := domain.LookupRoute(path)
	decision := gate.Authorize(route.Requirement)

	resp := navResponse{Path: path, Decision: decision}
	switch decision {
	case domain.DecisionRedirectLogin:
		resp.Redirect = middleware.LoginPath
	case domain.DecisionRedirectUnauthorized:
		resp.Redirect = middleware.UnauthorizedPath
	default:
		// Unknown paths fall through to the home route.
		if !found {
			resp.Redirect = route.Pattern
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Home sends a signed-in browser to its role's landing page.
//
// @Summary      Role home redirect
// @Tags         navigation
// @Success      302
// @Router       / [get]
func (h *NavHandler) Home(c echo.Context) error {
	gate, err := ctxGate(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, gate.HomeRoute())
}
