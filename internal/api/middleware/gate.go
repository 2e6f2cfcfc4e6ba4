package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// RequireAPI guards JSON endpoints: REDIRECT_LOGIN becomes 401 and
// REDIRECT_UNAUTHORIZED becomes 403.
func RequireAPI(req domain.RouteRequirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch decide(c, req) {
			case domain.DecisionRedirectLogin:
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			case domain.DecisionRedirectUnauthorized:
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// RequirePage guards page routes by redirecting to the login or
// unauthorized page.
func RequirePage(req domain.RouteRequirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch decide(c, req) {
			case domain.DecisionRedirectLogin:
				return c.Redirect(http.StatusFound, LoginPath)
			case domain.DecisionRedirectUnauthorized:
				return c.Redirect(http.StatusFound, UnauthorizedPath)
			}
			return next(c)
		}
	}
}

// decide runs the gate of c. Without a gate only public routes pass.
func decide(c echo.Context, req domain.RouteRequirement) domain.Decision {
	gate := GateFrom(c)
	if gate == nil {
		return domain.Authorize(domain.Session{}, req)
	}
	return gate.Authorize(req)
}
