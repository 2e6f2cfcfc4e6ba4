package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nikhil2247/digital-frontend/internal/api/middleware"
	"github.com/Nikhil2247/digital-frontend/internal/core/service"
)

// sessionIssuer hands out fresh session ids and binds them to the browser.
type sessionIssuer interface {
	Issue() (string, *service.SessionGate)
	Adopt(c echo.Context, sid string, gate *service.SessionGate)
}

type cartMover interface {
	MoveSession(ctx context.Context, fromSessionID, toSessionID string)
}

// AuthHandler exposes the session gate of the calling browser. Signing in
// or out moves the browser to a new session id.
type AuthHandler struct {
	sessions sessionIssuer
	carts    cartMover
}

func NewAuthHandler(sessions sessionIssuer, carts cartMover) *AuthHandler {
	return &AuthHandler{sessions: sessions, carts: carts}
}

// Login authenticates against the event API and persists the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prev, err := ctxGate(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	sid, gate := h.sessions.Issue()
	profile, err := gate.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	prev.Logout(ctx)
	h.rotate(c, sid, gate)
	return c.JSON(http.StatusOK, loginResponse{Profile: profile, Home: gate.HomeRoute()})
}

// Logout clears the browser's session. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	gate, err := ctxGate(c)
	if err != nil {
		return err
	}
	gate.Logout(c.Request().Context())

	sid, fresh := h.sessions.Issue()
	h.rotate(c, sid, fresh)
	return c.NoContent(http.StatusNoContent)
}

// rotate binds the browser to sid, bringing its carts along.
func (h *AuthHandler) rotate(c echo.Context, sid string, gate *service.SessionGate) {
	h.carts.MoveSession(c.Request().Context(), middleware.SessionIDFrom(c), sid)
	h.sessions.Adopt(c, sid, gate)
}

// Session reports the restored session of the browser.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	gate, err := ctxGate(c)
	if err != nil {
		return err
	}
	s := gate.Session()
	resp := sessionResponse{Authenticated: s.IsAuthenticated(), Profile: s.Profile}
	if resp.Authenticated {
		resp.Home = gate.HomeRoute()
	}
	return c.JSON(http.StatusOK, resp)
}
