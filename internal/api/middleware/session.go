package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Nikhil2247/digital-frontend/internal/core/service"
)

const (
	sessionIDKey = "session_id"
	gateKey      = "session_gate"
)

// GateFactory builds the gate of one browser session.
type GateFactory func(sessionID string) *service.SessionGate

// SessionConfig controls the session id cookie.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Sessions issues browser session ids and binds them to requests.
type Sessions struct {
	cfg     SessionConfig
	newGate GateFactory
	log     zerolog.Logger
}

func NewSessions(cfg SessionConfig, newGate GateFactory, log zerolog.Logger) *Sessions {
	return &Sessions{cfg: cfg, newGate: newGate, log: log}
}

// Session is shorthand for NewSessions(cfg, newGate, log).Middleware().
func Session(cfg SessionConfig, newGate GateFactory, log zerolog.Logger) echo.MiddlewareFunc {
	return NewSessions(cfg, newGate, log).Middleware()
}

// Middleware identifies the browser by its session id cookie (issuing a new
// one when missing or malformed), restores its gate from durable storage
// and injects both into context.
func (s *Sessions) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if cookie, err := c.Cookie(s.cfg.CookieName); err == nil {
				if id, err := uuid.Parse(cookie.Value); err == nil {
					sid = id.String()
				}
			}
			if sid == "" {
				sid = uuid.NewString()
			}
			// Refreshed on every request so the cookie slides with the slots.
			c.SetCookie(s.cookie(sid))

			gate := s.newGate(sid)
			if err := gate.RestoreSession(c.Request().Context()); err != nil {
				s.log.Error().Err(err).Msg("session restore failed")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session storage unavailable")
			}

			SetGate(c, sid, gate)
			return next(c)
		}
	}
}

// Issue returns a fresh session id and an empty gate for it. Nothing is
// bound to the browser until Adopt.
func (s *Sessions) Issue() (string, *service.SessionGate) {
	sid := uuid.NewString()
	return sid, s.newGate(sid)
}

// Adopt makes sid the browser's session. The cookie set earlier in the
// request is replaced and later reads of c see gate.
func (s *Sessions) Adopt(c echo.Context, sid string, gate *service.SessionGate) {
	h := c.Response().Header()
	prefix := s.cfg.CookieName + "="
	var kept []string
	for _, v := range h.Values(echo.HeaderSetCookie) {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	h.Del(echo.HeaderSetCookie)
	for _, v := range kept {
		h.Add(echo.HeaderSetCookie, v)
	}
	c.SetCookie(s.cookie(sid))
	SetGate(c, sid, gate)
}

func (s *Sessions) cookie(sid string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(s.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetGate stores gate and its session id in c.
func SetGate(c echo.Context, sessionID string, gate *service.SessionGate) {
	c.Set(sessionIDKey, sessionID)
	c.Set(gateKey, gate)
}

// GateFrom returns the gate injected by Session, or nil.
func GateFrom(c echo.Context) *service.SessionGate {
	gate, _ := c.Get(gateKey).(*service.SessionGate)
	return gate
}

// SessionIDFrom returns the session id injected by Session, or "".
func SessionIDFrom(c echo.Context) string {
	sid, _ := c.Get(sessionIDKey).(string)
	return sid
}
