package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
	"github.com/Nikhil2247/digital-frontend/internal/metrics"
)

// SessionGate owns the session of one browser: it logs in and out, restores
// state from durable storage and answers navigation checks.
// It does no locking; callers must not overlap Login calls on one gate.
type SessionGate struct {
	auth    ports.AuthClient
	storage ports.SessionStorage
	log     zerolog.Logger
	now     func() time.Time

	session domain.Session
}

func NewSessionGate(auth ports.AuthClient, storage ports.SessionStorage, log zerolog.Logger) *SessionGate {
	return &SessionGate{
		auth:    auth,
		storage: storage,
		log:     log,
		now:     time.Now,
	}
}

// Session returns a snapshot of the current state.
func (g *SessionGate) Session() domain.Session {
	return g.session
}

func (g *SessionGate) IsAuthenticated() bool {
	return g.session.IsAuthenticated()
}

// Token returns the bearer token, or "" when signed out.
func (g *SessionGate) Token() string {
	return g.session.Token
}

// Login authenticates against the remote API and persists the result.
// On any failure the in-memory session is left as it was.
func (g *SessionGate) Login(ctx context.Context, email, password string) (*domain.Profile, error) {
	token, profile, err := g.auth.Login(ctx, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			return nil, authErr
		}
		return nil, &domain.AuthError{Err: err}
	}
	if token == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, &domain.AuthError{Message: "login response carried no access token"}
	}

	if err := g.persist(ctx, token, profile); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		g.rollback(ctx)
		return nil, fmt.Errorf("login: persist session: %w", err)
	}

	g.session = domain.Session{Token: token, Profile: profile}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	ev := g.log.Info()
	if profile != nil {
		ev = ev.Str("user_id", profile.ID).Str("role", profile.Role.String())
	}
	ev.Msg("login succeeded")

	return profile, nil
}

func (g *SessionGate) persist(ctx context.Context, token string, profile *domain.Profile) error {
	if err := g.storage.Set(ctx, ports.SlotToken, token); err != nil {
		return err
	}
	if profile == nil {
		return g.storage.Delete(ctx, ports.SlotUser)
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return g.storage.Set(ctx, ports.SlotUser, string(raw))
}

// rollback puts the slots back to the session held before a failed login.
func (g *SessionGate) rollback(ctx context.Context) {
	if !g.session.IsAuthenticated() {
		if err := g.storage.Delete(ctx, ports.SlotToken, ports.SlotUser); err != nil {
			g.log.Warn().Err(err).Msg("failed to roll back session slots")
		}
		return
	}
	if err := g.persist(ctx, g.session.Token, g.session.Profile); err != nil {
		g.log.Warn().Err(err).Msg("failed to restore previous session slots")
	}
}

// Logout clears the session from memory and storage. It never fails.
func (g *SessionGate) Logout(ctx context.Context) {
	g.session = domain.Session{}
	if err := g.storage.Delete(ctx, ports.SlotToken, ports.SlotUser); err != nil {
		g.log.Warn().Err(err).Msg("failed to clear session slots")
	}
}

// Invalidate destroys a session whose token the remote API refused.
func (g *SessionGate) Invalidate(ctx context.Context, reason string) {
	if !g.session.IsAuthenticated() {
		return
	}
	g.log.Info().Str("reason", reason).Msg("session invalidated")
	g.Logout(ctx)
}

// RestoreSession loads the persisted session without touching the network.
// A corrupt profile is dropped and logged; only storage failures are returned.
func (g *SessionGate) RestoreSession(ctx context.Context) error {
	token, hasToken, err := g.storage.Get(ctx, ports.SlotToken)
	if err != nil {
		return fmt.Errorf("restore session: read token: %w", err)
	}
	rawUser, hasUser, err := g.storage.Get(ctx, ports.SlotUser)
	if err != nil {
		return fmt.Errorf("restore session: read user: %w", err)
	}

	g.session = domain.Session{}

	if !hasToken || token == "" {
		if hasUser {
			g.discardUser(ctx)
		}
		return nil
	}

	if g.expired(token) {
		g.log.Info().Msg("persisted token expired, discarding session")
		g.Logout(ctx)
		return nil
	}

	g.session.Token = token
	if !hasUser {
		return nil
	}

	profile, err := decodeProfile(rawUser)
	if err != nil {
		g.log.Error().Err(err).Msg("discarding persisted profile")
		g.discardUser(ctx)
		return nil
	}
	g.session.Profile = profile
	return nil
}

func (g *SessionGate) discardUser(ctx context.Context) {
	if err := g.storage.Delete(ctx, ports.SlotUser); err != nil {
		g.log.Warn().Err(err).Msg("failed to clear user slot")
	}
}

// expired reports whether token is a JWT whose exp has passed. Opaque
// tokens are never considered expired here.
func (g *SessionGate) expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !g.now().Before(claims.ExpiresAt.Time)
}

func decodeProfile(raw string) (*domain.Profile, error) {
	var stored struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptPersistedProfile, err)
	}
	role, err := domain.ParseRole(stored.Role)
	if err != nil && stored.Role != "" {
		return nil, fmt.Errorf("%w: role %q", domain.ErrCorruptPersistedProfile, stored.Role)
	}
	return &domain.Profile{
		ID:    stored.ID,
		Name:  stored.Name,
		Email: stored.Email,
		Role:  role,
	}, nil
}

// Authorize decides whether the current session may reach a view.
func (g *SessionGate) Authorize(req domain.RouteRequirement) domain.Decision {
	d := domain.Authorize(g.session, req)
	metrics.NavigationDecisionsTotal.WithLabelValues(d.String()).Inc()
	return d
}

// HomeRoute is where a signed-in user lands.
func (g *SessionGate) HomeRoute() string {
	return domain.HomeRoute(g.session.Role())
}
