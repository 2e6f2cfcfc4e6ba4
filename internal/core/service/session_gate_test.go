package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
)

type stubAuthClient struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.Profile, error)
}

func (s *stubAuthClient) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	return s.loginFn(ctx, email, password)
}

// memStorage is an in-memory ports.SessionStorage with error injection.
type memStorage struct {
	slots  map[string]string
	getErr error
	setErr map[string]error
}

func newMemStorage() *memStorage {
	return &memStorage{slots: map[string]string{}, setErr: map[string]error{}}
}

func (m *memStorage) Get(_ context.Context, slot string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.slots[slot]
	return v, ok, nil
}

func (m *memStorage) Set(_ context.Context, slot, value string) error {
	if err := m.setErr[slot]; err != nil {
		return err
	}
	m.slots[slot] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, slots ...string) error {
	for _, s := range slots {
		delete(m.slots, s)
	}
	return nil
}

func okAuth(token string, profile *domain.Profile) *stubAuthClient {
	return &stubAuthClient{loginFn: func(context.Context, string, string) (string, *domain.Profile, error) {
		return token, profile, nil
	}}
}

func TestSessionGate_Login_Success(t *testing.T) {
	store := newMemStorage()
	profile := &domain.Profile{ID: "u1", Name: "Vera", Email: "v@example.com", Role: domain.RoleVendor}
	gate := NewSessionGate(&stubAuthClient{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Profile, error) {
			if email != "v@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "t1", profile, nil
		},
	}, store, zerolog.Nop())

	got, err := gate.Login(context.Background(), "v@example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != profile || !gate.IsAuthenticated() || gate.Token() != "t1" {
		t.Fatalf("unexpected gate state: %+v", gate.Session())
	}
	if store.slots[ports.SlotToken] != "t1" {
		t.Fatalf("token not persisted: %+v", store.slots)
	}

	var persisted domain.Profile
	if err := json.Unmarshal([]byte(store.slots[ports.SlotUser]), &persisted); err != nil {
		t.Fatalf("user slot is not json: %v", err)
	}
	if persisted != *profile {
		t.Fatalf("unexpected persisted profile: %+v", persisted)
	}
	if gate.HomeRoute() != "/dashboard/vendor" {
		t.Fatalf("unexpected home route %q", gate.HomeRoute())
	}
}

func TestSessionGate_Login_FailureLeavesStateUnchanged(t *testing.T) {
	store := newMemStorage()
	gate := NewSessionGate(okAuth("t1", &domain.Profile{ID: "u1", Role: domain.RoleAdmin}), store, zerolog.Nop())
	if _, err := gate.Login(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatalf("setup login failed: %v", err)
	}

	gate.auth = &stubAuthClient{loginFn: func(context.Context, string, string) (string, *domain.Profile, error) {
		return "", nil, &domain.AuthError{Message: "Invalid credentials"}
	}}
	_, err := gate.Login(context.Background(), "b@example.com", "bad")

	var authErr *domain.AuthError
	if !errors.As(err, &authErr) || authErr.Message != "Invalid credentials" {
		t.Fatalf("expected AuthError with collaborator message, got %v", err)
	}
	if gate.Token() != "t1" || gate.Session().Role() != domain.RoleAdmin {
		t.Fatalf("failed login changed the session: %+v", gate.Session())
	}
	if store.slots[ports.SlotToken] != "t1" {
		t.Fatalf("failed login changed storage: %+v", store.slots)
	}
}

func TestSessionGate_Login_WrapsPlainErrors(t *testing.T) {
	cause := errors.New("connection refused")
	gate := NewSessionGate(&stubAuthClient{loginFn: func(context.Context, string, string) (string, *domain.Profile, error) {
		return "", nil, cause
	}}, newMemStorage(), zerolog.Nop())

	_, err := gate.Login(context.Background(), "a@example.com", "pw")
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) || !errors.Is(err, cause) {
		t.Fatalf("expected AuthError wrapping the cause, got %v", err)
	}
}

func TestSessionGate_Login_PersistFailureRollsBack(t *testing.T) {
	store := newMemStorage()
	store.setErr[ports.SlotUser] = errors.New("redis down")
	gate := NewSessionGate(okAuth("t1", &domain.Profile{ID: "u1", Role: domain.RoleGuest}), store, zerolog.Nop())

	if _, err := gate.Login(context.Background(), "a@example.com", "pw"); err == nil {
		t.Fatalf("expected error")
	}
	if gate.IsAuthenticated() {
		t.Fatalf("gate must stay signed out")
	}
	if _, ok := store.slots[ports.SlotToken]; ok {
		t.Fatalf("token slot must be rolled back")
	}
}

func TestSessionGate_Login_PersistFailureKeepsPreviousSession(t *testing.T) {
	store := newMemStorage()
	first := &domain.Profile{ID: "a", Name: "Ann", Role: domain.RoleVendor}
	gate := NewSessionGate(okAuth("tA", first), store, zerolog.Nop())
	if _, err := gate.Login(context.Background(), "ann@example.com", "pw"); err != nil {
		t.Fatalf("first login: %v", err)
	}

	store.setErr[ports.SlotUser] = errors.New("redis down")
	gate.auth = okAuth("tB", &domain.Profile{ID: "b", Role: domain.RoleGuest})
	if _, err := gate.Login(context.Background(), "bob@example.com", "pw"); err == nil {
		t.Fatalf("expected error")
	}
	if gate.Token() != "tA" {
		t.Fatalf("in-memory session changed: %+v", gate.Session())
	}

	delete(store.setErr, ports.SlotUser)
	next := NewSessionGate(&stubAuthClient{}, store, zerolog.Nop())
	if err := next.RestoreSession(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	s := next.Session()
	if s.Token != "tA" || s.Profile == nil || s.Profile.ID != "a" || s.Role() != domain.RoleVendor {
		t.Fatalf("previous session not restored: %+v", s)
	}
}

func TestSessionGate_LogoutThenRestoreIsSignedOut(t *testing.T) {
	store := newMemStorage()
	gate := NewSessionGate(okAuth("t1", &domain.Profile{ID: "u1", Role: domain.RoleManager}), store, zerolog.Nop())
	if _, err := gate.Login(context.Background(), "m@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	gate.Logout(context.Background())
	gate.Logout(context.Background())

	restored := NewSessionGate(okAuth("", nil), store, zerolog.Nop())
	if err := restored.RestoreSession(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.IsAuthenticated() || restored.Session().Profile != nil {
		t.Fatalf("expected signed-out session, got %+v", restored.Session())
	}
}

func TestSessionGate_Restore_RoundTrip(t *testing.T) {
	store := newMemStorage()
	gate := NewSessionGate(okAuth("t1", &domain.Profile{ID: "u1", Name: "Ann", Role: domain.RoleAdmin}), store, zerolog.Nop())
	if _, err := gate.Login(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	restored := NewSessionGate(okAuth("", nil), store, zerolog.Nop())
	if err := restored.RestoreSession(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	s := restored.Session()
	if s.Token != "t1" || s.Profile == nil || s.Profile.Name != "Ann" || s.Role() != domain.RoleAdmin {
		t.Fatalf("unexpected restored session: %+v", s)
	}
}

func TestSessionGate_Restore_CorruptProfile(t *testing.T) {
	store := newMemStorage()
	store.slots[ports.SlotToken] = "t1"
	store.slots[ports.SlotUser] = "{not json"

	gate := NewSessionGate(okAuth("", nil), store, zerolog.Nop())
	if err := gate.RestoreSession(context.Background()); err != nil {
		t.Fatalf("corrupt profile must not fail restore: %v", err)
	}
	if gate.Session().Profile != nil {
		t.Fatalf("profile must be absent")
	}
	if _, ok := store.slots[ports.SlotUser]; ok {
		t.Fatalf("corrupt user slot must be cleared")
	}
	if gate.Token() != "t1" {
		t.Fatalf("token must survive a corrupt profile")
	}
	if d := gate.Authorize(domain.RequireRoles(domain.RoleAdmin)); d != domain.DecisionRedirectUnauthorized {
		t.Fatalf("role-gated route without profile: got %s", d)
	}
}

func TestSessionGate_Restore_UnknownPersistedRole(t *testing.T) {
	store := newMemStorage()
	store.slots[ports.SlotToken] = "t1"
	store.slots[ports.SlotUser] = `{"id":"u1","role":"WIZARD"}`

	gate := NewSessionGate(okAuth("", nil), store, zerolog.Nop())
	if err := gate.RestoreSession(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gate.Session().Profile != nil {
		t.Fatalf("profile with unknown role must be dropped")
	}
}

func TestSessionGate_Restore_UserWithoutToken(t *testing.T) {
	store := newMemStorage()
	store.slots[ports.SlotUser] = `{"id":"u1","role":"ADMIN"}`

	gate := NewSessionGate(okAuth("", nil), store, zerolog.Nop())
	if err := gate.RestoreSession(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gate.IsAuthenticated() || gate.Session().Profile != nil {
		t.Fatalf("profile without token must not restore")
	}
	if _, ok := store.slots[ports.SlotUser]; ok {
		t.Fatalf("orphan user slot must be cleared")
	}
}

func TestSessionGate_Restore_ExpiredJWT(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}).SignedString([]byte("unused"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	store := newMemStorage()
	store.slots[ports.SlotToken] = token
	store.slots[ports.SlotUser] = `{"id":"u1","role":"VENDOR"}`

	gate := NewSessionGate(okAuth("", nil), store, zerolog.Nop())
	gate.now = func() time.Time { return now }
	if err := gate.RestoreSession(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gate.IsAuthenticated() {
		t.Fatalf("expired token must not restore")
	}
	if len(store.slots) != 0 {
		t.Fatalf("expired session must be cleared, got %+v", store.slots)
	}
}

func TestSessionGate_Restore_LiveJWTAndOpaqueToken(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	live, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("unused"))

	for _, token := range []string{live, "opaque-token"} {
		store := newMemStorage()
		store.slots[ports.SlotToken] = token

		gate := NewSessionGate(okAuth("", nil), store, zerolog.Nop())
		gate.now = func() time.Time { return now }
		if err := gate.RestoreSession(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gate.Token() != token {
			t.Fatalf("token %q must restore", token)
		}
	}
}

func TestSessionGate_Restore_StorageError(t *testing.T) {
	store := newMemStorage()
	store.getErr = errors.New("redis down")

	gate := NewSessionGate(okAuth("", nil), store, zerolog.Nop())
	if err := gate.RestoreSession(context.Background()); !errors.Is(err, store.getErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestSessionGate_Authorize_VendorScenario(t *testing.T) {
	gate := NewSessionGate(okAuth("t1", &domain.Profile{ID: "u1", Role: domain.RoleVendor}), newMemStorage(), zerolog.Nop())
	if _, err := gate.Login(context.Background(), "v@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if d := gate.Authorize(domain.RequireRoles(domain.RoleAdmin, domain.RoleManager)); d != domain.DecisionRedirectUnauthorized {
		t.Fatalf("expected REDIRECT_UNAUTHORIZED, got %s", d)
	}
	if d := gate.Authorize(domain.RequireRoles(domain.RoleVendor)); d != domain.DecisionAllow {
		t.Fatalf("expected ALLOW, got %s", d)
	}
}

func TestSessionGate_Invalidate(t *testing.T) {
	store := newMemStorage()
	gate := NewSessionGate(okAuth("t1", &domain.Profile{ID: "u1", Role: domain.RoleVendor}), store, zerolog.Nop())
	_, _ = gate.Login(context.Background(), "v@example.com", "pw")

	gate.Invalidate(context.Background(), "rejected")
	if gate.IsAuthenticated() || len(store.slots) != 0 {
		t.Fatalf("invalidate must clear the session")
	}
}
