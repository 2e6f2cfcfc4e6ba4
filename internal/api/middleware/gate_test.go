package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
	"github.com/Nikhil2247/digital-frontend/internal/core/service"
)

func contextWithSlots(t *testing.T, slots map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	gate := service.NewSessionGate(nopAuth{}, &mapStorage{slots: slots}, zerolog.Nop())
	if err := gate.RestoreSession(c.Request().Context()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	SetGate(c, "sid-1", gate)
	return c, rec
}

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireAPI(t *testing.T) {
	vendor := map[string]string{ports.SlotToken: "t1", ports.SlotUser: `{"id":"u1","role":"VENDOR"}`}
	cases := []struct {
		name  string
		slots map[string]string
		req   domain.RouteRequirement
		code  int
	}{
		{"anonymous on public", map[string]string{}, domain.Public(), http.StatusOK},
		{"anonymous on authenticated", map[string]string{}, domain.Authenticated(), http.StatusUnauthorized},
		{"vendor on vendor route", vendor, domain.RequireRoles(domain.RoleVendor), http.StatusOK},
		{"vendor on admin route", vendor, domain.RequireRoles(domain.RoleAdmin, domain.RoleManager), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := contextWithSlots(t, tc.slots)
			err := RequireAPI(tc.req)(ok)(c)

			code := rec.Code
			var he *echo.HTTPError
			if errors.As(err, &he) {
				code = he.Code
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestRequirePage_Redirects(t *testing.T) {
	c, rec := contextWithSlots(t, map[string]string{})
	if err := RequirePage(domain.Authenticated())(ok)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != LoginPath {
		t.Fatalf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	c, rec = contextWithSlots(t, map[string]string{ports.SlotToken: "t1"})
	if err := RequirePage(domain.RequireRoles(domain.RoleAdmin))(ok)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get(echo.HeaderLocation) != UnauthorizedPath {
		t.Fatalf("expected redirect to unauthorized, got %q", rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRequireAPI_WithoutGate(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RequireAPI(domain.Authenticated())(ok)(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a gate, got %v", err)
	}
}
