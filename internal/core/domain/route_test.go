package domain

import "testing"

func TestLookupRoute(t *testing.T) {
	cases := []struct {
		path    string
		pattern string
		found   bool
	}{
		{"/login", "/login", true},
		{"/event/e1/table/7", "/event/:eventId/table/:tableNumber", true},
		{"/event/e1/table/7/", "/event/:eventId/table/:tableNumber", true},
		{"/events/new", "/events/new", true},
		{"/events/42/edit", "/events/:id/edit", true},
		{"/order/e1", "/order/:eventId", true},
		{"/dashboard/vendor", "/dashboard/vendor", true},
		{"/", "/", true},
		{"/nowhere/at/all", "/", false},
	}
	for _, tc := range cases {
		r, found := LookupRoute(tc.path)
		if r.Pattern != tc.pattern || found != tc.found {
			t.Fatalf("LookupRoute(%q) = %q,%v; want %q,%v", tc.path, r.Pattern, found, tc.pattern, tc.found)
		}
	}
}

func TestLookupRoute_UnknownPathNeedsSession(t *testing.T) {
	r, _ := LookupRoute("/does-not-exist")
	if d := Authorize(Session{}, r.Requirement); d != DecisionRedirectLogin {
		t.Fatalf("expected REDIRECT_LOGIN, got %s", d)
	}
}

func TestRoutes_RoleGates(t *testing.T) {
	vendor := sessionWithRole(RoleVendor)
	manager := sessionWithRole(RoleManager)

	r, _ := LookupRoute("/order/e1")
	if d := Authorize(vendor, r.Requirement); d != DecisionAllow {
		t.Fatalf("vendor on /order/e1: got %s", d)
	}
	if d := Authorize(manager, r.Requirement); d != DecisionRedirectUnauthorized {
		t.Fatalf("manager on /order/e1: got %s", d)
	}

	r, _ = LookupRoute("/scan")
	if d := Authorize(manager, r.Requirement); d != DecisionAllow {
		t.Fatalf("manager on /scan: got %s", d)
	}
}

func TestMatchPattern_EmptyParam(t *testing.T) {
	if matchPattern("/order/:eventId", "/order") {
		t.Fatalf("param must match exactly one segment")
	}
}
