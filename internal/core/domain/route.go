package domain

import "strings"

// Route binds a path pattern to its requirement. Pattern segments starting
// with ':' match any single non-empty segment.
type Route struct {
	Pattern     string
	Requirement RouteRequirement
}

// Routes is the navigation table of the ordering front-end.
var Routes = []Route{
	{"/login", Public()},
	{"/signup", Public()},
	{"/tables", Public()},
	{"/event/:eventId/table/:tableNumber", Public()},
	{"/unauthorized", Public()},

	{"/", Authenticated()},
	{"/dashboard", Authenticated()},
	{"/events", Authenticated()},
	{"/orders", Authenticated()},

	{"/admin", RequireRoles(RoleAdmin)},
	{"/admin/roles", RequireRoles(RoleAdmin)},
	{"/dashboard/manager", RequireRoles(RoleManager)},
	{"/dashboard/vendor", RequireRoles(RoleVendor)},
	{"/order/:eventId", RequireRoles(RoleVendor)},
	{"/scan", RequireRoles(RoleAdmin, RoleManager)},
	{"/events/new", RequireRoles(RoleAdmin, RoleManager)},
	{"/events/:id/edit", RequireRoles(RoleAdmin, RoleManager)},
}

// LookupRoute finds the requirement for path. Unknown paths fall back to
// the root route, which needs an authenticated session.
func LookupRoute(path string) (Route, bool) {
	for _, r := range Routes {
		if matchPattern(r.Pattern, path) {
			return r, true
		}
	}
	return Route{Pattern: "/", Requirement: Authenticated()}, false
}

func matchPattern(pattern, path string) bool {
	ps := splitPath(pattern)
	xs := splitPath(path)
	if len(ps) != len(xs) {
		return false
	}
	for i, seg := range ps {
		if strings.HasPrefix(seg, ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if seg != xs[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
