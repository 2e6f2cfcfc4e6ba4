package domain

import "strings"

// Session is the authenticated state of one browser.
// Profile is only ever set while Token is non-empty; a token without a
// profile is a valid transient state.
type Session struct {
	Token   string
	Profile *Profile
}

// IsAuthenticated reports whether a bearer token is present.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Role returns the profile role, or RoleNone when no profile is loaded.
func (s Session) Role() Role {
	if s.Profile == nil {
		return RoleNone
	}
	return s.Profile.Role
}

// Decision is the outcome of a navigation check.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionRedirectLogin
	DecisionRedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "ALLOW"
	case DecisionRedirectLogin:
		return "REDIRECT_LOGIN"
	case DecisionRedirectUnauthorized:
		return "REDIRECT_UNAUTHORIZED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets decisions render as their names in JSON.
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// RouteRequirement describes who may reach a view.
// A public requirement needs no session; an empty Roles set needs any
// authenticated session.
type RouteRequirement struct {
	Public bool
	Roles  []Role
}

// Public returns a requirement that needs no session.
func Public() RouteRequirement {
	return RouteRequirement{Public: true}
}

// Authenticated returns a requirement satisfied by any session with a token.
func Authenticated() RouteRequirement {
	return RouteRequirement{}
}

// RequireRoles returns a requirement limited to the given roles.
func RequireRoles(roles ...Role) RouteRequirement {
	return RouteRequirement{Roles: roles}
}

// Allows reports whether role is in the allowed set, comparing uppercased.
func (r RouteRequirement) Allows(role Role) bool {
	want := strings.ToUpper(string(role))
	for _, allowed := range r.Roles {
		if strings.ToUpper(string(allowed)) == want {
			return true
		}
	}
	return false
}

// Authorize decides whether s may reach a view guarded by req. It never fails.
func Authorize(s Session, req RouteRequirement) Decision {
	if req.Public {
		return DecisionAllow
	}
	if !s.IsAuthenticated() {
		return DecisionRedirectLogin
	}
	if len(req.Roles) == 0 {
		// Token alone is enough here, even while the profile is missing.
		return DecisionAllow
	}
	role := s.Role()
	if role == RoleNone {
		return DecisionRedirectUnauthorized
	}
	if req.Allows(role) {
		return DecisionAllow
	}
	return DecisionRedirectUnauthorized
}

// HomeRoute maps a role to its landing page.
func HomeRoute(role Role) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleVendor:
		return "/dashboard/vendor"
	case RoleManager:
		return "/dashboard/manager"
	default:
		return "/dashboard"
	}
}
