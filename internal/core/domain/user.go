package domain

import (
	"errors"
	"strings"
)

// Role is the closed set of roles a profile can carry.
type Role string

const (
	RoleNone    Role = ""
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleVendor  Role = "VENDOR"
	RoleGuest   Role = "GUEST"
)

var ErrUnknownRole = errors.New("unknown role")

var knownRoles = map[Role]struct{}{
	RoleAdmin:   {},
	RoleManager: {},
	RoleVendor:  {},
	RoleGuest:   {},
}

// ParseRole normalizes s (case and surrounding whitespace) into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownRoles[r]; !ok {
		return RoleNone, ErrUnknownRole
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

func (r Role) String() string { return string(r) }

// Profile is the user record returned by the Auth collaborator.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
