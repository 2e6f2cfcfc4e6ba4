package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"ADMIN":     RoleAdmin,
		"manager":   RoleManager,
		" Vendor  ": RoleVendor,
		"guest":     RoleGuest,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		if err != nil || got != want {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, in := range []string{"", "chef", "ADMINS"} {
		got, err := ParseRole(in)
		if !errors.Is(err, ErrUnknownRole) || got != RoleNone {
			t.Fatalf("ParseRole(%q) = %q, %v; want RoleNone, ErrUnknownRole", in, got, err)
		}
	}
}
