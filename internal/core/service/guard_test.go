package service

import (
	"testing"

	"github.com/domination/booking-client/internal/core/domain"
)

func TestCheckRoute_Unauthenticated(t *testing.T) {
	d := CheckRoute(domain.Session{}, "")
	if d.Allow || d.RedirectTo != LoginPath {
		t.Fatalf("expected redirect to %s, got %+v", LoginPath, d)
	}
}

func TestCheckRoute_MissingRole(t *testing.T) {
	sess := domain.Session{Token: "t"} // no roles at all
	d := CheckRoute(sess, domain.RoleProvider)
	if d.Allow || d.RedirectTo != HomePath {
		t.Fatalf("expected silent redirect home, got %+v", d)
	}
}

func TestCheckRoute_Allowed(t *testing.T) {
	sess := domain.Session{Token: "t", Roles: []string{"ROLE_ADMIN"}}

	if d := CheckRoute(sess, ""); !d.Allow {
		t.Fatalf("authenticated session must pass role-less check: %+v", d)
	}
	if d := CheckRoute(sess, domain.RoleAdmin); !d.Allow {
		t.Fatalf("prefixed stored role must satisfy bare requirement: %+v", d)
	}
}

func TestDashboardAffordance_Priority(t *testing.T) {
	cases := []struct {
		roles []string
		want  Affordance
	}{
		{nil, AffordanceNone},
		{[]string{"USER"}, AffordanceNone},
		{[]string{"PROVIDER"}, AffordanceProvider},
		{[]string{"ADMIN"}, AffordanceAdmin},
		{[]string{"PROVIDER", "ADMIN"}, AffordanceAdmin},
		{[]string{"ROLE_ADMIN", "ROLE_PROVIDER"}, AffordanceAdmin},
	}
	for _, tc := range cases {
		sess := domain.Session{Token: "t", Roles: tc.roles}
		if got := DashboardAffordance(sess); got != tc.want {
			t.Fatalf("roles %v: got %v, want %v", tc.roles, got, tc.want)
		}
	}
}
