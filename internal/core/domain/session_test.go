package domain

import "testing"

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{
		"ROLE_ADMIN":    "ADMIN",
		"ADMIN":         "ADMIN",
		"ROLE_PROVIDER": "PROVIDER",
		"USER":          "USER",
		"":              "",
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSession_HasRole_BothForms(t *testing.T) {
	sess := Session{Token: "t", Roles: []string{"ADMIN"}}

	if !sess.HasRole("ADMIN") {
		t.Fatalf("expected bare query to match")
	}
	if !sess.HasRole("ROLE_ADMIN") {
		t.Fatalf("expected prefixed query to match")
	}
	if sess.HasRole("PROVIDER") {
		t.Fatalf("unexpected PROVIDER match")
	}

	// Stored roles may also arrive prefixed.
	sess.Roles = []string{"ROLE_PROVIDER"}
	if !sess.HasRole("PROVIDER") || !sess.HasRole("ROLE_PROVIDER") {
		t.Fatalf("expected prefixed stored role to match both query forms")
	}
}

func TestSession_HasRole_Empty(t *testing.T) {
	sess := Session{Token: "t"}
	if sess.HasRole("USER") {
		t.Fatalf("empty role set should match nothing")
	}
}

func TestSession_IsAuthenticated(t *testing.T) {
	if (Session{}).IsAuthenticated() {
		t.Fatalf("empty session must not be authenticated")
	}
	if !(Session{Token: "abc"}).IsAuthenticated() {
		t.Fatalf("session with token must be authenticated")
	}
}
