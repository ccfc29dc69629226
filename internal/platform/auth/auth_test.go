package auth

import (
	"errors"
	"testing"
	"time"
)

const key = "0123456789abcdef0123456789abcdef"

func TestIssueVerify(t *testing.T) {
	iss := NewIssuer(key, "repairshop")
	tok, err := iss.Issue("ops@example.com", RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := iss.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Role != RoleAdmin || claims.Subject != "ops@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestVerifyRejects(t *testing.T) {
	iss := NewIssuer(key, "repairshop")

	expired, err := iss.Issue("a", RoleStaff, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	other, err := NewIssuer("ffffffffffffffffffffffffffffffff", "repairshop").Issue("a", RoleAdmin, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := NewIssuer(key, "someone-else").Issue("a", RoleAdmin, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	for name, tok := range map[string]string{
		"expired":     expired,
		"wrong key":   other,
		"wrong iss":   foreign,
		"garbage":     "not.a.token",
		"unsigned":    "eyJhbGciOiJub25lIn0.eyJyb2xlIjoiYWRtaW4ifQ.",
		"empty token": "",
	} {
		if _, err := iss.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestIssueUnknownRole(t *testing.T) {
	iss := NewIssuer(key, "repairshop")
	if _, err := iss.Issue("a", Role("devViewRole"), time.Hour); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("err = %v, want ErrUnknownRole", err)
	}
}
