package helpers

import (
	"testing"
	"time"
)

func TestJWTIssueAndVerify(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.Issue("jane@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatal("expiry should be in the future")
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "jane@example.com" {
		t.Fatalf("email = %s", claims.Email)
	}
}

func TestJWTVerifyFailuresAreUniform(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	good, _, err := m.Issue("jane@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	wrongKey, _, err := other.Issue("jane@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := map[string]string{
		"empty":     "",
		"garbage":   "not-a-token",
		"wrong key": wrongKey,
		"truncated": good[:len(good)-5],
	}
	for name, tok := range cases {
		if _, err := m.Verify(tok); err != ErrInvalidToken {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestJWTExpiry(t *testing.T) {
	base := time.Now()
	m := NewJWTManager("secret", time.Hour).WithClock(func() time.Time { return base })

	token, _, err := m.Issue("jane@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.WithClock(func() time.Time { return base.Add(59 * time.Minute) })
	if _, err := m.Verify(token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	m.WithClock(func() time.Time { return base.Add(61 * time.Minute) })
	if _, err := m.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expired token: expected ErrInvalidToken, got %v", err)
	}
}
