package config

import (
	"regexp"
	"testing"
)

func TestDefaultExemptPathsAreAnchored(t *testing.T) {
	cfg := &Config{AuthExemptPaths: defaultExemptPaths}
	patterns := cfg.ExemptPathPatterns()
	if len(patterns) == 0 {
		t.Fatal("no default exemption patterns")
	}

	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			t.Fatalf("pattern %q does not compile: %v", p, err)
		}
		res = append(res, re)
	}

	matchesAny := func(s string) bool {
		for _, re := range res {
			if re.MatchString(s) {
				return true
			}
		}
		return false
	}

	for _, public := range []string{
		"/api/v1/users/signup",
		"/api/v1/users/login",
		"/api/v1/users/google-authenticate",
		"/api/v1/users/verify-email/0011223344556677889900112233445566778899",
		"/api/v1/auth/password-request",
		"/api/v1/auth/password-reset/0011223344556677889900112233445566778899",
		"GET /api/v1/products",
		"GET /api/v1/products/42",
	} {
		if !matchesAny(public) {
			t.Errorf("public route %q should be exempt", public)
		}
	}

	// routes that merely contain a public path as a substring stay gated
	for _, protected := range []string{
		"/api/v1/users/me",
		"/api/v1/users/update-password",
		"/api/v1/users/signup-requests",
		"/api/v1/admin/users/login-audit",
		"POST /api/v1/products",
		"/api/v1/admin/products",
	} {
		if matchesAny(protected) {
			t.Errorf("protected route %q must not be exempt", protected)
		}
	}
}
