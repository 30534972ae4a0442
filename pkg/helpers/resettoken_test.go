package helpers

import (
	"encoding/hex"
	"testing"
)

func TestGenerateResetToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		tok, err := GenerateResetToken()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(tok) != 40 {
			t.Fatalf("token length = %d, want 40", len(tok))
		}
		if _, err := hex.DecodeString(tok); err != nil {
			t.Fatalf("token is not hex: %s", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token generated: %s", tok)
		}
		seen[tok] = true
	}
}
