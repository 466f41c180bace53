package utils

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.StudentID != 42 {
		t.Fatalf("expected student 42, got %d", claims.StudentID)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"not-a-token",
		"aaaa.bbbb.cccc",
	}
	for _, token := range cases {
		if _, err := ParseToken(token); err == nil {
			t.Fatalf("expected error for %q", token)
		}
	}
}
