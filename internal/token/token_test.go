package token

import (
	"errors"
	"strings"
	"testing"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	s := NewSigner([]byte("test-secret"))

	signed, err := s.Sign(42, "authentication")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if signed == "" {
		t.Fatal("expected non-empty token")
	}

	userID, purpose, err := s.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
	if purpose != "authentication" {
		t.Errorf("purpose = %q, want %q", purpose, "authentication")
	}
}

func TestSignProducesDistinctTokens(t *testing.T) {
	s := NewSigner([]byte("test-secret"))

	first, err := s.Sign(42, "authentication")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	second, err := s.Sign(42, "authentication")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if first == second {
		t.Error("two tokens for the same user should differ")
	}
}

func TestVerifyTampered(t *testing.T) {
	s := NewSigner([]byte("test-secret"))

	signed, err := s.Sign(42, "authentication")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// Flip a character in the signature segment.
	i := strings.LastIndex(signed, ".") + 1
	tampered := signed[:i] + "x" + signed[i+1:]

	if _, _, err := s.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := NewSigner([]byte("secret-one")).Sign(42, "authentication")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, _, err := NewSigner([]byte("secret-two")).Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	s := NewSigner([]byte("test-secret"))

	for _, signed := range []string{"", "garbage", "a.b.c"} {
		if _, _, err := s.Verify(signed); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) err = %v, want ErrInvalidToken", signed, err)
		}
	}
}

func TestVerifyPreservesPurpose(t *testing.T) {
	s := NewSigner([]byte("test-secret"))

	signed, err := s.Sign(7, "password-reset")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, purpose, err := s.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if purpose != "password-reset" {
		t.Errorf("purpose = %q, want %q", purpose, "password-reset")
	}
}
