package helpers

import (
	"testing"
	"time"
)

func TestGenOTPCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenOTPCode()
		if err != nil {
			t.Fatalf("GenOTPCode: %v", err)
		}
		if len(code) != OTPDigits {
			t.Fatalf("code %q has length %d, want %d", code, len(code), OTPDigits)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("50 draws produced %d distinct codes", len(seen))
	}
}

func TestNewOTPExpiry(t *testing.T) {
	ttl := 10 * time.Minute
	before := time.Now()
	code, expires, err := NewOTP(ttl)
	if err != nil {
		t.Fatalf("NewOTP: %v", err)
	}
	if code == "" {
		t.Fatal("empty code")
	}
	if expires.Before(before.Add(ttl)) || expires.After(time.Now().Add(ttl)) {
		t.Fatalf("expiry %v not about %v from now", expires, ttl)
	}
}
