package helpers

import (
	"errors"
	"testing"
	"time"
)

func TestBearerTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, time.Hour)

	token, exp, err := m.GenerateBearerToken("user-1", "a@b.com")
	if err != nil {
		t.Fatalf("GenerateBearerToken: %v", err)
	}
	if exp.Before(time.Now()) {
		t.Fatal("expiry already in the past")
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Email != "a@b.com" {
		t.Errorf("Email = %q, want a@b.com", claims.Email)
	}
}

func TestActivationTokenCarriesOnlyUserID(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, time.Hour)

	token, _, err := m.GenerateActivationToken("user-2")
	if err != nil {
		t.Fatalf("GenerateActivationToken: %v", err)
	}
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-2" {
		t.Errorf("UserID = %q, want user-2", claims.UserID)
	}
	if claims.Email != "" {
		t.Errorf("Email = %q, want empty", claims.Email)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", time.Hour, time.Hour)
	other := NewJWTManager("secret-b", time.Hour, time.Hour)

	token, _, err := m.GenerateBearerToken("user-3", "")
	if err != nil {
		t.Fatalf("GenerateBearerToken: %v", err)
	}
	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("ParseToken with wrong secret = %v, want ErrTokenInvalid", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, -time.Minute)

	token, _, err := m.GenerateBearerToken("user-4", "")
	if err != nil {
		t.Fatalf("GenerateBearerToken: %v", err)
	}
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("ParseToken on expired token = %v, want ErrTokenExpired", err)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, time.Hour)
	if _, err := m.ParseToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("ParseToken on garbage = %v, want ErrTokenInvalid", err)
	}
}
