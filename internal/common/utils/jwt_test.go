package utils

import (
	"testing"
	"time"
)

func testClaims(expiry time.Duration) *JWTClaims {
	now := time.Now()
	return &JWTClaims{
		UserID:    "user-1",
		Email:     "ada@example.com",
		Username:  "ada",
		Role:      "customer",
		ExpiresAt: now.Add(expiry).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "bigteam-api",
		Subject:   "user-1",
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(testClaims(time.Hour), "secret")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token, "secret")
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}

	if claims.UserID != "user-1" || claims.Role != "customer" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testClaims(time.Hour), "secret")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ValidateJWT(token, "other-secret"); err == nil {
		t.Fatal("token validated with the wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testClaims(-time.Minute), "secret")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ValidateJWT(token, "secret"); err == nil {
		t.Fatal("expired token validated")
	}
}
