package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"event-polling-api/internal/auth"
)

const secret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := auth.IssueAccessToken("u1", secret, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	c, err := auth.ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UserID != "u1" || c.Subject != "u1" {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestParseTokenRejects(t *testing.T) {
	expired, _ := auth.IssueAccessToken("u1", secret, time.Now().Add(-time.Hour))
	valid, _ := auth.IssueAccessToken("u1", secret, time.Now())
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    auth.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	foreign, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"expired", expired, secret},
		{"wrong secret", valid, "other-secret"},
		{"alg none", none, secret},
		{"foreign issuer", foreign, secret},
		{"garbage", "not.a.token", secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.ParseToken(tt.token, tt.secret); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !auth.CheckPassword(hash, "correct horse") {
		t.Fatal("expected password to match")
	}
	if auth.CheckPassword(hash, "battery staple") {
		t.Fatal("expected mismatch")
	}
}

func TestRefreshToken(t *testing.T) {
	raw, hash, err := auth.NewRefreshToken()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(raw) != 64 || raw == hash {
		t.Fatalf("unexpected token shape: raw=%q hash=%q", raw, hash)
	}
	if auth.HashRefreshToken(raw) != hash {
		t.Fatal("hash does not match")
	}
	other, _, _ := auth.NewRefreshToken()
	if other == raw {
		t.Fatal("tokens should differ")
	}
}
