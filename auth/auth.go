// Package auth provides pipeline steps that authenticate a request with an HS256 bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jeremywhuff/rp/v2"
)

var (
	ErrMissingToken = errors.New("auth: missing bearer token")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims are the token claims a step yields on success.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Bearer returns a step that verifies the Authorization header against secret.
func Bearer(secret []byte) func(context.Context, rp.App, *rp.Request) rp.Result[Claims, error] {
	return func(_ context.Context, _ rp.App, req *rp.Request) rp.Result[Claims, error] {
		return rp.FromError(Verify(secret, req.Header("Authorization")))
	}
}

// Verify parses an Authorization header value of the form "Bearer <token>".
func Verify(secret []byte, header string) (Claims, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return Claims{}, ErrMissingToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Sign issues a token for name that expires after ttl.
func Sign(secret []byte, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Status is a Catch handler: 401 for every authentication failure.
func Status(err error) (string, int) {
	if errors.Is(err, ErrMissingToken) {
		return "Missing token", 401
	}
	return "Auth error", 401
}
