package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints and verifies signed session tokens. The signing
// algorithm and secret come from configuration; one issuer is constructed
// at startup and shared.
type TokenIssuer struct {
	auth   *jwtauth.JWTAuth
	expiry time.Duration
}

func NewTokenIssuer(alg string, secret []byte, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		auth:   jwtauth.New(alg, secret, nil),
		expiry: expiry,
	}
}

// Issue produces a signed token carrying the user identifier in the "sub"
// claim and an absolute expiry.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(t.expiry).Unix(),
		"iat": now.Unix(),
	}
	_, tokenString, err := t.auth.Encode(claims)
	return tokenString, err
}

// Auth exposes the underlying verifier for jwtauth middleware wiring.
func (t *TokenIssuer) Auth() *jwtauth.JWTAuth {
	return t.auth
}

// UserIDFromClaims extracts the subject claim from a verified token's
// claim map.
func UserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["sub"].(string)
	if !ok || id == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return id, nil
}
