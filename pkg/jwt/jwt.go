package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed session token")
	ErrExpiredToken   = errors.New("session token expired")
)

// Claims mirrors the fields the backend embeds in the session token.
type Claims struct {
	UserCode string `json:"userCode"`
	FullName string `json:"fullName"`
	RoleCode string `json:"roleCode"`
	jwt.RegisteredClaims
}

// Decode parses the token without verifying the signature. The backend owns the
// signing key; the gateway only needs the embedded expiry to decide validity
// locally, without a round trip.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

// ExpiresAt returns the embedded expiry. Tokens without an exp claim are
// treated as malformed.
func ExpiresAt(tokenString string) (time.Time, error) {
	claims, err := Decode(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrMalformedToken
	}
	return claims.ExpiresAt.Time, nil
}

// IsValid reports whether the token is well-formed and its expiry is in the
// future. Malformed input is never valid.
func IsValid(tokenString string) bool {
	exp, err := ExpiresAt(tokenString)
	if err != nil {
		return false
	}
	return exp.After(time.Now())
}
