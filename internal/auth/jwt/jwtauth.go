// Package jwt wraps token issuance and verification for the admin
// surface.
package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
)

const issuer = "checkout-manager"

// NewToken issues a token carrying the service issuer and expiry.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration) (string, error) {
	_, ts, err := jwtAuth.Encode(map[string]interface{}{
		"iss": issuer,
		"exp": time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		return "", err
	}
	return ts, nil
}

// VerifyToken checks the token signature and expiry and returns the
// issuer claim.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (string, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return "", err
	}
	return t.Issuer(), nil
}
