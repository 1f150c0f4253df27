package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerr "github.com/horoskooppi/checkout-manager/internal/errors"
)

func TestNew_RequiresSecrets(t *testing.T) {
	_, err := New(&Config{AdminPassword: "pw"})
	assert.Error(t, err)

	_, err = New(&Config{JWTSecret: "secret"})
	assert.Error(t, err)

	_, err = New(&Config{JWTSecret: "secret", AdminPassword: "pw", JWTTTL: "bogus"})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	s, err := New(&Config{
		JWTSecret:     "secret",
		AdminPassword: "hunter2",
		JWTTTL:        "1h",
	})
	require.NoError(t, err)

	token, err := s.Login(context.Background(), "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// the issued token must verify against the server's key
	jwt, err := jwtauth.VerifyToken(s.JwtAuth, token)
	require.NoError(t, err)
	assert.Equal(t, "checkout-manager", jwt.Issuer())

	_, err = s.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, gerr.ErrNotAuthenticated)
}
