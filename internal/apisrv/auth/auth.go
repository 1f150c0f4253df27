// Package auth issues and verifies the admin JWT used by the admin
// surface. There is a single admin identity configured at startup.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/horoskooppi/checkout-manager/internal/auth/jwt"
	gerr "github.com/horoskooppi/checkout-manager/internal/errors"
)

const defaultJWTTTL = 15 * time.Minute

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	AdminPassword string `mapstructure:"admin_password"`
	JWTTTL        string `mapstructure:"jwt_ttl"`
}

// Server implements admin authentication.
type Server struct {
	JwtAuth      *jwtauth.JWTAuth
	jwtTTL       time.Duration
	passwordHash []byte
}

// New creates a new auth server. The admin password is hashed at
// startup so the plaintext does not stay in memory.
func New(c *Config) (*Server, error) {
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is not set")
	}
	if c.AdminPassword == "" {
		return nil, fmt.Errorf("admin password is not set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("can't hash admin password: %w", err)
	}

	ttl := defaultJWTTTL
	if c.JWTTTL != "" {
		ttl, err = time.ParseDuration(c.JWTTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid jwt ttl: %w", err)
		}
	}

	return &Server{
		JwtAuth:      jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:       ttl,
		passwordHash: hash,
	}, nil
}

// Login returns an auth token for the admin password.
func (s *Server) Login(ctx context.Context, password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", gerr.ErrNotAuthenticated
	}

	token, err := jwt.NewToken(s.JwtAuth, s.jwtTTL)
	if err != nil {
		return "", fmt.Errorf("can't encode token: %w", err)
	}
	return token, nil
}
