// Package http exposes the checkout funnel and the admin surface over
// JSON. Transport concerns live here; funnel semantics stay in apisrv.
package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"

	"github.com/horoskooppi/checkout-manager/internal/apisrv/admin"
	"github.com/horoskooppi/checkout-manager/internal/apisrv/auth"
	"github.com/horoskooppi/checkout-manager/internal/apisrv/checkout"
	"github.com/horoskooppi/checkout-manager/internal/dependency"
	mw "github.com/horoskooppi/checkout-manager/internal/middleware"
	"github.com/horoskooppi/checkout-manager/internal/ratelimit"
)

type Config struct {
	Address        string   `mapstructure:"address"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server handling requests to the checkout funnel.
type Server struct {
	hs       *http.Server
	c        *Config
	checkout *checkout.Server
	admin    *admin.Server
	auth     *auth.Server
	repo     dependency.Repository
	limits   *ratelimit.FunnelLimiter
}

// New creates new http server.
func New(c *Config, checkoutSrv *checkout.Server, adminSrv *admin.Server, authSrv *auth.Server, repo dependency.Repository) *Server {
	return &Server{
		c:        c,
		checkout: checkoutSrv,
		admin:    adminSrv,
		auth:     authSrv,
		repo:     repo,
		limits:   ratelimit.NewFunnelLimiter(),
	}
}

// Start starts the server and listens on the configured address.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Default().InfoContext(ctx, "starting http server",
		slog.String("addr", addr),
	)

	go func() {
		if err := s.hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Default().ErrorContext(ctx, "http server stopped",
				slog.String("err", err.Error()),
			)
		}
	}()
	return nil
}

// Stop shuts the server down, draining in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	if err := s.hs.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})

	r.Use(c.Handler)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.ClientIdentifier)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", s.health)

	r.Route("/api/checkout", func(r chi.Router) {
		r.Get("/plans", s.getPlans)
		r.Post("/start", s.startCheckout)
		r.Get("/progress/{sessionID}", s.getProgress)

		r.Post("/step/email", s.submitEmailStep)
		r.Post("/step/phone", s.submitPhoneStep)
		r.Post("/step/address", s.submitAddressStep)
		r.Post("/step/birthdate", s.submitBirthdateStep)

		r.Get("/capacity", s.capacityStatus)
		r.Post("/waitlist", s.joinWaitlist)
		r.Get("/waitlist/count", s.waitlistCount)
		r.Get("/analytics", s.publicAnalytics)

		r.Post("/payment/create", s.createPayment)
		r.Post("/payment/complete", s.completePayment)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", s.adminLogin)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(s.auth.JwtAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/analytics", s.adminAnalytics)
			r.Get("/waitlist", s.adminWaitlist)
			r.Get("/waitlist/export", s.adminWaitlistExport)
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		render.Render(w, r, ErrServiceUnavailable(err))
		return
	}
	render.JSON(w, r, map[string]string{"status": "ok"})
}
