package app

import (
	"context"

	"log/slog"

	"github.com/horoskooppi/checkout-manager/config"
	httpapi "github.com/horoskooppi/checkout-manager/internal/api/http"
	"github.com/horoskooppi/checkout-manager/internal/apisrv/admin"
	"github.com/horoskooppi/checkout-manager/internal/apisrv/auth"
	"github.com/horoskooppi/checkout-manager/internal/apisrv/checkout"
	"github.com/horoskooppi/checkout-manager/internal/capacity"
	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/mail"
	"github.com/horoskooppi/checkout-manager/internal/payment/stripe"
	"github.com/horoskooppi/checkout-manager/internal/store"
)

// App is the main application
type App struct {
	hs     *httpapi.Server
	db     dependency.Repository
	mailer dependency.Mailer
	c      *config.Config
	done   chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting checkout manager")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	gate := capacity.New(&a.c.Capacity)

	if a.c.Mailer.APIKey != "" {
		a.mailer, err = mail.New(&a.c.Mailer, a.db.Mail())
		if err != nil {
			slog.Default().ErrorContext(ctx, "failed to create mailer",
				slog.String("err", err.Error()),
			)
			return err
		}
		if err := a.mailer.Start(ctx); err != nil {
			return err
		}
	} else {
		slog.Default().WarnContext(ctx, "mailer api key not set, waitlist confirmations disabled")
	}

	paymentS, err := stripe.New(&a.c.Stripe)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create payment processor",
			slog.String("err", err.Error()),
		)
		return err
	}

	authS, err := auth.New(&a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create auth server",
			slog.String("err", err.Error()),
		)
		return err
	}

	adminS := admin.New(a.db)
	checkoutS := checkout.New(a.db, gate, a.mailer, paymentS)

	a.hs = httpapi.New(&a.c.HTTP, checkoutS, adminS, authS, a.db)
	if err = a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.mailer != nil {
		if err := a.mailer.Stop(); err != nil {
			slog.Default().ErrorContext(ctx, "mailer shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
