package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/horoskooppi/checkout-manager/internal/entity"
	"github.com/jmoiron/sqlx"
)

type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	Checkout interface {
		// CreateSession starts a new checkout session for the plan with
		// a fresh unpredictable session id and all steps incomplete.
		CreateSession(ctx context.Context, plan entity.PlanName) (*entity.CheckoutSession, error)
		// GetSessionByID returns gerr.ErrSessionNotFound for unknown ids.
		GetSessionByID(ctx context.Context, sessionID string) (*entity.CheckoutSession, error)
		// ApplyStep applies one validated step atomically; idempotent
		// for completed steps, gerr.ErrStepOutOfOrder on skips.
		ApplyStep(ctx context.Context, sessionID string, step entity.StepName, fields entity.StepFields) (*entity.CheckoutSession, error)
		// SetPaymentInitiated marks the payment handoff as started.
		SetPaymentInitiated(ctx context.Context, sessionID string) error
		// SetPaymentCompleted marks the session as converted.
		SetPaymentCompleted(ctx context.Context, sessionID string) error
	}

	Waitlist interface {
		// Join inserts the email unless it is already registered and
		// reports whether it was a member before the call.
		Join(ctx context.Context, sessionID, email string, plan entity.PlanName) (alreadyMember bool, err error)
		Count(ctx context.Context) (int, error)
		ListEntries(ctx context.Context) ([]entity.WaitlistEntry, error)
	}

	Analytics interface {
		GetFunnelSnapshot(ctx context.Context) (*entity.FunnelSnapshot, error)
	}

	Mail interface {
		AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error)
		GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error)
		UpdateSent(ctx context.Context, id int) error
		AddError(ctx context.Context, id int, errMsg string) error
	}

	Repository interface {
		Checkout() Checkout
		Waitlist() Waitlist
		Analytics() Analytics
		Mail() Mail
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// Capacity is the static gate deciding whether completed sessions
	// proceed to payment or divert to the waitlist. The decision is
	// fixed for the process lifetime.
	Capacity interface {
		IsFull() bool
		Decide() entity.NextStep
		Message() string
	}

	Mailer interface {
		SendWaitlistConfirmation(ctx context.Context, rep Repository, to string, plan entity.PlanName) error
		Start(ctx context.Context) error
		Stop() error
	}

	// PaymentProcessor creates the external checkout session the client
	// is redirected to. Payment completion itself is out of scope.
	PaymentProcessor interface {
		CreateCheckoutSession(ctx context.Context, session *entity.CheckoutSession) (redirectURL string, err error)
		// IsDemo reports whether the processor runs without a provider
		// and redirects straight to the success page.
		IsDemo() bool
	}
)
