// Package checkout implements the multi step signup funnel: session
// creation, sequenced step submission, the capacity gate decision and
// the payment or waitlist handoff.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	v "github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/dto"
	"github.com/horoskooppi/checkout-manager/internal/entity"
	gerr "github.com/horoskooppi/checkout-manager/internal/errors"
)

// waitlistJoinedMessage is returned for both new and repeated joins so
// the endpoint does not leak membership.
const waitlistJoinedMessage = "You're on the list. We'll email you as soon as a spot opens up."

// Server implements handlers for checkout funnel requests.
type Server struct {
	repo    dependency.Repository
	gate    dependency.Capacity
	mailer  dependency.Mailer
	payment dependency.PaymentProcessor
}

// New creates a new server with checkout handlers.
func New(r dependency.Repository, gate dependency.Capacity, mailer dependency.Mailer, payment dependency.PaymentProcessor) *Server {
	return &Server{
		repo:    r,
		gate:    gate,
		mailer:  mailer,
		payment: payment,
	}
}

// Plans returns the offered pricing tiers.
func (s *Server) Plans() []dto.PlanResponse {
	return dto.ConvertPlanCatalog()
}

// StartCheckout creates a session for the selected plan. The returned
// session id is the only handle to the session.
func (s *Server) StartCheckout(ctx context.Context, plan entity.PlanName) (*dto.ProgressResponse, error) {
	session, err := s.repo.Checkout().CreateSession(ctx, plan)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create checkout session",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't create checkout session: %w", err)
	}
	return dto.ConvertSessionToProgress(session, s.gate.Decide()), nil
}

// GetProgress returns the completion state of a session.
func (s *Server) GetProgress(ctx context.Context, sessionID string) (*dto.ProgressResponse, error) {
	session, err := s.repo.Checkout().GetSessionByID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, gerr.ErrSessionNotFound) {
			slog.Default().ErrorContext(ctx, "can't get checkout session",
				slog.String("err", err.Error()),
			)
		}
		return nil, err
	}
	return dto.ConvertSessionToProgress(session, s.gate.Decide()), nil
}

// SubmitStep applies one validated step. Ordering and idempotency are
// enforced by the store transition; the capacity decision is attached
// to the response once the last data step completes.
func (s *Server) SubmitStep(ctx context.Context, sessionID string, step entity.StepName, fields entity.StepFields) (*dto.ProgressResponse, error) {
	session, err := s.repo.Checkout().ApplyStep(ctx, sessionID, step, fields)
	if err != nil {
		if !errors.Is(err, gerr.ErrSessionNotFound) && !errors.Is(err, gerr.ErrStepOutOfOrder) {
			slog.Default().ErrorContext(ctx, "can't apply checkout step",
				slog.String("step", step.String()),
				slog.String("err", err.Error()),
			)
		}
		return nil, err
	}
	return dto.ConvertSessionToProgress(session, s.gate.Decide()), nil
}

// CapacityStatus reports whether signups currently go to payment or
// the waitlist, with the backlog size.
func (s *Server) CapacityStatus(ctx context.Context) (*dto.CapacityStatusResponse, error) {
	count, err := s.repo.Waitlist().Count(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't count waitlist",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't count waitlist: %w", err)
	}
	return &dto.CapacityStatusResponse{
		SpotsAvailable: !s.gate.IsFull(),
		Message:        s.gate.Message(),
		WaitlistCount:  count,
	}, nil
}

// JoinWaitlist registers the email. The plan is resolved from the
// session when it still exists. The response is the same whether the
// email was new or already registered, and a confirmation email is
// queued only for new registrations.
func (s *Server) JoinWaitlist(ctx context.Context, sessionID, email string) (*dto.JoinWaitlistResponse, error) {
	if !v.IsEmail(email) {
		return nil, validation.Errors{"email": fmt.Errorf("must be a valid email address")}
	}

	plan := entity.PlanUnknown
	session, err := s.repo.Checkout().GetSessionByID(ctx, sessionID)
	switch {
	case err == nil:
		plan = session.SelectedPlan
	case errors.Is(err, gerr.ErrSessionNotFound):
		// joining with a stale session id is still allowed
	default:
		slog.Default().ErrorContext(ctx, "can't resolve waitlist session",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't resolve waitlist session: %w", err)
	}

	alreadyMember, err := s.repo.Waitlist().Join(ctx, sessionID, email, plan)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't join waitlist",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't join waitlist: %w", err)
	}

	if !alreadyMember && s.mailer != nil {
		if err := s.mailer.SendWaitlistConfirmation(ctx, s.repo, email, plan); err != nil {
			// the join already succeeded, a lost confirmation is not fatal
			slog.Default().ErrorContext(ctx, "can't queue waitlist confirmation",
				slog.String("err", err.Error()),
			)
		}
	}

	return &dto.JoinWaitlistResponse{
		Status:  "ok",
		Message: waitlistJoinedMessage,
	}, nil
}

// WaitlistCount returns the number of people waiting for a spot.
func (s *Server) WaitlistCount(ctx context.Context) (*dto.WaitlistCountResponse, error) {
	count, err := s.repo.Waitlist().Count(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't count waitlist",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't count waitlist: %w", err)
	}
	return &dto.WaitlistCountResponse{Count: count}, nil
}

// PublicAnalytics returns the funnel summary without payment counts.
func (s *Server) PublicAnalytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	snapshot, err := s.repo.Analytics().GetFunnelSnapshot(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get funnel snapshot",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't get funnel snapshot: %w", err)
	}
	resp := dto.ConvertFunnelSnapshot(snapshot)
	return &resp, nil
}

// CreatePayment hands a completed session over to the payment
// provider. Sessions diverted to the waitlist by the gate cannot pay.
func (s *Server) CreatePayment(ctx context.Context, sessionID string) (*dto.PaymentResponse, error) {
	session, err := s.repo.Checkout().GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.DataStepsComplete() {
		return nil, gerr.ErrStepsIncomplete
	}
	if s.gate.Decide() != entity.NextStepPayment {
		return nil, gerr.ErrCapacityFull
	}

	redirectURL, err := s.payment.CreateCheckoutSession(ctx, session)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create payment session",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't create payment session: %w", err)
	}

	if err := s.repo.Checkout().SetPaymentInitiated(ctx, sessionID); err != nil {
		slog.Default().ErrorContext(ctx, "can't mark payment initiated",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't mark payment initiated: %w", err)
	}

	return &dto.PaymentResponse{
		RedirectURL: redirectURL,
		Demo:        s.payment.IsDemo(),
	}, nil
}

// CompletePayment records a successful return from the payment page.
func (s *Server) CompletePayment(ctx context.Context, sessionID string) (*dto.ProgressResponse, error) {
	if err := s.repo.Checkout().SetPaymentCompleted(ctx, sessionID); err != nil {
		if !errors.Is(err, gerr.ErrSessionNotFound) {
			slog.Default().ErrorContext(ctx, "can't mark payment completed",
				slog.String("err", err.Error()),
			)
		}
		return nil, err
	}
	return s.GetProgress(ctx, sessionID)
}
