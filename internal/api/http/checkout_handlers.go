package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/horoskooppi/checkout-manager/internal/form"
	mw "github.com/horoskooppi/checkout-manager/internal/middleware"
)

// stepBinder is a step payload that can both bind from the request
// body and validate itself.
type stepBinder interface {
	render.Binder
	form.StepRequest
}

func (s *Server) getPlans(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.checkout.Plans())
}

func (s *Server) startCheckout(w http.ResponseWriter, r *http.Request) {
	if err := s.limits.CheckSessionStart(mw.GetClientIP(r.Context())); err != nil {
		render.Render(w, r, ErrTooManyRequests(err))
		return
	}

	req := &form.StartCheckoutRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		renderError(w, r, err)
		return
	}

	resp, err := s.checkout.StartCheckout(r.Context(), req.PlanName())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	resp, err := s.checkout.GetProgress(r.Context(), sessionID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

func (s *Server) submitEmailStep(w http.ResponseWriter, r *http.Request) {
	s.submitStep(w, r, &form.EmailStepRequest{})
}

func (s *Server) submitPhoneStep(w http.ResponseWriter, r *http.Request) {
	s.submitStep(w, r, &form.PhoneStepRequest{})
}

func (s *Server) submitAddressStep(w http.ResponseWriter, r *http.Request) {
	s.submitStep(w, r, &form.AddressStepRequest{})
}

func (s *Server) submitBirthdateStep(w http.ResponseWriter, r *http.Request) {
	s.submitStep(w, r, &form.BirthdateStepRequest{})
}

func (s *Server) submitStep(w http.ResponseWriter, r *http.Request, req stepBinder) {
	if err := s.limits.CheckStepSubmission(mw.GetClientIP(r.Context())); err != nil {
		render.Render(w, r, ErrTooManyRequests(err))
		return
	}

	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		renderError(w, r, err)
		return
	}

	resp, err := s.checkout.SubmitStep(r.Context(), req.SessionRef(), req.Step(), req.Fields())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

func (s *Server) capacityStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.checkout.CapacityStatus(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

func (s *Server) joinWaitlist(w http.ResponseWriter, r *http.Request) {
	req := &form.JoinWaitlistRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		renderError(w, r, err)
		return
	}
	if err := s.limits.CheckWaitlistJoin(mw.GetClientIP(r.Context()), req.Email); err != nil {
		render.Render(w, r, ErrTooManyRequests(err))
		return
	}

	resp, err := s.checkout.JoinWaitlist(r.Context(), req.SessionID, req.Email)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

func (s *Server) waitlistCount(w http.ResponseWriter, r *http.Request) {
	resp, err := s.checkout.WaitlistCount(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

func (s *Server) publicAnalytics(w http.ResponseWriter, r *http.Request) {
	resp, err := s.checkout.PublicAnalytics(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

type paymentRequest struct {
	SessionID string `json:"session_id"`
}

func (p *paymentRequest) Bind(_ *http.Request) error {
	p.SessionID = strings.TrimSpace(p.SessionID)
	if p.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	return nil
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	req := &paymentRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	resp, err := s.checkout.CreatePayment(r.Context(), req.SessionID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

func (s *Server) completePayment(w http.ResponseWriter, r *http.Request) {
	req := &paymentRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	resp, err := s.checkout.CompletePayment(r.Context(), req.SessionID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}
