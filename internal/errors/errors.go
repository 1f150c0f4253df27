package gerr

import "errors"

var (
	// ErrSessionNotFound means the checkout session id is unknown; the
	// client should start a new session.
	ErrSessionNotFound = errors.New("checkout session not found")

	// ErrStepOutOfOrder means the client submitted a step ahead of the
	// session's current step. Distinct from validation failures: it
	// indicates a client bug, not bad input.
	ErrStepOutOfOrder = errors.New("step submitted out of order")

	// ErrStepsIncomplete means the payment handoff was requested before
	// every data collection step completed.
	ErrStepsIncomplete = errors.New("complete all checkout steps first")

	// ErrCapacityFull means the capacity gate diverted the session to
	// the waitlist, so payment is not available.
	ErrCapacityFull = errors.New("no spots available, join the waitlist")

	ErrNotAuthenticated = errors.New("not authenticated")

	// MailAPILimitReached signals the mail provider throttled us; the
	// worker backs off until the next tick.
	MailAPILimitReached = errors.New("mail api limit reached")
)
