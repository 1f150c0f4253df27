package form

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/horoskooppi/checkout-manager/internal/entity"
)

type EmailStepRequest struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
}

func (r *EmailStepRequest) Bind(_ *http.Request) error {
	// Emails are always stored lowercase.
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return nil
}

func (r *EmailStepRequest) Step() entity.StepName {
	return entity.StepEmail
}

func (r *EmailStepRequest) SessionRef() string {
	return r.SessionID
}

func (r *EmailStepRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (r *EmailStepRequest) Fields() entity.StepFields {
	return entity.StepFields{Email: r.Email}
}
