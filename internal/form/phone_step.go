package form

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/horoskooppi/checkout-manager/internal/entity"
)

type PhoneStepRequest struct {
	SessionID string `json:"session_id"`
	Phone     string `json:"phone"`
}

func (r *PhoneStepRequest) Bind(_ *http.Request) error {
	r.Phone = strings.TrimSpace(r.Phone)
	return nil
}

func (r *PhoneStepRequest) Step() entity.StepName {
	return entity.StepPhone
}

func (r *PhoneStepRequest) SessionRef() string {
	return r.SessionID
}

// Validate keeps the phone format loose on purpose: the check is
// advisory, not a strict international-format validation.
func (r *PhoneStepRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required),
		validation.Field(&r.Phone, validation.Required, validation.Length(7, 20)),
	)
}

func (r *PhoneStepRequest) Fields() entity.StepFields {
	return entity.StepFields{Phone: r.Phone}
}
