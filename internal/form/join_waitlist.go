package form

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type JoinWaitlistRequest struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
}

func (r *JoinWaitlistRequest) Bind(_ *http.Request) error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return nil
}

func (r *JoinWaitlistRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}
