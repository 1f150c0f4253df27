package form

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/horoskooppi/checkout-manager/internal/entity"
)

type AddressStepRequest struct {
	SessionID    string `json:"session_id"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

func (r *AddressStepRequest) Bind(_ *http.Request) error {
	r.AddressLine1 = strings.TrimSpace(r.AddressLine1)
	r.AddressLine2 = strings.TrimSpace(r.AddressLine2)
	r.City = strings.TrimSpace(r.City)
	r.PostalCode = strings.TrimSpace(r.PostalCode)
	r.Country = strings.TrimSpace(r.Country)
	return nil
}

func (r *AddressStepRequest) Step() entity.StepName {
	return entity.StepAddress
}

func (r *AddressStepRequest) SessionRef() string {
	return r.SessionID
}

func (r *AddressStepRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required),
		validation.Field(&r.AddressLine1, validation.Required, validation.Length(3, 255)),
		validation.Field(&r.City, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.PostalCode, validation.Required, validation.Length(3, 20)),
		validation.Field(&r.Country, validation.Required, validation.Length(2, 100)),
	)
}

func (r *AddressStepRequest) Fields() entity.StepFields {
	return entity.StepFields{
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		PostalCode:   r.PostalCode,
		Country:      r.Country,
	}
}
