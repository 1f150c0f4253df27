package form

import (
	"net/http"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/horoskooppi/checkout-manager/internal/entity"
)

var birthTimeRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type BirthdateStepRequest struct {
	SessionID string `json:"session_id"`
	BirthDate string `json:"birth_date"`
	// BirthDateConfirm must textually equal BirthDate. A typo guard,
	// nothing more: birth data is written once and never editable.
	BirthDateConfirm string `json:"birth_date_confirm"`
	BirthTime        string `json:"birth_time,omitempty"`
	BirthCity        string `json:"birth_city"`
}

func (r *BirthdateStepRequest) Bind(_ *http.Request) error {
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.BirthDateConfirm = strings.TrimSpace(r.BirthDateConfirm)
	r.BirthTime = strings.TrimSpace(r.BirthTime)
	r.BirthCity = strings.TrimSpace(r.BirthCity)
	return nil
}

func (r *BirthdateStepRequest) Step() entity.StepName {
	return entity.StepBirthdate
}

func (r *BirthdateStepRequest) SessionRef() string {
	return r.SessionID
}

func (r *BirthdateStepRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required),
		validation.Field(&r.BirthDate, validation.Required, validation.By(validBirthDate)),
		validation.Field(&r.BirthDateConfirm, validation.Required, validation.In(r.BirthDate).Error("must match birth_date")),
		validation.Field(&r.BirthTime, validation.Match(birthTimeRegexp).Error("must be a time in HH:MM format")),
		validation.Field(&r.BirthCity, validation.Required, validation.Length(2, 100)),
	)
}

func (r *BirthdateStepRequest) Fields() entity.StepFields {
	return entity.StepFields{
		BirthDate: r.BirthDate,
		BirthTime: r.BirthTime,
		BirthCity: r.BirthCity,
	}
}
