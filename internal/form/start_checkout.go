package form

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/horoskooppi/checkout-manager/internal/entity"
)

type StartCheckoutRequest struct {
	Plan string `json:"plan"`
}

func (r *StartCheckoutRequest) Bind(_ *http.Request) error {
	r.Plan = strings.ToLower(strings.TrimSpace(r.Plan))
	return nil
}

func (r *StartCheckoutRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Plan, validation.Required, validation.By(validPlan)),
	)
}

func (r *StartCheckoutRequest) PlanName() entity.PlanName {
	return entity.PlanName(r.Plan)
}

func validPlan(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !entity.ValidPlanNames[entity.PlanName(s)] {
		return validation.NewError("validation_plan", "must be one of the offered plans")
	}
	return nil
}
