package dto

import (
	"time"

	"github.com/horoskooppi/checkout-manager/internal/entity"
)

// ProgressResponse is the wire form of a checkout session. Collected
// personal data stays server side; only completion state and derived
// fields are exposed.
type ProgressResponse struct {
	SessionID          string          `json:"session_id"`
	SelectedPlan       string          `json:"selected_plan"`
	CurrentStep        string          `json:"current_step"`
	NextStep           string          `json:"next_step,omitempty"`
	StepsCompleted     map[string]bool `json:"steps_completed"`
	PaymentInitiated   bool            `json:"payment_initiated"`
	PaymentCompleted   bool            `json:"payment_completed"`
	PredictionLanguage string          `json:"prediction_language"`
	ZodiacSign         string          `json:"zodiac_sign,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ConvertSessionToProgress builds the client view of a session. The
// next step after the last data step comes from the capacity decision,
// not from the stored record.
func ConvertSessionToProgress(cs *entity.CheckoutSession, routed entity.NextStep) *ProgressResponse {
	pr := &ProgressResponse{
		SessionID:    cs.SessionID,
		SelectedPlan: cs.SelectedPlan.String(),
		CurrentStep:  cs.CurrentStep.String(),
		StepsCompleted: map[string]bool{
			entity.StepEmail.String():     cs.StepEmailCompleted,
			entity.StepPhone.String():     cs.StepPhoneCompleted,
			entity.StepAddress.String():   cs.StepAddressCompleted,
			entity.StepBirthdate.String(): cs.StepBirthdateCompleted,
		},
		PaymentInitiated:   cs.PaymentInitiated,
		PaymentCompleted:   cs.PaymentCompleted,
		PredictionLanguage: cs.PredictionLanguage,
		ZodiacSign:         cs.ZodiacSign.String,
		CreatedAt:          cs.CreatedAt,
		UpdatedAt:          cs.UpdatedAt,
	}
	if cs.DataStepsComplete() {
		pr.NextStep = routed.String()
	}
	return pr
}

// PlanResponse describes one offered pricing tier.
type PlanResponse struct {
	Name         string `json:"name"`
	MonthlyPrice string `json:"monthly_price"`
}

func ConvertPlanCatalog() []PlanResponse {
	plans := make([]PlanResponse, 0, len(entity.PlanCatalog))
	for _, name := range []entity.PlanName{
		entity.PlanStarlight, entity.PlanCosmic, entity.PlanCelestial, entity.PlanLifetime,
	} {
		p := entity.PlanCatalog[name]
		plans = append(plans, PlanResponse{
			Name:         p.Name.String(),
			MonthlyPrice: p.MonthlyPriceDecimal().StringFixed(2),
		})
	}
	return plans
}
