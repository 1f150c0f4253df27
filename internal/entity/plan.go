package entity

import "github.com/shopspring/decimal"

// PlanName is the custom type to enforce enum-like behavior
type PlanName string

func (pn PlanName) String() string {
	return string(pn)
}

const (
	PlanStarlight PlanName = "starlight"
	PlanCosmic    PlanName = "cosmic"
	PlanCelestial PlanName = "celestial"
	PlanLifetime  PlanName = "lifetime"

	// PlanUnknown is recorded on waitlist entries whose session cannot
	// be resolved anymore.
	PlanUnknown PlanName = "unknown"
)

// ValidPlanNames is a set of valid pricing tiers
var ValidPlanNames = map[PlanName]bool{
	PlanStarlight: true,
	PlanCosmic:    true,
	PlanCelestial: true,
	PlanLifetime:  true,
}

// Plan describes one pricing tier of the subscription.
type Plan struct {
	Name         PlanName
	MonthlyPrice decimal.Decimal
}

func (p Plan) MonthlyPriceDecimal() decimal.Decimal {
	return p.MonthlyPrice.Round(2)
}

// PlanCatalog holds the offered tiers. Prices feed the payment handoff
// when no per-plan price id is configured.
var PlanCatalog = map[PlanName]Plan{
	PlanStarlight: {Name: PlanStarlight, MonthlyPrice: decimal.NewFromFloat(4.99)},
	PlanCosmic:    {Name: PlanCosmic, MonthlyPrice: decimal.NewFromFloat(9.99)},
	PlanCelestial: {Name: PlanCelestial, MonthlyPrice: decimal.NewFromFloat(19.99)},
	PlanLifetime:  {Name: PlanLifetime, MonthlyPrice: decimal.NewFromFloat(199)},
}
