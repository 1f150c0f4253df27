package entity

import "math"

// FunnelSnapshot holds aggregate step completion counts derived from
// checkout session flags. Counts are always computed from the session
// records, never incremented separately.
type FunnelSnapshot struct {
	TotalStarted           int `db:"total_started"`
	StepEmailCompleted     int `db:"step_email_completed"`
	StepPhoneCompleted     int `db:"step_phone_completed"`
	StepAddressCompleted   int `db:"step_address_completed"`
	StepBirthdateCompleted int `db:"step_birthdate_completed"`
	PaymentInitiated       int `db:"payment_initiated"`
	PaymentCompleted       int `db:"payment_completed"`
}

// ConversionRate is the share of started sessions that finished the
// last data step, in percent rounded to one decimal. Zero when nothing
// was started.
func (fs *FunnelSnapshot) ConversionRate() float64 {
	if fs.TotalStarted == 0 {
		return 0
	}
	rate := float64(fs.StepBirthdateCompleted) / float64(fs.TotalStarted) * 100
	return math.Round(rate*10) / 10
}
