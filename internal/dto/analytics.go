package dto

import "github.com/horoskooppi/checkout-manager/internal/entity"

// AnalyticsResponse is the public funnel summary.
type AnalyticsResponse struct {
	TotalStarted           int     `json:"total_started"`
	StepEmailCompleted     int     `json:"step_email_completed"`
	StepPhoneCompleted     int     `json:"step_phone_completed"`
	StepAddressCompleted   int     `json:"step_address_completed"`
	StepBirthdateCompleted int     `json:"step_birthdate_completed"`
	ConversionRate         float64 `json:"conversion_rate"`
}

// AdminAnalyticsResponse extends the public view with payment counts
// and the waitlist backlog.
type AdminAnalyticsResponse struct {
	AnalyticsResponse
	PaymentInitiated int `json:"payment_initiated"`
	PaymentCompleted int `json:"payment_completed"`
	WaitlistCount    int `json:"waitlist_count"`
}

func ConvertFunnelSnapshot(fs *entity.FunnelSnapshot) AnalyticsResponse {
	return AnalyticsResponse{
		TotalStarted:           fs.TotalStarted,
		StepEmailCompleted:     fs.StepEmailCompleted,
		StepPhoneCompleted:     fs.StepPhoneCompleted,
		StepAddressCompleted:   fs.StepAddressCompleted,
		StepBirthdateCompleted: fs.StepBirthdateCompleted,
		ConversionRate:         fs.ConversionRate(),
	}
}

func ConvertFunnelSnapshotAdmin(fs *entity.FunnelSnapshot, waitlistCount int) AdminAnalyticsResponse {
	return AdminAnalyticsResponse{
		AnalyticsResponse: ConvertFunnelSnapshot(fs),
		PaymentInitiated:  fs.PaymentInitiated,
		PaymentCompleted:  fs.PaymentCompleted,
		WaitlistCount:     waitlistCount,
	}
}
