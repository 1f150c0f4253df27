package dto

// PaymentResponse carries the redirect to the external payment page.
// Demo is true when no payment provider is configured and the url
// points at the local success page instead.
type PaymentResponse struct {
	RedirectURL string `json:"redirect_url"`
	Demo        bool   `json:"demo"`
}
