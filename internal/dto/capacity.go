package dto

// CapacityStatusResponse tells the client whether new signups go to
// payment or the waitlist.
type CapacityStatusResponse struct {
	SpotsAvailable bool   `json:"spots_available"`
	Message        string `json:"message"`
	WaitlistCount  int    `json:"waitlist_count"`
}
