package dto

import (
	"time"

	"github.com/horoskooppi/checkout-manager/internal/entity"
)

// JoinWaitlistResponse is deliberately identical for new and repeated
// joins so membership cannot be probed through this endpoint.
type JoinWaitlistResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type WaitlistCountResponse struct {
	Count int `json:"count"`
}

// WaitlistEntryResponse is the admin view of one waitlist row.
type WaitlistEntryResponse struct {
	Id           int        `json:"id"`
	Email        string     `json:"email"`
	SelectedPlan string     `json:"selected_plan"`
	CreatedAt    time.Time  `json:"created_at"`
	Notified     bool       `json:"notified"`
	NotifiedAt   *time.Time `json:"notified_at,omitempty"`
}

func ConvertWaitlistEntries(entries []entity.WaitlistEntry) []WaitlistEntryResponse {
	out := make([]WaitlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := WaitlistEntryResponse{
			Id:           e.Id,
			Email:        e.Email,
			SelectedPlan: e.SelectedPlan.String(),
			CreatedAt:    e.CreatedAt,
			Notified:     e.Notified,
		}
		if e.NotifiedAt.Valid {
			t := e.NotifiedAt.Time
			resp.NotifiedAt = &t
		}
		out = append(out, resp)
	}
	return out
}
