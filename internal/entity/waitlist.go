package entity

import (
	"database/sql"
	"time"
)

// WaitlistEntry represents a waitlist entry captured when the capacity
// gate diverts a session away from payment. The session reference is a
// weak link for lookups only; the entry survives its session.
type WaitlistEntry struct {
	Id           int          `db:"id"`
	SessionID    string       `db:"session_id"`
	Email        string       `db:"email"`
	SelectedPlan PlanName     `db:"selected_plan"`
	CreatedAt    time.Time    `db:"created_at"`
	Notified     bool         `db:"notified"`
	NotifiedAt   sql.NullTime `db:"notified_at"`
}
