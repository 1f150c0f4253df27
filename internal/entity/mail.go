package entity

import (
	"database/sql"
	"time"
)

// SendEmailRequest represents the mail table, a durable queue of
// outgoing emails drained by the mail worker.
type SendEmailRequest struct {
	Id        int            `db:"id"`
	Recipient string         `db:"recipient"`
	Subject   string         `db:"subject"`
	HTML      string         `db:"html"`
	Sent      bool           `db:"sent"`
	SentAt    sql.NullTime   `db:"sent_at"`
	ErrMsg    sql.NullString `db:"err_msg"`
	CreatedAt time.Time      `db:"created_at"`
}
