package store

import (
	"context"
	"fmt"

	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/entity"
)

type mailStore struct {
	*MYSQLStore
}

// Mail returns an object implementing Mail interface
func (ms *MYSQLStore) Mail() dependency.Mail {
	return &mailStore{
		MYSQLStore: ms,
	}
}

// AddMail queues an email for the mail worker and returns its id.
func (ms *MYSQLStore) AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error) {
	query := `
	INSERT INTO send_email_request (recipient, subject, html, sent, created_at)
	VALUES (:recipient, :subject, :html, 0, :createdAt)`
	id, err := ExecNamedLastId(ctx, ms.DB(), query, map[string]any{
		"recipient": ser.Recipient,
		"subject":   ser.Subject,
		"html":      ser.HTML,
		"createdAt": ms.Now(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add mail: %w", err)
	}
	return id, nil
}

// GetAllUnsent returns queued emails, optionally including ones that
// already failed at least once.
func (ms *MYSQLStore) GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error) {
	query := `SELECT * FROM send_email_request WHERE sent = 0 AND err_msg IS NULL ORDER BY created_at ASC`
	if withError {
		query = `SELECT * FROM send_email_request WHERE sent = 0 ORDER BY created_at ASC`
	}
	reqs, err := QueryListNamed[entity.SendEmailRequest](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to get unsent emails: %w", err)
	}
	return reqs, nil
}

func (ms *MYSQLStore) UpdateSent(ctx context.Context, id int) error {
	query := `UPDATE send_email_request SET sent = 1, sent_at = :sentAt WHERE id = :id`
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"id":     id,
		"sentAt": ms.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to mark email sent: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) AddError(ctx context.Context, id int, errMsg string) error {
	query := `UPDATE send_email_request SET err_msg = :errMsg WHERE id = :id`
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"id":     id,
		"errMsg": errMsg,
	})
	if err != nil {
		return fmt.Errorf("failed to store email error: %w", err)
	}
	return nil
}
