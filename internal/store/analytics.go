package store

import (
	"context"
	"fmt"

	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/entity"
)

type analyticsStore struct {
	*MYSQLStore
}

// Analytics returns an object implementing Analytics interface
func (ms *MYSQLStore) Analytics() dependency.Analytics {
	return &analyticsStore{
		MYSQLStore: ms,
	}
}

// GetFunnelSnapshot derives the funnel counts from the session records
// in a single aggregate query. There are no separate counters to drift.
func (ms *MYSQLStore) GetFunnelSnapshot(ctx context.Context) (*entity.FunnelSnapshot, error) {
	query := `
	SELECT
		COUNT(*) AS total_started,
		CAST(COALESCE(SUM(step_email_completed), 0) AS SIGNED) AS step_email_completed,
		CAST(COALESCE(SUM(step_phone_completed), 0) AS SIGNED) AS step_phone_completed,
		CAST(COALESCE(SUM(step_address_completed), 0) AS SIGNED) AS step_address_completed,
		CAST(COALESCE(SUM(step_birthdate_completed), 0) AS SIGNED) AS step_birthdate_completed,
		CAST(COALESCE(SUM(payment_initiated), 0) AS SIGNED) AS payment_initiated,
		CAST(COALESCE(SUM(payment_completed), 0) AS SIGNED) AS payment_completed
	FROM checkout_session`
	snapshot, err := QueryNamedOne[entity.FunnelSnapshot](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to get funnel snapshot: %w", err)
	}
	return &snapshot, nil
}
