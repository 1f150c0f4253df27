package store

import (
	"context"
	"fmt"

	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/entity"
)

type waitlistStore struct {
	*MYSQLStore
}

// Waitlist returns an object implementing Waitlist interface
func (ms *MYSQLStore) Waitlist() dependency.Waitlist {
	return &waitlistStore{
		MYSQLStore: ms,
	}
}

// Join inserts the email into the waitlist. The insert relies on the
// unique index on email, so a concurrent double submit results in
// exactly one row and the loser reports alreadyMember.
func (ms *MYSQLStore) Join(ctx context.Context, sessionID, email string, plan entity.PlanName) (bool, error) {
	query := `
	INSERT INTO waitlist (session_id, email, selected_plan, created_at)
	VALUES (:sessionId, :email, :selectedPlan, :createdAt)`
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"sessionId":    sessionID,
		"email":        email,
		"selectedPlan": plan.String(),
		"createdAt":    ms.Now(),
	})
	if err != nil {
		if ms.IsErrUniqueViolation(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to join waitlist: %w", err)
	}
	return false, nil
}

// Count returns the number of entries still waiting for a spot.
func (ms *MYSQLStore) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM waitlist WHERE notified = 0`
	count, err := QueryCountNamed(ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("failed to count waitlist: %w", err)
	}
	return count, nil
}

func (ms *MYSQLStore) ListEntries(ctx context.Context) ([]entity.WaitlistEntry, error) {
	query := `SELECT * FROM waitlist ORDER BY created_at ASC, id ASC`
	entries, err := QueryListNamed[entity.WaitlistEntry](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist entries: %w", err)
	}
	return entries, nil
}
