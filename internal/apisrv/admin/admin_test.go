package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/entity"
)

// fakeRepo overrides only the accessors the admin server touches.
type fakeRepo struct {
	dependency.Repository
	snapshot entity.FunnelSnapshot
	entries  []entity.WaitlistEntry
}

func (f *fakeRepo) Analytics() dependency.Analytics { return f }
func (f *fakeRepo) Waitlist() dependency.Waitlist   { return f }

func (f *fakeRepo) GetFunnelSnapshot(ctx context.Context) (*entity.FunnelSnapshot, error) {
	s := f.snapshot
	return &s, nil
}

func (f *fakeRepo) Join(ctx context.Context, sessionID, email string, plan entity.PlanName) (bool, error) {
	return false, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(f.entries), nil
}

func (f *fakeRepo) ListEntries(ctx context.Context) ([]entity.WaitlistEntry, error) {
	return f.entries, nil
}

func TestAnalytics(t *testing.T) {
	repo := &fakeRepo{
		snapshot: entity.FunnelSnapshot{
			TotalStarted:           4,
			StepEmailCompleted:     3,
			StepPhoneCompleted:     2,
			StepAddressCompleted:   2,
			StepBirthdateCompleted: 1,
			PaymentInitiated:       1,
		},
		entries: []entity.WaitlistEntry{
			{Id: 1, Email: "a@example.com", SelectedPlan: entity.PlanCosmic},
		},
	}
	s := New(repo)

	resp, err := s.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, resp.TotalStarted)
	assert.Equal(t, 1, resp.PaymentInitiated)
	assert.Equal(t, 1, resp.WaitlistCount)
	assert.Equal(t, 25.0, resp.ConversionRate)
}

func TestWaitlistCSV(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		entries: []entity.WaitlistEntry{
			{Id: 1, Email: "a@example.com", SelectedPlan: entity.PlanCosmic, CreatedAt: created},
			{Id: 2, Email: "b@example.com", SelectedPlan: entity.PlanLifetime, CreatedAt: created, Notified: true},
		},
	}
	s := New(repo)

	data, err := s.WaitlistCSV(context.Background())
	require.NoError(t, err)

	want := "id,email,selected_plan,created_at,notified\n" +
		"1,a@example.com,cosmic,2026-03-14T09:00:00Z,false\n" +
		"2,b@example.com,lifetime,2026-03-14T09:00:00Z,true\n"
	assert.Equal(t, want, string(data))
}
