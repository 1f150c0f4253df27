package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horoskooppi/checkout-manager/internal/entity"
)

func TestAnalytics_EmptyFunnel(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	snapshot, err := db.Analytics().GetFunnelSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.TotalStarted)
	assert.Equal(t, float64(0), snapshot.ConversionRate())
}

func TestAnalytics_FunnelCounts(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	cs := db.Checkout()

	ctx := context.Background()

	// one session abandoned at email, one completed through birthdate
	_, err := cs.CreateSession(ctx, entity.PlanStarlight)
	require.NoError(t, err)

	session, err := cs.CreateSession(ctx, entity.PlanCosmic)
	require.NoError(t, err)
	sid := session.SessionID

	_, err = cs.ApplyStep(ctx, sid, entity.StepEmail, entity.StepFields{Email: "kai@example.com"})
	require.NoError(t, err)
	_, err = cs.ApplyStep(ctx, sid, entity.StepPhone, entity.StepFields{Phone: "+4915123456789"})
	require.NoError(t, err)
	_, err = cs.ApplyStep(ctx, sid, entity.StepAddress, entity.StepFields{
		AddressLine1: "Unter den Linden 5",
		City:         "Berlin",
		PostalCode:   "10117",
		Country:      "Germany",
	})
	require.NoError(t, err)
	_, err = cs.ApplyStep(ctx, sid, entity.StepBirthdate, entity.StepFields{
		BirthDate: "1985-01-20",
		BirthCity: "Berlin",
	})
	require.NoError(t, err)

	require.NoError(t, cs.SetPaymentInitiated(ctx, sid))

	snapshot, err := db.Analytics().GetFunnelSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.TotalStarted)
	assert.Equal(t, 1, snapshot.StepEmailCompleted)
	assert.Equal(t, 1, snapshot.StepPhoneCompleted)
	assert.Equal(t, 1, snapshot.StepAddressCompleted)
	assert.Equal(t, 1, snapshot.StepBirthdateCompleted)
	assert.Equal(t, 1, snapshot.PaymentInitiated)
	assert.Equal(t, 0, snapshot.PaymentCompleted)
	assert.Equal(t, 50.0, snapshot.ConversionRate())
}
