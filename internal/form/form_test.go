package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horoskooppi/checkout-manager/internal/entity"
)

func TestStartCheckoutRequest(t *testing.T) {
	r := &StartCheckoutRequest{Plan: "  Cosmic "}
	require.NoError(t, r.Bind(nil))
	assert.Equal(t, "cosmic", r.Plan)
	assert.NoError(t, r.Validate())
	assert.Equal(t, entity.PlanCosmic, r.PlanName())

	r = &StartCheckoutRequest{Plan: "platinum"}
	require.NoError(t, r.Bind(nil))
	err := r.Validate()
	assert.Error(t, err)
	assert.True(t, IsValidationError(err))

	r = &StartCheckoutRequest{}
	assert.Error(t, r.Validate())
}

func TestEmailStepRequest(t *testing.T) {
	r := &EmailStepRequest{SessionID: "s1", Email: " Ada@Example.COM "}
	require.NoError(t, r.Bind(nil))
	assert.Equal(t, "ada@example.com", r.Email)
	assert.NoError(t, r.Validate())
	assert.Equal(t, entity.StepEmail, r.Step())
	assert.Equal(t, "s1", r.SessionRef())
	assert.Equal(t, "ada@example.com", r.Fields().Email)

	for _, email := range []string{"", "not-an-email", "a@"} {
		r := &EmailStepRequest{SessionID: "s1", Email: email}
		require.NoError(t, r.Bind(nil))
		assert.Error(t, r.Validate(), email)
	}
}

func TestPhoneStepRequest(t *testing.T) {
	r := &PhoneStepRequest{SessionID: "s1", Phone: "+358401234567"}
	require.NoError(t, r.Bind(nil))
	assert.NoError(t, r.Validate())
	assert.Equal(t, entity.StepPhone, r.Step())

	for _, phone := range []string{"", "12345", "123456789012345678901"} {
		r := &PhoneStepRequest{SessionID: "s1", Phone: phone}
		require.NoError(t, r.Bind(nil))
		assert.Error(t, r.Validate(), phone)
	}
}

func TestAddressStepRequest(t *testing.T) {
	r := &AddressStepRequest{
		SessionID:    "s1",
		AddressLine1: "Mannerheimintie 1",
		City:         "Helsinki",
		PostalCode:   "00100",
		Country:      "Finland",
	}
	require.NoError(t, r.Bind(nil))
	assert.NoError(t, r.Validate())
	assert.Equal(t, entity.StepAddress, r.Step())

	// line2 is optional
	assert.Empty(t, r.Fields().AddressLine2)

	r.AddressLine1 = "ab"
	assert.Error(t, r.Validate())

	r.AddressLine1 = "Mannerheimintie 1"
	r.PostalCode = ""
	assert.Error(t, r.Validate())
}

func TestBirthdateStepRequest(t *testing.T) {
	r := &BirthdateStepRequest{
		SessionID:        "s1",
		BirthDate:        "1990-07-30",
		BirthDateConfirm: "1990-07-30",
		BirthTime:        "14:30",
		BirthCity:        "Tampere",
	}
	require.NoError(t, r.Bind(nil))
	assert.NoError(t, r.Validate())
	assert.Equal(t, entity.StepBirthdate, r.Step())

	fields := r.Fields()
	assert.Equal(t, "1990-07-30", fields.BirthDate)
	assert.Equal(t, "14:30", fields.BirthTime)

	// confirmation must match exactly
	r.BirthDateConfirm = "1990-07-31"
	assert.Error(t, r.Validate())
	r.BirthDateConfirm = "1990-07-30"

	// birth time is optional but must be HH:MM when present
	r.BirthTime = ""
	assert.NoError(t, r.Validate())
	r.BirthTime = "25:00"
	assert.Error(t, r.Validate())
	r.BirthTime = "14:30"

	for _, date := range []string{"30-07-1990", "1899-12-31", "3000-01-01", "1990-02-30"} {
		r.BirthDate = date
		r.BirthDateConfirm = date
		assert.Error(t, r.Validate(), date)
	}
}

func TestJoinWaitlistRequest(t *testing.T) {
	r := &JoinWaitlistRequest{SessionID: "s1", Email: " Luna@Example.COM "}
	require.NoError(t, r.Bind(nil))
	assert.Equal(t, "luna@example.com", r.Email)
	assert.NoError(t, r.Validate())

	r = &JoinWaitlistRequest{SessionID: "s1"}
	require.NoError(t, r.Bind(nil))
	assert.Error(t, r.Validate())
}
