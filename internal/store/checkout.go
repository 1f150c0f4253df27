package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/entity"
	gerr "github.com/horoskooppi/checkout-manager/internal/errors"
)

type checkoutStore struct {
	*MYSQLStore
}

// Checkout returns an object implementing Checkout interface
func (ms *MYSQLStore) Checkout() dependency.Checkout {
	return &checkoutStore{
		MYSQLStore: ms,
	}
}

// CreateSession starts a new checkout session. The session id is a
// random UUID, so holding it is the only capability needed to resume.
func (ms *MYSQLStore) CreateSession(ctx context.Context, plan entity.PlanName) (*entity.CheckoutSession, error) {
	sessionID := uuid.NewString()
	now := ms.Now()

	query := `
	INSERT INTO checkout_session
	 (session_id, selected_plan, prediction_language, current_step, created_at, updated_at)
	 VALUES (:sessionId, :selectedPlan, :predictionLanguage, :currentStep, :createdAt, :updatedAt)`
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"sessionId":          sessionID,
		"selectedPlan":       plan.String(),
		"predictionLanguage": "en",
		"currentStep":        entity.StepEmail.String(),
		"createdAt":          now,
		"updatedAt":          now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return ms.GetSessionByID(ctx, sessionID)
}

// GetSessionByID returns gerr.ErrSessionNotFound for unknown ids so the
// client layer can restart the flow instead of failing hard.
func (ms *MYSQLStore) GetSessionByID(ctx context.Context, sessionID string) (*entity.CheckoutSession, error) {
	query := `SELECT * FROM checkout_session WHERE session_id = :sessionId`
	session, err := QueryNamedOne[entity.CheckoutSession](ctx, ms.DB(), query, map[string]any{
		"sessionId": sessionID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	return &session, nil
}

// ApplyStep runs the step transition as a single read-modify-write
// inside a serializable transaction so concurrent retries of the same
// step cannot lose updates or regress the step pointer.
func (ms *MYSQLStore) ApplyStep(ctx context.Context, sessionID string, step entity.StepName, fields entity.StepFields) (*entity.CheckoutSession, error) {
	var updated *entity.CheckoutSession
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		session, err := getSessionByIDForUpdate(ctx, rep, sessionID)
		if err != nil {
			return err
		}

		if err := session.ApplyStep(step, fields, rep.Now()); err != nil {
			return err
		}

		if err := updateSession(ctx, rep, session); err != nil {
			return fmt.Errorf("failed to update checkout session: %w", err)
		}

		updated = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (ms *MYSQLStore) SetPaymentInitiated(ctx context.Context, sessionID string) error {
	return ms.setPaymentFlag(ctx, sessionID, "payment_initiated")
}

func (ms *MYSQLStore) SetPaymentCompleted(ctx context.Context, sessionID string) error {
	return ms.setPaymentFlag(ctx, sessionID, "payment_completed")
}

func (ms *MYSQLStore) setPaymentFlag(ctx context.Context, sessionID string, column string) error {
	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		if _, err := getSessionByIDForUpdate(ctx, rep, sessionID); err != nil {
			return err
		}
		query := fmt.Sprintf(
			`UPDATE checkout_session SET %s = 1, updated_at = :updatedAt WHERE session_id = :sessionId`,
			column,
		)
		err := ExecNamed(ctx, rep.DB(), query, map[string]any{
			"sessionId": sessionID,
			"updatedAt": rep.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", column, err)
		}
		return nil
	})
}

// getSessionByIDForUpdate locks the session row for update to prevent
// race conditions between concurrent step submissions.
func getSessionByIDForUpdate(ctx context.Context, rep dependency.Repository, sessionID string) (*entity.CheckoutSession, error) {
	query := `SELECT * FROM checkout_session WHERE session_id = :sessionId FOR UPDATE`
	session, err := QueryNamedOne[entity.CheckoutSession](ctx, rep.DB(), query, map[string]any{
		"sessionId": sessionID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	return &session, nil
}

func updateSession(ctx context.Context, rep dependency.Repository, cs *entity.CheckoutSession) error {
	query := `
	UPDATE checkout_session SET
		email = :email,
		phone = :phone,
		address_line1 = :addressLine1,
		address_line2 = :addressLine2,
		city = :city,
		postal_code = :postalCode,
		country = :country,
		birth_date = :birthDate,
		birth_time = :birthTime,
		birth_city = :birthCity,
		zodiac_sign = :zodiacSign,
		prediction_language = :predictionLanguage,
		step_email_completed = :stepEmailCompleted,
		step_phone_completed = :stepPhoneCompleted,
		step_address_completed = :stepAddressCompleted,
		step_birthdate_completed = :stepBirthdateCompleted,
		current_step = :currentStep,
		updated_at = :updatedAt
	WHERE session_id = :sessionId`
	return ExecNamed(ctx, rep.DB(), query, map[string]any{
		"sessionId":              cs.SessionID,
		"email":                  cs.Email,
		"phone":                  cs.Phone,
		"addressLine1":           cs.AddressLine1,
		"addressLine2":           cs.AddressLine2,
		"city":                   cs.City,
		"postalCode":             cs.PostalCode,
		"country":                cs.Country,
		"birthDate":              cs.BirthDate,
		"birthTime":              cs.BirthTime,
		"birthCity":              cs.BirthCity,
		"zodiacSign":             cs.ZodiacSign,
		"predictionLanguage":     cs.PredictionLanguage,
		"stepEmailCompleted":     cs.StepEmailCompleted,
		"stepPhoneCompleted":     cs.StepPhoneCompleted,
		"stepAddressCompleted":   cs.StepAddressCompleted,
		"stepBirthdateCompleted": cs.StepBirthdateCompleted,
		"currentStep":            cs.CurrentStep.String(),
		"updatedAt":              cs.UpdatedAt,
	})
}
