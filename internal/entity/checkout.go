package entity

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	gerr "github.com/horoskooppi/checkout-manager/internal/errors"
)

// StepName is the custom type to enforce enum-like behavior
type StepName string

func (sn StepName) String() string {
	return string(sn)
}

const (
	StepEmail     StepName = "email"
	StepPhone     StepName = "phone"
	StepAddress   StepName = "address"
	StepBirthdate StepName = "birthdate"
	// StepComplete is the sentinel current_step value once every data
	// collection step is done.
	StepComplete StepName = "complete"
)

// StepSequence is the fixed order in which data collection steps must
// be completed. The server is authoritative for this sequencing.
var StepSequence = []StepName{StepEmail, StepPhone, StepAddress, StepBirthdate}

// ValidStepNames is a set of valid data collection step names
var ValidStepNames = map[StepName]bool{
	StepEmail:     true,
	StepPhone:     true,
	StepAddress:   true,
	StepBirthdate: true,
}

// NextStep is where a session is routed after the last data step.
type NextStep string

func (ns NextStep) String() string {
	return string(ns)
}

const (
	NextStepPayment  NextStep = "payment"
	NextStepWaitlist NextStep = "waitlist"
)

// CheckoutSession represents the checkout_session table
type CheckoutSession struct {
	ID           int      `db:"id"`
	SessionID    string   `db:"session_id"`
	SelectedPlan PlanName `db:"selected_plan"`

	Email        sql.NullString `db:"email"`
	Phone        sql.NullString `db:"phone"`
	AddressLine1 sql.NullString `db:"address_line1"`
	AddressLine2 sql.NullString `db:"address_line2"`
	City         sql.NullString `db:"city"`
	PostalCode   sql.NullString `db:"postal_code"`
	Country      sql.NullString `db:"country"`

	// Birth data is written once on the birthdate step. The zodiac sign
	// is derived from birth_date, never supplied by the client.
	BirthDate  sql.NullString `db:"birth_date"`
	BirthTime  sql.NullString `db:"birth_time"`
	BirthCity  sql.NullString `db:"birth_city"`
	ZodiacSign sql.NullString `db:"zodiac_sign"`

	PredictionLanguage string `db:"prediction_language"`

	StepEmailCompleted     bool `db:"step_email_completed"`
	StepPhoneCompleted     bool `db:"step_phone_completed"`
	StepAddressCompleted   bool `db:"step_address_completed"`
	StepBirthdateCompleted bool `db:"step_birthdate_completed"`
	PaymentInitiated       bool `db:"payment_initiated"`
	PaymentCompleted       bool `db:"payment_completed"`

	CurrentStep StepName  `db:"current_step"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// StepFields carries the validated payload of a single step.
type StepFields struct {
	Email string

	Phone string

	AddressLine1 string
	AddressLine2 string
	City         string
	PostalCode   string
	Country      string

	BirthDate string
	BirthTime string
	BirthCity string
}

// StepCompleted reports whether the given step's completion flag is set.
func (cs *CheckoutSession) StepCompleted(step StepName) bool {
	switch step {
	case StepEmail:
		return cs.StepEmailCompleted
	case StepPhone:
		return cs.StepPhoneCompleted
	case StepAddress:
		return cs.StepAddressCompleted
	case StepBirthdate:
		return cs.StepBirthdateCompleted
	}
	return false
}

func (cs *CheckoutSession) markCompleted(step StepName) {
	switch step {
	case StepEmail:
		cs.StepEmailCompleted = true
	case StepPhone:
		cs.StepPhoneCompleted = true
	case StepAddress:
		cs.StepAddressCompleted = true
	case StepBirthdate:
		cs.StepBirthdateCompleted = true
	}
}

func (cs *CheckoutSession) mergeFields(step StepName, f StepFields) {
	switch step {
	case StepEmail:
		cs.Email = sql.NullString{String: f.Email, Valid: true}
	case StepPhone:
		cs.Phone = sql.NullString{String: f.Phone, Valid: true}
	case StepAddress:
		cs.AddressLine1 = sql.NullString{String: f.AddressLine1, Valid: true}
		cs.AddressLine2 = sql.NullString{String: f.AddressLine2, Valid: f.AddressLine2 != ""}
		cs.City = sql.NullString{String: f.City, Valid: true}
		cs.PostalCode = sql.NullString{String: f.PostalCode, Valid: true}
		cs.Country = sql.NullString{String: f.Country, Valid: true}
		cs.PredictionLanguage = LanguageFromCountry(f.Country)
	case StepBirthdate:
		cs.BirthDate = sql.NullString{String: f.BirthDate, Valid: true}
		cs.BirthTime = sql.NullString{String: f.BirthTime, Valid: f.BirthTime != ""}
		cs.BirthCity = sql.NullString{String: f.BirthCity, Valid: true}
		if sign, err := CalculateZodiacSign(f.BirthDate); err == nil {
			cs.ZodiacSign = sql.NullString{String: sign.String(), Valid: true}
		}
	}
}

// ApplyStep applies one validated step to the session. It is a pure
// transition over the in-memory record; persistence happens in the
// store inside a transaction.
//
// Rules:
//   - resubmitting an already completed step overwrites its fields and
//     leaves ordering untouched (idempotent retries)
//   - submitting the current step completes it and advances current_step
//   - submitting a step ahead of current_step fails with ErrStepOutOfOrder
//
// Completion flags are monotonic: no path ever resets one to false.
func (cs *CheckoutSession) ApplyStep(step StepName, f StepFields, now time.Time) error {
	if !ValidStepNames[step] {
		return fmt.Errorf("unknown step %q", step)
	}

	if cs.StepCompleted(step) {
		cs.mergeFields(step, f)
		cs.UpdatedAt = now
		return nil
	}

	if step != cs.CurrentStep {
		return gerr.ErrStepOutOfOrder
	}

	cs.mergeFields(step, f)
	cs.markCompleted(step)
	cs.CurrentStep = nextInSequence(step)
	cs.UpdatedAt = now
	return nil
}

func nextInSequence(step StepName) StepName {
	for i, s := range StepSequence {
		if s == step {
			if i+1 < len(StepSequence) {
				return StepSequence[i+1]
			}
			return StepComplete
		}
	}
	return StepComplete
}

// DataStepsComplete reports whether every data collection step is done.
func (cs *CheckoutSession) DataStepsComplete() bool {
	return cs.CurrentStep == StepComplete
}

// LanguageFromCountry derives the prediction language from the address
// country. Unrecognized countries default to English.
func LanguageFromCountry(country string) string {
	switch normalizeCountry(country) {
	case "finland", "suomi", "fi":
		return "fi"
	case "sweden", "sverige", "ruotsi", "se":
		return "sv"
	case "norway", "norge", "norja", "no":
		return "no"
	case "denmark", "danmark", "tanska", "dk":
		return "da"
	case "germany", "deutschland", "saksa", "de":
		return "de"
	case "france", "ranska", "fr":
		return "fr"
	case "spain", "españa", "espanja", "es":
		return "es"
	case "italy", "italia", "it":
		return "it"
	default:
		return "en"
	}
}

func normalizeCountry(country string) string {
	return strings.ToLower(strings.TrimSpace(country))
}
