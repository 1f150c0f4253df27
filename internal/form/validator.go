package form

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/horoskooppi/checkout-manager/internal/entity"
)

// StepRequest is implemented by every per-step payload: it validates
// the raw input and yields the validated field set for the session.
type StepRequest interface {
	Step() entity.StepName
	SessionRef() string
	Validate() error
	Fields() entity.StepFields
}

// IsValidationError reports whether err carries per-field validation
// detail, as opposed to an infrastructure failure.
func IsValidationError(err error) bool {
	var ve validation.Errors
	return errors.As(err, &ve)
}

func validBirthDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required rule reports the empty case
	}
	t, err := time.Parse(entity.BirthDateLayout, s)
	if err != nil {
		return fmt.Errorf("must be a date in YYYY-MM-DD format")
	}
	if t.Year() < 1900 || t.After(time.Now()) {
		return fmt.Errorf("must be a plausible birth date")
	}
	return nil
}
