package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	gerr "github.com/horoskooppi/checkout-manager/internal/errors"
)

// ErrResponse is the uniform error body.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string            `json:"status"`
	ErrorText  string            `json:"error,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

// ErrValidation carries per-field messages so the client can highlight
// the offending inputs.
func ErrValidation(ve validation.Errors) render.Renderer {
	fields := make(map[string]string, len(ve))
	for field, err := range ve {
		fields[field] = err.Error()
	}
	return &ErrResponse{
		Err:            ve,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Validation failed.",
		Fields:         fields,
	}
}

func ErrNotFound(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrConflict(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Conflict.",
		ErrorText:      err.Error(),
	}
}

func ErrUnauthorized(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Unauthorized.",
		ErrorText:      err.Error(),
	}
}

func ErrTooManyRequests(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusTooManyRequests,
		StatusText:     "Too many requests.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
	}
}

func ErrServiceUnavailable(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusServiceUnavailable,
		StatusText:     http.StatusText(http.StatusServiceUnavailable),
	}
}

// renderError maps domain errors onto http status codes. Unrecognized
// errors render as opaque 500s.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var ve validation.Errors
	switch {
	case errors.As(err, &ve):
		render.Render(w, r, ErrValidation(ve))
	case errors.Is(err, gerr.ErrSessionNotFound):
		render.Render(w, r, ErrNotFound(err))
	case errors.Is(err, gerr.ErrStepOutOfOrder),
		errors.Is(err, gerr.ErrStepsIncomplete),
		errors.Is(err, gerr.ErrCapacityFull):
		render.Render(w, r, ErrConflict(err))
	case errors.Is(err, gerr.ErrNotAuthenticated):
		render.Render(w, r, ErrUnauthorized(err))
	default:
		render.Render(w, r, ErrInternalServerError(err))
	}
}
