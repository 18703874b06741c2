package httpapi

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/filip867/Karl-Filip/internal/shared/types"
)

// ErrResponse is the JSON body of every failed request.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	Status         string `json:"status"`
	Error          string `json:"error"`
	RequestID      string `json:"request_id,omitempty"`
}

// Render implements the render.Renderer interface
func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	e.RequestID = middleware.GetReqID(r.Context())
	return nil
}

func errResponse(status int, err error) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: status,
		Status:         http.StatusText(status),
		Error:          err.Error(),
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		validationErrs validator.ValidationErrors
		tooLarge       *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validationErrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrLocationForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrSessionChanged):
		return http.StatusConflict
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, types.ErrNoInput),
		errors.Is(err, types.ErrInvalidMonth):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnsupportedSource),
		errors.Is(err, types.ErrNoSheets):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	_ = render.Render(w, r, errResponse(statusFor(err), err))
}
