package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/course-api/internal/logger"
	"github.com/sbilibin2017/course-api/internal/models"
)

// HTTPError is an error that knows how it should be rendered.
type HTTPError struct {
	Status int
	Body   any
	Err    error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ValidationError renders as 400 {"errors":[...]}.
func ValidationError(msgs ...string) *HTTPError {
	return &HTTPError{
		Status: http.StatusBadRequest,
		Body:   models.ValidationErrorResponse{Errors: msgs},
	}
}

// MessageError renders as {"message": msg} with the given status.
func MessageError(status int, msg string, err error) *HTTPError {
	return &HTTPError{
		Status: status,
		Body:   models.MessageResponse{Message: msg},
		Err:    err,
	}
}

// NestedError renders as {"error":{"message": msg}} with the given status.
func NestedError(status int, msg string, err error) *HTTPError {
	return &HTTPError{
		Status: status,
		Body:   models.ErrorResponse{Error: models.ErrorBody{Message: msg}},
		Err:    err,
	}
}

// Handle adapts a handler that returns an error to http.HandlerFunc.
func Handle(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			WriteError(w, r, err)
		}
	}
}

// WriteError renders err. Anything that is not an *HTTPError becomes a 500
// carrying the error text as its message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status >= http.StatusInternalServerError {
			logger.FromContext(r.Context()).Errorw("request failed", "status", httpErr.Status, "error", err)
		}
		writeJSON(w, httpErr.Status, httpErr.Body)
		return
	}

	logger.FromContext(r.Context()).Errorw("internal server error",
		"method", r.Method,
		"uri", r.RequestURI,
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorBody{Message: err.Error()},
	})
}

// RouteNotFound handles requests no route matched.
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, NestedError(http.StatusNotFound, "Route Not Found", nil))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}
