package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// MaxBodyBytes caps request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

// HandlerFunc is an http handler that may return an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// StatusError pins an HTTP status on an error.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string { return e.Err.Error() }
func (e *StatusError) Unwrap() error { return e.Err }

// WithStatus wraps err so Adapter reports it with status.
func WithStatus(status int, err error) error {
	if err == nil {
		return nil
	}
	return &StatusError{Status: status, Err: err}
}

// Errorf is WithStatus(status, fmt.Errorf(format, args...)).
func Errorf(status int, format string, args ...any) error {
	return WithStatus(status, fmt.Errorf(format, args...))
}

// Adapter turns HandlerFuncs into http.HandlerFuncs. Status maps errors
// without a StatusError to a code; nil means 500.
type Adapter struct {
	Status func(error) int
	Logger *zap.Logger
}

func (a Adapter) status(err error) int {
	if se := (*StatusError)(nil); errors.As(err, &se) {
		return se.Status
	}
	if a.Status != nil {
		return a.Status(err)
	}
	return http.StatusInternalServerError
}

// Wrap writes a JSON error response when fn fails.
func (a Adapter) Wrap(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		status := a.status(err)
		if status >= http.StatusInternalServerError && a.Logger != nil {
			a.Logger.Error("request failed",
				zap.String("path", r.URL.Path),
				zap.String("request_id", RequestID(r.Context())),
				zap.Error(err))
		}
		Error(w, r, status, err.Error())
	}
}

// Wrap adapts fn with the zero Adapter.
func Wrap(fn HandlerFunc) http.HandlerFunc {
	return Adapter{}.Wrap(fn)
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Error writes a JSON error response carrying the request id, if any.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	body := errorBody{Error: msg}
	if r != nil {
		body.RequestID = RequestID(r.Context())
	}
	JSON(w, status, body)
}

// DecodeJSON reads a single JSON object from the body, rejecting unknown
// fields and bodies larger than MaxBodyBytes. Failures are 400s.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return Errorf(http.StatusBadRequest, "invalid request body: %w", err)
	}
	return nil
}
