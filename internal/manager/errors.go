package manager

import (
	"errors"
	"net/http"
)

// tooBusyError signals queue timeout/overflow for 429 mapping.
type tooBusyError struct{ modelID string }

func (e tooBusyError) Error() string   { return "too busy: " + e.modelID }
func (e tooBusyError) StatusCode() int { return http.StatusTooManyRequests }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	var e tooBusyError
	return errors.As(err, &e)
}

type modelNotFoundError struct{ id string }

func (e modelNotFoundError) Error() string   { return "model not found: " + e.id }
func (e modelNotFoundError) StatusCode() int { return http.StatusNotFound }

// ErrModelNotFound returns an error when a requested model id is not present in the registry.
func ErrModelNotFound(id string) error { return modelNotFoundError{id: id} }

// IsModelNotFound reports whether the error indicates a missing model id.
func IsModelNotFound(err error) bool {
	var e modelNotFoundError
	return errors.As(err, &e)
}

type diseaseNotFoundError struct{ id string }

func (e diseaseNotFoundError) Error() string   { return "unknown disease: " + e.id }
func (e diseaseNotFoundError) StatusCode() int { return http.StatusNotFound }

// IsDiseaseNotFound reports whether err names a disease without a form.
func IsDiseaseNotFound(err error) bool {
	var e diseaseNotFoundError
	return errors.As(err, &e)
}

// InvalidInputError carries per-field messages for the submitted values.
type InvalidInputError struct {
	Msg    string
	Fields map[string]string
}

func (e *InvalidInputError) Error() string   { return e.Msg }
func (e *InvalidInputError) StatusCode() int { return http.StatusUnprocessableEntity }

// IsInvalidInput reports whether err was caused by the submitted values.
func IsInvalidInput(err error) bool {
	var e *InvalidInputError
	return errors.As(err, &e)
}

// schemaMismatchError means an artifact does not fit the form it is bound to.
type schemaMismatchError struct{ msg string }

func (e schemaMismatchError) Error() string   { return e.msg }
func (e schemaMismatchError) StatusCode() int { return http.StatusInternalServerError }

// IsSchemaMismatch reports whether err is an artifact/form incompatibility.
func IsSchemaMismatch(err error) bool {
	var e schemaMismatchError
	return errors.As(err, &e)
}

// bindingError is a configured disease binding that no model can serve.
type bindingError struct{ msg string }

func (e bindingError) Error() string   { return "bad binding: " + e.msg }
func (e bindingError) StatusCode() int { return http.StatusInternalServerError }

// IsBadBinding reports whether err comes from a misconfigured disease binding.
func IsBadBinding(err error) bool {
	var e bindingError
	return errors.As(err, &e)
}
