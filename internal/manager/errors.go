package manager

import (
	"errors"
	"net/http"
)

// emptyInputError signals a blank prediction text (400).
type emptyInputError struct{}

func (emptyInputError) Error() string   { return "text cannot be empty" }
func (emptyInputError) StatusCode() int { return http.StatusBadRequest }

// ErrEmptyInput is returned by Predict for whitespace-only text.
var ErrEmptyInput error = emptyInputError{}

// IsEmptyInput reports whether err indicates blank input.
func IsEmptyInput(err error) bool {
	var e emptyInputError
	return errors.As(err, &e)
}

// unknownModelError signals a name that is not a configured slot (400).
type unknownModelError struct{ name string }

func (e unknownModelError) Error() string   { return "unknown model: " + e.name }
func (e unknownModelError) StatusCode() int { return http.StatusBadRequest }

// ErrUnknownModel returns an error for a name missing from the registry.
func ErrUnknownModel(name string) error { return unknownModelError{name: name} }

// IsUnknownModel reports whether err indicates an unconfigured model name.
func IsUnknownModel(err error) bool {
	var e unknownModelError
	return errors.As(err, &e)
}

// modelBusyError signals a load in progress on another request (503).
type modelBusyError struct{ name string }

func (e modelBusyError) Error() string {
	return e.name + " model is currently loading, please try again later"
}
func (e modelBusyError) StatusCode() int { return http.StatusServiceUnavailable }
func (e modelBusyError) Busy() bool      { return true }

// IsModelBusy reports whether err indicates a model still loading.
func IsModelBusy(err error) bool {
	var e modelBusyError
	return errors.As(err, &e)
}

// modelLoadFailedError carries the loader's failure message (500).
type modelLoadFailedError struct{ name, msg string }

func (e modelLoadFailedError) Error() string {
	return "failed to load " + e.name + " model: " + e.msg
}
func (e modelLoadFailedError) StatusCode() int { return http.StatusInternalServerError }

// IsModelLoadFailed reports whether err indicates a failed model load.
func IsModelLoadFailed(err error) bool {
	var e modelLoadFailedError
	return errors.As(err, &e)
}

// inferenceError wraps a scorer failure on a loaded model (500).
type inferenceError struct{ name, msg string }

func (e inferenceError) Error() string {
	return "prediction error with " + e.name + " model: " + e.msg
}
func (e inferenceError) StatusCode() int { return http.StatusInternalServerError }

// IsInferenceError reports whether err came from the scorer.
func IsInferenceError(err error) bool {
	var e inferenceError
	return errors.As(err, &e)
}

// dependencyUnavailableError signals a missing runtime dependency (e.g. the
// ONNX Runtime shared library or a binary built without the onnx tag).
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}

// errorKind labels an error for metrics.
func errorKind(err error) string {
	switch {
	case IsEmptyInput(err):
		return "empty_input"
	case IsUnknownModel(err):
		return "unknown_model"
	case IsModelBusy(err):
		return "busy"
	case IsModelLoadFailed(err):
		return "load_failed"
	case IsInferenceError(err):
		return "inference"
	default:
		return "other"
	}
}
