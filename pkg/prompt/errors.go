package prompt

import "errors"

var (
	// ErrAborted is returned when the user interrupts a prompt.
	ErrAborted = errors.New("prompt: aborted")
	// ErrFormInvalid is returned when the user declines to retry a form that
	// still fails its cross-field checks.
	ErrFormInvalid = errors.New("prompt: form is invalid")
	// ErrNoForm is returned when Fill is called without a built form.
	ErrNoForm = errors.New("prompt: form is required")
)

// ErrTooManyAttempts is returned when a field is still rejected after the
// configured number of attempts.
var ErrTooManyAttempts = errors.New("prompt: too many attempts")
