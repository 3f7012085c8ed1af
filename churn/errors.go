package churn

import "errors"

// ErrModelNotLoaded is returned when no model artifact could be resolved.
// Handlers translate it into a 503 so callers can tell "service degraded"
// apart from a bad request.
var ErrModelNotLoaded = errors.New("churn model not loaded")

// PredictionError marks a failure caused by the request itself, such as a
// vector the loaded model cannot score.
type PredictionError struct {
	Message string
	Err     error
}

func (e *PredictionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
