package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors forming the engine's error taxonomy. Callers match
// with errors.Is; the HTTP layer maps them to response codes.
var (
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")
	ErrGeocodingUnresolved  = errors.New("geocoding unresolved")
	ErrInvalidLatitude      = errors.New("latitude out of range for house system")
	ErrUnsupportedParameter = errors.New("unsupported parameter")
	ErrOutOfRangeInstant    = errors.New("instant outside period tree span")
	ErrNoConvergence        = errors.New("iterative search did not converge")
)

// InputValidationError lists the missing or malformed request fields.
type InputValidationError struct {
	Fields []string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// AnalysisError wraps any unexpected pipeline failure, preserving the
// analysis id and the cause.
type AnalysisError struct {
	AnalysisID string
	Err        error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis %s failed: %v", e.AnalysisID, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
