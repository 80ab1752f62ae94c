// internal/app/errors.go
package app

import "errors"

// Validation failure reasons.
const (
	ReasonUnknownType  = "unknown_type"
	ReasonUnknownNode  = "unknown_node"
	ReasonUnaffordable = "unaffordable"
	ReasonOutOfBounds  = "out_of_bounds"
	ReasonOverlap      = "overlap"
	ReasonInvalidState = "invalid_state"
	ReasonMaxLevel     = "max_level"
)

// ValidationError rejects a command synchronously. The command left no
// partial state behind; any reserved resources were refunded.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
