package game

import "errors"

// Contract errors: the Presentation Layer is expected to make these
// unreachable by disabling the offending controls, but the engine still
// rejects the calls so the money arithmetic stays correct.
var (
	ErrPhase        = errors.New("operation not valid in current phase")
	ErrStepPrepared = errors.New("step has no prepared options")
	ErrOptionIndex  = errors.New("option index out of range")
	ErrUnaffordable = errors.New("option costs more than the current balance")
	ErrNoPending    = errors.New("no pending outcome to commit")
)

// FieldError is a user-facing validation failure scoped to a single input
// field. It is retryable and never changes session state.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// FieldErrors extracts the field-scoped failures from an error returned by
// Start. Non-validation errors yield an empty slice.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	var fe *FieldError
	if errors.As(err, &fe) {
		// errors.As stops at the first match; unwrap joined errors by hand
		// so the caller sees every field at once.
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				if errors.As(e, &fe) {
					out = append(out, fe)
				}
			}
			return out
		}
		return []*FieldError{fe}
	}
	return nil
}
