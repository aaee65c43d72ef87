package domain

import "errors"

var (
	// ErrNoStructuredPayload means no parseable JSON object or array
	// could be located anywhere in the AI response text.
	ErrNoStructuredPayload = errors.New("no structured payload found in response")

	// ErrEmptyDraft means the reconciler was handed a draft with zero
	// phases. Validation guarantees at least one, so seeing this past
	// the validator is a defect, not a user condition.
	ErrEmptyDraft = errors.New("draft contains no phases")

	ErrInvalidDuration    = errors.New("total duration must be a positive number of units")
	ErrMissingProjectName = errors.New("project name is required")
)

// ValidationError reports a shape or field rule violation in an
// extracted payload.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}
