package trade

import "errors"

// Sentinel errors surfaced to callers. The API layer maps these to status
// codes with errors.Is; the service itself carries no transport knowledge.
var (
	// ErrNotFound is returned when a referenced trade id is absent on
	// update, partial update, or load-by-id.
	ErrNotFound = errors.New("trade not found")

	// ErrAlreadyExists is returned when SaveNew collides with a stored id.
	ErrAlreadyExists = errors.New("trade already exists")

	// ErrInvalidContext is returned when any audit context field is
	// missing or blank.
	ErrInvalidContext = errors.New("invalid context")

	// ErrMissingID is returned when a document arrives at a save
	// operation without an "id" field.
	ErrMissingID = errors.New("trade must have an 'id' field")
)
