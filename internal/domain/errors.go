package domain

import "errors"

var (
	// ErrProfileNotFound is returned when no profile row exists for the
	// requested user id. The pipeline aborts before scoring.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrIngredientNotFound is returned when an ingredient lookup resolves
	// nothing. Rule evaluation treats it as skip-and-continue.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrSelectionNotFound is returned when a selection option name is not
	// present in the catalog.
	ErrSelectionNotFound = errors.New("selection option not found")

	// ErrStoreFailure wraps any underlying store read/write failure. The
	// whole run is rolled back and this is surfaced to the caller.
	ErrStoreFailure = errors.New("store operation failed")

	// ErrInvalidSubmission is returned when a survey submission fails
	// validation before anything is persisted.
	ErrInvalidSubmission = errors.New("invalid survey submission")
)
