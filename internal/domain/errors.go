package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Not-found errors
	ErrMsgUserNotFound        = "user not found"
	ErrMsgMissionNotFound     = "mission not found"
	ErrMsgAlternativeNotFound = "alternative mission not found"
	ErrMsgInstanceNotFound    = "mission instance not found"
	ErrMsgMedicationNotFound  = "medication not found"

	// Validation errors
	ErrMsgInvalidInput    = "invalid input"
	ErrMsgInvalidDoseSlot = "no dose slot at ordinal"

	// Precondition errors
	ErrMsgLowMoodRequired     = "low mood required"
	ErrMsgAlreadyCompleted    = "mission already completed"
	ErrMsgAlternativeMismatch = "alternative does not replace this mission"

	// State errors
	ErrMsgInvalidTransition = "invalid mission state transition"
	ErrMsgDoseConflict      = "dose already logged with opposite outcome"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Not-found errors
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrMissionNotFound     = errors.New(ErrMsgMissionNotFound)
	ErrAlternativeNotFound = errors.New(ErrMsgAlternativeNotFound)
	ErrInstanceNotFound    = errors.New(ErrMsgInstanceNotFound)
	ErrMedicationNotFound  = errors.New(ErrMsgMedicationNotFound)

	// Validation errors
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
	ErrInvalidDoseSlot = errors.New(ErrMsgInvalidDoseSlot)

	// Precondition errors
	ErrLowMoodRequired     = errors.New(ErrMsgLowMoodRequired)
	ErrAlreadyCompleted    = errors.New(ErrMsgAlreadyCompleted)
	ErrAlternativeMismatch = errors.New(ErrMsgAlternativeMismatch)

	// State errors
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrDoseConflict      = errors.New(ErrMsgDoseConflict)
)
