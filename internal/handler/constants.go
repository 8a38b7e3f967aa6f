package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants for consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidWindowDays     = "Invalid window_days parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
)

// Success messages for API responses
const (
	MsgMedicationRemovedSuccess = "Medication removed successfully"
)
