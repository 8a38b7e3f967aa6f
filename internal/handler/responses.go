package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// bufferPool reduces allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgResourceNotFoundErr = "Resource not found."

	// Mission messages
	ErrMsgMissionNotFoundError     = "Mission not found"
	ErrMsgInstanceNotFoundError    = "Mission instance not found"
	ErrMsgAlternativeNotFoundError = "Alternative mission not found"
	ErrMsgAlternativeMismatchError = "That alternative does not replace this mission"
	ErrMsgAlreadyCompletedError    = "Mission is already completed"
	ErrMsgInvalidTransitionError   = "Operation not allowed in the mission's current state"
	ErrMsgLowMoodRequiredError     = "Alternative missions unlock after a low-mood check-in"

	// Medication messages
	ErrMsgMedicationNotFoundError = "Medication not found"
	ErrMsgInvalidDoseSlotError    = "No dose is scheduled at that position today"
	ErrMsgDoseConflictError       = "That dose was already logged with the opposite outcome"

	// Gamification messages
	ErrMsgUserNotFoundError = "User not found"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal detail never reaches the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrMissionNotFound):
		return http.StatusNotFound, ErrMsgMissionNotFoundError
	case errors.Is(err, domain.ErrInstanceNotFound):
		return http.StatusNotFound, ErrMsgInstanceNotFoundError
	case errors.Is(err, domain.ErrAlternativeNotFound):
		return http.StatusNotFound, ErrMsgAlternativeNotFoundError
	case errors.Is(err, domain.ErrMedicationNotFound):
		return http.StatusNotFound, ErrMsgMedicationNotFoundError
	case errors.Is(err, domain.ErrAlternativeMismatch):
		return http.StatusBadRequest, ErrMsgAlternativeMismatchError
	case errors.Is(err, domain.ErrAlreadyCompleted):
		return http.StatusConflict, ErrMsgAlreadyCompletedError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgInvalidTransitionError
	case errors.Is(err, domain.ErrLowMoodRequired):
		return http.StatusPreconditionFailed, ErrMsgLowMoodRequiredError
	case errors.Is(err, domain.ErrInvalidDoseSlot):
		return http.StatusBadRequest, ErrMsgInvalidDoseSlotError
	case errors.Is(err, domain.ErrDoseConflict):
		return http.StatusConflict, ErrMsgDoseConflictError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
