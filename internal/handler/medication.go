package handler

import (
	"net/http"
	"strconv"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
	"github.com/Loretta-Health/Webapp-sub001/internal/progress"
)

// MedicationListResponse wraps a user's configured medications
type MedicationListResponse struct {
	Medications interface{} `json:"medications"`
}

// HandleListMedications returns all medications configured by a user
// @Summary List medications
// @Description Returns the user's medications with their schedules
// @Tags medications
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} MedicationListResponse
// @Failure 400 {object} ErrorResponse
// @Router /medications [get]
func HandleListMedications(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		meds, err := svc.ListMedications(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List medications", err)
			return
		}

		respondJSON(w, http.StatusOK, MedicationListResponse{Medications: meds})
	}
}

type AddMedicationRequest struct {
	UserID         string   `json:"user_id" validate:"required,max=100"`
	Name           string   `json:"name" validate:"required,max=200,excludesall=\x00\n\r"`
	Dosage         string   `json:"dosage" validate:"max=100"`
	Frequency      string   `json:"frequency" validate:"required,frequency"`
	ScheduledTimes []string `json:"scheduled_times" validate:"max=24,dive,max=20"`
}

// HandleAddMedication registers a new medication with its schedule
// @Summary Add a medication
// @Description Creates a medication; daily schedules use HH:MM times, weekly ones weekday:HH:MM composites
// @Tags medications
// @Accept json
// @Produce json
// @Param request body AddMedicationRequest true "Medication details"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /medications [post]
func HandleAddMedication(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddMedicationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add medication"); err != nil {
			return
		}

		med, err := svc.AddMedication(r.Context(), req.UserID, req.Name, req.Dosage,
			domain.Frequency(req.Frequency), req.ScheduledTimes)
		if err != nil {
			respondServiceError(w, r, "Add medication", err)
			return
		}

		logger.FromContext(r.Context()).Info("Medication added",
			"user_id", req.UserID, "medication_id", med.ID, "frequency", req.Frequency)

		respondJSON(w, http.StatusCreated, DataResponse{Data: med})
	}
}

type UpdateMedicationRequest struct {
	UserID         string   `json:"user_id" validate:"required,max=100"`
	MedicationID   string   `json:"medication_id" validate:"required,max=100"`
	Name           string   `json:"name" validate:"required,max=200,excludesall=\x00\n\r"`
	Dosage         string   `json:"dosage" validate:"max=100"`
	Frequency      string   `json:"frequency" validate:"required,frequency"`
	ScheduledTimes []string `json:"scheduled_times" validate:"max=24,dive,max=20"`
}

// HandleUpdateMedication replaces a medication's schedule
// @Summary Update a medication
// @Description Updates name, dosage and schedule. Already materialized dose days keep their original slots; the new schedule applies from the next day.
// @Tags medications
// @Accept json
// @Produce json
// @Param request body UpdateMedicationRequest true "Medication details"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /medications/update [put]
func HandleUpdateMedication(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateMedicationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update medication"); err != nil {
			return
		}

		med, err := svc.UpdateMedication(r.Context(), req.UserID, req.MedicationID,
			req.Name, req.Dosage, domain.Frequency(req.Frequency), req.ScheduledTimes)
		if err != nil {
			respondServiceError(w, r, "Update medication", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: med})
	}
}

type RemoveMedicationRequest struct {
	UserID       string `json:"user_id" validate:"required,max=100"`
	MedicationID string `json:"medication_id" validate:"required,max=100"`
}

// HandleRemoveMedication deletes a medication and its dose history
// @Summary Remove a medication
// @Tags medications
// @Accept json
// @Produce json
// @Param request body RemoveMedicationRequest true "Medication reference"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /medications/remove [delete]
func HandleRemoveMedication(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RemoveMedicationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Remove medication"); err != nil {
			return
		}

		if err := svc.RemoveMedication(r.Context(), req.UserID, req.MedicationID); err != nil {
			respondServiceError(w, r, "Remove medication", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMedicationRemovedSuccess})
	}
}

type LogDoseRequest struct {
	UserID       string `json:"user_id" validate:"required,max=100"`
	MedicationID string `json:"medication_id" validate:"required,max=100"`
	Ordinal      int    `json:"ordinal" validate:"min=0,max=1000"`
}

// HandleLogDose marks a scheduled dose as taken
// @Summary Log a dose as taken
// @Description Marks today's dose at the given ordinal as taken and awards XP. Re-logging a taken dose is an idempotent no-op.
// @Tags medications
// @Accept json
// @Produce json
// @Param request body LogDoseRequest true "Dose details"
// @Success 200 {object} medication.DoseResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /medications/dose [post]
func HandleLogDose(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LogDoseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Log dose"); err != nil {
			return
		}

		result, err := svc.LogDose(r.Context(), req.UserID, req.MedicationID, req.Ordinal)
		if err != nil {
			respondServiceError(w, r, "Log dose", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleLogMissedDose marks a scheduled dose as missed
// @Summary Log a dose as missed
// @Description Marks today's dose at the given ordinal as missed; no XP is involved. Re-logging a missed dose is an idempotent no-op.
// @Tags medications
// @Accept json
// @Produce json
// @Param request body LogDoseRequest true "Dose details"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /medications/dose/missed [post]
func HandleLogMissedDose(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LogDoseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Log missed dose"); err != nil {
			return
		}

		dose, err := svc.LogMissedDose(r.Context(), req.UserID, req.MedicationID, req.Ordinal)
		if err != nil {
			respondServiceError(w, r, "Log missed dose", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: dose})
	}
}

// HandleGetAdherence returns a medication's adherence over a trailing window
// @Summary Get adherence
// @Description Computes the taken/scheduled percentage over the trailing window; weekly medications widen the window to a full cycle
// @Tags medications
// @Produce json
// @Param user_id query string true "User ID"
// @Param medication_id query string true "Medication ID"
// @Param window_days query int false "Trailing window in days"
// @Success 200 {object} domain.AdherenceRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /medications/adherence [get]
func HandleGetAdherence(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		medicationID, ok := GetQueryParam(r, w, "medication_id")
		if !ok {
			return
		}

		windowDays := 0
		if raw := GetOptionalQueryParam(r, "window_days", ""); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidWindowDays)
				return
			}
			windowDays = parsed
		}

		record, err := svc.Adherence(r.Context(), userID, medicationID, windowDays)
		if err != nil {
			respondServiceError(w, r, "Get adherence", err)
			return
		}

		respondJSON(w, http.StatusOK, record)
	}
}
