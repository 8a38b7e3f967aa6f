package handler

import (
	"net/http"

	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
	"github.com/Loretta-Health/Webapp-sub001/internal/mission"
	"github.com/Loretta-Health/Webapp-sub001/internal/progress"
)

// MissionListResponse wraps the day's mission instances
type MissionListResponse struct {
	Missions interface{} `json:"missions"`
}

// HandleListMissions returns today's mission instances, materializing the
// day on first access
// @Summary List today's missions
// @Description Returns the user's mission instances for the current day
// @Tags missions
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} MissionListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /missions [get]
func HandleListMissions(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		instances, err := svc.ListMissions(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List missions", err)
			return
		}

		respondJSON(w, http.StatusOK, MissionListResponse{Missions: instances})
	}
}

type ActivateAlternativeRequest struct {
	UserID         string `json:"user_id" validate:"required,max=100"`
	MissionID      string `json:"mission_id" validate:"required,max=100"`
	AlternativeKey string `json:"alternative_key" validate:"required,max=100"`
}

// HandleActivateAlternative swaps a standard mission for its lower-intensity
// alternative for the rest of the day
// @Summary Activate an alternative mission
// @Description Replaces a standard mission with its alternative; mood-gated alternatives require a low-mood check-in today
// @Tags missions
// @Accept json
// @Produce json
// @Param request body ActivateAlternativeRequest true "Activation details"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse
// @Router /missions/alternative/activate [post]
func HandleActivateAlternative(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ActivateAlternativeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Activate alternative"); err != nil {
			return
		}

		instance, err := svc.ActivateAlternative(r.Context(), req.UserID, req.MissionID, req.AlternativeKey)
		if err != nil {
			respondServiceError(w, r, "Activate alternative", err)
			return
		}

		logger.FromContext(r.Context()).Info("Alternative activated",
			"user_id", req.UserID, "mission_id", req.MissionID, "alternative", req.AlternativeKey)

		respondJSON(w, http.StatusOK, DataResponse{Data: instance})
	}
}

type MissionStepRequest struct {
	UserID     string `json:"user_id" validate:"required,max=100"`
	InstanceID string `json:"instance_id" validate:"required,max=100"`
}

// stepHandler wraps the three step-shaped mission mutations, which share a
// request shape and response contract.
func stepHandler(opName string, call func(svc progress.Service, r *http.Request, req MissionStepRequest) (*mission.StepResult, error), svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MissionStepRequest
		if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
			return
		}

		result, err := call(svc, r, req)
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleLogMissionStep logs one unit of progress on a mission instance
// @Summary Log a mission step
// @Description Adds one step of progress; completing the final step completes the mission and awards XP. Logging against a completed mission is an idempotent no-op.
// @Tags missions
// @Accept json
// @Produce json
// @Param request body MissionStepRequest true "Step details"
// @Success 200 {object} mission.StepResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /missions/step [post]
func HandleLogMissionStep(svc progress.Service) http.HandlerFunc {
	return stepHandler("Log mission step", func(svc progress.Service, r *http.Request, req MissionStepRequest) (*mission.StepResult, error) {
		return svc.LogMissionStep(r.Context(), req.UserID, req.InstanceID)
	}, svc)
}

// HandleUndoMissionStep retracts the most recent step on a mission instance
// @Summary Undo a mission step
// @Description Removes one step of progress, reopening the mission and retracting XP if it had been completed
// @Tags missions
// @Accept json
// @Produce json
// @Param request body MissionStepRequest true "Step details"
// @Success 200 {object} mission.StepResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /missions/step/undo [post]
func HandleUndoMissionStep(svc progress.Service) http.HandlerFunc {
	return stepHandler("Undo mission step", func(svc progress.Service, r *http.Request, req MissionStepRequest) (*mission.StepResult, error) {
		return svc.UndoMissionStep(r.Context(), req.UserID, req.InstanceID)
	}, svc)
}

// HandleCompleteMission completes a complete-once mission
// @Summary Complete a mission
// @Description Marks a complete-once mission as done and awards its XP; step-based missions complete through their final step instead
// @Tags missions
// @Accept json
// @Produce json
// @Param request body MissionStepRequest true "Mission instance"
// @Success 200 {object} mission.StepResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /missions/complete [post]
func HandleCompleteMission(svc progress.Service) http.HandlerFunc {
	return stepHandler("Complete mission", func(svc progress.Service, r *http.Request, req MissionStepRequest) (*mission.StepResult, error) {
		return svc.CompleteMission(r.Context(), req.UserID, req.InstanceID)
	}, svc)
}

// HandleDeactivateMission returns an alternative's slot to the original
// mission, preserving the original's progress
// @Summary Deactivate an alternative mission
// @Description Reverts an active alternative; the replaced standard mission resumes with its prior progress
// @Tags missions
// @Accept json
// @Produce json
// @Param request body MissionStepRequest true "Mission instance"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /missions/deactivate [post]
func HandleDeactivateMission(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MissionStepRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Deactivate mission"); err != nil {
			return
		}

		instance, err := svc.DeactivateMission(r.Context(), req.UserID, req.InstanceID)
		if err != nil {
			respondServiceError(w, r, "Deactivate mission", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: instance})
	}
}
