package handler

import (
	"net/http"

	"github.com/Loretta-Health/Webapp-sub001/internal/progress"
)

// HandleGetSnapshot returns the full dashboard aggregate for a user's day
// @Summary Get progress snapshot
// @Description Returns today's missions, medication slots, adherence, gamification state and mood in one read
// @Tags progress
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} progress.Snapshot
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /progress/snapshot [get]
func HandleGetSnapshot(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		snapshot, err := svc.Snapshot(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get snapshot", err)
			return
		}

		respondJSON(w, http.StatusOK, snapshot)
	}
}
