package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
	"github.com/Loretta-Health/Webapp-sub001/internal/progress"
)

// HandleGetGamificationState returns the user's XP, level, streak, lives
// and unlocked achievements
// @Summary Get gamification state
// @Tags gamification
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.GamificationState
// @Failure 400 {object} ErrorResponse
// @Router /gamification [get]
func HandleGetGamificationState(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		state, err := svc.GetGamificationState(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get gamification state", err)
			return
		}

		respondJSON(w, http.StatusOK, state)
	}
}

type CheckInRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
}

// HandleCheckIn records daily activity for the streak
// @Summary Daily streak check-in
// @Description Extends the streak on consecutive days, resets it (losing a life) after a gap. Same-day repeats are idempotent no-ops.
// @Tags gamification
// @Accept json
// @Produce json
// @Param request body CheckInRequest true "User reference"
// @Success 200 {object} gamification.CheckInResult
// @Failure 400 {object} ErrorResponse
// @Router /gamification/checkin [post]
func HandleCheckIn(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CheckInRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Check in"); err != nil {
			return
		}

		result, err := svc.CheckIn(r.Context(), req.UserID)
		if err != nil {
			respondServiceError(w, r, "Check in", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

type RecordMoodRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
	Mood   string `json:"mood" validate:"required,mood"`
}

// HandleRecordMood stores today's mood check-in
// @Summary Record mood
// @Description Stores the user's mood for today (later submissions overwrite) and counts as daily activity for the streak
// @Tags gamification
// @Accept json
// @Produce json
// @Param request body RecordMoodRequest true "Mood details"
// @Success 200 {object} domain.MoodCheckIn
// @Failure 400 {object} ErrorResponse
// @Router /gamification/mood [post]
func HandleRecordMood(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordMoodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record mood"); err != nil {
			return
		}

		// The mood validation tag is case-insensitive; normalize before the
		// service sees it.
		checkIn, err := svc.RecordMood(r.Context(), req.UserID, domain.Mood(strings.ToLower(req.Mood)))
		if err != nil {
			respondServiceError(w, r, "Record mood", err)
			return
		}

		logger.FromContext(r.Context()).Info("Mood recorded",
			"user_id", req.UserID, "mood", req.Mood)

		respondJSON(w, http.StatusOK, checkIn)
	}
}

// XPHistoryResponse wraps the user's recent XP ledger entries
type XPHistoryResponse struct {
	Deltas interface{} `json:"deltas"`
}

// HandleGetXPHistory returns recent entries from the append-only XP ledger
// @Summary Get XP history
// @Tags gamification
// @Produce json
// @Param user_id query string true "User ID"
// @Param limit query int false "Maximum entries to return"
// @Success 200 {object} XPHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Router /gamification/xp-history [get]
func HandleGetXPHistory(svc progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		limit := 0
		if raw := GetOptionalQueryParam(r, "limit", ""); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = parsed
		}

		deltas, err := svc.XPHistory(r.Context(), userID, limit)
		if err != nil {
			respondServiceError(w, r, "Get XP history", err)
			return
		}

		respondJSON(w, http.StatusOK, XPHistoryResponse{Deltas: deltas})
	}
}
