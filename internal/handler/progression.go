package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/emberworks/ironhold/internal/logger"
	"github.com/emberworks/ironhold/internal/progression"
)

type GrantExperienceRequest struct {
	Email      string `json:"email" validate:"required,email,max=255"`
	Experience int    `json:"experience" validate:"required"`
	Silver     int64  `json:"silver" validate:"min=0"`
}

// HandleGrantExperience handles awarding experience (and optionally silver)
// @Summary Grant experience
// @Description Adjust a player's experience, reconciling level and profession stats; optional silver reward in the same transaction
// @Tags progression
// @Accept json
// @Produce json
// @Param request body GrantExperienceRequest true "Grant details"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user/experience [post]
func HandleGrantExperience(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantExperienceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode grant request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.GrantExperienceAndSilver(r.Context(), req.Email, req.Experience, req.Silver)
		if err != nil {
			log.Error("Failed to grant experience", "error", err, "email", req.Email)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Experience granted", "email", req.Email, "experience", req.Experience, "level", result.Level)
		respondJSON(w, http.StatusOK, DataResponse{Message: "Experience granted", Data: result})
	}
}

// HandleGetStats returns a player's stat sheet
// @Summary Get player stats
// @Description Returns the current stat sheet for a player
// @Tags progression
// @Produce json
// @Param email query string true "Player email"
// @Success 200 {object} domain.Stats
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user/stats [get]
func HandleGetStats(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		email := r.URL.Query().Get("email")
		if email == "" {
			respondError(w, http.StatusBadRequest, "email query parameter is required")
			return
		}

		stats, err := svc.GetStats(r.Context(), email)
		if err != nil {
			log.Error("Failed to get stats", "error", err, "email", email)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}
