package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/emberworks/ironhold/internal/catalog"
	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/logger"
)

type CreateItemRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Category  string `json:"category" validate:"required,category"`
	Health    int    `json:"health" validate:"min=0"`
	Mana      int    `json:"mana" validate:"min=0"`
	Attack    int    `json:"attack" validate:"min=0"`
	Strength  int    `json:"strength" validate:"min=0"`
	Agility   int    `json:"agility" validate:"min=0"`
	Intellect int    `json:"intellect" validate:"min=0"`
}

// HandleCreateItem handles authoring a new catalog item
// @Summary Create catalog item
// @Description Add a new item to the catalog (admin action)
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item definition"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/item/create [post]
func HandleCreateItem(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode create item request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		created, err := svc.CreateItem(r.Context(), &domain.Item{
			Name:      req.Name,
			Category:  domain.Category(req.Category),
			Health:    req.Health,
			Mana:      req.Mana,
			Attack:    req.Attack,
			Strength:  req.Strength,
			Agility:   req.Agility,
			Intellect: req.Intellect,
		})
		if err != nil {
			log.Error("Failed to create item", "error", err, "name", req.Name)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Catalog item created", "itemID", created.ID, "name", created.Name)
		respondJSON(w, http.StatusOK, DataResponse{Message: "Item created", Data: created})
	}
}

// HandleListProfessions returns the profession reference table
// @Summary List professions
// @Description Returns every profession with its per-level stat gains
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Profession
// @Failure 500 {object} ErrorResponse
// @Router /professions [get]
func HandleListProfessions(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		professions, err := svc.ListProfessions(r.Context())
		if err != nil {
			log.Error("Failed to list professions", "error", err)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, professions)
	}
}
