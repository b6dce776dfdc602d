package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/emberworks/ironhold/internal/equipment"
	"github.com/emberworks/ironhold/internal/logger"
)

type EquipItemRequest struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	ItemID int    `json:"item_id" validate:"min=1"`
}

// HandleEquipItem handles equipping an item from the inventory
// @Summary Equip item
// @Description Move one unit of an item from inventory to an equipment slot and apply its stats
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body EquipItemRequest true "Equip details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user/item/equip [post]
func HandleEquipItem(svc equipment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EquipItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode equip request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if err := svc.Equip(r.Context(), req.Email, req.ItemID); err != nil {
			log.Error("Failed to equip item", "error", err, "email", req.Email, "itemID", req.ItemID)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item equipped", "email", req.Email, "itemID", req.ItemID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item equipped"})
	}
}

type UnequipItemRequest struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	ItemID int    `json:"item_id" validate:"min=1"`
}

// HandleUnequipItem handles returning an equipped item to the inventory
// @Summary Unequip item
// @Description Return an equipped item to the inventory and revert its stats; no-op when not equipped
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body UnequipItemRequest true "Unequip details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user/item/unequip [post]
func HandleUnequipItem(svc equipment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UnequipItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode unequip request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if err := svc.Unequip(r.Context(), req.Email, req.ItemID); err != nil {
			log.Error("Failed to unequip item", "error", err, "email", req.Email, "itemID", req.ItemID)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item unequipped", "email", req.Email, "itemID", req.ItemID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item unequipped"})
	}
}

type ConsumeItemRequest struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	ItemID int    `json:"item_id" validate:"min=1"`
}

type ConsumeItemResponse struct {
	Consumed bool   `json:"consumed"`
	Message  string `json:"message"`
}

// HandleConsumeItem handles using a consumable item
// @Summary Consume item
// @Description Use one unit of a consumable to restore health/mana; reports consumed=false when the item is not held or not consumable
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body ConsumeItemRequest true "Consume details"
// @Success 200 {object} ConsumeItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user/item/consume [post]
func HandleConsumeItem(svc equipment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ConsumeItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode consume request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		consumed, err := svc.Consume(r.Context(), req.Email, req.ItemID)
		if err != nil {
			log.Error("Failed to consume item", "error", err, "email", req.Email, "itemID", req.ItemID)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		msg := "Item consumed"
		if !consumed {
			msg = "Nothing was consumed"
		}
		respondJSON(w, http.StatusOK, ConsumeItemResponse{Consumed: consumed, Message: msg})
	}
}
