package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/equipment"
	"github.com/emberworks/ironhold/internal/inventory"
	"github.com/emberworks/ironhold/internal/logger"
)

type AddItemRequest struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	ItemID int    `json:"item_id" validate:"min=1"`
	Stack  int    `json:"stack" validate:"min=1,max=10000"`
}

// HandleAddItem handles adding items to a player's inventory
// @Summary Add item to inventory
// @Description Add a stack of an item to a player's inventory (admin/system action)
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Item details"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user/item/add [post]
func HandleAddItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AddItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add item request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		row, err := svc.AddItem(r.Context(), req.Email, req.ItemID, req.Stack)
		if err != nil {
			log.Error("Failed to add item", "error", err, "email", req.Email, "itemID", req.ItemID)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item added", "email", req.Email, "itemID", req.ItemID, "stack", req.Stack)
		respondJSON(w, http.StatusOK, DataResponse{Message: "Item added", Data: row})
	}
}

type RemoveItemRequest struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	ItemID int    `json:"item_id" validate:"min=1"`
	Stack  int    `json:"stack" validate:"min=1,max=10000"`
}

// HandleRemoveItem handles removing items from a player's inventory
// @Summary Remove item from inventory
// @Description Remove a stack of an item from a player's inventory
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body RemoveItemRequest true "Item details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user/item/remove [post]
func HandleRemoveItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RemoveItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode remove item request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if err := svc.RemoveItem(r.Context(), req.Email, req.ItemID, req.Stack); err != nil {
			log.Error("Failed to remove item", "error", err, "email", req.Email, "itemID", req.ItemID)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item removed", "email", req.Email, "itemID", req.ItemID, "stack", req.Stack)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item removed"})
	}
}

type GiveItemRequest struct {
	FromEmail string `json:"from_email" validate:"required,email,max=255"`
	ToEmail   string `json:"to_email" validate:"required,email,max=255"`
	ItemID    int    `json:"item_id" validate:"min=1"`
	Stack     int    `json:"stack" validate:"min=1,max=10000"`
}

// HandleGiveItem handles transferring items between players
// @Summary Give item to another player
// @Description Transfer a stack of an item from one player to another
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body GiveItemRequest true "Transfer details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user/item/give [post]
func HandleGiveItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GiveItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode give item request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if err := svc.TransferItem(r.Context(), req.FromEmail, req.ToEmail, req.ItemID, req.Stack); err != nil {
			log.Error("Failed to transfer item", "error", err, "from", req.FromEmail, "to", req.ToEmail)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item transferred", "from", req.FromEmail, "to", req.ToEmail, "itemID", req.ItemID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item transferred"})
	}
}

// InventoryView is the combined inventory and equipment of one player
type InventoryView struct {
	Inventory []domain.InventoryItem `json:"inventory"`
	Equipment []domain.EquippedItem  `json:"equipment"`
}

// HandleGetInventory returns a player's inventory and equipped items
// @Summary Get player inventory
// @Description Returns held stacks and equipped items for a player
// @Tags inventory
// @Produce json
// @Param email query string true "Player email"
// @Success 200 {object} InventoryView
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user/inventory [get]
func HandleGetInventory(invSvc inventory.Service, eqSvc equipment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		email := r.URL.Query().Get("email")
		if email == "" {
			respondError(w, http.StatusBadRequest, "email query parameter is required")
			return
		}

		items, err := invSvc.GetInventory(r.Context(), email)
		if err != nil {
			log.Error("Failed to get inventory", "error", err, "email", email)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		equipped, err := eqSvc.GetEquipment(r.Context(), email)
		if err != nil {
			log.Error("Failed to get equipment", "error", err, "email", email)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, InventoryView{Inventory: items, Equipment: equipped})
	}
}
