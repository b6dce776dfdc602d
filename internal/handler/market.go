package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/logger"
	"github.com/emberworks/ironhold/internal/market"
)

type ListItemRequest struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	ItemID int    `json:"item_id" validate:"min=1"`
	Price  int64  `json:"price" validate:"min=1"`
	Stack  int    `json:"stack" validate:"min=1,max=10000"`
}

// HandleListItem handles creating a market listing
// @Summary List item on the market
// @Description Escrow a stack from the seller's inventory and create an active listing
// @Tags market
// @Accept json
// @Produce json
// @Param request body ListItemRequest true "Listing details"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /market/list [post]
func HandleListItem(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ListItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode list request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		listing, err := svc.List(r.Context(), req.Email, req.ItemID, req.Price, req.Stack)
		if err != nil {
			log.Error("Failed to create listing", "error", err, "email", req.Email, "itemID", req.ItemID)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Listing created", "listingID", listing.ID, "seller", req.Email)
		respondJSON(w, http.StatusOK, DataResponse{Message: "Listing created", Data: listing})
	}
}

type PurchaseRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	ListingID int64  `json:"listing_id" validate:"min=1"`
	Stack     int    `json:"stack" validate:"min=1,max=10000"`
}

// HandlePurchase handles buying from a market listing
// @Summary Purchase from a listing
// @Description Pay the seller and receive part or all of a listing's escrowed stack
// @Tags market
// @Accept json
// @Produce json
// @Param request body PurchaseRequest true "Purchase details"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /market/purchase [post]
func HandlePurchase(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode purchase request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.Purchase(r.Context(), req.Email, req.ListingID, req.Stack)
		if err != nil {
			log.Error("Failed to settle purchase", "error", err, "email", req.Email, "listingID", req.ListingID)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Purchase settled", "buyer", req.Email, "listingID", req.ListingID, "total", result.TotalPrice)
		respondJSON(w, http.StatusOK, DataResponse{Message: "Purchase settled", Data: result})
	}
}

type CancelListingRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	ListingID int64  `json:"listing_id" validate:"min=1"`
}

// HandleCancelListing handles cancelling a market listing
// @Summary Cancel a listing
// @Description Close an active listing and return the escrowed stack to the seller
// @Tags market
// @Accept json
// @Produce json
// @Param request body CancelListingRequest true "Cancel details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /market/cancel [post]
func HandleCancelListing(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CancelListingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode cancel request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if err := svc.Cancel(r.Context(), req.Email, req.ListingID); err != nil {
			log.Error("Failed to cancel listing", "error", err, "email", req.Email, "listingID", req.ListingID)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Listing cancelled", "seller", req.Email, "listingID", req.ListingID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Listing cancelled"})
	}
}

// ListingsResponse is one page of active listings
type ListingsResponse struct {
	Page     int                    `json:"page"`
	Listings []domain.MarketListing `json:"listings"`
}

// HandleFindListings returns a page of active listings
// @Summary Browse listings
// @Description Returns one page of active listings, newest first, optionally filtered by category
// @Tags market
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param category query string false "Item category filter"
// @Success 200 {object} ListingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /market/listings [get]
func HandleFindListings(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				respondError(w, http.StatusBadRequest, "page must be a positive integer")
				return
			}
			page = parsed
		}
		category := domain.Category(r.URL.Query().Get("category"))

		listings, err := svc.FindAll(r.Context(), page, category)
		if err != nil {
			log.Error("Failed to find listings", "error", err, "page", page, "category", category)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, ListingsResponse{Page: page, Listings: listings})
	}
}
