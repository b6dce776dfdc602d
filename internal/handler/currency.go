package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/emberworks/ironhold/internal/currency"
	"github.com/emberworks/ironhold/internal/logger"
)

type TransferSilverRequest struct {
	FromEmail string `json:"from_email" validate:"required,email,max=255"`
	ToEmail   string `json:"to_email" validate:"required,email,max=255"`
	Amount    int64  `json:"amount" validate:"min=1"`
}

// HandleTransferSilver handles moving silver between players
// @Summary Transfer silver
// @Description Move silver from one player to another atomically
// @Tags currency
// @Accept json
// @Produce json
// @Param request body TransferSilverRequest true "Transfer details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user/silver/transfer [post]
func HandleTransferSilver(svc currency.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TransferSilverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode transfer request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if err := svc.Transfer(r.Context(), req.FromEmail, req.ToEmail, req.Amount); err != nil {
			log.Error("Failed to transfer silver", "error", err, "from", req.FromEmail, "to", req.ToEmail)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Silver transferred", "from", req.FromEmail, "to", req.ToEmail, "amount", req.Amount)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Silver transferred"})
	}
}

// PurchaseWebhookRequest is the payment-provider event payload. Signature
// verification happens upstream; the event arrives here already trusted.
type PurchaseWebhookRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,max=255"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Amount        int64  `json:"amount" validate:"min=1"`
}

type PurchaseWebhookResponse struct {
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}

// HandlePurchaseWebhook credits silver bought through the payment provider
// @Summary Payment webhook
// @Description Apply an external payment credit exactly once per provider transaction id
// @Tags currency
// @Accept json
// @Produce json
// @Param request body PurchaseWebhookRequest true "Payment event"
// @Success 200 {object} PurchaseWebhookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /purchase/webhook [post]
func HandlePurchaseWebhook(svc currency.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PurchaseWebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode webhook payload", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid webhook payload", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		applied, err := svc.CreditExternal(r.Context(), req.TransactionID, req.Email, req.Amount)
		if err != nil {
			log.Error("Failed to apply payment event", "error", err, "transactionID", req.TransactionID)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}

		msg := "Credit applied"
		if !applied {
			msg = "Event already applied"
		}
		log.Info("Payment webhook processed", "transactionID", req.TransactionID, "applied", applied)
		respondJSON(w, http.StatusOK, PurchaseWebhookResponse{Applied: applied, Message: msg})
	}
}
