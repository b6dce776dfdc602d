package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/emberworks/ironhold/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	// Encode to the buffer first; headers are already sent, so an encode
	// failure can only be logged.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidRequest     = "Invalid request. Please check your inputs."

	ErrMsgUserNotFoundError      = "Player not found"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgItemNotHeldError       = "You don't have that item"
	ErrMsgInsufficientStackError = "Not enough items"
	ErrMsgUnknownReferenceError  = "Item or player does not exist"

	ErrMsgNotEquippableError    = "That item cannot be equipped"
	ErrMsgNotConsumableError    = "That item cannot be consumed"
	ErrMsgCategoryConflictError = "An item of that category is already equipped"

	ErrMsgNotEnoughSilverError = "Not enough silver"

	ErrMsgListingNotFoundError = "Listing not found"
	ErrMsgNotOwnerError        = "That listing belongs to another seller"
)

// mapServiceError maps domain errors to user-friendly HTTP responses.
// Internal details stay in the logs; clients only see the mapped message.
func mapServiceError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrItemNotHeld):
		return http.StatusBadRequest, ErrMsgItemNotHeldError
	case errors.Is(err, domain.ErrInsufficientStack):
		return http.StatusBadRequest, ErrMsgInsufficientStackError
	case errors.Is(err, domain.ErrUnknownReference):
		return http.StatusBadRequest, ErrMsgUnknownReferenceError
	case errors.Is(err, domain.ErrNotEquippable):
		return http.StatusBadRequest, ErrMsgNotEquippableError
	case errors.Is(err, domain.ErrNotConsumable):
		return http.StatusBadRequest, ErrMsgNotConsumableError
	case errors.Is(err, domain.ErrCategoryConflict):
		return http.StatusBadRequest, ErrMsgCategoryConflictError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughSilverError
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusBadRequest, ErrMsgListingNotFoundError
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden, ErrMsgNotOwnerError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequest
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
