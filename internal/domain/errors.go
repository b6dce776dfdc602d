package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Item errors
	ErrMsgItemNotFound = "item not found"
	ErrMsgItemNotHeld  = "item not in inventory"

	// Inventory errors
	ErrMsgInsufficientStack = "insufficient stack"
	ErrMsgUnknownReference  = "item or player does not exist"

	// Equipment errors
	ErrMsgNotEquippable    = "item is not equippable"
	ErrMsgNotConsumable    = "item is not consumable"
	ErrMsgCategoryConflict = "an item of this category is already equipped"

	// Currency errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Market errors
	ErrMsgListingNotFound = "listing not found"
	ErrMsgNotOwner        = "listing belongs to another seller"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgTxConflict = "transaction conflict"
	ErrMsgTxClosed   = "tx is closed"
)

// Common domain errors.
// These errors are used consistently across all layers of the application.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)
	ErrItemNotHeld  = errors.New(ErrMsgItemNotHeld)

	// Inventory errors
	ErrInsufficientStack = errors.New(ErrMsgInsufficientStack)
	ErrUnknownReference  = errors.New(ErrMsgUnknownReference)

	// Equipment errors
	ErrNotEquippable    = errors.New(ErrMsgNotEquippable)
	ErrNotConsumable    = errors.New(ErrMsgNotConsumable)
	ErrCategoryConflict = errors.New(ErrMsgCategoryConflict)

	// Currency errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Market errors
	ErrListingNotFound = errors.New(ErrMsgListingNotFound)
	ErrNotOwner        = errors.New(ErrMsgNotOwner)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Infrastructure errors. ErrTxConflict marks a serialization failure the
	// store can retry against fresh state.
	ErrTxConflict = errors.New(ErrMsgTxConflict)
)
