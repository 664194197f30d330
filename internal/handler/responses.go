package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Retry bool   `json:"retry,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing more to write
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

// respondServiceError logs the failure and maps the domain error to an
// HTTP status and a user-facing message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	log.Error(opName, "error", err)

	status, message := mapServiceErrorToUserMessage(err)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
		respondJSON(w, status, ErrorResponse{Error: message, Retry: true})
		return
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgCharacterNotFoundError = "Character not found"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgTaskNotFoundError      = "Task not found"
	ErrMsgContractNotFoundError  = "Contract not found"

	ErrMsgInvalidAmountError = "Amount must be positive"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
	ErrMsgInvalidSlotError   = "That item cannot go in that slot"

	ErrMsgNotEnoughMoneyError = "Not enough money"
	ErrMsgNotOwnedError       = "You don't have that item"
	ErrMsgNotCompletedError   = "Task is not completed yet"
	ErrMsgAlreadyClaimedError = "Reward already claimed"
	ErrMsgConflictError       = "Someone beat you to it"

	ErrMsgBusyError = "Character is busy. Please try again."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages. Validation failures are 400, missing
// resources 404, lost races and state conflicts 409, lock timeouts 503.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, ErrMsgTaskNotFoundError
	case errors.Is(err, domain.ErrContractNotFound):
		return http.StatusNotFound, ErrMsgContractNotFoundError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrSlotInvalid):
		return http.StatusBadRequest, ErrMsgInvalidSlotError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrItemNotOwned):
		return http.StatusConflict, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrNotCompleted):
		return http.StatusConflict, ErrMsgNotCompletedError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrMsgConflictError
	case errors.Is(err, domain.ErrBusy):
		return http.StatusServiceUnavailable, ErrMsgBusyError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
