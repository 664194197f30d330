package handler

import (
	"net/http"

	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/logger"
)

// BankRequest represents a deposit or withdrawal
type BankRequest struct {
	CharacterID int64 `json:"character_id" validate:"required,gt=0"`
	Amount      int64 `json:"amount" validate:"required,gt=0"`
}

// HandleDeposit moves cash into the bank
// @Summary Deposit
// @Description Move cash from hand to the bank balance
// @Tags bank
// @Accept json
// @Produce json
// @Param request body BankRequest true "Deposit details"
// @Success 200 {object} economy.BankResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /bank/deposit [post]
func HandleDeposit(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BankRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Deposit"); err != nil {
			return
		}

		result, err := svc.Deposit(r.Context(), req.CharacterID, req.Amount)
		if err != nil {
			respondServiceError(w, r, ErrMsgDepositFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleWithdraw moves banked money back to cash
// @Summary Withdraw
// @Description Move money from the bank balance back to hand
// @Tags bank
// @Accept json
// @Produce json
// @Param request body BankRequest true "Withdrawal details"
// @Success 200 {object} economy.BankResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /bank/withdraw [post]
func HandleWithdraw(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BankRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Withdraw"); err != nil {
			return
		}

		result, err := svc.Withdraw(r.Context(), req.CharacterID, req.Amount)
		if err != nil {
			respondServiceError(w, r, ErrMsgWithdrawFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// TransferRequest represents a cash transfer between two characters
type TransferRequest struct {
	FromID int64 `json:"from_id" validate:"required,gt=0"`
	ToID   int64 `json:"to_id" validate:"required,gt=0"`
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// HandleTransfer moves cash between two characters atomically
// @Summary Transfer
// @Description Transfer cash from one character to another in a single transaction
// @Tags bank
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /bank/transfer [post]
func HandleTransfer(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TransferRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Transfer"); err != nil {
			return
		}

		if err := svc.Transfer(r.Context(), req.FromID, req.ToID, req.Amount); err != nil {
			respondServiceError(w, r, ErrMsgTransferFailed, err)
			return
		}

		log.Info("Transfer completed",
			"from_id", req.FromID,
			"to_id", req.ToID,
			"amount", req.Amount)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTransferSuccess})
	}
}
