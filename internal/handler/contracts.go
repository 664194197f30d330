package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/undercity-game/undercity/internal/contract"
	"github.com/undercity-game/undercity/internal/logger"
)

// PostContractRequest represents a new contract posting
type PostContractRequest struct {
	PosterID   int64 `json:"poster_id" validate:"required,gt=0"`
	TargetID   int64 `json:"target_id" validate:"required,gt=0"`
	Reward     int64 `json:"reward" validate:"required,gt=0"`
	TTLSeconds int64 `json:"ttl_seconds" validate:"required,gt=0"`
}

// HandlePostContract posts a contract, escrowing the reward
// @Summary Post contract
// @Description Post a contract on a target; the reward is escrowed from the poster immediately
// @Tags contracts
// @Accept json
// @Produce json
// @Param request body PostContractRequest true "Contract details"
// @Success 201 {object} domain.Contract
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /contracts [post]
func HandlePostContract(svc contract.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PostContractRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Post contract"); err != nil {
			return
		}

		ttl := time.Duration(req.TTLSeconds) * time.Second
		c, err := svc.Post(r.Context(), req.PosterID, req.TargetID, req.Reward, ttl)
		if err != nil {
			respondServiceError(w, r, ErrMsgPostContractFailed, err)
			return
		}

		log.Info("Contract posted",
			"contract_id", c.ID,
			"poster_id", req.PosterID,
			"target_id", req.TargetID,
			"reward", req.Reward)

		respondJSON(w, http.StatusCreated, c)
	}
}

// FulfillContractRequest identifies the fulfilling character
type FulfillContractRequest struct {
	FulfillerID int64 `json:"fulfiller_id" validate:"required,gt=0"`
}

// HandleFulfillContract pays an open contract out to the fulfiller
// @Summary Fulfill contract
// @Description Fulfill an open contract; exactly one fulfiller wins the escrowed reward
// @Tags contracts
// @Accept json
// @Produce json
// @Param contractID path string true "Contract ID"
// @Param request body FulfillContractRequest true "Fulfiller"
// @Success 200 {object} domain.Contract
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /contracts/{contractID}/fulfill [post]
func HandleFulfillContract(svc contract.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		contractID, err := uuid.Parse(chi.URLParam(r, "contractID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidContractID)
			return
		}

		var req FulfillContractRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Fulfill contract"); err != nil {
			return
		}

		c, err := svc.Fulfill(r.Context(), contractID, req.FulfillerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgFulfillContractFailed, err)
			return
		}

		log.Info("Contract fulfilled",
			"contract_id", contractID,
			"fulfiller_id", req.FulfillerID,
			"reward", c.Reward)

		respondJSON(w, http.StatusOK, c)
	}
}

// HandleGetContract returns one contract by ID
// @Summary Get contract
// @Description Fetch a single contract by its ID
// @Tags contracts
// @Produce json
// @Param contractID path string true "Contract ID"
// @Success 200 {object} domain.Contract
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /contracts/{contractID} [get]
func HandleGetContract(svc contract.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contractID, err := uuid.Parse(chi.URLParam(r, "contractID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidContractID)
			return
		}

		c, err := svc.Get(r.Context(), contractID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetContractFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, c)
	}
}

// HandleListOpenContracts lists all open contracts
// @Summary List open contracts
// @Description List every contract still open for fulfillment
// @Tags contracts
// @Produce json
// @Success 200 {object} DataResponse
// @Router /contracts [get]
func HandleListOpenContracts(svc contract.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contracts, err := svc.ListOpen(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgListContractsFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: contracts})
	}
}
