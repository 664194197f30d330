package handler

import (
	"net/http"

	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/logger"
)

// RegisterCharacterRequest represents the request to create a character
type RegisterCharacterRequest struct {
	CharacterID int64 `json:"character_id" validate:"required,gt=0"`
}

// HandleRegisterCharacter creates a fresh character with starting funds
// @Summary Register character
// @Description Create a new character with the starting balance and empty inventory
// @Tags character
// @Accept json
// @Produce json
// @Param request body RegisterCharacterRequest true "Character details"
// @Success 201 {object} domain.Character
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /character/register [post]
func HandleRegisterCharacter(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register character"); err != nil {
			return
		}

		ch, err := svc.Register(r.Context(), req.CharacterID)
		if err != nil {
			respondServiceError(w, r, ErrMsgRegisterFailed, err)
			return
		}

		log.Info("Character registered", "character_id", ch.ID)
		respondJSON(w, http.StatusCreated, ch)
	}
}

// HandleGetCharacter returns a character snapshot
// @Summary Get character
// @Description Fetch a character's balances, stats and equipment
// @Tags character
// @Produce json
// @Param characterID path int true "Character ID"
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /character/{characterID} [get]
func HandleGetCharacter(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := CharacterIDFromPath(r, w)
		if !ok {
			return
		}

		ch, err := svc.GetCharacter(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetCharacterFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, ch)
	}
}

// HandleGetInventory returns all inventory entries for a character
// @Summary Get inventory
// @Description List a character's inventory entries with quantities and equip state
// @Tags character
// @Produce json
// @Param characterID path int true "Character ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /character/{characterID}/inventory [get]
func HandleGetInventory(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := CharacterIDFromPath(r, w)
		if !ok {
			return
		}

		entries, err := svc.GetInventory(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetInventoryFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}
