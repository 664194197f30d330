package handler

import (
	"net/http"

	"github.com/undercity-game/undercity/internal/catalog"
	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/logger"
)

// BuyItemRequest represents a shop purchase
type BuyItemRequest struct {
	CharacterID int64  `json:"character_id" validate:"required,gt=0"`
	ItemKind    string `json:"item_kind" validate:"required,itemkind"`
	ItemID      int    `json:"item_id" validate:"required,gt=0"`
	Quantity    int    `json:"quantity" validate:"min=1,max=100"`
}

// HandleBuyItem purchases catalog items for a character
// @Summary Buy item
// @Description Buy catalog items, debiting the purchase price atomically
// @Tags shop
// @Accept json
// @Produce json
// @Param request body BuyItemRequest true "Purchase details"
// @Success 200 {object} economy.PurchaseResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shop/buy [post]
func HandleBuyItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req BuyItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
			return
		}

		ref := domain.ItemRef{Kind: domain.ItemKind(req.ItemKind), ID: req.ItemID}
		result, err := svc.Purchase(r.Context(), req.CharacterID, ref, req.Quantity)
		if err != nil {
			respondServiceError(w, r, ErrMsgBuyItemFailed, err)
			return
		}

		log.Info("Item bought",
			"character_id", req.CharacterID,
			"item", ref.String(),
			"quantity", req.Quantity,
			"total_cost", result.TotalCost)

		respondJSON(w, http.StatusOK, result)
	}
}

// SellItemRequest represents a shop sale of a single unit
type SellItemRequest struct {
	CharacterID int64  `json:"character_id" validate:"required,gt=0"`
	ItemKind    string `json:"item_kind" validate:"required,itemkind"`
	ItemID      int    `json:"item_id" validate:"required,gt=0"`
}

// HandleSellItem sells one unit of an owned item back to the shop
// @Summary Sell item
// @Description Sell one unit back at the kind's sell fraction, unequipping a worn last unit first
// @Tags shop
// @Accept json
// @Produce json
// @Param request body SellItemRequest true "Sale details"
// @Success 200 {object} economy.SellResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shop/sell [post]
func HandleSellItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SellItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sell item"); err != nil {
			return
		}

		ref := domain.ItemRef{Kind: domain.ItemKind(req.ItemKind), ID: req.ItemID}
		result, err := svc.Sell(r.Context(), req.CharacterID, ref)
		if err != nil {
			respondServiceError(w, r, ErrMsgSellItemFailed, err)
			return
		}

		log.Info("Item sold",
			"character_id", req.CharacterID,
			"item", ref.String(),
			"sell_price", result.SellPrice)

		respondJSON(w, http.StatusOK, result)
	}
}

// EquipItemRequest represents an equip operation
type EquipItemRequest struct {
	CharacterID int64  `json:"character_id" validate:"required,gt=0"`
	ItemKind    string `json:"item_kind" validate:"required,itemkind"`
	ItemID      int    `json:"item_id" validate:"required,gt=0"`
	Slot        string `json:"slot" validate:"required,slot"`
}

// HandleEquipItem equips an owned item into a slot
// @Summary Equip item
// @Description Equip an owned item into a compatible slot, replacing any occupant
// @Tags shop
// @Accept json
// @Produce json
// @Param request body EquipItemRequest true "Equip details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shop/equip [post]
func HandleEquipItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EquipItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}

		ref := domain.ItemRef{Kind: domain.ItemKind(req.ItemKind), ID: req.ItemID}
		if err := svc.EquipItem(r.Context(), req.CharacterID, ref, domain.Slot(req.Slot)); err != nil {
			respondServiceError(w, r, ErrMsgEquipFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEquipSuccess})
	}
}

// UnequipItemRequest represents an unequip operation
type UnequipItemRequest struct {
	CharacterID int64  `json:"character_id" validate:"required,gt=0"`
	Slot        string `json:"slot" validate:"required,slot"`
}

// HandleUnequipItem clears an equip slot
// @Summary Unequip item
// @Description Remove whatever occupies the named slot; a no-op when empty
// @Tags shop
// @Accept json
// @Produce json
// @Param request body UnequipItemRequest true "Unequip details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /shop/unequip [post]
func HandleUnequipItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UnequipItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unequip item"); err != nil {
			return
		}

		if err := svc.UnequipItem(r.Context(), req.CharacterID, domain.Slot(req.Slot)); err != nil {
			respondServiceError(w, r, ErrMsgUnequipFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgUnequipSuccess})
	}
}

// HandleGetCatalog lists the purchasable catalog, optionally by kind
// @Summary List catalog
// @Description List all catalog items, or only those of the kind query parameter
// @Tags shop
// @Produce json
// @Param kind query string false "Item kind filter"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /shop/catalog [get]
func HandleGetCatalog(lookup catalog.Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if kindParam := r.URL.Query().Get("kind"); kindParam != "" {
			kind := domain.ItemKind(kindParam)
			if !kind.IsValid() {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
				return
			}
			respondJSON(w, http.StatusOK, DataResponse{Data: lookup.ListKind(kind)})
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: lookup.All()})
	}
}
