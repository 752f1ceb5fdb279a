package handler

import (
	"net/http"
	"strings"

	"github.com/numengames/numinia-core/internal/api/request"
	"github.com/numengames/numinia-core/internal/api/response"
	"github.com/numengames/numinia-core/internal/services/asset"
)

// AssetHandler handles on-chain asset delivery
type AssetHandler struct {
	assets *asset.Service
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assets *asset.Service) *AssetHandler {
	return &AssetHandler{
		assets: assets,
	}
}

// Deliver handles POST /api/v1/asset/deliver
func (h *AssetHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	var req request.DeliverAssetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	wallet := strings.TrimSpace(req.WalletID)
	option := strings.TrimSpace(req.DeliverOption)
	if wallet == "" {
		WriteError(w, NewInvalidRequestError(`"walletId" is required`))
		return
	}
	if option == "" {
		WriteError(w, NewInvalidRequestError(`"deliverOption" is required`))
		return
	}

	delivery, err := h.assets.Deliver(r.Context(), wallet, option)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Delivery{TxHash: delivery.TxHash})
}
