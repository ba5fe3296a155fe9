package http

import (
	"encoding/json"
	"net/http"

	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/utils"
	"github.com/airsyncd/go-airsync/models"
)

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deviceID, found := utils.GetDeviceIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.sync").Msg("no device ID was given")
		http.Error(w, "no device ID was given", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(ctx)

	var syncRequest models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&syncRequest); err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.engine.HandleSync(ctx, deviceID, userID, &syncRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("error processing sync exchange")
		http.Error(w, "error processing sync exchange", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) itemEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deviceID, found := utils.GetDeviceIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.itemEstimate").Msg("no device ID was given")
		http.Error(w, "no device ID was given", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(ctx)

	var estimateRequest models.EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&estimateRequest); err != nil {
		log.Err(err).Str("func", "*Handler.itemEstimate").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.engine.HandleEstimate(ctx, deviceID, userID, &estimateRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.itemEstimate").Msg("error computing item estimate")
		http.Error(w, "error computing item estimate", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
