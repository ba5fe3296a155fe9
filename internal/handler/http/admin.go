package http

import (
	"encoding/json"
	"net/http"

	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/store"
	"github.com/airsyncd/go-airsync/internal/utils"
)

// getLoopData exposes the loop-detection entries of one device for
// troubleshooting stuck clients.
func (h *Handler) getLoopData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	deviceID := r.URL.Query().Get("device_id")
	userID := r.URL.Query().Get("user_id")
	if deviceID == "" {
		http.Error(w, "device_id query parameter is required", http.StatusBadRequest)
		return
	}

	entries, err := h.loops.Entries(userID, deviceID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getLoopData").Msg("error reading loop data")
		http.Error(w, "error reading loop data", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) clearLoopData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	deviceID := r.URL.Query().Get("device_id")
	userID := r.URL.Query().Get("user_id")
	if deviceID == "" {
		http.Error(w, "device_id query parameter is required", http.StatusBadRequest)
		return
	}

	if err := h.loops.Clear(userID, deviceID); err != nil {
		log.Err(err).Str("func", "*Handler.clearLoopData").Msg("error clearing loop data")
		http.Error(w, "error clearing loop data", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getIgnoredMessages(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.devices.IgnoredMessages(), http.StatusOK)
}

// getFolders returns the folder hierarchy cached for the device.
func (h *Handler) getFolders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deviceID, _ := utils.GetDeviceIDFromContext(ctx)
	folders, err := h.devices.Folders(ctx, deviceID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getFolders").Msg("error loading folder hierarchy")
		http.Error(w, "error loading folder hierarchy", statusFromError(err))
		return
	}

	utils.WriteJSON(w, folders, http.StatusOK)
}

// setFolders replaces the device's folder hierarchy cache and clears the
// hierarchy-sync-required flag, unblocking Sync exchanges.
func (h *Handler) setFolders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deviceID, _ := utils.GetDeviceIDFromContext(ctx)

	var folders []store.Folder
	if err := json.NewDecoder(r.Body).Decode(&folders); err != nil {
		log.Err(err).Str("func", "*Handler.setFolders").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if len(folders) == 0 {
		http.Error(w, "at least one folder is required", http.StatusBadRequest)
		return
	}

	if err := h.devices.SetFolders(ctx, deviceID, folders); err != nil {
		log.Err(err).Str("func", "*Handler.setFolders").Msg("error saving folder hierarchy")
		http.Error(w, "error saving folder hierarchy", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
