package http

import (
	"net/http"

	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/utils"
)

const (
	deviceIDHeader = "X-Device-Id"
	userIDHeader   = "X-User-Id"
)

// withDevice extracts the device and user identification every protocol
// request must carry, registers first-seen devices and stores both ids in
// the request context.
func (h *Handler) withDevice(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		deviceID := r.Header.Get(deviceIDHeader)
		userID := r.Header.Get(userIDHeader)
		if deviceID == "" || userID == "" {
			log.Warn().Str("func", "*Handler.withDevice").Msg("request without device identification")
			http.Error(w, "device and user identification headers are required", http.StatusBadRequest)
			return
		}

		if err := h.devices.RegisterDevice(r.Context(), deviceID, userID); err != nil {
			log.Err(err).Str("func", "*Handler.withDevice").Msg("error registering device")
			http.Error(w, "error registering device", statusFromError(err))
			return
		}

		ctx := utils.WithDeviceID(r.Context(), deviceID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
