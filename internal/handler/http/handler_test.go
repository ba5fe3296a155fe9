package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/airsyncd/go-airsync/internal/config"
	"github.com/airsyncd/go-airsync/internal/device"
	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/loopdetect"
	"github.com/airsyncd/go-airsync/internal/mock"
	"github.com/airsyncd/go-airsync/models"
)

// stubEngine answers protocol commands with canned results.
type stubEngine struct {
	syncFn     func(ctx context.Context, deviceID, userID string, req *models.SyncRequest) (*models.SyncResponse, error)
	estimateFn func(ctx context.Context, deviceID, userID string, req *models.EstimateRequest) (*models.EstimateResponse, error)
}

func (s *stubEngine) HandleSync(ctx context.Context, deviceID, userID string, req *models.SyncRequest) (*models.SyncResponse, error) {
	return s.syncFn(ctx, deviceID, userID, req)
}

func (s *stubEngine) HandleEstimate(ctx context.Context, deviceID, userID string, req *models.EstimateRequest) (*models.EstimateResponse, error) {
	return s.estimateFn(ctx, deviceID, userID, req)
}

// newTestHandler wires a Handler with a stub engine, a mocked device
// repository and a throwaway loop cache. The mock accepts any device
// registration so requests pass the identification middleware.
func newTestHandler(t *testing.T, engine SyncEngine) (*Handler, *mock.MockDeviceRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockDeviceRepository(ctrl)
	repo.EXPECT().RegisterDevice(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cache, err := loopdetect.OpenCache(filepath.Join(t.TempDir(), "loopdetect.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	devices := device.NewManager(repo, config.Sync{DefaultWindowSize: 100, MaxWindowSize: 512}, logger.Nop())
	return NewHandler(engine, devices, loopdetect.NewDetector(cache, logger.Nop()), logger.Nop()), repo
}

func identifiedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.Header.Set(deviceIDHeader, "androidc123")
	req.Header.Set(userIDHeader, "ann")
	return req
}

func TestNewHandler_ReturnsNonNil(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{})

	require.NotNil(t, h)
	assert.NotNil(t, h.engine)
	assert.NotNil(t, h.devices)
	assert.NotNil(t, h.uuids)
}

func TestInit_RegistersProtocolRoutes(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{
		syncFn: func(context.Context, string, string, *models.SyncRequest) (*models.SyncResponse, error) {
			return &models.SyncResponse{Status: models.SyncStatusSuccess}, nil
		},
		estimateFn: func(context.Context, string, string, *models.EstimateRequest) (*models.EstimateResponse, error) {
			return &models.EstimateResponse{}, nil
		},
	})
	router := h.Init()

	tests := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{http.MethodPost, "/api/sync", `{}`, http.StatusOK},
		{http.MethodPost, "/api/itemestimate", `{}`, http.StatusOK},
		{http.MethodGet, "/api/admin/loopdata?device_id=androidc123", "", http.StatusOK},
		{http.MethodGet, "/api/admin/ignored", "", http.StatusOK},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, identifiedRequest(tt.method, tt.target, tt.body))
		assert.Equal(t, tt.want, rr.Code, "%s %s", tt.method, tt.target)
	}
}

func TestInit_UnsupportedMethodAnswers404(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{})
	router := h.Init()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, identifiedRequest(http.MethodGet, "/api/sync", ""))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
