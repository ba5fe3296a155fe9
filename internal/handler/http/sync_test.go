package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsyncd/go-airsync/models"
)

func TestSync_Success(t *testing.T) {
	want := &models.SyncResponse{
		Status: models.SyncStatusSuccess,
		Folders: []models.SyncFolderResponse{{
			FolderID:     "inbox",
			ContentClass: models.ClassEmail,
			SyncKey:      "{0195a8f2-1111-7aaa-8bbb-0123456789ab}1",
			Status:       models.SyncStatusSuccess,
		}},
	}

	var gotDevice, gotUser string
	h, _ := newTestHandler(t, &stubEngine{
		syncFn: func(_ context.Context, deviceID, userID string, req *models.SyncRequest) (*models.SyncResponse, error) {
			gotDevice, gotUser = deviceID, userID
			require.Len(t, req.Folders, 1)
			return want, nil
		},
	})

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, identifiedRequest(http.MethodPost, "/api/sync",
		`{"folders":[{"folder_id":"inbox","sync_key":"0"}]}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "androidc123", gotDevice)
	assert.Equal(t, "ann", gotUser)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got models.SyncResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, *want, got)
}

func TestSync_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{})

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, identifiedRequest(http.MethodPost, "/api/sync", `{not json`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSync_MissingIdentification(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{})

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSync_AbandonedWaitMapsToRequestTimeout(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{
		syncFn: func(context.Context, string, string, *models.SyncRequest) (*models.SyncResponse, error) {
			return nil, context.Canceled
		},
	})

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, identifiedRequest(http.MethodPost, "/api/sync", `{}`))

	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
}

func TestItemEstimate_Success(t *testing.T) {
	estimate := 7
	h, _ := newTestHandler(t, &stubEngine{
		estimateFn: func(_ context.Context, deviceID, _ string, req *models.EstimateRequest) (*models.EstimateResponse, error) {
			require.Equal(t, "androidc123", deviceID)
			require.Len(t, req.Folders, 1)
			return &models.EstimateResponse{
				Responses: []models.EstimateFolderResponse{{
					Status:   models.EstimateStatusSuccess,
					FolderID: "inbox",
					Estimate: &estimate,
				}},
			}, nil
		},
	})

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, identifiedRequest(http.MethodPost, "/api/itemestimate",
		`{"folders":[{"folder_id":"inbox","sync_key":"{0195a8f2-1111-7aaa-8bbb-0123456789ab}1"}]}`))

	require.Equal(t, http.StatusOK, rr.Code)

	var got models.EstimateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Responses, 1)
	require.NotNil(t, got.Responses[0].Estimate)
	assert.Equal(t, 7, *got.Responses[0].Estimate)
}
