package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/airsyncd/go-airsync/internal/device"
	"github.com/airsyncd/go-airsync/internal/loopdetect"
	"github.com/airsyncd/go-airsync/internal/store"
	"github.com/airsyncd/go-airsync/models"
)

func TestGetLoopData_RequiresDeviceID(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{})

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/loopdata", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetLoopData_EmptyForUnknownDevice(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{})

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/loopdata?device_id=unseen", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var entries map[string]loopdetect.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	assert.Empty(t, entries)
}

func TestClearLoopData(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{})

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/loopdata?device_id=androidc123&user_id=ann", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestGetIgnoredMessages(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{})
	h.devices.AnnounceIgnored("androidc123", "inbox", "42", "unexportable item")

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/ignored", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var ignored []device.IgnoredMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ignored))
	require.Len(t, ignored, 1)
	assert.Equal(t, "42", ignored[0].ServerID)
}

func TestSetFolders(t *testing.T) {
	h, repo := newTestHandler(t, &stubEngine{})

	folders := []store.Folder{{FolderID: "inbox", Class: models.ClassEmail}}
	gomock.InOrder(
		repo.EXPECT().SetFolders(gomock.Any(), "androidc123", folders).Return(nil),
		repo.EXPECT().SetHierarchySyncRequired(gomock.Any(), "androidc123", false).Return(nil),
	)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, identifiedRequest(http.MethodPost, "/api/folders",
		`[{"folder_id":"inbox","content_class":"Email"}]`))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestSetFolders_EmptyBody(t *testing.T) {
	h, _ := newTestHandler(t, &stubEngine{})

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, identifiedRequest(http.MethodPost, "/api/folders", `[]`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetFolders(t *testing.T) {
	h, repo := newTestHandler(t, &stubEngine{})
	repo.EXPECT().Folders(gomock.Any(), "androidc123").Return([]store.Folder{
		{FolderID: "inbox", Class: models.ClassEmail},
	}, nil)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, identifiedRequest(http.MethodGet, "/api/folders", ""))

	require.Equal(t, http.StatusOK, rr.Code)

	var folders []store.Folder
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &folders))
	require.Len(t, folders, 1)
	assert.Equal(t, "inbox", folders[0].FolderID)
}

func TestGetFolders_NoHierarchyCache(t *testing.T) {
	h, repo := newTestHandler(t, &stubEngine{})
	repo.EXPECT().Folders(gomock.Any(), "androidc123").Return(nil, store.ErrNoHierarchyCache)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, identifiedRequest(http.MethodGet, "/api/folders", ""))

	assert.Equal(t, http.StatusConflict, rr.Code)
}
