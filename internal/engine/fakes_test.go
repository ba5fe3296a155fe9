package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/airsyncd/go-airsync/internal/backend"
	"github.com/airsyncd/go-airsync/internal/config"
	"github.com/airsyncd/go-airsync/internal/device"
	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/loopdetect"
	"github.com/airsyncd/go-airsync/internal/store"
	"github.com/airsyncd/go-airsync/internal/synckey"
	"github.com/airsyncd/go-airsync/models"
)

// fakeStore keeps both repositories in maps so engine tests run without a
// database. Behavior mirrors the SQL repositories: fail states are consumed
// at most once, an unknown device requires hierarchy sync.
type fakeStore struct {
	mu sync.Mutex

	syncStates   map[string][]byte
	failStates   map[string]*models.FailState
	users        map[string]string
	hierarchy    map[string]bool
	folders      map[string][]store.Folder
	supported    map[string][]string
	folderStates map[string]store.FolderState
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		syncStates:   make(map[string][]byte),
		failStates:   make(map[string]*models.FailState),
		users:        make(map[string]string),
		hierarchy:    make(map[string]bool),
		folders:      make(map[string][]store.Folder),
		supported:    make(map[string][]string),
		folderStates: make(map[string]store.FolderState),
	}
}

func stateKey(deviceID, folderID string, key synckey.Key) string {
	return fmt.Sprintf("%s|%s|%s|%d", deviceID, folderID, key.UUID, key.Counter)
}

func folderKey(deviceID, folderID string) string {
	return deviceID + "|" + folderID
}

func (f *fakeStore) GetSyncState(_ context.Context, deviceID, folderID string, key synckey.Key) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state, ok := f.syncStates[stateKey(deviceID, folderID, key)]
	if !ok {
		return nil, store.ErrStateNotFound
	}
	return state, nil
}

func (f *fakeStore) SetSyncState(_ context.Context, deviceID, folderID string, key synckey.Key, state []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncStates[stateKey(deviceID, folderID, key)] = state
	return nil
}

func (f *fakeStore) ClearSyncStates(_ context.Context, deviceID, folderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := deviceID + "|" + folderID + "|"
	for k := range f.syncStates {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(f.syncStates, k)
		}
	}
	delete(f.failStates, folderKey(deviceID, folderID))
	return nil
}

func (f *fakeStore) GetFailState(_ context.Context, deviceID, folderID string, key synckey.Key) (*models.FailState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fs, ok := f.failStates[folderKey(deviceID, folderID)]
	if !ok || fs.UUID != key.UUID.String() || fs.Counter != key.Counter {
		return nil, nil
	}
	delete(f.failStates, folderKey(deviceID, folderID))
	return fs, nil
}

func (f *fakeStore) SetFailState(_ context.Context, deviceID, folderID string, state *models.FailState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStates[folderKey(deviceID, folderID)] = state
	return nil
}

func (f *fakeStore) ClearFailState(_ context.Context, deviceID, folderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failStates, folderKey(deviceID, folderID))
	return nil
}

func (f *fakeStore) PurgeSyncStates(context.Context, time.Time) (int64, error) { return 0, nil }
func (f *fakeStore) PurgeFailStates(context.Context, time.Time) (int64, error) { return 0, nil }

func (f *fakeStore) RegisterDevice(_ context.Context, deviceID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[deviceID]; !ok {
		f.users[deviceID] = userID
		f.hierarchy[deviceID] = true
	}
	return nil
}

func (f *fakeStore) SetHierarchySyncRequired(_ context.Context, deviceID string, required bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hierarchy[deviceID] = required
	return nil
}

func (f *fakeStore) HierarchySyncRequired(_ context.Context, deviceID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	required, ok := f.hierarchy[deviceID]
	if !ok {
		return true, nil
	}
	return required, nil
}

func (f *fakeStore) SetFolders(_ context.Context, deviceID string, folders []store.Folder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders[deviceID] = folders
	return nil
}

func (f *fakeStore) Folders(_ context.Context, deviceID string) ([]store.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	folders := f.folders[deviceID]
	if len(folders) == 0 {
		return nil, store.ErrNoHierarchyCache
	}
	return folders, nil
}

func (f *fakeStore) FolderByClass(_ context.Context, deviceID string, class models.ContentClass) (store.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, folder := range f.folders[deviceID] {
		if folder.Class == class {
			return folder, nil
		}
	}
	return store.Folder{}, store.ErrFolderNotFound
}

func (f *fakeStore) FolderByID(_ context.Context, deviceID, folderID string) (store.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, folder := range f.folders[deviceID] {
		if folder.FolderID == folderID {
			return folder, nil
		}
	}
	return store.Folder{}, store.ErrFolderNotFound
}

func (f *fakeStore) SetSupportedFields(_ context.Context, deviceID, folderID string, fields []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.supported[folderKey(deviceID, folderID)] = fields
	return nil
}

func (f *fakeStore) SupportedFields(_ context.Context, deviceID, folderID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.supported[folderKey(deviceID, folderID)], nil
}

func (f *fakeStore) SaveFolderState(_ context.Context, deviceID string, state store.FolderState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folderStates[folderKey(deviceID, state.FolderID)] = state
	return nil
}

func (f *fakeStore) FolderState(_ context.Context, deviceID, folderID string) (store.FolderState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state, ok := f.folderStates[folderKey(deviceID, folderID)]
	if !ok {
		return store.FolderState{}, store.ErrFolderParamsNotFound
	}
	return state, nil
}

func (f *fakeStore) FolderStates(_ context.Context, deviceID string) ([]store.FolderState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Directory order, like the SQL repository: hierarchy cache position
	// first, folders missing from the cache last by id.
	position := make(map[string]int)
	for i, folder := range f.folders[deviceID] {
		position[folder.FolderID] = i
	}

	prefix := deviceID + "|"
	var out []store.FolderState
	for k, state := range f.folderStates {
		if strings.HasPrefix(k, prefix) {
			out = append(out, state)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		pi, iKnown := position[out[i].FolderID]
		pj, jKnown := position[out[j].FolderID]
		if iKnown != jKnown {
			return iKnown
		}
		if pi != pj {
			return pi < pj
		}
		return out[i].FolderID < out[j].FolderID
	})
	return out, nil
}

func (f *fakeStore) DeleteFolderState(_ context.Context, deviceID, folderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.folderStates, folderKey(deviceID, folderID))
	return nil
}

type testEngine struct {
	orch *Orchestrator
	mem  *backend.Memory
	repo *fakeStore
	mgr  *device.Manager
}

func testSyncConfig() config.Sync {
	return config.Sync{
		PingInterval:      5 * time.Millisecond,
		HeartbeatMin:      time.Minute,
		HeartbeatMax:      59 * time.Minute,
		DefaultWindowSize: 100,
		MaxWindowSize:     512,
		DefaultConflict:   models.ConflictServerWins,
	}
}

// newTestEngine wires an orchestrator against the in-memory backend and the
// map-backed repositories, with one email folder already announced for the
// device "dev1" of user "ann".
func newTestEngine(t *testing.T, cfg config.Sync) *testEngine {
	t.Helper()

	repo := newFakeStore()
	mem := backend.NewMemory()
	mem.CreateFolder("inbox", models.ClassEmail)

	cache, err := loopdetect.OpenCache(filepath.Join(t.TempDir(), "loopdetect.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	mgr := device.NewManager(repo, cfg, logger.Nop())
	require.NoError(t, mgr.RegisterDevice(context.Background(), "dev1", "ann"))
	require.NoError(t, mgr.SetFolders(context.Background(), "dev1", []store.Folder{
		{FolderID: "inbox", Class: models.ClassEmail},
	}))

	return &testEngine{
		orch: NewOrchestrator(repo, mgr, mem, cache, cfg, logger.Nop()),
		mem:  mem,
		repo: repo,
		mgr:  mgr,
	}
}

// syncFolder issues one single-folder Sync request and returns the folder
// reply, requiring an overall success status.
func (e *testEngine) syncFolder(t *testing.T, key string, mut func(*models.SyncFolder)) models.SyncFolderResponse {
	t.Helper()

	folder := models.SyncFolder{FolderID: "inbox", SyncKey: &key}
	if mut != nil {
		mut(&folder)
	}
	resp, err := e.orch.HandleSync(context.Background(), "dev1", "ann", &models.SyncRequest{
		Folders: []models.SyncFolder{folder},
	})
	require.NoError(t, err)
	require.Equal(t, models.SyncStatusSuccess, resp.Status)
	require.Len(t, resp.Folders, 1)
	return resp.Folders[0]
}

func boolPtr(b bool) *bool { return &b }
