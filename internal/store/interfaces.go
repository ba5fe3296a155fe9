package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/airsyncd/go-airsync/internal/synckey"
	"github.com/airsyncd/go-airsync/models"
)

// Folder is one entry of a device's folder hierarchy cache: the mapping the
// server keeps between folder ids and content classes, in the order the
// folders were announced during hierarchy sync.
type Folder struct {
	FolderID string              `json:"folder_id"`
	Class    models.ContentClass `json:"content_class"`
	Position int                 `json:"position"`
}

// FolderState is the per-folder synchronization snapshot saved after every
// successful exchange. It lets a later request that omits the full option set
// resume with the parameters and sync key of the previous one.
type FolderState struct {
	FolderID string               `json:"folder_id"`
	Class    models.ContentClass  `json:"content_class"`
	Params   models.ContentParams `json:"params"`
	SyncKey  string               `json:"sync_key"`
	LastSync time.Time            `json:"last_sync"`
}

// StateRepository persists opaque synchronization state blobs and the
// fail states used for idempotent replay of interrupted exchanges.
//
// Sync states are keyed by (device, folder, uuid, counter). A Set with a key
// that already exists overwrites the stored blob: a replayed exchange must be
// able to re-persist the same state it produced the first time.
type StateRepository interface {
	GetSyncState(ctx context.Context, deviceID, folderID string, key synckey.Key) ([]byte, error)
	SetSyncState(ctx context.Context, deviceID, folderID string, key synckey.Key, state []byte) error

	// ClearSyncStates removes every stored state for the folder. Used when a
	// client restarts the folder with an initial sync key.
	ClearSyncStates(ctx context.Context, deviceID, folderID string) error

	// GetFailState atomically reads and deletes the fail state stored under
	// the given key, so it can be consumed at most once. (nil, nil) is
	// returned when no fail state exists.
	GetFailState(ctx context.Context, deviceID, folderID string, key synckey.Key) (*models.FailState, error)
	SetFailState(ctx context.Context, deviceID, folderID string, state *models.FailState) error
	ClearFailState(ctx context.Context, deviceID, folderID string) error

	// PurgeSyncStates deletes states created before cutoff, keeping the
	// highest counter per (device, folder, uuid) so an idle device can still
	// resume. It returns the number of rows removed.
	PurgeSyncStates(ctx context.Context, cutoff time.Time) (int64, error)
	PurgeFailStates(ctx context.Context, cutoff time.Time) (int64, error)
}

// DeviceRepository persists per-device data: the folder hierarchy cache,
// supported-field declarations and the saved per-folder content parameters.
type DeviceRepository interface {
	RegisterDevice(ctx context.Context, deviceID, userID string) error
	SetHierarchySyncRequired(ctx context.Context, deviceID string, required bool) error
	HierarchySyncRequired(ctx context.Context, deviceID string) (bool, error)

	SetFolders(ctx context.Context, deviceID string, folders []Folder) error
	Folders(ctx context.Context, deviceID string) ([]Folder, error)
	FolderByClass(ctx context.Context, deviceID string, class models.ContentClass) (Folder, error)
	FolderByID(ctx context.Context, deviceID, folderID string) (Folder, error)

	SetSupportedFields(ctx context.Context, deviceID, folderID string, fields []string) error
	SupportedFields(ctx context.Context, deviceID, folderID string) ([]string, error)

	SaveFolderState(ctx context.Context, deviceID string, state FolderState) error
	FolderState(ctx context.Context, deviceID, folderID string) (FolderState, error)
	FolderStates(ctx context.Context, deviceID string) ([]FolderState, error)
	DeleteFolderState(ctx context.Context, deviceID, folderID string) error
}
