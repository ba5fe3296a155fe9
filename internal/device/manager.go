package device

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/airsyncd/go-airsync/internal/config"
	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/store"
	"github.com/airsyncd/go-airsync/models"
)

// IgnoredMessage records one item the loop detector quarantined for a device.
// Kept for the observability surface, not for protocol decisions.
type IgnoredMessage struct {
	DeviceID  string    `json:"device_id"`
	FolderID  string    `json:"folder_id"`
	ServerID  string    `json:"server_id,omitempty"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// ignoredLogCap bounds the in-memory quarantine log.
const ignoredLogCap = 100

// Manager answers device-scoped questions the sync engine asks on every
// exchange: folder-to-class resolution against the hierarchy cache,
// supported-field declarations, per-folder window sizes and the
// hierarchy-sync-required flag.
//
// Window size announcements are per-exchange data and live in memory;
// everything else is delegated to the device repository.
type Manager struct {
	devices store.DeviceRepository

	defaultWindow int
	maxWindow     int

	mu      sync.Mutex
	windows map[string]int
	ignored []IgnoredMessage

	logger *logger.Logger
}

// NewManager constructs a [Manager] wired to the given device repository and
// populated with window bounds from cfg.
func NewManager(devices store.DeviceRepository, cfg config.Sync, logger *logger.Logger) *Manager {
	return &Manager{
		devices:       devices,
		defaultWindow: cfg.DefaultWindowSize,
		maxWindow:     cfg.MaxWindowSize,
		windows:       make(map[string]int),
		logger:        logger,
	}
}

// RegisterDevice records the device on first contact. Safe to call on every
// request.
func (m *Manager) RegisterDevice(ctx context.Context, deviceID, userID string) error {
	return m.devices.RegisterDevice(ctx, deviceID, userID)
}

// ClassOfFolder resolves a folder id against the device's hierarchy cache.
// [store.ErrNoHierarchyCache] and [store.ErrFolderNotFound] pass through so
// the caller can answer with a hierarchy-changed status.
func (m *Manager) ClassOfFolder(ctx context.Context, deviceID, folderID string) (models.ContentClass, error) {
	folder, err := m.devices.FolderByID(ctx, deviceID, folderID)
	if err != nil {
		return "", fmt.Errorf("resolving folder %q: %w", folderID, err)
	}

	return folder.Class, nil
}

// FolderOfClass resolves the first folder of the given content class, in the
// order folders were announced during hierarchy sync. Used when a client
// addresses a collection by class only.
func (m *Manager) FolderOfClass(ctx context.Context, deviceID string, class models.ContentClass) (string, error) {
	folder, err := m.devices.FolderByClass(ctx, deviceID, class)
	if err != nil {
		return "", fmt.Errorf("resolving class %q: %w", class, err)
	}

	return folder.FolderID, nil
}

// Folders returns the device's hierarchy cache in directory order.
func (m *Manager) Folders(ctx context.Context, deviceID string) ([]store.Folder, error) {
	return m.devices.Folders(ctx, deviceID)
}

// SetFolders replaces the device's hierarchy cache and clears the
// hierarchy-sync-required flag.
func (m *Manager) SetFolders(ctx context.Context, deviceID string, folders []store.Folder) error {
	if err := m.devices.SetFolders(ctx, deviceID, folders); err != nil {
		return err
	}

	return m.devices.SetHierarchySyncRequired(ctx, deviceID, false)
}

// SetSupportedFields records the client's supported-field declaration for
// the folder. An empty declaration is meaningful and stored as such.
func (m *Manager) SetSupportedFields(ctx context.Context, deviceID, folderID string, fields []string) error {
	log := logger.FromContext(ctx)

	if err := m.devices.SetSupportedFields(ctx, deviceID, folderID, fields); err != nil {
		if errors.Is(err, store.ErrFolderNotFound) || errors.Is(err, store.ErrNoHierarchyCache) {
			return err
		}
		log.Err(err).Str("func", "*Manager.SetSupportedFields").Msg("error saving supported fields")
		return err
	}

	return nil
}

// SupportedFields returns the stored declaration for the folder. nil means
// the client never sent one, so every field counts as supported.
func (m *Manager) SupportedFields(ctx context.Context, deviceID, folderID string) ([]string, error) {
	return m.devices.SupportedFields(ctx, deviceID, folderID)
}

// IsHierarchySyncRequired reports whether the device must refresh its folder
// hierarchy before content sync can proceed.
func (m *Manager) IsHierarchySyncRequired(ctx context.Context, deviceID string) (bool, error) {
	return m.devices.HierarchySyncRequired(ctx, deviceID)
}

// SetHierarchySyncRequired flips the per-device hierarchy flag, e.g. when a
// backend reports a folder the cache does not know.
func (m *Manager) SetHierarchySyncRequired(ctx context.Context, deviceID string, required bool) error {
	return m.devices.SetHierarchySyncRequired(ctx, deviceID, required)
}

// SaveFolderState stores the folder's post-exchange snapshot: merged content
// parameters, the promoted sync key and the last-sync timestamp.
func (m *Manager) SaveFolderState(ctx context.Context, deviceID string, state store.FolderState) error {
	return m.devices.SaveFolderState(ctx, deviceID, state)
}

// FolderState loads the folder's saved snapshot.
func (m *Manager) FolderState(ctx context.Context, deviceID, folderID string) (store.FolderState, error) {
	return m.devices.FolderState(ctx, deviceID, folderID)
}

// FolderStates returns every saved folder snapshot for the device.
func (m *Manager) FolderStates(ctx context.Context, deviceID string) ([]store.FolderState, error) {
	return m.devices.FolderStates(ctx, deviceID)
}

// DeleteFolderState drops the folder's saved snapshot, e.g. when the client
// restarts the folder from the initial key.
func (m *Manager) DeleteFolderState(ctx context.Context, deviceID, folderID string) error {
	return m.devices.DeleteFolderState(ctx, deviceID, folderID)
}

// SetWindowSize records the window the client announced for the folder in
// this exchange. Zero removes the announcement.
func (m *Manager) SetWindowSize(deviceID, folderID string, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := deviceID + "/" + folderID
	if size <= 0 {
		delete(m.windows, key)
		return
	}
	m.windows[key] = size
}

// WindowSize returns the effective export window for one folder.
// A replayed exchange exports nothing, a loop-mode folder is narrowed to a
// single item, otherwise the announced window applies capped by the
// configured maximum.
func (m *Manager) WindowSize(deviceID, folderID string, loopActive, replay bool) int {
	if replay {
		return 0
	}
	if loopActive {
		return 1
	}

	m.mu.Lock()
	size, ok := m.windows[deviceID+"/"+folderID]
	m.mu.Unlock()

	if !ok || size <= 0 {
		size = m.defaultWindow
	}
	if size > m.maxWindow {
		size = m.maxWindow
	}

	return size
}

// AnnounceIgnored records a quarantined item in the in-memory log and emits
// a warning. The oldest entry is dropped once the log is full.
func (m *Manager) AnnounceIgnored(deviceID, folderID, serverID, reason string) {
	m.logger.Warn().
		Str("func", "*Manager.AnnounceIgnored").
		Str("device", deviceID).
		Str("folder", folderID).
		Str("server_id", serverID).
		Str("reason", reason).
		Msg("message ignored")

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ignored = append(m.ignored, IgnoredMessage{
		DeviceID:  deviceID,
		FolderID:  folderID,
		ServerID:  serverID,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
	if len(m.ignored) > ignoredLogCap {
		m.ignored = m.ignored[len(m.ignored)-ignoredLogCap:]
	}
}

// IgnoredMessages returns a snapshot of the quarantine log, newest last.
func (m *Manager) IgnoredMessages() []IgnoredMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]IgnoredMessage, len(m.ignored))
	copy(out, m.ignored)
	return out
}
