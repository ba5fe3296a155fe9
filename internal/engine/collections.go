package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/airsyncd/go-airsync/internal/backend"
	"github.com/airsyncd/go-airsync/internal/device"
	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/store"
	"github.com/airsyncd/go-airsync/internal/synckey"
	"github.com/airsyncd/go-airsync/models"
)

// Collection is the per-folder working set of one exchange: the request
// parameters merged with persisted defaults, the sync key lifecycle, the
// opaque backend state and whatever the state machine accumulates while
// processing the folder.
type Collection struct {
	FolderID string
	Class    models.ContentClass

	Params     *models.ContentParams
	Keys       synckey.State
	State      []byte
	GetChanges bool
	Supported  []string
	Commands   []models.SyncCommand

	// FailState holds the consumed replay snapshot when the client
	// retransmitted an already-processed exchange.
	FailState *models.FailState
}

// CollectionSet owns every collection of one protocol exchange plus the
// cross-cutting request parameters: a global window size applying to all
// collections unless overridden per folder, and the requested lifetime for
// blocking waits.
type CollectionSet struct {
	deviceID string
	userID   string

	collections []*Collection
	index       map[string]*Collection
	annotations map[string]map[string]any

	windowSize int
	lifetime   time.Duration

	changed map[string]int

	states    store.StateRepository
	devices   *device.Manager
	connector backend.Connector
	logger    *logger.Logger
}

// NewCollectionSet constructs an empty set for one device exchange.
func NewCollectionSet(deviceID, userID string, states store.StateRepository, devices *device.Manager, connector backend.Connector, logger *logger.Logger) *CollectionSet {
	return &CollectionSet{
		deviceID:    deviceID,
		userID:      userID,
		index:       make(map[string]*Collection),
		annotations: make(map[string]map[string]any),
		states:      states,
		devices:     devices,
		connector:   connector,
		logger:      logger,
	}
}

// Add appends a collection in request order. A collection with a folder id
// already present replaces the earlier one.
func (s *CollectionSet) Add(c *Collection) {
	if old, ok := s.index[c.FolderID]; ok {
		for i, existing := range s.collections {
			if existing == old {
				s.collections[i] = c
				break
			}
		}
	} else {
		s.collections = append(s.collections, c)
	}
	s.index[c.FolderID] = c
}

// Collection returns the collection for a folder id, or nil.
func (s *CollectionSet) Collection(folderID string) *Collection {
	return s.index[folderID]
}

// Collections returns the collections in processing order: request order
// first, persisted folders appended in directory order.
func (s *CollectionSet) Collections() []*Collection {
	return s.collections
}

// SetWindowSize records the request's global window size. It overrides any
// per-folder value transiently, without marking the folder parameters as
// changed.
func (s *CollectionSet) SetWindowSize(n int) { s.windowSize = n }

// WindowSize returns the global window size, zero when the request sent none.
func (s *CollectionSet) WindowSize() int { return s.windowSize }

// SetLifetime records the requested long-poll lifetime.
func (s *CollectionSet) SetLifetime(d time.Duration) { s.lifetime = d }

// Lifetime returns the requested long-poll lifetime, zero for a plain sync.
func (s *CollectionSet) Lifetime() time.Duration { return s.lifetime }

// Annotate attaches a free-form value to a folder under a key. Annotations
// carry per-collection working data that does not belong on the wire-facing
// parameter object.
func (s *CollectionSet) Annotate(folderID, key string, value any) {
	m, ok := s.annotations[folderID]
	if !ok {
		m = make(map[string]any)
		s.annotations[folderID] = m
	}
	m[key] = value
}

// Annotation reads a value attached via [CollectionSet.Annotate].
func (s *CollectionSet) Annotation(folderID, key string) (any, bool) {
	m, ok := s.annotations[folderID]
	if !ok {
		return nil, false
	}
	value, ok := m[key]
	return value, ok
}

// LoadPersisted fills the set with every folder the device has previously
// synchronized that is absent from the current request. Used for empty and
// partial sync, where the client expects the server to resynchronize
// previously active folders without re-listing them.
//
// When overwrite is set, persisted parameters replace those of collections
// already in the set. When loadState is set, each folder's opaque state is
// loaded for its saved key; a key that no longer resolves surfaces
// [ErrStateNotFound]. When checkPermissions is set, each folder is verified
// against the hierarchy cache; a missing folder surfaces
// [ErrFolderSetChanged].
func (s *CollectionSet) LoadPersisted(ctx context.Context, overwrite, loadState, checkPermissions bool) error {
	log := logger.FromContext(ctx)

	saved, err := s.devices.FolderStates(ctx, s.deviceID)
	if err != nil {
		return fmt.Errorf("loading persisted folders: %w", err)
	}

	for _, fs := range saved {
		if _, requested := s.index[fs.FolderID]; requested && !overwrite {
			continue
		}

		if checkPermissions {
			if _, err := s.devices.ClassOfFolder(ctx, s.deviceID, fs.FolderID); err != nil {
				if errors.Is(err, store.ErrFolderNotFound) || errors.Is(err, store.ErrNoHierarchyCache) {
					return fmt.Errorf("folder %q: %w", fs.FolderID, ErrFolderSetChanged)
				}
				return err
			}
		}

		params := fs.Params
		c := &Collection{
			FolderID:   fs.FolderID,
			Class:      fs.Class,
			Params:     &params,
			GetChanges: true,
		}

		if fs.SyncKey != "" && fs.SyncKey != synckey.InitialToken {
			key, err := synckey.Parse(fs.SyncKey)
			if err != nil {
				log.Err(err).Str("folder", fs.FolderID).Msg("persisted sync key is malformed, skipping folder")
				continue
			}
			if err := c.Keys.AdoptCurrent(fs.SyncKey); err != nil {
				log.Err(err).Str("folder", fs.FolderID).Msg("persisted sync key rejected, skipping folder")
				continue
			}

			if loadState {
				state, err := s.states.GetSyncState(ctx, s.deviceID, fs.FolderID, key)
				if err != nil {
					if errors.Is(err, store.ErrStateNotFound) {
						return fmt.Errorf("folder %q key %q: %w", fs.FolderID, fs.SyncKey, ErrStateNotFound)
					}
					return err
				}
				c.State = state
			}
		}

		s.Add(c)
	}

	return nil
}

// CountChanges asks each collection's backend exporter once for its
// outstanding change count and returns the total. The per-folder snapshot is
// available via [CollectionSet.ChangedFolderIDs].
func (s *CollectionSet) CountChanges(ctx context.Context) (int, error) {
	changed := make(map[string]int, len(s.collections))
	total := 0

	for _, c := range s.collections {
		count, err := s.countFolderChanges(c)
		if err != nil {
			return 0, fmt.Errorf("counting changes for folder %q: %w", c.FolderID, err)
		}
		if count > 0 {
			changed[c.FolderID] = count
		}
		total += count
	}

	s.changed = changed
	return total, nil
}

func (s *CollectionSet) countFolderChanges(c *Collection) (int, error) {
	exporter, err := s.connector.Exporter(c.FolderID)
	if err != nil {
		return 0, err
	}
	if err := exporter.Configure(c.State); err != nil {
		return 0, err
	}
	if err := exporter.ConfigureContentParameters(c.Params); err != nil {
		return 0, err
	}

	return exporter.ChangeCount(), nil
}

// CheckForChanges blocks until any collection reports outstanding changes,
// the lifetime elapses or ctx is cancelled. It re-checks at the given
// interval and never polls faster. No lock is held while waiting, so an
// abandoned client connection only stops the loop.
func (s *CollectionSet) CheckForChanges(ctx context.Context, lifetime, interval time.Duration) (bool, error) {
	deadline := time.NewTimer(lifetime)
	defer deadline.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		total, err := s.CountChanges(ctx)
		if err != nil {
			return false, err
		}
		if total > 0 {
			return true, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline.C:
			return false, nil
		case <-ticker.C:
		}
	}
}

// ChangedFolderIDs returns the per-folder change counts observed by the last
// CountChanges or CheckForChanges invocation.
func (s *CollectionSet) ChangedFolderIDs() map[string]int {
	out := make(map[string]int, len(s.changed))
	for id, count := range s.changed {
		out[id] = count
	}
	return out
}
