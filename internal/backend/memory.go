package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/airsyncd/go-airsync/models"
)

// Memory is an in-process backend keeping all items in memory. It backs
// the engine tests and the standalone demo server; a production
// deployment plugs a real adapter into the same interfaces.
//
// Every mutation of a folder appends to a revision log; the opaque sync
// state exchanged with the engine is simply the highest revision the
// client has acknowledged.
type Memory struct {
	mu      sync.Mutex
	folders map[string]*memFolder
	waste   string
}

type memFolder struct {
	id    string
	class models.ContentClass

	rev    int64
	items  map[string]*memItem
	log    []memChange
	broken map[string]bool
}

type memItem struct {
	msg        models.Message
	rev        int64
	createdRev int64
}

type memChange struct {
	rev      int64
	serverID string
	deleted  bool
}

// memState is the opaque state blob of this backend.
type memState struct {
	Rev int64 `json:"rev"`
}

func decodeState(state []byte) (memState, error) {
	if len(state) == 0 {
		return memState{}, nil
	}
	var s memState
	if err := json.Unmarshal(state, &s); err != nil {
		return memState{}, fmt.Errorf("decoding backend state: %w", err)
	}
	return s, nil
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{folders: make(map[string]*memFolder)}
}

// CreateFolder registers a folder for the given content class.
func (m *Memory) CreateFolder(folderID string, class models.ContentClass) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.folders[folderID]; !ok {
		m.folders[folderID] = &memFolder{
			id:     folderID,
			class:  class,
			items:  make(map[string]*memItem),
			broken: make(map[string]bool),
		}
	}
}

// SetWasteBasket marks folderID as the deletion target for
// deletes-as-moves.
func (m *Memory) SetWasteBasket(folderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waste = folderID
}

// AddItem creates an item server-side and returns its id. Used by tests
// and the demo data seeder to produce outstanding changes.
func (m *Memory) AddItem(folderID string, msg models.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.folders[folderID]
	if !ok {
		return "", fmt.Errorf("unknown folder %q", folderID)
	}
	return f.put("", msg), nil
}

// UpdateItem modifies an existing item server-side.
func (m *Memory) UpdateItem(folderID, serverID string, msg models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.folders[folderID]
	if !ok {
		return fmt.Errorf("unknown folder %q", folderID)
	}
	if _, ok := f.items[serverID]; !ok {
		return fmt.Errorf("unknown item %q", serverID)
	}
	f.put(serverID, msg)
	return nil
}

// DeleteItem removes an item server-side.
func (m *Memory) DeleteItem(folderID, serverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.folders[folderID]
	if !ok {
		return fmt.Errorf("unknown folder %q", folderID)
	}
	f.remove(serverID)
	return nil
}

// BreakItem marks an item as unexportable: the exporter will raise a
// BrokenObjectError instead of streaming it.
func (m *Memory) BreakItem(folderID, serverID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.folders[folderID]; ok {
		f.broken[serverID] = true
	}
}

// Item returns a copy of an item, for assertions and fetches.
func (m *Memory) Item(folderID, serverID string) (models.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.folders[folderID]
	if !ok {
		return models.Message{}, false
	}
	it, ok := f.items[serverID]
	if !ok {
		return models.Message{}, false
	}
	return it.msg, true
}

// ItemCount returns how many live items a folder holds.
func (m *Memory) ItemCount(folderID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.folders[folderID]; ok {
		return len(f.items)
	}
	return 0
}

// put inserts or updates an item; caller holds m.mu.
func (f *memFolder) put(serverID string, msg models.Message) string {
	f.rev++
	if serverID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			serverID = uuid.NewString()
		} else {
			serverID = id.String()
		}
	}

	created := f.rev
	if prev, ok := f.items[serverID]; ok {
		created = prev.createdRev
	}

	msg.ServerID = serverID
	msg.Class = f.class
	f.items[serverID] = &memItem{msg: msg, rev: f.rev, createdRev: created}
	f.log = append(f.log, memChange{rev: f.rev, serverID: serverID})
	return serverID
}

// remove tombstones an item; caller holds m.mu.
func (f *memFolder) remove(serverID string) {
	if _, ok := f.items[serverID]; !ok {
		return
	}
	f.rev++
	delete(f.items, serverID)
	delete(f.broken, serverID)
	f.log = append(f.log, memChange{rev: f.rev, serverID: serverID, deleted: true})
}

// pendingSince compresses the revision log after rev into one record
// per item, ordered by revision; caller holds m.mu.
func (f *memFolder) pendingSince(rev int64) []models.ChangeRecord {
	latest := make(map[string]memChange)
	for _, c := range f.log {
		if c.rev > rev {
			latest[c.serverID] = c
		}
	}

	changes := make([]memChange, 0, len(latest))
	for _, c := range latest {
		changes = append(changes, c)
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].rev < changes[j].rev })

	records := make([]models.ChangeRecord, 0, len(changes))
	for _, c := range changes {
		if c.deleted {
			records = append(records, models.ChangeRecord{Type: models.CommandRemove, ServerID: c.serverID})
			continue
		}

		it, ok := f.items[c.serverID]
		if !ok {
			continue
		}
		typ := models.CommandModify
		if it.createdRev > rev {
			typ = models.CommandAdd
		}
		msg := it.msg
		records = append(records, models.ChangeRecord{Type: typ, ServerID: c.serverID, Data: &msg})
	}
	return records
}

// revOf returns the revision a change record corresponds to; caller
// holds m.mu.
func (f *memFolder) revOf(serverID string) int64 {
	for i := len(f.log) - 1; i >= 0; i-- {
		if f.log[i].serverID == serverID {
			return f.log[i].rev
		}
	}
	return 0
}

// Connector implementation.

// Setup implements Connector. The in-memory backend owns all folders,
// so any store designation is accepted.
func (m *Memory) Setup(store string) error { return nil }

// WasteBasket implements Connector.
func (m *Memory) WasteBasket(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waste, nil
}

// Importer implements Connector.
func (m *Memory) Importer(folderID string) (Importer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.folders[folderID]
	if !ok {
		return nil, NewStatusError(models.SyncStatusHierarchyChanged, "no importer for unknown folder %q", folderID)
	}
	return &memImporter{backend: m, folder: f}, nil
}

// Exporter implements Connector.
func (m *Memory) Exporter(folderID string) (Exporter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.folders[folderID]
	if !ok {
		return nil, NewStatusError(models.SyncStatusHierarchyChanged, "no exporter for unknown folder %q", folderID)
	}
	return &memExporter{backend: m, folder: f}, nil
}

// Fetch implements Connector.
func (m *Memory) Fetch(ctx context.Context, folderID, serverID string, params *models.ContentParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.folders[folderID]
	if !ok {
		return nil, NewStatusError(models.SyncStatusHierarchyChanged, "fetch from unknown folder %q", folderID)
	}
	it, ok := f.items[serverID]
	if !ok {
		return nil, NewStatusError(models.SyncStatusObjectNotFound, "item %q not found", serverID)
	}
	msg := it.msg
	return &msg, nil
}

// Importer implementation.

type memImporter struct {
	backend *Memory
	folder  *memFolder
	policy  models.ConflictPolicy

	state     memState
	seenRev   int64
	conflicts map[string]bool
}

func (i *memImporter) Configure(state []byte, policy models.ConflictPolicy) error {
	s, err := decodeState(state)
	if err != nil {
		return NewStatusError(models.SyncStatusInvalidSyncKey, "importer state unreadable: %v", err)
	}
	i.state = s
	i.seenRev = s.Rev
	i.policy = policy
	return nil
}

func (i *memImporter) LoadConflicts(ctx context.Context, params *models.ContentParams, state []byte) error {
	s, err := decodeState(state)
	if err != nil {
		return NewStatusError(models.SyncStatusServerError, "conflict state unreadable: %v", err)
	}

	i.backend.mu.Lock()
	defer i.backend.mu.Unlock()

	i.conflicts = make(map[string]bool)
	for _, c := range i.folder.log {
		if c.rev > s.Rev {
			i.conflicts[c.serverID] = true
		}
	}
	return nil
}

func (i *memImporter) ImportMessageChange(ctx context.Context, serverID string, msg *models.Message) (string, error) {
	if msg == nil {
		return "", NewStatusError(models.SyncStatusConversionError, "no message content")
	}

	i.backend.mu.Lock()
	defer i.backend.mu.Unlock()

	if serverID != "" {
		if _, ok := i.folder.items[serverID]; !ok {
			return "", NewStatusError(models.SyncStatusObjectNotFound, "item %q not found", serverID)
		}
		if i.conflicts[serverID] && i.policy == models.ConflictServerWins {
			return "", NewStatusError(models.SyncStatusConflict, "item %q changed on the server", serverID)
		}
	}

	id := i.folder.put(serverID, *msg)
	i.seenRev = i.folder.rev
	return id, nil
}

func (i *memImporter) ImportMessageReadFlag(ctx context.Context, serverID string, read bool) error {
	i.backend.mu.Lock()
	defer i.backend.mu.Unlock()

	it, ok := i.folder.items[serverID]
	if !ok {
		return NewStatusError(models.SyncStatusObjectNotFound, "item %q not found", serverID)
	}

	msg := it.msg
	msg.Read = &read
	i.folder.put(serverID, msg)
	i.seenRev = i.folder.rev
	return nil
}

func (i *memImporter) ImportMessageDeletion(ctx context.Context, serverID string) error {
	i.backend.mu.Lock()
	defer i.backend.mu.Unlock()

	if _, ok := i.folder.items[serverID]; !ok {
		return NewStatusError(models.SyncStatusObjectNotFound, "item %q not found", serverID)
	}
	i.folder.remove(serverID)
	i.seenRev = i.folder.rev
	return nil
}

func (i *memImporter) ImportMessageMove(ctx context.Context, serverID, dstFolderID string) error {
	i.backend.mu.Lock()
	defer i.backend.mu.Unlock()

	it, ok := i.folder.items[serverID]
	if !ok {
		return NewStatusError(models.SyncStatusObjectNotFound, "item %q not found", serverID)
	}
	dst, ok := i.backend.folders[dstFolderID]
	if !ok {
		return NewStatusError(models.SyncStatusServerError, "move target %q not found", dstFolderID)
	}

	msg := it.msg
	i.folder.remove(serverID)
	dst.put(serverID, msg)
	i.seenRev = i.folder.rev
	return nil
}

func (i *memImporter) State() ([]byte, error) {
	return json.Marshal(memState{Rev: i.seenRev})
}

// Exporter implementation.

type memExporter struct {
	backend *Memory
	folder  *memFolder

	state   memState
	params  *models.ContentParams
	sink    ChangeSink
	pending []models.ChangeRecord
	next    int
	lastRev int64
	primed  bool
}

func (e *memExporter) Configure(state []byte) error {
	s, err := decodeState(state)
	if err != nil {
		return NewStatusError(models.SyncStatusInvalidSyncKey, "exporter state unreadable: %v", err)
	}
	e.state = s
	e.lastRev = s.Rev
	e.primed = false
	return nil
}

func (e *memExporter) ConfigureContentParameters(params *models.ContentParams) error {
	e.params = params
	return nil
}

func (e *memExporter) InitializeExporter(sink ChangeSink) error {
	e.sink = sink
	e.prime()
	return nil
}

// prime snapshots the outstanding changes once per configuration.
func (e *memExporter) prime() {
	if e.primed {
		return
	}
	e.backend.mu.Lock()
	e.pending = e.folder.pendingSince(e.state.Rev)
	e.backend.mu.Unlock()
	e.next = 0
	e.primed = true
}

func (e *memExporter) ChangeCount() int {
	e.prime()
	return len(e.pending)
}

func (e *memExporter) Synchronize(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	e.prime()
	if e.next >= len(e.pending) {
		return false, nil
	}

	rec := e.pending[e.next]
	e.next++

	e.backend.mu.Lock()
	e.lastRev = e.folder.revOf(rec.ServerID)
	broken := e.folder.broken[rec.ServerID]
	e.backend.mu.Unlock()

	if broken {
		return true, &BrokenObjectError{ServerID: rec.ServerID, Err: fmt.Errorf("item marked broken")}
	}

	if e.sink == nil {
		return false, NewStatusError(models.SyncStatusServerError, "exporter has no sink")
	}
	if err := e.sink.Change(rec); err != nil {
		return false, err
	}
	return true, nil
}

func (e *memExporter) State() ([]byte, error) {
	return json.Marshal(memState{Rev: e.lastRev})
}
