// Package backend defines the contract between the synchronization
// engine and the data-store adapters that apply client changes to, and
// read server changes from, an actual item store. The engine treats
// backend state as an opaque blob; it only moves blobs between the
// state store and the adapters.
package backend

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_mock.go -package=mock

import (
	"context"

	"github.com/airsyncd/go-airsync/models"
)

// Importer applies client-submitted changes to the data store. All
// methods may fail with a *StatusError carrying a protocol status code;
// such failures are per-operation, not request-fatal, except during
// Configure.
type Importer interface {
	// Configure prepares the importer with the opaque state of the
	// collection's current sync key and the conflict policy to apply.
	Configure(state []byte, policy models.ConflictPolicy) error

	// LoadConflicts lets the importer detect concurrent server-side
	// edits for the given state before the first change is applied.
	LoadConflicts(ctx context.Context, params *models.ContentParams, state []byte) error

	// ImportMessageChange creates (serverID == "") or updates an item
	// and returns its server id.
	ImportMessageChange(ctx context.Context, serverID string, msg *models.Message) (string, error)

	// ImportMessageReadFlag updates only the read flag of an item.
	ImportMessageReadFlag(ctx context.Context, serverID string, read bool) error

	// ImportMessageDeletion removes an item.
	ImportMessageDeletion(ctx context.Context, serverID string) error

	// ImportMessageMove moves an item to another folder.
	ImportMessageMove(ctx context.Context, serverID, dstFolderID string) error

	// State returns the opaque state reflecting all imported changes.
	State() ([]byte, error)
}

// ChangeSink consumes the outgoing change records produced by an
// Exporter. It decouples the export iteration from the reply encoding:
// the engine owns the sink, the wire layer never sees the exporter.
type ChangeSink interface {
	Change(rec models.ChangeRecord) error
}

// Exporter streams outstanding server changes for one collection.
type Exporter interface {
	// Configure prepares the exporter with the opaque state the client
	// last acknowledged (possibly just updated by an import).
	Configure(state []byte) error

	// ConfigureContentParameters applies the collection's filter and
	// body options to the pending change computation.
	ConfigureContentParameters(params *models.ContentParams) error

	// InitializeExporter attaches the sink receiving change records.
	InitializeExporter(sink ChangeSink) error

	// ChangeCount returns how many changes are outstanding.
	ChangeCount() int

	// Synchronize streams the next change into the sink. It returns
	// false when the stream is exhausted. A *BrokenObjectError reports
	// a single unexportable item without terminating the export: the
	// item is skipped and Synchronize may be called again.
	Synchronize(ctx context.Context) (bool, error)

	// State returns the opaque state reflecting every change streamed
	// so far, so a windowed export resumes exactly where it stopped.
	State() ([]byte, error)
}

// Connector is the backend's entry surface handed to the engine.
type Connector interface {
	// Setup points the connector at the store owning folderID. A
	// failure escalates to a hierarchy-changed status for the
	// collection.
	Setup(store string) error

	// Importer returns an importer for the folder.
	Importer(folderID string) (Importer, error)

	// Exporter returns an exporter for the folder.
	Exporter(folderID string) (Exporter, error)

	// WasteBasket returns the folder id deletions are moved to when
	// "deletes as moves" is requested, or "" when none is configured.
	WasteBasket(ctx context.Context) (string, error)

	// Fetch returns the full content of one item.
	Fetch(ctx context.Context, folderID, serverID string, params *models.ContentParams) (*models.Message, error)
}
