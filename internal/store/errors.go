package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrStateNotFound is returned when no persisted synchronization state
	// exists for the requested (device, folder, uuid, counter) combination.
	// For a non-initial sync key this means the client presented a key the
	// server never issued, or one that has already been purged.
	ErrStateNotFound = errors.New("sync state was not found")

	// ErrNoHierarchyCache is returned when a folder lookup is attempted for a
	// device that has never completed a folder hierarchy sync, so the server
	// has no folder-to-class mapping to resolve the request against.
	ErrNoHierarchyCache = errors.New("no folder hierarchy cache for device")

	// ErrFolderNotFound is returned when a folder id is not present in the
	// device's folder hierarchy cache.
	ErrFolderNotFound = errors.New("folder was not found in hierarchy cache")

	// ErrFolderParamsNotFound is returned when no saved content parameters
	// exist for the requested (device, folder) pair. A short-form sync
	// request cannot be served without them.
	ErrFolderParamsNotFound = errors.New("saved folder parameters were not found")

	// ErrStateNotSaved is returned when an INSERT or UPDATE of state data
	// completes without error but the number of affected rows is zero,
	// indicating that nothing was actually persisted.
	ErrStateNotSaved = errors.New("sync state was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan result row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan result rows")
)
