package engine

import "errors"

// Sentinel errors surfaced by [CollectionSet.LoadPersisted]. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrStateNotFound is returned when a persisted folder's saved sync key
	// no longer resolves to any stored state, meaning the server expired it
	// and the device must restart the folder from the initial key.
	ErrStateNotFound = errors.New("persisted sync state no longer resolves")

	// ErrFolderSetChanged is returned when the folder hierarchy changed
	// underneath an in-flight exchange, so resuming persisted folders would
	// operate on stale folder ids.
	ErrFolderSetChanged = errors.New("folder hierarchy changed during exchange")
)
