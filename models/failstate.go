package models

// FailState is the snapshot persisted after client changes were imported
// but before the reply reached the client. When the client retransmits
// the request for the same (uuid, counter), the recorded mappings are
// replayed instead of re-executing the operations, so a lost reply never
// duplicates side effects. A FailState is consumed at most once.
type FailState struct {
	UUID    string `json:"uuid"`
	Counter uint32 `json:"counter"`

	// ClientIDs maps client temporary ids of Add operations to the
	// server ids that were allocated ("" when the add failed).
	ClientIDs map[string]string `json:"client_ids,omitempty"`

	// RemoveIDs records server ids whose deletion was already executed.
	RemoveIDs map[string]bool `json:"remove_ids,omitempty"`

	// StatusIDs maps client temporary ids and server ids to the status
	// each operation produced.
	StatusIDs map[string]SyncStatus `json:"status_ids,omitempty"`

	// SyncState is the backend's opaque state as it stood right after
	// import, used to resume the exchange at the exact failure point.
	SyncState []byte `json:"sync_state,omitempty"`
}

// KnownAdd returns the previously allocated server id for a client
// temporary id, if this Add was already executed.
func (f *FailState) KnownAdd(clientID string) (string, bool) {
	if f == nil {
		return "", false
	}
	serverID, ok := f.ClientIDs[clientID]
	return serverID, ok
}

// KnownRemove reports whether the deletion of serverID was already
// executed in the failed exchange.
func (f *FailState) KnownRemove(serverID string) bool {
	return f != nil && f.RemoveIDs[serverID]
}
