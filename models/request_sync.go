package models

// CommandType is the kind of one inbound or outbound item operation.
type CommandType string

const (
	CommandAdd    CommandType = "add"
	CommandModify CommandType = "modify"
	CommandRemove CommandType = "remove"
	CommandFetch  CommandType = "fetch"
)

// SyncRequest is one decoded Sync exchange: zero or more folder blocks
// plus the cross-collection parameters. A request without folders is an
// "empty sync" answered from the folders the device is known to have.
type SyncRequest struct {
	Folders []SyncFolder `json:"folders,omitempty"`

	// HeartbeatInterval requests a blocking wait of that many seconds.
	HeartbeatInterval int `json:"heartbeat_interval,omitempty"`

	// Wait is the same request expressed in minutes; when both are
	// present Wait takes precedence.
	Wait int `json:"wait,omitempty"`

	// WindowSize is the global window applying to all collections.
	WindowSize int `json:"window_size,omitempty"`

	// Partial asks the server to resynchronize previously-active folders
	// that are not listed in this request.
	Partial bool `json:"partial,omitempty"`
}

// SyncFolder is one folder block of a Sync request.
type SyncFolder struct {
	// ContentClass may be omitted when FolderID is given; older protocol
	// revisions send the class instead of the id.
	ContentClass ContentClass `json:"content_class,omitempty"`

	// SyncKey is mandatory. "0" starts a fresh sync sequence.
	SyncKey *string `json:"sync_key"`

	FolderID string `json:"folder_id,omitempty"`

	// Supported lists the item fields the client manages; unsupported
	// fields are ghosted on import.
	Supported []string `json:"supported,omitempty"`

	DeletesAsMoves   *bool `json:"deletes_as_moves,omitempty"`
	GetChanges       *bool `json:"get_changes,omitempty"`
	WindowSize       int   `json:"window_size,omitempty"`
	ConversationMode *bool `json:"conversation_mode,omitempty"`

	Options *SyncOptions `json:"options,omitempty"`

	// Commands is the Perform block with the client's changes.
	Commands []SyncCommand `json:"commands,omitempty"`
}

// SyncOptions carries the optional per-folder content options.
type SyncOptions struct {
	FilterType      *FilterType      `json:"filter_type,omitempty"`
	Truncation      *int             `json:"truncation,omitempty"`
	RTFTruncation   *int             `json:"rtf_truncation,omitempty"`
	MIMESupport     *int             `json:"mime_support,omitempty"`
	MIMETruncation  *int             `json:"mime_truncation,omitempty"`
	Conflict        *ConflictPolicy  `json:"conflict,omitempty"`
	BodyPreferences []BodyPreference `json:"body_preferences,omitempty"`
}

// SyncCommand is one inbound Add/Modify/Remove/Fetch operation.
type SyncCommand struct {
	Type     CommandType `json:"type"`
	ServerID string      `json:"server_id,omitempty"`
	ClientID string      `json:"client_id,omitempty"`
	Data     *Message    `json:"data,omitempty"`
}

// SyncResponse is the reply of one Sync exchange. A non-success Status
// suppresses the per-folder blocks entirely.
type SyncResponse struct {
	Status  SyncStatus           `json:"status"`
	Folders []SyncFolderResponse `json:"folders,omitempty"`
}

// SyncFolderResponse is the reply block of one collection.
type SyncFolderResponse struct {
	ContentClass  ContentClass   `json:"content_class,omitempty"`
	SyncKey       string         `json:"sync_key"`
	FolderID      string         `json:"folder_id"`
	Status        SyncStatus     `json:"status"`
	Replies       *SyncReplies   `json:"replies,omitempty"`
	MoreAvailable bool           `json:"more_available,omitempty"`
	Commands      []ChangeRecord `json:"commands,omitempty"`
}

// SyncReplies reports per-item results for the client's operations.
type SyncReplies struct {
	Add    []AddReply   `json:"add,omitempty"`
	Modify []OpReply    `json:"modify,omitempty"`
	Remove []OpReply    `json:"remove,omitempty"`
	Fetch  []FetchReply `json:"fetch,omitempty"`
}

// AddReply answers one Add: the client temporary id, the allocated
// server id (absent on failure) and the operation status.
type AddReply struct {
	ClientID string     `json:"client_id"`
	ServerID string     `json:"server_id,omitempty"`
	Status   SyncStatus `json:"status"`
}

// OpReply answers one failed Modify or Remove. Successful modifies and
// removes are not echoed.
type OpReply struct {
	ServerID string     `json:"server_id"`
	Status   SyncStatus `json:"status"`
}

// FetchReply answers one Fetch with the full item content.
type FetchReply struct {
	ServerID string     `json:"server_id"`
	Status   SyncStatus `json:"status"`
	Data     *Message   `json:"data,omitempty"`
}

// ChangeRecord is one outgoing server change streamed to the client.
type ChangeRecord struct {
	Type     CommandType `json:"type"`
	ServerID string      `json:"server_id"`
	Data     *Message    `json:"data,omitempty"`
}
