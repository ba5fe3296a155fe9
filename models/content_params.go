package models

// ConflictPolicy decides which side wins when a client change collides
// with a concurrent server-side change of the same item.
type ConflictPolicy int

const (
	// ConflictClientWins lets the client change overwrite the server item.
	ConflictClientWins ConflictPolicy = 0

	// ConflictServerWins keeps the server item and drops the client change.
	ConflictServerWins ConflictPolicy = 1
)

// FilterType is the time horizon of items synchronized to the client.
// Zero means no filtering (all items).
type FilterType int

const (
	FilterAll            FilterType = 0
	Filter1Day           FilterType = 1
	Filter3Days          FilterType = 2
	Filter1Week          FilterType = 3
	Filter2Weeks         FilterType = 4
	Filter1Month         FilterType = 5
	Filter3Months        FilterType = 6
	Filter6Months        FilterType = 7
	FilterIncompleteTask FilterType = 8
)

// BodyPreference describes how item bodies of one body type should be
// rendered for the client.
type BodyPreference struct {
	Type           int   `json:"type"`
	TruncationSize int64 `json:"truncation_size,omitempty"`
	AllOrNone      bool  `json:"all_or_none,omitempty"`
	Preview        int   `json:"preview,omitempty"`
}

// TruncationAll disables body truncation.
const TruncationAll = 9

// ContentParams carries the per-folder request parameters of one
// synchronized collection. One instance exists per folder per exchange;
// on success it is persisted (together with the folder's sync key) as
// the folder's saved defaults for partial and empty syncs.
type ContentParams struct {
	FolderID     string       `json:"folder_id"`
	ContentClass ContentClass `json:"content_class,omitempty"`

	WindowSize       int                    `json:"window_size,omitempty"`
	Conflict         *ConflictPolicy        `json:"conflict,omitempty"`
	DeletesAsMoves   bool                   `json:"deletes_as_moves,omitempty"`
	FilterType       FilterType             `json:"filter_type,omitempty"`
	Truncation       int                    `json:"truncation,omitempty"`
	RTFTruncation    int                    `json:"rtf_truncation,omitempty"`
	MIMESupport      int                    `json:"mime_support,omitempty"`
	MIMETruncation   int                    `json:"mime_truncation,omitempty"`
	ConversationMode bool                   `json:"conversation_mode,omitempty"`
	BodyPreferences  map[int]BodyPreference `json:"body_preferences,omitempty"`
}

// NewContentParams returns ContentParams with the protocol defaults:
// no truncation, no filtering, deletions moved to the waste basket.
func NewContentParams(folderID string) *ContentParams {
	return &ContentParams{
		FolderID:       folderID,
		WindowSize:     10,
		DeletesAsMoves: true,
		Truncation:     TruncationAll,
		FilterType:     FilterAll,
	}
}

// BodyPreference returns the preference stored for the given body type,
// creating an empty one if none exists yet.
func (p *ContentParams) BodyPreference(bodyType int) BodyPreference {
	if p.BodyPreferences == nil {
		p.BodyPreferences = make(map[int]BodyPreference)
	}
	pref, ok := p.BodyPreferences[bodyType]
	if !ok {
		pref = BodyPreference{Type: bodyType}
		p.BodyPreferences[bodyType] = pref
	}
	return pref
}

// SetBodyPreference stores pref keyed by its body type.
func (p *ContentParams) SetBodyPreference(pref BodyPreference) {
	if p.BodyPreferences == nil {
		p.BodyPreferences = make(map[int]BodyPreference)
	}
	p.BodyPreferences[pref.Type] = pref
}

// HasConflict reports whether the client supplied a conflict policy.
func (p *ContentParams) HasConflict() bool {
	return p.Conflict != nil
}

// ConflictOrDefault returns the requested conflict policy, or def when
// the client sent none.
func (p *ContentParams) ConflictOrDefault(def ConflictPolicy) ConflictPolicy {
	if p.Conflict != nil {
		return *p.Conflict
	}
	return def
}
