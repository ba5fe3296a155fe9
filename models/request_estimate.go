package models

// EstimateRequest asks how many items the next Sync of each listed
// folder would deliver. Read-only: no state is mutated.
type EstimateRequest struct {
	Folders []EstimateFolder `json:"folders"`
}

// EstimateFolder is one folder block of a GetItemEstimate request.
type EstimateFolder struct {
	ContentClass     ContentClass `json:"content_class,omitempty"`
	SyncKey          *string      `json:"sync_key"`
	FolderID         string       `json:"folder_id,omitempty"`
	FilterType       *FilterType  `json:"filter_type,omitempty"`
	MaxItems         int          `json:"max_items,omitempty"`
	ConversationMode *bool        `json:"conversation_mode,omitempty"`
}

// EstimateResponse carries one response block per requested folder.
type EstimateResponse struct {
	Responses []EstimateFolderResponse `json:"responses"`
}

// EstimateFolderResponse is the estimate of one folder.
type EstimateFolderResponse struct {
	Status       EstimateStatus `json:"status"`
	ContentClass ContentClass   `json:"content_class,omitempty"`
	FolderID     string         `json:"folder_id"`
	Estimate     *int           `json:"estimate,omitempty"`
}
