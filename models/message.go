package models

import "encoding/json"

// Message is one synchronized item as submitted by the client or
// streamed to it. The item body is kept opaque (backends decode it);
// Read and Flag are surfaced separately because mail clients send
// read-flag-only and flag-only modifications that must not overwrite
// the full item.
type Message struct {
	ServerID string       `json:"server_id,omitempty"`
	Class    ContentClass `json:"content_class,omitempty"`

	// Read is set when the client changes only the read flag.
	Read *bool `json:"read,omitempty"`

	// Flag is set when a todo/follow-up flag accompanies the change.
	Flag *MessageFlag `json:"flag,omitempty"`

	Data json.RawMessage `json:"data,omitempty"`
}

// MessageFlag is the follow-up flag some mail clients attach to items.
type MessageFlag struct {
	Status  int    `json:"status"`
	Type    string `json:"type,omitempty"`
	DueDate int64  `json:"due_date,omitempty"`
}

// Check validates that the message carries something applicable. A
// message failing Check is answered with a conversion status instead of
// being imported.
func (m *Message) Check() bool {
	if m == nil {
		return false
	}
	return len(m.Data) > 0 || m.Read != nil || m.Flag != nil
}

// ReadFlagOnly reports whether the modification sets only the read flag,
// in which case the importer's read-flag path is used instead of a full
// content change.
func (m *Message) ReadFlagOnly() bool {
	return m != nil && m.Read != nil && m.Flag == nil && len(m.Data) == 0
}
