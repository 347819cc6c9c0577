// Package frame defines the wire shape of event log records.
//
// A Frame is one immutable record from the append-only log. Its ID is a
// time-sortable UUIDv7, so the ID doubles as both the entity identifier and
// the total-order key: frames sorted by ID are in append order, and entities
// materialized from a frame inherit the frame's ID and its embedded clock.
package frame

import "encoding/json"

// Topics understood by the materialization engine. Anything else is ignored.
const (
	// TopicYakCreate creates a yak (top-level note container).
	TopicYakCreate = "yak.create"
	// TopicNoteCreate creates a note inside a yak.
	TopicNoteCreate = "note.create"
	// TopicNoteEdit supersedes an existing note with a new revision.
	TopicNoteEdit = "note.edit"
	// TopicThreshold marks the end of historical replay. Threshold frames are
	// synthesized per subscription, never persisted.
	TopicThreshold = "xs.threshold"
)

// ZeroContext is the system context identifier used for all frames.
// Context partitioning is reserved for future multi-context logs.
const ZeroContext = "00000000-0000-0000-0000-000000000000"

// Meta carries the topic-specific fields of a frame.
//
// note.create requires ContainerID; note.edit requires both ContainerID and
// OriginalNoteID. The engine drops frames whose required fields are absent.
type Meta struct {
	// ContainerID is the yak that owns the note.
	ContainerID string `json:"containerId,omitempty"`
	// OriginalNoteID is the note superseded by a note.edit frame.
	OriginalNoteID string `json:"originalNoteId,omitempty"`
}

// Frame is one record of the event log.
//
// Hash, when non-empty, references the frame's content in the
// content-addressed store. Frames themselves never carry content inline.
type Frame struct {
	ID        string `json:"id"`
	Topic     string `json:"topic"`
	ContextID string `json:"context_id"`
	Hash      string `json:"hash,omitempty"`
	Meta      *Meta  `json:"meta,omitempty"`
}

// MarshalMeta serializes meta for storage. Returns "" for nil meta so the
// frames table stores NULL rather than the JSON literal "null".
func MarshalMeta(m *Meta) (string, error) {
	if m == nil {
		return "", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalMeta deserializes meta from storage. "" maps back to nil.
func UnmarshalMeta(s string) (*Meta, error) {
	if s == "" {
		return nil, nil
	}
	m := &Meta{}
	if err := json.Unmarshal([]byte(s), m); err != nil {
		return nil, err
	}
	return m, nil
}
