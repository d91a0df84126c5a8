package audit

import (
	"encoding/json"
	"time"
)

// EventType names a domain event on the outbox.
type EventType string

const (
	EventToiletCreated     EventType = "toilet.created"
	EventSubmissionRefused EventType = "submission.refused"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	UserID    string          `json:"userId,omitempty"`
	ToiletID  string          `json:"toiletId,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Key partitions events on the wire; events about one toilet share a key.
func (e Event) Key() string {
	if e.ToiletID != "" {
		return e.ToiletID
	}
	return e.UserID
}
