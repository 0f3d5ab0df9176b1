package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Sync actions carried by a SessionSyncMessage.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// SessionSyncMessage is a lightweight message for syncing a session to the
// export sheet. It carries only the session ID and action; the worker fetches
// the full session from the store.
type SessionSyncMessage struct {
	SessionID string    `json:"sessionId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSessionSyncMessage creates a sync message for the given session and action
func NewSessionSyncMessage(sessionID, action string) *SessionSyncMessage {
	return &SessionSyncMessage{
		SessionID: sessionID,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SessionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SessionSyncMessageFromJSON creates a message from JSON bytes
func SessionSyncMessageFromJSON(data []byte) (*SessionSyncMessage, error) {
	var msg SessionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.SessionID == "" {
		return nil, fmt.Errorf("sync message missing session id")
	}
	return &msg, nil
}
