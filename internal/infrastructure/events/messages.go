package events

import (
	"encoding/json"
	"time"
)

// ChangeMessage is the payload of a transaction change event. It
// carries only the action and the identifier; consumers fetch the full
// record themselves if they need it.
type ChangeMessage struct {
	Action        string    `json:"action"`
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewChangeMessage creates a change message stamped with the current time.
func NewChangeMessage(action, transactionID string) *ChangeMessage {
	return &ChangeMessage{
		Action:        action,
		TransactionID: transactionID,
		Timestamp:     time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON parses a change message from JSON bytes.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
