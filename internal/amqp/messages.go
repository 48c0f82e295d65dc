package amqp

import (
	"encoding/json"
	"time"
)

const (
	EventRecordCreated = "record.created"
	EventRecordDeleted = "record.deleted"
)

// RecordEvent notifies downstream consumers that the ledger changed.
// It carries only the record id and the new collection size; consumers
// fetch the data from the store themselves.
type RecordEvent struct {
	Event     string    `json:"event"`
	RecordID  string    `json:"record_id"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordEvent(event, recordID string, count int) *RecordEvent {
	return &RecordEvent{
		Event:     event,
		RecordID:  recordID,
		Count:     count,
		Timestamp: time.Now(),
	}
}

func (m *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var msg RecordEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
