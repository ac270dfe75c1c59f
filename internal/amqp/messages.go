package amqp

import (
	"encoding/json"
	"time"
)

// OverdueAlertMessage is the wire form of an overdue summary. It carries the
// aggregate only; consumers query the dashboard API if they need record
// detail.
type OverdueAlertMessage struct {
	Count       int       `json:"count"`
	Clients     []string  `json:"clients"`
	MaxDaysLate int       `json:"max_days_late"`
	Total       string    `json:"total"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewOverdueAlertMessage(count int, clients []string, maxDaysLate int, total string) *OverdueAlertMessage {
	return &OverdueAlertMessage{
		Count:       count,
		Clients:     clients,
		MaxDaysLate: maxDaysLate,
		Total:       total,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *OverdueAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func OverdueAlertMessageFromJSON(data []byte) (*OverdueAlertMessage, error) {
	var msg OverdueAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
