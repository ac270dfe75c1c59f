package amqp

import (
	"testing"
	"time"
)

func TestNewOverdueAlertMessage(t *testing.T) {
	msg := NewOverdueAlertMessage(3, []string{"Acme", "Beta"}, 59, "500.5")

	if msg.Count != 3 {
		t.Errorf("NewOverdueAlertMessage() Count = %v, want 3", msg.Count)
	}
	if len(msg.Clients) != 2 {
		t.Errorf("NewOverdueAlertMessage() Clients = %v, want 2 entries", msg.Clients)
	}
	if msg.MaxDaysLate != 59 {
		t.Errorf("NewOverdueAlertMessage() MaxDaysLate = %v, want 59", msg.MaxDaysLate)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewOverdueAlertMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewOverdueAlertMessage() Timestamp should be recent")
	}
}

func TestOverdueAlertMessage_JSON(t *testing.T) {
	timestamp := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &OverdueAlertMessage{
		Count:       2,
		Clients:     []string{"Acme"},
		MaxDaysLate: 10,
		Total:       "1500",
		Timestamp:   timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := OverdueAlertMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("OverdueAlertMessageFromJSON() error = %v", err)
	}

	if parsedMsg.Count != msg.Count {
		t.Errorf("Parsed Count = %v, want %v", parsedMsg.Count, msg.Count)
	}
	if parsedMsg.Total != msg.Total {
		t.Errorf("Parsed Total = %v, want %v", parsedMsg.Total, msg.Total)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestOverdueAlertMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"count": "not_a_number"}`)

	_, err := OverdueAlertMessageFromJSON(invalidJSON)
	if err == nil {
		t.Error("OverdueAlertMessageFromJSON() should fail with invalid JSON")
	}
}
