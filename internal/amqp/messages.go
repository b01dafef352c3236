package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReportGeneratedMessage announces that an events report was assembled.
// Downstream consumers (notification bots, audit sinks) only need the
// request parameters; the report itself is never persisted.
type ReportGeneratedMessage struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`   // reference date, DD.MM.YYYY
	Window    string    `json:"window"` // M, W, Y or ALL
	Timestamp time.Time `json:"timestamp"`
}

func NewReportGeneratedMessage(date, window string) *ReportGeneratedMessage {
	return &ReportGeneratedMessage{
		ID:        uuid.NewString(),
		Date:      date,
		Window:    window,
		Timestamp: time.Now(),
	}
}

func (m *ReportGeneratedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportGeneratedMessageFromJSON(data []byte) (*ReportGeneratedMessage, error) {
	var msg ReportGeneratedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
