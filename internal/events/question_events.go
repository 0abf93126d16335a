package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a question bank event
type EventType string

const EventQuestionsBulkLoaded EventType = "questions.bulk_loaded"

const (
	eventSource  = "sat-practice-service"
	eventVersion = "1.0"
)

// QuestionEvent is the envelope published for every question bank event
type QuestionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// BulkLoadedEvent is the payload of EventQuestionsBulkLoaded
type BulkLoadedEvent struct {
	Origin    string `json:"origin"` // file path or upload name
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Errors    int    `json:"errors"`
}

// NewQuestionEvent wraps data in an envelope with a fresh ID and timestamp
func NewQuestionEvent(eventType EventType, data interface{}) *QuestionEvent {
	return &QuestionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
