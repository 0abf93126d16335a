package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	metaEventType = "event_type"
	metaSource    = "source"
	metaVersion   = "version"
	metaTimestamp = "timestamp"
)

func toMessage(ctx context.Context, event *QuestionEvent) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set(metaEventType, string(event.Type))
	msg.Metadata.Set(metaSource, event.Source)
	msg.Metadata.Set(metaVersion, event.Version)
	msg.Metadata.Set(metaTimestamp, event.Timestamp.Format(time.RFC3339))
	return msg, nil
}

// fromMessage decodes an envelope. Data of a known type is decoded into its
// payload struct; unknown types keep the generic JSON value.
func fromMessage(msg *message.Message) (*QuestionEvent, error) {
	var envelope struct {
		QuestionEvent
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode question event %s: %w", msg.UUID, err)
	}

	event := envelope.QuestionEvent
	switch event.Type {
	case EventQuestionsBulkLoaded:
		var data BulkLoadedEvent
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
		}
		event.Data = data
	default:
		var data interface{}
		if len(envelope.Data) > 0 {
			if err := json.Unmarshal(envelope.Data, &data); err != nil {
				return nil, fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
			}
		}
		event.Data = data
	}
	return &event, nil
}
