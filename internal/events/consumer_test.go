package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMessageRoundTrip(t *testing.T) {
	event := NewQuestionEvent(EventQuestionsBulkLoaded, BulkLoadedEvent{Origin: "data.json", Processed: 4, Skipped: 1})

	msg, err := toMessage(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, string(EventQuestionsBulkLoaded), msg.Metadata.Get(metaEventType))
	assert.Equal(t, eventSource, msg.Metadata.Get(metaSource))

	got, err := fromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, event.Type, got.Type)
	assert.True(t, event.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, BulkLoadedEvent{Origin: "data.json", Processed: 4, Skipped: 1}, got.Data)
}

func TestFromMessage_UnknownTypeKeepsRawData(t *testing.T) {
	msg := message.NewMessage("m1", []byte(`{"id":"e1","type":"questions.other","data":{"n":1}}`))

	got, err := fromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, EventType("questions.other"), got.Type)
	assert.Equal(t, map[string]interface{}{"n": float64(1)}, got.Data)
}

func TestFromMessage_Invalid(t *testing.T) {
	_, err := fromMessage(message.NewMessage("m1", []byte("not json")))
	assert.Error(t, err)

	_, err = fromMessage(message.NewMessage("m2", []byte(`{"type":"questions.bulk_loaded","data":"oops"}`)))
	assert.Error(t, err)
}

func TestConsumer_Run(t *testing.T) {
	// Persistent so messages published before Subscribe are still delivered
	pubSub := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	consumer := newConsumer(pubSub, "question-bank", discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, pubSub.Publish("question-bank", message.NewMessage("bad", []byte("{"))))
	event := NewQuestionEvent(EventQuestionsBulkLoaded, BulkLoadedEvent{Processed: 1})
	msg, err := toMessage(ctx, event)
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish("question-bank", msg))

	received := make(chan *QuestionEvent, 1)
	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- consumer.Run(ctx, func(_ context.Context, e *QuestionEvent) error {
			calls++
			if calls == 1 {
				return errors.New("transient")
			}
			received <- e
			return nil
		})
	}()

	select {
	case got := <-received:
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, BulkLoadedEvent{Processed: 1}, got.Data)
	case <-ctx.Done():
		t.Fatal("event was not redelivered after nack")
	}

	cancel()
	assert.NoError(t, <-done)
	assert.Equal(t, 2, calls)
	assert.NoError(t, consumer.Close())
}
