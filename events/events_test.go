package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), Event{
		Type: DishUpdated, EntityID: 10, RestaurantID: 3, ActorID: 1, OccurredAt: at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "3", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "dish.updated", string(msg.Headers[0].Value))

	var got Event
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, DishUpdated, got.Type)
	assert.Equal(t, int64(10), got.EntityID)
	assert.Equal(t, int64(1), got.ActorID)
	assert.True(t, at.Equal(got.OccurredAt))
}

func TestKafkaPublisher_StampsMissingTime(t *testing.T) {
	w := &recordingWriter{}
	require.NoError(t, NewKafkaPublisher(w).Publish(context.Background(), Event{Type: RestaurantCreated, EntityID: 1, RestaurantID: 1}))

	var got Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.False(t, got.OccurredAt.IsZero())
}

func TestKafkaPublisher_WrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	err := NewKafkaPublisher(&recordingWriter{err: boom}).Publish(context.Background(), Event{Type: DishCreated})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "publish dish.created")
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), Event{Type: DishCreated}))
}
