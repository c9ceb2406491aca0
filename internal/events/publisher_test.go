package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	"github.com/noah-isme/pawcare-grooming-api/pkg/config"
)

type stubWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	failures int
	closed   bool
	gate     chan struct{}
}

func (w *stubWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.gate != nil {
		<-w.gate
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failures > 0 {
		w.failures--
		return errors.New("broker unavailable")
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *stubWriter) Close() error {
	w.closed = true
	return nil
}

func (w *stubWriter) written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.messages...)
}

func sampleEvent() models.AppointmentEvent {
	return models.AppointmentEvent{
		ID:         "evt-1",
		Type:       models.EventAppointmentBooked,
		OccurredAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Appointment: models.Appointment{
			ID: "appt-1", StylistID: "sty-1", Date: "2024-05-01", StartTime: "09:00", EndTime: "10:00",
			Status: models.AppointmentScheduled,
		},
	}
}

func TestKafkaPublisherDeliversMessage(t *testing.T) {
	writer := &stubWriter{}
	publisher := NewKafkaPublisher(writer, config.EventsConfig{TopicPrefix: "grooming", Workers: 1, QueueSize: 4}, zap.NewNop())
	publisher.Start(context.Background())

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent()))
	require.Eventually(t, func() bool { return len(writer.written()) == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)

	msg := writer.written()[0]
	assert.Equal(t, "grooming.appointments", msg.Topic)
	assert.Equal(t, "appt-1", string(msg.Key))
	assert.Equal(t, "evt-1", header(msg, "event_id"))
	assert.Equal(t, "appointment.booked", header(msg, "event_type"))

	var decoded models.AppointmentEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "sty-1", decoded.Appointment.StylistID)
}

func TestKafkaPublisherRetriesFailedWrites(t *testing.T) {
	writer := &stubWriter{failures: 1}
	publisher := NewKafkaPublisher(writer, config.EventsConfig{Workers: 1, Retries: 2}, zap.NewNop())
	publisher.Start(context.Background())
	defer publisher.Close()

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent()))
	require.Eventually(t, func() bool { return len(writer.written()) == 1 }, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, "appointments", writer.written()[0].Topic)
}

func TestKafkaPublisherCloseDeliversQueuedEvents(t *testing.T) {
	writer := &stubWriter{gate: make(chan struct{})}
	publisher := NewKafkaPublisher(writer, config.EventsConfig{Workers: 1, QueueSize: 8}, zap.NewNop())
	publisher.Start(context.Background())

	for _, id := range []string{"evt-1", "evt-2", "evt-3"} {
		event := sampleEvent()
		event.ID = id
		require.NoError(t, publisher.Publish(context.Background(), event))
	}
	close(writer.gate)

	require.NoError(t, publisher.Close())
	assert.Len(t, writer.written(), 3)
	assert.True(t, writer.closed)
	assert.Error(t, publisher.Publish(context.Background(), sampleEvent()))
}

func TestKafkaPublisherRejectsWhenStopped(t *testing.T) {
	publisher := NewKafkaPublisher(&stubWriter{}, config.EventsConfig{}, nil)

	err := publisher.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), sampleEvent()))
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
