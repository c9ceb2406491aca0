// Package events publishes appointment lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	"github.com/noah-isme/pawcare-grooming-api/pkg/config"
	"github.com/noah-isme/pawcare-grooming-api/pkg/jobs"
)

const (
	jobType      = "appointment_event"
	writeTimeout = 10 * time.Second
	drainTimeout = 15 * time.Second
)

// MessageWriter is the subset of *kafka.Writer used by the publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher serialises events on the caller goroutine and writes them from a worker queue.
type KafkaPublisher struct {
	writer MessageWriter
	queue  *jobs.Queue
	topic  string
	logger *zap.Logger
}

// NewKafkaWriter builds a writer that keys partitions by appointment id.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewKafkaPublisher constructs a publisher on top of writer.
func NewKafkaPublisher(writer MessageWriter, cfg config.EventsConfig, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &KafkaPublisher{
		writer: writer,
		topic:  Topic(cfg.TopicPrefix),
		logger: logger,
	}
	p.queue = jobs.NewQueue("appointment-events", p.deliver, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.QueueSize,
		MaxRetries: cfg.Retries,
		Logger:     logger,
	})
	return p
}

// Topic returns the appointment topic for a prefix.
func Topic(prefix string) string {
	if prefix == "" {
		return "appointments"
	}
	return prefix + ".appointments"
}

// Start launches the delivery workers. They run until Close, independent of
// request lifetimes, so pass a context that outlives the HTTP server.
func (p *KafkaPublisher) Start(ctx context.Context) {
	p.queue.Start(ctx)
}

// Publish queues the event for delivery. It fails only when the event cannot be encoded or queued.
func (p *KafkaPublisher) Publish(ctx context.Context, event models.AppointmentEvent) error {
	msg, err := p.message(ctx, event)
	if err != nil {
		return err
	}
	return p.queue.Enqueue(jobs.Job{ID: event.ID, Type: jobType, Payload: msg})
}

// Close delivers the events still queued, then stops the workers and flushes the writer.
func (p *KafkaPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	p.queue.Drain(ctx)
	return p.writer.Close()
}

func (p *KafkaPublisher) message(ctx context.Context, event models.AppointmentEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	headers := []kafka.Header{
		{Key: "event_id", Value: []byte(event.ID)},
		{Key: "event_type", Value: []byte(event.Type)},
	}
	carrier := &headerCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	return kafka.Message{
		Topic:   p.topic,
		Key:     []byte(event.Appointment.ID),
		Value:   payload,
		Headers: carrier.headers,
		Time:    event.OccurredAt,
	}, nil
}

func (p *KafkaPublisher) deliver(ctx context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(kafka.Message)
	if !ok {
		p.logger.Error("unexpected event payload", zap.String("job_id", job.ID))
		return nil
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("write event %s: %w", job.ID, err)
	}
	p.logger.Debug("appointment event delivered",
		zap.String("event_id", job.ID),
		zap.String("topic", msg.Topic),
		zap.Int("attempt", job.Attempt+1),
	)
	return nil
}

// NopPublisher drops every event.
type NopPublisher struct{}

// Publish implements the publisher contract.
func (NopPublisher) Publish(context.Context, models.AppointmentEvent) error { return nil }

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
