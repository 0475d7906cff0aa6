// Package bus wraps the Kafka broker behind a degrade-gracefully adapter:
// publishing and subscribing become no-ops when no broker is configured or
// the connection has failed, and the core keeps running without events.
package bus

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"

	"devconnect/domain/event"
)

const partitionKeyMetadata = "partition_key"

// Bus publishes domain events onto named topics and runs subscriber loops.
// It is safe for concurrent use; the underlying clients manage their own
// connection pools.
type Bus struct {
	log        *slog.Logger
	publisher  message.Publisher
	subscriber message.Subscriber
	brokers    []string
	enabled    atomic.Bool
}

// New builds the adapter. An empty broker list yields a permanently
// disabled bus. Construction failures disable the bus instead of failing
// the process: events are an enrichment, not a correctness requirement.
func New(brokers []string, consumerGroup string, log *slog.Logger) *Bus {
	b := &Bus{log: log, brokers: brokers}
	if len(brokers) == 0 {
		log.Warn("Event bus disabled: KAFKA_BROKERS not set, running without Kafka")
		return b
	}

	wmLogger := watermill.NewSlogLogger(log)
	marshaler := kafka.NewWithPartitioningMarshaler(func(topic string, msg *message.Message) (string, error) {
		return msg.Metadata.Get(partitionKeyMetadata), nil
	})

	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: marshaler,
		},
		wmLogger,
	)
	if err != nil {
		log.Warn("Event bus disabled: publisher construction failed", "error", err)
		return b
	}

	subscriber, err := kafka.NewSubscriber(
		kafka.SubscriberConfig{
			Brokers:       brokers,
			Unmarshaler:   marshaler,
			ConsumerGroup: consumerGroup,
		},
		wmLogger,
	)
	if err != nil {
		log.Warn("Event bus disabled: subscriber construction failed", "error", err)
		_ = publisher.Close()
		return b
	}

	b.publisher = publisher
	b.subscriber = subscriber
	b.enabled.Store(true)
	log.Info("Event bus connected", "brokers", brokers, "group", consumerGroup)
	return b
}

// Enabled reports whether the bus currently publishes anywhere.
func (b *Bus) Enabled() bool {
	return b.enabled.Load()
}

// Publish serializes the envelope and sends it to topic, partitioned by key
// so events about the same subject stay strictly ordered relative to each
// other. Failure is logged, never surfaced: the first broker-level error
// disables the bus for the remainder of the process lifetime.
func (b *Bus) Publish(ctx context.Context, topic, key string, e event.DomainEvent) bool {
	if !b.Enabled() {
		return false
	}
	payload, err := e.Encode()
	if err != nil {
		b.log.Error("Event serialization failed", "topic", topic, "type", e.Type, "error", err)
		return false
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(partitionKeyMetadata, key)
	msg.SetContext(ctx)

	if err := b.publisher.Publish(topic, msg); err != nil {
		b.log.Error("Event publish failed, disabling event bus", "topic", topic, "type", e.Type, "error", err)
		b.enabled.Store(false)
		return false
	}
	b.log.Debug("Event published", "topic", topic, "type", e.Type, "subject", e.UserID)
	return true
}

// Subscribe registers a long-running consumer loop for one topic. Each
// received message is decoded and handed to handler; a decode failure or a
// handler error is logged and the message dropped, the loop continues with
// the next one. The loop ends when ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context, topic string, handler event.Handler) error {
	if !b.Enabled() {
		return nil
	}
	messages, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		b.log.Warn("Subscribe failed, consumer not started", "topic", topic, "error", err)
		return err
	}

	go func() {
		for msg := range messages {
			e, err := event.Decode(msg.Payload)
			if err != nil {
				b.log.Error("Dropping undecodable event", "topic", topic, "error", err)
				msg.Ack()
				continue
			}
			if err := handler(ctx, e); err != nil {
				b.log.Error("Event handler failed, dropping event", "topic", topic, "type", e.Type, "error", err)
			}
			// At-least-once: the handler already ran, a redelivery after a
			// crash here is tolerated by idempotent handlers.
			msg.Ack()
		}
		b.log.Info("Consumer loop stopped", "topic", topic)
	}()
	return nil
}

// Close releases both broker clients.
func (b *Bus) Close() error {
	b.enabled.Store(false)
	var firstErr error
	if b.subscriber != nil {
		if err := b.subscriber.Close(); err != nil {
			firstErr = err
		}
	}
	if b.publisher != nil {
		if err := b.publisher.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
