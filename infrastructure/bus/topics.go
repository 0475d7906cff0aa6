package bus

import (
	"errors"
	"fmt"

	"github.com/IBM/sarama"

	"devconnect/domain/event"
)

const (
	topicPartitions        = 3
	topicReplicationFactor = 1
)

// EnsureTopics provisions the full topic catalog. It is an idempotent setup
// step run once at startup, separate from the steady-state publish and
// subscribe path: "already exists" is treated as success. On a disabled bus
// it does nothing.
func (b *Bus) EnsureTopics() error {
	if !b.Enabled() {
		return nil
	}
	admin, err := sarama.NewClusterAdmin(b.brokers, sarama.NewConfig())
	if err != nil {
		return fmt.Errorf("cluster admin: %w", err)
	}
	defer func() {
		_ = admin.Close()
	}()

	detail := &sarama.TopicDetail{
		NumPartitions:     topicPartitions,
		ReplicationFactor: topicReplicationFactor,
	}
	for _, topic := range event.Topics() {
		err := admin.CreateTopic(topic, detail, false)
		if err != nil && !isTopicExists(err) {
			return fmt.Errorf("create topic %s: %w", topic, err)
		}
	}
	b.log.Info("Kafka topics provisioned", "count", len(event.Topics()))
	return nil
}

func isTopicExists(err error) bool {
	var topicErr *sarama.TopicError
	if errors.As(err, &topicErr) {
		return topicErr.Err == sarama.ErrTopicAlreadyExists
	}
	return false
}
