package kafka

import (
	"context"

	"github.com/IBM/sarama"

	"github.com/JailtonJunior94/actionlog/pkg/messaging"
	"github.com/JailtonJunior94/actionlog/pkg/observability"
)

type publisher struct {
	producer sarama.SyncProducer
	logger   observability.Logger
}

// PublisherOption configures a publisher built by NewPublisher.
type PublisherOption func(*publisher)

// WithPublisherLogger sets the logger used to record publish outcomes.
// Defaults to a no-op logger.
func WithPublisherLogger(logger observability.Logger) PublisherOption {
	return func(p *publisher) { p.logger = logger }
}

// NewPublisher wraps client in a sarama sync producer implementing
// messaging.Publisher (§4.7: forwarded action-log records are keyed by
// document id so replays of the same id land on the same partition).
func NewPublisher(client *Client, opts ...PublisherOption) (messaging.Publisher, error) {
	producer, err := sarama.NewSyncProducerFromClient(client.client)
	if err != nil {
		return nil, err
	}
	p := &publisher{producer: producer, logger: noopLogger{}}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (k *publisher) Publish(ctx context.Context, topicOrQueue, key string, headers map[string]string, message *messaging.Message) error {
	partition, offset, err := k.producer.SendMessage(toProducerMessage(topicOrQueue, key, headers, message))
	if err != nil {
		k.logger.Error(ctx, "failed to publish message",
			observability.String("topic", topicOrQueue),
			observability.Error(err),
		)
		return err
	}

	k.logger.Debug(ctx, "message published",
		observability.String("topic", topicOrQueue),
		observability.Int("partition", int(partition)),
		observability.Int64("offset", offset),
	)
	return nil
}

// PublishBatch publishes each message individually: sarama's sync producer
// has no multi-message batch call, so failures are collected without
// stopping the remaining sends — the first error is returned to the caller.
func (k *publisher) PublishBatch(ctx context.Context, topicOrQueue, key string, headers map[string]string, messages []*messaging.Message) error {
	var firstErr error
	for _, message := range messages {
		if err := k.Publish(ctx, topicOrQueue, key, headers, message); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (k *publisher) Close() error {
	return k.producer.Close()
}

func toProducerMessage(topic, key string, headers map[string]string, message *messaging.Message) *sarama.ProducerMessage {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(message.Body),
	}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}
	return msg
}
