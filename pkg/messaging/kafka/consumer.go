package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"

	"github.com/JailtonJunior94/actionlog/pkg/messaging"
	"github.com/JailtonJunior94/actionlog/pkg/observability"
)

type (
	// Option configures a consumer built by NewConsumer.
	Option func(c *consumer)

	consumer struct {
		brokers    []string
		groupID    string
		topic      string
		reader     *kafka.Reader
		maxRetries int
		backoff    backoff.BackOff
		logger     observability.Logger
		handlers   map[string]messaging.ConsumeHandler

		closeOnce sync.Once
		stop      chan struct{}
	}
)

// WithBrokers sets the Kafka broker addresses.
func WithBrokers(brokers []string) Option {
	return func(c *consumer) { c.brokers = brokers }
}

// WithGroupID sets the consumer group id.
func WithGroupID(groupID string) Option {
	return func(c *consumer) { c.groupID = groupID }
}

// WithTopic sets the topic to consume.
func WithTopic(topic string) Option {
	return func(c *consumer) { c.topic = topic }
}

// WithMaxRetries sets how many times a handler is retried before its
// failure is logged and the message is committed anyway. Defaults to 3.
func WithMaxRetries(maxRetries int) Option {
	return func(c *consumer) { c.maxRetries = maxRetries }
}

// WithBackoff overrides the retry backoff policy. Defaults to an
// exponential backoff.
func WithBackoff(b backoff.BackOff) Option {
	return func(c *consumer) { c.backoff = b }
}

// WithLogger sets the logger used for dispatch failures and retries.
func WithLogger(logger observability.Logger) Option {
	return func(c *consumer) { c.logger = logger }
}

// WithReader builds the underlying kafka-go reader from the brokers,
// group id and topic already set by prior options; it must be the last
// option applied.
func WithReader() Option {
	return func(c *consumer) {
		c.reader = kafka.NewReader(kafka.ReaderConfig{
			Brokers:        c.brokers,
			GroupID:        c.groupID,
			Topic:          c.topic,
			StartOffset:    kafka.LastOffset,
			MinBytes:       10e3,
			MaxBytes:       10e6,
			CommitInterval: 0,
		})
	}
}

// NewConsumer builds a messaging.Consumer backed by a kafka-go reader.
// Messages are dispatched to the handler registered for their
// "event_type" header (§4.7: action-log records are published with
// event_type "action_log").
func NewConsumer(options ...Option) messaging.Consumer {
	c := &consumer{
		maxRetries: 3,
		backoff:    backoff.NewExponentialBackOff(),
		logger:     noopLogger{},
		handlers:   make(map[string]messaging.ConsumeHandler),
		stop:       make(chan struct{}),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// RegisterHandler implements messaging.Consumer.
func (c *consumer) RegisterHandler(eventType string, handler messaging.ConsumeHandler) {
	c.handlers[eventType] = handler
}

// Close implements messaging.Consumer.
func (c *consumer) Close() error {
	c.closeOnce.Do(func() { close(c.stop) })
	if c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume implements messaging.Consumer: it reads and dispatches one
// message at a time until ctx is cancelled or Close is called.
func (c *consumer) Consume(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stop:
			return nil
		default:
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, kafka.ErrGroupClosed) {
				return nil
			}
			c.logger.Error(ctx, "failed to fetch message", observability.Error(err))
			continue
		}

		c.dispatch(ctx, msg)
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error(ctx, "failed to commit message", observability.Error(err))
		}
	}
}

// ConsumeBatch implements messaging.Consumer: it accumulates up to 100
// messages (or until ctx is done) before dispatching and committing them
// together, trading per-message latency for fewer commit round-trips.
func (c *consumer) ConsumeBatch(ctx context.Context) error {
	const batchSize = 100

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stop:
			return nil
		default:
		}

		batch := make([]kafka.Message, 0, batchSize)
		for len(batch) < batchSize {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, kafka.ErrGroupClosed) {
					break
				}
				c.logger.Error(ctx, "failed to fetch message", observability.Error(err))
				break
			}
			batch = append(batch, msg)
		}
		if len(batch) == 0 {
			continue
		}

		for _, msg := range batch {
			c.dispatch(ctx, msg)
		}
		if err := c.reader.CommitMessages(ctx, batch...); err != nil {
			c.logger.Error(ctx, "failed to commit batch", observability.Error(err))
		}
	}
}

// ConsumeWithWorkerPool implements messaging.Consumer: a single fetch
// loop fans messages out to workerCount goroutines, each dispatching and
// committing independently so a slow handler doesn't stall the others.
func (c *consumer) ConsumeWithWorkerPool(ctx context.Context, workerCount int) error {
	if workerCount < 1 {
		workerCount = 1
	}

	messages := make(chan kafka.Message)
	var wg sync.WaitGroup
	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func() {
			defer wg.Done()
			for msg := range messages {
				c.dispatch(ctx, msg)
				if err := c.reader.CommitMessages(ctx, msg); err != nil {
					c.logger.Error(ctx, "failed to commit message", observability.Error(err))
				}
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			close(messages)
			wg.Wait()
			return ctx.Err()
		case <-c.stop:
			close(messages)
			wg.Wait()
			return nil
		default:
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, kafka.ErrGroupClosed) {
				close(messages)
				wg.Wait()
				return nil
			}
			c.logger.Error(ctx, "failed to fetch message", observability.Error(err))
			continue
		}

		select {
		case messages <- msg:
		case <-ctx.Done():
			close(messages)
			wg.Wait()
			return ctx.Err()
		}
	}
}

// dispatch looks up the handler for msg's event_type header and retries
// it with backoff up to maxRetries. A handler that keeps failing is
// logged and the message still advances — action-log indexing is
// idempotent on the document id (§4.8), so a dropped retry is recovered
// by the next forward rather than stalling the partition.
func (c *consumer) dispatch(ctx context.Context, msg kafka.Message) {
	headers := extractHeaders(msg)
	eventType := headers["event_type"]

	handler, ok := c.handlers[eventType]
	if !ok {
		c.logger.Error(ctx, "no handler registered", observability.String("event_type", eventType))
		return
	}

	b := c.backoff
	for attempt := 0; ; attempt++ {
		if err := handler(ctx, headers, msg.Value); err == nil {
			return
		} else if attempt >= c.maxRetries {
			c.logger.Error(ctx, "handler failed, giving up",
				observability.String("event_type", eventType),
				observability.Int("attempts", attempt+1),
				observability.Error(err),
			)
			return
		} else {
			c.logger.Warn(ctx, "handler failed, retrying",
				observability.String("event_type", eventType),
				observability.Int("attempt", attempt+1),
				observability.Error(err),
			)
			time.Sleep(b.NextBackOff())
		}
	}
}

// noopLogger is the default logger when WithLogger isn't applied.
type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, msg string, fields ...observability.Field) {}
func (noopLogger) Info(ctx context.Context, msg string, fields ...observability.Field)  {}
func (noopLogger) Warn(ctx context.Context, msg string, fields ...observability.Field)   {}
func (noopLogger) Error(ctx context.Context, msg string, fields ...observability.Field)  {}
func (n noopLogger) With(fields ...observability.Field) observability.Logger            { return n }

func extractHeaders(msg kafka.Message) map[string]string {
	headers := make(map[string]string, len(msg.Headers))
	for _, header := range msg.Headers {
		headers[header.Key] = string(header.Value)
	}
	return headers
}
