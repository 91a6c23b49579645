// Package forwarder implements actionlog.Forwarder for topic action-log
// (§4.7): a bounded, drop-oldest queue decouples the action thread from
// the Kafka write, a background loop flushes the queue, and an optional
// Cache suppresses duplicate forwards across retries.
package forwarder

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/JailtonJunior94/actionlog/pkg/actionlog"
	"github.com/JailtonJunior94/actionlog/pkg/messaging"
	"github.com/JailtonJunior94/actionlog/pkg/observability"
)

// Topic is the fixed destination topic for forwarded action records (§4.7).
const Topic = "action-log"

// KafkaForwarder implements actionlog.Forwarder on top of a
// messaging.Publisher. Forward never blocks the caller: it enqueues and
// returns immediately, and a background goroutine does the actual publish.
type KafkaForwarder struct {
	publisher messaging.Publisher
	topic     string
	queue     *dropOldestQueue
	cache     Cache
	stats     *actionlog.ProcessStats
	logger    observability.Logger

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Option configures a KafkaForwarder.
type Option func(*KafkaForwarder)

// WithCache sets the dedup cache. Defaults to NoopCache.
func WithCache(cache Cache) Option {
	return func(f *KafkaForwarder) { f.cache = cache }
}

// WithProcessStats sets where drop/failure counters are recorded.
func WithProcessStats(stats *actionlog.ProcessStats) Option {
	return func(f *KafkaForwarder) { f.stats = stats }
}

// WithLogger sets the logger used for forward failures.
func WithLogger(logger observability.Logger) Option {
	return func(f *KafkaForwarder) { f.logger = logger }
}

// WithTopic overrides the destination topic. Defaults to Topic.
func WithTopic(topic string) Option {
	return func(f *KafkaForwarder) { f.topic = topic }
}

// New creates a KafkaForwarder with the given queue capacity and starts
// its background flush loop. Callers must call Close on shutdown.
func New(publisher messaging.Publisher, queueCapacity int, opts ...Option) *KafkaForwarder {
	f := &KafkaForwarder{
		publisher: publisher,
		topic:     Topic,
		queue:     newDropOldestQueue(queueCapacity),
		cache:     NoopCache{},
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	go f.run()
	return f
}

// Forward enqueues doc for asynchronous publish to topic action-log. If
// the queue is already full, the oldest pending document is dropped and
// recorded on ProcessStats (§4.5).
func (f *KafkaForwarder) Forward(ctx context.Context, doc *actionlog.ActionDocument) {
	if f.queue.push(doc) && f.stats != nil {
		f.stats.RecordDrop(ctx)
	}
}

// Close stops the background flush loop after draining whatever is
// currently queued.
func (f *KafkaForwarder) Close() {
	f.once.Do(func() { close(f.stop) })
	<-f.done
}

func (f *KafkaForwarder) run() {
	defer close(f.done)
	ctx := context.Background()

	for {
		select {
		case <-f.queue.wait():
			f.flush(ctx)
		case <-f.stop:
			f.flush(ctx)
			return
		case <-time.After(time.Second):
			f.flush(ctx)
		}
	}
}

func (f *KafkaForwarder) flush(ctx context.Context) {
	for _, doc := range f.queue.drain() {
		f.publishOne(ctx, doc)
	}
}

func (f *KafkaForwarder) publishOne(ctx context.Context, doc *actionlog.ActionDocument) {
	if seen, err := f.cache.SeenRecently(ctx, doc.ID); err == nil && seen {
		return
	}

	body, err := json.Marshal(doc)
	if err != nil {
		f.recordFailure(ctx, err)
		return
	}

	headers := map[string]string{
		"event_type": "action_log",
		"action":     doc.Action,
	}
	if err := f.publisher.Publish(ctx, f.topic, doc.ID, headers, &messaging.Message{Body: body}); err != nil {
		f.recordFailure(ctx, err)
	}
}

func (f *KafkaForwarder) recordFailure(ctx context.Context, err error) {
	if f.stats != nil {
		f.stats.RecordForwardFailure(ctx)
	}
	if f.logger != nil {
		f.logger.Error(ctx, "failed to forward action-log record", observability.Error(err))
	}
}
