// Package collector implements the CollectorIndexer (§4.8): a consumer of
// topic action-log that writes each record into a time-partitioned,
// Elasticsearch-backed index named action-YYYY.MM.DD.
package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/JailtonJunior94/actionlog/pkg/actionlog"
	"github.com/JailtonJunior94/actionlog/pkg/messaging"
	"github.com/JailtonJunior94/actionlog/pkg/observability"
)

// indexPrefix is the fixed prefix for the daily action-log indices (§4.8).
const indexPrefix = "action-"

// IndexName returns the time-partitioned index name for date, following
// the action-YYYY.MM.DD convention.
func IndexName(date time.Time) string {
	return indexPrefix + date.UTC().Format("2006.01.02")
}

// Indexer consumes forwarded action-log records and writes them into
// Elasticsearch, one time-partitioned index per UTC day.
type Indexer struct {
	es     *elasticsearch.Client
	logger observability.Logger
}

// NewIndexer creates an Indexer backed by an existing Elasticsearch client.
func NewIndexer(es *elasticsearch.Client, logger observability.Logger) *Indexer {
	return &Indexer{es: es, logger: logger}
}

// HandleRecord is a messaging.ConsumeHandler suitable for
// messaging.Consumer.RegisterHandler("action_log", indexer.HandleRecord):
// it decodes one forwarded record and indexes it.
func (idx *Indexer) HandleRecord(ctx context.Context, params map[string]string, body []byte) error {
	var doc actionlog.ActionDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("collector: decode action-log record: %w", err)
	}
	return idx.Index(ctx, &doc)
}

// Index writes doc into its day's index, creating the index (with mapping)
// on first use if it does not already exist.
func (idx *Indexer) Index(ctx context.Context, doc *actionlog.ActionDocument) error {
	index := IndexName(doc.Date)

	if err := idx.ensureIndex(ctx, index); err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("collector: marshal document %s: %w", doc.ID, err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, idx.es)
	if err != nil {
		return fmt.Errorf("collector: index document %s: %w", doc.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("collector: index document %s: %s", doc.ID, res.String())
	}

	if idx.logger != nil {
		idx.logger.Debug(ctx, "indexed action-log record",
			observability.String("index", index),
			observability.String("action_id", doc.ID),
			observability.String("result", doc.Result),
		)
	}
	return nil
}

func (idx *Indexer) ensureIndex(ctx context.Context, index string) error {
	existsRes, err := idx.es.Indices.Exists([]string{index}, idx.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("collector: check index %s: %w", index, err)
	}
	defer existsRes.Body.Close()

	if existsRes.StatusCode == 200 {
		return nil
	}

	createRes, err := idx.es.Indices.Create(
		index,
		idx.es.Indices.Create.WithContext(ctx),
		idx.es.Indices.Create.WithBody(bytes.NewReader(documentMapping)),
	)
	if err != nil {
		return fmt.Errorf("collector: create index %s: %w", index, err)
	}
	defer createRes.Body.Close()

	// A concurrent creator winning the race surfaces as resource_already_exists_exception; benign.
	if createRes.IsError() && createRes.StatusCode != 400 {
		return fmt.Errorf("collector: create index %s: %s", index, createRes.String())
	}

	if idx.logger != nil {
		idx.logger.Info(ctx, "created action-log index", observability.String("index", index))
	}
	return nil
}

// StartConsumer registers the indexer's handler on consumer for the
// "action_log" event type and starts a worker-pool consume loop.
func StartConsumer(ctx context.Context, consumer messaging.Consumer, idx *Indexer, workerCount int) error {
	consumer.RegisterHandler("action_log", idx.HandleRecord)
	return consumer.ConsumeWithWorkerPool(ctx, workerCount)
}
