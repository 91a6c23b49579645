package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/JailtonJunior94/actionlog/pkg/cron_worker"
	"github.com/JailtonJunior94/actionlog/pkg/observability"
)

// RetentionJob deletes daily action-* indices older than Keep days. It
// implements cron_worker.Job so it can run as a scheduled task alongside
// the indexing consumer, following the same worker pattern the teacher
// uses for other background maintenance tasks.
type RetentionJob struct {
	es       *elasticsearch.Client
	logger   observability.Logger
	schedule string
	keep     time.Duration
}

// NewRetentionJob creates a RetentionJob that runs on schedule (a cron
// expression) and deletes indices whose partition date is older than
// keepDays days.
func NewRetentionJob(es *elasticsearch.Client, logger observability.Logger, schedule string, keepDays int) *RetentionJob {
	if keepDays <= 0 {
		keepDays = 30
	}
	return &RetentionJob{
		es:       es,
		logger:   logger,
		schedule: schedule,
		keep:     time.Duration(keepDays) * 24 * time.Hour,
	}
}

// Name implements cron_worker.Job.
func (j *RetentionJob) Name() string { return "action-log-index-retention" }

// Schedule implements cron_worker.Job.
func (j *RetentionJob) Schedule() string { return j.schedule }

// Run deletes every action-YYYY.MM.DD index whose date falls before the
// retention window. Missing indices for a given day are not an error —
// a quiet day produces no index at all.
func (j *RetentionJob) Run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.keep)

	// Walk back day by day from the cutoff for up to a year, deleting any
	// index that exists; stops early once a run of misses suggests the
	// retention window has already been swept clean.
	misses := 0
	for days := 0; days < 365 && misses < 7; days++ {
		date := cutoff.AddDate(0, 0, -days)
		index := IndexName(date)

		existsRes, err := j.es.Indices.Exists([]string{index}, j.es.Indices.Exists.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("collector: retention check %s: %w", index, err)
		}
		existsRes.Body.Close()

		if existsRes.StatusCode != 200 {
			misses++
			continue
		}
		misses = 0

		delRes, err := j.es.Indices.Delete([]string{index}, j.es.Indices.Delete.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("collector: retention delete %s: %w", index, err)
		}
		delRes.Body.Close()

		if j.logger != nil {
			j.logger.Info(ctx, "pruned expired action-log index", observability.String("index", index))
		}
	}
	return nil
}

var _ cron_worker.Job = (*RetentionJob)(nil)
