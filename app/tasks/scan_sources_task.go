package tasks

import (
	"context"
	"log/slog"

	"github.com/umedrahimoff/techstan/app/moderation"
	"github.com/umedrahimoff/techstan/app/news"
	"github.com/umedrahimoff/techstan/app/scrape"
)

// ScanSourcesTask runs one ingestion cycle: fetch candidates from every
// enabled source and hand them to the moderation queue.
type ScanSourcesTask struct {
	Task
	sources *news.SourceCache
	fetcher scrape.CandidateFetcher
	queue   *moderation.Queue
}

func NewScanSourcesTask(sources *news.SourceCache, fetcher scrape.CandidateFetcher, queue *moderation.Queue) *ScanSourcesTask {
	return &ScanSourcesTask{
		Task:    NewTask(TaskTypeScanSources),
		sources: sources,
		fetcher: fetcher,
		queue:   queue,
	}
}

func (t *ScanSourcesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	enabled := t.sources.GetEnabledSources()
	if len(enabled) == 0 {
		slog.Debug("No enabled sources configured")
		return nil
	}

	candidates := t.fetcher.FetchAll(ctx, enabled)
	admitted := t.queue.AdmitBatch(candidates)

	slog.Info("Task completed",
		"type", "ScanSources",
		"duration", t.GetDuration(),
		"sources", len(enabled),
		"candidates", len(candidates),
		"admitted", admitted)

	return nil
}
