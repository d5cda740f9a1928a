package api

import (
	"github.com/umedrahimoff/techstan/app/moderation"
	"github.com/umedrahimoff/techstan/app/news"
	"github.com/umedrahimoff/techstan/app/scrape"
	"github.com/umedrahimoff/techstan/app/tasks"
)

type Handler struct {
	queue     *moderation.Queue
	sources   *news.SourceCache
	fetcher   scrape.CandidateFetcher
	scheduler tasks.TaskSchedulerInterface
}
