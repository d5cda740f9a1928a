package moderation

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/umedrahimoff/techstan/app/database"
	"github.com/umedrahimoff/techstan/app/news"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
	OutcomeNotFound Outcome = "not_found"
	OutcomeFailed   Outcome = "failed"
)

// Queue is the moderation queue manager. It owns every pending item from
// admission until a moderator resolves it: NEW -> PENDING -> {PUBLISHED | REJECTED}.
//
// All queue mutations run under a single mutex. Admission batches and
// resolve calls both funnel through it, so a duplicate button press observes
// not-found after the first resolve removed the item, and two admission
// batches can never allocate colliding identifiers.
type Queue struct {
	mu                 sync.Mutex
	store              database.StateStore
	classifier         Classifier
	publisher          Publisher
	poster             CardPoster
	republishOnFailure bool
	now                func() time.Time
}

func NewQueue(store database.StateStore, classifier Classifier, publisher Publisher,
	poster CardPoster, republishOnFailure bool) *Queue {
	return &Queue{
		store:              store,
		classifier:         classifier,
		publisher:          publisher,
		poster:             poster,
		republishOnFailure: republishOnFailure,
		now:                time.Now,
	}
}

// AdmitBatch admits the candidates that are both relevant and unseen.
// The dedup index is computed once for the whole batch. Returns the number
// of items admitted. Skipped candidates leave no trace beyond statistics.
func (q *Queue) AdmitBatch(candidates []news.Candidate) int {
	if len(candidates) == 0 {
		return 0
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.store.LoadPending()
	published := q.store.LoadPublished()
	links := news.KnownLinks(pending.Items, published)

	admitted := 0
	for _, candidate := range candidates {
		if !q.classifier.IsRelevant(candidate.Title) {
			slog.Debug("Candidate not relevant, skipping", "title", candidate.Title, "source", candidate.Source)
			continue
		}
		if !links.IsNew(candidate.Link) {
			slog.Debug("Duplicate link, skipping", "link", candidate.Link, "source", candidate.Source)
			continue
		}

		item := news.PendingItem{
			ID:          pending.NextID,
			Title:       candidate.Title,
			Link:        candidate.Link,
			Source:      candidate.Source,
			SubmittedAt: q.now(),
		}

		if err := q.poster.PostModerationCard(item); err != nil {
			slog.Error("Failed to post moderation card, skipping candidate", "link", candidate.Link, "error", err)
			continue
		}

		pending.NextID++
		pending.Items = append(pending.Items, item)
		links[candidate.Link] = struct{}{}
		admitted++
	}

	if admitted == 0 {
		return 0
	}

	if err := q.store.ReplacePending(pending); err != nil {
		slog.Error("Failed to persist pending queue", "error", err)
	}
	q.bumpStatistics(func(stats *news.Statistics, now time.Time) {
		stats.AddParsed(now, admitted)
	})

	slog.Info("Candidates admitted for moderation", "admitted", admitted, "total", len(candidates))

	return admitted
}

// Resolve applies a moderator decision to the pending item with the given
// ID. An unknown or already-resolved ID yields OutcomeNotFound with no
// mutation, which makes duplicate callback delivery safe.
func (q *Queue) Resolve(id int, decision Decision) (Outcome, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.store.LoadPending()

	idx := -1
	for i, item := range pending.Items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		slog.Debug("Pending item not found", "id", id, "decision", string(decision))
		return OutcomeNotFound, nil
	}

	item := pending.Items[idx]

	switch decision {
	case DecisionApprove:
		if err := q.publish(item); err != nil {
			if q.republishOnFailure {
				slog.Warn("Publishing failed, item kept pending for retry", "id", id, "error", err)
				return OutcomeFailed, err
			}
			// Fire-and-forget: publication intent counts as fulfilled once
			// attempted, so the item never gets stuck pending.
			slog.Error("Publishing failed, item recorded as published anyway", "id", id, "error", err)
		}

		q.removePending(pending, idx)
		q.appendPublished(item)
		q.bumpStatistics(func(stats *news.Statistics, now time.Time) {
			stats.AddPublished(now)
		})

		slog.Info("Item approved and published", "id", id, "title", item.Title)
		return OutcomeApproved, nil

	case DecisionReject:
		q.removePending(pending, idx)
		q.bumpStatistics(func(stats *news.Statistics, now time.Time) {
			stats.AddRejected(now)
		})

		slog.Info("Item rejected", "id", id, "title", item.Title)
		return OutcomeRejected, nil

	default:
		return OutcomeFailed, fmt.Errorf("unknown decision: %s", decision)
	}
}

func (q *Queue) publish(item news.PendingItem) error {
	if q.publisher == nil {
		return fmt.Errorf("no publisher configured")
	}
	return q.publisher.Publish(item)
}

func (q *Queue) removePending(pending database.PendingState, idx int) {
	pending.Items = append(pending.Items[:idx], pending.Items[idx+1:]...)
	if err := q.store.ReplacePending(pending); err != nil {
		slog.Error("Failed to persist pending queue", "error", err)
	}
}

func (q *Queue) appendPublished(item news.PendingItem) {
	published := q.store.LoadPublished()
	published = append(published, news.PublishedItem{
		Title:       item.Title,
		Link:        item.Link,
		Source:      item.Source,
		PublishedAt: q.now(),
	})
	if err := q.store.ReplacePublished(published); err != nil {
		slog.Error("Failed to persist published archive", "error", err)
	}
}

func (q *Queue) bumpStatistics(update func(stats *news.Statistics, now time.Time)) {
	stats := q.store.LoadStatistics()
	update(&stats, q.now())
	if err := q.store.ReplaceStatistics(stats); err != nil {
		slog.Error("Failed to persist statistics", "error", err)
	}
}

// Status is a read-only snapshot of the pipeline state.
type Status struct {
	PendingCount   int
	PublishedCount int
	Statistics     news.Statistics
}

func (q *Queue) Status() Status {
	q.mu.Lock()
	defer q.mu.Unlock()

	return Status{
		PendingCount:   len(q.store.LoadPending().Items),
		PublishedCount: len(q.store.LoadPublished()),
		Statistics:     q.store.LoadStatistics(),
	}
}
