package database

import (
	"github.com/umedrahimoff/techstan/app/news"
)

// PendingState is the durable shape of the moderation queue. NextID is an
// explicit monotonically increasing counter persisted alongside the items,
// so identifiers of simultaneously pending items can never collide.
type PendingState struct {
	NextID int                `json:"next_id"`
	Items  []news.PendingItem `json:"items"`
}

// StateStore persists the three pipeline collections. Each collection loads
// and replaces independently and atomically as a whole; there is no
// cross-collection transaction (a crash between two Replace calls is a
// documented recovery gap).
//
// Load methods never fail: missing or malformed durable data degrades to the
// documented default (empty queue / empty archive / zeroed statistics dated
// today) with an error logged. Replace errors mean "not durably applied" -
// callers log them and keep the in-memory result, accepting at-most-once
// durability for that mutation.
type StateStore interface {
	LoadPending() PendingState
	ReplacePending(state PendingState) error

	LoadPublished() []news.PublishedItem
	ReplacePublished(items []news.PublishedItem) error

	LoadStatistics() news.Statistics
	ReplaceStatistics(stats news.Statistics) error
}
