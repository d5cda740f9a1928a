package news

import (
	"time"
)

// Candidate is a raw article record produced by source extraction, not yet
// judged relevant or duplicate. Candidates are never persisted.
type Candidate struct {
	Title  string
	Link   string
	Source string
}

// PendingItem is a candidate admitted into the moderation queue, awaiting a
// human decision.
type PendingItem struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// PublishedItem is an approved item promoted out of the moderation queue.
// The published archive is append-only.
type PublishedItem struct {
	Title       string    `json:"title,omitempty"`
	Link        string    `json:"link"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Statistics tracks parse/publish/reject counters, daily and cumulative.
type Statistics struct {
	ParsedToday    int    `json:"parsed_today"`
	PublishedToday int    `json:"published_today"`
	RejectedToday  int    `json:"rejected_today"`
	TotalParsed    int    `json:"total_parsed"`
	TotalPublished int    `json:"total_published"`
	TotalRejected  int    `json:"total_rejected"`
	LastResetDate  string `json:"last_reset_date"`
}

const dateLayout = "2006-01-02"

// NewStatistics returns zeroed statistics dated with the given day.
func NewStatistics(now time.Time) Statistics {
	return Statistics{LastResetDate: now.Format(dateLayout)}
}

// RollOver resets the daily counters when the date has advanced past
// LastResetDate. It must run before the increment of the event that
// triggered it, so that the event lands in the fresh day's counters.
func (s *Statistics) RollOver(now time.Time) {
	today := now.Format(dateLayout)
	if s.LastResetDate == today {
		return
	}
	s.ParsedToday = 0
	s.PublishedToday = 0
	s.RejectedToday = 0
	s.LastResetDate = today
}

// AddParsed records newly admitted candidates.
func (s *Statistics) AddParsed(now time.Time, count int) {
	s.RollOver(now)
	s.ParsedToday += count
	s.TotalParsed += count
}

// AddPublished records an approved and published item.
func (s *Statistics) AddPublished(now time.Time) {
	s.RollOver(now)
	s.PublishedToday++
	s.TotalPublished++
}

// AddRejected records a rejected item.
func (s *Statistics) AddRejected(now time.Time) {
	s.RollOver(now)
	s.RejectedToday++
	s.TotalRejected++
}
