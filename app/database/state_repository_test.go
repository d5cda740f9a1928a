package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/umedrahimoff/techstan/app/news"
)

func newTestRepository(t *testing.T) *StateRepository {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewStateRepository(db)
}

func (r *StateRepository) putRaw(t *testing.T, name, data string) {
	t.Helper()
	_, err := r.db.Exec(`
		INSERT INTO collections (name, data) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET data = excluded.data
	`, name, []byte(data))
	if err != nil {
		t.Fatalf("Failed to seed collection %s: %v", name, err)
	}
}

func TestStateRepository_PendingRoundTrip(t *testing.T) {
	repo := newTestRepository(t)

	submitted := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := PendingState{
		NextID: 3,
		Items: []news.PendingItem{
			{ID: 1, Title: "Первая новость", Link: "https://spot.uz/a", Source: "Spot.uz", SubmittedAt: submitted},
			{ID: 2, Title: "Вторая новость", Link: "https://spot.uz/b", Source: "Spot.uz", SubmittedAt: submitted},
		},
	}

	if err := repo.ReplacePending(state); err != nil {
		t.Fatalf("ReplacePending failed: %v", err)
	}

	loaded := repo.LoadPending()
	if loaded.NextID != 3 {
		t.Errorf("NextID = %d, expected 3", loaded.NextID)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("Expected 2 pending items, got %d", len(loaded.Items))
	}
	if loaded.Items[0].Title != "Первая новость" {
		t.Errorf("Title = %q, expected unchanged title", loaded.Items[0].Title)
	}
	if !loaded.Items[1].SubmittedAt.Equal(submitted) {
		t.Errorf("SubmittedAt = %v, expected %v", loaded.Items[1].SubmittedAt, submitted)
	}
}

func TestStateRepository_PendingLegacyArray(t *testing.T) {
	repo := newTestRepository(t)

	repo.putRaw(t, collectionPending, `[
		{"id": 0, "title": "Old entry", "link": "https://example.kz/old"},
		{"id": 4, "title": "Newer entry", "link": "https://example.kz/newer"}
	]`)

	state := repo.LoadPending()
	if len(state.Items) != 2 {
		t.Fatalf("Expected 2 items from legacy array, got %d", len(state.Items))
	}
	if state.NextID != 5 {
		t.Errorf("NextID = %d, expected max(id)+1 = 5", state.NextID)
	}
}

func TestStateRepository_PublishedRoundTrip(t *testing.T) {
	repo := newTestRepository(t)

	published := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
	items := []news.PublishedItem{
		{Title: "Опубликовано", Link: "https://spot.uz/x", Source: "Spot.uz", PublishedAt: published},
	}

	if err := repo.ReplacePublished(items); err != nil {
		t.Fatalf("ReplacePublished failed: %v", err)
	}

	loaded := repo.LoadPublished()
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 published item, got %d", len(loaded))
	}
	if loaded[0].Link != "https://spot.uz/x" {
		t.Errorf("Link = %q, expected https://spot.uz/x", loaded[0].Link)
	}
	if !loaded[0].PublishedAt.Equal(published) {
		t.Errorf("PublishedAt = %v, expected %v", loaded[0].PublishedAt, published)
	}
}

func TestStateRepository_PublishedLegacyStrings(t *testing.T) {
	repo := newTestRepository(t)

	repo.putRaw(t, collectionPublished, `[
		"https://digitalbusiness.kz/legacy-article",
		{"title": "Current shape", "link": "https://spot.uz/current"}
	]`)

	items := repo.LoadPublished()
	if len(items) != 2 {
		t.Fatalf("Expected 2 published entries, got %d", len(items))
	}
	if items[0].Link != "https://digitalbusiness.kz/legacy-article" {
		t.Errorf("Legacy entry link = %q", items[0].Link)
	}
	if items[0].Title != "" {
		t.Errorf("Legacy entry should carry only a link, got title %q", items[0].Title)
	}

	links := news.KnownLinks(nil, items)
	if links.IsNew("https://digitalbusiness.kz/legacy-article") {
		t.Error("legacy link should participate in the dedup index")
	}
}

func TestStateRepository_StatisticsRoundTrip(t *testing.T) {
	repo := newTestRepository(t)

	stats := news.Statistics{
		ParsedToday:    4,
		PublishedToday: 2,
		RejectedToday:  1,
		TotalParsed:    40,
		TotalPublished: 20,
		TotalRejected:  10,
		LastResetDate:  "2025-06-01",
	}

	if err := repo.ReplaceStatistics(stats); err != nil {
		t.Fatalf("ReplaceStatistics failed: %v", err)
	}

	loaded := repo.LoadStatistics()
	if loaded != stats {
		t.Errorf("LoadStatistics = %+v, expected %+v", loaded, stats)
	}
}

func TestStateRepository_Defaults(t *testing.T) {
	repo := newTestRepository(t)

	if state := repo.LoadPending(); len(state.Items) != 0 || state.NextID != 0 {
		t.Errorf("LoadPending on empty store = %+v, expected empty state", state)
	}
	if items := repo.LoadPublished(); len(items) != 0 {
		t.Errorf("LoadPublished on empty store returned %d items", len(items))
	}

	stats := repo.LoadStatistics()
	if stats.TotalParsed != 0 || stats.ParsedToday != 0 {
		t.Errorf("LoadStatistics on empty store = %+v, expected zeroed counters", stats)
	}
	if stats.LastResetDate != time.Now().Format("2006-01-02") {
		t.Errorf("LastResetDate = %q, expected today", stats.LastResetDate)
	}
}

func TestStateRepository_MalformedDataFallsBack(t *testing.T) {
	repo := newTestRepository(t)

	repo.putRaw(t, collectionPending, `{not valid json`)
	repo.putRaw(t, collectionPublished, `{"also": "wrong shape"}`)
	repo.putRaw(t, collectionStatistics, `[]`)

	if state := repo.LoadPending(); len(state.Items) != 0 {
		t.Error("malformed pending data should degrade to an empty queue")
	}
	if items := repo.LoadPublished(); len(items) != 0 {
		t.Error("malformed published data should degrade to an empty archive")
	}
	if stats := repo.LoadStatistics(); stats.TotalParsed != 0 {
		t.Error("malformed statistics should degrade to zeroed counters")
	}
}
