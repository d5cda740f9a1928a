package database

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/umedrahimoff/techstan/app/news"
)

const (
	collectionPending    = "pending"
	collectionPublished  = "published"
	collectionStatistics = "statistics"
)

// StateRepository implements StateStore over the collections table, storing
// each collection as a single JSON document replaced as a whole.
type StateRepository struct {
	db *DB
}

var _ StateStore = (*StateRepository)(nil)

func NewStateRepository(db *DB) *StateRepository {
	return &StateRepository{db: db}
}

func (r *StateRepository) LoadPending() PendingState {
	data, ok := r.loadCollection(collectionPending)
	if !ok {
		return PendingState{}
	}

	state, err := decodePending(data)
	if err != nil {
		slog.Error("Malformed pending collection, starting fresh", "error", err)
		return PendingState{}
	}

	return state
}

func (r *StateRepository) ReplacePending(state PendingState) error {
	if state.Items == nil {
		state.Items = []news.PendingItem{}
	}
	return r.replaceCollection(collectionPending, state)
}

func (r *StateRepository) LoadPublished() []news.PublishedItem {
	data, ok := r.loadCollection(collectionPublished)
	if !ok {
		return nil
	}

	items, err := decodePublished(data)
	if err != nil {
		slog.Error("Malformed published collection, starting fresh", "error", err)
		return nil
	}

	return items
}

func (r *StateRepository) ReplacePublished(items []news.PublishedItem) error {
	if items == nil {
		items = []news.PublishedItem{}
	}
	return r.replaceCollection(collectionPublished, items)
}

func (r *StateRepository) LoadStatistics() news.Statistics {
	data, ok := r.loadCollection(collectionStatistics)
	if !ok {
		return news.NewStatistics(time.Now())
	}

	var stats news.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		slog.Error("Malformed statistics collection, starting fresh", "error", err)
		return news.NewStatistics(time.Now())
	}
	if stats.LastResetDate == "" {
		stats.LastResetDate = time.Now().Format("2006-01-02")
	}

	return stats
}

func (r *StateRepository) ReplaceStatistics(stats news.Statistics) error {
	return r.replaceCollection(collectionStatistics, stats)
}

func (r *StateRepository) loadCollection(name string) ([]byte, bool) {
	var data []byte
	err := r.db.QueryRow("SELECT data FROM collections WHERE name = ?", name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		slog.Error("Failed to load collection", "collection", name, "error", err)
		return nil, false
	}
	return data, true
}

func (r *StateRepository) replaceCollection(name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s collection: %w", name, err)
	}

	_, err = r.db.Exec(`
		INSERT INTO collections (name, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, name, data)
	if err != nil {
		return fmt.Errorf("failed to replace %s collection: %w", name, err)
	}

	return nil
}

// decodePending accepts both the current document shape and the legacy one,
// a bare JSON array of items without a counter. For legacy data the counter
// is rebuilt as max(id)+1.
func decodePending(data []byte) (PendingState, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []news.PendingItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return PendingState{}, err
		}
		nextID := 0
		for _, item := range items {
			if item.ID >= nextID {
				nextID = item.ID + 1
			}
		}
		return PendingState{NextID: nextID, Items: items}, nil
	}

	var state PendingState
	if err := json.Unmarshal(trimmed, &state); err != nil {
		return PendingState{}, err
	}
	return state, nil
}

// decodePublished accepts archive entries in both shapes: full item objects
// and legacy bare link strings. Both normalize to their link for dedup.
func decodePublished(data []byte) ([]news.PublishedItem, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	items := make([]news.PublishedItem, 0, len(raw))
	for i, entry := range raw {
		trimmed := bytes.TrimSpace(entry)
		if len(trimmed) > 0 && trimmed[0] == '"' {
			var link string
			if err := json.Unmarshal(trimmed, &link); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			items = append(items, news.PublishedItem{Link: link})
			continue
		}

		var item news.PublishedItem
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		items = append(items, item)
	}

	return items, nil
}
