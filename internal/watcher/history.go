package watcher

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChangeType labels what happened to a file.
type ChangeType string

const (
	ChangeCreated  ChangeType = "created"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
)

// ChangeRecord is one debounced file change.
type ChangeRecord struct {
	ID        string     `json:"id"`
	Path      string     `json:"path"`
	Type      ChangeType `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
}

// History is a fixed-capacity ring of change records. When full, recording
// a new change evicts the oldest. Reads return newest first.
type History struct {
	mu       sync.Mutex
	records  []ChangeRecord
	capacity int
	next     int
	size     int
}

// NewHistory creates a history holding at most capacity records.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		records:  make([]ChangeRecord, capacity),
		capacity: capacity,
	}
}

// Record appends a change, evicting the oldest record when full.
func (h *History) Record(path string, changeType ChangeType) ChangeRecord {
	rec := ChangeRecord{
		ID:        uuid.New().String(),
		Path:      path,
		Type:      changeType,
		Timestamp: time.Now(),
	}

	h.mu.Lock()
	h.records[h.next] = rec
	h.next = (h.next + 1) % h.capacity
	if h.size < h.capacity {
		h.size++
	}
	h.mu.Unlock()

	return rec
}

// Since returns records with a timestamp at or after cutoff, newest first.
func (h *History) Since(cutoff time.Time) []ChangeRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]ChangeRecord, 0, h.size)
	for i := 0; i < h.size; i++ {
		// Walk backwards from the most recent slot
		idx := (h.next - 1 - i + h.capacity) % h.capacity
		rec := h.records[idx]
		if rec.Timestamp.Before(cutoff) {
			break
		}
		out = append(out, rec)
	}
	return out
}

// Len returns how many records are held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}
