package model

import "time"

// TimeLayout matches the ISO-8601 form the local backend stamps on new records.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Todo is the domain model for a todo entry.
// ID is zero until a backend has persisted the record.
type Todo struct {
	ID        int64  `json:"id,omitempty"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// HasID reports whether the record was assigned an id by a backend.
func (t Todo) HasID() bool { return t.ID != 0 }

// Toggled returns a copy with Done flipped.
func (t Todo) Toggled() Todo {
	t.Done = !t.Done
	return t
}

// Stamp formats now the way createdAt is stored.
func Stamp(now time.Time) string {
	return now.UTC().Format(TimeLayout)
}

// Counts returns the number of pending items and the total.
func Counts(items []Todo) (remaining, total int) {
	for _, it := range items {
		if !it.Done {
			remaining++
		}
	}
	return remaining, len(items)
}

// IndexOf returns the position of the first record with id, or -1.
func IndexOf(items []Todo, id int64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// NextID is one past the largest id in items (1 for an empty collection).
func NextID(items []Todo) int64 {
	var max int64
	for _, it := range items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}
