package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

// CollectionKey is where the local backend keeps the whole collection.
const CollectionKey = "todos_v1"

// Local persists the collection as one JSON array in a KV.
// Every operation reads the whole collection, edits it and writes it back.
type Local struct {
	kv     KV
	now    func() time.Time
	logger *log.Logger

	mu sync.Mutex // one read-modify-write at a time
}

// NewLocal wraps kv. A nil now uses time.Now.
func NewLocal(kv KV, now func() time.Time, logger *log.Logger) *Local {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Local{kv: kv, now: now, logger: logger}
}

// Raw returns the persisted bytes under CollectionKey, or nil if nothing was written yet.
func (l *Local) Raw() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, found, err := l.kv.Get(CollectionKey)
	if err != nil || !found {
		return nil, err
	}
	return b, nil
}

func (l *Local) read() ([]model.Todo, error) {
	b, found, err := l.kv.Get(CollectionKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return []model.Todo{}, nil
	}
	var items []model.Todo
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Todo{}
	}
	return items, nil
}

func (l *Local) write(items []model.Todo) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return l.kv.Set(CollectionKey, b)
}

func (l *Local) List(_ context.Context) ([]model.Todo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

func (l *Local) Create(_ context.Context, title string) (model.Todo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	items, err := l.read()
	if err != nil {
		return model.Todo{}, err
	}
	t := model.Todo{
		ID:        model.NextID(items),
		Title:     title,
		Done:      false,
		CreatedAt: model.Stamp(l.now()),
	}
	if err := l.write(append(items, t)); err != nil {
		return model.Todo{}, err
	}
	l.logger.Debug("created", "backend", ModeLocal, "id", t.ID)
	return t, nil
}

func (l *Local) Toggle(_ context.Context, t model.Todo) (model.Todo, error) {
	updated := t.Toggled()
	l.mu.Lock()
	defer l.mu.Unlock()
	items, err := l.read()
	if err != nil {
		return model.Todo{}, err
	}
	for i := range items {
		if items[i].ID == t.ID {
			items[i] = updated
		}
	}
	if err := l.write(items); err != nil {
		return model.Todo{}, err
	}
	l.logger.Debug("toggled", "backend", ModeLocal, "id", t.ID, "done", updated.Done)
	return updated, nil
}

func (l *Local) Delete(_ context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	items, err := l.read()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if err := l.write(kept); err != nil {
		return err
	}
	l.logger.Debug("deleted", "backend", ModeLocal, "id", id)
	return nil
}
