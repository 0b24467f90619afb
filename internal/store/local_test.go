package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

var fixedNow = time.Date(2025, 12, 21, 9, 30, 0, 0, time.UTC)

func newLocalDrivers(t *testing.T) map[string]*Local {
	t.Helper()
	sq, err := sqlitestore.Open(context.Background(), filepath.Join(t.TempDir(), "tada.sqlite"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })
	now := func() time.Time { return fixedNow }
	return map[string]*Local{
		DriverJSON:   NewLocal(jsonstore.New(t.TempDir()), now, nil),
		DriverSQLite: NewLocal(sq, now, nil),
	}
}

func TestLocal_CreateOnEmptyStorage(t *testing.T) {
	for name, l := range newLocalDrivers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			got, err := l.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty non-nil list, got %#v", got)
			}

			created, err := l.Create(ctx, "Buy milk")
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			want := model.Todo{ID: 1, Title: "Buy milk", Done: false, CreatedAt: "2025-12-21T09:30:00.000Z"}
			if created != want {
				t.Fatalf("Create: got %+v, want %+v", created, want)
			}

			got, err = l.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != 1 || got[0] != want {
				t.Fatalf("List after create: got %+v", got)
			}
		})
	}
}

func TestLocal_IDsUseMaximum(t *testing.T) {
	kv := jsonstore.New(t.TempDir())
	seed, _ := json.Marshal([]model.Todo{{ID: 5, Title: "a"}, {ID: 2, Title: "b"}})
	if err := kv.Set(CollectionKey, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	l := NewLocal(kv, nil, nil)
	created, err := l.Create(context.Background(), "c")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 6 {
		t.Fatalf("expected id 6, got %d", created.ID)
	}
	if created.CreatedAt == "" {
		t.Fatalf("expected createdAt to be stamped")
	}
}

func TestLocal_ToggleTwice(t *testing.T) {
	for name, l := range newLocalDrivers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			item, err := l.Create(ctx, "Walk dog")
			if err != nil {
				t.Fatalf("Create: %v", err)
			}

			on, err := l.Toggle(ctx, item)
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if !on.Done || on.ID != item.ID || on.Title != item.Title {
				t.Fatalf("first toggle: got %+v", on)
			}
			list, _ := l.List(ctx)
			if !list[0].Done {
				t.Fatalf("expected persisted done=true, got %+v", list[0])
			}

			off, err := l.Toggle(ctx, on)
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if off != item {
				t.Fatalf("second toggle: got %+v, want %+v", off, item)
			}
			list, _ = l.List(ctx)
			if list[0] != item {
				t.Fatalf("persisted after two toggles: got %+v", list[0])
			}
		})
	}
}

func TestLocal_ToggleUnknownIDLeavesCollection(t *testing.T) {
	l := NewLocal(jsonstore.New(t.TempDir()), nil, nil)
	ctx := context.Background()
	a, _ := l.Create(ctx, "a")
	got, err := l.Toggle(ctx, model.Todo{ID: 99, Title: "ghost"})
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !got.Done {
		t.Fatalf("expected flipped record back, got %+v", got)
	}
	list, _ := l.List(ctx)
	if len(list) != 1 || list[0] != a {
		t.Fatalf("collection changed: %+v", list)
	}
}

func TestLocal_Delete(t *testing.T) {
	for name, l := range newLocalDrivers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a, _ := l.Create(ctx, "a")
			b, _ := l.Create(ctx, "b")
			c, _ := l.Create(ctx, "c")

			if err := l.Delete(ctx, b.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			list, _ := l.List(ctx)
			if len(list) != 2 || list[0] != a || list[1] != c {
				t.Fatalf("after delete: %+v", list)
			}

			// absent id is a no-op
			if err := l.Delete(ctx, b.ID); err != nil {
				t.Fatalf("Delete absent: %v", err)
			}
			list, _ = l.List(ctx)
			if len(list) != 2 {
				t.Fatalf("absent delete changed list: %+v", list)
			}
		})
	}
}

func TestLocal_CreateAppearsOnce(t *testing.T) {
	l := NewLocal(jsonstore.New(t.TempDir()), nil, nil)
	ctx := context.Background()
	for _, title := range []string{"one", "two", "three"} {
		if _, err := l.Create(ctx, title); err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
	}
	list, _ := l.List(ctx)
	seen := map[int64]int{}
	for _, it := range list {
		seen[it.ID]++
		if it.Done {
			t.Errorf("new item %d created done", it.ID)
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("id %d appears %d times", id, n)
		}
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 items, got %d", len(list))
	}
}

func TestLocal_CorruptCollection(t *testing.T) {
	kv := jsonstore.New(t.TempDir())
	if err := kv.Set(CollectionKey, []byte(`{"not":"an array"}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	l := NewLocal(kv, nil, nil)
	if _, err := l.List(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}
