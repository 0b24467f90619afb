package model

import (
	"errors"
	"testing"
	"time"
)

func TestToggledIsInvolution(t *testing.T) {
	orig := Todo{ID: 3, Title: "Buy milk", CreatedAt: "2025-01-02T03:04:05.000Z"}
	once := orig.Toggled()
	if !once.Done {
		t.Fatalf("expected done after one toggle")
	}
	twice := once.Toggled()
	if twice != orig {
		t.Fatalf("toggle twice: got %+v, want %+v", twice, orig)
	}
}

func TestCounts(t *testing.T) {
	items := []Todo{{ID: 1, Done: true}, {ID: 2}, {ID: 3}}
	remaining, total := Counts(items)
	if remaining != 2 || total != 3 {
		t.Errorf("Counts: got %d/%d, want 2/3", remaining, total)
	}
	if r, n := Counts(nil); r != 0 || n != 0 {
		t.Errorf("Counts(nil): got %d/%d", r, n)
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		items []Todo
		want  int64
	}{
		{"empty", nil, 1},
		{"sequential", []Todo{{ID: 1}, {ID: 2}}, 3},
		{"max not last", []Todo{{ID: 7}, {ID: 2}}, 8},
		{"unpersisted ignored", []Todo{{Title: "x"}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.items); got != tt.want {
				t.Errorf("NextID: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStamp(t *testing.T) {
	now := time.Date(2025, 12, 21, 10, 30, 0, 123456789, time.FixedZone("X", 3600))
	if got, want := Stamp(now), "2025-12-21T09:30:00.123Z"; got != want {
		t.Errorf("Stamp: got %q, want %q", got, want)
	}
}

func TestValidateCollection(t *testing.T) {
	if err := ValidateCollection([]byte(`[]`)); err != nil {
		t.Fatalf("empty collection: %v", err)
	}
	ok := `[{"id":1,"title":"Buy milk","done":false,"createdAt":"2025-12-21T09:30:00.123Z"}]`
	if err := ValidateCollection([]byte(ok)); err != nil {
		t.Fatalf("valid collection: %v", err)
	}

	bad := []struct {
		name string
		raw  string
		path string
	}{
		{"not an array", `{"title":"x"}`, "$"},
		{"empty title", `[{"id":1,"title":"","done":false}]`, "$[0].title"},
		{"done not bool", `[{"id":1,"title":"a","done":false},{"id":2,"title":"b","done":"yes"}]`, "$[1].done"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCollection([]byte(tt.raw))
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Path != tt.path {
				t.Errorf("path: got %q, want %q", ve.Path, tt.path)
			}
		})
	}

	if err := ValidateCollection([]byte(`[`)); err == nil {
		t.Fatalf("expected error for truncated json")
	}
}
