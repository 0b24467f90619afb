package jsonstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetMissingKey(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested"))
	b, ok, err := s.Get("todos_v1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || b != nil {
		t.Fatalf("expected not found, got ok=%v b=%q", ok, b)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Set("todos_v1", []byte(`[{"id":1,"title":"a","done":false}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("todos_v1", []byte(`[]`)); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	b, ok, err := s.Get("todos_v1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if strings.TrimSpace(string(b)) != "[]" {
		t.Fatalf("expected last write to win, got %q", b)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "todos_v1.json" {
		t.Fatalf("unexpected files left behind: %v", entries)
	}
}

func TestSetIndentsJSON(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Set("k", []byte(`[{"title":"a"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "k.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), "\n  {") {
		t.Fatalf("expected indented json, got %q", b)
	}
}

func TestRejectsPathKeys(t *testing.T) {
	s := New(t.TempDir())
	for _, key := range []string{"", "../escape", "a/b"} {
		if err := s.Set(key, []byte(`1`)); err == nil {
			t.Errorf("Set(%q): expected error", key)
		}
	}
}
