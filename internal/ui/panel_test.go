package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, ".......... 0/0"},
		{1, 2, 10, "#####..... 1/2"},
		{3, 3, 4, "##### 3/3"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d,%d,%d): got %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestHeader(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	got := Header("local", 2, 5)
	for _, want := range []string{"Todos", "Mode: LOCAL", "Remaining: 2", "Total: 5"} {
		if !strings.Contains(got, want) {
			t.Errorf("Header missing %q: %q", want, got)
		}
	}
}

func TestPanelAndMessages(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	p := Panel([]string{"a", "bb"})
	if !strings.Contains(p, "│ a  │") || !strings.HasPrefix(p, "┌") {
		t.Errorf("unexpected panel:\n%s", p)
	}

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	if buf.String() != "x added\n✖ nope\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
	if Box(true) != "[x]" || Box(false) != "[ ]" {
		t.Errorf("unexpected boxes %q %q", Box(true), Box(false))
	}
}
