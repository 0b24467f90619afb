package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a bar with the done/total ratio.
func ProgressBar(done, total, width int) string {
	t := Current()
	if width < 5 {
		width = 5
	}
	filled := 0
	if total > 0 {
		filled = int(float64(done) / float64(total) * float64(width))
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
	return fmt.Sprintf("%s %d/%d", bar, done, total)
}

// Panel frames lines in a bordered box using the current theme.
func Panel(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Header is the one-line summary shown above the list.
func Header(mode string, remaining, total int) string {
	t := Current()
	return fmt.Sprintf("%s   Mode: %s %s Remaining: %s %s Total: %s",
		t.Title.Render("Todos"),
		t.Accent.Render(strings.ToUpper(mode)),
		t.Muted.Render("•"),
		t.Pending.Render(fmt.Sprint(remaining)),
		t.Muted.Render("•"),
		t.Accent.Render(fmt.Sprint(total)),
	)
}

// Box returns the checkbox glyph for done.
func Box(done bool) string {
	t := Current()
	if done {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Error.Render("✖ "+msg))
}
