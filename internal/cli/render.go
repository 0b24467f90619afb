package cli

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

// -------------- rendering helpers --------------

func listLines(mode store.Mode, items []model.Todo, group bool) []string {
	t := ui.Current()
	remaining, total := model.Counts(items)

	var lines []string
	lines = append(lines, ui.Header(string(mode), remaining, total))
	lines = append(lines, t.Muted.Render(ui.ProgressBar(total-remaining, total, 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `tada add \"Buy milk\"`"))
	return lines
}

func flatLines(items []model.Todo) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		title := it.Title
		if r := []rune(title); len(r) > 80 {
			title = string(r[:77]) + "..."
		}
		if it.Done {
			title = t.Done.Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%3s", fmt.Sprintf("#%d", it.ID))), ui.Box(it.Done), title))
	}
	return out
}

func groupLines(items []model.Todo) []string {
	t := ui.Current()
	var pend, done []model.Todo
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
