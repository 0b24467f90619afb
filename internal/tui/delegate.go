package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// listItem adapts a Todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
}

func (i listItem) FilterValue() string { return i.todo.Title }

func toListItems(items []model.Todo) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{todo: it})
	}
	return out
}

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	focused bool // highlight the cursor row only while the list has focus
}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	title := it.todo.Title
	if it.todo.Done {
		title = t.Done.Render(title)
	}
	prefix := "  "
	if index == m.Index() && d.focused {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s", prefix, ui.Box(it.todo.Done), title)
}
