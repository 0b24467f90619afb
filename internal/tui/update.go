package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
)

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case loadedMsg:
		m.mode = msg.mode
		if msg.err != nil {
			m.fail("load", msg.err)
			return m, nil
		}
		m.items = msg.items
		m.syncList()
		return m, nil

	case createdMsg:
		if msg.err != nil {
			m.fail("create", msg.err)
			return m, nil
		}
		m.input.SetValue("")
		m.items = append(m.items, msg.todo)
		m.syncList()
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.fail("toggle", msg.err)
			return m, nil
		}
		for i := range m.items {
			if m.items[i].ID == msg.todo.ID {
				m.items[i] = msg.todo
			}
		}
		m.syncList()
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.fail("delete", msg.err)
			return m, nil
		}
		kept := make([]model.Todo, 0, len(m.items))
		for _, it := range m.items {
			if it.ID != msg.id {
				kept = append(kept, it)
			}
		}
		m.items = kept
		m.syncList()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Focus) {
			next := focusList
			if m.focus == focusList {
				next = focusInput
			}
			return m, m.setFocus(next)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.add()
	case "ctrl+r":
		return m.refresh()
	case "esc":
		return m, m.setFocus(focusList)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m modelTUI) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m.toggle(t)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			return m.remove(t.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	case msg.String() == "a" || msg.String() == "i":
		return m, m.setFocus(focusInput)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Actions. Each clears the error slot, then hands the storage call to Bubble
// Tea; the result is applied when its message arrives.

func (m modelTUI) add() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	title := strings.TrimSpace(m.input.Value())
	if title == "" {
		return m, nil
	}
	ctx, backend := m.ctx, m.backend
	return m, func() tea.Msg {
		t, err := backend.Create(ctx, title)
		return createdMsg{todo: t, err: err}
	}
}

func (m modelTUI) toggle(t model.Todo) (tea.Model, tea.Cmd) {
	if !t.HasID() {
		return m, nil
	}
	m.errMsg = ""
	ctx, backend := m.ctx, m.backend
	return m, func() tea.Msg {
		updated, err := backend.Toggle(ctx, t)
		return toggledMsg{todo: updated, err: err}
	}
}

func (m modelTUI) remove(id int64) (tea.Model, tea.Cmd) {
	if id == 0 {
		return m, nil
	}
	m.errMsg = ""
	ctx, backend := m.ctx, m.backend
	return m, func() tea.Msg {
		return deletedMsg{id: id, err: backend.Delete(ctx, id)}
	}
}

func (m modelTUI) refresh() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	return m, m.load()
}

// fail records err in the single error slot; the last failure wins.
func (m *modelTUI) fail(op string, err error) {
	m.logger.Warn("action failed", "op", op, "err", err)
	m.errMsg = err.Error()
}
