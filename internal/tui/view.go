package tui

import (
	"github.com/charmbracelet/bubbles/help"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

func (m modelTUI) View() string {
	t := ui.Current()
	remaining, total := model.Counts(m.items)

	lines := []string{
		ui.Header(string(m.mode), remaining, total),
		t.Muted.Render(ui.ProgressBar(total-remaining, total, 28)),
		m.input.View(),
	}
	if m.errMsg != "" {
		lines = append(lines, t.Error.Render(m.errMsg))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.list.View(), "", m.helpView())
	return ui.Panel(lines)
}

func (m modelTUI) helpView() string {
	var km help.KeyMap = listKeys{m.keys}
	if m.focus == focusInput {
		km = inputKeys{m.keys}
	}
	return m.help.View(km)
}
