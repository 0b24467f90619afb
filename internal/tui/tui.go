// Package tui is the interactive todo view. It owns the in-memory UI state and
// turns key presses into storage calls whose results come back as messages.
package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Backend is what the view needs from the storage layer.
type Backend interface {
	store.Store
	DetectMode(ctx context.Context) store.Mode
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// chrome is the number of lines around the list: border, header, bar,
// input, error, blank and help.
const chrome = 8

type modelTUI struct {
	ctx     context.Context
	backend Backend
	logger  *log.Logger

	// UI state
	mode   store.Mode
	items  []model.Todo
	input  textinput.Model // the draft title
	errMsg string

	focus  focusArea
	list   list.Model
	keys   keyMap
	help   help.Model
	width  int
	height int
}

// Result messages. Each carries everything Update needs to apply or report it.
type (
	loadedMsg struct {
		mode  store.Mode
		items []model.Todo
		err   error
	}
	createdMsg struct {
		todo model.Todo
		err  error
	}
	toggledMsg struct {
		todo model.Todo
		err  error
	}
	deletedMsg struct {
		id  int64
		err error
	}
)

func newModel(ctx context.Context, backend Backend, logger *log.Logger) modelTUI {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add a todo…"
	ti.CharLimit = 200
	ti.Focus()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.NoItems = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted

	m := modelTUI{
		ctx:     ctx,
		backend: backend,
		logger:  logger,
		mode:    store.ModeLocal,
		items:   []model.Todo{},
		input:   ti,
		focus:   focusInput,
		list:    l,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.resize(80, 24)
	return m
}

// Run starts the view and blocks until the user quits.
func Run(ctx context.Context, backend Backend, logger *log.Logger) error {
	p := tea.NewProgram(newModel(ctx, backend, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m modelTUI) Init() tea.Cmd {
	return tea.Batch(m.load(), textinput.Blink)
}

// load detects the mode, then lists everything.
func (m modelTUI) load() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		mode := backend.DetectMode(ctx)
		items, err := backend.List(ctx)
		return loadedMsg{mode: mode, items: items, err: err}
	}
}

func (m *modelTUI) resize(w, h int) {
	m.width, m.height = w, h
	m.input.Width = max(w-8, 10)
	m.help.Width = w - 4
	m.list.SetSize(max(w-4, 10), max(h-chrome, 1))
}

func (m *modelTUI) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.list.SetDelegate(itemDelegate{focused: f == focusList})
	if f == focusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// syncList pushes m.items into the list widget, keeping the cursor in range.
func (m *modelTUI) syncList() {
	idx := m.list.Index()
	m.list.SetItems(toListItems(m.items))
	if n := len(m.items); n > 0 {
		m.list.Select(min(idx, n-1))
	}
}

func (m modelTUI) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}
