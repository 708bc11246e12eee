package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todolist/internal/config"
	"todolist/internal/storage"
)

type focus int

const (
	focusDescription focus = iota
	focusDate
	focusTime
	focusAdd
	focusComplete
	focusDelete
	focusList
	focusCount
)

func (f focus) next() focus { return (f + 1) % focusCount }
func (f focus) prev() focus { return (f + focusCount - 1) % focusCount }

func (f focus) isInput() bool { return f <= focusTime }

type dialog struct {
	title   string
	message string
}

type Model struct {
	store  *storage.Store
	cfg    config.Config
	logger *log.Logger
	keys   keyMap
	help   help.Model

	tasks    []storage.Task
	inputs   [3]textinput.Model
	focus    focus
	selected int
	offset   int
	status   string
	dialog   *dialog
	win      window

	err error
}

// Run shows the window until the user closes it. A failed save ends the
// program and is returned.
func Run(store *storage.Store, cfg config.Config, logger *log.Logger) error {
	m := newModel(store, cfg, logger)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func newModel(store *storage.Store, cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.ListHeight <= 0 {
		cfg.ListHeight = config.DefaultListHeight
	}
	placeholders := [3]string{"What needs doing?", "2024-01-31", "09:00"}
	var inputs [3]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = inputWidth
		inputs[i] = ti
	}
	inputs[focusDescription].Focus()

	h := help.New()
	h.Width = contentWidth

	return Model{
		store:    store,
		cfg:      cfg,
		logger:   logger,
		keys:     newKeyMap(cfg.Keys),
		help:     h,
		tasks:    store.Tasks(),
		inputs:   inputs,
		focus:    focusDescription,
		selected: -1,
		status:   fmt.Sprintf("%d task(s) loaded from %s", store.Len(), store.Path()),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.dialog != nil {
			return m.updateDialog(msg)
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		w, h := m.outerSize()
		m.win.resize(msg.Width, msg.Height, w, h)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		cmd := m.focusOn(m.focus.next())
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.focusOn(m.focus.prev())
		return m, cmd
	}

	switch {
	case m.focus.isInput():
		return m.updateInput(msg)
	case m.focus == focusList:
		return m.updateList(msg)
	default:
		return m.updateButton(msg)
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		if m.focus == focusTime {
			cmd := m.activate(focusAdd)
			return m, cmd
		}
		cmd := m.focusOn(m.focus.next())
		return m, cmd
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateButton(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Confirm), msg.String() == " ":
		cmd := m.activate(m.focus)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Cancel):
		m.selected = -1
		m.status = "Selection cleared"
	case key.Matches(msg, m.keys.Complete):
		cmd := m.activate(focusComplete)
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		cmd := m.activate(focusDelete)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm, m.keys.Cancel) || msg.String() == " " {
		m.dialog = nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionRelease:
		m.win.endDrag()
		return m, nil
	case tea.MouseActionMotion:
		w, h := m.outerSize()
		m.win.dragTo(msg.X, msg.Y, w, h)
		return m, nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
	default:
		return m, nil
	}

	t := m.hit(msg.X, msg.Y)
	switch t.kind {
	case targetTitle:
		m.win.startDrag(msg.X, msg.Y)
		return m, nil
	case targetClose:
		m.logger.Info("window closed")
		return m, tea.Quit
	}

	if m.dialog != nil {
		if t.kind == targetOK {
			m.dialog = nil
		}
		return m, nil
	}

	switch t.kind {
	case targetField:
		cmd := m.focusOn(focus(t.index))
		return m, cmd
	case targetButton:
		focusCmd := m.focusOn(focus(t.index))
		cmd := m.activate(focus(t.index))
		return m, tea.Batch(focusCmd, cmd)
	case targetTask:
		cmd := m.focusOn(focusList)
		m.selected = t.index
		return m, cmd
	}
	return m, nil
}

func (m *Model) focusOn(f focus) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = f
	if f.isInput() {
		return m.inputs[f].Focus()
	}
	return nil
}

func (m *Model) moveSelection(delta int) {
	n := len(m.tasks)
	if n == 0 {
		return
	}
	switch {
	case m.selected < 0 && delta > 0:
		m.selected = 0
	case m.selected < 0:
		m.selected = n - 1
	default:
		m.selected = clampCursor(m.selected+delta, n)
	}
	m.scrollToSelection()
}

func (m *Model) scrollToSelection() {
	h := m.cfg.ListHeight
	if m.selected >= 0 {
		if m.selected < m.offset {
			m.offset = m.selected
		}
		if m.selected >= m.offset+h {
			m.offset = m.selected - h + 1
		}
	}
	maxOffset := len(m.tasks) - h
	if maxOffset < 0 {
		maxOffset = 0
	}
	m.offset = clampCursor(m.offset, maxOffset+1)
}

// activate runs the action behind a button.
func (m *Model) activate(f focus) tea.Cmd {
	switch f {
	case focusAdd:
		return m.addTask()
	case focusComplete:
		return m.markCompleted()
	case focusDelete:
		return m.deleteTask()
	}
	return nil
}

func (m *Model) addTask() tea.Cmd {
	desc := m.inputs[focusDescription].Value()
	date := m.inputs[focusDate].Value()
	clock := m.inputs[focusTime].Value()

	err := m.store.Add(desc, date, clock)
	switch {
	case errors.Is(err, storage.ErrMissingDetails):
		m.dialog = &dialog{title: "Warning", message: "Please enter task details."}
		return nil
	case err != nil:
		return m.fail(err)
	}

	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.refresh()
	m.status = "Added task"
	return m.focusOn(focusDescription)
}

func (m *Model) markCompleted() tea.Cmd {
	if m.selected < 0 {
		m.logger.Debug("mark completed ignored, nothing selected")
		return nil
	}
	err := m.store.MarkCompleted(m.selected)
	switch {
	case errors.Is(err, storage.ErrAlreadyCompleted):
		m.dialog = &dialog{title: "Info", message: "Task is already completed."}
		return nil
	case errors.Is(err, storage.ErrNoSelection):
		return nil
	case err != nil:
		return m.fail(err)
	}
	m.refresh()
	m.status = "Marked task completed"
	return nil
}

func (m *Model) deleteTask() tea.Cmd {
	if m.selected < 0 {
		m.logger.Debug("delete ignored, nothing selected")
		return nil
	}
	t, err := m.store.Delete(m.selected)
	switch {
	case errors.Is(err, storage.ErrNoSelection):
		return nil
	case err != nil:
		return m.fail(err)
	}
	m.dialog = &dialog{
		title:   "Info",
		message: fmt.Sprintf("Task '%s' deleted from the to-do list.", t.Description),
	}
	m.refresh()
	m.status = "Deleted task"
	return nil
}

// refresh rebuilds the list from the store. Like any rebuilt list view, it
// drops the selection.
func (m *Model) refresh() {
	m.tasks = m.store.Tasks()
	m.selected = -1
	m.scrollToSelection()
}

func (m *Model) fail(err error) tea.Cmd {
	m.err = err
	m.logger.Error("saving tasks failed", "path", m.store.Path(), "err", err)
	return tea.Quit
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
