package tui

import (
	"errors"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/thand-io/directory/internal/common"
	"github.com/thand-io/directory/internal/console"
	"github.com/thand-io/directory/internal/models"
	"github.com/thand-io/directory/internal/table"
)

// ActivitySource supplies recent log entries for the activity pane.
type ActivitySource interface {
	GetRecentEvents(count int) []*models.LogEntry
}

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayForm
	overlayConfirm
	overlayPicker
)

// refreshMsg asks for a repaint after a toast or message changed on a timer.
type refreshMsg struct{}

type Model struct {
	console  *console.Console
	activity ActivitySource

	width  int
	height int
	cursor int

	overlay      overlayKind
	inputs       []textinput.Model
	fieldNames   []string
	focus        int
	pending      *console.PendingDelete
	pickerCursor int

	keys     keyMap
	help     help.Model
	quitting bool
}

type Option func(*Model)

func WithActivity(activity ActivitySource) Option {
	return func(m *Model) {
		m.activity = activity
	}
}

func New(c *console.Console, opts ...Option) Model {
	m := Model{
		console: c,
		keys:    listKeys,
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the full screen program and blocks until it exits.
func Run(c *console.Console, opts ...Option) error {
	_, err := newProgram(c, opts, tea.WithAltScreen()).Run()
	return err
}

// newProgram builds the program and repaints it whenever the console
// raises a toast or message.
func newProgram(c *console.Console, opts []Option, programOpts ...tea.ProgramOption) *tea.Program {
	program := tea.NewProgram(New(c, opts...), programOpts...)

	// Subscribers fire from inside Update, where a blocking Send would wait
	// on the event loop running that same Update.
	c.Subscribe(func() {
		go program.Send(refreshMsg{})
	})

	return program
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, forceQuit) {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.overlay {
		case overlayForm:
			return m.updateForm(msg)
		case overlayConfirm:
			return m.updateConfirm(msg)
		case overlayPicker:
			return m.updatePicker(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	section := m.console.Active()
	rows := m.rows()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Section):
		index := slices.Index(console.Sections, section)
		m.open(console.Sections[(index+1)%len(console.Sections)])

	case key.Matches(msg, m.keys.Users):
		m.open(console.SectionUsers)

	case key.Matches(msg, m.keys.Groups):
		m.open(console.SectionGroups)

	case key.Matches(msg, m.keys.Roles):
		m.open(console.SectionRoles)

	case key.Matches(msg, m.keys.Add):
		if err := m.console.Add(section); err == nil {
			cmd := m.openForm()
			return m, cmd
		}

	case key.Matches(msg, m.keys.Edit):
		index, ok := m.selected(table.ActionUpdate)
		if !ok {
			return m, nil
		}
		if err := m.console.Edit(section, index); err == nil {
			cmd := m.openForm()
			return m, cmd
		}

	case key.Matches(msg, m.keys.Delete):
		index, ok := m.selected(table.ActionDelete)
		if !ok {
			return m, nil
		}
		pending, err := m.console.RequestDelete(section, index)
		if err != nil {
			logrus.WithError(err).Debugln("Delete request rejected")
			return m, nil
		}
		m.pending = pending
		m.overlay = overlayConfirm

	case key.Matches(msg, m.keys.Assign):
		index, ok := m.selected(table.ActionAssign)
		if !ok {
			return m, nil
		}
		if _, err := m.console.OpenAssign(index); err == nil {
			m.overlay = overlayPicker
			m.pickerCursor = 0
		}

	case key.Matches(msg, m.keys.Remove):
		index, ok := m.selected(table.ActionRemoveMembers)
		if !ok {
			return m, nil
		}
		if _, err := m.console.OpenRemoveMembers(index); err == nil {
			m.overlay = overlayPicker
			m.pickerCursor = 0
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	section := m.console.Active()

	switch {
	case key.Matches(msg, cancel):
		m.console.CloseModal(section)
		m.closeOverlay()
		return m, nil

	case key.Matches(msg, submit):
		for i, input := range m.inputs {
			m.console.SetField(section, m.fieldNames[i], input.Value())
		}

		_, err := m.console.Submit(section)
		var validationErr *common.ValidationError
		if errors.As(err, &validationErr) {
			// The message is shown by the view; the form stays open.
			return m, nil
		}

		m.closeOverlay()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, nextField):
		cmd := m.focusField(m.focus + 1)
		return m, cmd

	case key.Matches(msg, prevField):
		cmd := m.focusField(m.focus - 1)
		return m, cmd
	}

	if len(m.inputs) == 0 {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, confirm):
		if err := m.pending.Confirm(); err != nil {
			logrus.WithError(err).Debugln("Delete did not complete")
		}
		m.closeOverlay()
		m.clampCursor()

	case key.Matches(msg, decline):
		m.pending.Decline()
		m.closeOverlay()
	}

	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	picker := m.console.Picker()
	if picker == nil {
		m.closeOverlay()
		return m, nil
	}

	options := picker.Options()

	switch {
	case key.Matches(msg, cancel):
		picker.Cancel()
		m.closeOverlay()

	case key.Matches(msg, submit):
		if err := picker.Save(); err != nil {
			logrus.WithError(err).Debugln("Member change did not complete")
		}
		m.closeOverlay()

	case key.Matches(msg, toggle):
		picker.Toggle(m.pickerCursor)

	case key.Matches(msg, m.keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.pickerCursor < len(options)-1 {
			m.pickerCursor++
		}
	}

	return m, nil
}

func (m *Model) open(section console.Section) {
	if _, err := m.console.Open(section); err != nil {
		return
	}
	m.cursor = 0
	m.closeOverlay()
}

// openForm builds one text input per field of the modal that was just
// opened and focuses the first one.
func (m *Model) openForm() tea.Cmd {
	view := m.console.View()
	if view.Modal == nil {
		return nil
	}

	m.inputs = make([]textinput.Model, 0, len(view.Modal.Fields))
	m.fieldNames = make([]string, 0, len(view.Modal.Fields))
	for _, field := range view.Modal.Fields {
		input := textinput.New()
		input.Placeholder = field.Name
		input.CharLimit = 200
		input.Width = 40
		input.SetValue(field.Value)

		m.inputs = append(m.inputs, input)
		m.fieldNames = append(m.fieldNames, field.Name)
	}

	m.overlay = overlayForm
	m.focus = 0
	return m.focusField(0)
}

func (m *Model) focusField(index int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}

	index = (index + len(m.inputs)) % len(m.inputs)
	m.focus = index

	var cmd tea.Cmd
	for i := range m.inputs {
		if i == index {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) closeOverlay() {
	m.overlay = overlayNone
	m.inputs = nil
	m.fieldNames = nil
	m.focus = 0
	m.pending = nil
	m.pickerCursor = 0
}

func (m *Model) clampCursor() {
	rows := m.rows()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) rows() []table.Row {
	tbl, err := m.console.Table(m.console.Active())
	if err != nil {
		return nil
	}
	return tbl.Rows
}

// selected returns the index bound to the named action of the row under the
// cursor.
func (m Model) selected(action string) (int, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return -1, false
	}

	for _, bound := range rows[m.cursor].Actions {
		if bound.Name == action {
			return bound.Index, true
		}
	}
	return -1, false
}
