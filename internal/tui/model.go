// Package tui renders the contact form as a Bubble Tea program.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/formexample/internal/form"
)

// inputCharLimit bounds every text input.
const inputCharLimit = 256

// outcome is the result of the last submit or reset action.
type outcome int

const (
	outcomeNone outcome = iota
	outcomeSubmitted
	outcomeInvalid
	outcomeReset
)

// Model is the Bubble Tea model for the contact form.
// Each text input mirrors one control of the underlying form.Group.
type Model struct {
	group    *form.Group
	inputs   []textinput.Model
	names    []string
	focus    int
	keys     formKeys
	help     help.Model
	showHelp bool
	outcome  outcome
	last     form.Submission
	width    int
	quitting bool
}

// ModelOption configures optional Model behavior.
type ModelOption func(*Model)

// WithHelp toggles the help bar.
func WithHelp(show bool) ModelOption {
	return func(m *Model) {
		m.showHelp = show
	}
}

// NewModel creates a Model bound to g with focus on the first field.
func NewModel(g *form.Group, opts ...ModelOption) Model {
	controls := g.Controls()
	m := Model{
		group:    g,
		inputs:   make([]textinput.Model, len(controls)),
		names:    make([]string, len(controls)),
		keys:     FormKeyMap(),
		help:     help.New(),
		showHelp: true,
	}
	for i, c := range controls {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = c.Label()
		ti.CharLimit = inputCharLimit
		ti.SetValue(c.Value())
		m.inputs[i] = ti
		m.names[i] = c.Name()
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Group returns the form bound to the model.
func (m Model) Group() *form.Group { return m.group }

// LastSubmission returns the most recent submission and whether one happened
// since the last reset.
func (m Model) LastSubmission() (form.Submission, bool) {
	return m.last, m.outcome == outcomeSubmitted || m.outcome == outcomeInvalid
}

// Focused returns the key of the field holding focus.
func (m Model) Focused() string {
	if len(m.names) == 0 {
		return ""
	}
	return m.names[m.focus]
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

// handleKey routes form-level keys and forwards the rest to the focused input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Reset):
		return m.reset()
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Enter):
		if m.focus == len(m.inputs)-1 {
			return m.submit()
		}
		return m.moveFocus(1)
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and copies its value into the group.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	// Names come from the group itself, so SetValue cannot fail here.
	_ = m.group.SetValue(m.names[m.focus], m.inputs[m.focus].Value())
	return m, cmd
}

// moveFocus marks the current field touched and focuses the field delta away, wrapping.
func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	n := len(m.inputs)
	if n == 0 {
		return m, nil
	}
	_ = m.group.MarkTouched(m.names[m.focus])
	m.inputs[m.focus].Blur()
	m.focus = ((m.focus+delta)%n + n) % n
	return m, m.inputs[m.focus].Focus()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.last = m.group.Submit()
	if m.last.Valid {
		m.outcome = outcomeSubmitted
	} else {
		m.outcome = outcomeInvalid
	}
	return m, nil
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.group.Reset()
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.outcome = outcomeReset
	m.last = form.Submission{}
	return m, m.inputs[0].Focus()
}

// View renders the labelled inputs, visible field errors, the last outcome and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle().Render("Contact form"))
	b.WriteString("\n\n")

	for i, name := range m.names {
		c := m.group.Get(name)
		focused := i == m.focus
		b.WriteString(LabelStyle(focused).Render(c.Label()))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if c.ShowErrors() {
			for _, e := range c.Errors() {
				b.WriteString(ErrorStyle().Render("✗ " + e.Message(c.Label())))
				b.WriteString("\n")
			}
		}
	}

	if line := m.statusLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	}
	return b.String()
}

// statusLine describes the last submit or reset.
func (m Model) statusLine() string {
	switch m.outcome {
	case outcomeSubmitted:
		r := m.last.Record
		return StatusStyle(true).Render(fmt.Sprintf("✓ Submitted: firstName=%q lastName=%q country=%q note=%q",
			r.FirstName, r.LastName, r.Country, r.Note))
	case outcomeInvalid:
		return StatusStyle(false).Render("✗ " + form.NoticeInvalid)
	case outcomeReset:
		return "Form reset"
	default:
		return ""
	}
}
