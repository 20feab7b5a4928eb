package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/example/labeldrop/internal/payload"
	"github.com/example/labeldrop/pkg/ui"
)

type sessionState int

const (
	stateEditing sessionState = iota
	stateSaving
	stateDone
)

// SaveFunc decodes input and persists it, returning where it went.
type SaveFunc func(input string) (payload.Result, string, error)

type Model struct {
	state   sessionState
	input   textarea.Model
	spinner spinner.Model
	save    SaveFunc

	result payload.Result
	path   string
	err    error
	saved  int
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func NewPasteModel(save SaveFunc) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste your base64 encoded string here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(10)
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		state:   stateEditing,
		input:   ta,
		spinner: s,
		save:    save,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.SetWidth(msg.Width - 2)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.state = stateDone
			return m, tea.Quit
		case "ctrl+s":
			if m.state != stateEditing {
				return m, nil
			}
			m.state = stateSaving
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, saveCmd(m.save, m.input.Value()))
		}

	case savedMsg:
		m.state = stateEditing
		m.result = msg.result
		m.path = msg.path
		m.saved++
		m.input.Reset()
		return m, nil

	case errMsg:
		m.state = stateEditing
		m.err = msg.err
		return m, nil
	}

	switch m.state {
	case stateSaving:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stateEditing:
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.state == stateDone {
		return ""
	}

	s := titleStyle.Render("LabelDrop") + ui.Subtle("  ctrl+s decode & save · esc quit") + "\n\n"
	s += m.input.View() + "\n\n"

	switch {
	case m.state == stateSaving:
		s += fmt.Sprintf("%s Decoding...\n", m.spinner.View())
	case m.err != nil:
		s += errStyle.Render(m.err.Error()) + "\n"
	case m.path != "":
		s += okStyle.Render(fmt.Sprintf("Saved %s label to %s", m.result.Format, m.path)) + "\n"
	}
	return s
}

// Saved returns the number of payloads saved during the session.
func (m Model) Saved() int { return m.saved }

type savedMsg struct {
	result payload.Result
	path   string
}

type errMsg struct{ err error }

func saveCmd(save SaveFunc, input string) tea.Cmd {
	return func() tea.Msg {
		res, path, err := save(input)
		if err != nil {
			return errMsg{err: err}
		}
		return savedMsg{result: res, path: path}
	}
}
