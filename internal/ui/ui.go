// Package ui provides the terminal pickers used by the CLI: a filterable
// list and a single-line prompt, both rendered with bubbletea on stderr so
// stdout stays clean for piping.
package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user leaves a picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

var (
	accent     = lipgloss.Color("#D9480F")
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 1)
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
)

// Interactive reports whether both stdin and stderr are terminals.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

type item struct {
	title string
	index int
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return i.title }

// selectModel is a single-choice list.
type selectModel struct {
	list     list.Model
	chosen   int
	quitting bool
}

func newSelectModel(prompt string, items []string) selectModel {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = item{title: it, index: i}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(accent).
		Foreground(accent).
		Padding(0, 0, 0, 1)

	l := list.New(listItems, delegate, 0, 0)
	l.Title = prompt
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)

	return selectModel{list: l, chosen: -1}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.chosen = it.index
			}
			m.quitting = true
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.quitting {
		return ""
	}
	return docStyle.Render(m.list.View())
}

// Select presents items in a filterable list and returns the chosen index.
func Select(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	final, err := tea.NewProgram(newSelectModel(prompt, items), tea.WithAltScreen(), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}
	if m, ok := final.(selectModel); ok && m.chosen >= 0 {
		return m.chosen, nil
	}
	return -1, ErrCancelled
}

// Confirm asks a yes/no question.
func Confirm(prompt string) (bool, error) {
	idx, err := Select(prompt, []string{"Yes", "No"})
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}

// inputModel is a one-line text prompt.
type inputModel struct {
	input     textinput.Model
	done      bool
	cancelled bool
}

func newInputModel(prompt string) inputModel {
	ti := textinput.New()
	ti.Prompt = prompt + " > "
	ti.CharLimit = 120
	ti.Focus()
	return inputModel{input: ti}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.input.View() + "\n"
}

// Input prompts for free text.
func Input(prompt string) (string, error) {
	final, err := tea.NewProgram(newInputModel(prompt), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}
	m, ok := final.(inputModel)
	if !ok || m.cancelled {
		return "", ErrCancelled
	}
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return "", fmt.Errorf("no input provided")
	}
	return value, nil
}
