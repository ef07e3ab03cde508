// Package tui provides terminal user interface components for sandbox-gen
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/catalog"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionGenerate
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action   Action
	Template *catalog.Template
}

// templateItem implements list.Item for template display
type templateItem struct {
	template *catalog.Template
}

func (i templateItem) Title() string {
	return i.template.Key
}

func (i templateItem) Description() string {
	renderer := i.template.Expected.Renderer
	if renderer == "" {
		renderer = "default"
	}
	return fmt.Sprintf("%s | %s | %s",
		i.template.DisplayName,
		renderer,
		truncateScript(i.template.InitScript, 48),
	)
}

func (i templateItem) FilterValue() string {
	return i.template.Key
}

func truncateScript(script string, maxLen int) string {
	if len(script) <= maxLen {
		return script
	}
	return script[:maxLen-3] + "..."
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)
)

// Model is the bubbletea model for the template picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new template picker
func NewPicker(templates []*catalog.Template) Model {
	items := make([]list.Item, len(templates))
	for i, tpl := range templates {
		items[i] = templateItem{template: tpl}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "sandbox-gen - Select Template"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(templateItem); ok {
				m.result = PickerResult{
					Action:   ActionGenerate,
					Template: item.template,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Generate  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive template picker
func RunPicker(templates []*catalog.Template) (PickerResult, error) {
	if len(templates) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(templates)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}
