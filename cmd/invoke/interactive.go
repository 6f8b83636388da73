package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mman/dynamic"
	"github.com/mman/dynamic/selector"
	"github.com/mman/dynamic/signature"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	methodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type methodEntry struct {
	target     string
	info       signature.MethodInfo
	argCodes   []string
	returnType string
}

type interactiveModel struct {
	err      error
	result   string
	entries  []methodEntry
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectMethod modelState = iota
	stateInputArgs
	stateShowResult
)

type callResultMsg struct {
	err    error
	result string
}

func newInteractiveModel() *interactiveModel {
	reg := targets()
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)

	var entries []methodEntry
	for _, name := range names {
		for _, info := range signature.Methods(reg[name]) {
			var codes []string
			for _, c := range info.ArgTypes {
				codes = append(codes, string(c))
			}
			returnType := ""
			if info.ReturnType != signature.KindVoid {
				returnType = info.ReturnType.String()
			}
			entries = append(entries, methodEntry{
				target:     name,
				info:       info,
				argCodes:   codes,
				returnType: returnType,
			})
		}
	}

	return &interactiveModel{
		entries: entries,
		state:   stateSelectMethod,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputArgs || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectMethod && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectMethod && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectMethod:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.invokeSelected
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.invokeSelected

			case stateShowResult:
				m.state = stateSelectMethod
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectMethod
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectMethod
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	entry := m.entries[m.selected]
	m.inputs = make([]textinput.Model, len(entry.argCodes))
	for i, code := range entry.argCodes {
		ti := textinput.New()
		ti.Placeholder = code
		ti.Prompt = fmt.Sprintf("arg%d: ", i+1)
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) invokeSelected() tea.Msg {
	entry := m.entries[m.selected]
	target := targets()[entry.target]

	inv, err := dynamic.NewInvocation(target, selector.Sel(entry.info.Selector))
	if err != nil {
		return callResultMsg{err: err}
	}
	defer inv.Close()

	for i, input := range m.inputs {
		value, err := coerce(input.Value(), entry.argCodes[i])
		if err != nil {
			return callResultMsg{err: fmt.Errorf("argument %d: %w", i+1, err)}
		}
		inv.SetArgument(value, i+1)
	}

	inv.Invoke()

	if !inv.ReturnsAny() {
		return callResultMsg{result: "(void)"}
	}
	result, _ := inv.ReturnValue()
	return callResultMsg{result: fmt.Sprintf("%v", result)}
}

func (m *interactiveModel) View() string {
	if len(m.entries) == 0 {
		return errorStyle.Render("No invocable methods registered.\n\nPress q to quit.")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Dynamic Invoker"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectMethod:
		b.WriteString("Select a method to invoke:\n\n")
		for i, entry := range m.entries {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatEntry(entry)))
			} else {
				b.WriteString(cursor + m.formatEntry(entry))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter invoke • q quit"))

	case stateInputArgs:
		entry := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Invoking %s\n\n", methodStyle.Render(entry.info.Selector)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(entry.argCodes[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter invoke • esc back"))

	case stateShowResult:
		entry := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", methodStyle.Render(entry.info.Selector)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatEntry(entry methodEntry) string {
	args := strings.Join(entry.argCodes, ", ")
	result := ""
	if entry.returnType != "" {
		result = " -> " + typeStyle.Render(entry.returnType)
	}
	return entry.target + "." + methodStyle.Render(entry.info.Selector) + "(" + typeStyle.Render(args) + ")" + result
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
