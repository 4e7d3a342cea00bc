package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"qusim"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusEditor focus = iota
	focusResult
)

const defaultSource = `# Bell pair
qreg q[2]
creg c[2]
h(0)
cnot(0, 1)
measure(0, 0)
measure(1, 1)
`

var backendCycle = []string{"", qusim.BackendStatevector, qusim.BackendDensityMatrix, qusim.BackendStabilizer}

// Model is the TUI application state: a circuit-source editor on the left
// and the last run's histogram on the right.
type Model struct {
	editor   textarea.Model
	selector *qusim.BackendSelector
	focus    focus
	width    int
	height   int

	backendIdx int
	shots      int
	seed       int64

	result    *qusim.ExecutionResult
	circuit   *qusim.Circuit
	statusMsg string
	errMsg    string
}

// NewModel returns the initial TUI state with a Bell-pair circuit loaded.
func NewModel() Model {
	ta := textarea.New()
	ta.Placeholder = "Type circuit source here..."
	ta.SetWidth(editorWidth)
	ta.SetHeight(editorHeight)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.SetValue(defaultSource)
	ta.Focus()

	return Model{
		editor:   ta,
		selector: qusim.NewBackendSelector(),
		focus:    focusEditor,
		shots:    1,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			m.run()
			return m, nil
		case "tab":
			if m.focus == focusEditor {
				m.focus = focusResult
				m.editor.Blur()
			} else {
				m.focus = focusEditor
				m.editor.Focus()
			}
			return m, nil
		}

		if m.focus == focusResult {
			switch msg.String() {
			case "q", "esc":
				return m, tea.Quit
			case "b":
				m.backendIdx = (m.backendIdx + 1) % len(backendCycle)
				m.statusMsg = "backend: " + m.backendLabel()
			case "+":
				m.shots *= 2
				m.statusMsg = fmt.Sprintf("shots: %d", m.shots)
			case "-":
				if m.shots > 1 {
					m.shots /= 2
				}
				m.statusMsg = fmt.Sprintf("shots: %d", m.shots)
			case "s":
				m.seed++
				m.statusMsg = fmt.Sprintf("seed: %d", m.seed)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// run parses the editor contents and executes them on the selected
// backend, storing either the result or the error for the view.
func (m *Model) run() {
	m.errMsg = ""
	m.statusMsg = ""

	circuit, err := qusim.ParseDSL(m.editor.Value())
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	backend, err := m.selector.Select(circuit, backendCycle[m.backendIdx], nil)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	result, err := backend.Execute(circuit, qusim.RunOptions{Shots: m.shots, Seed: m.seed})
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.circuit = circuit
	m.result = result
	m.statusMsg = fmt.Sprintf("ran on %s in %s", result.Backend, result.Duration)
}

func (m Model) backendLabel() string {
	if backendCycle[m.backendIdx] == "" {
		return "auto"
	}
	return backendCycle[m.backendIdx]
}

// Run starts the TUI event loop.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
