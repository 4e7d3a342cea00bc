package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	editorW := m.width / 2
	resultW := m.width - editorW - 4
	controlsHeight := 5
	panelHeight := max(m.height-controlsHeight-2, 8)

	editorPanel := m.renderEditorPanel(editorW, panelHeight)
	resultPanel := m.renderResultPanel(resultW, panelHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, editorPanel, resultPanel)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)
}

func (m Model) renderEditorPanel(width, height int) string {
	var sb strings.Builder

	title := "Circuit Source"
	if m.focus == focusEditor {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.editor.View())

	return sourceStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) renderResultPanel(width, height int) string {
	var sb strings.Builder

	title := "Results"
	if m.focus == focusResult {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	sb.WriteString(backendStyle.Render("backend: " + m.backendLabel()))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("   shots: %d   seed: %d", m.shots, m.seed)))
	sb.WriteString("\n\n")

	switch {
	case m.errMsg != "":
		sb.WriteString(errorStyle.Render("error: " + m.errMsg))
	case m.result == nil:
		sb.WriteString(dimStyle.Render("press ^R to run"))
	default:
		sb.WriteString(m.renderHistogram(width - 6))
		if counts := m.result.Counts(); len(counts) > 0 {
			sb.WriteString("\n")
			sb.WriteString(renderCounts(counts))
		}
	}

	if m.statusMsg != "" {
		sb.WriteString("\n\n")
		sb.WriteString(dimStyle.Render(m.statusMsg))
	}

	return resultStyle.Width(width).Height(height).Render(sb.String())
}

// renderHistogram draws one bar per basis state with nonzero probability.
func (m Model) renderHistogram(width int) string {
	probs := m.result.Probabilities()
	if probs == nil {
		return ""
	}
	n := m.circuit.NumQubits
	maxBar := min(barWidth, max(width-n-12, 4))

	var sb strings.Builder
	for i, p := range probs {
		if p < 1e-9 {
			continue
		}
		label := fmt.Sprintf("|%0*b>", n, i)
		bar := strings.Repeat("█", int(p*float64(maxBar)+0.5))
		sb.WriteString(basisLabelStyle.Render(label))
		sb.WriteString(" ")
		sb.WriteString(barStyle.Render(bar))
		sb.WriteString(fmt.Sprintf(" %.3f\n", p))
	}
	return sb.String()
}

// renderCounts shows the measurement histogram keyed by classical bits.
func renderCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(dimStyle.Render("counts: "))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s:%d", k, counts[k])
	}
	sb.WriteString(strings.Join(parts, "  "))
	return sb.String()
}

func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(backendStyle.Render("Editor:  "))
	sb.WriteString("type circuit source  Tab Switch focus  ^R Run\n")
	sb.WriteString(backendStyle.Render("Results: "))
	sb.WriteString("b Cycle backend  +/- Shots  s Bump seed  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}
