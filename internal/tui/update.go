package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(tableHeight(msg.Height))
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case PlanLoadedMsg:
		m.base = msg.Plan
		m.loaded = true
		m.err = nil
		m.resetAssumptions()
		return m, m.recalculate()

	case ProjectionUpdatedMsg:
		if msg.Seq != m.seq {
			// A newer slider state is already being computed
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.plan = msg.Plan
		m.rows = msg.Rows
		m.assessment = msg.Assessment
		m.table.SetRows(projectionTableRows(msg.Rows))
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if !m.loaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Down):
		m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Left):
		if m.assumptions[m.focus].slider.Decrement() {
			return m, m.recalculate()
		}
	case key.Matches(msg, m.keys.Right):
		if m.assumptions[m.focus].slider.Increment() {
			return m, m.recalculate()
		}
	case key.Matches(msg, m.keys.Reset):
		m.resetAssumptions()
		return m, m.recalculate()
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}
