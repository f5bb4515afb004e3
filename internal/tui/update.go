package tui

import (
	"diskscope/internal/ruleset"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterActive {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.focus == paneTree {
			m.focus = paneInsights
		} else {
			m.focus = paneTree
		}
		return m, nil
	}

	if m.focus == paneInsights {
		return m.handleInsightsKey(msg)
	}
	return m.handleTreeKey(msg)
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filterActive = false
		return m, nil

	case "esc":
		m.filterActive = false
		m.filter = ""
		m.applyFilter()
		return m, nil

	case "backspace":
		if len(m.filter) > 0 {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
			m.applyFilter()
		}
		return m, nil

	case "q", "ctrl+c":
		return m, tea.Quit
	}

	if msg.Type == tea.KeyRunes {
		m.filter += msg.String()
		m.applyFilter()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", "l", "right":
		if len(m.entries) > 0 && m.cursor < len(m.entries) {
			selected := m.entries[m.cursor]
			if selected.IsDir() {
				m.trail = append(m.trail, m.current)
				m.current = selected
				m.filter = ""
				m.filterActive = false
				m.setEntries(selected.Children)
			}
		}
		return m, nil

	case "backspace", "h", "left":
		if len(m.trail) > 0 {
			parent := m.trail[len(m.trail)-1]
			m.trail = m.trail[:len(m.trail)-1]
			m.current = parent
			m.filter = ""
			m.filterActive = false
			m.setEntries(parent.Children)
		}
		return m, nil

	case "s":
		m.sort = SortByDisk
		m.setEntries(m.current.Children)
		return m, nil

	case "a":
		m.sort = SortByApparent
		m.setEntries(m.current.Children)
		return m, nil

	case "n":
		m.sort = SortByName
		m.setEntries(m.current.Children)
		return m, nil

	case "/":
		m.filterActive = true
		return m, nil

	case "home", "g":
		m.cursor = 0
		return m, nil

	case "end", "G":
		if len(m.entries) > 0 {
			m.cursor = len(m.entries) - 1
		}
		return m, nil

	case "pgup":
		m.cursor = clamp(m.cursor-10, 0, len(m.entries)-1)
		return m, nil

	case "pgdown":
		m.cursor = clamp(m.cursor+10, 0, len(m.entries)-1)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleInsightsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.filteredInsights()
	switch msg.String() {
	case "up", "k":
		if m.insightCursor > 0 {
			m.insightCursor--
		}
		return m, nil

	case "down", "j":
		if m.insightCursor < len(entries)-1 {
			m.insightCursor++
		}
		return m, nil

	case "left", "h":
		m.categoryIdx--
		if m.categoryIdx < -1 {
			m.categoryIdx = int(ruleset.BuildArtifact)
		}
		m.insightCursor = 0
		return m, nil

	case "right", "l":
		m.categoryIdx++
		if m.categoryIdx > int(ruleset.BuildArtifact) {
			m.categoryIdx = -1
		}
		m.insightCursor = 0
		return m, nil
	}
	return m, nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
