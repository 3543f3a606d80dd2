package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/standardbeagle/ngp/internal/result"
	"github.com/standardbeagle/ngp/internal/subsearch"
)

var (
	lineNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	fileStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	selectedStyle   = lipgloss.NewStyle().Reverse(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// View renders the header, the visible window of entries, and a status or
// subsearch-prompt line.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	m.mu.RLock()
	entries := m.current.Store.Entries()
	status := m.current.Status
	nbLines := m.current.Store.NbLines()
	m.mu.RUnlock()

	page := m.pageSize()
	end := m.offset + page
	if end > len(entries) {
		end = len(entries)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderEntry(i, entries[i]))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter(status, nbLines))
	return b.String()
}

func (m *Model) renderHeader() string {
	depth := 0
	for s := m.current; s.Parent != nil; s = s.Parent {
		depth++
	}
	label := fmt.Sprintf("pattern: %s", m.current.Pattern)
	if depth > 0 {
		label = fmt.Sprintf("%s (subsearch depth %d)", label, depth)
	}
	return fileStyle.Render(label)
}

func (m *Model) renderEntry(i int, e result.Entry) string {
	var line string
	if e.IsFile() {
		line = fileStyle.Render(e.Path)
	} else {
		line = fmt.Sprintf("%s %s", lineNumberStyle.Render(fmt.Sprintf("%6d:", e.Line)), string(e.Text))
	}
	if i == m.cursor {
		return selectedStyle.Render(line)
	}
	return line
}

func (m *Model) renderFooter(status subsearch.Status, nbLines int) string {
	if m.mode == modePrompt {
		return promptStyle.Render("/" + string(m.promptBuf))
	}

	label := "done"
	if status == subsearch.StatusScanning {
		label = "scanning..."
	}
	line := statusStyle.Render(fmt.Sprintf("%s — %d lines", label, nbLines))
	if m.lastErr != nil {
		line = errorStyle.Render(m.lastErr.Error())
	}
	return line
}
