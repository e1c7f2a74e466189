package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// logsModel lists the most recent event log lines.
type logsModel struct {
	lines []string
	err   error
}

func newLogsModel(lines []string, err error) logsModel {
	return logsModel{lines: lines, err: err}
}

func (m logsModel) Update(msg tea.Msg) (logsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}
	}
	return m, nil
}

func (m logsModel) View() string {
	if m.err != nil {
		return "\n  " + zstyle.StatusErr.Render("read log: "+m.err.Error()) + "\n"
	}
	if len(m.lines) == 0 {
		return "\n  " + zstyle.MutedText.Render("No logs yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range m.lines {
		b.WriteString("  " + l + "\n")
	}
	return b.String()
}
