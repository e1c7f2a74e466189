package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zaudit/internal/clipboard"
)

// hashModel shows a bcrypt hash of a submitted secret.
type hashModel struct {
	hash      string
	err       error
	clipboard clipboard.Copier
	flash     string
	flashSeq  int
}

func newHashModel(hash string, err error, c clipboard.Copier) hashModel {
	return hashModel{hash: hash, err: err, clipboard: c}
}

func (m hashModel) Update(msg tea.Msg) (hashModel, tea.Cmd) {
	switch msg := msg.(type) {
	case flashMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}
		if msg.String() == "c" && m.hash != "" {
			if err := m.clipboard.Copy(m.hash); err != nil {
				m.flash = "copy: " + err.Error()
			} else {
				m.flash = "copied!"
			}
			m.flashSeq++
			return m, clearFlashAfter(m.flashSeq)
		}
	}
	return m, nil
}

func (m hashModel) View() string {
	if m.err != nil {
		return "\n  " + zstyle.StatusErr.Render(m.err.Error()) + "\n"
	}

	s := fmt.Sprintf("\n  %s\n  %s\n", zstyle.MutedText.Render("bcrypt hash"), zstyle.Highlight.Render(m.hash))
	if m.flash != "" {
		s += "\n  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n\n"
	}
	return s
}
