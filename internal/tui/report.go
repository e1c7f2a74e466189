package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zaudit/internal/audit"
	"github.com/zarlcorp/zaudit/internal/strength"
)

// scoreBarWidth is the number of cells in the score bar.
const scoreBarWidth = 20

// auditModel shows the audit of a submitted secret. It keeps only the
// derived result and the secret's length.
type auditModel struct {
	length int
	result audit.Result
	guess  strength.Guess
}

func newAuditModel(length int, res audit.Result, guess strength.Guess) auditModel {
	return auditModel{length: length, result: res, guess: guess}
}

func (m auditModel) Update(msg tea.Msg) (auditModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}
		if msg.String() == "a" {
			return m, func() tea.Msg { return promptMsg{purpose: purposeAudit} }
		}
	}
	return m, nil
}

func (m auditModel) View() string {
	label := func(s string) string {
		return zstyle.MutedText.Render(fmt.Sprintf("%-10s", s))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s %d\n", label("length"), m.length)
	fmt.Fprintf(&b, "  %s %.1f bits\n", label("entropy"), m.result.EntropyBits)
	fmt.Fprintf(&b, "  %s %s %s\n", label("score"), scoreBar(m.result.Score),
		scoreStyle(m.result.Score).Render(fmt.Sprintf("%d/100", m.result.Score)))
	fmt.Fprintf(&b, "  %s %s, cracked in %s\n", label("patterns"), m.guess.Label(), m.guess.CrackTime)

	fmt.Fprintf(&b, "\n  %s\n", zstyle.Subtitle.Render("checks"))
	for _, c := range m.result.CheckList() {
		mark := zstyle.StatusErr.Render("✘")
		if c.Passed {
			mark = zstyle.StatusOK.Render("✔")
		}
		fmt.Fprintf(&b, "    %-14s %s\n", c.Name, mark)
	}

	if len(m.result.Tips) == 0 {
		fmt.Fprintf(&b, "\n  %s\n", zstyle.StatusOK.Render("No suggestions! Your password looks strong"))
		return b.String()
	}

	fmt.Fprintf(&b, "\n  %s\n", zstyle.Subtitle.Render("suggestions"))
	for _, tip := range m.result.Tips {
		fmt.Fprintf(&b, "    - %s\n", tip)
	}
	return b.String()
}

// scoreBar renders a filled/empty bar proportional to score.
func scoreBar(score int) string {
	filled := scoreBarWidth * score / 100
	return zstyle.StatusOK.Render(strings.Repeat("█", filled)) +
		zstyle.StatusErr.Render(strings.Repeat("█", scoreBarWidth-filled))
}

func scoreStyle(score int) lipgloss.Style {
	switch strength.Rating(score) {
	case "strong":
		return zstyle.StatusOK
	case "fair":
		return zstyle.StatusWarn
	default:
		return zstyle.StatusErr
	}
}
