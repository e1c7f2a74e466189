package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zaudit/internal/breach"
)

// breachModel shows a breach lookup in progress and then its outcome.
type breachModel struct {
	spinner spinner.Model
	done    bool
	result  breach.Result
	err     error
}

// breachResultMsg carries the outcome of a lookup.
type breachResultMsg struct {
	result breach.Result
	err    error
}

func newBreachModel() breachModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(accent)
	return breachModel{spinner: s}
}

func (m breachModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m breachModel) Update(msg tea.Msg) (breachModel, tea.Cmd) {
	switch msg := msg.(type) {
	case breachResultMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}
		if m.done && msg.String() == "r" {
			return m, func() tea.Msg { return promptMsg{purpose: purposeBreach} }
		}
	}

	return m, nil
}

func (m breachModel) View() string {
	if !m.done {
		return fmt.Sprintf("\n  %s checking...\n", m.spinner.View())
	}

	// an unavailable check says nothing about whether the password is safe
	if m.err != nil {
		return fmt.Sprintf("\n  %s\n  %s\n",
			zstyle.StatusWarn.Render("breach check unavailable"),
			zstyle.MutedText.Render(m.err.Error()))
	}

	if m.result.Found {
		return fmt.Sprintf("\n  %s\n  %s\n",
			zstyle.StatusErr.Render(fmt.Sprintf("found in %d breaches", m.result.Count)),
			zstyle.MutedText.Render("this password should not be used"))
	}

	return fmt.Sprintf("\n  %s\n", zstyle.StatusOK.Render("not found in known breaches"))
}
