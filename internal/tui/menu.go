package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type menuChoice int

const (
	menuGenerate menuChoice = iota
	menuAudit
	menuHash
	menuLogs
	menuBreach
	menuQuiz
	menuQuit
)

var menuItems = []string{
	"Generate a secure password",
	"Audit a password",
	"Hash a password (bcrypt)",
	"View logs",
	"Check password breach",
	"Security awareness quiz",
	"Quit",
}

// menuModel is the main menu view.
type menuModel struct {
	cursor  int
	version string
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

// promptMsg tells the root to ask for a secret.
type promptMsg struct {
	purpose purpose
}

func newMenuModel(version string) menuModel {
	return menuModel{version: version}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}

		// number shortcuts, matching the item order
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(menuItems) {
			m.cursor = int(s[0] - '1')
			return m, m.selectItem()
		}
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	switch menuChoice(m.cursor) {
	case menuGenerate:
		return func() tea.Msg { return navigateMsg{view: viewGenerate} }
	case menuAudit:
		return func() tea.Msg { return promptMsg{purpose: purposeAudit} }
	case menuHash:
		return func() tea.Msg { return promptMsg{purpose: purposeHash} }
	case menuLogs:
		return func() tea.Msg { return navigateMsg{view: viewLogs} }
	case menuBreach:
		return func() tea.Msg { return promptMsg{purpose: purposeBreach} }
	case menuQuiz:
		return func() tea.Msg { return navigateMsg{view: viewQuiz} }
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func (m menuModel) View() string {
	indent := lipgloss.NewStyle().MarginLeft(2)
	logo := indent.Render(zstyle.StyledLogo(lipgloss.NewStyle().Foreground(accent)))
	title := zstyle.Title.Render("zaudit")
	ver := zstyle.MutedText.Render(m.version)

	s := fmt.Sprintf("\n%s\n  %s %s\n\n", logo, title, ver)

	for i, item := range menuItems {
		label := fmt.Sprintf("[%d] %s", i+1, item)
		if m.cursor == i {
			s += zstyle.Highlight.Render("  > "+label) + "\n"
		} else {
			s += "    " + label + "\n"
		}
	}

	s += "\n  " + zstyle.MutedText.Render("j/k navigate  1-7 jump  enter select  q quit") + "\n\n"
	return s
}
