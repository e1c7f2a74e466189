package tui

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// purpose is what a prompted secret will be used for.
type purpose int

const (
	purposeAudit purpose = iota
	purposeHash
	purposeBreach
)

// maxSecretLen is the longest secret the prompt accepts.
const maxSecretLen = 1024

var (
	errHasherUnavailable = errors.New("bcrypt hashing is not available")
	errBreachUnavailable = errors.New("breach checking is not configured")
)

func (p purpose) title() string {
	switch p {
	case purposeAudit:
		return "Audit a Password"
	case purposeHash:
		return "Hash a Password"
	case purposeBreach:
		return "Check Password Breach"
	}
	return ""
}

func (p purpose) prompt() string {
	if p == purposeBreach {
		return "password to check:"
	}
	return "password:"
}

// secretModel prompts for a secret without echoing it.
type secretModel struct {
	input   textinput.Model
	purpose purpose
}

// secretSubmitMsg carries a submitted secret to the root exactly once.
type secretSubmitMsg struct {
	purpose purpose
	secret  string
}

func newSecretModel(p purpose) secretModel {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.Focus()
	ti.CharLimit = maxSecretLen
	ti.Width = 40

	return secretModel{input: ti, purpose: p}
}

func (m secretModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m secretModel) Update(msg tea.Msg) (secretModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyBack) {
			m.input.SetValue("")
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.handleSubmit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit clears the input before handing the secret on, so the model
// never holds it after submission.
func (m secretModel) handleSubmit() (secretModel, tea.Cmd) {
	val := m.input.Value()
	m.input.SetValue("")
	p := m.purpose

	return m, func() tea.Msg {
		return secretSubmitMsg{purpose: p, secret: val}
	}
}

func (m secretModel) View() string {
	s := fmt.Sprintf("\n  %s\n  %s\n", m.purpose.prompt(), m.input.View())
	if utf8.RuneCountInString(m.input.Value()) >= maxSecretLen {
		s += "\n  " + zstyle.StatusWarn.Render(fmt.Sprintf("input limit reached: only the first %d characters are used", maxSecretLen)) + "\n"
	}
	if m.purpose == purposeBreach {
		s += "\n  " + zstyle.MutedText.Render("only the first 5 characters of the SHA-1 hash are sent") + "\n"
	}
	return s
}
