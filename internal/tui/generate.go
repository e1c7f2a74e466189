package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zaudit/internal/audit"
	"github.com/zarlcorp/zaudit/internal/clipboard"
	"github.com/zarlcorp/zaudit/internal/generator"
)

// generateModel configures and shows a generated password.
type generateModel struct {
	length    textinput.Model
	pool      generator.Pool
	clipboard clipboard.Copier

	password string
	result   audit.Result
	err      error
	flash    string
	flashSeq int
}

// generatedMsg reports a generation for the event log.
type generatedMsg struct {
	length int
	result audit.Result
}

// flashMsg clears the flash it was scheduled for. A newer flash survives
// an older tick.
type flashMsg struct {
	seq int
}

func newGenerateModel(c clipboard.Copier) generateModel {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("%d", generator.DefaultLength)
	ti.CharLimit = 4
	ti.Width = 6
	ti.Focus()

	return generateModel{
		length:    ti,
		pool:      generator.DefaultPool(),
		clipboard: c,
	}
}

func (m generateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.length, cmd = m.length.Update(msg)
	return m, cmd
}

func (m generateModel) handleKey(msg tea.KeyMsg) (generateModel, tea.Cmd) {
	// digits and editing keys belong to the length field
	if isLengthKey(msg) {
		var cmd tea.Cmd
		m.length, cmd = m.length.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m.generate()
	}

	switch msg.String() {
	case "n":
		return m.generate()
	case "u":
		m.pool.Upper = !m.pool.Upper
	case "d":
		m.pool.Digits = !m.pool.Digits
	case "s":
		m.pool.Symbols = !m.pool.Symbols
	case "c":
		if m.password == "" {
			return m, nil
		}
		if err := m.clipboard.Copy(m.password); err != nil {
			m = m.setFlash("copy: " + err.Error())
		} else {
			m = m.setFlash("copied!")
		}
		return m, clearFlashAfter(m.flashSeq)
	}

	return m, nil
}

func (m generateModel) generate() (generateModel, tea.Cmd) {
	n := generator.ParseLength(m.length.Value())

	pw, res, err := audit.GenerateAndAudit(n, m.pool)
	if err != nil {
		m.password = ""
		m.result = audit.Result{}
		m.err = err
		return m, nil
	}

	m.password = pw
	m.result = res
	m.err = nil
	m.flash = ""
	return m, func() tea.Msg { return generatedMsg{length: n, result: res} }
}

func (m generateModel) setFlash(msg string) generateModel {
	m.flash = msg
	m.flashSeq++
	return m
}

func clearFlashAfter(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{seq: seq}
	})
}

func isLengthKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight:
		return true
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}

func (m generateModel) View() string {
	s := fmt.Sprintf("\n  %s %s\n", zstyle.MutedText.Render(fmt.Sprintf("%-10s", "length")), m.length.View())
	s += "  " + toggle("lowercase", true) + "  (always)\n"
	s += "  " + toggle("uppercase", m.pool.Upper) + "  u\n"
	s += "  " + toggle("digits", m.pool.Digits) + "  d\n"
	s += "  " + toggle("symbols", m.pool.Symbols) + "  s\n\n"

	switch {
	case m.err != nil:
		s += "  " + zstyle.StatusErr.Render(m.err.Error()) + "\n"
	case m.password != "":
		s += fmt.Sprintf("  %s %s\n", zstyle.MutedText.Render(fmt.Sprintf("%-10s", "password")), zstyle.Highlight.Render(m.password))
		s += fmt.Sprintf("  %s %.1f bits\n", zstyle.MutedText.Render(fmt.Sprintf("%-10s", "entropy")), m.result.EntropyBits)
		s += fmt.Sprintf("  %s %s\n", zstyle.MutedText.Render(fmt.Sprintf("%-10s", "score")), scoreStyle(m.result.Score).Render(fmt.Sprintf("%d/100", m.result.Score)))
	default:
		s += "  " + zstyle.MutedText.Render("press enter to generate") + "\n"
	}

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "\n  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n\n"
	}

	return s
}

func toggle(label string, on bool) string {
	if on {
		return zstyle.StatusOK.Render("[x]") + " " + label
	}
	return zstyle.MutedText.Render("[ ]") + " " + label
}
