// Package tui implements the root Bubble Tea model for zaudit.
package tui

import (
	"context"
	"log/slog"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zaudit/internal/audit"
	"github.com/zarlcorp/zaudit/internal/breach"
	"github.com/zarlcorp/zaudit/internal/clipboard"
	"github.com/zarlcorp/zaudit/internal/config"
	"github.com/zarlcorp/zaudit/internal/eventlog"
	"github.com/zarlcorp/zaudit/internal/quiz"
	"github.com/zarlcorp/zaudit/internal/strength"
)

// accent is zaudit's brand colour.
var accent = lipgloss.Color("#3FB6A8")

type viewID int

const (
	viewMenu viewID = iota
	viewGenerate
	viewSecret
	viewAudit
	viewBreach
	viewHash
	viewLogs
	viewQuiz
)

// BreachChecker looks a secret up in a breach corpus.
type BreachChecker interface {
	Check(ctx context.Context, secret string) (breach.Result, error)
}

// Hasher produces a salted adaptive hash.
type Hasher interface {
	Hash(secret string) (string, error)
}

// Services holds the collaborators behind the menu actions. A nil Hasher
// or Breach disables that action with an error message.
type Services struct {
	Log       *eventlog.Log
	Breach    BreachChecker
	Hasher    Hasher
	Clipboard clipboard.Copier
	// Shuffle orders quiz questions. nil uses the global math/rand source.
	Shuffle *rand.Rand
}

// Model is the root TUI model.
type Model struct {
	ctx     context.Context
	version string
	svc     Services

	active   viewID
	menu     menuModel
	generate generateModel
	secret   secretModel
	audit    auditModel
	breach   breachModel
	hash     hashModel
	logs     logsModel
	quiz     quizModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(ctx context.Context, version string, svc Services) Model {
	if svc.Clipboard == nil {
		svc.Clipboard = clipboard.None{}
	}
	return Model{
		ctx:     ctx,
		version: version,
		svc:     svc,
		active:  viewMenu,
		menu:    newMenuModel(version),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigateMsg:
		return m.navigate(msg.view)

	case promptMsg:
		m.secret = newSecretModel(msg.purpose)
		m.active = viewSecret
		return m, m.secret.Init()

	case secretSubmitMsg:
		return m.handleSecret(msg)

	case generatedMsg:
		m.record(eventlog.KindGenerate, "len", msg.length, "score", msg.result.Score, "entropy", msg.result.EntropyBits)
		return m, nil

	case breachResultMsg:
		if msg.err == nil {
			m.record(eventlog.KindBreach, "result", breachLabel(msg.result))
		}
		m.breach, _ = m.breach.Update(msg)
		return m, nil

	case quizDoneMsg:
		m.record(eventlog.KindQuiz, "score", msg.score, "total", msg.total)
		return m, nil
	}

	return m.updateActive(msg)
}

func (m Model) navigate(v viewID) (tea.Model, tea.Cmd) {
	m.active = v

	switch v {
	case viewGenerate:
		m.generate = newGenerateModel(m.svc.Clipboard)
		return m, m.generate.Init()

	case viewLogs:
		var lines []string
		var err error
		if m.svc.Log != nil {
			lines, err = m.svc.Log.Recent(config.DefaultRecentEvents)
		}
		m.logs = newLogsModel(lines, err)

	case viewQuiz:
		qs := quiz.Questions()
		quiz.Shuffle(qs, m.svc.Shuffle)
		m.quiz = newQuizModel(qs)
	}

	return m, nil
}

// handleSecret runs the action a secret was requested for. The secret is
// passed straight to the collaborator and not stored on the model.
func (m Model) handleSecret(msg secretSubmitMsg) (tea.Model, tea.Cmd) {
	switch msg.purpose {
	case purposeAudit:
		res := audit.Audit(msg.secret)
		guess := strength.Guessability(msg.secret)
		m.audit = newAuditModel(len([]rune(msg.secret)), res, guess)
		m.active = viewAudit
		m.record(eventlog.KindAudit, "score", res.Score, "entropy", res.EntropyBits)
		return m, nil

	case purposeHash:
		m.active = viewHash
		if m.svc.Hasher == nil {
			m.hash = newHashModel("", errHasherUnavailable, m.svc.Clipboard)
			return m, nil
		}
		h, err := m.svc.Hasher.Hash(msg.secret)
		m.hash = newHashModel(h, err, m.svc.Clipboard)
		if err == nil {
			m.record(eventlog.KindHash, "result", "generated")
		}
		return m, nil

	case purposeBreach:
		m.breach = newBreachModel()
		m.active = viewBreach
		if m.svc.Breach == nil {
			m.breach, _ = m.breach.Update(breachResultMsg{err: errBreachUnavailable})
			return m, nil
		}
		return m, tea.Batch(m.breach.Init(), checkBreach(m.ctx, m.svc.Breach, msg.secret))
	}

	return m, nil
}

// checkBreach runs the lookup off the update loop. Only the result comes
// back as a message.
func checkBreach(ctx context.Context, c BreachChecker, secret string) tea.Cmd {
	return func() tea.Msg {
		res, err := c.Check(ctx, secret)
		return breachResultMsg{result: res, err: err}
	}
}

// record appends an event. Log failures never interrupt the UI.
func (m Model) record(kind eventlog.Kind, kv ...any) {
	if m.svc.Log == nil {
		return
	}
	if err := m.svc.Log.Append(kind, kv...); err != nil {
		slog.Warn("event log", "kind", string(kind), "err", err)
	}
}

func (m Model) View() string {
	// menu renders its own logo
	if m.active == viewMenu {
		return m.menu.View()
	}

	// all other views: header + separator + content + footer
	var content string
	switch m.active {
	case viewGenerate:
		content = m.generate.View()
	case viewSecret:
		content = m.secret.View()
	case viewAudit:
		content = m.audit.View()
	case viewBreach:
		content = m.breach.View()
	case viewHash:
		content = m.hash.View()
	case viewLogs:
		content = m.logs.View()
	case viewQuiz:
		content = m.quiz.View()
	}

	header := zstyle.RenderHeader("zaudit", m.viewTitle(), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(m.helpFor())

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for the active view.
func (m Model) viewTitle() string {
	switch m.active {
	case viewGenerate:
		return "Generate Password"
	case viewSecret:
		return m.secret.purpose.title()
	case viewAudit:
		return "Password Audit"
	case viewBreach:
		return "Breach Check"
	case viewHash:
		return "Bcrypt Hash"
	case viewLogs:
		return "Logs"
	case viewQuiz:
		return "Security Quiz"
	}
	return ""
}

// helpFor returns keybinding pairs for the active view's footer.
func (m Model) helpFor() []zstyle.HelpPair {
	switch m.active {
	case viewGenerate:
		return []zstyle.HelpPair{
			{Key: "0-9", Desc: "length"},
			{Key: "u/d/s", Desc: "toggle class"},
			{Key: "enter", Desc: "generate"},
			{Key: "c", Desc: "copy"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewSecret:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "submit"},
			{Key: "esc", Desc: "back"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	case viewAudit:
		return []zstyle.HelpPair{
			{Key: "a", Desc: "audit another"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewBreach:
		return []zstyle.HelpPair{
			{Key: "r", Desc: "check again"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewHash:
		return []zstyle.HelpPair{
			{Key: "c", Desc: "copy"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewLogs:
		return []zstyle.HelpPair{
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewQuiz:
		return []zstyle.HelpPair{
			{Key: "1-3", Desc: "answer"},
			{Key: "enter", Desc: "next"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewGenerate:
		m.generate, cmd = m.generate.Update(msg)
	case viewSecret:
		m.secret, cmd = m.secret.Update(msg)
	case viewAudit:
		m.audit, cmd = m.audit.Update(msg)
	case viewBreach:
		m.breach, cmd = m.breach.Update(msg)
	case viewHash:
		m.hash, cmd = m.hash.Update(msg)
	case viewLogs:
		m.logs, cmd = m.logs.Update(msg)
	case viewQuiz:
		m.quiz, cmd = m.quiz.Update(msg)
	}

	return m, cmd
}

func breachLabel(r breach.Result) string {
	if r.Found {
		return "found"
	}
	return "not_found"
}
