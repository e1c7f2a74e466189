package tui

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zaudit/internal/audit"
	"github.com/zarlcorp/zaudit/internal/breach"
	"github.com/zarlcorp/zaudit/internal/eventlog"
	"github.com/zarlcorp/zaudit/internal/hasher"
	"github.com/zarlcorp/zaudit/internal/quiz"
	"github.com/zarlcorp/zaudit/internal/strength"
)

// helpers

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func escKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

// exec runs cmd and returns its message, or nil.
func exec(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

type fakeBreach struct {
	result breach.Result
	err    error
	got    string
}

func (f *fakeBreach) Check(_ context.Context, secret string) (breach.Result, error) {
	f.got = secret
	return f.result, f.err
}

type fakeHasher struct {
	hash string
	err  error
}

func (f fakeHasher) Hash(string) (string, error) {
	return f.hash, f.err
}

type fakeClipboard struct {
	copied string
	err    error
}

func (f *fakeClipboard) Available() bool { return f.err == nil }

func (f *fakeClipboard) Copy(s string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = s
	return nil
}

func testLog(t *testing.T) *eventlog.Log {
	t.Helper()
	l, err := eventlog.Open(zfilesystem.NewMemFS(), eventlog.Config{})
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	return l
}

// menu tests

func TestMenuNavigation(t *testing.T) {
	m := newMenuModel("dev")

	m, _ = m.Update(keyMsg('j'))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}

	m, _ = m.Update(keyMsg('k'))
	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}

	for range len(menuItems) + 2 {
		m, _ = m.Update(keyMsg('j'))
	}
	if m.cursor != len(menuItems)-1 {
		t.Fatalf("cursor = %d, want %d", m.cursor, len(menuItems)-1)
	}
}

func TestMenuSelect(t *testing.T) {
	tests := []struct {
		key  rune
		want tea.Msg
	}{
		{'1', navigateMsg{view: viewGenerate}},
		{'2', promptMsg{purpose: purposeAudit}},
		{'3', promptMsg{purpose: purposeHash}},
		{'4', navigateMsg{view: viewLogs}},
		{'5', promptMsg{purpose: purposeBreach}},
		{'6', navigateMsg{view: viewQuiz}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m := newMenuModel("dev")
			_, cmd := m.Update(keyMsg(tt.key))
			if got := exec(cmd); got != tt.want {
				t.Errorf("msg = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMenuEnterSelectsCursor(t *testing.T) {
	m := newMenuModel("dev")
	m, _ = m.Update(keyMsg('j'))
	_, cmd := m.Update(enterKey())

	if got := exec(cmd); got != (promptMsg{purpose: purposeAudit}) {
		t.Errorf("msg = %#v, want audit prompt", got)
	}
}

func TestMenuQuit(t *testing.T) {
	m := newMenuModel("dev")
	_, cmd := m.Update(keyMsg('q'))
	if _, ok := exec(cmd).(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestMenuViewListsItems(t *testing.T) {
	view := newMenuModel("v1.2.3").View()
	for _, item := range menuItems {
		if !strings.Contains(view, item) {
			t.Errorf("view missing %q", item)
		}
	}
	if !strings.Contains(view, "v1.2.3") {
		t.Error("view should show version")
	}
}

// secret prompt tests

func TestSecretSubmitClearsInput(t *testing.T) {
	m := newSecretModel(purposeAudit)
	m.input.SetValue("hunter2")

	m, cmd := m.Update(enterKey())
	if m.input.Value() != "" {
		t.Error("input should be cleared after submit")
	}

	msg, ok := exec(cmd).(secretSubmitMsg)
	if !ok {
		t.Fatal("expected secretSubmitMsg")
	}
	if msg.secret != "hunter2" || msg.purpose != purposeAudit {
		t.Errorf("msg = %+v", msg)
	}
}

func TestSecretTypingQ(t *testing.T) {
	m := newSecretModel(purposeHash)
	m, cmd := m.Update(keyMsg('q'))

	if _, ok := exec(cmd).(tea.QuitMsg); ok {
		t.Fatal("q should be typed, not quit")
	}
	if m.input.Value() != "q" {
		t.Errorf("input = %q, want %q", m.input.Value(), "q")
	}
}

func TestSecretEscGoesBack(t *testing.T) {
	m := newSecretModel(purposeBreach)
	m.input.SetValue("abc")

	m, cmd := m.Update(escKey())
	if got := exec(cmd); got != (navigateMsg{view: viewMenu}) {
		t.Errorf("msg = %#v, want menu", got)
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared on back")
	}
}

func TestSecretLimitNotice(t *testing.T) {
	m := newSecretModel(purposeAudit)
	m.input.SetValue(strings.Repeat("a", 300))
	if strings.Contains(m.View(), "input limit") {
		t.Error("no notice expected below the limit")
	}
	if got := len(m.input.Value()); got != 300 {
		t.Errorf("300 characters should be kept, got %d", got)
	}

	m.input.SetValue(strings.Repeat("a", maxSecretLen+50))
	if !strings.Contains(m.View(), "input limit") {
		t.Error("view should warn when the limit is reached")
	}
}

func TestSecretViewMasksInput(t *testing.T) {
	m := newSecretModel(purposeAudit)
	m.input.SetValue("topsecret")

	if strings.Contains(m.View(), "topsecret") {
		t.Error("view must not echo the secret")
	}
}

// generate tests

func TestGenerateDefaultLength(t *testing.T) {
	m := newGenerateModel(&fakeClipboard{})
	m, cmd := m.Update(enterKey())

	if len(m.password) != 16 {
		t.Errorf("password length = %d, want 16", len(m.password))
	}

	msg, ok := exec(cmd).(generatedMsg)
	if !ok {
		t.Fatal("expected generatedMsg")
	}
	if msg.length != 16 {
		t.Errorf("length = %d, want 16", msg.length)
	}
}

func TestGenerateTypedLength(t *testing.T) {
	m := newGenerateModel(&fakeClipboard{})
	m, _ = m.Update(keyMsg('2'))
	m, _ = m.Update(keyMsg('4'))
	m, _ = m.Update(keyMsg('n'))

	if len(m.password) != 24 {
		t.Errorf("password length = %d, want 24", len(m.password))
	}
}

func TestGenerateZeroLengthShowsError(t *testing.T) {
	m := newGenerateModel(&fakeClipboard{})
	m, _ = m.Update(keyMsg('0'))
	m, cmd := m.Update(enterKey())

	if m.err == nil {
		t.Fatal("expected error for length 0")
	}
	if m.password != "" {
		t.Error("no password should be shown")
	}
	if exec(cmd) != nil {
		t.Error("failed generation should not be logged")
	}
}

func TestGenerateToggles(t *testing.T) {
	m := newGenerateModel(&fakeClipboard{})
	m, _ = m.Update(keyMsg('u'))
	m, _ = m.Update(keyMsg('d'))
	m, _ = m.Update(keyMsg('s'))
	m, _ = m.Update(enterKey())

	for _, r := range m.password {
		if r < 'a' || r > 'z' {
			t.Fatalf("unexpected %q with only lowercase enabled", r)
		}
	}
}

func TestGenerateCopy(t *testing.T) {
	cb := &fakeClipboard{}
	m := newGenerateModel(cb)
	m, _ = m.Update(enterKey())
	m, _ = m.Update(keyMsg('c'))

	if cb.copied != m.password {
		t.Errorf("copied %q, want %q", cb.copied, m.password)
	}
	if m.flash != "copied!" {
		t.Errorf("flash = %q", m.flash)
	}

	m, _ = m.Update(flashMsg{seq: m.flashSeq})
	if m.flash != "" {
		t.Error("flash should clear")
	}
}

func TestGenerateStaleFlashTick(t *testing.T) {
	cb := &fakeClipboard{}
	m := newGenerateModel(cb)
	m, _ = m.Update(enterKey())

	m, _ = m.Update(keyMsg('c'))
	first := m.flashSeq
	m, _ = m.Update(keyMsg('c'))

	m, _ = m.Update(flashMsg{seq: first})
	if m.flash != "copied!" {
		t.Errorf("older tick cleared a newer flash: %q", m.flash)
	}

	m, _ = m.Update(flashMsg{seq: m.flashSeq})
	if m.flash != "" {
		t.Error("latest tick should clear the flash")
	}
}

func TestGenerateCopyUnavailable(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no clipboard")}
	m := newGenerateModel(cb)
	m, _ = m.Update(enterKey())
	m, _ = m.Update(keyMsg('c'))

	if !strings.Contains(m.flash, "no clipboard") {
		t.Errorf("flash = %q", m.flash)
	}
}

// audit view tests

func TestAuditViewStrong(t *testing.T) {
	secret := "Tr0ub4dor&3xyzQ"
	m := newAuditModel(len(secret), audit.Audit(secret), strength.Guessability(secret))
	view := m.View()

	if !strings.Contains(view, "100/100") {
		t.Error("strong password should score 100")
	}
	if !strings.Contains(view, "No suggestions") {
		t.Error("view should say there are no suggestions")
	}
}

func TestAuditViewTips(t *testing.T) {
	m := newAuditModel(3, audit.Audit("abc"), strength.Guessability("abc"))
	view := m.View()

	for _, tip := range m.result.Tips {
		if !strings.Contains(view, tip) {
			t.Errorf("view missing tip %q", tip)
		}
	}
	if strings.Contains(view, "abc") {
		t.Error("view must not show the secret")
	}
}

func TestAuditAnother(t *testing.T) {
	m := newAuditModel(0, audit.Result{}, strength.Guess{})
	_, cmd := m.Update(keyMsg('a'))
	if got := exec(cmd); got != (promptMsg{purpose: purposeAudit}) {
		t.Errorf("msg = %#v", got)
	}
}

// breach view tests

func TestBreachViewStates(t *testing.T) {
	tests := []struct {
		name string
		msg  breachResultMsg
		want string
		not  string
	}{
		{"found", breachResultMsg{result: breach.Result{Found: true, Count: 42}}, "found in 42 breaches", ""},
		{"not found", breachResultMsg{}, "not found", ""},
		{"error", breachResultMsg{err: errors.New("dial tcp: refused")}, "unavailable", "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newBreachModel()
			if !strings.Contains(m.View(), "checking") {
				t.Error("pending view should show progress")
			}

			m, _ = m.Update(tt.msg)
			view := m.View()
			if !strings.Contains(view, tt.want) {
				t.Errorf("view missing %q:\n%s", tt.want, view)
			}
			if tt.not != "" && strings.Contains(view, tt.not) {
				t.Errorf("view should not contain %q:\n%s", tt.not, view)
			}
		})
	}
}

func TestBreachRetry(t *testing.T) {
	m := newBreachModel()
	_, cmd := m.Update(keyMsg('r'))
	if exec(cmd) != nil {
		t.Error("r should do nothing while pending")
	}

	m, _ = m.Update(breachResultMsg{})
	_, cmd = m.Update(keyMsg('r'))
	if got := exec(cmd); got != (promptMsg{purpose: purposeBreach}) {
		t.Errorf("msg = %#v", got)
	}
}

// hash view tests

func TestHashViewCopy(t *testing.T) {
	cb := &fakeClipboard{}
	m := newHashModel("$2a$12$abc", nil, cb)
	m, _ = m.Update(keyMsg('c'))

	if cb.copied != "$2a$12$abc" {
		t.Errorf("copied %q", cb.copied)
	}
	if !strings.Contains(m.View(), "$2a$12$abc") {
		t.Error("view should show hash")
	}
}

func TestHashViewStaleFlashTick(t *testing.T) {
	m := newHashModel("$2a$12$abc", nil, &fakeClipboard{})
	m, _ = m.Update(keyMsg('c'))
	first := m.flashSeq
	m, _ = m.Update(keyMsg('c'))

	m, _ = m.Update(flashMsg{seq: first})
	if m.flash == "" {
		t.Error("older tick cleared a newer flash")
	}
	m, _ = m.Update(flashMsg{seq: m.flashSeq})
	if m.flash != "" {
		t.Error("latest tick should clear the flash")
	}
}

func TestHashViewError(t *testing.T) {
	m := newHashModel("", errHasherUnavailable, &fakeClipboard{})
	if !strings.Contains(m.View(), errHasherUnavailable.Error()) {
		t.Error("view should show error")
	}
}

// logs view tests

func TestLogsViewEmpty(t *testing.T) {
	m := newLogsModel(nil, nil)
	if !strings.Contains(m.View(), "No logs yet.") {
		t.Error("empty log should say so")
	}
}

func TestLogsViewLines(t *testing.T) {
	m := newLogsModel([]string{"[2025-01-01 00:00:00] AUDIT score=40"}, nil)
	if !strings.Contains(m.View(), "AUDIT score=40") {
		t.Error("view should show log lines")
	}
}

// quiz view tests

func TestQuizFlow(t *testing.T) {
	m := newQuizModel(quiz.Questions())

	var done tea.Msg
	for range len(m.questions) {
		q := m.questions[m.current]
		m, _ = m.Update(keyMsg(rune('0' + q.Answer)))
		if !m.correct {
			t.Fatal("answer should be correct")
		}
		var cmd tea.Cmd
		m, cmd = m.Update(enterKey())
		done = exec(cmd)
	}

	msg, ok := done.(quizDoneMsg)
	if !ok {
		t.Fatalf("expected quizDoneMsg, got %#v", done)
	}
	if msg.score != 3 || msg.total != 3 {
		t.Errorf("msg = %+v, want 3/3", msg)
	}
	if !strings.Contains(m.View(), "Excellent") {
		t.Error("perfect score should get top verdict")
	}
}

func TestQuizWrongAnswer(t *testing.T) {
	m := newQuizModel(quiz.Questions())
	q := m.questions[0]
	wrong := 1
	if q.Answer == 1 {
		wrong = 2
	}

	m, _ = m.Update(keyMsg(rune('0' + wrong)))
	if m.correct || m.score != 0 {
		t.Error("answer should be wrong")
	}
	if !strings.Contains(m.View(), q.AnswerText()) {
		t.Error("view should reveal the correct answer")
	}

	// a second answer is ignored
	m, _ = m.Update(keyMsg(rune('0' + q.Answer)))
	if m.score != 0 {
		t.Error("only the first answer counts")
	}
}

func TestQuizIgnoresOutOfRange(t *testing.T) {
	m := newQuizModel(quiz.Questions())
	m, _ = m.Update(keyMsg('9'))
	if m.answered {
		t.Error("out-of-range key should be ignored")
	}
	m, _ = m.Update(enterKey())
	if m.current != 0 {
		t.Error("enter before answering should not advance")
	}
}

// root model tests

func TestRootAuditFlowLogsMetadata(t *testing.T) {
	log := testLog(t)
	var m tea.Model = New(context.Background(), "dev", Services{Log: log})

	m, _ = m.Update(promptMsg{purpose: purposeAudit})
	if m.(Model).active != viewSecret {
		t.Fatal("expected secret prompt")
	}

	m, _ = m.Update(secretSubmitMsg{purpose: purposeAudit, secret: "hunter2hunter2"})
	if m.(Model).active != viewAudit {
		t.Fatal("expected audit view")
	}

	lines, err := log.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "AUDIT") {
		t.Fatalf("lines = %q", lines)
	}
	if strings.Contains(lines[0], "hunter2") {
		t.Error("log must not contain the secret")
	}
}

func TestRootBreachFlow(t *testing.T) {
	log := testLog(t)
	fb := &fakeBreach{result: breach.Result{Found: true, Count: 7}}
	var m tea.Model = New(context.Background(), "dev", Services{Log: log, Breach: fb})

	m, cmd := m.Update(secretSubmitMsg{purpose: purposeBreach, secret: "password"})
	if m.(Model).active != viewBreach {
		t.Fatal("expected breach view")
	}

	// run the lookup directly rather than through the batch
	msg := checkBreach(context.Background(), fb, "password")()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m, _ = m.Update(msg)

	if fb.got != "password" {
		t.Errorf("checker got %q", fb.got)
	}
	if !strings.Contains(m.View(), "found in 7 breaches") {
		t.Error("view should show result")
	}

	lines, _ := log.Recent(10)
	if len(lines) != 1 || !strings.Contains(lines[0], "result=found") {
		t.Errorf("lines = %q", lines)
	}
}

func TestRootBreachErrorNotLogged(t *testing.T) {
	log := testLog(t)
	var m tea.Model = New(context.Background(), "dev", Services{Log: log})

	m, _ = m.Update(secretSubmitMsg{purpose: purposeBreach, secret: "password"})
	m, _ = m.Update(breachResultMsg{err: errors.New("timeout")})

	if !strings.Contains(m.View(), "unavailable") {
		t.Error("view should say the check is unavailable")
	}
	lines, _ := log.Recent(10)
	if len(lines) != 0 {
		t.Errorf("failed check should not be logged: %q", lines)
	}
}

func TestRootBreachNotConfigured(t *testing.T) {
	var m tea.Model = New(context.Background(), "dev", Services{})
	m, _ = m.Update(secretSubmitMsg{purpose: purposeBreach, secret: "x"})

	if !strings.Contains(m.View(), errBreachUnavailable.Error()) {
		t.Error("view should explain breach checks are unavailable")
	}
}

func TestRootHash(t *testing.T) {
	log := testLog(t)
	var m tea.Model = New(context.Background(), "dev", Services{Log: log, Hasher: fakeHasher{hash: "$2a$12$xyz"}})

	m, _ = m.Update(secretSubmitMsg{purpose: purposeHash, secret: "pw"})
	if !strings.Contains(m.View(), "$2a$12$xyz") {
		t.Error("view should show hash")
	}

	lines, _ := log.Recent(10)
	if len(lines) != 1 || !strings.Contains(lines[0], "HASH") {
		t.Errorf("lines = %q", lines)
	}
}

func TestRootHashTooLong(t *testing.T) {
	h, err := hasher.New(4)
	if err != nil {
		t.Fatal(err)
	}
	var m tea.Model = New(context.Background(), "dev", Services{Hasher: h})

	m, _ = m.Update(secretSubmitMsg{purpose: purposeHash, secret: strings.Repeat("x", 80)})
	if !strings.Contains(m.View(), "password longer than 72 bytes") {
		t.Errorf("view = %s", m.View())
	}
}

func TestRootGenerateLogged(t *testing.T) {
	log := testLog(t)
	var m tea.Model = New(context.Background(), "dev", Services{Log: log})

	m, _ = m.Update(navigateMsg{view: viewGenerate})
	m, cmd := m.Update(enterKey())
	m, _ = m.Update(exec(cmd))

	lines, _ := log.Recent(10)
	if len(lines) != 1 || !strings.Contains(lines[0], "GENERATE len=16") {
		t.Errorf("lines = %q", lines)
	}
	if !strings.Contains(m.View(), "Generate Password") {
		t.Error("view should show generate title")
	}
}

func TestRootLogsView(t *testing.T) {
	log := testLog(t)
	if err := log.Append(eventlog.KindQuiz, "score", 2, "total", 3); err != nil {
		t.Fatal(err)
	}

	var m tea.Model = New(context.Background(), "dev", Services{Log: log})
	m, _ = m.Update(navigateMsg{view: viewLogs})

	if !strings.Contains(m.View(), "QUIZ score=2 total=3") {
		t.Errorf("view = %s", m.View())
	}
}

func TestRootQuizShuffled(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	var m tea.Model = New(context.Background(), "dev", Services{Shuffle: r})
	m, _ = m.Update(navigateMsg{view: viewQuiz})

	if n := len(m.(Model).quiz.questions); n != 3 {
		t.Errorf("questions = %d, want 3", n)
	}

	m, _ = m.Update(quizDoneMsg{score: 1, total: 3})
	if m.(Model).active != viewQuiz {
		t.Error("done message should not leave the quiz view")
	}
}

func TestRootEscReturnsToMenu(t *testing.T) {
	var m tea.Model = New(context.Background(), "dev", Services{})
	m, _ = m.Update(navigateMsg{view: viewLogs})

	m, cmd := m.Update(escKey())
	m, _ = m.Update(exec(cmd))
	if m.(Model).active != viewMenu {
		t.Error("esc should return to menu")
	}
}

func TestRootWindowSize(t *testing.T) {
	var m tea.Model = New(context.Background(), "dev", Services{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if m.(Model).width != 80 || m.(Model).height != 24 {
		t.Error("window size not stored")
	}
}
