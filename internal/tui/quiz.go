package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zaudit/internal/quiz"
)

// quizModel walks through the awareness questions one at a time.
type quizModel struct {
	questions []quiz.Question
	current   int
	score     int

	// answered is set once the current question has a response
	answered bool
	correct  bool
}

// quizDoneMsg reports a finished quiz.
type quizDoneMsg struct {
	score int
	total int
}

func newQuizModel(qs []quiz.Question) quizModel {
	return quizModel{questions: qs}
}

func (m quizModel) finished() bool {
	return m.current >= len(m.questions)
}

func (m quizModel) Update(msg tea.Msg) (quizModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(km, zstyle.KeyQuit) {
		return m, tea.Quit
	}
	if key.Matches(km, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}
	if m.finished() {
		return m, nil
	}

	if key.Matches(km, zstyle.KeyEnter) {
		if !m.answered {
			return m, nil
		}
		m.current++
		m.answered = false
		if m.finished() {
			score, total := m.score, len(m.questions)
			return m, func() tea.Msg { return quizDoneMsg{score: score, total: total} }
		}
		return m, nil
	}

	if m.answered {
		return m, nil
	}

	q := m.questions[m.current]
	s := km.String()
	if len(s) != 1 || s[0] < '1' || int(s[0]-'0') > len(q.Options) {
		return m, nil
	}

	m.answered = true
	m.correct = q.Correct(s)
	if m.correct {
		m.score++
	}
	return m, nil
}

func (m quizModel) View() string {
	if m.finished() {
		return fmt.Sprintf("\n  %s\n  %s\n",
			zstyle.Title.Render(fmt.Sprintf("You scored %d/%d", m.score, len(m.questions))),
			zstyle.MutedText.Render(quiz.Verdict(m.score, len(m.questions))))
	}

	q := m.questions[m.current]
	s := fmt.Sprintf("\n  %s\n  %s\n\n",
		zstyle.MutedText.Render(fmt.Sprintf("question %d of %d", m.current+1, len(m.questions))),
		q.Prompt)
	for i, opt := range q.Options {
		s += fmt.Sprintf("    %d. %s\n", i+1, opt)
	}

	if m.answered {
		if m.correct {
			s += "\n  " + zstyle.StatusOK.Render("Correct!") + "\n"
		} else {
			s += "\n  " + zstyle.StatusErr.Render("Wrong. Correct answer: "+q.AnswerText()) + "\n"
		}
		s += "  " + zstyle.MutedText.Render("press enter to continue") + "\n"
	}
	return s
}
