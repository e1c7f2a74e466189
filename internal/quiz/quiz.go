// Package quiz holds a short security-awareness quiz.
//
// Question order is shuffled with math/rand/v2. That source is never used
// for anything secret; password generation lives in package generator.
package quiz

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// Question is a multiple-choice question. Answer is 1-based.
type Question struct {
	Prompt  string
	Options []string
	Answer  int
}

// Questions returns a fresh copy of the built-in question set.
func Questions() []Question {
	return []Question{
		{
			Prompt:  "Which password is strongest?",
			Options: []string{"123456", "qwerty", "sTr0ng!Pass99"},
			Answer:  3,
		},
		{
			Prompt:  "How often should you change important passwords?",
			Options: []string{"Never", "Every few years", "At least once a year or if breached"},
			Answer:  3,
		},
		{
			Prompt:  "What's safer?",
			Options: []string{"Same password everywhere", "Unique password per site", "Write on sticky notes"},
			Answer:  2,
		},
	}
}

// Shuffle reorders qs in place. A nil r uses the global source.
func Shuffle(qs []Question, r *rand.Rand) {
	swap := func(i, j int) { qs[i], qs[j] = qs[j], qs[i] }
	if r == nil {
		rand.Shuffle(len(qs), swap)
		return
	}
	r.Shuffle(len(qs), swap)
}

// Correct reports whether input selects the right option.
func (q Question) Correct(input string) bool {
	return strings.TrimSpace(input) == strconv.Itoa(q.Answer)
}

// AnswerText returns the text of the correct option.
func (q Question) AnswerText() string {
	if q.Answer < 1 || q.Answer > len(q.Options) {
		return ""
	}
	return q.Options[q.Answer-1]
}

// Verdict summarises a final score.
func Verdict(score, total int) string {
	switch {
	case score == total:
		return "Excellent! You're a security pro!"
	case score >= total/2:
		return "Good! But there's room to improve."
	default:
		return "Needs improvement. Read more about security."
	}
}
