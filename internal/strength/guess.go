package strength

import "github.com/nbutton23/zxcvbn-go"

// Guess summarises how easily a secret falls to pattern-aware guessing
// (dictionary words, keyboard walks, repeats, dates).
type Guess struct {
	Score     int     `json:"score"`      // 0 (trivial) to 4 (very hard)
	CrackTime string  `json:"crack_time"` // human readable offline crack estimate
	Entropy   float64 `json:"entropy"`    // bits after pattern matching
}

// Guessability runs pattern analysis over secret. It is reported next to an
// audit and never changes the audit score.
func Guessability(secret string) Guess {
	if secret == "" {
		return Guess{CrackTime: "instant"}
	}

	m := zxcvbn.PasswordStrength(secret, nil)
	return Guess{
		Score:     m.Score,
		CrackTime: m.CrackTimeDisplay,
		Entropy:   m.Entropy,
	}
}

// Label names a guessability score.
func (g Guess) Label() string {
	switch g.Score {
	case 0:
		return "very weak"
	case 1:
		return "weak"
	case 2:
		return "fair"
	case 3:
		return "good"
	default:
		return "very strong"
	}
}
