package strength

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinLength is the shortest secret that passes the length check.
const MinLength = 12

// pointsPerCheck is what each passing check adds to the score.
const pointsPerCheck = 20

// punctuation is the ASCII punctuation set used by the symbol check.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Check identifies one structural rule.
type Check int

// Checks in declaration order. Tips follow this order.
const (
	HasUpper Check = iota
	HasLower
	HasDigit
	HasSymbol
	HasMinLength
)

// AllChecks lists every check in declaration order.
var AllChecks = []Check{HasUpper, HasLower, HasDigit, HasSymbol, HasMinLength}

// String returns the display label.
func (c Check) String() string {
	switch c {
	case HasUpper:
		return "Has Uppercase"
	case HasLower:
		return "Has Lowercase"
	case HasDigit:
		return "Has Digit"
	case HasSymbol:
		return "Has Symbol"
	case HasMinLength:
		return "Length ≥ 12"
	default:
		return "Unknown"
	}
}

// Tip returns the remediation text shown when c fails.
func (c Check) Tip() string {
	switch c {
	case HasUpper:
		return "Add at least one uppercase letter"
	case HasLower:
		return "Add at least one lowercase letter"
	case HasDigit:
		return "Include at least one number"
	case HasSymbol:
		return "Use at least one special symbol"
	case HasMinLength:
		return "Make the password at least 12 characters long"
	default:
		return ""
	}
}

// Checks maps each check to whether it passed.
type Checks map[Check]bool

// Passed counts the checks that passed.
func (c Checks) Passed() int {
	n := 0
	for _, ok := range c {
		if ok {
			n++
		}
	}
	return n
}

// Score evaluates secret against every check. The score is 20 points per
// passing check, and tips holds one entry per failing check in declaration
// order. tips is empty when everything passes.
func Score(secret string) (checks Checks, score int, tips []string) {
	checks = Checks{
		HasUpper:     containsFunc(secret, unicode.IsUpper),
		HasLower:     containsFunc(secret, unicode.IsLower),
		HasDigit:     containsFunc(secret, unicode.IsDigit),
		HasSymbol:    strings.ContainsAny(secret, punctuation),
		HasMinLength: utf8.RuneCountInString(secret) >= MinLength,
	}

	tips = []string{}
	for _, c := range AllChecks {
		if checks[c] {
			score += pointsPerCheck
			continue
		}
		tips = append(tips, c.Tip())
	}

	return checks, score, tips
}

// Rating buckets a score for display.
func Rating(score int) string {
	switch {
	case score >= 70:
		return "strong"
	case score >= 40:
		return "fair"
	default:
		return "weak"
	}
}

func containsFunc(s string, f func(rune) bool) bool {
	return strings.IndexFunc(s, f) >= 0
}
