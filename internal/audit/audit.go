// Package audit combines the strength model into a single result and wires
// generation back through it.
package audit

import (
	"github.com/zarlcorp/zaudit/internal/generator"
	"github.com/zarlcorp/zaudit/internal/strength"
)

// Result is the audit of one secret. It holds no reference to the secret.
type Result struct {
	EntropyBits float64         `json:"entropy_bits"`
	Score       int             `json:"score"`
	Checks      strength.Checks `json:"-"`
	Tips        []string        `json:"tips"`
}

// Audit estimates entropy and scores secret against the policy checks.
func Audit(secret string) Result {
	checks, score, tips := strength.Score(secret)
	return Result{
		EntropyBits: strength.Entropy(secret),
		Score:       score,
		Checks:      checks,
		Tips:        tips,
	}
}

// GenerateAndAudit generates a password and audits it. Errors come from
// the generator unchanged.
func GenerateAndAudit(length int, pool generator.Pool) (string, Result, error) {
	pw, err := generator.Generate(length, pool)
	if err != nil {
		return "", Result{}, err
	}
	return pw, Audit(pw), nil
}

// CheckList returns the checks in declaration order for display.
func (r Result) CheckList() []CheckState {
	list := make([]CheckState, len(strength.AllChecks))
	for i, c := range strength.AllChecks {
		list[i] = CheckState{Name: c.String(), Passed: r.Checks[c]}
	}
	return list
}

// CheckState is one check with its outcome.
type CheckState struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}
