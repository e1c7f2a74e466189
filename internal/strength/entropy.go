// Package strength estimates password strength from the password alone.
// Everything here is a pure function of its input.
package strength

import (
	"math"
	"strings"
	"unicode/utf8"
)

// class sizes used by the entropy model
const (
	lowerPool  = 26
	upperPool  = 26
	digitPool  = 10
	symbolPool = 20
)

// entropySymbols is the symbol set the entropy model recognises.
const entropySymbols = "!@#$%&*()-_=+[]{}:;?/"

// Entropy estimates the search space of secret in bits as
// length * log2(pool), where pool is the summed size of every character
// class the secret draws from. Secrets that use none of the known classes
// fall back to the count of distinct runes.
//
// This treats the secret as if drawn uniformly from pool. It is not the
// Shannon entropy of the actual content.
func Entropy(secret string) float64 {
	if secret == "" {
		return 0
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	distinct := make(map[rune]struct{})
	for _, r := range secret {
		distinct[r] = struct{}{}
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(entropySymbols, r):
			hasSymbol = true
		}
	}

	pool := 0
	if hasLower {
		pool += lowerPool
	}
	if hasUpper {
		pool += upperPool
	}
	if hasDigit {
		pool += digitPool
	}
	if hasSymbol {
		pool += symbolPool
	}
	if pool == 0 {
		pool = len(distinct)
	}

	if pool <= 0 {
		return 0
	}

	return float64(utf8.RuneCountInString(secret)) * math.Log2(float64(pool))
}
