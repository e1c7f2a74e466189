// Package generator produces random passwords from configurable character
// classes. All randomness comes from crypto/rand.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// character classes
const (
	LowerChars  = "abcdefghijklmnopqrstuvwxyz"
	UpperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitChars  = "0123456789"
	SymbolChars = "!@#$%&*()-_=+[]{}:;?/"

	// DefaultLength is used when no usable length was given.
	DefaultLength = 16
	// MaxLength bounds a single password.
	MaxLength = 4096
)

// ErrInvalidConfiguration is returned when a request cannot produce a
// password: an empty pool or a length outside 1..MaxLength.
var ErrInvalidConfiguration = errors.New("invalid generator configuration")

// Pool selects the character classes a password is drawn from.
type Pool struct {
	Lower   bool `json:"lower"`
	Upper   bool `json:"upper"`
	Digits  bool `json:"digits"`
	Symbols bool `json:"symbols"`
}

// DefaultPool enables every class.
func DefaultPool() Pool {
	return Pool{Lower: true, Upper: true, Digits: true, Symbols: true}
}

// Alphabet concatenates the enabled classes in a fixed order:
// lowercase, uppercase, digits, symbols.
func (p Pool) Alphabet() string {
	var b strings.Builder
	if p.Lower {
		b.WriteString(LowerChars)
	}
	if p.Upper {
		b.WriteString(UpperChars)
	}
	if p.Digits {
		b.WriteString(DigitChars)
	}
	if p.Symbols {
		b.WriteString(SymbolChars)
	}
	return b.String()
}

// Empty reports whether no class is enabled.
func (p Pool) Empty() bool {
	return !p.Lower && !p.Upper && !p.Digits && !p.Symbols
}

// Generate returns a password of length characters, each drawn
// independently and uniformly from the pool's alphabet. There is no
// guarantee every enabled class appears.
func Generate(length int, pool Pool) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: length must be positive, got %d", ErrInvalidConfiguration, length)
	}
	if length > MaxLength {
		return "", fmt.Errorf("%w: length must be at most %d, got %d", ErrInvalidConfiguration, MaxLength, length)
	}
	if pool.Empty() {
		return "", fmt.Errorf("%w: no character classes enabled", ErrInvalidConfiguration)
	}

	alphabet := pool.Alphabet()
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = pickByte(alphabet)
	}

	return string(buf), nil
}

// ParseLength reads a user-entered length. Blank or non-numeric input
// yields DefaultLength; numeric input is returned unchanged so Generate
// can reject zero.
func ParseLength(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLength
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return DefaultLength
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		// overflow
		return DefaultLength
	}
	return n
}

// pickByte returns a random byte from a string.
func pickByte(s string) byte {
	return s[randIntn(len(s))]
}

// randIntn returns a cryptographically random int in [0, n).
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
