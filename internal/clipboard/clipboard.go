// Package clipboard exposes clipboard copying as an injectable capability.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard backend is present.
var ErrUnsupported = errors.New("clipboard unavailable: install xclip, xsel or wl-clipboard")

// Copier copies text to a clipboard.
type Copier interface {
	Copy(text string) error
}

// System copies to the operating system clipboard.
type System struct{}

// Available reports whether the system has a usable clipboard backend.
func (System) Available() bool {
	return !clipboard.Unsupported
}

// Copy writes text to the system clipboard.
func (s System) Copy(text string) error {
	if !s.Available() {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// None is a Copier for environments without a clipboard.
type None struct{}

// Copy always fails with ErrUnsupported.
func (None) Copy(string) error {
	return ErrUnsupported
}

// Detect returns System when a backend exists and None otherwise.
func Detect() Copier {
	if (System{}).Available() {
		return System{}
	}
	return None{}
}
