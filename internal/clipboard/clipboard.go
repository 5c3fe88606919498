// Package clipboard copies picked emoji to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard provider was found.
var ErrUnavailable = errors.New("clipboard: no provider available")

// Available returns true if a clipboard provider was detected.
func Available() bool {
	return !clipboard.Unsupported
}

// WriteText copies text to the system clipboard.
func WriteText(text string) error {
	if !Available() {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: write: %w", err)
	}
	return nil
}

// ReadText returns the current clipboard contents.
func ReadText() (string, error) {
	if !Available() {
		return "", ErrUnavailable
	}
	s, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard: read: %w", err)
	}
	return s, nil
}
