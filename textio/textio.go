// Package textio reads sketch sources and delivers rendered text to files
// and the system clipboard.
package textio

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mitchellh/go-homedir"
)

// ErrClipboardUnavailable is returned when no clipboard utility is installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// ResolvePath expands a leading ~ in path to the user's home directory.
func ResolvePath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return expanded, nil
}

// ReadTextFile returns the contents of the file at path.
func ReadTextFile(path string) (string, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// WriteTextFile writes contents to the file at path exactly as given,
// creating or truncating it.
func WriteTextFile(path, contents string) error {
	resolved, err := ResolvePath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(resolved, []byte(contents), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// CopyToClipboard places text on the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
