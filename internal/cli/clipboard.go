package cli

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when the host has no clipboard utility.
var ErrClipboardUnavailable = errors.New("no clipboard utility available")

// ClipboardCopier writes code values to the system clipboard.
type ClipboardCopier struct{}

// Copy implements service.Copier.
func (ClipboardCopier) Copy(value string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(value); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// StdoutCopier prints the value instead of copying it, for headless hosts.
type StdoutCopier struct {
	Print func(string)
}

// Copy implements service.Copier.
func (c StdoutCopier) Copy(value string) error {
	c.Print(value)
	return nil
}
