package tui

import (
	"github.com/atotto/clipboard"

	"github.com/Iron-Ham/focusgrid/internal/errors"
)

var errClipboardUnsupported = errors.New("no clipboard utility available")

// systemCopy writes text to the system clipboard.
func systemCopy(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}
