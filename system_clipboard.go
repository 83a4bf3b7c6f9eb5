package jsonedit

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

// SystemClipboard is the operating system clipboard. Reads and writes
// shell out to the platform helper (pbcopy, xclip, wl-copy, ...), so they
// run on their own goroutine and give up when ctx is done.
type SystemClipboard struct{}

// NewSystemClipboard returns the system clipboard, or ErrClipboardUnavailable
// when the platform provides no clipboard helper.
func NewSystemClipboard() (*SystemClipboard, error) {
	if clipboard.Unsupported {
		return nil, ErrClipboardUnavailable
	}
	return &SystemClipboard{}, nil
}

type clipResult struct {
	text string
	err  error
}

// ReadText returns the clipboard text.
func (c *SystemClipboard) ReadText(ctx context.Context) (string, error) {
	done := make(chan clipResult, 1)
	go func() {
		text, err := clipboard.ReadAll()
		done <- clipResult{text: text, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("read clipboard: %w", r.err)
		}
		return r.text, nil
	}
}

// WriteText replaces the clipboard text.
func (c *SystemClipboard) WriteText(ctx context.Context, text string) error {
	done := make(chan error, 1)
	go func() {
		done <- clipboard.WriteAll(text)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("write clipboard: %w", err)
		}
		return nil
	}
}
