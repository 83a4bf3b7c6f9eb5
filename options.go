package jsonedit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SessionOptions represents configuration for a Session
type SessionOptions struct {
	// HistoryLimit caps the number of undo snapshots. 0 keeps every
	// snapshot, which costs one full document copy per edit.
	HistoryLimit int `yaml:"history_limit"`

	// Indent is the indentation of the canonical text form.
	Indent string `yaml:"indent"`

	// PasteKeyPrefix prefixes the keys generated for bare values pasted
	// into an object.
	PasteKeyPrefix string `yaml:"paste_key_prefix"`

	// Clipboard is the external clipboard. Defaults to a MemoryClipboard.
	Clipboard Clipboard `yaml:"-"`

	// Logger receives command and clipboard diagnostics. Defaults to a
	// logger that discards everything.
	Logger *slog.Logger `yaml:"-"`

	// Now is the clock used for generated keys.
	Now func() time.Time `yaml:"-"`
}

// DefaultSessionOptions provides default settings for sessions
var DefaultSessionOptions = SessionOptions{
	HistoryLimit:   500,
	Indent:         DefaultIndent,
	PasteKeyPrefix: "pasted",
}

// ParseSessionOptions reads YAML settings layered over DefaultSessionOptions.
//
//	history_limit: 200
//	indent: "    "
//	paste_key_prefix: item
func ParseSessionOptions(data []byte) (SessionOptions, error) {
	opts := DefaultSessionOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return SessionOptions{}, fmt.Errorf("session options: %w", err)
	}
	if opts.HistoryLimit < 0 {
		return SessionOptions{}, fmt.Errorf("session options: history_limit must not be negative, got %d", opts.HistoryLimit)
	}
	return opts, nil
}

// LoadSessionOptions reads ParseSessionOptions input from a file.
func LoadSessionOptions(path string) (SessionOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SessionOptions{}, fmt.Errorf("session options: %w", err)
	}
	return ParseSessionOptions(data)
}

// withDefaults fills unset fields from DefaultSessionOptions.
func (o SessionOptions) withDefaults() SessionOptions {
	if o.Indent == "" {
		o.Indent = DefaultSessionOptions.Indent
	}
	if o.PasteKeyPrefix == "" {
		o.PasteKeyPrefix = DefaultSessionOptions.PasteKeyPrefix
	}
	if o.HistoryLimit < 0 {
		o.HistoryLimit = 0
	}
	if o.Clipboard == nil {
		o.Clipboard = &MemoryClipboard{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
