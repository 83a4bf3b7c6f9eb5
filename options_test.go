package jsonedit

import (
	"os"
	"path/filepath"
	"testing"
)

// TestParseSessionOptions tests YAML settings
func TestParseSessionOptions(t *testing.T) {
	opts, err := ParseSessionOptions([]byte("history_limit: 20\nindent: \"    \"\n"))
	if err != nil {
		t.Fatalf("ParseSessionOptions failed: %v", err)
	}
	if opts.HistoryLimit != 20 {
		t.Errorf("Expected history_limit 20, got %d", opts.HistoryLimit)
	}
	if opts.Indent != "    " {
		t.Errorf("Expected four-space indent, got %q", opts.Indent)
	}
	// unset fields keep their defaults
	if opts.PasteKeyPrefix != DefaultSessionOptions.PasteKeyPrefix {
		t.Errorf("Expected default paste key prefix, got %q", opts.PasteKeyPrefix)
	}
}

// TestParseSessionOptionsErrors tests rejected settings
func TestParseSessionOptionsErrors(t *testing.T) {
	tests := []string{
		"history_limit: -1\n",
		"history_limit: [1, 2]\n",
		"indent: \"unterminated\n",
	}
	for _, in := range tests {
		if _, err := ParseSessionOptions([]byte(in)); err == nil {
			t.Errorf("Expected error for %q", in)
		}
	}
}

// TestLoadSessionOptions tests reading settings from a file
func TestLoadSessionOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jsonedit.yaml")
	if err := os.WriteFile(path, []byte("paste_key_prefix: item\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadSessionOptions(path)
	if err != nil {
		t.Fatalf("LoadSessionOptions failed: %v", err)
	}
	if opts.PasteKeyPrefix != "item" || opts.HistoryLimit != DefaultSessionOptions.HistoryLimit {
		t.Errorf("Unexpected options: %+v", opts)
	}

	if _, err := LoadSessionOptions(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

// TestSessionUsesIndentOption tests that the text pane honors Indent
func TestSessionUsesIndentOption(t *testing.T) {
	opts, err := ParseSessionOptions([]byte("indent: \"\\t\"\n"))
	if err != nil {
		t.Fatalf("ParseSessionOptions failed: %v", err)
	}
	s, err := NewSession(MustParse(`{"a":1}`), &opts)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if got := string(s.Text()); got != "{\n\t\"a\": 1\n}" {
		t.Errorf("Unexpected text: %q", got)
	}
}
