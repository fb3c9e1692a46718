package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONFormatter(t *testing.T) {
	formatter := NewFormatter(FormatJSON)

	data := map[string]string{"id": "abc", "email": "host@example.com"}
	var buf bytes.Buffer
	if err := formatter.FormatTo(&buf, data); err != nil {
		t.Fatalf("FormatTo failed: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["email"] != "host@example.com" {
		t.Errorf("expected email round-tripped, got %q", decoded["email"])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented output")
	}
}

func TestTextFormatterDefault(t *testing.T) {
	formatter := NewFormatter(OutputFormat("unknown"))
	if _, ok := formatter.(*TextFormatter); !ok {
		t.Errorf("expected text formatter for unknown format, got %T", formatter)
	}

	var buf bytes.Buffer
	if err := formatter.FormatTo(&buf, "3 records"); err != nil {
		t.Fatalf("FormatTo failed: %v", err)
	}
	if buf.String() != "3 records\n" {
		t.Errorf("unexpected text output %q", buf.String())
	}
}
