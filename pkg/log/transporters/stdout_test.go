package transporters

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"trendboard/pkg/log"
)

func TestTransporters_ImplementInterface(t *testing.T) {
	var _ log.Transporter = &Stdout{}
	var _ log.Transporter = &Console{}
}

func TestStdout_Write_OneJSONLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	s := NewStdoutWithWriter(&buf)

	for _, msg := range []string{"first", "second"} {
		entry := log.Entry{Timestamp: time.Now(), Level: log.Info, Message: msg}
		if err := s.Write(entry); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &decoded); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if decoded["msg"] != "second" || decoded["level"] != "INFO" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestStdout_Name(t *testing.T) {
	if got := NewStdout().Name(); got != "stdout" {
		t.Errorf("Name() = %q, want stdout", got)
	}
}

func TestConsole_Write_RendersHumanReadableLine(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWithWriter(&buf, true)

	entry := log.Entry{
		Timestamp: time.Date(2026, 2, 1, 15, 4, 0, 0, time.UTC),
		Level:     log.Warn,
		Message:   "trend fetch failed",
		RequestID: "req-7",
		Fields:    map[string]any{"platform": "tiktok", "error": errors.New("status 502")},
	}
	if err := c.Write(entry); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"WRN", "trend fetch failed", "platform=tiktok", "request_id=req-7", "status 502"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestConsole_Name(t *testing.T) {
	if got := NewConsole().Name(); got != "console" {
		t.Errorf("Name() = %q, want console", got)
	}
}
