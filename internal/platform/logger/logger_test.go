package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Out: &buf})

	l.Info("ignored", nil)
	l.Warn("kept", nil)

	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Fatalf("info line should be filtered, got %q", out)
	}
	if !strings.Contains(out, " WARN  kept") {
		t.Fatalf("expected warn line, got %q", out)
	}
}

func TestLogger_JSON_WithFieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, App: "walks", Out: &buf})
	sl := l.(*stdLogger)
	sl.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.With(map[string]any{"component": "session"}).
		Error("storage clear failed", map[string]any{"error": errors.New("disk full")})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["app"] != "walks" || entry["component"] != "session" {
		t.Fatalf("missing base fields: %#v", entry)
	}
	if entry["error"] != "disk full" {
		t.Fatalf("expected error as string, got %#v", entry["error"])
	}
	if entry["level"] != "error" {
		t.Fatalf("expected level error, got %#v", entry["level"])
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("") != Info || ParseLevel("nope") != Info {
		t.Fatalf("unexpected ParseLevel results")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected ParseFormat results")
	}
}

func TestLogger_RedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, Out: &buf})

	l.Info("login", map[string]any{"email": "ana@example.com", "Token": "eyJ...", "password": "Secret123"})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["Token"] != redactedValue || entry["password"] != redactedValue {
		t.Fatalf("expected credentials redacted, got %#v", entry)
	}
	if entry["email"] != "ana@example.com" {
		t.Fatalf("email should be kept, got %#v", entry["email"])
	}
}

func TestLogger_TextLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, App: "walksctl", Out: &buf})
	l.(*stdLogger).now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Warn("backend rejected request", map[string]any{"status": 401, "error": errors.New("sin sesión activa")})

	want := `2026-01-02T03:04:05Z WARN  backend rejected request app=walksctl error="sin sesión activa" status=401` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected line\n got: %q\nwant: %q", got, want)
	}
}
