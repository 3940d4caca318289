package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEventRoundTrip(t *testing.T) {
	event := NewFailure("conn-1", "standup", "PASSWORD_REQUIRED", "wrong password", false)

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent() error = %v", err)
	}

	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}

	if got.ConnectionID != "conn-1" || got.Room != "standup" {
		t.Errorf("identity fields lost: %+v", got)
	}
	if got.Category != CategoryFailure {
		t.Errorf("Category = %v, want %v", got.Category, CategoryFailure)
	}
	if got.Failure == nil || got.Failure.Code != "PASSWORD_REQUIRED" || got.Failure.Fatal {
		t.Errorf("failure payload mismatch: %+v", got.Failure)
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Log(NewStateChange("conn-2", "standup", "IDLE", "ATTEMPTING"))

	out := buf.String()
	for _, want := range []string{"conn_id=conn-2", "from=IDLE", "to=ATTEMPTING", "room=standup"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSlogAdapterFailureLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil)) // default Info level
	adapter := NewSlogAdapter(logger)

	adapter.Log(NewFailure("conn-3", "", "SERVER_ERROR", "boom", true))

	out := buf.String()
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("failure should log at warn level: %s", out)
	}
	if !strings.Contains(out, "fatal=true") {
		t.Errorf("output missing fatal flag: %s", out)
	}
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	fl, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	fl.Log(NewAuth("conn-4", "standup", "token-fetched", true))
	fl.Log(NewAuth("conn-4", "standup", "override-applied", true))

	if err := fl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Close is idempotent; logging after close is silently ignored.
	if err := fl.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	fl.Log(NewAuth("conn-4", "standup", "dropped", false))

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	dec := NewDecoder(f)
	count := 0
	for {
		var e Event
		if err := dec.Decode(&e); err != nil {
			break
		}
		if e.Auth == nil {
			t.Errorf("event %d missing auth payload", count)
		}
		count++
	}
	if count != 2 {
		t.Errorf("decoded %d events, want 2", count)
	}
}

func TestMultiLogger(t *testing.T) {
	var a, b recordingLogger
	m := NewMultiLogger(&a, &b)

	m.Log(NewStateChange("conn-5", "", "ATTEMPTING", "ESTABLISHED"))

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("fan-out failed: a=%d b=%d", len(a.events), len(b.events))
	}
}

type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}
