package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

// recordingLogger records events for testing
type recordingLogger struct {
	events []Event
}

func (m *recordingLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
	logger.Log(Event{Edit: &EditEvent{Seconds: 1}})
}

func TestMultiLoggerCallsAll(t *testing.T) {
	loggers := []*recordingLogger{{}, {}, {}}
	multi := NewMultiLogger(loggers[0], loggers[1], loggers[2])

	multi.Log(Event{Timestamp: time.Now(), RunID: "run-123"})

	for i, l := range loggers {
		if len(l.events) != 1 || l.events[0].RunID != "run-123" {
			t.Errorf("logger %d: got %+v", i, l.events)
		}
	}

	// Should not panic with empty logger list
	NewMultiLogger().Log(Event{})
}

func TestSlogAdapterLogsEditEvent(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	adapter.Log(Event{
		Timestamp: time.Now(),
		RunID:     "run-1",
		ChannelID: "chan-1",
		Category:  CategoryEdit,
		MessageID: "msg-1",
		Edit:      &EditEvent{Seconds: 42, Latency: 120 * time.Millisecond, Resent: true},
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	if entry["run_id"] != "run-1" {
		t.Errorf("run_id: got %v", entry["run_id"])
	}
	if entry["category"] != "EDIT" {
		t.Errorf("category: got %v", entry["category"])
	}
	if entry["seconds"] != float64(42) {
		t.Errorf("seconds: got %v", entry["seconds"])
	}
	if entry["resent"] != true {
		t.Errorf("resent: got %v", entry["resent"])
	}
	if _, ok := entry["skipped"]; ok {
		t.Error("skipped should be omitted when false")
	}
}

func TestSlogAdapterLogsStateChange(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	adapter.Log(Event{
		Category:    CategoryState,
		StateChange: &StateChangeEvent{OldState: "RUNNING", NewState: "PAUSED", Reason: "pause"},
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["new_state"] != "PAUSED" || entry["reason"] != "pause" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	adapter.Log(Event{Category: CategoryLag, Lag: &LagEvent{Elapsed: 3 * time.Second}})
	if buf.Len() != 0 {
		t.Errorf("debug event written at info level: %s", buf.String())
	}
}
