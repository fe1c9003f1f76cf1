package commands

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emoji-timer/emojitimer-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.tlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// sampleRun returns the events of a short countdown that was edited twice
// and then finished.
func sampleRun(ts time.Time) []log.Event {
	return []log.Event{
		{
			Timestamp: ts,
			RunID:     "run-1234-5678",
			ChannelID: "c1",
			Category:  log.CategoryState,
			StateChange: &log.StateChangeEvent{
				OldState:  "IDLE",
				NewState:  "RUNNING",
				Reason:    "start",
				Remaining: 2 * time.Second,
			},
		},
		{
			Timestamp: ts.Add(time.Second),
			RunID:     "run-1234-5678",
			ChannelID: "c1",
			MessageID: "m1",
			Category:  log.CategoryEdit,
			Edit:      &log.EditEvent{Seconds: 1, Latency: 120 * time.Millisecond, Wait: 880 * time.Millisecond},
		},
		{
			Timestamp: ts.Add(2 * time.Second),
			RunID:     "run-1234-5678",
			ChannelID: "c1",
			MessageID: "m1",
			Category:  log.CategoryEdit,
			Edit:      &log.EditEvent{Seconds: 0, Latency: 80 * time.Millisecond, Final: true},
		},
		{
			Timestamp: ts.Add(2 * time.Second),
			RunID:     "run-1234-5678",
			ChannelID: "c1",
			Category:  log.CategoryState,
			StateChange: &log.StateChangeEvent{
				OldState: "RUNNING",
				NewState: "FINISHED",
				Reason:   "completed",
			},
		},
	}
}

func TestExportToJSONL(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	path := createTestLogFile(t, sampleRun(ts))

	outPath := filepath.Join(t.TempDir(), "out.jsonl")
	if err := RunExport(path, "jsonl", outPath); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}

	var first log.Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSON on line 1: %v", err)
	}
	if first.RunID != "run-1234-5678" {
		t.Errorf("expected run ID run-1234-5678, got %s", first.RunID)
	}
	if first.StateChange == nil || first.StateChange.NewState != "RUNNING" {
		t.Errorf("expected RUNNING state change, got %+v", first.StateChange)
	}

	var second log.Event
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("invalid JSON on line 2: %v", err)
	}
	if second.Edit == nil || second.Edit.Latency != 120*time.Millisecond {
		t.Errorf("expected edit with 120ms latency, got %+v", second.Edit)
	}
}

func TestExportToCSV(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	events := append(sampleRun(ts),
		log.Event{
			Timestamp: ts.Add(3 * time.Second),
			RunID:     "run-1234-5678",
			ChannelID: "c1",
			Category:  log.CategoryError,
			Error:     &log.ErrorEventData{Op: "delete", Message: "missing permissions"},
		},
	)
	path := createTestLogFile(t, events)

	outPath := filepath.Join(t.TempDir(), "out.csv")
	if err := RunExport(path, "csv", outPath); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}

	// Header + 5 events
	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d", len(records))
	}
	if records[0][0] != "timestamp" || records[0][4] != "category" {
		t.Errorf("unexpected header: %v", records[0])
	}

	edit := records[2]
	if edit[4] != "EDIT" {
		t.Errorf("expected EDIT category, got %s", edit[4])
	}
	if edit[6] != "1" || edit[7] != "120" || edit[8] != "880" {
		t.Errorf("unexpected edit columns: %v", edit)
	}

	final := records[3]
	if final[9] != "final" {
		t.Errorf("expected final marker, got %q", final[9])
	}

	state := records[4]
	if state[5] != "FINISHED" || state[9] != "completed" {
		t.Errorf("unexpected state columns: %v", state)
	}

	errRow := records[5]
	if errRow[9] != "delete: missing permissions" {
		t.Errorf("unexpected error detail: %q", errRow[9])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, nil)

	err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out.xml"))
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExportMissingFile(t *testing.T) {
	err := RunExport(filepath.Join(t.TempDir(), "missing.tlog"), "jsonl", "")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
