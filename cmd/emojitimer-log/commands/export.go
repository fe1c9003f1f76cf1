package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/emoji-timer/emojitimer-go/pkg/log"
)

// RunExport exports the event file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "run_id", "channel_id", "message_id", "category", "state", "seconds", "latency_ms", "wait_ms", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var state, seconds, latency, wait, detail string
		switch {
		case event.StateChange != nil:
			state = event.StateChange.NewState
			detail = event.StateChange.Reason
		case event.Edit != nil:
			seconds = strconv.Itoa(event.Edit.Seconds)
			latency = strconv.FormatInt(event.Edit.Latency.Milliseconds(), 10)
			wait = strconv.FormatInt(event.Edit.Wait.Milliseconds(), 10)
			switch {
			case event.Edit.Final:
				detail = "final"
			case event.Edit.Skipped:
				detail = "unchanged"
			case event.Edit.Resent:
				detail = "resent"
			}
		case event.Lag != nil:
			latency = strconv.FormatInt(event.Lag.Elapsed.Milliseconds(), 10)
		case event.Error != nil:
			detail = event.Error.Op + ": " + event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.RunID,
			event.ChannelID,
			event.MessageID,
			event.Category.String(),
			state,
			seconds,
			latency,
			wait,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
