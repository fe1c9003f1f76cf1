// Package commands implements the emojitimer-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/emoji-timer/emojitimer-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	RunID     string
	ChannelID string
	Category  *log.Category

	// SkipUnchanged hides edit events that did not change the display.
	SkipUnchanged bool
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		RunID:     f.RunID,
		ChannelID: f.ChannelID,
		Category:  f.Category,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [run:id] #channel CATEGORY
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [run:%s] #%s %s\n", ts, shortenRunID(event.RunID), event.ChannelID, event.Category.String())

	if event.MessageID != "" {
		fmt.Fprintf(w, "  Message: %s\n", event.MessageID)
	}

	switch {
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Edit != nil:
		formatEditDetails(w, event.Edit)
	case event.Lag != nil:
		fmt.Fprintf(w, "  Edit took %s (threshold %s)\n", formatDuration(event.Lag.Elapsed), formatDuration(event.Lag.Threshold))
	case event.Error != nil:
		fmt.Fprintf(w, "  Op: %s\n", event.Error.Op)
		fmt.Fprintf(w, "  Error: %s\n", event.Error.Message)
	}

	fmt.Fprintln(w)
}

// shortenRunID returns the first 8 characters of the run ID.
func shortenRunID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
	fmt.Fprintf(w, "  Remaining: %s\n", formatClock(sc.Remaining))
}

func formatEditDetails(w io.Writer, e *log.EditEvent) {
	label := "Edit"
	switch {
	case e.Final:
		label = "Final edit"
	case e.Skipped:
		label = "Unchanged"
	}
	fmt.Fprintf(w, "  %s: %s\n", label, formatClock(time.Duration(e.Seconds)*time.Second))
	if !e.Skipped {
		fmt.Fprintf(w, "  Latency: %s\n", formatDuration(e.Latency))
	}
	if e.Wait > 0 {
		fmt.Fprintf(w, "  Next in: %s\n", formatDuration(e.Wait))
	}
	if e.Resent {
		fmt.Fprintln(w, "  Message was re-sent")
	}
}

// formatClock renders a remaining time as MM:SS with uncapped minutes.
func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be state, edit, lag, or error)", s)
	}
	return c, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		if filter.SkipUnchanged && event.Edit != nil && event.Edit.Skipped {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}
