package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/emoji-timer/emojitimer-go/pkg/log"
)

// Stats holds aggregate statistics about an event file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Runs             map[string]*RunSummary
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// RunSummary holds statistics for a single countdown run.
type RunSummary struct {
	ChannelID  string
	FirstSeen  time.Time
	LastSeen   time.Time
	Events     int
	LastState  string
	Edits      int
	Unchanged  int
	Resent     int
	LagWarns   int
	Errors     int
	MaxLatency time.Duration

	totalLatency time.Duration
}

// AvgLatency returns the mean latency of issued edits.
func (r *RunSummary) AvgLatency() time.Duration {
	if r.Edits == 0 {
		return 0
	}
	return r.totalLatency / time.Duration(r.Edits)
}

// CollectStats reads the event file and aggregates it.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Runs:             make(map[string]*RunSummary),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		run, ok := stats.Runs[event.RunID]
		if !ok {
			run = &RunSummary{
				ChannelID: event.ChannelID,
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Runs[event.RunID] = run
		}
		run.Events++
		if event.Timestamp.After(run.LastSeen) {
			run.LastSeen = event.Timestamp
		}

		switch {
		case event.StateChange != nil:
			run.LastState = event.StateChange.NewState
		case event.Edit != nil:
			if event.Edit.Skipped {
				run.Unchanged++
				break
			}
			run.Edits++
			run.totalLatency += event.Edit.Latency
			if event.Edit.Latency > run.MaxLatency {
				run.MaxLatency = event.Edit.Latency
			}
			if event.Edit.Resent {
				run.Resent++
			}
		case event.Lag != nil:
			run.LagWarns++
		case event.Error != nil:
			run.Errors++
			stats.Errors++
		}
	}

	return stats, nil
}

// RunStats analyzes the event file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Emoji Timer Event Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryState, log.CategoryEdit, log.CategoryLag, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Runs: %d\n", len(stats.Runs))
	if len(stats.Runs) > 0 {
		type runInfo struct {
			id    string
			stats *RunSummary
		}
		runs := make([]runInfo, 0, len(stats.Runs))
		for id, rs := range stats.Runs {
			runs = append(runs, runInfo{id, rs})
		}
		sort.Slice(runs, func(i, j int) bool {
			return runs[i].stats.FirstSeen.Before(runs[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, r := range runs {
			rs := r.stats
			duration := rs.LastSeen.Sub(rs.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] #%s %d events, duration %s\n", shortenRunID(r.id), rs.ChannelID, rs.Events, duration)
			if rs.LastState != "" {
				fmt.Fprintf(w, "           State: %s\n", rs.LastState)
			}
			fmt.Fprintf(w, "           Edits: %d (unchanged %d)\n", rs.Edits, rs.Unchanged)
			if rs.Edits > 0 {
				fmt.Fprintf(w, "           Latency: avg %s, max %s\n",
					formatDuration(rs.AvgLatency()), formatDuration(rs.MaxLatency))
			}
			if rs.Resent > 0 {
				fmt.Fprintf(w, "           Re-sent: %d\n", rs.Resent)
			}
			if rs.LagWarns > 0 {
				fmt.Fprintf(w, "           Lag warnings: %d\n", rs.LagWarns)
			}
			if rs.Errors > 0 {
				fmt.Fprintf(w, "           Errors: %d\n", rs.Errors)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
