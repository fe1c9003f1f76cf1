// Command emojitimer-log is a tool for viewing and analyzing countdown event
// files.
//
// Event files are created by running emojitimer with the -event-log flag.
//
// Usage:
//
//	emojitimer-log <command> [flags] <file.tlog>
//
// Commands:
//
//	view     View event file in human-readable format
//	export   Export event file to JSON or CSV format
//	filter   Filter event file and write to new file
//	stats    Show statistics about the event file
//
// Examples:
//
//	# View all events
//	emojitimer-log view bot.tlog
//
//	# View one channel, hiding edits that changed nothing
//	emojitimer-log view --channel 998877 --skip-unchanged bot.tlog
//
//	# View only lag warnings
//	emojitimer-log view --category lag bot.tlog
//
//	# Export to CSV
//	emojitimer-log export --format csv -o bot.csv bot.tlog
//
//	# Keep a single run
//	emojitimer-log filter --run 3f1c2a9e-... -o run.tlog bot.tlog
//
//	# Show statistics
//	emojitimer-log stats bot.tlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/emoji-timer/emojitimer-go/cmd/emojitimer-log/commands"
)

const usage = `emojitimer-log - Countdown Event Log Analyzer

Usage:
  emojitimer-log <command> [flags] <file.tlog>

Commands:
  view     View event file in human-readable format
  export   Export event file to JSON or CSV format
  filter   Filter event file and write to new file
  stats    Show statistics about the event file

Use "emojitimer-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// pathArg returns the single positional file argument or exits.
func pathArg(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: event file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `emojitimer-log view - View event file in human-readable format

Usage:
  emojitimer-log view [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	runID := fs.String("run", "", "Filter by run ID")
	channelID := fs.String("channel", "", "Filter by channel ID")
	category := fs.String("category", "", "Filter by category (state, edit, lag, error)")
	skipUnchanged := fs.Bool("skip-unchanged", false, "Hide edits that did not change the display")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	filter := commands.ViewFilter{
		RunID:         *runID,
		ChannelID:     *channelID,
		SkipUnchanged: *skipUnchanged,
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `emojitimer-log export - Export event file to JSON or CSV format

Usage:
  emojitimer-log export [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `emojitimer-log filter - Filter event file and write to new file

Usage:
  emojitimer-log filter [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	runID := fs.String("run", "", "Filter by run ID")
	channelID := fs.String("channel", "", "Filter by channel ID")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	category := fs.String("category", "", "Filter by category (state, edit, lag, error)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, commands.FilterOptions{
		Output:    *output,
		RunID:     *runID,
		ChannelID: *channelID,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Category:  *category,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `emojitimer-log stats - Show statistics about the event file

Usage:
  emojitimer-log stats <file.tlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
