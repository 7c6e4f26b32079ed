package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/backtrack/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Kind     string // optional - filter to specific event kind
}

// TimelineEvent is one journal event in the trace output.
type TimelineEvent struct {
	Seq   int64  `json:"seq"`
	Kind  string `json:"kind"`
	Tab   string `json:"tab,omitempty"`
	Route string `json:"route,omitempty"`
	ID    string `json:"id"`
}

// TraceStats holds summary statistics for the journal.
type TraceStats struct {
	TotalEvents int   `json:"total_events"`
	Navigates   int   `json:"navigates"`
	Backs       int   `json:"backs"`
	TabSelects  int   `json:"tab_selects"`
	TabResets   int   `json:"tab_resets"`
	TabClears   int   `json:"tab_clears"`
	LastSeq     int64 `json:"last_seq"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Timeline []TimelineEvent `json:"timeline"`
	Stats    TraceStats      `json:"stats"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect a recorded navigation journal",
		Long: `Print the timeline of a recorded navigation journal.

Events are listed in journal order (seq ascending, id as tiebreak)
with per-kind summary statistics.

Examples:
  backtrack trace --db ./nav.db
  backtrack trace --db ./nav.db --kind back
  backtrack trace --db ./nav.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "filter to specific event kind")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	j, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	events, err := j.Events(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	stats, err := j.ReadStats(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal stats", err)
	}

	timeline := buildTimeline(events, opts.Kind)
	result := TraceResult{
		Timeline: timeline,
		Stats: TraceStats{
			TotalEvents: stats.TotalEvents,
			Navigates:   stats.Navigates,
			Backs:       stats.Backs,
			TabSelects:  stats.TabSelects,
			TabResets:   stats.TabResets,
			TabClears:   stats.TabClears,
			LastSeq:     stats.LastSeq,
		},
	}

	if opts.Format == "json" {
		return outputTraceJSON(cmd, result)
	}
	return outputTraceText(cmd, result, opts.Verbose)
}

// buildTimeline converts journal events to timeline events,
// optionally filtered by kind.
func buildTimeline(events []journal.Event, kindFilter string) []TimelineEvent {
	timeline := make([]TimelineEvent, 0, len(events))
	for _, e := range events {
		if kindFilter != "" && string(e.Kind) != kindFilter {
			continue
		}
		timeline = append(timeline, TimelineEvent{
			Seq:   e.Seq,
			Kind:  string(e.Kind),
			Tab:   e.TabID,
			Route: e.Route,
			ID:    e.ID,
		})
	}
	return timeline
}

// outputTraceJSON outputs the trace result as JSON.
func outputTraceJSON(cmd *cobra.Command, result TraceResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// outputTraceText outputs the trace result as text.
func outputTraceText(cmd *cobra.Command, result TraceResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "=== Timeline ===")
	if len(result.Timeline) == 0 {
		fmt.Fprintln(w, "  (no events)")
	} else {
		for _, event := range result.Timeline {
			fmt.Fprintf(w, "  [%d] %s", event.Seq, event.Kind)
			if event.Tab != "" {
				fmt.Fprintf(w, " tab=%s", event.Tab)
			}
			if event.Route != "" {
				fmt.Fprintf(w, " route=%s", event.Route)
			}
			fmt.Fprintln(w)
			if verbose {
				fmt.Fprintf(w, "       ID: %s\n", event.ID)
			}
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Total Events: %d\n", result.Stats.TotalEvents)
	fmt.Fprintf(w, "  Navigates:    %d\n", result.Stats.Navigates)
	fmt.Fprintf(w, "  Backs:        %d\n", result.Stats.Backs)
	fmt.Fprintf(w, "  Tab Selects:  %d\n", result.Stats.TabSelects)
	fmt.Fprintf(w, "  Tab Resets:   %d\n", result.Stats.TabResets)
	fmt.Fprintf(w, "  Tab Clears:   %d\n", result.Stats.TabClears)
	fmt.Fprintf(w, "  Last Seq:     %d\n", result.Stats.LastSeq)

	return nil
}
