package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/backtrack/internal/journal"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	TabSet   string
}

// ReplayResult holds the replay result.
type ReplayResult struct {
	Events        int                 `json:"events"`
	Deterministic bool                `json:"deterministic"`
	SelectedTab   string              `json:"selected_tab"`
	Stacks        map[string][]string `json:"stacks"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a navigation journal and verify determinism",
		Long: `Rebuild navigation state from a recorded journal.

Replays every event in order against a fresh state built from the
given tab set, twice, and verifies both runs produce an identical
snapshot. A journal that no longer applies cleanly (unknown tab,
refused back) indicates the journal and tab set have diverged.

Exit codes:
  0 - Replay succeeded and is deterministic
  1 - Determinism verification failed
  2 - Command error (database not found, journal/tab-set divergence)

Examples:
  backtrack replay --db ./nav.db --tabs ./tabs.yaml
  backtrack replay --db ./nav.db --tabs ./tabs.yaml --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.TabSet, "tabs", "", "path to tab-set YAML (required)")
	_ = cmd.MarkFlagRequired("tabs")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	config, err := LoadTabSet(opts.TabSet)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load tab set", err)
	}

	j, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	count, err := j.Count(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	// Replay twice and compare snapshots for determinism.
	first, err := j.Replay(ctx, config)
	if err != nil {
		return WrapExitError(ExitCommandError, "replay failed", err)
	}
	second, err := j.Replay(ctx, config)
	if err != nil {
		return WrapExitError(ExitCommandError, "second replay failed", err)
	}

	snap1 := first.Snapshot()
	snap2 := second.Snapshot()

	result := ReplayResult{
		Events:        count,
		Deterministic: reflect.DeepEqual(snap1, snap2),
		SelectedTab:   snap1.SelectedTabID,
		Stacks:        snap1.Stacks,
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}
	if !result.Deterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_DETERMINISM",
			Message: "determinism verification failed",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.Deterministic {
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replayed %d event(s)\n", result.Events)
	fmt.Fprintf(w, "Selected tab: %s\n", result.SelectedTab)

	if verbose {
		// Sorted for deterministic output.
		tabs := make([]string, 0, len(result.Stacks))
		for tab := range result.Stacks {
			tabs = append(tabs, tab)
		}
		sort.Strings(tabs)
		for _, tab := range tabs {
			fmt.Fprintf(w, "  %s: %v\n", tab, result.Stacks[tab])
		}
	}

	if result.Deterministic {
		fmt.Fprintln(w, "✓ Replay verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}
