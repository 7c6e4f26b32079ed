package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/backtrack/internal/tabnav"
)

// ViolationJSON is the wire form of one tab-set violation.
type ViolationJSON struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool            `json:"valid"`
	Violations []ViolationJSON `json:"violations,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <tabset.yaml>",
		Short: "Validate a tab-set file",
		Long: `Validate a tab-set YAML file without constructing any state.

Checks that the tab set is non-empty, ids are non-blank and unique
after canonicalization, and the initial and primary tabs name members
of the set. All violations are reported, not just the first.

Exit codes:
  0 - Tab set valid
  1 - Tab set invalid (violations reported)
  2 - Command error (file not found, malformed YAML)

Examples:
  backtrack validate ./tabs.yaml
  backtrack validate ./tabs.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	formatter.VerboseLog("Loading tab set from %s", path)

	_, err := LoadTabSet(path)
	if err == nil {
		return outputValidateSuccess(formatter)
	}

	var configErr *tabnav.ConfigError
	if errors.As(err, &configErr) {
		return outputValidationViolations(formatter, configErr.Violations)
	}

	// File-level problems (missing file, malformed YAML) are command
	// errors, not validation failures.
	_ = formatter.Error("E_LOAD", err.Error(), nil)
	return WrapExitError(ExitCommandError, "failed to load tab set", err)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ Tab set valid")
	return nil
}

// outputValidationViolations outputs the aggregated violations.
func outputValidationViolations(formatter *OutputFormatter, violations []tabnav.Violation) error {
	wire := make([]ViolationJSON, len(violations))
	for i, v := range violations {
		wire[i] = ViolationJSON{Field: v.Field, Code: v.Code, Message: v.Message}
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Violations: wire},
			Error: &CLIError{
				Code:    wire[0].Code,
				Message: wire[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d violation(s)", len(wire)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, v := range wire {
		fmt.Fprintf(formatter.Writer, "  [%s] %s: %s\n", v.Code, v.Field, v.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d violation(s)", len(wire)))
}
