package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("C003", "initial tab not in set", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "C003", resp.Error.Code)
	assert.Equal(t, "initial tab not in set", resp.Error.Message)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("Tab set valid")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Tab set valid")
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("C002", "duplicate tab id", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [C002]")
	assert.Contains(t, buf.String(), "duplicate tab id")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"file": "tabs.yaml"}
	err := formatter.Error("C002", "duplicate tab id", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [C002]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("Loading %s", "tabs.yaml")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "Loading tabs.yaml")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "json",
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   true,
	}

	formatter.VerboseLog("diagnostic")
	assert.Empty(t, out.String(), "verbose logs must not corrupt JSON output")
	assert.Contains(t, errOut.String(), "diagnostic")
}

func TestExitError(t *testing.T) {
	plain := NewExitError(ExitFailure, "scenarios failed")
	assert.Equal(t, "scenarios failed", plain.Error())
	assert.Equal(t, ExitFailure, GetExitCode(plain))

	inner := errors.New("no such file")
	wrapped := WrapExitError(ExitCommandError, "failed to open journal", inner)
	assert.Contains(t, wrapped.Error(), "failed to open journal")
	assert.Contains(t, wrapped.Error(), "no such file")
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, inner)

	// Wrapping through fmt keeps the code reachable.
	outer := fmt.Errorf("command: %w", wrapped)
	assert.Equal(t, ExitCommandError, GetExitCode(outer))

	// Unknown errors default to failure.
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
