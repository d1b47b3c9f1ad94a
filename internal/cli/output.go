package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/dailymind/internal/challenge"
	"github.com/roach88/dailymind/internal/engine"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation rejected (already completed, no substitute, unknown id)
	ExitCommandError = 2 // Command error (invalid paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`    // engine error code or "COMMAND_ERROR"
	Message string `json:"message"` // human-readable message
}

// Emit outputs a successful result: data in JSON mode, text otherwise.
func (f *OutputFormatter) Emit(data interface{}, text string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	fmt.Fprintln(f.Writer, text)
	return nil
}

// Fail outputs an error result and returns the matching ExitError.
//
// Engine errors map to ExitFailure with their code preserved in JSON mode;
// anything else is a command error.
func (f *OutputFormatter) Fail(err error) error {
	code := "COMMAND_ERROR"
	exitCode := ExitCommandError
	var engErr *engine.Error
	if errors.As(err, &engErr) {
		code = string(engErr.Code)
		exitCode = ExitFailure
	}

	if f.Format == "json" {
		encErr := json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: err.Error()},
		})
		if encErr != nil {
			return encErr
		}
	}
	return WrapExitError(exitCode, "operation failed", err)
}

// renderSet renders a daily set as human-readable text.
func renderSet(set challenge.DailySet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily Challenges - %s\n", set.Date)
	for i, c := range set.Challenges {
		fmt.Fprintf(&b, "%s", renderChallengeLine(i, c))
	}
	fmt.Fprintf(&b, "Completed: %d of %d (%d%%)",
		set.CompletedCount(), len(set.Challenges), set.ProgressPercent())
	return b.String()
}

// renderChallengeLine renders one challenge as a single text line.
func renderChallengeLine(i int, c challenge.Challenge) string {
	status := " "
	if c.Completed {
		status = "x"
	}
	return fmt.Sprintf("  [%s] %d. %s - %s (%s %s) - +%d pts - %d%%\n    id: %s\n",
		status, i+1, c.Game.Name, c.RequirementLabel,
		c.Game.Difficulty, c.Type.DisplayName(), c.Points, c.Progress, c.ID)
}
