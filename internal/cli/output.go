package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/toyswap/toyswap/internal/application/mutation"
	"github.com/toyswap/toyswap/internal/domain/session"
	"github.com/toyswap/toyswap/internal/remote"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected by the service or inconsistent state
	ExitCommandError = 2 // Bad invocation, configuration or transport failure
)

// ExitError carries the exit code for a failed command. The failure has
// already been written to the command output.
type ExitError struct {
	Code    int
	Message string
	Err     error
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

// GetExitCode extracts the exit code from an error. Errors that never
// reached a command, such as flag parsing, are command errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success outputs data. Text output uses render when given.
func (f *OutputFormatter) Success(data interface{}, render func(io.Writer)) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	if render != nil {
		render(f.Writer)
		return nil
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns the matching *ExitError.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := classify(err)
	var details interface{}
	if appErr, ok := remote.AsApplication(err); ok {
		details = map[string]interface{}{
			"http_status": appErr.Status,
			"code":        appErr.Code,
			"message":     appErr.Message,
		}
	}
	if werr := f.Error(code, err.Error(), details); werr != nil {
		return werr
	}
	return &ExitError{Code: exit, Message: code, Err: err}
}

// Usage reports an invocation error.
func (f *OutputFormatter) Usage(message string) error {
	if err := f.Error("usage", message, nil); err != nil {
		return err
	}
	return &ExitError{Code: ExitCommandError, Message: message}
}

func classify(err error) (string, int) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Message, exitErr.Code
	}
	if errors.Is(err, session.ErrNoSession) {
		return "no_session", ExitCommandError
	}
	switch mutation.KindOf(err) {
	case mutation.KindTransport:
		return "transport", ExitCommandError
	case mutation.KindCancelled:
		return "cancelled", ExitCommandError
	case mutation.KindConsistency:
		return "consistency", ExitFailure
	}
	if _, ok := remote.AsApplication(err); ok {
		return "application", ExitFailure
	}
	return "invalid", ExitFailure
}
