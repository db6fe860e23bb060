package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Condition built, filters valid, scenarios passed
	ExitFailure      = 1 // A strict builder rejected its value, a scenario failed, strict validation warned
	ExitCommandError = 2 // Bad arguments, unreadable filters, database errors
)

// ExitError carries the exit code a command should terminate with.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string
	Err     error // optional cause
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

// OutputFormatter writes command results as text or as a JSON CLIResponse.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics and logs; Writer when nil
	Verbose   bool
	TraceID   string // attached to every JSON response
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status  string    `json:"status"` // "ok" or "error"
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
	TraceID string    `json:"trace_id,omitempty"` // matches the trace_id attribute in stderr logs
}

// CLIError is the error part of a CLIResponse.
type CLIError struct {
	Code    string `json:"code"` // E001, E011, ...
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success writes a result: the value itself in text mode, an "ok" response in JSON mode.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.write(CLIResponse{Status: "ok", Data: data}, false)
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error writes an error with its code. Details are printed in text mode
// only with --verbose.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.write(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		}, false)
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Encode writes a prepared response indented. Used by commands whose JSON
// carries both data and an error.
func (f *OutputFormatter) Encode(response CLIResponse) error {
	return f.write(response, true)
}

func (f *OutputFormatter) write(response CLIResponse, indent bool) error {
	if response.TraceID == "" {
		response.TraceID = f.TraceID
	}
	encoder := json.NewEncoder(f.Writer)
	if indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(response)
}

// Logger returns a text logger on the diagnostic writer, so logs never mix
// with JSON on Writer. Debug records are kept only with --verbose.
func (f *OutputFormatter) Logger() *slog.Logger {
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	level := slog.LevelInfo
	if f.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if f.TraceID != "" {
		logger = logger.With("trace_id", f.TraceID)
	}
	return logger
}
