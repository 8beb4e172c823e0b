package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/forge/internal/backup"
	"github.com/roach88/forge/internal/config"
	"github.com/roach88/forge/internal/model"
	"github.com/roach88/forge/internal/stats"
	"github.com/roach88/forge/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failed (storage error, audit failure, rejected import)
	ExitCommandError = 2 // Bad invocation (unknown task, invalid arguments, bad config)
)

// Error codes reported in CLI error responses.
const (
	ErrCodeGeneric   = "E001" // Generic/unknown error
	ErrCodeNotFound  = "E002" // Task or record not found
	ErrCodeInvalid   = "E003" // Invalid input or illegal task transition
	ErrCodeConfig    = "E004" // Config file or environment invalid
	ErrCodeIntegrity = "E005" // Backup checksum or version rejected
)

// ExitError represents an error with a specific exit code.
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

// wrapOpError picks the exit code for a failed operation: caller mistakes
// exit 2, everything else exits 1.
func wrapOpError(message string, err error) *ExitError {
	code := ExitFailure
	if errorCode(err) != ErrCodeGeneric && errorCode(err) != ErrCodeIntegrity {
		code = ExitCommandError
	}
	return WrapExitError(code, message, err)
}

// errorCode maps an error to its response code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, model.ErrEmptyTitle),
		errors.Is(err, model.ErrInvalidEnergy),
		errors.Is(err, model.ErrInvalidDateKey),
		errors.Is(err, model.ErrTaskFailed),
		errors.Is(err, model.ErrIllegalTransition),
		errors.Is(err, stats.ErrInvalidMinutes),
		errors.Is(err, store.ErrEmptyProjectName),
		errors.Is(err, errInvalidArgs):
		return ErrCodeInvalid
	case errors.Is(err, config.ErrInvalid):
		return ErrCodeConfig
	case errors.Is(err, backup.ErrChecksumMismatch),
		errors.Is(err, backup.ErrUnsupportedVersion),
		errors.Is(err, backup.ErrInvalidRecord):
		return ErrCodeIntegrity
	}
	return ErrCodeGeneric
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Text-mode errors go here (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E002", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Render outputs data as a JSON response, or calls text to write the
// human-readable form.
func (f *OutputFormatter) Render(data any, text func(w io.Writer)) error {
	if f.Format == "json" {
		return f.Success(data)
	}
	text(f.Writer)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
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

	w := f.GetErrWriter()
	fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
