package main

import "fmt"

// Exit codes for the filmdash CLI.
const (
	ExitOK          = 0 // Success.
	ExitInvalidArgs = 1 // Invalid arguments, selection or config.
	ExitDatasetLoad = 3 // The dataset could not be read or parsed.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitDatasetLoad:
			msg = "filmdash: dataset could not be loaded"
		default:
			msg = "filmdash: invalid arguments"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
