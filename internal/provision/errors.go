package provision

import (
	"errors"
	"fmt"
)

// Code classifies an engine error.
type Code string

const (
	CodeUnknown  Code = "unknown"
	CodeInput    Code = "input"
	CodePrompt   Code = "prompt"
	CodeContent  Code = "content"
	CodeStage    Code = "stage"
	CodeWrite    Code = "write"
	CodeManifest Code = "manifest"
	CodeScript   Code = "script"
	CodeConfig   Code = "config"
)

// Error annotates a pipeline failure with the entry and stage involved.
type Error struct {
	Code  Code
	Path  string
	Stage Stage
	Step  string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := string(e.Code)
	if e.Stage != "" {
		msg += " " + string(e.Stage)
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Step != "" {
		msg += fmt.Sprintf(" (step %q)", e.Step)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CodeOf extracts the engine error code from err.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries code.
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// reportedError marks a failure whose details were already printed.
type reportedError struct{ err error }

func (r *reportedError) Error() string { return r.err.Error() }
func (r *reportedError) Unwrap() error { return r.err }

// IsReported reports whether err was already printed by a Runner.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
