// Package errors provides the error taxonomy for the launcher. Every failure
// the core reports is one of four families: configuration errors (fatal at
// startup), scan warnings (logged, the scan continues), validation errors
// (launch refused) and launch errors (process start failed).
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	ConfigWriteFailed
	// Scan warning kinds
	MissingMarker
	UnsafeName
	RootUnreadable
	NestedWorkspace
	// Validation error kinds
	EmptyName
	BadSuffix
	UnsafePath
	NoCommand
	// Launch error kinds
	StartFailed
)

// Common error constants for frequently occurring errors
var (
	ErrEmptyName = NewValidationError("Invalid workspace filename", "", EmptyName)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Message returns the message without the wrapped cause.
func (e *ApplicationError) Message() string {
	return e.msg
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	path string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, path string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the configuration file associated with the error
func (e *ConfigError) Path() string {
	return e.path
}

// ScanWarning describes a directory entry the catalog skipped.
type ScanWarning struct {
	ApplicationError
	name string
}

// NewScanWarning creates a new scan warning
func NewScanWarning(msg string, name string, kind ErrorKind, err error) *ScanWarning {
	return &ScanWarning{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		name: name,
	}
}

// Error returns the warning message
func (e *ScanWarning) Error() string {
	if e.name != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.name, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.name)
	}
	return e.ApplicationError.Error()
}

// Name returns the skipped entry name
func (e *ScanWarning) Name() string {
	return e.name
}

// ValidationError is returned when a launch request is refused before any
// process is started. The message is the user-facing status text.
type ValidationError struct {
	ApplicationError
	input string
}

// NewValidationError creates a new validation error
func NewValidationError(msg string, input string, kind ErrorKind) *ValidationError {
	return &ValidationError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
		input: input,
	}
}

// Error returns the validation error message
func (e *ValidationError) Error() string {
	if e.input != "" {
		return fmt.Sprintf("%s: %q", e.msg, e.input)
	}
	return e.msg
}

// Input returns the rejected value
func (e *ValidationError) Input() string {
	return e.input
}

// LaunchError is returned when the external process could not be started.
type LaunchError struct {
	ApplicationError
	command []string
}

// NewLaunchError creates a new launch error
func NewLaunchError(command []string, err error) *LaunchError {
	return &LaunchError{
		ApplicationError: ApplicationError{
			msg:  "Error launching workspace",
			err:  err,
			kind: StartFailed,
		},
		command: command,
	}
}

// Command returns the argument vector that failed to start
func (e *LaunchError) Command() []string {
	return e.command
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsConfigError checks if the error is a configuration error
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsScanWarning checks if the error is a scan warning
func IsScanWarning(err error) bool {
	var warning *ScanWarning
	return errors.As(err, &warning)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsLaunchError checks if the error is a launch error
func IsLaunchError(err error) bool {
	var launchErr *LaunchError
	return errors.As(err, &launchErr)
}

// KindOf returns the first kind other than Unknown found in the chain.
func KindOf(err error) ErrorKind {
	type kinded interface{ Kind() ErrorKind }
	for ; err != nil; err = errors.Unwrap(err) {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
	}
	return Unknown
}

// StatusMessage converts an error into the one-line text shown in the
// status area.
func StatusMessage(err error) string {
	if err == nil {
		return ""
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.msg
	}
	var launchErr *LaunchError
	if errors.As(err, &launchErr) {
		return launchErr.ApplicationError.Error()
	}
	return err.Error()
}
