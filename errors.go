package tgen

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested entity or target does not exist.
	ErrNotFound = errors.New("tgen: not found")

	// ErrFolderMismatch is returned when a resolved folder does not start
	// with the source folder used to derive a package name.
	ErrFolderMismatch = errors.New("tgen: folder not started with the given source folder")

	// ErrMissingInput is returned when a structurally required input is nil.
	ErrMissingInput = errors.New("tgen: missing required input")

	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("tgen: invalid configuration")

	// ErrValidationFailed indicates a model validation failure.
	ErrValidationFailed = errors.New("tgen: validation failed")

	// ErrGenerationFailed indicates a file generation failure.
	ErrGenerationFailed = errors.New("tgen: generation failed")
)

// NotFoundError represents an error when an entity or a target is not found.
type NotFoundError struct {
	kind string
	name string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tgen: %s %q not found", e.kind, e.name)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Kind returns the kind of the missing object ("entity", "target").
func (e *NotFoundError) Kind() string {
	return e.kind
}

// Name returns the name that was searched for.
func (e *NotFoundError) Name() string {
	return e.name
}

// NewNotFoundError returns a new NotFoundError.
func NewNotFoundError(kind, name string) *NotFoundError {
	return &NotFoundError{kind: kind, name: name}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// FolderMismatchError reports that a folder does not start with the
// expected source folder.
type FolderMismatchError struct {
	Folder    string
	SrcFolder string
}

// Error returns the error string.
func (e *FolderMismatchError) Error() string {
	return fmt.Sprintf("tgen: folder %q not started with the given src folder %q", e.Folder, e.SrcFolder)
}

// Is reports whether the target error matches FolderMismatchError.
func (e *FolderMismatchError) Is(err error) bool {
	return err == ErrFolderMismatch
}

// NewFolderMismatchError returns a new FolderMismatchError.
func NewFolderMismatchError(folder, srcFolder string) *FolderMismatchError {
	return &FolderMismatchError{Folder: folder, SrcFolder: srcFolder}
}

// IsFolderMismatch returns true if the error is a FolderMismatchError.
func IsFolderMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *FolderMismatchError
	return errors.As(err, &e) || errors.Is(err, ErrFolderMismatch)
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("tgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("tgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// ValidationError represents a model validation error.
type ValidationError struct {
	Entity    string
	Attribute string
	Message   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("tgen: validation error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Attribute != "" {
		b.WriteString(" attribute ")
		b.WriteString(e.Attribute)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new ValidationError.
func NewValidationError(entity, attribute, message string) *ValidationError {
	return &ValidationError{
		Entity:    entity,
		Attribute: attribute,
		Message:   message,
	}
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// GenerationError represents a failure while generating one target file.
type GenerationError struct {
	Target  string
	Entity  string
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("tgen: generation error")
	if e.Target != "" {
		b.WriteString(" in target ")
		b.WriteString(e.Target)
	}
	if e.Entity != "" {
		b.WriteString(" for entity ")
		b.WriteString(e.Entity)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(target, entity, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Target:  target,
		Entity:  entity,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "tgen: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("tgen: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
