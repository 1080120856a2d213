package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates a file whose extension has no registered format.
	ErrUnsupportedFormat = errors.New("unsupported file type")

	// ErrEmptyFile indicates a file with no header row.
	ErrEmptyFile = errors.New("empty file")

	// ErrFileTooLarge indicates an upload above the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoFile indicates an upload request without any file parts.
	ErrNoFile = errors.New("no file provided")

	// ErrFileNotFound indicates an unknown file id within a session.
	ErrFileNotFound = errors.New("file not found")

	// ErrSessionNotFound indicates an unknown or expired session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrColumnNotFound indicates a selected column that is not in the table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrUnknownAction indicates an action name the pipeline does not handle.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidPoints indicates a non-positive reward amount.
	ErrInvalidPoints = errors.New("reward points must be positive")
)

// LoadError wraps a decode failure for a single uploaded file.
type LoadError struct {
	FileName string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading file %s: %v", e.FileName, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ExportError wraps a serialization failure.
type ExportError struct {
	FileName string
	Format   string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("error converting file %s to %s: %v", e.FileName, e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
