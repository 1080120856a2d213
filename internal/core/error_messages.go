package core

// error_messages.go maps technical errors to user-facing messages with codes.
//
// Every failure in the sweeper is reported per file and per action, so the
// message has to make sense on its own next to the file it belongs to. Codes
// let users quote a failure back to support.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: upload exceeds the configured size limit
//	FILE002 - Unsupported type: extension is not .csv or .xlsx
//	FILE003 - Load error: the file could not be decoded
//	FILE004 - No file: no file was selected
//	FILE005 - Empty file: the file has no header row
//
// # Conversion Errors (CNV001-CNV099)
//
//	CNV001 - Export failed: the table could not be serialized
//	CNV002 - Column not found: a selected column is not in the file
//	CNV003 - Unknown action: the requested action does not exist
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session expired: the session id is unknown or was swept
//	SES002 - File not found: the file id is not part of this session
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: too many files are being decoded
//	UPL004 - Request cancelled
//	UPL005 - Request timeout
//
// # Rate Limiting (RATE001)
//
// # Default Error (ERR000)
//
// Sentinel errors are matched with errors.Is first; anything else falls back
// to case-insensitive substring patterns. The first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorSentinel struct {
	target error
	msg    UserMessage
}

// errorSentinels are checked before any pattern. LoadError and ExportError
// are matched by type in MapError.
var errorSentinels = []errorSentinel{
	{ErrFileTooLarge, UserMessage{
		Message: "File exceeds maximum size limit",
		Action:  "Split the file into smaller chunks",
		Code:    "FILE001",
	}},
	{ErrNoFile, UserMessage{
		Message: "No file was selected",
		Action:  "Please select a CSV or Excel file to upload",
		Code:    "FILE004",
	}},
	{ErrUnsupportedFormat, UserMessage{
		Message: "Invalid file type",
		Action:  "Please upload a CSV or Excel file",
		Code:    "FILE002",
	}},
	{ErrEmptyFile, UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Please upload a file with a header row",
		Code:    "FILE005",
	}},
	{ErrColumnNotFound, UserMessage{
		Message: "Selected column was not found in the file",
		Action:  "Re-select columns from the file preview",
		Code:    "CNV002",
	}},
	{ErrUnknownAction, UserMessage{
		Message: "Unknown action",
		Action:  "Use one of the controls shown for the file",
		Code:    "CNV003",
	}},
	{ErrSessionNotFound, UserMessage{
		Message: "Your session has expired",
		Action:  "Reload the page and upload your files again",
		Code:    "SES001",
	}},
	{ErrFileNotFound, UserMessage{
		Message: "File is no longer part of this session",
		Action:  "Upload the file again",
		Code:    "SES002",
	}},
	{ErrTooManyUploads, UserMessage{
		Message: "System is busy processing other uploads",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV or Excel file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range errorSentinels {
		if errors.Is(err, s.target) {
			return s.msg
		}
	}

	// Typed errors carry the underlying cause in the message.
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return UserMessage{
			Message: fmt.Sprintf("Error loading file %s: %v", loadErr.FileName, loadErr.Err),
			Action:  "Check that the file is a valid CSV or Excel workbook",
			Code:    "FILE003",
		}
	}
	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return UserMessage{
			Message: fmt.Sprintf("Error converting file: %v", exportErr.Err),
			Action:  "Try the other output format or re-upload the file",
			Code:    "CNV001",
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error maps to a specific message rather
// than the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
