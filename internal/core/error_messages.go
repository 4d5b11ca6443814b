package core

// error_messages.go maps technical errors to messages with support codes.
//
// # Error Codes Reference
//
// # Sheet Errors (SHEET001-SHEET099)
//
//	SHEET001 - Sheet could not be fetched
//	           Action: Check the sheet URL and network access, then reload
//	           Patterns: "fetch:", "open sheet file", "unsupported sheet source"
//
//	SHEET002 - Sheet source answered with an error status
//	           Action: Make sure the sheet is shared publicly, then reload
//	           Patterns: "unexpected status"
//
//	SHEET003 - Sheet is larger than the configured limit
//	           Action: Raise SHEET_MAX_BYTES or trim the sheet
//	           Patterns: "sheet exceeds size limit"
//
// # Query Errors (QRY001-QRY099)
//
//	QRY001 - Page size not permitted
//	         Patterns: "invalid page size"
//
//	QRY002 - Unknown sort field or direction
//	         Patterns: "unknown sort key", "unknown sort order"
//
//	QRY003 - Client not found
//	         Patterns: "client not found"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled                 Patterns: "context canceled"
//	REQ002 - Request timed out                 Patterns: "deadline exceeded"
//	REQ003 - Malformed query parameter         Patterns: "invalid parameter"
//	REQ004 - Export format not supported       Patterns: "unsupported export format"
//
// # Other
//
//	RATE001 - Too many requests                Patterns: "rate limit"
//	RATE002 - Export slots exhausted           Patterns: "too many concurrent exports"
//	ERR000  - Anything else; check the logs for the technical error.

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParameter marks a malformed caller-supplied value.
var ErrInvalidParameter = errors.New("invalid parameter")

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is matched case-insensitively with strings.Contains.
// The first match wins, so specific patterns come first.
var errorPatterns = []errorPattern{
	// Sheets
	{
		pattern: "unexpected status",
		msg: UserMessage{
			Message: "The sheet source answered with an error",
			Action:  "Make sure the sheet is shared publicly, then reload",
			Code:    "SHEET002",
		},
	},
	{
		pattern: "sheet exceeds size limit",
		msg: UserMessage{
			Message: "The sheet is larger than the configured limit",
			Action:  "Raise SHEET_MAX_BYTES or trim the sheet",
			Code:    "SHEET003",
		},
	},
	{
		pattern: "unsupported sheet source",
		msg: UserMessage{
			Message: "The sheet source is not a URL or a file",
			Action:  "Use an http(s) URL or a local file path",
			Code:    "SHEET001",
		},
	},
	{
		pattern: "open sheet file",
		msg: UserMessage{
			Message: "The sheet file could not be opened",
			Action:  "Check that the file exists and is readable",
			Code:    "SHEET001",
		},
	},
	{
		pattern: "fetch:",
		msg: UserMessage{
			Message: "The sheet could not be fetched",
			Action:  "Check the sheet URL and network access, then reload",
			Code:    "SHEET001",
		},
	},

	// Queries
	{
		pattern: "invalid page size",
		msg: UserMessage{
			Message: "That page size is not available",
			Action:  "Choose one of the listed page sizes",
			Code:    "QRY001",
		},
	},
	{
		pattern: "unknown sort key",
		msg: UserMessage{
			Message: "Clients cannot be sorted by that field",
			Action:  "Sort by name, annualIncome, netWorth or age",
			Code:    "QRY002",
		},
	},
	{
		pattern: "unknown sort order",
		msg: UserMessage{
			Message: "Unknown sort direction",
			Action:  "Use asc or desc",
			Code:    "QRY002",
		},
	},
	{
		pattern: "client not found",
		msg: UserMessage{
			Message: "Client not found",
			Action:  "Reload the data or go back to the client list",
			Code:    "QRY003",
		},
	},

	// Requests
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Please try again in a few moments",
			Code:    "REQ002",
		},
	},
	{
		pattern: "invalid parameter",
		msg: UserMessage{
			Message: "A query parameter is malformed",
			Action:  "Check the request parameters",
			Code:    "REQ003",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "That export format is not supported",
			Action:  "Use xlsx, pdf or md",
			Code:    "REQ004",
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
	{
		pattern: "too many concurrent exports",
		msg: UserMessage{
			Message: "The server is busy generating other reports",
			Action:  "Please try the export again shortly",
			Code:    "RATE002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
//	msg := MapError(fmt.Errorf("show: %w", ErrClientNotFound))
//	// msg.Code == "QRY003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err. It returns nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
