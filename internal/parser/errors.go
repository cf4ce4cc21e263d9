package parser

import "fmt"

// Rejection codes. Codes 1-10 are deterministic and caller-facing;
// each maps to one user-visible message. Code 99 wraps an unexpected
// internal fault and must be logged with full context by the caller.
const (
	CodeInvalidFormat      = 1  // text does not look like a stats snapshot
	CodeHeaderSplit        = 2  // could not separate headers from values
	CodeTooFewFields       = 3  // fewer than the minimum columns
	CodeNotAllTime         = 4  // snapshot is not the ALL TIME view
	CodeTooFewValues       = 5  // fewer than the minimum value tokens
	CodeDateNotFound       = 6  // no date token in the values line
	CodeInsufficientStats  = 7  // too few fields parsed out
	CodeFieldCountMismatch = 8  // header and value counts disagree
	CodeNoHeaders          = 9  // header line resolved to nothing
	CodeEmptyValues        = 10 // values line is empty
	CodeInternal           = 99 // unexpected internal fault
)

var codeMessages = map[int]string{
	CodeInvalidFormat:      "Invalid stats format",
	CodeHeaderSplit:        "Could not separate headers from values",
	CodeTooFewFields:       "Too few fields",
	CodeNotAllTime:         "Not ALL TIME stats",
	CodeTooFewValues:       "Too few value tokens",
	CodeDateNotFound:       "Could not find date",
	CodeInsufficientStats:  "Insufficient stats",
	CodeFieldCountMismatch: "Header and value counts do not match",
	CodeNoHeaders:          "No stat headers found",
	CodeEmptyValues:        "Empty values line",
	CodeInternal:           "Internal parsing error",
}

// CodeMessage returns the user-facing message for a rejection code
func CodeMessage(code int) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return codeMessages[CodeInternal]
}

// ParseError is a fail-closed parse rejection. No partial record
// accompanies it.
type ParseError struct {
	Code   int
	Detail string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("parse rejected (code %d): %s", e.Code, CodeMessage(e.Code))
	}
	return fmt.Sprintf("parse rejected (code %d): %s: %s", e.Code, CodeMessage(e.Code), e.Detail)
}

// Message returns the user-facing message for the rejection
func (e *ParseError) Message() string {
	return CodeMessage(e.Code)
}

func reject(code int) *ParseError {
	return &ParseError{Code: code}
}

func rejectf(code int, format string, args ...interface{}) *ParseError {
	return &ParseError{Code: code, Detail: fmt.Sprintf(format, args...)}
}
