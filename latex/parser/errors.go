package parser

import "fmt"

// ErrorCode classifies why a parse attempt was abandoned. These errors are
// control flow within a single attempt; the incremental parser never lets
// one escape to its callers.
type ErrorCode int

const (
	ErrExpectedToken ErrorCode = iota
	ErrUnmatchedBrace
	ErrUnmatchedEnvironment
	ErrUnmatchedDelimiter
	ErrMissingArgument
	ErrMacroRecursion
)

var errorCodeNames = map[ErrorCode]string{
	ErrExpectedToken:        "expected token",
	ErrUnmatchedBrace:       "unmatched brace",
	ErrUnmatchedEnvironment: "unmatched environment",
	ErrUnmatchedDelimiter:   "unmatched delimiter",
	ErrMissingArgument:      "missing argument",
	ErrMacroRecursion:       "macro recursion limit exceeded",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "unknown error"
}

// ParseError reports where and why a parse attempt gave up. Span covers the
// offending source region; for errors at end of input it is the zero-length
// span at the end.
type ParseError struct {
	Code     ErrorCode
	Span     Span
	Expected TokenKind
	Message  string
}

func (e *ParseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s at %d-%d: %s", e.Code, e.Span.Start, e.Span.End, e.Message)
	}
	return fmt.Sprintf("%s at %d-%d", e.Code, e.Span.Start, e.Span.End)
}
