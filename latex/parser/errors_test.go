package parser

import (
	"strings"
	"testing"
)

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{
		Code:    ErrUnmatchedBrace,
		Span:    Span{4, 5},
		Message: "unclosed group",
	}
	got := err.Error()
	for _, want := range []string{"unmatched brace", "4-5", "unclosed group"} {
		if !strings.Contains(got, want) {
			t.Errorf("%q missing %q", got, want)
		}
	}

	bare := &ParseError{Code: ErrMacroRecursion, Span: Span{0, 2}}
	if !strings.Contains(bare.Error(), "macro recursion") {
		t.Errorf("got %q", bare.Error())
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrorCode(42).String() != "unknown error" {
		t.Error("unknown code should not panic")
	}
}
