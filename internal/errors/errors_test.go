package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewEcbError(t *testing.T) {
	cause := errors.New("underlying error")

	err := New(NotFound, "module file absent", cause)

	if err.Code != NotFound {
		t.Errorf("Code = %v, want %v", err.Code, NotFound)
	}
	if err.Message != "module file absent" {
		t.Errorf("Message = %q, want %q", err.Message, "module file absent")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestEcbError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      ParseFailure,
			message:   "parse Main.elm",
			cause:     errors.New("missing module header"),
			wantParts: []string{"PARSE_FAILURE", "parse Main.elm", "missing module header"},
		},
		{
			name:      "without cause",
			code:      Unresolvable,
			message:   "no owning project for /tmp/x.elm",
			cause:     nil,
			wantParts: []string{"UNRESOLVABLE", "no owning project for /tmp/x.elm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.cause)
			got := err.Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := New(NotFound, "read failed", cause)

	if got := errors.Unwrap(err); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}

	bare := New(NotFound, "read failed", nil)
	if got := errors.Unwrap(bare); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"direct", New(ParseFailure, "bad json", nil), ParseFailure},
		{"wrapped once", fmt.Errorf("loading: %w", New(NotFound, "gone", nil)), NotFound},
		{"wrapped twice", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", New(Unresolvable, "x", nil))), Unresolvable},
		{"foreign error", errors.New("plain"), InternalError},
		{"nil", nil, InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}
