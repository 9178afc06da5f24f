package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownStyle, "no style named %q", "sparkle")

	if err.Code != ErrCodeUnknownStyle {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownStyle)
	}

	if err.Message != `no style named "sparkle"` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `UNKNOWN_STYLE: no style named "sparkle"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("figlet exited 1")
	err := Wrap(ErrCodeExternalTool, cause, "banner failed")

	if err.Code != ErrCodeExternalTool {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeExternalTool)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeUnsupportedNode, "no rule"), ErrCodeUnsupportedNode, true},
		{"different code", New(ErrCodeUnsupportedNode, "no rule"), ErrCodeIO, false},
		{"wrapped in fmt", fmt.Errorf("outer: %w", New(ErrCodeIO, "write failed")), ErrCodeIO, true},
		{"plain error", errors.New("plain"), ErrCodeIO, false},
		{"nil error", nil, ErrCodeIO, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidInput, "bad columns")); got != ErrCodeInvalidInput {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidInput)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeIO, "cannot write slide")); got != "cannot write slide" {
		t.Errorf("UserMessage() = %v", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %v", got)
	}
}
