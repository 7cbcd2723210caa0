package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingInput, "attribute file not found: %s", "/data/head")

	if err.Code != ErrCodeMissingInput {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeMissingInput)
	}
	if !strings.Contains(err.Error(), "MISSING_INPUT") {
		t.Errorf("Error() should contain the code, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "/data/head") {
		t.Errorf("Error() should contain the formatted message, got %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := Wrap(ErrCodeToolFailed, cause, "convert %s", "head")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("Error() should contain the cause, got %q", err.Error())
	}
}

func TestIsMatchesCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeToolFailed, "boom"), ErrCodeToolFailed, true},
		{"different code", New(ErrCodeToolFailed, "boom"), ErrCodeMissingInput, false},
		{"plain error", stderrors.New("boom"), ErrCodeToolFailed, false},
		{"wrapped in fmt chain", Wrap(ErrCodeToolNotFound, stderrors.New("no such file"), "console"), ErrCodeToolNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidNetwork, "bad link")); got != ErrCodeInvalidNetwork {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeInvalidNetwork)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestToolFailedError(t *testing.T) {
	tfe := &ToolFailedError{
		Argv:     []string{"/tools/build/console", "text_to_binary_vector", "/d/head", "/d/binary/head"},
		ExitCode: 2,
		Stderr:   "could not open input\n",
	}
	msg := tfe.Error()
	for _, want := range []string{"/tools/build/console", "text_to_binary_vector", "status 2", "could not open input"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	// Wrapped, the code and the structured error are both reachable.
	err := Wrap(ErrCodeToolFailed, tfe, "run %s", tfe.Argv[0])
	if !Is(err, ErrCodeToolFailed) {
		t.Error("wrapped tool failure should carry ErrCodeToolFailed")
	}
	var got *ToolFailedError
	if !stderrors.As(err, &got) {
		t.Fatal("ToolFailedError should be recoverable with errors.As")
	}
	if got.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", got.ExitCode)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeMissingInput, "attribute file not found: head")
	if got := UserMessage(err); got != "attribute file not found: head" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
