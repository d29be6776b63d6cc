package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(FileTooLarge, "file exceeds size limit", nil)
	if !strings.Contains(err.Error(), "FILE_TOO_LARGE") {
		t.Errorf("Error() = %q, should contain code", err.Error())
	}
	if !strings.Contains(err.Error(), "file exceeds size limit") {
		t.Errorf("Error() = %q, should contain message", err.Error())
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := New(FileUnreadable, "cannot read file", cause)

	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("Error() = %q, should contain cause", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"direct", New(Timeout, "timed out", nil), Timeout},
		{"wrapped", fmt.Errorf("outer: %w", New(GitCommandFailed, "exit 128", nil)), GitCommandFailed},
		{"plain", stderrors.New("plain"), InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSkip(t *testing.T) {
	if !IsSkip(New(FileExcluded, "excluded", nil)) {
		t.Error("FileExcluded should be a skip")
	}
	if !IsSkip(New(FileTooLarge, "too large", nil)) {
		t.Error("FileTooLarge should be a skip")
	}
	if IsSkip(New(FileUnreadable, "unreadable", nil)) {
		t.Error("FileUnreadable should not be a skip")
	}
	if IsSkip(stderrors.New("plain")) {
		t.Error("plain error should not be a skip")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(InvalidArgument, "empty query", nil).WithDetails(map[string]interface{}{
		"param": "query",
	})

	details, ok := err.Details.(map[string]interface{})
	if !ok || details["param"] != "query" {
		t.Errorf("Details = %v, want param=query", err.Details)
	}
}
