package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(ErrCodeInvalidCIDR, "invalid base block: %s", "10.0.0/8")
	if got := plain.Error(); got != "INVALID_CIDR: invalid base block: 10.0.0/8" {
		t.Errorf("Error() = %q", got)
	}

	cause := stderrors.New("disk full")
	wrapped := Wrap(ErrCodeStore, cause, "save plan %s", "abc")
	if got := wrapped.Error(); got != "STORE_ERROR: save plan abc: disk full" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeInvalidToken, "bad token")
	deep := fmt.Errorf("outer: %w", err)

	if !Is(deep, ErrCodeInvalidToken) {
		t.Error("Is should find the code through wrapping")
	}
	if Is(deep, ErrCodeInternal) {
		t.Error("Is matched the wrong code")
	}
	if got := GetCode(deep); got != ErrCodeInvalidToken {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidPrefix, "prefix out of range")); got != "prefix out of range" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "Root", id: "root"},
		{name: "Deep", id: "root-0-1-1-0"},
		{name: "Empty", id: "", wantErr: true},
		{name: "WrongRoot", id: "node-0", wantErr: true},
		{name: "BadSegment", id: "root-2", wantErr: true},
		{name: "Traversal", id: "root-0/../1", wantErr: true},
		{name: "TrailingDash", id: "root-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNodeID) {
				t.Errorf("wrong code: %v", err)
			}
		})
	}
}

func TestValidateShareToken(t *testing.T) {
	if err := ValidateShareToken("eyJ2IjoxfQ"); err != nil {
		t.Errorf("valid token rejected: %v", err)
	}
	if err := ValidateShareToken(""); err == nil {
		t.Error("empty token accepted")
	}
	if err := ValidateShareToken("abc def"); err == nil {
		t.Error("token with whitespace accepted")
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{color: ""},
		{color: "#FF00AA"},
		{color: "#ff00aa"},
		{color: "FF00AA", wantErr: true},
		{color: "#FFF", wantErr: true},
		{color: "#GG0000", wantErr: true},
	}
	for _, tt := range tests {
		if err := ValidateColor(tt.color); (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) = %v, wantErr %v", tt.color, err, tt.wantErr)
		}
	}
}
