package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestRemedyErrorFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      *RemedyError
		wantErr  string
		wantUser string
	}{
		{
			name:     "what only",
			err:      &RemedyError{What: "something broke"},
			wantErr:  "something broke",
			wantUser: "Error: something broke",
		},
		{
			name:     "what and why",
			err:      &RemedyError{What: "something broke", Why: "bad input"},
			wantErr:  "something broke: bad input",
			wantUser: "Error: something broke\n\nWhy: bad input",
		},
		{
			name: "full error",
			err: &RemedyError{
				What: "something broke",
				Why:  "bad input",
				Fix:  "try again",
			},
			wantErr:  "something broke: bad input",
			wantUser: "Error: something broke\n\nWhy: bad input\n\nFix: try again",
		},
		{
			name: "with cause",
			err: &RemedyError{
				What:  "something broke",
				Cause: errors.New("underlying error"),
			},
			wantErr:  "something broke: underlying error",
			wantUser: "Error: something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantErr {
				t.Errorf("Error() = %q, want %q", got, tt.wantErr)
			}
			if got := tt.err.UserMessage(); got != tt.wantUser {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantUser)
			}
		})
	}
}

func TestRemedyErrorJSON(t *testing.T) {
	err := &RemedyError{
		Code:  CodeTaskNotFound,
		What:  "task 7 not found",
		Why:   "No task with this ID exists",
		Cause: errors.New("lookup failed"),
	}

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("marshal: %v", jerr)
	}

	var decoded map[string]any
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("unmarshal: %v", jerr)
	}

	if decoded["code"] != string(CodeTaskNotFound) {
		t.Errorf("code = %v, want %s", decoded["code"], CodeTaskNotFound)
	}
	if decoded["cause"] != "lookup failed" {
		t.Errorf("cause = %v, want %q", decoded["cause"], "lookup failed")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  *RemedyError
		want int
	}{
		{ErrTaskNotFound(3), 404},
		{ErrNotAutoProcessable(3), 400},
		{ErrSessionActive("manual", 1), 409},
		{ErrNoSession(), 409},
		{ErrEmptyRegistry(), 409},
		{ErrInvalidStatus(2, "bogus"), 500},
		{ErrConfigInvalid("server.addr", "empty"), 400},
		{ErrSeedInvalid("duplicate id"), 400},
	}

	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Errorf("%s: HTTPStatus() = %d, want %d", tt.err.Code, got, tt.want)
		}
	}
}

func TestErrorsIsByCode(t *testing.T) {
	err := fmt.Errorf("open session: %w", ErrSessionActive("automated", 4))

	if !errors.Is(err, ErrSessionActive("manual", 99)) {
		t.Error("errors.Is should match on code, ignoring details")
	}
	if errors.Is(err, ErrTaskNotFound(4)) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestAsRemedyError(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", ErrTaskNotFound(12))

	rerr := AsRemedyError(wrapped)
	if rerr == nil {
		t.Fatal("expected RemedyError from wrapped chain")
	}
	if rerr.Code != CodeTaskNotFound {
		t.Errorf("code = %s, want %s", rerr.Code, CodeTaskNotFound)
	}

	if AsRemedyError(errors.New("plain")) != nil {
		t.Error("plain error should not convert")
	}
}
