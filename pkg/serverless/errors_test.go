package serverless

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		is     func(error) bool
		kind   Kind
		status int
		text   string
	}{
		{"Serialization", NewSerializationError(errors.New("bad utf-8")), IsSerialization, KindSerialization, 500, "Serialization error: bad utf-8"},
		{"HTTP", NewHTTPError("missing %s", "method"), IsHTTP, KindHTTP, 400, "HTTP error: missing method"},
		{"Platform", NewPlatformError("unexpected event"), IsPlatform, KindPlatform, 400, "Platform error: unexpected event"},
		{"Function", NewFunctionError(errors.New("boom")), IsFunction, KindFunction, 500, "Function error: boom"},
		{"Requirements", NewRequirementsError("empty name"), IsRequirements, KindRequirements, 500, "Requirements error: empty name"},
		{"Unexpected", NewUnexpectedError(errors.New("panic")), IsUnexpected, KindUnexpected, 500, "Unexpected error: panic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.is(tt.err) {
				t.Errorf("Expected predicate to match %v", tt.err)
			}
			if KindOf(tt.err) != tt.kind {
				t.Errorf("Expected kind %v, got %v", tt.kind, KindOf(tt.err))
			}
			if StatusCode(tt.err) != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, StatusCode(tt.err))
			}
			if tt.err.Error() != tt.text {
				t.Errorf("Expected message %q, got %q", tt.text, tt.err.Error())
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("saving: %w", NewFunctionError(cause))

	if !IsFunction(err) {
		t.Error("Expected wrapped function error to match")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected cause to be reachable through Unwrap")
	}
	if IsHTTP(err) {
		t.Error("Did not expect function error to match HTTP")
	}
	if KindOf(errors.New("plain")) != KindUnexpected {
		t.Error("Expected foreign errors to be unexpected")
	}
}
