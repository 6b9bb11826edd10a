package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestConstructorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"not found with key", NotFoundWithKey("Booking", "A|101|t"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad payload", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad param"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("slot taken"), CodeConflict, http.StatusConflict},
		{"invalid state", InvalidState("already resolved"), CodeInvalidState, http.StatusConflict},
		{"unauthorized", Unauthorized("no credentials"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("not an approver"), CodeForbidden, http.StatusForbidden},
		{"internal", Internal("boom", errors.New("cause")), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("too slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("mongo"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Internal("store failure", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("taken")

	if got := AsAppError(appErr); got != appErr {
		t.Errorf("AsAppError returned %v", got)
	}
	if got := AsAppError(errors.New("plain")); got.Code != CodeInternal {
		t.Errorf("AsAppError on plain error returned code %s", got.Code)
	}
	if got := AsAppError(fmt.Errorf("boom")); got.StatusCode() != http.StatusInternalServerError {
		t.Errorf("AsAppError on plain error returned status %d", got.StatusCode())
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(NotFound("Booking")) {
		t.Error("IsAppError(*AppError) = false")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("IsAppError(plain) = true")
	}
}

func TestToJSONOmitsInternals(t *testing.T) {
	err := Internal("store failure", errors.New("dsn=mongodb://secret@host"))

	var decoded map[string]any
	if jsonErr := json.Unmarshal(err.ToJSON(), &decoded); jsonErr != nil {
		t.Fatalf("invalid JSON: %v", jsonErr)
	}

	if decoded["code"] != CodeInternal {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["message"] != "store failure" {
		t.Errorf("message = %v", decoded["message"])
	}
	if strings.Contains(string(err.ToJSON()), "secret") {
		t.Error("serialized error leaks the underlying cause")
	}
}
