package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "Listing not found",
			},
			expected: "NOT_FOUND: Listing not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "Failed to create booking",
				Err:     errors.New("connection reset"),
			},
			expected: "INTERNAL_ERROR: Failed to create booking (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("server selection timeout")
	appErr := Wrap(originalErr, CodeUnavailable, "database unavailable", http.StatusServiceUnavailable)

	if !errors.Is(appErr, originalErr) {
		t.Errorf("errors.Is should reach the wrapped error")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Listing"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad body", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthenticated", Unauthenticated("missing token"), CodeUnauthenticated, http.StatusUnauthorized},
		{"invalid token", InvalidToken("expired", nil), CodeInvalidToken, http.StatusUnauthorized},
		{"forbidden", Forbidden("not the owner"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("already booked"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("Database"), CodeUnavailable, http.StatusServiceUnavailable},
		{"rate limited", RateLimited("slow down"), CodeRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Listing", "64b7f0c2a1b2c3d4e5f60718")

	if err.Message != "Listing not found" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["id"] != "64b7f0c2a1b2c3d4e5f60718" {
		t.Errorf("expected id detail, got %v", err.Details["id"])
	}
	if err.Details["resource"] != "Listing" {
		t.Errorf("expected resource detail, got %v", err.Details["resource"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("Listing is already booked")

	if got := AsAppError(appErr); got != appErr {
		t.Errorf("AsAppError() should return the same AppError")
	}

	wrapped := fmt.Errorf("create booking: %w", appErr)
	if got := AsAppError(wrapped); got != appErr {
		t.Errorf("AsAppError() should unwrap to the AppError")
	}

	regularErr := errors.New("regular error")
	got := AsAppError(regularErr)
	if got.Code != CodeInternal {
		t.Errorf("AsAppError() should turn plain errors into internal errors, got %s", got.Code)
	}
	if got.Err != regularErr {
		t.Errorf("AsAppError() should keep the original error")
	}
}

func TestIsAppErrorAndHasCode(t *testing.T) {
	if !IsAppError(NotFound("User")) {
		t.Errorf("IsAppError() should be true for AppError")
	}
	if IsAppError(errors.New("plain")) {
		t.Errorf("IsAppError() should be false for plain errors")
	}
	if !HasCode(fmt.Errorf("ctx: %w", Forbidden("x")), CodeForbidden) {
		t.Errorf("HasCode() should see through wrapping")
	}
	if HasCode(Forbidden("x"), CodeConflict) {
		t.Errorf("HasCode() should compare codes")
	}
}

func TestAppError_ToJSON(t *testing.T) {
	err := NotFoundWithID("Booking", "12345")

	var decoded ErrorResponse
	if jsonErr := json.Unmarshal(err.ToJSON(), &decoded); jsonErr != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", jsonErr)
	}
	if decoded.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, decoded.Code)
	}
	if decoded.Message != "Booking not found" {
		t.Errorf("unexpected message %q", decoded.Message)
	}
	if decoded.Details["id"] != "12345" {
		t.Errorf("expected id detail, got %v", decoded.Details["id"])
	}
}
