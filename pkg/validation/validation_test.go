package validation

import (
	"errors"
	apperrors "househunt/pkg/errors"
	"net/http"
	"testing"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2"`
	Bedrooms int    `json:"bedrooms" validate:"min=0,max=10"`
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	if err := v.Struct(&sample{Email: "a@b.com", Name: "ok", Bedrooms: 2}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	err := v.Struct(&sample{Email: "nope", Name: "x", Bedrooms: 11})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T %v", err, err)
	}

	got := map[string]string{}
	for _, e := range verrs {
		got[e.Field] = e.Message
	}
	want := map[string]string{
		"email":    "must be a valid email address",
		"name":     "must be at least 2 characters long",
		"bedrooms": "must be at most 10",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %s: got %q, want %q", field, got[field], msg)
		}
	}
}

func TestToAppError(t *testing.T) {
	appErr := ToAppError(ValidationErrors{{Field: "email", Message: "is required"}})
	if appErr.Code != apperrors.CodeValidation || appErr.StatusCode() != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected app error %+v", appErr)
	}
	if _, ok := appErr.Details["errors"]; !ok {
		t.Error("expected field errors in details")
	}

	passthrough := ToAppError(apperrors.InvalidInput("bad"))
	if passthrough.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected passthrough of INVALID_INPUT, got %s", passthrough.Code)
	}
}
